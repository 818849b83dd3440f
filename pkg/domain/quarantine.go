package domain

// QuarantineEntry is a server-held record of a file isolated after a
// detection. From the client's perspective an entry is actionable until it is
// restored or deleted; both transitions are terminal.
type QuarantineEntry struct {
	// ID is the opaque quarantine identifier.
	ID string `json:"quarantine_id"`
	// OriginalPath is where the file lived before isolation.
	OriginalPath string `json:"original_path"`
	// FileName is the base name of the isolated file.
	FileName string `json:"file_name"`

	// ThreatLevel classifies the detection that triggered isolation.
	ThreatLevel ThreatLevel `json:"threat_level"`
	// VirusNames lists the threat names reported for the file.
	VirusNames []string `json:"virus_names"`

	// QuarantinedAt is when the file was isolated.
	QuarantinedAt Time `json:"quarantined_date"`
	// Restored marks that the file was moved back to its original path.
	Restored bool `json:"restored"`
	// RestoredAt is when the restore happened; zero while Restored is false.
	RestoredAt Time `json:"restored_date,omitempty"`
}

// Actionable reports whether restore and delete are still offered for this
// entry. A restored entry accepts no further actions.
func (q QuarantineEntry) Actionable() bool {
	return !q.Restored
}

// RecentScan is the compact scan summary embedded in dashboard stats.
type RecentScan struct {
	ScanID        string `json:"scan_id"`
	DirectoryPath string `json:"directory_path"`
	StartedAt     Time   `json:"started_date"`
	Completed     bool   `json:"scan_completed"`
}

// DashboardStats is the aggregate view of the scan service. It is fully
// derived server-side and re-fetched as a whole, never mutated locally.
type DashboardStats struct {
	TotalScans        int `json:"total_scans"`
	TotalFilesScanned int `json:"total_files_scanned"`
	TotalThreatsFound int `json:"total_threats_found"`
	QuarantineCount   int `json:"quarantine_count"`

	// RecentScans is a bounded list of the latest scans.
	RecentScans []RecentScan `json:"recent_scans"`
	// LastUpdated is the server time the snapshot was computed.
	LastUpdated Time `json:"last_updated"`
}
