// Package domain defines the data model shared by the API client, the poll
// loop and the dashboard stores: scan jobs, per-file results, quarantine
// entries and aggregate statistics. Field tags mirror the backend's
// snake_case wire format.
package domain

// ScanStatus represents the lifecycle state of a scan job as reported by the
// backend.
type ScanStatus string

const (
	// ScanStatusQueued indicates the scan is accepted but not started yet.
	ScanStatusQueued ScanStatus = "queued"
	// ScanStatusInProgress indicates the backend is still scanning files.
	ScanStatusInProgress ScanStatus = "in_progress"
	// ScanStatusCompleted indicates the scan finished and results are available.
	ScanStatusCompleted ScanStatus = "completed"
	// ScanStatusFailed indicates the scan ended with an error.
	ScanStatusFailed ScanStatus = "failed"
)

// Terminal reports whether no further status transition can occur.
func (s ScanStatus) Terminal() bool {
	return s == ScanStatusCompleted || s == ScanStatusFailed
}

// ScanType selects how thorough a directory scan is.
type ScanType string

const (
	// ScanTypeQuick scans only the supported file types.
	ScanTypeQuick ScanType = "quick"
	// ScanTypeFull scans everything in the directory tree.
	ScanTypeFull ScanType = "full"
	// ScanTypeCustom uses server-side custom scan settings.
	ScanTypeCustom ScanType = "custom"
)

// ThreatLevel is the ordinal severity classification of a detection.
type ThreatLevel string

const (
	ThreatLevelClean    ThreatLevel = "clean"
	ThreatLevelLow      ThreatLevel = "low"
	ThreatLevelMedium   ThreatLevel = "medium"
	ThreatLevelHigh     ThreatLevel = "high"
	ThreatLevelCritical ThreatLevel = "critical"
	ThreatLevelUnknown  ThreatLevel = "unknown"
)

// Severity returns the ordinal rank of the level, clean (0) through
// critical (4). Unknown levels rank below clean.
func (l ThreatLevel) Severity() int {
	switch l {
	case ThreatLevelClean:
		return 0
	case ThreatLevelLow:
		return 1
	case ThreatLevelMedium:
		return 2
	case ThreatLevelHigh:
		return 3
	case ThreatLevelCritical:
		return 4
	default:
		return -1
	}
}

// AtLeast reports whether l is as severe as other or more.
func (l ThreatLevel) AtLeast(other ThreatLevel) bool {
	return l.Severity() >= other.Severity()
}

// ScanJob is one server-tracked directory-scan execution. It is created when
// a start request succeeds and mutated only by status responses; the client
// never changes it locally.
type ScanJob struct {
	// ID is the opaque identifier assigned by the backend.
	ID string `json:"scan_id"`
	// Status is the current lifecycle state.
	Status ScanStatus `json:"status"`
	// DirectoryPath is the scan target.
	DirectoryPath string `json:"directory_path"`
	// ScanType is the requested thoroughness; history entries carry it.
	ScanType ScanType `json:"scan_type,omitempty"`

	// TotalFiles is the number of files examined so far.
	TotalFiles int `json:"total_files"`
	// InfectedFiles is the number of files with at least one detection.
	InfectedFiles int `json:"infected_files"`
	// CleanFiles is the number of files with no detections.
	CleanFiles int `json:"clean_files"`

	// StartedAt is when the backend accepted the scan.
	StartedAt Time `json:"started_date"`
	// CompletedAt is when the scan reached a terminal status; zero until then.
	CompletedAt Time `json:"completed_date"`
	// Progress is the backend's human-readable progress indicator.
	Progress string `json:"scan_progress,omitempty"`
}

// ScanResultEntry is the frozen per-file outcome of one completed scan.
type ScanResultEntry struct {
	// ScanID ties the entry to its ScanJob.
	ScanID string `json:"scan_id"`
	// FilePath is the absolute path of the scanned file.
	FilePath string `json:"file_path"`
	// FileName is the base name of the scanned file.
	FileName string `json:"file_name"`
	// FileSize is the file size in bytes.
	FileSize int64 `json:"file_size"`
	// FileHash is the SHA-256 of the file contents.
	FileHash string `json:"file_hash"`

	// Status is the per-file verdict: clean, infected, scanning or error.
	Status string `json:"scan_status"`
	// ThreatLevel classifies the worst detection for the file.
	ThreatLevel ThreatLevel `json:"threat_level"`
	// VirusNames lists the distinct threat names reported by the engines.
	VirusNames []string `json:"virus_names"`
	// DetectionCount is how many engines flagged the file.
	DetectionCount int `json:"detection_count"`
	// TotalEngines is how many engines examined the file.
	TotalEngines int `json:"total_engines"`

	// ScannedAt is when the file was examined.
	ScannedAt Time `json:"scan_date"`
}

// Infected reports whether at least one engine flagged the file.
func (e ScanResultEntry) Infected() bool {
	return e.Status == "infected"
}
