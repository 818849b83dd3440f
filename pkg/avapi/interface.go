// Package avapi defines the interface and shared types used to talk to the
// antivirus scan backend: starting scans, polling status, fetching results
// and managing quarantined files.
package avapi

import (
	"context"

	"avdash/pkg/domain"
)

// Page selects a window of scan results. The zero value asks for the
// backend's defaults.
type Page struct {
	// Skip is the number of leading entries to drop.
	Skip int
	// Limit caps the number of entries returned; 0 means server default.
	Limit int
}

// Client is the abstraction over the scan backend's REST API. Implementations
// must be safe for concurrent use; all reads are idempotent.
//
//go:generate mockgen -package mockavapi -source=interface.go -destination=mock/mockavapi.go *
type Client interface {
	// StartScan asks the backend to scan directoryPath asynchronously and
	// returns the new scan job id. The backend rejecting the path surfaces as
	// serrors.ErrValidation; transport failures as serrors.ErrNetwork.
	StartScan(ctx context.Context, directoryPath string, scanType domain.ScanType) (string, error)

	// ScanStatus fetches the current state of a scan job. Unknown ids surface
	// as serrors.ErrNotFound. Safe to call repeatedly.
	ScanStatus(ctx context.Context, scanID string) (*domain.ScanJob, error)

	// ScanResults fetches per-file results for a scan. The sequence is only
	// complete once the job status is completed; earlier calls return the
	// rows written so far.
	ScanResults(ctx context.Context, scanID string, page Page) ([]domain.ScanResultEntry, error)

	// ScanHistory lists past scan jobs, newest first. limit <= 0 uses the
	// server default.
	ScanHistory(ctx context.Context, limit int) ([]domain.ScanJob, error)

	// Quarantine lists quarantined files, newest first.
	Quarantine(ctx context.Context) ([]domain.QuarantineEntry, error)

	// RestoreQuarantine moves a quarantined file back to its original path.
	// Unknown ids surface as serrors.ErrNotFound; already-restored entries as
	// serrors.ErrConflict.
	RestoreQuarantine(ctx context.Context, quarantineID string) error

	// DeleteQuarantine permanently removes a quarantined file.
	DeleteQuarantine(ctx context.Context, quarantineID string) error

	// Stats fetches the aggregate dashboard snapshot.
	Stats(ctx context.Context) (*domain.DashboardStats, error)

	// Health verifies the backend is reachable and reports itself healthy.
	Health(ctx context.Context) error
}
