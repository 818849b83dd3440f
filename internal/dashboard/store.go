// Package dashboard holds the client-side view of the scan service: a
// snapshot store fed by the poll loop and refresh calls, and the controller
// that owns all mutations of it.
package dashboard

import (
	"sync"

	"avdash/pkg/domain"
)

// Store holds the last-fetched snapshot of everything the dashboard renders:
// the job currently under polling, the result set of the last completed scan,
// scan history, quarantine entries and aggregate stats.
//
// Only the Controller writes the Store (single-writer discipline); reads can
// come from any goroutine and always return copies.
type Store struct {
	mu sync.RWMutex

	currentJob    *domain.ScanJob
	resultsScanID string
	results       []domain.ScanResultEntry
	history       []domain.ScanJob
	quarantine    []domain.QuarantineEntry
	stats         *domain.DashboardStats
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// SetCurrentJob replaces the snapshot of the job under polling.
func (s *Store) SetCurrentJob(job domain.ScanJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentJob = &job
}

// CurrentJob returns a copy of the job under polling, or nil.
func (s *Store) CurrentJob() *domain.ScanJob {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.currentJob == nil {
		return nil
	}
	job := *s.currentJob

	return &job
}

// SetResults replaces the frozen result set, recording which scan it belongs to.
func (s *Store) SetResults(scanID string, entries []domain.ScanResultEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resultsScanID = scanID
	s.results = entries
}

// Results returns the scan id and a copy of its result entries.
func (s *Store) Results() (string, []domain.ScanResultEntry) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ScanResultEntry, len(s.results))
	copy(out, s.results)
	for i := range out {
		out[i].VirusNames = copyStrings(out[i].VirusNames)
	}

	return s.resultsScanID, out
}

// SetHistory replaces the scan history snapshot.
func (s *Store) SetHistory(scans []domain.ScanJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = scans
}

// History returns a copy of the scan history snapshot.
func (s *Store) History() []domain.ScanJob {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ScanJob, len(s.history))
	copy(out, s.history)

	return out
}

// SetQuarantine replaces the quarantine snapshot.
func (s *Store) SetQuarantine(items []domain.QuarantineEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quarantine = items
}

// Quarantine returns a copy of the quarantine snapshot.
func (s *Store) Quarantine() []domain.QuarantineEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.QuarantineEntry, len(s.quarantine))
	copy(out, s.quarantine)
	for i := range out {
		out[i].VirusNames = copyStrings(out[i].VirusNames)
	}

	return out
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)

	return out
}

// SetStats replaces the aggregate stats snapshot.
func (s *Store) SetStats(stats domain.DashboardStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = &stats
}

// Stats returns a copy of the aggregate stats snapshot, or nil before the
// first refresh.
func (s *Store) Stats() *domain.DashboardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.stats == nil {
		return nil
	}
	stats := *s.stats
	if s.stats.RecentScans != nil {
		stats.RecentScans = make([]domain.RecentScan, len(s.stats.RecentScans))
		copy(stats.RecentScans, s.stats.RecentScans)
	}

	return &stats
}
