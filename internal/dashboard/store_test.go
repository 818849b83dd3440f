package dashboard_test

import (
	"testing"

	"avdash/internal/dashboard"
	"avdash/pkg/domain"

	"github.com/stretchr/testify/require"
)

func TestStore_emptySnapshots(t *testing.T) {
	store := dashboard.NewStore()

	require.Nil(t, store.CurrentJob())
	require.Nil(t, store.Stats())
	require.Empty(t, store.History())
	require.Empty(t, store.Quarantine())

	scanID, results := store.Results()
	require.Empty(t, scanID)
	require.Empty(t, results)
}

func TestStore_currentJobReturnsCopy(t *testing.T) {
	store := dashboard.NewStore()
	store.SetCurrentJob(domain.ScanJob{ID: "s1", Status: domain.ScanStatusInProgress})

	got := store.CurrentJob()
	got.Status = domain.ScanStatusFailed

	require.Equal(t, domain.ScanStatusInProgress, store.CurrentJob().Status)
}

func TestStore_resultsTiedToScanID(t *testing.T) {
	store := dashboard.NewStore()
	store.SetResults("s1", []domain.ScanResultEntry{{ScanID: "s1", FileName: "a.exe"}})

	scanID, results := store.Results()
	require.Equal(t, "s1", scanID)
	require.Len(t, results, 1)

	// mutating the returned slice must not leak into the store
	results[0].FileName = "mutated"
	_, again := store.Results()
	require.Equal(t, "a.exe", again[0].FileName)
}

func TestStore_snapshotsDoNotShareVirusNames(t *testing.T) {
	store := dashboard.NewStore()
	store.SetResults("s1", []domain.ScanResultEntry{
		{ScanID: "s1", FileName: "a.exe", VirusNames: []string{"Trojan.Generic"}},
	})
	store.SetQuarantine([]domain.QuarantineEntry{
		{ID: "q1", VirusNames: []string{"Win32.Evil"}},
	})

	_, results := store.Results()
	results[0].VirusNames[0] = "mutated"
	_, again := store.Results()
	require.Equal(t, "Trojan.Generic", again[0].VirusNames[0])

	items := store.Quarantine()
	items[0].VirusNames[0] = "mutated"
	require.Equal(t, "Win32.Evil", store.Quarantine()[0].VirusNames[0])
}

func TestStore_snapshotReplacement(t *testing.T) {
	store := dashboard.NewStore()

	store.SetQuarantine([]domain.QuarantineEntry{{ID: "q1"}})
	store.SetQuarantine([]domain.QuarantineEntry{{ID: "q2"}, {ID: "q3"}})
	require.Len(t, store.Quarantine(), 2)

	store.SetStats(domain.DashboardStats{TotalScans: 1})
	store.SetStats(domain.DashboardStats{TotalScans: 2})
	require.Equal(t, 2, store.Stats().TotalScans)
}
