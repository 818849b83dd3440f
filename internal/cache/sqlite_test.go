package cache_test

import (
	"context"
	"testing"
	"time"

	"avdash/internal/cache"
	"avdash/pkg/domain"

	"github.com/stretchr/testify/require"
)

func openTestCache(t *testing.T) *cache.History {
	t.Helper()

	h, err := cache.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, h.Close()) })

	return h
}

func job(id string, startedAt time.Time) domain.ScanJob {
	return domain.ScanJob{
		ID:            id,
		DirectoryPath: "/data/" + id,
		ScanType:      domain.ScanTypeQuick,
		Status:        domain.ScanStatusCompleted,
		TotalFiles:    10,
		CleanFiles:    9,
		InfectedFiles: 1,
		StartedAt:     domain.NewTime(startedAt),
		CompletedAt:   domain.NewTime(startedAt.Add(time.Minute)),
	}
}

func TestHistory_recordAndList(t *testing.T) {
	h := openTestCache(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, h.Record(ctx, job("s1", base), job("s2", base.Add(time.Hour))))

	jobs, err := h.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	require.Equal(t, "s2", jobs[0].ID, "newest first")
	require.Equal(t, "s1", jobs[1].ID)

	got := jobs[1]
	require.Equal(t, "/data/s1", got.DirectoryPath)
	require.Equal(t, domain.ScanStatusCompleted, got.Status)
	require.Equal(t, 10, got.TotalFiles)
	require.True(t, got.StartedAt.Equal(base))
	require.True(t, got.CompletedAt.Equal(base.Add(time.Minute)))
}

func TestHistory_recordUpserts(t *testing.T) {
	h := openTestCache(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	running := job("s1", base)
	running.Status = domain.ScanStatusInProgress
	running.CompletedAt = domain.Time{}
	require.NoError(t, h.Record(ctx, running))

	require.NoError(t, h.Record(ctx, job("s1", base)))

	jobs, err := h.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Equal(t, domain.ScanStatusCompleted, jobs[0].Status)
	require.False(t, jobs[0].CompletedAt.IsZero())
}

func TestHistory_ordersSubsecondStartsCorrectly(t *testing.T) {
	h := openTestCache(t)
	ctx := context.Background()

	// A whole-second start must sort before one half a second later even
	// though their stored representations differ in length-sensitive ways.
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, h.Record(ctx,
		job("older", base),
		job("newer", base.Add(500*time.Millisecond)),
	))

	jobs, err := h.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	require.Equal(t, "newer", jobs[0].ID)
	require.Equal(t, "older", jobs[1].ID)
	require.True(t, jobs[0].StartedAt.Equal(base.Add(500*time.Millisecond)))
}

func TestHistory_limitAndEmptyIDs(t *testing.T) {
	h := openTestCache(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, h.Record(ctx,
		domain.ScanJob{}, // no id, skipped
		job("s1", base),
		job("s2", base.Add(time.Hour)),
		job("s3", base.Add(2*time.Hour)),
	))

	jobs, err := h.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	require.Equal(t, "s3", jobs[0].ID)
	require.Equal(t, "s2", jobs[1].ID)
}
