package dashboard

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"avdash/internal/cache"
	"avdash/internal/poller"
	"avdash/pkg/avapi"
	"avdash/pkg/domain"
	"avdash/pkg/logger"
)

// Options configure the controller.
type Options struct {
	// Poll configures the poll loops the controller spawns.
	Poll poller.Options
	// HistoryLimit is how many history entries each refresh fetches;
	// 0 uses the server default.
	HistoryLimit int
}

// Controller owns every mutation of the Store. It starts scans (enforcing
// the one-active-loop invariant through the poller Manager), serves as the
// poll loop's Sink, and performs quarantine actions with their dependent
// refreshes.
type Controller struct {
	client avapi.Client
	store  *Store
	loops  *poller.Manager
	// history is the optional local cache of terminal scans; nil disables it.
	history *cache.History
	opts    Options
}

// Ensure Controller fulfills the poll loop's Sink contract.
var _ poller.Sink = (*Controller)(nil)

// New creates a Controller around the given client and store. history may be
// nil when local caching is disabled.
func New(client avapi.Client, store *Store, history *cache.History, opts Options) *Controller {
	c := &Controller{
		client:  client,
		store:   store,
		history: history,
		opts:    opts,
	}
	c.loops = poller.NewManager(client, c, opts.Poll)

	return c
}

// Store returns the snapshot store the controller writes.
func (c *Controller) Store() *Store { return c.store }

// Client returns the backend client for one-off calls that bypass the store.
func (c *Controller) Client() avapi.Client { return c.client }

// StartScan asks the backend to scan directoryPath and activates a poll loop
// for the returned job id. Any previously active loop is cancelled first, so
// a stale loop never runs concurrently with the new one.
func (c *Controller) StartScan(ctx context.Context, directoryPath string, scanType domain.ScanType) (*poller.Loop, error) {
	scanID, err := c.client.StartScan(ctx, directoryPath, scanType)
	if err != nil {
		return nil, fmt.Errorf("could not start scan: %w", err)
	}

	logger.Info(ctx, "scan started",
		zap.String("scanID", scanID),
		zap.String("directory", directoryPath),
		zap.String("scanType", string(scanType)))

	loop, err := c.loops.Start(ctx, scanID)
	if err != nil {
		return nil, fmt.Errorf("could not start poll loop: %w", err)
	}

	return loop, nil
}

// CancelScan stops the active poll loop, if any.
func (c *Controller) CancelScan() {
	c.loops.CancelActive()
}

// ActiveLoop returns the loop of the most recently started scan, or nil.
func (c *Controller) ActiveLoop() *poller.Loop {
	return c.loops.Active()
}

// JobUpdated stores every job snapshot the poll loop observes.
func (c *Controller) JobUpdated(job domain.ScanJob) {
	c.store.SetCurrentJob(job)
}

// ResultsReady stores the frozen result set of a completed scan.
func (c *Controller) ResultsReady(scanID string, entries []domain.ScanResultEntry) {
	c.store.SetResults(scanID, entries)
}

// RefreshStats re-fetches the aggregate stats snapshot.
func (c *Controller) RefreshStats(ctx context.Context) error {
	stats, err := c.client.Stats(ctx)
	if err != nil {
		return fmt.Errorf("could not refresh stats: %w", err)
	}
	c.store.SetStats(*stats)

	return nil
}

// RefreshHistory re-fetches the scan history and mirrors terminal entries
// into the local cache when one is configured.
func (c *Controller) RefreshHistory(ctx context.Context) error {
	scans, err := c.client.ScanHistory(ctx, c.opts.HistoryLimit)
	if err != nil {
		return fmt.Errorf("could not refresh history: %w", err)
	}
	c.store.SetHistory(scans)

	if c.history != nil {
		if err := c.history.Record(ctx, scans...); err != nil {
			logger.Warn(ctx, "could not cache scan history", zap.Error(err))
		}
	}

	return nil
}

// RefreshQuarantine re-fetches the quarantine list.
func (c *Controller) RefreshQuarantine(ctx context.Context) error {
	items, err := c.client.Quarantine(ctx)
	if err != nil {
		return fmt.Errorf("could not refresh quarantine: %w", err)
	}
	c.store.SetQuarantine(items)

	return nil
}

// RefreshAll re-fetches stats, history and quarantine. Failures are joined so
// one unreachable endpoint does not hide the others' data.
func (c *Controller) RefreshAll(ctx context.Context) error {
	return errors.Join(
		c.RefreshStats(ctx),
		c.RefreshHistory(ctx),
		c.RefreshQuarantine(ctx),
	)
}

// RestoreQuarantine restores a quarantined file. The store is only touched
// after the server confirms: on success the quarantine list and stats are
// refreshed (history is unaffected by quarantine actions); on failure the
// error is returned for display and nothing changes locally.
func (c *Controller) RestoreQuarantine(ctx context.Context, quarantineID string) error {
	if err := c.client.RestoreQuarantine(ctx, quarantineID); err != nil {
		return err
	}

	c.refreshAfterQuarantineAction(ctx, "restore", quarantineID)

	return nil
}

// DeleteQuarantine permanently deletes a quarantined file, with the same
// refresh behavior as RestoreQuarantine.
func (c *Controller) DeleteQuarantine(ctx context.Context, quarantineID string) error {
	if err := c.client.DeleteQuarantine(ctx, quarantineID); err != nil {
		return err
	}

	c.refreshAfterQuarantineAction(ctx, "delete", quarantineID)

	return nil
}

func (c *Controller) refreshAfterQuarantineAction(ctx context.Context, action, quarantineID string) {
	ctx = logger.WithFields(ctx,
		zap.String("action", action),
		zap.String("quarantineID", quarantineID))

	if err := c.RefreshQuarantine(ctx); err != nil {
		logger.Warn(ctx, "quarantine refresh after action failed", zap.Error(err))
	}
	if err := c.RefreshStats(ctx); err != nil {
		logger.Warn(ctx, "stats refresh after action failed", zap.Error(err))
	}
}

// OfflineHistory lists the locally cached scan history, newest first. It
// works without backend connectivity and returns an error when no cache is
// configured.
func (c *Controller) OfflineHistory(ctx context.Context, limit int) ([]domain.ScanJob, error) {
	if c.history == nil {
		return nil, errors.New("local history cache is not configured")
	}

	return c.history.Recent(ctx, limit)
}
