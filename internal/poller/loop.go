// Package poller implements the scan-lifecycle polling controller: it tracks
// one scan job by querying its status at a fixed interval, detects the
// terminal transition, and fans out the results fetch plus the dependent
// store refreshes. A Manager guarantees at most one loop is active at a time.
package poller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"avdash/pkg/avapi"
	"avdash/pkg/domain"
	"avdash/pkg/logger"
	"avdash/pkg/serrors"
)

// State is the lifecycle state of one poll loop instance.
type State int

const (
	// StateIdle is the initial state before Start.
	StateIdle State = iota
	// StatePolling means status queries are being scheduled.
	StatePolling
	// StateCompleted is terminal: the scan finished and the fan-out ran.
	StateCompleted
	// StateFailed is terminal: the scan failed or polling aborted.
	StateFailed
	// StateCancelled is terminal: the loop was cancelled externally.
	StateCancelled
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePolling:
		return "polling"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Sink receives the loop's outputs: job snapshots, the frozen result set, and
// the refresh triggers fired after completion. The dashboard controller is
// the production implementation.
type Sink interface {
	// JobUpdated delivers every successfully fetched job snapshot.
	JobUpdated(job domain.ScanJob)
	// ResultsReady delivers the result entries fetched after completion.
	ResultsReady(scanID string, entries []domain.ScanResultEntry)
	// RefreshStats re-fetches the dashboard stats snapshot.
	RefreshStats(ctx context.Context) error
	// RefreshHistory re-fetches the scan history.
	RefreshHistory(ctx context.Context) error
	// RefreshQuarantine re-fetches the quarantine list.
	RefreshQuarantine(ctx context.Context) error
}

// Options configure a poll loop.
type Options struct {
	// Interval is the delay between status queries. Defaults to 3s.
	Interval time.Duration
	// ResultsPageSize caps the completion results fetch; 0 uses the server
	// default page size.
	ResultsPageSize int
	// AbortOnStatusError makes a failed status query terminate the loop
	// instead of retrying on the next scheduled tick. An unknown scan id
	// aborts regardless, since retrying cannot recover it.
	AbortOnStatusError bool
	// Clock drives tick scheduling; nil uses the system clock.
	Clock Clock
}

const defaultInterval = 3 * time.Second

// Loop polls one scan job until a terminal status is observed or the loop is
// cancelled. A Loop is single-use: a new scan needs a new Loop.
type Loop struct {
	client avapi.Client
	sink   Sink
	opts   Options
	scanID string
	loopID string

	mu      sync.Mutex
	state   State
	started bool
	lastJob *domain.ScanJob
	lastErr error
	cancel  context.CancelFunc

	done     chan struct{}
	doneOnce sync.Once
	events   chan Event
}

// NewLoop creates an idle loop for the given scan id.
func NewLoop(client avapi.Client, sink Sink, scanID string, opts Options) *Loop {
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock()
	}

	return &Loop{
		client: client,
		sink:   sink,
		opts:   opts,
		scanID: scanID,
		loopID: uuid.NewString(),
		done:   make(chan struct{}),
		events: make(chan Event, 32),
	}
}

// ScanID returns the scan job id this loop tracks.
func (l *Loop) ScanID() string { return l.scanID }

// State returns the current lifecycle state.
func (l *Loop) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.state
}

// Job returns a copy of the last observed job snapshot, or nil before the
// first successful status query.
func (l *Loop) Job() *domain.ScanJob {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.lastJob == nil {
		return nil
	}
	job := *l.lastJob

	return &job
}

// Err returns the error that terminated the loop, if any.
func (l *Loop) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.lastErr
}

// Done is closed once the loop goroutine has fully exited.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Events streams the loop's observations. The channel is closed when the
// loop exits; slow consumers lose events rather than stalling the loop.
func (l *Loop) Events() <-chan Event { return l.events }

// Start transitions the loop from Idle to Polling and begins querying status.
// The first query is issued immediately, then once per tick. Cancelling ctx
// cancels the loop.
func (l *Loop) Start(ctx context.Context) error {
	l.mu.Lock()
	if l.started {
		l.mu.Unlock()

		return fmt.Errorf("poll loop for scan %q already started", l.scanID)
	}
	if l.state != StateIdle {
		state := l.state
		l.mu.Unlock()

		return fmt.Errorf("poll loop for scan %q is %s, not idle", l.scanID, state)
	}

	ctx, cancel := context.WithCancel(ctx)
	l.started = true
	l.state = StatePolling
	l.cancel = cancel
	l.mu.Unlock()

	ctx = logger.WithFields(ctx,
		zap.String("scanID", l.scanID),
		zap.String("loopID", l.loopID))

	go l.run(ctx)

	return nil
}

// Cancel stops the loop and blocks until its goroutine has exited, so a
// caller starting a replacement loop never races a stale refresh cascade.
// Cancelling an idle or finished loop is a no-op.
func (l *Loop) Cancel() {
	l.mu.Lock()
	started := l.started
	cancel := l.cancel
	if !started && l.state == StateIdle {
		l.state = StateCancelled
	}
	l.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if started {
		<-l.done
	} else {
		l.closeDone()
	}
}

func (l *Loop) closeDone() {
	l.doneOnce.Do(func() { close(l.done) })
}

func (l *Loop) setState(state State, err error) {
	l.mu.Lock()
	l.state = state
	if err != nil {
		l.lastErr = err
	}
	l.mu.Unlock()
}

func (l *Loop) storeJob(job *domain.ScanJob) {
	l.mu.Lock()
	snapshot := *job
	l.lastJob = &snapshot
	l.mu.Unlock()

	l.sink.JobUpdated(*job)
}

// emit delivers an event without ever blocking the loop.
func (l *Loop) emit(ev Event) {
	select {
	case l.events <- ev:
	default:
	}
}

func (l *Loop) run(ctx context.Context) {
	defer l.closeDone()
	defer close(l.events)

	for {
		job, err := l.client.ScanStatus(ctx, l.scanID)

		// A response arriving after cancellation is discarded; the loop ends
		// with no further side effects.
		if ctx.Err() != nil {
			l.setState(StateCancelled, nil)
			logger.Info(ctx, "poll loop cancelled")
			l.emit(Event{Type: EventCancelled})

			return
		}

		switch {
		case err != nil:
			if errors.Is(err, serrors.ErrNotFound) || l.opts.AbortOnStatusError {
				l.setState(StateFailed, err)
				logger.Error(ctx, "poll loop aborted", zap.Error(err))
				l.emit(Event{Type: EventFailed, Err: err})

				return
			}
			logger.Warn(ctx, "status query failed, retrying on next tick", zap.Error(err))
			l.emit(Event{Type: EventStatusError, Err: err})

		case job.Status == domain.ScanStatusCompleted:
			l.storeJob(job)
			l.complete(ctx, job)

			return

		case job.Status == domain.ScanStatusFailed:
			l.storeJob(job)
			failErr := serrors.With(serrors.ErrInternal, "backend reported scan %q failed", l.scanID)
			l.setState(StateFailed, failErr)
			logger.Error(ctx, "scan failed", zap.Error(failErr))
			l.emit(Event{Type: EventFailed, Job: l.Job(), Err: failErr})

			return

		default:
			l.storeJob(job)
			logger.Debug(ctx, "scan still running",
				zap.String("status", string(job.Status)),
				zap.Int("totalFiles", job.TotalFiles),
				zap.Int("infectedFiles", job.InfectedFiles))
			l.emit(Event{Type: EventStatus, Job: l.Job()})
		}

		select {
		case <-ctx.Done():
			l.setState(StateCancelled, nil)
			logger.Info(ctx, "poll loop cancelled")
			l.emit(Event{Type: EventCancelled})

			return
		case <-l.opts.Clock.After(l.opts.Interval):
		}
	}
}

// complete runs the terminal fan-out: one results fetch plus one refresh each
// of stats, history and quarantine. The four calls run concurrently and only
// after the completed status was observed; a failure in one is reported and
// never suppresses the others.
func (l *Loop) complete(ctx context.Context, job *domain.ScanJob) {
	l.setState(StateCompleted, nil)
	logger.Info(ctx, "scan completed",
		zap.Int("totalFiles", job.TotalFiles),
		zap.Int("infectedFiles", job.InfectedFiles),
		zap.Int("cleanFiles", job.CleanFiles))
	l.emit(Event{Type: EventCompleted, Job: l.Job()})

	var wg sync.WaitGroup
	refresh := func(target string, fn func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				logger.Warn(ctx, "refresh after completion failed",
					zap.String("target", target), zap.Error(err))
				l.emit(Event{Type: EventRefreshError, Target: target, Err: err})
			}
		}()
	}

	refresh("results", func(ctx context.Context) error {
		entries, err := l.client.ScanResults(ctx, l.scanID, avapi.Page{Limit: l.opts.ResultsPageSize})
		if err != nil {
			return err
		}
		l.sink.ResultsReady(l.scanID, entries)

		return nil
	})
	refresh("stats", l.sink.RefreshStats)
	refresh("history", l.sink.RefreshHistory)
	refresh("quarantine", l.sink.RefreshQuarantine)

	wg.Wait()
}
