package poller_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"avdash/internal/poller"
	mockavapi "avdash/pkg/avapi/mock"
	"avdash/pkg/domain"
	"avdash/pkg/logger"
	"avdash/pkg/serrors"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

// immediateClock fires every tick instantly so a scripted run finishes
// without real delays.
type immediateClock struct{}

func (immediateClock) After(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Now()

	return ch
}

// stuckClock never fires, parking the loop between ticks so tests can cancel
// it deterministically.
type stuckClock struct{}

func (stuckClock) After(time.Duration) <-chan time.Time { return make(chan time.Time) }

// recordingSink counts refreshes and remembers how many job snapshots had
// been delivered when each refresh ran, so ordering relative to the terminal
// status can be asserted.
type recordingSink struct {
	mu         sync.Mutex
	jobs       []domain.ScanJob
	resultsFor string
	results    []domain.ScanResultEntry

	statsErr error

	statsSeenJobs      int
	historySeenJobs    int
	quarantineSeenJobs int
	statsCalls         int
	historyCalls       int
	quarantineCalls    int
}

func (s *recordingSink) JobUpdated(job domain.ScanJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, job)
}

func (s *recordingSink) ResultsReady(scanID string, entries []domain.ScanResultEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resultsFor = scanID
	s.results = entries
}

func (s *recordingSink) RefreshStats(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statsCalls++
	s.statsSeenJobs = len(s.jobs)

	return s.statsErr
}

func (s *recordingSink) RefreshHistory(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.historyCalls++
	s.historySeenJobs = len(s.jobs)

	return nil
}

func (s *recordingSink) RefreshQuarantine(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quarantineCalls++
	s.quarantineSeenJobs = len(s.jobs)

	return nil
}

func job(id string, status domain.ScanStatus) *domain.ScanJob {
	return &domain.ScanJob{ID: id, Status: status, DirectoryPath: "/data"}
}

func collectEvents(t *testing.T, loop *poller.Loop) []poller.Event {
	t.Helper()

	var events []poller.Event
	for ev := range loop.Events() {
		events = append(events, ev)
	}

	return events
}

func TestLoop_scriptedRunIssuesExactCallCounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := mockavapi.NewMockClient(ctrl)
	sink := &recordingSink{}

	// in_progress twice, then completed: exactly 3 status calls, then exactly
	// one results call, never before the terminal observation.
	gomock.InOrder(
		mock.EXPECT().ScanStatus(gomock.Any(), "scan-1").Return(job("scan-1", domain.ScanStatusInProgress), nil),
		mock.EXPECT().ScanStatus(gomock.Any(), "scan-1").Return(job("scan-1", domain.ScanStatusInProgress), nil),
		mock.EXPECT().ScanStatus(gomock.Any(), "scan-1").Return(job("scan-1", domain.ScanStatusCompleted), nil),
		mock.EXPECT().ScanResults(gomock.Any(), "scan-1", gomock.Any()).
			Return([]domain.ScanResultEntry{{ScanID: "scan-1", FileName: "a.exe"}}, nil),
	)

	loop := poller.NewLoop(mock, sink, "scan-1", poller.Options{
		Interval: time.Millisecond,
		Clock:    immediateClock{},
	})
	require.NoError(t, loop.Start(context.Background()))
	<-loop.Done()

	require.Equal(t, poller.StateCompleted, loop.State())
	require.NoError(t, loop.Err())

	// One refresh each, all strictly after the third (terminal) status.
	require.Equal(t, 1, sink.statsCalls)
	require.Equal(t, 1, sink.historyCalls)
	require.Equal(t, 1, sink.quarantineCalls)
	require.Equal(t, 3, sink.statsSeenJobs)
	require.Equal(t, 3, sink.historySeenJobs)
	require.Equal(t, 3, sink.quarantineSeenJobs)

	require.Equal(t, "scan-1", sink.resultsFor)
	require.Len(t, sink.results, 1)

	events := collectEvents(t, loop)
	var types []poller.EventType
	for _, ev := range events {
		types = append(types, ev.Type)
	}
	require.Equal(t, []poller.EventType{poller.EventStatus, poller.EventStatus, poller.EventCompleted}, types)
}

func TestLoop_cancelBeforeTerminalStopsAllCalls(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := mockavapi.NewMockClient(ctrl)
	sink := &recordingSink{}

	polled := make(chan struct{})
	mock.EXPECT().ScanStatus(gomock.Any(), "scan-2").
		DoAndReturn(func(context.Context, string) (*domain.ScanJob, error) {
			close(polled)

			return job("scan-2", domain.ScanStatusInProgress), nil
		})
	// No further ScanStatus and no ScanResults expectations: any call after
	// cancellation fails the test.

	loop := poller.NewLoop(mock, sink, "scan-2", poller.Options{Clock: stuckClock{}})
	require.NoError(t, loop.Start(context.Background()))

	<-polled
	loop.Cancel()

	require.Equal(t, poller.StateCancelled, loop.State())
	require.Zero(t, sink.statsCalls)
	require.Zero(t, sink.historyCalls)
	require.Zero(t, sink.quarantineCalls)
	require.Empty(t, sink.resultsFor)
}

func TestLoop_backendReportedFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := mockavapi.NewMockClient(ctrl)
	sink := &recordingSink{}

	mock.EXPECT().ScanStatus(gomock.Any(), "scan-3").Return(job("scan-3", domain.ScanStatusFailed), nil)

	loop := poller.NewLoop(mock, sink, "scan-3", poller.Options{Clock: immediateClock{}})
	require.NoError(t, loop.Start(context.Background()))
	<-loop.Done()

	require.Equal(t, poller.StateFailed, loop.State())
	require.ErrorIs(t, loop.Err(), serrors.ErrInternal)
	// A failed scan triggers no results fetch and no refresh cascade.
	require.Zero(t, sink.statsCalls+sink.historyCalls+sink.quarantineCalls)
}

func TestLoop_statusErrorRetriesOnNextTickByDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := mockavapi.NewMockClient(ctrl)
	sink := &recordingSink{}

	gomock.InOrder(
		mock.EXPECT().ScanStatus(gomock.Any(), "scan-4").
			Return(nil, serrors.With(serrors.ErrNetwork, "connection refused")),
		mock.EXPECT().ScanStatus(gomock.Any(), "scan-4").Return(job("scan-4", domain.ScanStatusCompleted), nil),
		mock.EXPECT().ScanResults(gomock.Any(), "scan-4", gomock.Any()).Return(nil, nil),
	)

	loop := poller.NewLoop(mock, sink, "scan-4", poller.Options{Clock: immediateClock{}})
	require.NoError(t, loop.Start(context.Background()))
	<-loop.Done()

	require.Equal(t, poller.StateCompleted, loop.State())

	events := collectEvents(t, loop)
	require.Equal(t, poller.EventStatusError, events[0].Type)
	require.ErrorIs(t, events[0].Err, serrors.ErrNetwork)
}

func TestLoop_statusErrorAbortsWhenConfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := mockavapi.NewMockClient(ctrl)
	sink := &recordingSink{}

	mock.EXPECT().ScanStatus(gomock.Any(), "scan-5").
		Return(nil, serrors.With(serrors.ErrNetwork, "connection refused"))

	loop := poller.NewLoop(mock, sink, "scan-5", poller.Options{
		Clock:              immediateClock{},
		AbortOnStatusError: true,
	})
	require.NoError(t, loop.Start(context.Background()))
	<-loop.Done()

	require.Equal(t, poller.StateFailed, loop.State())
	require.ErrorIs(t, loop.Err(), serrors.ErrNetwork)
}

func TestLoop_unknownScanAlwaysAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := mockavapi.NewMockClient(ctrl)
	sink := &recordingSink{}

	mock.EXPECT().ScanStatus(gomock.Any(), "ghost").
		Return(nil, serrors.With(serrors.ErrNotFound, "scan not found"))

	loop := poller.NewLoop(mock, sink, "ghost", poller.Options{Clock: immediateClock{}})
	require.NoError(t, loop.Start(context.Background()))
	<-loop.Done()

	require.Equal(t, poller.StateFailed, loop.State())
	require.ErrorIs(t, loop.Err(), serrors.ErrNotFound)
}

func TestLoop_refreshFailureDoesNotSuppressSiblings(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := mockavapi.NewMockClient(ctrl)
	sink := &recordingSink{statsErr: serrors.With(serrors.ErrNetwork, "stats down")}

	mock.EXPECT().ScanStatus(gomock.Any(), "scan-6").Return(job("scan-6", domain.ScanStatusCompleted), nil)
	mock.EXPECT().ScanResults(gomock.Any(), "scan-6", gomock.Any()).
		Return([]domain.ScanResultEntry{{ScanID: "scan-6"}}, nil)

	loop := poller.NewLoop(mock, sink, "scan-6", poller.Options{Clock: immediateClock{}})
	require.NoError(t, loop.Start(context.Background()))
	<-loop.Done()

	require.Equal(t, poller.StateCompleted, loop.State())
	require.Equal(t, 1, sink.historyCalls)
	require.Equal(t, 1, sink.quarantineCalls)
	require.Equal(t, "scan-6", sink.resultsFor)

	events := collectEvents(t, loop)
	var refreshErrs []string
	for _, ev := range events {
		if ev.Type == poller.EventRefreshError {
			refreshErrs = append(refreshErrs, ev.Target)
		}
	}
	require.Equal(t, []string{"stats"}, refreshErrs)
}

func TestLoop_startTwiceFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := mockavapi.NewMockClient(ctrl)
	sink := &recordingSink{}

	mock.EXPECT().ScanStatus(gomock.Any(), "scan-7").
		DoAndReturn(func(ctx context.Context, _ string) (*domain.ScanJob, error) {
			<-ctx.Done()

			return nil, ctx.Err()
		})

	loop := poller.NewLoop(mock, sink, "scan-7", poller.Options{Clock: stuckClock{}})
	require.NoError(t, loop.Start(context.Background()))
	require.Error(t, loop.Start(context.Background()))
	loop.Cancel()
}

func TestManager_secondScanCancelsFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := mockavapi.NewMockClient(ctrl)
	sink := &recordingSink{}

	firstPolled := make(chan struct{})
	mock.EXPECT().ScanStatus(gomock.Any(), "first").
		DoAndReturn(func(context.Context, string) (*domain.ScanJob, error) {
			close(firstPolled)

			return job("first", domain.ScanStatusInProgress), nil
		})
	secondPolled := make(chan struct{})
	mock.EXPECT().ScanStatus(gomock.Any(), "second").
		DoAndReturn(func(context.Context, string) (*domain.ScanJob, error) {
			close(secondPolled)

			return job("second", domain.ScanStatusInProgress), nil
		})

	mgr := poller.NewManager(mock, sink, poller.Options{Clock: stuckClock{}})

	first, err := mgr.Start(context.Background(), "first")
	require.NoError(t, err)
	<-firstPolled

	second, err := mgr.Start(context.Background(), "second")
	require.NoError(t, err)

	// The first loop must be fully stopped before the second became active.
	require.Equal(t, poller.StateCancelled, first.State())
	select {
	case <-first.Done():
	default:
		t.Fatal("first loop still running after second start")
	}

	<-secondPolled
	require.Equal(t, poller.StatePolling, second.State())
	require.Same(t, second, mgr.Active())

	mgr.CancelActive()
	require.Equal(t, poller.StateCancelled, second.State())
	require.Nil(t, mgr.Active())
}
