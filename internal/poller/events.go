package poller

import "avdash/pkg/domain"

// EventType identifies what a poll loop event describes.
type EventType int

const (
	// EventStatus reports a non-terminal status observation.
	EventStatus EventType = iota + 1
	// EventStatusError reports a failed status query. Whether the loop
	// retries on the next tick or aborts depends on Options.AbortOnStatusError.
	EventStatusError
	// EventCompleted reports the scan reached the completed status; the
	// results fetch and dependent refreshes follow.
	EventCompleted
	// EventFailed reports the loop ended in the failed state, either because
	// the backend reported failure or because polling aborted.
	EventFailed
	// EventRefreshError reports that one of the post-completion calls
	// (results, stats, history, quarantine) failed. The siblings still run.
	EventRefreshError
	// EventCancelled reports the loop was cancelled externally.
	EventCancelled
)

// String returns the event type name for logs and CLI output.
func (t EventType) String() string {
	switch t {
	case EventStatus:
		return "status"
	case EventStatusError:
		return "status_error"
	case EventCompleted:
		return "completed"
	case EventFailed:
		return "failed"
	case EventRefreshError:
		return "refresh_error"
	case EventCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Event is one observation from a poll loop. It replaces ad-hoc logging as
// the loop's structured output channel so callers and tests can assert on
// transitions.
type Event struct {
	// Type describes the observation.
	Type EventType
	// Job is the latest job snapshot, when one is available.
	Job *domain.ScanJob
	// Target names the refresh that failed for EventRefreshError.
	Target string
	// Err carries the failure for error events.
	Err error
}
