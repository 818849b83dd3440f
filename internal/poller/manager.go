package poller

import (
	"context"
	"fmt"
	"sync"

	"avdash/pkg/avapi"
)

// Manager enforces the single-active-loop invariant: starting a loop for a
// new scan first cancels the currently active one and waits for it to exit,
// so two refresh cascades can never compete.
type Manager struct {
	client avapi.Client
	sink   Sink
	opts   Options

	mu     sync.Mutex
	active *Loop
}

// NewManager creates a Manager that builds loops from the given client, sink
// and options.
func NewManager(client avapi.Client, sink Sink, opts Options) *Manager {
	return &Manager{
		client: client,
		sink:   sink,
		opts:   opts,
	}
}

// Start activates a poll loop for scanID, cancelling any active loop first.
// The returned loop is already polling.
func (m *Manager) Start(ctx context.Context, scanID string) (*Loop, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != nil {
		m.active.Cancel()
		m.active = nil
	}

	loop := NewLoop(m.client, m.sink, scanID, m.opts)
	if err := loop.Start(ctx); err != nil {
		return nil, fmt.Errorf("could not start poll loop: %w", err)
	}
	m.active = loop

	return loop, nil
}

// CancelActive stops the active loop if there is one.
func (m *Manager) CancelActive() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != nil {
		m.active.Cancel()
		m.active = nil
	}
}

// Active returns the currently tracked loop, which may already be terminal,
// or nil when no scan was started yet.
func (m *Manager) Active() *Loop {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.active
}
