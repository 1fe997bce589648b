// SPDX-License-Identifier: MPL-2.0

package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

type (
	// Listener is the base interface for phase listeners. Implementations opt
	// into individual phases by additionally implementing the per-phase
	// interfaces below; a listener that does not implement a phase's
	// interface is a no-op for that phase.
	Listener interface {
		// ListenerName identifies the listener in transition errors and logs.
		ListenerName() string
	}

	// PreLibraryInitListener is notified when PhasePreLibraryInit fires.
	PreLibraryInitListener interface {
		OnPreLibraryInit(ctx context.Context) error
	}

	// PostLibraryInitListener is notified when PhasePostLibraryInit fires.
	PostLibraryInitListener interface {
		OnPostLibraryInit(ctx context.Context) error
	}

	// PreCacheInitListener is notified when PhasePreCacheInit fires.
	PreCacheInitListener interface {
		OnPreCacheInit(ctx context.Context) error
	}

	// PostCacheInitListener is notified when PhasePostCacheInit fires.
	PostCacheInitListener interface {
		OnPostCacheInit(ctx context.Context) error
	}

	// TransitionError is returned when a requested transition is not the
	// immediate successor of the current phase.
	TransitionError struct {
		From Phase
		To   Phase
	}

	// ListenerError is returned when a listener fails during fan-out. The
	// phase had already been entered when the listener ran; the remaining
	// listeners for that phase were skipped.
	ListenerError struct {
		Phase    Phase
		Listener string
		Cause    error
	}

	// StateMachine tracks the current lifecycle phase and notifies listeners
	// synchronously, in subscription order, on every transition.
	//
	// Listener subscription is append-only; there is no removal. The zero
	// value is not usable, construct with New.
	StateMachine struct {
		mu        sync.RWMutex
		current   Phase
		listeners []Listener
		logger    *slog.Logger
	}
)

// Error implements the error interface.
func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid lifecycle transition %s -> %s (next valid phase is %s)",
		e.From, e.To, e.From+1)
}

// Error implements the error interface.
func (e *ListenerError) Error() string {
	return fmt.Sprintf("listener %q failed during %s: %v", e.Listener, e.Phase, e.Cause)
}

// Unwrap returns the listener's underlying error.
func (e *ListenerError) Unwrap() error {
	return e.Cause
}

// New creates a StateMachine in PhaseUninitialized. A nil logger falls back
// to slog.Default().
func New(logger *slog.Logger) *StateMachine {
	if logger == nil {
		logger = slog.Default()
	}
	return &StateMachine{
		current: PhaseUninitialized,
		logger:  logger,
	}
}

// Current returns the phase the machine is in.
func (m *StateMachine) Current() Phase {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Subscribe appends a listener. Listeners are notified in subscription order
// on every subsequent transition; phases that already fired are not replayed.
func (m *StateMachine) Subscribe(l Listener) {
	if l == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// Advance moves the machine to next and fans the transition out to every
// subscribed listener. next must be the immediate successor of the current
// phase; anything else returns a TransitionError and leaves the machine
// untouched.
//
// The phase is updated before fan-out begins. A listener error aborts the
// remaining fan-out and is returned as a ListenerError, leaving the machine
// in the new phase with a partially completed notification; callers treat
// this as startup-fatal.
func (m *StateMachine) Advance(ctx context.Context, next Phase) error {
	if ok, err := next.IsValid(); !ok {
		return err
	}

	m.mu.Lock()
	if next != m.current+1 {
		from := m.current
		m.mu.Unlock()
		return &TransitionError{From: from, To: next}
	}
	m.current = next
	listeners := m.listeners
	m.mu.Unlock()

	m.logger.Debug("lifecycle transition", "phase", next, "listeners", len(listeners))

	for _, l := range listeners {
		if err := m.notify(ctx, l, next); err != nil {
			return &ListenerError{Phase: next, Listener: l.ListenerName(), Cause: err}
		}
	}
	return nil
}

// notify invokes the listener's handler for the given phase, if it has one.
func (m *StateMachine) notify(ctx context.Context, l Listener, phase Phase) error {
	switch phase {
	case PhasePreLibraryInit:
		if h, ok := l.(PreLibraryInitListener); ok {
			return h.OnPreLibraryInit(ctx)
		}
	case PhasePostLibraryInit:
		if h, ok := l.(PostLibraryInitListener); ok {
			return h.OnPostLibraryInit(ctx)
		}
	case PhasePreCacheInit:
		if h, ok := l.(PreCacheInitListener); ok {
			return h.OnPreCacheInit(ctx)
		}
	case PhasePostCacheInit:
		if h, ok := l.(PostCacheInitListener); ok {
			return h.OnPostCacheInit(ctx)
		}
	}
	return nil
}
