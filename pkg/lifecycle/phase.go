// SPDX-License-Identifier: MPL-2.0

package lifecycle

import (
	"errors"
	"fmt"
)

const (
	// PhaseUninitialized is the initial phase before any host signal arrived.
	PhaseUninitialized Phase = iota
	// PhasePreLibraryInit fires before the host builds its skill library.
	PhasePreLibraryInit
	// PhasePostLibraryInit fires after the host built its skill library.
	PhasePostLibraryInit
	// PhasePreCacheInit fires before the host builds its asset cache. Mod
	// asset definitions are decoded during this phase, before any per-mod
	// pre-cache callback runs.
	PhasePreCacheInit
	// PhasePostCacheInit fires after the host built its asset cache.
	PhasePostCacheInit
	// PhaseReady is the terminal phase for normal operation.
	PhaseReady
)

// ErrInvalidPhase is the sentinel error wrapped by InvalidPhaseError.
var ErrInvalidPhase = errors.New("invalid phase")

type (
	// Phase is one step of the fixed startup lifecycle sequence.
	Phase int

	// InvalidPhaseError is returned when a Phase value is outside the known
	// range. It wraps ErrInvalidPhase for errors.Is() compatibility.
	InvalidPhaseError struct {
		Value Phase
	}
)

// Error implements the error interface.
func (e *InvalidPhaseError) Error() string {
	return fmt.Sprintf("invalid phase %d", int(e.Value))
}

// Unwrap returns the sentinel for errors.Is() checks.
func (e *InvalidPhaseError) Unwrap() error {
	return ErrInvalidPhase
}

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhasePreLibraryInit:
		return "pre-library-init"
	case PhasePostLibraryInit:
		return "post-library-init"
	case PhasePreCacheInit:
		return "pre-cache-init"
	case PhasePostCacheInit:
		return "post-cache-init"
	case PhaseReady:
		return "ready"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// IsValid reports whether the phase is one of the declared constants.
func (p Phase) IsValid() (bool, error) {
	if p < PhaseUninitialized || p > PhaseReady {
		return false, &InvalidPhaseError{Value: p}
	}
	return true, nil
}

// Next returns the successor phase in the fixed forward order. The successor
// of PhaseReady is PhaseReady itself; the state machine rejects the
// transition because a phase never repeats.
func (p Phase) Next() Phase {
	if p >= PhaseReady {
		return PhaseReady
	}
	return p + 1
}
