// SPDX-License-Identifier: MPL-2.0

// Package lifecycle defines the ordered startup phases of the mod loader and
// the state machine that fans phase transitions out to registered listeners.
//
// The host integration layer drives the machine through exactly four
// transitions per process run (PreLibraryInit, PostLibraryInit, PreCacheInit,
// PostCacheInit); the loader then advances to Ready itself. Transitions are
// strictly forward: requesting anything other than the immediate successor of
// the current phase fails with a TransitionError, so a phase can never fire
// twice and listeners can never observe phases out of order.
package lifecycle
