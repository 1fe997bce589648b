// SPDX-License-Identifier: MPL-2.0

package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/smb123w64gb/atlysstools/pkg/asset"
	"github.com/smb123w64gb/atlysstools/pkg/lifecycle"
	"github.com/smb123w64gb/atlysstools/pkg/moddef"
)

type (
	// Option configures a Loader at construction time.
	Option func(*Loader)

	// Loader is the mod-loading coordinator. It owns the mod record table,
	// the fixed manager table, the capability registries, and the lifecycle
	// state machine, and exposes the public asset resolution API.
	//
	// A Loader is constructed explicitly by the process entry point and
	// passed to the host integration layer; there is no package-level
	// singleton. The host drives all lifecycle calls; the mod table is
	// guarded by a mutex so plugin self-registration may arrive from a
	// different goroutine than the host's own hooks.
	Loader struct {
		logger         *slog.Logger
		pluginsRoot    string
		diagnosticsDir string
		hostCatalog    HostCatalog

		machine  *lifecycle.StateMachine
		managers *managerTable

		mu       sync.RWMutex
		mods     map[string]*ModRecord
		modOrder []string

		commands       *capabilityRegistry[Command]
		chatProcessors *capabilityRegistry[ChatProcessor]
	}

	// aggregateListener fans phase transitions out to every mod's callback
	// lists, and drives asset decoding at PreCacheInit. It subscribes after
	// the category managers so managers always observe a phase first.
	aggregateListener struct {
		l *Loader
	}
)

// WithLogger sets the loader's logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// WithPluginsRoot sets the directory scanned for asset-only mods.
func WithPluginsRoot(dir string) Option {
	return func(l *Loader) { l.pluginsRoot = dir }
}

// WithDiagnosticsDir sets the directory dump files are written to.
func WithDiagnosticsDir(dir string) Option {
	return func(l *Loader) { l.diagnosticsDir = dir }
}

// WithHostCatalog sets the host's native resource catalog, used as the last
// fallback for unqualified asset lookups.
func WithHostCatalog(c HostCatalog) Option {
	return func(l *Loader) { l.hostCatalog = c }
}

// New constructs a Loader with the fixed manager table (one manager per
// asset category) and subscribes every manager, then the loader's aggregate
// listener, to a fresh lifecycle state machine.
func New(opts ...Option) *Loader {
	l := &Loader{
		mods:           make(map[string]*ModRecord),
		commands:       newCapabilityRegistry[Command]("command"),
		chatProcessors: newCapabilityRegistry[ChatProcessor]("chat processor"),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}

	l.machine = lifecycle.New(l.logger)
	l.managers = newManagerTable()
	for _, cat := range asset.Categories() {
		l.managers.register(newCategoryManager(cat, l.logger))
	}
	for _, m := range l.managers.all() {
		l.machine.Subscribe(m)
	}
	l.machine.Subscribe(&aggregateListener{l: l})

	return l
}

// Phase returns the lifecycle phase the loader is in.
func (l *Loader) Phase() lifecycle.Phase {
	return l.machine.Current()
}

// StateMachine exposes the lifecycle machine so host integrations can
// subscribe additional listeners before startup begins.
func (l *Loader) StateMachine() *lifecycle.StateMachine {
	return l.machine
}

// NormalizeModId lowers a mod id to the canonical lookup form.
func NormalizeModId(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// LoadMod finds or creates the record for the given mod id and initializes
// it: the mod's containers are opened and its raw definition files are
// collected. Definition decode is deferred to PreCacheInit so every mod's
// containers are open before any JSON is decoded.
//
// A second call with the same normalized id returns the existing record
// unchanged. A missing assets directory is logged and leaves the record
// with zero containers; it is not an error.
func (l *Loader) LoadMod(id, path string) (*ModRecord, error) {
	normalized := NormalizeModId(id)
	if normalized == "" {
		return nil, fmt.Errorf("load mod: empty mod id")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if existing, ok := l.mods[normalized]; ok {
		l.logger.Debug("mod already registered", "mod", normalized)
		return existing, nil
	}

	rec := newModRecord(normalized, strings.TrimSpace(id), path)
	if moddef.Exists(path) {
		def, err := moddef.Load(path)
		if err != nil {
			// A broken descriptor beside an explicitly registered mod is a
			// configuration error; the mod still loads under its given id.
			l.logger.Error("ignoring malformed mod descriptor", "mod", normalized, "err", err)
		} else {
			rec.def = def
		}
	}
	rec.init(l.logger)

	l.mods[normalized] = rec
	l.modOrder = append(l.modOrder, normalized)
	l.logger.Info("mod loaded", "mod", normalized, "path", path,
		"bundles", len(rec.bundles), "definitions", len(rec.definitions))
	return rec, nil
}

// UnloadMod disposes the mod's record and removes it from the table. An
// unknown id is a no-op. Managers are not notified; callers must not hold
// references into the mod's assets after this call.
func (l *Loader) UnloadMod(id string) {
	normalized := NormalizeModId(id)

	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.mods[normalized]
	if !ok {
		return
	}
	rec.dispose(l.logger)
	delete(l.mods, normalized)
	for i, mid := range l.modOrder {
		if mid == normalized {
			l.modOrder = append(l.modOrder[:i], l.modOrder[i+1:]...)
			break
		}
	}
	l.logger.Info("mod unloaded", "mod", normalized)
}

// Mod returns the record for the given id.
func (l *Loader) Mod(id string) (*ModRecord, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	rec, ok := l.mods[NormalizeModId(id)]
	return rec, ok
}

// Mods returns the registered records in registration order.
func (l *Loader) Mods() []*ModRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modsLocked()
}

func (l *Loader) modsLocked() []*ModRecord {
	out := make([]*ModRecord, 0, len(l.modOrder))
	for _, id := range l.modOrder {
		out = append(out, l.mods[id])
	}
	return out
}

// ModCount returns the number of registered mods.
func (l *Loader) ModCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.mods)
}

// --- Per-mod lifecycle callback registration ---

// RegisterPreLibraryInit appends a callback to the mod's pre-library-init
// list. Registering after the phase already fired still appends, but the
// callback will never be invoked (phases do not replay).
func (l *Loader) RegisterPreLibraryInit(id string, cb Callback) error {
	return l.registerCallback(id, callbackPreLibrary, cb)
}

// RegisterPostLibraryInit appends a callback to the mod's post-library-init list.
func (l *Loader) RegisterPostLibraryInit(id string, cb Callback) error {
	return l.registerCallback(id, callbackPostLibrary, cb)
}

// RegisterPreCacheInit appends a callback to the mod's pre-cache-init list.
func (l *Loader) RegisterPreCacheInit(id string, cb Callback) error {
	return l.registerCallback(id, callbackPreCache, cb)
}

// RegisterPostCacheInit appends a callback to the mod's post-cache-init list.
func (l *Loader) RegisterPostCacheInit(id string, cb Callback) error {
	return l.registerCallback(id, callbackPostCache, cb)
}

func (l *Loader) registerCallback(id string, phase callbackPhase, cb Callback) error {
	if cb == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, ok := l.mods[NormalizeModId(id)]
	if !ok {
		return fmt.Errorf("register callback for mod %q: %w", id, ErrModNotFound)
	}
	list := rec.callbackList(phase)
	*list = append(*list, cb)
	return nil
}

// --- Aggregate listener ---

// ListenerName implements lifecycle.Listener.
func (a *aggregateListener) ListenerName() string {
	return "atlysstools-loader"
}

// OnPreLibraryInit implements lifecycle.PreLibraryInitListener.
func (a *aggregateListener) OnPreLibraryInit(ctx context.Context) error {
	return a.l.runCallbacks(ctx, callbackPreLibrary)
}

// OnPostLibraryInit implements lifecycle.PostLibraryInitListener.
func (a *aggregateListener) OnPostLibraryInit(ctx context.Context) error {
	return a.l.runCallbacks(ctx, callbackPostLibrary)
}

// OnPreCacheInit implements lifecycle.PreCacheInitListener. Every (mod,
// manager) pair decodes first, in mod registration order and fixed manager
// order, so every mod's pre-cache callbacks observe the complete decoded
// asset set of every mod.
func (a *aggregateListener) OnPreCacheInit(ctx context.Context) error {
	if err := a.l.decodeAllAssets(ctx); err != nil {
		return err
	}
	return a.l.runCallbacks(ctx, callbackPreCache)
}

// OnPostCacheInit implements lifecycle.PostCacheInitListener.
func (a *aggregateListener) OnPostCacheInit(ctx context.Context) error {
	return a.l.runCallbacks(ctx, callbackPostCache)
}

func (l *Loader) decodeAllAssets(ctx context.Context) error {
	l.mu.RLock()
	mods := l.modsLocked()
	l.mu.RUnlock()

	managers := l.managers.all()
	for _, rec := range mods {
		// Report unparsable definition files once, before any manager runs.
		for _, def := range rec.definitionFiles() {
			if _, err := asset.SniffCategory(def.raw, def.path); err != nil {
				l.logger.Error("skipping unreadable asset definition",
					"mod", rec.Id(), "file", def.path, "err", err)
			}
		}
		for _, m := range managers {
			if err := m.LoadModAssets(ctx, rec); err != nil {
				return fmt.Errorf("decode %s assets for mod %q: %w", m.Category(), rec.Id(), err)
			}
		}
	}
	return nil
}

// runCallbacks fans one phase out across every mod's callback list. The
// lists are snapshotted under the loader mutex before any callback runs:
// a registration arriving mid-fan-out appends to the live list but is not
// part of this phase's snapshot, so it is never invoked (phases do not
// replay).
func (l *Loader) runCallbacks(ctx context.Context, phase callbackPhase) error {
	type modCallbacks struct {
		id  string
		cbs []Callback
	}

	l.mu.RLock()
	snapshot := make([]modCallbacks, 0, len(l.modOrder))
	for _, rec := range l.modsLocked() {
		list := *rec.callbackList(phase)
		cbs := make([]Callback, len(list))
		copy(cbs, list)
		snapshot = append(snapshot, modCallbacks{id: rec.Id(), cbs: cbs})
	}
	l.mu.RUnlock()

	for _, mc := range snapshot {
		for i, cb := range mc.cbs {
			if err := cb(ctx); err != nil {
				return fmt.Errorf("mod %q callback %d: %w", mc.id, i, err)
			}
		}
	}
	return nil
}

// advance drives the state machine, translating transition rejections into
// errors the host integration can log with context.
func (l *Loader) advance(ctx context.Context, phase lifecycle.Phase) error {
	if err := l.machine.Advance(ctx, phase); err != nil {
		var te *lifecycle.TransitionError
		if errors.As(err, &te) {
			return fmt.Errorf("host signaled %s out of order: %w", phase, err)
		}
		return err
	}
	return nil
}
