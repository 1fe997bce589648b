// SPDX-License-Identifier: MPL-2.0

package loader

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/smb123w64gb/atlysstools/pkg/asset"
	"github.com/smb123w64gb/atlysstools/pkg/assetbundle"
	"github.com/smb123w64gb/atlysstools/pkg/moddef"
)

// AssetsDirName is the conventional assets directory inside a mod's root.
const AssetsDirName = "Assets"

type (
	// Callback is a per-mod lifecycle callback. Callbacks run synchronously
	// during phase fan-out; an error aborts the startup sequence.
	Callback func(ctx context.Context) error

	// definitionFile is a raw JSON asset definition awaiting decode.
	definitionFile struct {
		path string
		raw  []byte
	}

	// ModRecord is one mod's state: identity, filesystem root, opened asset
	// containers, decoded assets, and the four phase callback lists.
	//
	// The identity fields and descriptor are immutable after registration.
	// Everything else is guarded by mu, so asset lookups may run on a
	// different goroutine than the host's lifecycle hooks. The callback
	// lists are the exception: they are guarded by the owning Loader's
	// mutex, which serializes registration against fan-out snapshots.
	ModRecord struct {
		id       string // normalized lookup key
		declared string // id as first registered, for display
		path     string
		def      *moddef.ModDef

		// mu guards the container, definition, and asset state below.
		mu sync.RWMutex

		bundles     []*assetbundle.Bundle
		definitions []definitionFile

		// assets and assetOrder are populated by the category managers
		// during PreCacheInit. assetOrder preserves decode order per
		// category for deterministic enumeration.
		assets     map[asset.Category]map[string]asset.Asset
		assetOrder map[asset.Category][]string

		preLibraryCallbacks  []Callback
		postLibraryCallbacks []Callback
		preCacheCallbacks    []Callback
		postCacheCallbacks   []Callback

		initialized bool
		disposed    bool
	}
)

func newModRecord(normalizedID, declaredID, path string) *ModRecord {
	return &ModRecord{
		id:         normalizedID,
		declared:   declaredID,
		path:       path,
		assets:     make(map[asset.Category]map[string]asset.Asset),
		assetOrder: make(map[asset.Category][]string),
	}
}

// Id returns the normalized (lowercase) mod id used as lookup key.
func (r *ModRecord) Id() string { return r.id }

// DeclaredId returns the id as it was first registered, for display.
func (r *ModRecord) DeclaredId() string { return r.declared }

// Path returns the mod's root directory.
func (r *ModRecord) Path() string { return r.path }

// Def returns the parsed descriptor, or nil when the mod has none.
func (r *ModRecord) Def() *moddef.ModDef { return r.def }

// Bundles returns the mod's opened asset containers in open order.
func (r *ModRecord) Bundles() []*assetbundle.Bundle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*assetbundle.Bundle, len(r.bundles))
	copy(out, r.bundles)
	return out
}

// definitionFiles returns a snapshot of the mod's raw definition files, so
// managers can iterate without holding the record lock across decodes.
func (r *ModRecord) definitionFiles() []definitionFile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]definitionFile, len(r.definitions))
	copy(out, r.definitions)
	return out
}

// init opens the mod's asset containers and collects its raw definition
// files. It is idempotent; a missing assets directory is a non-fatal
// configuration error (logged, zero containers).
func (r *ModRecord) init(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized || r.disposed {
		return
	}
	r.initialized = true

	assetsDir := filepath.Join(r.path, AssetsDirName)
	entries, err := os.ReadDir(assetsDir)
	if err != nil {
		logger.Error("mod has no readable assets directory",
			"mod", r.id, "dir", assetsDir, "err", err)
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		full := filepath.Join(assetsDir, name)
		ext := strings.ToLower(filepath.Ext(name))
		switch {
		case ext == assetbundle.ManifestExt:
			// Host-side container metadata, never opened.
		case ext == ".json":
			raw, readErr := os.ReadFile(full)
			if readErr != nil {
				logger.Error("skipping unreadable asset definition",
					"mod", r.id, "file", full, "err", readErr)
				continue
			}
			r.definitions = append(r.definitions, definitionFile{path: full, raw: raw})
		case assetbundle.IsContainerFile(name):
			b, openErr := assetbundle.Open(full)
			if openErr != nil {
				logger.Error("skipping unreadable asset container",
					"mod", r.id, "file", full, "err", openErr)
				continue
			}
			r.bundles = append(r.bundles, b)
		default:
			logger.Warn("ignoring unrecognized file in assets directory",
				"mod", r.id, "file", full)
		}
	}

	logger.Debug("mod initialized",
		"mod", r.id, "bundles", len(r.bundles), "definitions", len(r.definitions))
}

// storeAsset records a decoded asset under its normalized name. A second
// asset with the same normalized name in the same category is rejected so a
// mod cannot shadow its own assets; the manager logs and skips it.
func (r *ModRecord) storeAsset(a asset.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cat := a.Category()
	key := asset.NormalizeName(a.AssetName())
	byName := r.assets[cat]
	if byName == nil {
		byName = make(map[string]asset.Asset)
		r.assets[cat] = byName
	}
	if _, dup := byName[key]; dup {
		return fmt.Errorf("mod %q defines %s asset %q more than once", r.id, cat, key)
	}
	byName[key] = a
	r.assetOrder[cat] = append(r.assetOrder[cat], key)
	return nil
}

// LoadAsset looks name up among this mod's decoded assets of the given
// category. Absence is not an error; callers decide whether to escalate.
func (r *ModRecord) LoadAsset(cat asset.Category, name string) (asset.Asset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.disposed {
		return nil, false
	}
	a, ok := r.assets[cat][asset.NormalizeName(name)]
	return a, ok
}

// Assets returns this mod's decoded assets of the given category in decode
// order.
func (r *ModRecord) Assets(cat asset.Category) []asset.Asset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.disposed {
		return nil
	}
	keys := r.assetOrder[cat]
	out := make([]asset.Asset, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.assets[cat][k])
	}
	return out
}

// hasBundleEntry reports whether any of the mod's containers declare the
// named payload.
func (r *ModRecord) hasBundleEntry(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.bundles {
		if b.Has(name) {
			return true
		}
	}
	return false
}

// callbacks returns the callback list address for the given phase pair.
func (r *ModRecord) callbackList(phase callbackPhase) *[]Callback {
	switch phase {
	case callbackPreLibrary:
		return &r.preLibraryCallbacks
	case callbackPostLibrary:
		return &r.postLibraryCallbacks
	case callbackPreCache:
		return &r.preCacheCallbacks
	default:
		return &r.postCacheCallbacks
	}
}

// dispose releases the mod's asset containers. The record must not be used
// for asset resolution afterwards; the Loader removes it from the table in
// the same operation.
func (r *ModRecord) dispose(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.disposed {
		return
	}
	r.disposed = true
	for _, b := range r.bundles {
		if err := b.Close(); err != nil {
			logger.Warn("failed to close asset bundle", "mod", r.id, "bundle", b.Name, "err", err)
		}
	}
	r.bundles = nil
	r.definitions = nil
	r.assets = nil
	r.assetOrder = nil
}

// callbackPhase indexes the four per-mod callback lists.
type callbackPhase int

const (
	callbackPreLibrary callbackPhase = iota
	callbackPostLibrary
	callbackPreCache
	callbackPostCache
)
