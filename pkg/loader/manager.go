// SPDX-License-Identifier: MPL-2.0

package loader

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/smb123w64gb/atlysstools/pkg/asset"
	"github.com/smb123w64gb/atlysstools/pkg/lifecycle"
)

type (
	// Manager is a singleton governing one asset category: it claims and
	// decodes that category's definition files when a mod's assets load,
	// and participates in lifecycle fan-out as a listener.
	Manager interface {
		lifecycle.Listener

		// Category returns the category this manager governs.
		Category() asset.Category

		// LoadModAssets decodes the mod's raw definition files belonging to
		// this manager's category and stores the results on the record.
		// Malformed definitions are configuration errors: logged and
		// skipped, never fatal.
		LoadModAssets(ctx context.Context, rec *ModRecord) error
	}

	// categoryManager is the stock Manager implementation shared by all
	// categories; per-category behavior lives entirely in the schema.
	categoryManager struct {
		cat     asset.Category
		logger  *slog.Logger
		decoded int
	}

	// managerTable is the fixed set of managers keyed by category,
	// preserving registration order for deterministic fan-out and decode.
	managerTable struct {
		order []asset.Category
		byCat map[asset.Category]Manager
	}
)

func newCategoryManager(cat asset.Category, logger *slog.Logger) *categoryManager {
	return &categoryManager{cat: cat, logger: logger}
}

// ListenerName implements lifecycle.Listener.
func (m *categoryManager) ListenerName() string {
	return "manager:" + string(m.cat)
}

// Category implements Manager.
func (m *categoryManager) Category() asset.Category {
	return m.cat
}

// LoadModAssets implements Manager. It sniffs each raw definition's declared
// category, claims the matching ones, validates them against the category
// schema, and stores the decoded assets on the record. Dangling bundle
// references are logged as configuration errors but do not reject the asset.
func (m *categoryManager) LoadModAssets(_ context.Context, rec *ModRecord) error {
	for _, def := range rec.definitionFiles() {
		cat, err := asset.SniffCategory(def.raw, def.path)
		if err != nil {
			// Unparsable files are reported once by the loader before the
			// managers run; every manager sees the same list.
			continue
		}
		if cat != m.cat {
			continue
		}

		decoded, err := asset.DecodeAs(m.cat, def.raw, def.path)
		if err != nil {
			m.logger.Error("skipping invalid asset definition",
				"mod", rec.Id(), "category", m.cat, "file", def.path, "err", err)
			continue
		}

		for _, ref := range asset.BundleRefs(decoded) {
			if !rec.hasBundleEntry(ref) {
				m.logger.Error("asset references a missing bundle entry",
					"mod", rec.Id(), "asset", decoded.AssetName(), "entry", ref)
			}
		}

		if err := rec.storeAsset(decoded); err != nil {
			m.logger.Error("skipping duplicate asset definition",
				"mod", rec.Id(), "category", m.cat, "file", def.path, "err", err)
			continue
		}
		m.decoded++
	}
	return nil
}

// OnPostCacheInit implements lifecycle.PostCacheInitListener, reporting the
// manager's decode tally once startup settles.
func (m *categoryManager) OnPostCacheInit(context.Context) error {
	m.logger.Debug("asset category ready", "category", m.cat, "assets", m.decoded)
	return nil
}

func newManagerTable() *managerTable {
	return &managerTable{byCat: make(map[asset.Category]Manager)}
}

// register adds a manager to the table. A second manager for the same
// category is a programming error, not a runtime condition.
func (t *managerTable) register(m Manager) {
	cat := m.Category()
	if _, dup := t.byCat[cat]; dup {
		panic(fmt.Sprintf("loader: manager for category %q registered twice", cat))
	}
	t.byCat[cat] = m
	t.order = append(t.order, cat)
}

// all returns the managers in registration order.
func (t *managerTable) all() []Manager {
	out := make([]Manager, 0, len(t.order))
	for _, cat := range t.order {
		out = append(out, t.byCat[cat])
	}
	return out
}
