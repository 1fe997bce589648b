// SPDX-License-Identifier: MPL-2.0

// Package hostcat provides a directory-backed host catalog.
//
// The live game resolves unqualified asset names against its own native
// resources as a last resort. Outside the game process (the CLI, tests),
// this package stands in for that catalog: a root directory holds one
// subdirectory per asset category, each containing plain JSON definition
// files in the same format mods use.
//
//	catalog/
//	├── weapon/
//	│   └── rusty-blade.json
//	└── skill/
//	    └── dash.json
package hostcat

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/smb123w64gb/atlysstools/pkg/asset"
)

// Catalog is a read-only asset catalog loaded from a directory tree. It
// implements loader.HostCatalog.
type Catalog struct {
	root   string
	assets map[asset.Category]map[string]asset.Asset
}

// Open loads every definition under root. Category subdirectories that do
// not exist are fine; files that fail to decode are skipped with a log line
// so a broken catalog entry never takes the tool down.
func Open(root string, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("open host catalog %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open host catalog %s: not a directory", root)
	}

	c := &Catalog{
		root:   root,
		assets: make(map[asset.Category]map[string]asset.Asset),
	}
	for _, cat := range asset.Categories() {
		dir := filepath.Join(root, string(cat))
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue // category absent from this catalog
		}
		byName := make(map[string]asset.Asset)
		for _, entry := range entries {
			if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			raw, readErr := os.ReadFile(path)
			if readErr != nil {
				logger.Warn("skipping unreadable catalog entry", "file", path, "err", readErr)
				continue
			}
			a, decErr := asset.DecodeAs(cat, raw, path)
			if decErr != nil {
				logger.Warn("skipping invalid catalog entry", "file", path, "err", decErr)
				continue
			}
			byName[asset.NormalizeName(a.AssetName())] = a
		}
		if len(byName) > 0 {
			c.assets[cat] = byName
		}
	}
	return c, nil
}

// Root returns the catalog's root directory.
func (c *Catalog) Root() string { return c.root }

// Len returns the total number of catalog assets across all categories.
func (c *Catalog) Len() int {
	n := 0
	for _, byName := range c.assets {
		n += len(byName)
	}
	return n
}

// Lookup implements loader.HostCatalog.
func (c *Catalog) Lookup(cat asset.Category, name string) (asset.Asset, bool, error) {
	a, ok := c.assets[cat][asset.NormalizeName(name)]
	return a, ok, nil
}
