// SPDX-License-Identifier: MPL-2.0

package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// AssetDumpFileName is the per-manager decoded asset listing.
	AssetDumpFileName = "atlysstools_assets.txt"
	// BundleDumpFileName is the per-container declared entry listing.
	BundleDumpFileName = "atlysstools_bundles.txt"
)

// WriteDump writes two line-oriented diagnostic listings into the
// diagnostics directory: every mod's decoded assets grouped by manager, and
// every mod's container-declared entry names grouped by bundle. The format
// is for human inspection only, not round-trip parsing. Returns the two
// file paths.
func (l *Loader) WriteDump() (assetsPath, bundlesPath string, err error) {
	if l.diagnosticsDir == "" {
		return "", "", fmt.Errorf("write dump: no diagnostics directory configured")
	}
	if err := os.MkdirAll(l.diagnosticsDir, 0o755); err != nil {
		return "", "", fmt.Errorf("create diagnostics directory: %w", err)
	}

	assetsPath = filepath.Join(l.diagnosticsDir, AssetDumpFileName)
	bundlesPath = filepath.Join(l.diagnosticsDir, BundleDumpFileName)

	if err := os.WriteFile(assetsPath, []byte(l.renderAssetDump()), 0o644); err != nil {
		return "", "", fmt.Errorf("write asset dump: %w", err)
	}
	if err := os.WriteFile(bundlesPath, []byte(l.renderBundleDump()), 0o644); err != nil {
		return "", "", fmt.Errorf("write bundle dump: %w", err)
	}
	l.logger.Info("dump written", "assets", assetsPath, "bundles", bundlesPath)
	return assetsPath, bundlesPath, nil
}

// renderAssetDump lists every (mod, manager, asset) triple exactly once:
// mods in registration order, managers in fixed table order, assets in
// decode order.
func (l *Loader) renderAssetDump() string {
	var b strings.Builder
	for _, rec := range l.Mods() {
		fmt.Fprintf(&b, "Mod: %s\n", rec.Id())
		for _, m := range l.managers.all() {
			assets := rec.Assets(m.Category())
			if len(assets) == 0 {
				continue
			}
			fmt.Fprintf(&b, "Manager: %s\n", m.Category())
			for _, a := range assets {
				fmt.Fprintf(&b, "%s\n", a.AssetName())
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderBundleDump lists every (mod, bundle, entry) triple exactly once:
// mods in registration order, bundles in open order, entries in archive
// order.
func (l *Loader) renderBundleDump() string {
	var b strings.Builder
	for _, rec := range l.Mods() {
		fmt.Fprintf(&b, "Mod: %s\n", rec.Id())
		for _, bundle := range rec.Bundles() {
			fmt.Fprintf(&b, "Bundle: %s\n", bundle.Name)
			for _, entry := range bundle.Entries() {
				fmt.Fprintf(&b, "%s\n", entry)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
