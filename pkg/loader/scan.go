// SPDX-License-Identifier: MPL-2.0

package loader

import (
	"context"
	"fmt"

	"github.com/smb123w64gb/atlysstools/internal/discovery"
)

type (
	// ScanDiagnostic is a non-fatal finding from an asset-only mod scan,
	// mirrored from the discovery layer so callers outside this module can
	// render it.
	ScanDiagnostic struct {
		Severity string
		Code     string
		Message  string
		Path     string
	}

	// ScanReport summarizes one ScanAssetOnlyMods pass.
	ScanReport struct {
		// Loaded lists the normalized ids of asset-only mods registered by
		// this pass, in load (dependency) order.
		Loaded []string
		// SkippedCodeUnits lists directories left for self-registration
		// because they ship a plugin artifact.
		SkippedCodeUnits []string
		// Diagnostics carries the scan's non-fatal findings.
		Diagnostics []ScanDiagnostic
	}
)

// ScanAssetOnlyMods walks the plugins root and registers every asset-only
// mod (descriptor present, no code unit) under its descriptor id, in
// dependency order. Directories with a code unit are skipped; their own
// initialization is expected to call LoadMod. Malformed descriptors and
// dependency problems surface as diagnostics, never as errors.
func (l *Loader) ScanAssetOnlyMods(ctx context.Context) (*ScanReport, error) {
	if l.pluginsRoot == "" {
		return nil, fmt.Errorf("scan asset-only mods: no plugins root configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scan asset-only mods canceled: %w", err)
	}

	result, err := discovery.Scan(l.pluginsRoot)
	if err != nil {
		return nil, fmt.Errorf("scan asset-only mods: %w", err)
	}

	report := &ScanReport{}
	for _, d := range result.Diagnostics {
		l.logger.Warn("mod discovery diagnostic",
			"severity", d.Severity, "code", d.Code, "path", d.Path, "msg", d.Message)
		report.Diagnostics = append(report.Diagnostics, ScanDiagnostic{
			Severity: string(d.Severity),
			Code:     string(d.Code),
			Message:  d.Message,
			Path:     d.Path,
		})
	}

	for _, mod := range result.Mods {
		if mod.HasCodeUnit() {
			l.logger.Debug("skipping mod with code unit; it self-registers",
				"mod", mod.Def.NormalizedId(), "codeunit", mod.CodeUnit)
			report.SkippedCodeUnits = append(report.SkippedCodeUnits, mod.Dir)
			continue
		}
		rec, loadErr := l.LoadMod(mod.Def.ModId, mod.Dir)
		if loadErr != nil {
			return nil, loadErr
		}
		report.Loaded = append(report.Loaded, rec.Id())
	}
	return report, nil
}
