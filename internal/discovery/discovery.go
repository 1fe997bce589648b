// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/smb123w64gb/atlysstools/internal/dag"
	"github.com/smb123w64gb/atlysstools/pkg/moddef"
)

// CodeUnitExt is the file extension of a mod's compiled plugin artifact.
// Directories containing one are expected to self-register with the loader
// when their code initializes, so discovery reports but does not load them.
const CodeUnitExt = ".so"

type (
	// DiscoveredMod is one mod directory found under the plugins root.
	DiscoveredMod struct {
		// Dir is the mod's root directory.
		Dir string
		// Def is the parsed descriptor.
		Def *moddef.ModDef
		// CodeUnit is the path of the mod's plugin artifact, empty for
		// asset-only mods.
		CodeUnit string
	}

	// Result bundles discovered mods with the diagnostics produced while
	// scanning. Mods are in dependency order: a mod always appears after
	// the mods it depends on.
	Result struct {
		Mods        []DiscoveredMod
		Diagnostics []Diagnostic
	}
)

// HasCodeUnit reports whether the mod ships executable code.
func (m DiscoveredMod) HasCodeUnit() bool {
	return m.CodeUnit != ""
}

// Scan walks the immediate subdirectories of root looking for mod
// descriptors. Only an unreadable root is an error; everything wrong with an
// individual mod becomes a Diagnostic and the scan continues.
func Scan(root string) (*Result, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read plugins root %s: %w", root, err)
	}

	result := &Result{}
	byID := make(map[string]*DiscoveredMod)
	var order []string // normalized ids in scan order

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		if !moddef.Exists(dir) {
			continue // not a mod directory
		}

		def, err := moddef.Load(dir)
		if err != nil {
			result.Diagnostics = append(result.Diagnostics, errorDiag(
				CodeDescriptorParseSkipped, dir,
				fmt.Sprintf("skipping %s: %v", entry.Name(), err), err))
			continue
		}

		id := def.NormalizedId()
		if first, dup := byID[id]; dup {
			result.Diagnostics = append(result.Diagnostics, errorDiag(
				CodeDuplicateModId, dir,
				fmt.Sprintf("mod id %q already declared by %s", id, first.Dir), nil))
			continue
		}

		byID[id] = &DiscoveredMod{Dir: dir, Def: def, CodeUnit: findCodeUnit(dir)}
		order = append(order, id)
	}

	result.Mods = orderByDependencies(byID, order, &result.Diagnostics)
	return result, nil
}

// findCodeUnit returns the path of the first plugin artifact directly inside
// dir, or empty when the mod is asset-only.
func findCodeUnit(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), CodeUnitExt) {
			return filepath.Join(dir, entry.Name())
		}
	}
	return ""
}

// orderByDependencies topologically sorts mods so dependencies load first.
// Missing dependencies degrade to warnings; cycle members are skipped with
// an error diagnostic that names them, and mods that merely depend on a
// cycle member are skipped alongside without being blamed for the cycle.
func orderByDependencies(byID map[string]*DiscoveredMod, order []string, diags *[]Diagnostic) []DiscoveredMod {
	g := dag.New()
	for _, id := range order {
		g.AddNode(id)
	}
	for _, id := range order {
		for _, dep := range byID[id].Def.Dependencies {
			depID := strings.ToLower(strings.TrimSpace(dep))
			if _, known := byID[depID]; !known {
				*diags = append(*diags, warnDiag(
					CodeDependencyMissing, byID[id].Dir,
					fmt.Sprintf("mod %q depends on %q, which was not found", id, depID), nil))
				continue
			}
			g.AddEdge(depID, id)
		}
	}

	sorted, err := g.TopologicalSort()
	if err != nil {
		var cycleErr *dag.CycleError
		if !errors.As(err, &cycleErr) {
			// TopologicalSort only fails with CycleError; fall back to scan
			// order if that ever changes.
			return modsInOrder(byID, order)
		}
		skip := make(map[string]bool, len(cycleErr.Cycle)+len(cycleErr.Blocked))
		for _, id := range cycleErr.Cycle {
			skip[id] = true
		}
		for _, id := range cycleErr.Blocked {
			skip[id] = true
		}
		msg := fmt.Sprintf("dependency cycle between mods: %s", strings.Join(cycleErr.Cycle, ", "))
		if len(cycleErr.Blocked) > 0 {
			msg += fmt.Sprintf("; skipping mods blocked by the cycle: %s", strings.Join(cycleErr.Blocked, ", "))
		}
		*diags = append(*diags, errorDiag(CodeDependencyCycle, "", msg, err))

		var kept []string
		for _, id := range order {
			if !skip[id] {
				kept = append(kept, id)
			}
		}
		// Re-sort the survivors; their subgraph is acyclic.
		return orderByDependencies(pruned(byID, kept), kept, diags)
	}
	return modsInOrder(byID, sorted)
}

func modsInOrder(byID map[string]*DiscoveredMod, ids []string) []DiscoveredMod {
	out := make([]DiscoveredMod, 0, len(ids))
	for _, id := range ids {
		out = append(out, *byID[id])
	}
	return out
}

func pruned(byID map[string]*DiscoveredMod, keep []string) map[string]*DiscoveredMod {
	out := make(map[string]*DiscoveredMod, len(keep))
	for _, id := range keep {
		out[id] = byID[id]
	}
	return out
}
