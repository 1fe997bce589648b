// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

type (
	// ModSpec describes a mod directory to materialize for a test.
	ModSpec struct {
		// ModId and ModName populate the AtlyssTools.json descriptor. An
		// empty ModId skips writing a descriptor entirely.
		ModId   string
		ModName string
		// Dependencies populates the descriptor's Dependencies list.
		Dependencies []string
		// Definitions maps definition file names (without directory) to raw
		// JSON content written under Assets/.
		Definitions map[string]string
		// Bundles maps container file names to their entries (entry name to
		// payload) written as zip archives under Assets/.
		Bundles map[string]map[string]string
		// CodeUnit, when true, drops a placeholder plugin artifact at the
		// mod root so discovery treats the mod as self-registering.
		CodeUnit bool
		// NoAssetsDir, when true, skips creating the Assets directory.
		NoAssetsDir bool
	}
)

// WriteMod materializes the spec as a mod directory under parent and
// returns the mod's root path.
func WriteMod(t testing.TB, parent string, spec ModSpec) string {
	t.Helper()

	name := spec.ModId
	if name == "" {
		name = "anonymous-mod"
	}
	root := filepath.Join(parent, name)
	MustMkdirAll(t, root, 0o755)

	if spec.ModId != "" {
		modName := spec.ModName
		if modName == "" {
			modName = spec.ModId
		}
		descriptor := fmt.Sprintf("{\n  %q: %q,\n  %q: %q", "ModId", spec.ModId, "ModName", modName)
		if len(spec.Dependencies) > 0 {
			descriptor += ",\n  \"Dependencies\": ["
			for i, dep := range spec.Dependencies {
				if i > 0 {
					descriptor += ", "
				}
				descriptor += fmt.Sprintf("%q", dep)
			}
			descriptor += "]"
		}
		descriptor += "\n}\n"
		MustWriteFile(t, filepath.Join(root, "AtlyssTools.json"), []byte(descriptor), 0o644)
	}

	if spec.CodeUnit {
		MustWriteFile(t, filepath.Join(root, name+".so"), []byte("\x7fELF"), 0o644)
	}

	if spec.NoAssetsDir {
		return root
	}

	assetsDir := filepath.Join(root, "Assets")
	MustMkdirAll(t, assetsDir, 0o755)

	for file, content := range spec.Definitions {
		MustWriteFile(t, filepath.Join(assetsDir, file), []byte(content), 0o644)
	}
	for file, entries := range spec.Bundles {
		WriteBundle(t, filepath.Join(assetsDir, file), entries)
	}
	return root
}

// WriteBundle writes a zip asset container with the given entries, in
// sorted entry order for deterministic enumeration.
func WriteBundle(t testing.TB, path string, entries map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create bundle %s: %v", path, err)
	}
	zw := zip.NewWriter(f)

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to add bundle entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(entries[name])); err != nil {
			t.Fatalf("failed to write bundle entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to finalize bundle %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close bundle %s: %v", path, err)
	}
}

// WeaponDef returns a minimal weapon definition JSON with the given name.
func WeaponDef(name string, damage int) string {
	return fmt.Sprintf(`{"category": "weapon", "name": %q, "damage": %d}`, name, damage)
}

// ArmorDef returns a minimal armor definition JSON with the given name.
func ArmorDef(name string, defense int, slot string) string {
	return fmt.Sprintf(`{"category": "armor", "name": %q, "defense": %d, "slot": %q}`, name, defense, slot)
}

// SkillDef returns a minimal skill definition JSON with the given name.
func SkillDef(name string) string {
	return fmt.Sprintf(`{"category": "skill", "name": %q}`, name)
}
