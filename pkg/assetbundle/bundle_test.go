// SPDX-License-Identifier: MPL-2.0

package assetbundle

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

// writeZip creates a zip file with the given entries at path.
func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	// Deterministic archive order for enumeration assertions.
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(entries[name])); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestIsContainerFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"swords.bundle", true},
		{"com.example.swords.assets", true},
		{"swords.bundle.manifest", false},
		{"weapon.json", false},
		{"noextension", false},
		{"9starts.bundle", false},
		{"has space.bundle", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsContainerFile(tt.name); got != tt.want {
				t.Errorf("IsContainerFile(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestOpen_ReadsEntries(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "swords.bundle")
	writeZip(t, path, map[string]string{
		"icons/sword.png": "png-bytes",
		"meshes/sword.obj": "obj-bytes",
	})

	b, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer b.Close() //nolint:errcheck // test cleanup

	if b.Name != "swords" {
		t.Errorf("Name = %q, want swords", b.Name)
	}
	want := []string{"icons/sword.png", "meshes/sword.obj"}
	if got := b.Entries(); !slices.Equal(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
	if !b.Has("icons/sword.png") || !b.Has(`icons\sword.png`) {
		t.Error("Has should match both separator styles")
	}

	data, err := b.ReadEntry("icons/sword.png")
	if err != nil {
		t.Fatalf("ReadEntry: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("ReadEntry = %q", data)
	}
}

func TestReadEntry_NotFound(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "swords.bundle")
	writeZip(t, path, map[string]string{"a.png": "x"})

	b, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close() //nolint:errcheck // test cleanup

	_, err = b.ReadEntry("missing.png")
	if !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}
	var enf *EntryNotFoundError
	if !errors.As(err, &enf) || enf.Entry != "missing.png" {
		t.Errorf("expected *EntryNotFoundError naming the entry, got %v", err)
	}
}

func TestClose_Idempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "swords.bundle")
	writeZip(t, path, map[string]string{"a.png": "x"})

	b, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if _, err := b.ReadEntry("a.png"); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed after close, got %v", err)
	}
}

func TestOpen_NotAZip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.bundle")
	if err := os.WriteFile(path, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); err == nil {
		t.Error("expected error opening non-zip container")
	}
}
