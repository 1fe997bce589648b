// SPDX-License-Identifier: MPL-2.0

// Package assetbundle opens mod asset containers.
//
// A container is a zip archive living in a mod's Assets directory, holding
// named binary payloads (icons, meshes, audio) that asset definitions
// reference by entry name. Sibling "*.manifest" files describe containers to
// the host game and are never opened as containers themselves.
//
// Container naming rules:
//   - The base name (before the extension) must start with a letter and
//     contain only alphanumerics, with optional dot-separated segments,
//     compatible with RDNS naming (e.g., "com.example.swords").
//   - "*.manifest" and "*.json" files in the same directory are not
//     containers (manifests are host metadata, JSON files are definitions).
package assetbundle

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// ManifestExt marks host-side container metadata files that enumeration
	// must skip.
	ManifestExt = ".manifest"

	// definitionExt marks JSON asset definition files, which are handled by
	// the asset managers rather than opened as containers.
	definitionExt = ".json"
)

var (
	// ErrClosed is returned when reading from a disposed bundle.
	ErrClosed = errors.New("asset bundle is closed")

	// ErrEntryNotFound is the sentinel error wrapped by EntryNotFoundError.
	ErrEntryNotFound = errors.New("bundle entry not found")

	// bundleNameRegex validates the container base name (before the
	// extension). Compatible with RDNS naming (e.g., "com.example.swords").
	bundleNameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]*(\.[a-zA-Z][a-zA-Z0-9]*)*$`)
)

type (
	// Bundle is an opened asset container.
	Bundle struct {
		// Path is the absolute path to the container file.
		Path string
		// Name is the container base name without extension.
		Name string

		rc      *zip.ReadCloser
		entries []string
		byName  map[string]*zip.File
	}

	// EntryNotFoundError is returned when a named payload is absent from a
	// bundle. It wraps ErrEntryNotFound for errors.Is() compatibility.
	EntryNotFoundError struct {
		Bundle string
		Entry  string
	}
)

// Error implements the error interface.
func (e *EntryNotFoundError) Error() string {
	return fmt.Sprintf("bundle %q has no entry %q", e.Bundle, e.Entry)
}

// Unwrap returns the sentinel for errors.Is() checks.
func (e *EntryNotFoundError) Unwrap() error {
	return ErrEntryNotFound
}

// IsContainerFile reports whether the file name looks like an asset
// container: not a manifest, not a JSON definition, and carrying a valid
// container base name.
func IsContainerFile(name string) bool {
	base := filepath.Base(name)
	ext := strings.ToLower(filepath.Ext(base))
	if ext == ManifestExt || ext == definitionExt || ext == "" {
		return false
	}
	return bundleNameRegex.MatchString(strings.TrimSuffix(base, filepath.Ext(base)))
}

// Open opens the container at path and indexes its entries. Entry names are
// normalized to forward slashes; the zip's declared order is preserved for
// enumeration.
func Open(path string) (*Bundle, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open asset bundle %s: %w", path, err)
	}

	base := filepath.Base(path)
	b := &Bundle{
		Path:   path,
		Name:   strings.TrimSuffix(base, filepath.Ext(base)),
		rc:     rc,
		byName: make(map[string]*zip.File, len(rc.File)),
	}
	for _, f := range rc.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := strings.ReplaceAll(f.Name, `\`, "/")
		if _, dup := b.byName[name]; dup {
			continue // first declaration wins
		}
		b.byName[name] = f
		b.entries = append(b.entries, name)
	}
	return b, nil
}

// Entries returns the payload names declared by the container, in archive
// order.
func (b *Bundle) Entries() []string {
	out := make([]string, len(b.entries))
	copy(out, b.entries)
	return out
}

// Has reports whether the container declares the named payload.
func (b *Bundle) Has(name string) bool {
	_, ok := b.byName[strings.ReplaceAll(name, `\`, "/")]
	return ok
}

// ReadEntry returns the full payload bytes for the named entry.
func (b *Bundle) ReadEntry(name string) ([]byte, error) {
	if b.rc == nil {
		return nil, ErrClosed
	}
	f, ok := b.byName[strings.ReplaceAll(name, `\`, "/")]
	if !ok {
		return nil, &EntryNotFoundError{Bundle: b.Name, Entry: name}
	}
	r, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open bundle entry %s: %w", name, err)
	}
	defer r.Close() //nolint:errcheck // read-only stream
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read bundle entry %s: %w", name, err)
	}
	return data, nil
}

// Close releases the underlying archive. Further reads fail with ErrClosed;
// Close is idempotent.
func (b *Bundle) Close() error {
	if b.rc == nil {
		return nil
	}
	rc := b.rc
	b.rc = nil
	if err := rc.Close(); err != nil {
		return fmt.Errorf("close asset bundle %s: %w", b.Path, err)
	}
	return nil
}
