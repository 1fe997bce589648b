// SPDX-License-Identifier: MPL-2.0

// Package moddef parses and validates AtlyssTools.json mod descriptors.
//
// A descriptor sits at a mod's root directory and declares the mod's
// identity plus optional metadata. Descriptors are plain JSON validated
// against an embedded CUE schema; malformed files produce a typed error so
// discovery can skip the directory with a diagnostic instead of failing the
// whole scan.
package moddef

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/smb123w64gb/atlysstools/pkg/cueutil"
)

// FileName is the descriptor file name expected at a mod's root.
const FileName = "AtlyssTools.json"

// ErrInvalidModDef is the sentinel error wrapped by InvalidModDefError.
var ErrInvalidModDef = errors.New("invalid mod descriptor")

//go:embed moddef_schema.cue
var moddefSchema []byte

type (
	// ModDef is the parsed mod descriptor.
	ModDef struct {
		// ModId is the unique, case-insensitive mod identifier.
		ModId string `json:"ModId"`
		// ModName is the human-readable display name.
		ModName string `json:"ModName"`
		// Version is an optional semantic version.
		Version string `json:"Version,omitempty"`
		// Author is the optional author name.
		Author string `json:"Author,omitempty"`
		// Description is an optional one-paragraph summary.
		Description string `json:"Description,omitempty"`
		// Website is an optional project URL.
		Website string `json:"Website,omitempty"`
		// Dependencies lists mod ids that must load before this mod.
		Dependencies []string `json:"Dependencies,omitempty"`
	}

	// InvalidModDefError is returned when a descriptor file is malformed or
	// violates the schema. It wraps ErrInvalidModDef for errors.Is().
	InvalidModDefError struct {
		Path  string
		Cause error
	}
)

// Error implements the error interface.
func (e *InvalidModDefError) Error() string {
	return fmt.Sprintf("invalid mod descriptor %s: %v", e.Path, e.Cause)
}

// Unwrap exposes both the sentinel and the underlying cause for errors.Is().
func (e *InvalidModDefError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrInvalidModDef}
	}
	return []error{ErrInvalidModDef, e.Cause}
}

// NormalizedId returns the descriptor's mod id lowered to the canonical
// lookup form.
func (d *ModDef) NormalizedId() string {
	return strings.ToLower(strings.TrimSpace(d.ModId))
}

// Parse validates raw descriptor bytes against the embedded schema. filename
// is used in error messages only.
func Parse(raw []byte, filename string) (*ModDef, error) {
	result, err := cueutil.ParseAndDecode[ModDef](moddefSchema, raw, "#ModDef",
		cueutil.WithFilename(filename))
	if err != nil {
		return nil, &InvalidModDefError{Path: filename, Cause: err}
	}
	return result.Value, nil
}

// Load reads and parses the descriptor inside dir. It returns
// os.ErrNotExist (wrapped) when the directory has no descriptor, letting
// discovery distinguish "not a mod" from "broken mod".
func Load(dir string) (*ModDef, error) {
	path := filepath.Join(dir, FileName)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mod descriptor: %w", err)
	}
	return Parse(raw, path)
}

// Exists reports whether dir contains a descriptor file.
func Exists(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, FileName))
	return err == nil && !info.IsDir()
}
