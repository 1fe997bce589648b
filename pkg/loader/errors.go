// SPDX-License-Identifier: MPL-2.0

package loader

import (
	"errors"
	"fmt"

	"github.com/smb123w64gb/atlysstools/pkg/asset"
)

var (
	// ErrModNotFound is returned when a mod id is not registered.
	ErrModNotFound = errors.New("mod not found")

	// ErrAssetNotFound is returned when an asset cannot be resolved in any
	// registered mod or the host catalog.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrMalformedRef is returned when an asset reference cannot be parsed.
	ErrMalformedRef = errors.New("malformed asset reference")

	// ErrDuplicateCapability is the sentinel error wrapped by
	// DuplicateCapabilityError.
	ErrDuplicateCapability = errors.New("duplicate capability registration")

	// ErrWrongAssetType is returned when a resolved asset is not of the
	// requested concrete type.
	ErrWrongAssetType = errors.New("asset has unexpected type")
)

type (
	// AssetLoadError reports a failed asset resolution with the attempted
	// reference, the target category, and, for qualified lookups, the mod.
	AssetLoadError struct {
		// Ref is the reference string as passed by the caller.
		Ref string
		// Category is the requested asset category.
		Category asset.Category
		// Mod is the target mod id for qualified lookups (empty otherwise).
		Mod string
		// Cause is one of the package sentinels above.
		Cause error
	}

	// DuplicateCapabilityError is returned when two implementations register
	// the same capability name. It wraps ErrDuplicateCapability.
	DuplicateCapabilityError struct {
		Kind string
		Name string
		// FirstMod is the mod that registered the name first.
		FirstMod string
	}
)

// Error implements the error interface.
func (e *AssetLoadError) Error() string {
	if e.Mod != "" {
		return fmt.Sprintf("failed to load %s asset %q from mod %q: %v", e.Category, e.Ref, e.Mod, e.Cause)
	}
	return fmt.Sprintf("failed to load %s asset %q: %v", e.Category, e.Ref, e.Cause)
}

// Unwrap returns the underlying sentinel for errors.Is() checks.
func (e *AssetLoadError) Unwrap() error {
	return e.Cause
}

// Error implements the error interface.
func (e *DuplicateCapabilityError) Error() string {
	return fmt.Sprintf("%s %q is already registered by mod %q", e.Kind, e.Name, e.FirstMod)
}

// Unwrap returns the sentinel for errors.Is() checks.
func (e *DuplicateCapabilityError) Unwrap() error {
	return ErrDuplicateCapability
}
