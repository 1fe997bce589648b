// SPDX-License-Identifier: MPL-2.0

package asset

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/smb123w64gb/atlysstools/pkg/cueutil"
)

// ErrInvalidDefinition is the sentinel error wrapped by InvalidDefinitionError.
var ErrInvalidDefinition = errors.New("invalid asset definition")

//go:embed asset_schema.cue
var assetSchema []byte

type (
	// InvalidDefinitionError is returned when a definition file is malformed
	// or violates its category schema. It wraps ErrInvalidDefinition for
	// errors.Is() compatibility.
	InvalidDefinitionError struct {
		Path  string
		Cause error
	}

	// categoryProbe extracts only the category tag from a raw definition.
	categoryProbe struct {
		Category Category `json:"category"`
	}
)

// Error implements the error interface.
func (e *InvalidDefinitionError) Error() string {
	return fmt.Sprintf("invalid asset definition %s: %v", e.Path, e.Cause)
}

// Unwrap exposes both the sentinel and the underlying cause for errors.Is().
func (e *InvalidDefinitionError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrInvalidDefinition}
	}
	return []error{ErrInvalidDefinition, e.Cause}
}

// SniffCategory reads only the category tag from raw definition bytes,
// without validating the rest of the file. Managers use this to claim the
// definitions belonging to their category before running the full decode.
func SniffCategory(raw []byte, filename string) (Category, error) {
	var probe categoryProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return "", &InvalidDefinitionError{Path: filename, Cause: err}
	}
	if ok, err := probe.Category.IsValid(); !ok {
		return "", &InvalidDefinitionError{Path: filename, Cause: err}
	}
	return probe.Category, nil
}

// Decode validates raw definition bytes against the schema of the category
// they declare and returns the decoded asset. filename is used in error
// messages only.
func Decode(raw []byte, filename string) (Asset, error) {
	cat, err := SniffCategory(raw, filename)
	if err != nil {
		return nil, err
	}
	return DecodeAs(cat, raw, filename)
}

// DecodeAs validates raw definition bytes against the named category's
// schema. A definition declaring a different category fails validation.
func DecodeAs(cat Category, raw []byte, filename string) (Asset, error) {
	opts := []cueutil.Option{cueutil.WithFilename(filename)}

	var (
		decoded Asset
		err     error
	)
	switch cat {
	case CategoryWeapon:
		decoded, err = decodeDefinition[Weapon](raw, "#Weapon", opts)
	case CategoryArmor:
		decoded, err = decodeDefinition[Armor](raw, "#Armor", opts)
	case CategorySkill:
		decoded, err = decodeDefinition[Skill](raw, "#Skill", opts)
	case CategoryCreep:
		decoded, err = decodeDefinition[Creep](raw, "#Creep", opts)
	case CategoryStatusCondition:
		decoded, err = decodeDefinition[StatusCondition](raw, "#StatusCondition", opts)
	default:
		_, catErr := cat.IsValid()
		return nil, &InvalidDefinitionError{Path: filename, Cause: catErr}
	}
	if err != nil {
		return nil, &InvalidDefinitionError{Path: filename, Cause: err}
	}
	return decoded, nil
}

func decodeDefinition[T Asset](raw []byte, schemaPath string, opts []cueutil.Option) (Asset, error) {
	result, err := cueutil.ParseAndDecode[T](assetSchema, raw, schemaPath, opts...)
	if err != nil {
		return nil, err
	}
	return *result.Value, nil
}
