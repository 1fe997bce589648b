// SPDX-License-Identifier: MPL-2.0

package asset

import (
	"errors"
	"fmt"
)

const (
	// CategoryWeapon governs weapon definitions.
	CategoryWeapon Category = "weapon"
	// CategoryArmor governs armor definitions.
	CategoryArmor Category = "armor"
	// CategorySkill governs skill definitions.
	CategorySkill Category = "skill"
	// CategoryCreep governs creep (enemy) definitions.
	CategoryCreep Category = "creep"
	// CategoryStatusCondition governs status condition definitions.
	CategoryStatusCondition Category = "statuscondition"
)

// ErrInvalidCategory is the sentinel error wrapped by InvalidCategoryError.
var ErrInvalidCategory = errors.New("invalid asset category")

type (
	// Category identifies one asset category. Each category is governed by a
	// single manager singleton in the loader.
	Category string

	// InvalidCategoryError is returned when a Category value is not
	// recognized. It wraps ErrInvalidCategory for errors.Is() compatibility.
	InvalidCategoryError struct {
		Value Category
	}
)

// Error implements the error interface.
func (e *InvalidCategoryError) Error() string {
	return fmt.Sprintf("invalid asset category %q", string(e.Value))
}

// Unwrap returns the sentinel for errors.Is() checks.
func (e *InvalidCategoryError) Unwrap() error {
	return ErrInvalidCategory
}

// Categories returns every known category in the fixed manager-table order.
func Categories() []Category {
	return []Category{
		CategoryWeapon,
		CategoryArmor,
		CategorySkill,
		CategoryCreep,
		CategoryStatusCondition,
	}
}

// IsValid reports whether the category is one of the declared constants.
func (c Category) IsValid() (bool, error) {
	switch c {
	case CategoryWeapon, CategoryArmor, CategorySkill, CategoryCreep, CategoryStatusCondition:
		return true, nil
	default:
		return false, &InvalidCategoryError{Value: c}
	}
}

// String returns the category tag.
func (c Category) String() string {
	return string(c)
}
