// SPDX-License-Identifier: MPL-2.0

// Package asset defines the typed asset model of the mod loader.
//
// Assets are described by plain JSON definition files in a mod's Assets
// directory; each file declares its category plus category-specific fields
// and may reference binary payloads in the mod's containers by entry name.
// Definitions are validated against an embedded CUE schema when decoded,
// which happens during the PreCacheInit lifecycle phase, after every mod's
// containers are open.
package asset

import "strings"

type (
	// Asset is a decoded asset definition. Concrete types are the per-category
	// structs below; all of them embed Base.
	Asset interface {
		// Category returns the category governing this asset.
		Category() Category
		// AssetName returns the declared asset name.
		AssetName() string
	}

	// Base carries the fields shared by every category.
	Base struct {
		// Name is the asset's name, unique within its mod and category.
		Name string `json:"name"`
		// DisplayName is an optional human-readable name shown in-game.
		DisplayName string `json:"displayName,omitempty"`
		// Description is optional flavor or tooltip text.
		Description string `json:"description,omitempty"`
		// Icon optionally references a container payload by entry name.
		Icon string `json:"icon,omitempty"`
	}

	// Weapon is a weapon definition.
	Weapon struct {
		Base
		Damage    int     `json:"damage"`
		Speed     float64 `json:"speed,omitempty"`
		TwoHanded bool    `json:"twoHanded,omitempty"`
		// Mesh optionally references a container payload by entry name.
		Mesh string `json:"mesh,omitempty"`
	}

	// Armor is an armor definition.
	Armor struct {
		Base
		Defense int    `json:"defense"`
		Slot    string `json:"slot"`
	}

	// Skill is a skill definition.
	Skill struct {
		Base
		Cooldown float64 `json:"cooldown,omitempty"`
		ManaCost int     `json:"manaCost,omitempty"`
		Rank     int     `json:"rank,omitempty"`
	}

	// Creep is an enemy definition.
	Creep struct {
		Base
		Health  int  `json:"health"`
		Level   int  `json:"level,omitempty"`
		Hostile bool `json:"hostile,omitempty"`
	}

	// StatusCondition is a status condition definition.
	StatusCondition struct {
		Base
		Duration float64 `json:"duration,omitempty"`
		Stacking bool    `json:"stacking,omitempty"`
	}
)

// AssetName returns the declared asset name.
func (b Base) AssetName() string { return b.Name }

// NormalizedName returns the asset name in canonical lookup form: lowercase
// with forward-slash separators.
func (b Base) NormalizedName() string {
	return NormalizeName(b.Name)
}

// NormalizeName lowers an asset name and normalizes path separators, the
// canonical form used as a lookup key.
func NormalizeName(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/"))
}

// Category implements Asset.
func (Weapon) Category() Category { return CategoryWeapon }

// Category implements Asset.
func (Armor) Category() Category { return CategoryArmor }

// Category implements Asset.
func (Skill) Category() Category { return CategorySkill }

// Category implements Asset.
func (Creep) Category() Category { return CategoryCreep }

// Category implements Asset.
func (StatusCondition) Category() Category { return CategoryStatusCondition }

// BundleRefs returns the container entry names the asset references,
// omitting empty ones. Used by validation to flag dangling references.
func BundleRefs(a Asset) []string {
	var refs []string
	add := func(r string) {
		if r != "" {
			refs = append(refs, r)
		}
	}
	switch v := a.(type) {
	case Weapon:
		add(v.Icon)
		add(v.Mesh)
	case Armor:
		add(v.Icon)
	case Skill:
		add(v.Icon)
	case Creep:
		add(v.Icon)
	case StatusCondition:
		add(v.Icon)
	}
	return refs
}
