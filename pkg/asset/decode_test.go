// SPDX-License-Identifier: MPL-2.0

package asset

import (
	"errors"
	"testing"
)

func TestDecode_Weapon(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"category": "weapon",
		"name": "Sword",
		"displayName": "Iron Sword",
		"damage": 12,
		"speed": 1.4,
		"icon": "icons/sword.png",
		"mesh": "meshes/sword.obj"
	}`)
	a, err := Decode(raw, "sword.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w, ok := a.(Weapon)
	if !ok {
		t.Fatalf("decoded type = %T, want Weapon", a)
	}
	if w.AssetName() != "Sword" || w.Damage != 12 || w.Speed != 1.4 {
		t.Errorf("decoded = %+v", w)
	}
	if w.Category() != CategoryWeapon {
		t.Errorf("Category() = %s", w.Category())
	}
	if got := w.NormalizedName(); got != "sword" {
		t.Errorf("NormalizedName() = %q", got)
	}
	refs := BundleRefs(w)
	if len(refs) != 2 {
		t.Errorf("BundleRefs = %v, want icon and mesh", refs)
	}
}

func TestDecode_EveryCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		cat  Category
	}{
		{"armor", `{"category": "armor", "name": "helm", "defense": 3, "slot": "head"}`, CategoryArmor},
		{"skill", `{"category": "skill", "name": "fireball", "cooldown": 2.5, "manaCost": 10}`, CategorySkill},
		{"creep", `{"category": "creep", "name": "slime", "health": 40, "hostile": true}`, CategoryCreep},
		{"statuscondition", `{"category": "statuscondition", "name": "burning", "duration": 5}`, CategoryStatusCondition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a, err := Decode([]byte(tt.raw), tt.name+".json")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if a.Category() != tt.cat {
				t.Errorf("Category() = %s, want %s", a.Category(), tt.cat)
			}
		})
	}
}

func TestDecode_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{"malformed_json", `{"category": "weapon",`},
		{"unknown_category", `{"category": "mount", "name": "horse"}`},
		{"missing_category", `{"name": "sword", "damage": 1}`},
		{"missing_name", `{"category": "weapon", "damage": 1}`},
		{"negative_damage", `{"category": "weapon", "name": "sword", "damage": -1}`},
		{"bad_armor_slot", `{"category": "armor", "name": "helm", "defense": 1, "slot": "tail"}`},
		{"zero_health_creep", `{"category": "creep", "name": "slime", "health": 0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode([]byte(tt.raw), tt.name+".json")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidDefinition) {
				t.Errorf("error should wrap ErrInvalidDefinition, got %v", err)
			}
		})
	}
}

func TestDecodeAs_CategoryMismatch(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"category": "weapon", "name": "sword", "damage": 1}`)
	_, err := DecodeAs(CategoryArmor, raw, "sword.json")
	if !errors.Is(err, ErrInvalidDefinition) {
		t.Errorf("decoding a weapon as armor should fail, got %v", err)
	}
}

func TestSniffCategory(t *testing.T) {
	t.Parallel()

	// Sniffing validates only the tag, not the category-specific fields.
	cat, err := SniffCategory([]byte(`{"category": "weapon", "damage": "not-an-int"}`), "x.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cat != CategoryWeapon {
		t.Errorf("cat = %s", cat)
	}

	if _, err := SniffCategory([]byte(`{"category": "mount"}`), "x.json"); !errors.Is(err, ErrInvalidCategory) {
		t.Errorf("unknown category should wrap ErrInvalidCategory, got %v", err)
	}
}

func TestCategory_IsValid(t *testing.T) {
	t.Parallel()

	for _, c := range Categories() {
		if ok, err := c.IsValid(); !ok || err != nil {
			t.Errorf("%s should be valid: %v", c, err)
		}
	}
	for _, c := range []Category{"", "WEAPON", "mount"} {
		ok, err := c.IsValid()
		if ok {
			t.Errorf("%q should be invalid", c)
		}
		if !errors.Is(err, ErrInvalidCategory) {
			t.Errorf("error should wrap ErrInvalidCategory, got %v", err)
		}
	}
}
