// SPDX-License-Identifier: MPL-2.0

package loader

import (
	"github.com/smb123w64gb/atlysstools/pkg/asset"
	"github.com/smb123w64gb/atlysstools/pkg/assetref"
)

type (
	// HostCatalog resolves unqualified asset names against the host game's
	// built-in resources. It is the final fallback of unqualified
	// resolution, after every registered mod has been tried.
	HostCatalog interface {
		// Lookup returns the host's asset for the given category and
		// normalized name. ok is false on a miss; err reports catalog
		// failures (logged by the loader, treated as a miss).
		Lookup(cat asset.Category, name string) (a asset.Asset, ok bool, err error)
	}
)

// LoadAssetIn resolves an asset reference within a category:
//
//  1. Empty references are a not-found result, not a reportable failure.
//  2. Qualified references ("modid:name") route directly to that mod; a
//     missing mod, malformed reference, or per-mod miss is a load failure.
//  3. Unqualified references try every registered mod in registration
//     order, first hit wins, then fall back to the host catalog.
//
// Load failures are logged with the attempted reference and category and
// returned as *AssetLoadError.
func (l *Loader) LoadAssetIn(cat asset.Category, name string) (asset.Asset, error) {
	ref := assetref.Parse(name)

	switch ref.Kind {
	case assetref.KindEmpty:
		// Deliberately not logged; an empty reference is a quiet miss.
		return nil, &AssetLoadError{Ref: name, Category: cat, Cause: ErrAssetNotFound}

	case assetref.KindMalformed:
		err := &AssetLoadError{Ref: name, Category: cat, Cause: ErrMalformedRef}
		l.logger.Error("asset load failed", "ref", name, "category", cat, "err", err.Cause)
		return nil, err

	case assetref.KindQualified:
		rec, ok := l.Mod(ref.Mod)
		if !ok {
			err := &AssetLoadError{Ref: name, Category: cat, Mod: ref.Mod, Cause: ErrModNotFound}
			l.logger.Error("asset load failed", "ref", name, "category", cat, "mod", ref.Mod, "err", err.Cause)
			return nil, err
		}
		if a, found := rec.LoadAsset(cat, ref.Name); found {
			return a, nil
		}
		err := &AssetLoadError{Ref: name, Category: cat, Mod: ref.Mod, Cause: ErrAssetNotFound}
		l.logger.Error("asset load failed", "ref", name, "category", cat, "mod", ref.Mod, "err", err.Cause)
		return nil, err

	default: // assetref.KindUnqualified
		for _, rec := range l.Mods() {
			if a, found := rec.LoadAsset(cat, ref.Name); found {
				return a, nil
			}
		}
		if l.hostCatalog != nil {
			a, ok, err := l.hostCatalog.Lookup(cat, asset.NormalizeName(ref.Name))
			if err != nil {
				l.logger.Error("host catalog lookup failed", "ref", name, "category", cat, "err", err)
			} else if ok {
				return a, nil
			}
		}
		err := &AssetLoadError{Ref: name, Category: cat, Cause: ErrAssetNotFound}
		l.logger.Error("asset load failed", "ref", name, "category", cat, "err", err.Cause)
		return nil, err
	}
}

// AssetsIn returns every registered mod's decoded assets of the given
// category: mods in registration order, assets in decode order within each
// mod.
func (l *Loader) AssetsIn(cat asset.Category) []asset.Asset {
	var out []asset.Asset
	for _, rec := range l.Mods() {
		out = append(out, rec.Assets(cat)...)
	}
	return out
}

// ModAssetsIn returns one mod's decoded assets of the given category.
func (l *Loader) ModAssetsIn(id string, cat asset.Category) ([]asset.Asset, error) {
	rec, ok := l.Mod(id)
	if !ok {
		return nil, &AssetLoadError{Ref: id, Category: cat, Mod: NormalizeModId(id), Cause: ErrModNotFound}
	}
	return rec.Assets(cat), nil
}

// LoadAsset resolves an asset reference to a concrete asset type. T must be
// one of the asset structs (asset.Weapon, asset.Armor, ...); the category
// is taken from T's zero value.
func LoadAsset[T asset.Asset](l *Loader, name string) (T, error) {
	var zero T
	a, err := l.LoadAssetIn(zero.Category(), name)
	if err != nil {
		return zero, err
	}
	v, ok := a.(T)
	if !ok {
		// Can only happen when a HostCatalog returns a foreign concrete type.
		return zero, &AssetLoadError{Ref: name, Category: zero.Category(), Cause: ErrWrongAssetType}
	}
	return v, nil
}

// ListAssets returns every mod's decoded assets of T's category, in mod
// registration order.
func ListAssets[T asset.Asset](l *Loader) []T {
	var zero T
	raw := l.AssetsIn(zero.Category())
	out := make([]T, 0, len(raw))
	for _, a := range raw {
		if v, ok := a.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// ListModAssets returns one mod's decoded assets of T's category, in decode
// order. An unknown mod id is a load failure.
func ListModAssets[T asset.Asset](l *Loader, id string) ([]T, error) {
	var zero T
	raw, err := l.ModAssetsIn(id, zero.Category())
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(raw))
	for _, a := range raw {
		if v, ok := a.(T); ok {
			out = append(out, v)
		}
	}
	return out, nil
}
