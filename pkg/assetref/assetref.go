// SPDX-License-Identifier: MPL-2.0

// Package assetref parses asset reference strings into tagged results.
//
// A reference is either qualified ("modid:path/to/asset"), pinning the lookup
// to a single mod's namespace, or unqualified ("path/to/asset"), resolved
// against every registered mod in registration order. Backslash separators
// are normalized to forward slashes before splitting, so references written
// on Windows resolve identically everywhere.
package assetref

import "strings"

const (
	// KindUnqualified is a plain asset name resolved across all mods.
	KindUnqualified Kind = iota
	// KindQualified is a "modid:name" reference pinned to one mod.
	KindQualified
	// KindEmpty is a blank or whitespace-only reference.
	KindEmpty
	// KindMalformed is a reference that cannot be parsed (e.g., more than
	// one separator, or an empty mod id or asset name beside a separator).
	KindMalformed
)

// Separator splits the mod id from the asset name in a qualified reference.
const Separator = ":"

type (
	// Kind tags the parse result.
	Kind int

	// Ref is the parsed form of an asset reference string.
	Ref struct {
		// Kind tags which fields are meaningful.
		Kind Kind
		// Mod is the normalized (lowercase) mod id; only set for KindQualified.
		Mod string
		// Name is the separator-normalized asset name; set for KindQualified
		// and KindUnqualified.
		Name string
		// Raw is the original input, preserved for error messages.
		Raw string
	}
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindUnqualified:
		return "unqualified"
	case KindQualified:
		return "qualified"
	case KindEmpty:
		return "empty"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Parse splits a raw asset reference into its tagged form. Parse never
// fails; callers branch on Ref.Kind.
func Parse(raw string) Ref {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Ref{Kind: KindEmpty, Raw: raw}
	}

	// Normalize path separators so "Icons\sword" and "Icons/sword" are the
	// same asset.
	normalized := strings.ReplaceAll(trimmed, `\`, "/")

	switch strings.Count(normalized, Separator) {
	case 0:
		return Ref{Kind: KindUnqualified, Name: normalized, Raw: raw}
	case 1:
		mod, name, _ := strings.Cut(normalized, Separator)
		mod = strings.TrimSpace(mod)
		name = strings.TrimSpace(name)
		if mod == "" || name == "" {
			return Ref{Kind: KindMalformed, Raw: raw}
		}
		return Ref{Kind: KindQualified, Mod: strings.ToLower(mod), Name: name, Raw: raw}
	default:
		return Ref{Kind: KindMalformed, Raw: raw}
	}
}
