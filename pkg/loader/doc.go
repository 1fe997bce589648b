// SPDX-License-Identifier: MPL-2.0

// Package loader coordinates mod discovery, asset loading, and startup
// sequencing for AtlyssTools.
//
// The Loader owns the mod record table, the fixed per-category manager
// table, and the lifecycle state machine. The host integration layer drives
// startup through the HostHooks callback bundle; each hook advances the
// state machine, which fans the transition out to every manager and then to
// the loader's aggregate listener, which in turn runs every mod's
// phase-specific callback lists.
//
// Asset definitions are decoded during PreCacheInit, after every mod's
// containers are open, so a mod's pre-cache callbacks always observe the
// fully decoded asset set of every other mod.
//
// File organization:
//   - loader.go: Loader construction, mod registration, aggregate listener
//   - record.go: per-mod state (ModRecord)
//   - manager.go: per-category asset managers and the manager table
//   - resolve.go: asset resolution (qualified, unqualified, host fallback)
//   - capability.go: typed command / chat-processor registries
//   - hooks.go: host hook bridge
//   - scan.go: asset-only mod discovery over the plugins root
//   - dump.go: diagnostic dump files
package loader
