// SPDX-License-Identifier: MPL-2.0

// Package discovery scans a plugins root for mod directories.
//
// A mod directory is any immediate subdirectory of the plugins root that
// contains an AtlyssTools.json descriptor. Directories with a code unit
// (a compiled plugin artifact) are reported but not loaded here; their own
// initialization code is expected to self-register with the loader.
// Asset-only directories are returned in dependency order so callers can
// load them directly.
//
// Scanning never fails on a bad mod: malformed descriptors, duplicate ids,
// missing dependencies, and dependency cycles are returned as structured
// Diagnostic records (rather than written to stderr) for consistent
// rendering policy in the caller.
package discovery
