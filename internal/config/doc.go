// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// User-level configuration is loaded from ~/.config/atlysstools/config.cue (or XDG
// equivalent on Linux, ~/Library/Application Support/atlysstools/config.cue on macOS,
// %APPDATA%\atlysstools\config.cue on Windows) and validated against a CUE schema
// (config_schema.cue). A project may additionally carry an atlysstools.toml workspace
// file in the working directory; its values override the user-level configuration so a
// mod project can pin its own plugins root and diagnostics directory.
package config
