// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride lets tests point ConfigDir at a scratch directory.
// os.UserHomeDir() doesn't reliably respect the HOME environment variable on
// every platform (macOS in CI, notably), so tests override the directory
// outright instead of faking the environment.
var configDirOverride string

// Reset clears test overrides. Call from test cleanup to restore defaults.
func Reset() {
	configDirOverride = ""
}

// SetConfigDirOverride sets a custom config directory path, bypassing the
// platform lookup. Intended for tests.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}
