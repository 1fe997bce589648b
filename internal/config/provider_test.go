// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/smb123w64gb/atlysstools/internal/testutil"
)

func TestProviderLoad(t *testing.T) {
	cfgDir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(cfgDir, "config.cue"),
		[]byte(`plugins_root: "/srv/mods"`), 0o644)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{
		ConfigDirPath: cfgDir,
		WorkspaceDir:  t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.PluginsRoot != "/srv/mods" {
		t.Errorf("plugins root = %q", cfg.PluginsRoot)
	}
}
