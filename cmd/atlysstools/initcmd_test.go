// SPDX-License-Identifier: MPL-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/smb123w64gb/atlysstools/internal/config"
	"github.com/smb123w64gb/atlysstools/pkg/moddef"
)

// runInit executes the init command against a throwaway working directory
// and config dir so nothing from the host environment leaks in.
func runInit(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Chdir(t.TempDir())
	config.SetConfigDirOverride(t.TempDir())
	t.Cleanup(config.Reset)

	cmd := newInitCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	cmd.SetContext(t.Context())
	err := cmd.Execute()
	return out.String(), err
}

func TestInitScaffoldsMod(t *testing.T) {
	if _, err := runInit(t, "MyMod"); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	def, err := moddef.Load("MyMod")
	if err != nil {
		t.Fatalf("scaffolded descriptor does not load: %v", err)
	}
	if def.ModId != "MyMod" || def.Version != "0.1.0" {
		t.Errorf("descriptor = %+v", def)
	}

	sample := filepath.Join("MyMod", "Assets", "starter-sword.json")
	if _, err := os.Stat(sample); err != nil {
		t.Errorf("sample definition missing: %v", err)
	}

	// The scaffold must validate cleanly.
	var out bytes.Buffer
	if problems := validateModDir(&out, "MyMod"); problems != 0 {
		t.Errorf("fresh scaffold has %d problems:\n%s", problems, out.String())
	}
}

func TestInitRefusesExistingMod(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	config.SetConfigDirOverride(t.TempDir())
	t.Cleanup(config.Reset)

	cmd := newInitCommand()
	cmd.SetArgs([]string{"Taken"})
	cmd.SetContext(t.Context())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("first init failed: %v", err)
	}

	cmd = newInitCommand()
	cmd.SetArgs([]string{"Taken"})
	cmd.SetContext(t.Context())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil {
		t.Error("re-init without --force succeeded, want error")
	}

	cmd = newInitCommand()
	cmd.SetArgs([]string{"Taken", "--force"})
	cmd.SetContext(t.Context())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err != nil {
		t.Errorf("re-init with --force failed: %v", err)
	}
}

func TestInitRejectsBlankId(t *testing.T) {
	if _, err := runInit(t, "   "); err == nil {
		t.Error("blank mod id accepted, want error")
	}
}
