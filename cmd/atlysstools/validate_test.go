// SPDX-License-Identifier: MPL-2.0

package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smb123w64gb/atlysstools/internal/testutil"
)

func TestValidateModDir(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		setup        func(t *testing.T, parent string) string // returns mod dir
		wantProblems int
		wantOutput   []string
	}{
		{
			name: "well-formed mod",
			setup: func(t *testing.T, parent string) string {
				t.Helper()
				return testutil.WriteMod(t, parent, testutil.ModSpec{
					ModId:   "Alpha",
					ModName: "Alpha Pack",
					Definitions: map[string]string{
						"sword.json": testutil.WeaponDef("sword", 10),
					},
					Bundles: map[string]map[string]string{
						"com.example.alpha.bundle": {"icons/sword.png": "png"},
					},
				})
			},
			wantProblems: 0,
			wantOutput:   []string{"Alpha", "sword", "com.example.alpha"},
		},
		{
			name: "missing descriptor",
			setup: func(t *testing.T, parent string) string {
				t.Helper()
				dir := filepath.Join(parent, "empty")
				testutil.MustMkdirAll(t, dir, 0o755)
				return dir
			},
			wantProblems: 1,
			wantOutput:   []string{"missing AtlyssTools.json"},
		},
		{
			name: "invalid definition",
			setup: func(t *testing.T, parent string) string {
				t.Helper()
				return testutil.WriteMod(t, parent, testutil.ModSpec{
					ModId: "Broken",
					Definitions: map[string]string{
						"bad.json": `{"category": "weapon", "name": "x", "damage": -5}`,
					},
				})
			},
			wantProblems: 1,
			wantOutput:   []string{"bad.json"},
		},
		{
			name: "dangling container reference",
			setup: func(t *testing.T, parent string) string {
				t.Helper()
				return testutil.WriteMod(t, parent, testutil.ModSpec{
					ModId: "Dangling",
					Definitions: map[string]string{
						"sword.json": `{"category": "weapon", "name": "sword", "damage": 3, "icon": "icons/missing.png"}`,
					},
				})
			},
			wantProblems: 1,
			wantOutput:   []string{"icons/missing.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := tt.setup(t, t.TempDir())
			var out bytes.Buffer
			got := validateModDir(&out, dir)
			if got != tt.wantProblems {
				t.Errorf("validateModDir() = %d problems, want %d\noutput:\n%s",
					got, tt.wantProblems, out.String())
			}
			for _, want := range tt.wantOutput {
				if !strings.Contains(out.String(), want) {
					t.Errorf("output missing %q:\n%s", want, out.String())
				}
			}
		})
	}
}
