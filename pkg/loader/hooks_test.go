// SPDX-License-Identifier: MPL-2.0

package loader_test

import (
	"context"
	"errors"
	"testing"

	"github.com/smb123w64gb/atlysstools/internal/testutil"
	"github.com/smb123w64gb/atlysstools/pkg/asset"
	"github.com/smb123w64gb/atlysstools/pkg/lifecycle"
	"github.com/smb123w64gb/atlysstools/pkg/loader"
)

func TestHooksRejectOutOfOrderCalls(t *testing.T) {
	t.Parallel()

	l := loader.New(loader.WithLogger(quietLogger()))
	hooks := l.HostHooks()
	ctx := context.Background()

	// Skipping the first milestone must fail.
	var te *lifecycle.TransitionError
	if err := hooks.AfterSkillLibraryBuild(ctx); !errors.As(err, &te) {
		t.Fatalf("out-of-order hook err = %v, want *TransitionError", err)
	}
	if l.Phase() != lifecycle.PhaseUninitialized {
		t.Errorf("phase = %v after rejected hook, want Uninitialized", l.Phase())
	}
}

func TestHooksRejectRepeatedCalls(t *testing.T) {
	t.Parallel()

	l := loader.New(loader.WithLogger(quietLogger()))
	hooks := l.HostHooks()
	ctx := context.Background()

	if err := hooks.BeforeSkillLibraryBuild(ctx); err != nil {
		t.Fatalf("first hook failed: %v", err)
	}
	if err := hooks.BeforeSkillLibraryBuild(ctx); err == nil {
		t.Error("repeated hook call succeeded, want transition error")
	}
	if l.Phase() != lifecycle.PhasePreLibraryInit {
		t.Errorf("phase = %v after rejected repeat, want PreLibraryInit", l.Phase())
	}
}

func TestRunStartupSequenceEndsReady(t *testing.T) {
	t.Parallel()

	l := loader.New(loader.WithLogger(quietLogger()))
	if err := l.HostHooks().RunStartupSequence(context.Background()); err != nil {
		t.Fatalf("startup sequence failed: %v", err)
	}
	if l.Phase() != lifecycle.PhaseReady {
		t.Errorf("phase = %v, want Ready", l.Phase())
	}

	// Running the sequence twice must fail; phases never replay.
	if err := l.HostHooks().RunStartupSequence(context.Background()); err == nil {
		t.Error("second startup sequence succeeded, want transition error")
	}
}

// TestStartupEndToEnd walks the whole pipeline for one mod: register,
// containers open, definitions decode at PreCacheInit, and both qualified and
// unqualified references resolve once the loader is Ready.
func TestStartupEndToEnd(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir := testutil.WriteMod(t, root, testutil.ModSpec{
		ModId:   "alpha",
		ModName: "Alpha",
		Definitions: map[string]string{
			"sword.json": `{
				"category": "weapon",
				"name": "sword",
				"displayName": "Iron Sword",
				"damage": 10,
				"speed": 1.2,
				"icon": "icons/sword.png"
			}`,
			"slow.json": testutil.SkillDef("slow"),
		},
		Bundles: map[string]map[string]string{
			"com.example.alpha.bundle": {
				"icons/sword.png": "png-bytes",
			},
		},
	})
	// A sibling manifest must be skipped, not opened as a container.
	testutil.MustWriteFile(t, dir+"/Assets/com.example.alpha.bundle.manifest", []byte("host metadata"), 0o644)

	l := loader.New(loader.WithLogger(quietLogger()))
	if _, err := l.LoadMod("alpha", dir); err != nil {
		t.Fatalf("LoadMod failed: %v", err)
	}
	if err := l.HostHooks().RunStartupSequence(context.Background()); err != nil {
		t.Fatalf("startup sequence failed: %v", err)
	}

	rec, _ := l.Mod("alpha")
	if got := len(rec.Bundles()); got != 1 {
		t.Fatalf("opened %d bundles, want 1 (manifest skipped)", got)
	}

	w, err := loader.LoadAsset[asset.Weapon](l, "alpha:sword")
	if err != nil {
		t.Fatalf("qualified load failed: %v", err)
	}
	if w.DisplayName != "Iron Sword" || w.Damage != 10 || w.Icon != "icons/sword.png" {
		t.Errorf("decoded weapon = %+v", w)
	}

	if _, err := loader.LoadAsset[asset.Weapon](l, "sword"); err != nil {
		t.Errorf("unqualified load failed: %v", err)
	}
	if _, err := loader.LoadAsset[asset.Skill](l, "slow"); err != nil {
		t.Errorf("skill load failed: %v", err)
	}

	// The icon payload is readable through the container.
	data, err := rec.Bundles()[0].ReadEntry("icons/sword.png")
	if err != nil {
		t.Fatalf("ReadEntry failed: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("entry payload = %q, want %q", data, "png-bytes")
	}
}

func TestExtraStateMachineListenerSeesPhases(t *testing.T) {
	t.Parallel()

	l := loader.New(loader.WithLogger(quietLogger()))

	probe := &phaseProbe{}
	l.StateMachine().Subscribe(probe)

	if err := l.HostHooks().RunStartupSequence(context.Background()); err != nil {
		t.Fatalf("startup sequence failed: %v", err)
	}
	if !probe.sawPreCache {
		t.Error("host-registered listener missed PreCacheInit")
	}
}

type phaseProbe struct {
	sawPreCache bool
}

func (p *phaseProbe) ListenerName() string { return "test-probe" }

func (p *phaseProbe) OnPreCacheInit(context.Context) error {
	p.sawPreCache = true
	return nil
}
