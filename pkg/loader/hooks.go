// SPDX-License-Identifier: MPL-2.0

package loader

import (
	"context"

	"github.com/smb123w64gb/atlysstools/pkg/lifecycle"
)

// HostHooks is the explicit callback bundle the host integration layer must
// call around the host's own startup milestones. How the integration
// observes those milestones (method interception, engine events, a manual
// harness) is out of the loader's scope; the loader only defines the
// ordered phase contract.
//
// The four hooks must be called exactly once each, in the order:
// BeforeSkillLibraryBuild, AfterSkillLibraryBuild, BeforeAssetCacheBuild,
// AfterAssetCacheBuild. Out-of-order or repeated calls fail with a
// transition error and do not re-fire listeners.
type HostHooks struct {
	l *Loader
}

// HostHooks returns the loader's hook bundle.
func (l *Loader) HostHooks() HostHooks {
	return HostHooks{l: l}
}

// BeforeSkillLibraryBuild must be called before the host builds its skill
// library. Advances the loader to PreLibraryInit.
func (h HostHooks) BeforeSkillLibraryBuild(ctx context.Context) error {
	return h.l.advance(ctx, lifecycle.PhasePreLibraryInit)
}

// AfterSkillLibraryBuild must be called after the host built its skill
// library. Advances the loader to PostLibraryInit.
func (h HostHooks) AfterSkillLibraryBuild(ctx context.Context) error {
	return h.l.advance(ctx, lifecycle.PhasePostLibraryInit)
}

// BeforeAssetCacheBuild must be called before the host builds its asset
// cache. Advances the loader to PreCacheInit, which is where every mod's
// asset definitions are decoded.
func (h HostHooks) BeforeAssetCacheBuild(ctx context.Context) error {
	return h.l.advance(ctx, lifecycle.PhasePreCacheInit)
}

// AfterAssetCacheBuild must be called after the host built its asset cache.
// Advances the loader to PostCacheInit and then to Ready.
func (h HostHooks) AfterAssetCacheBuild(ctx context.Context) error {
	if err := h.l.advance(ctx, lifecycle.PhasePostCacheInit); err != nil {
		return err
	}
	return h.l.advance(ctx, lifecycle.PhaseReady)
}

// RunStartupSequence drives all four hooks in order. Intended for harnesses
// and tooling that stand in for the live host (the CLI uses it to decode
// assets exactly the way the game would).
func (h HostHooks) RunStartupSequence(ctx context.Context) error {
	steps := []func(context.Context) error{
		h.BeforeSkillLibraryBuild,
		h.AfterSkillLibraryBuild,
		h.BeforeAssetCacheBuild,
		h.AfterAssetCacheBuild,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return err
		}
	}
	return nil
}
