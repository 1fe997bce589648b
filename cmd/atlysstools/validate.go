// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smb123w64gb/atlysstools/internal/issue"
	"github.com/smb123w64gb/atlysstools/internal/watch"
	"github.com/smb123w64gb/atlysstools/pkg/asset"
	"github.com/smb123w64gb/atlysstools/pkg/assetbundle"
	"github.com/smb123w64gb/atlysstools/pkg/loader"
	"github.com/smb123w64gb/atlysstools/pkg/moddef"
)

// newValidateCommand creates the `atlysstools validate` command.
func newValidateCommand() *cobra.Command {
	var watchMode bool

	cmd := &cobra.Command{
		Use:   "validate [mod-dir]",
		Short: "Check a single mod directory",
		Long: `Validate one mod directory without a full load: parse its descriptor,
open its asset containers, decode every JSON definition, and check
that definitions referring to container entries point at payloads the
mod actually ships.

With no argument the current directory is validated.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			run := func(ctx context.Context) error {
				problems := validateModDir(cmd.OutOrStdout(), dir)
				if problems > 0 {
					return &ExitError{Code: 1, Err: fmt.Errorf("%d problem(s) in %s", problems, dir)}
				}
				fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("OK: ")+dir)
				return nil
			}

			if !watchMode {
				return run(cmd.Context())
			}

			if err := run(cmd.Context()); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
			}
			w, err := watch.New(watch.Config{
				BaseDir:     dir,
				Patterns:    []string{"**/*"},
				ClearScreen: true,
				Stdout:      cmd.OutOrStdout(),
				Stderr:      cmd.ErrOrStderr(),
				OnChange: func(ctx context.Context, changed []string) error {
					if err := run(ctx); err != nil {
						fmt.Fprintln(cmd.ErrOrStderr(), ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
					}
					return nil
				},
			})
			if err != nil {
				return err
			}
			return w.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "re-validate whenever files in the mod directory change")
	return cmd
}

// validateModDir checks one mod directory and prints a line per finding.
// It returns the number of problems (warnings do not count).
func validateModDir(out io.Writer, dir string) int {
	problems := 0
	fail := func(format string, args ...any) {
		problems++
		fmt.Fprintln(out, ErrorStyle.Render("error: ")+fmt.Sprintf(format, args...))
	}
	warn := func(format string, args ...any) {
		fmt.Fprintln(out, WarningStyle.Render("warning: ")+fmt.Sprintf(format, args...))
	}

	if !moddef.Exists(dir) {
		printIssue(issue.DescriptorNotFoundId)
		fail("missing %s in %s", moddef.FileName, dir)
		return problems
	}
	def, err := moddef.Load(dir)
	if err != nil {
		printIssue(issue.DescriptorParseErrorId)
		fail("descriptor: %v", err)
		return problems
	}
	fmt.Fprintln(out, ModStyle.Render(def.ModId)+SubtitleStyle.Render(" "+def.ModName))

	assetsDir := filepath.Join(dir, loader.AssetsDirName)
	entries, err := os.ReadDir(assetsDir)
	if err != nil {
		warn("no readable %s directory; mod ships no assets", loader.AssetsDirName)
		return problems
	}

	var bundles []*assetbundle.Bundle
	var defs []asset.Asset
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		full := filepath.Join(assetsDir, name)
		ext := strings.ToLower(filepath.Ext(name))
		switch {
		case ext == assetbundle.ManifestExt:
			// Host-side container metadata, nothing to check.
		case ext == ".json":
			raw, readErr := os.ReadFile(full)
			if readErr != nil {
				fail("%s: %v", name, readErr)
				continue
			}
			a, decErr := asset.Decode(raw, full)
			if decErr != nil {
				printIssue(issue.AssetDefinitionInvalidId)
				fail("%s: %v", name, decErr)
				continue
			}
			defs = append(defs, a)
			fmt.Fprintf(out, "  %s %s (%s)\n", SuccessStyle.Render("✓"), a.AssetName(), a.Category())
		case assetbundle.IsContainerFile(name):
			b, openErr := assetbundle.Open(full)
			if openErr != nil {
				printIssue(issue.BundleOpenFailedId)
				fail("%s: %v", name, openErr)
				continue
			}
			bundles = append(bundles, b)
			fmt.Fprintf(out, "  %s %s (%d entries)\n", SuccessStyle.Render("✓"), b.Name, len(b.Entries()))
		default:
			warn("%s: unrecognized file in %s directory", name, loader.AssetsDirName)
		}
	}

	// Definitions may point at container payloads; a missing payload is the
	// kind of mistake the game only surfaces at runtime.
	for _, a := range defs {
		for _, ref := range asset.BundleRefs(a) {
			found := false
			for _, b := range bundles {
				if b.Has(ref) {
					found = true
					break
				}
			}
			if !found {
				fail("%s: container entry %q not found in any shipped container", a.AssetName(), ref)
			}
		}
	}

	for _, b := range bundles {
		_ = b.Close()
	}
	return problems
}
