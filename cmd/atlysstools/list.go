// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smb123w64gb/atlysstools/pkg/asset"
)

// newListCommand creates the `atlysstools list` command.
func newListCommand() *cobra.Command {
	var showAssets bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Load every mod and list what it provides",
		Long: `Scan the plugins root, load every asset-only mod in dependency order,
run the full startup sequence, and list the loaded mods with their
decoded asset and container counts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			l, report, err := a.buildLoader(cmd.Context())
			if err != nil {
				return err
			}
			printDiagnostics(report)

			mods := l.Mods()
			if len(mods) == 0 {
				fmt.Println(SubtitleStyle.Render("No mods loaded."))
				return nil
			}

			fmt.Println(TitleStyle.Render(fmt.Sprintf("Loaded %d mod(s)", len(mods))))
			for _, rec := range mods {
				name := rec.DeclaredId()
				if def := rec.Def(); def != nil && def.ModName != "" {
					name = fmt.Sprintf("%s (%s)", rec.DeclaredId(), def.ModName)
				}
				fmt.Println(ModStyle.Render(name))
				fmt.Printf("  path: %s\n", rec.Path())
				if n := len(rec.Bundles()); n > 0 {
					fmt.Printf("  containers: %d\n", n)
				}
				for _, cat := range asset.Categories() {
					assets := rec.Assets(cat)
					if len(assets) == 0 {
						continue
					}
					fmt.Printf("  %s: %d\n", cat, len(assets))
					if showAssets {
						for _, as := range assets {
							fmt.Printf("    - %s\n", as.AssetName())
						}
					}
				}
			}
			for _, dir := range report.SkippedCodeUnits {
				fmt.Println(VerboseStyle.Render("skipped (code unit): " + dir))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showAssets, "assets", false, "list every decoded asset name")
	return cmd
}
