// SPDX-License-Identifier: MPL-2.0

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/smb123w64gb/atlysstools/pkg/loader"
	"github.com/smb123w64gb/atlysstools/pkg/moddef"
)

// sampleWeapon is the starter definition init drops into a fresh mod so the
// very first validate run has something to decode.
const sampleWeapon = `{
  "category": "weapon",
  "name": "starter-sword",
  "displayName": "Starter Sword",
  "description": "Replace me with your own definitions.",
  "damage": 1
}
`

// newInitCommand creates the `atlysstools init` command.
func newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init <mod-id>",
		Short: "Scaffold a new mod directory",
		Long: `Create a mod directory named after the given id, with a filled-in
descriptor, an Assets/ directory, and a sample weapon definition.

The descriptor's Author field is taken from the default_author config
value when one is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if loader.NormalizeModId(id) == "" {
				return &ExitError{Code: 1, Err: fmt.Errorf("mod id must not be blank")}
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			dir := id
			if moddef.Exists(dir) && !force {
				return &ExitError{Code: 1, Err: fmt.Errorf("%s already has a %s (use --force to overwrite)", dir, moddef.FileName)}
			}

			def := moddef.ModDef{
				ModId:   id,
				ModName: id,
				Version: "0.1.0",
				Author:  a.cfg.DefaultAuthor,
			}
			raw, err := json.MarshalIndent(&def, "", "  ")
			if err != nil {
				return err
			}
			raw = append(raw, '\n')

			assetsDir := filepath.Join(dir, loader.AssetsDirName)
			if err := os.MkdirAll(assetsDir, 0o755); err != nil {
				return fmt.Errorf("create mod directory: %w", err)
			}
			if err := os.WriteFile(filepath.Join(dir, moddef.FileName), raw, 0o644); err != nil {
				return fmt.Errorf("write descriptor: %w", err)
			}
			samplePath := filepath.Join(assetsDir, "starter-sword.json")
			if err := os.WriteFile(samplePath, []byte(sampleWeapon), 0o644); err != nil {
				return fmt.Errorf("write sample definition: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Created mod ")+ModStyle.Render(id))
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", filepath.Join(dir, moddef.FileName))
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", samplePath)
			fmt.Fprintln(cmd.OutOrStdout(), SubtitleStyle.Render("Next: atlysstools validate ")+SubtitleStyle.Render(dir))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing descriptor")
	return cmd
}
