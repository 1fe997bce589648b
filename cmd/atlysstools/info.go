// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/smb123w64gb/atlysstools/internal/issue"
	"github.com/smb123w64gb/atlysstools/pkg/moddef"
)

// newInfoCommand creates the `atlysstools info` command.
func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info [mod-dir]",
		Short: "Show a mod's descriptor card",
		Long: `Render a mod's descriptor as a readable card: id, name, version, author,
dependencies, and the mod's README if it ships one.

With no argument the current directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			def, err := moddef.Load(dir)
			if err != nil {
				printIssue(issue.DescriptorParseErrorId)
				return &ExitError{Code: 1, Err: err}
			}

			var md strings.Builder
			fmt.Fprintf(&md, "# %s\n\n", def.ModId)
			if def.ModName != "" {
				fmt.Fprintf(&md, "**%s**\n\n", def.ModName)
			}
			if def.Description != "" {
				fmt.Fprintf(&md, "%s\n\n", def.Description)
			}
			if def.Version != "" {
				fmt.Fprintf(&md, "- Version: `%s`\n", def.Version)
			}
			if def.Author != "" {
				fmt.Fprintf(&md, "- Author: %s\n", def.Author)
			}
			if def.Website != "" {
				fmt.Fprintf(&md, "- Website: %s\n", def.Website)
			}
			if len(def.Dependencies) > 0 {
				fmt.Fprintf(&md, "- Depends on: %s\n", strings.Join(def.Dependencies, ", "))
			}

			if readme, readErr := os.ReadFile(filepath.Join(dir, "README.md")); readErr == nil {
				md.WriteString("\n---\n\n")
				md.Write(readme)
			}

			out, err := glamour.Render(md.String(), "auto")
			if err != nil {
				// Fall back to the raw markdown rather than failing the command.
				out = md.String()
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
