// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smb123w64gb/atlysstools/internal/config"
	"github.com/smb123w64gb/atlysstools/internal/issue"
)

// newConfigCommand creates the `atlysstools config` command with its
// show/path/init subcommands.
func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage atlysstools configuration",
		Long: `Inspect and manage the atlysstools configuration.

Configuration is read from config.cue in the user config directory and
can be overridden per project by an atlysstools.toml in the working
directory.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				printIssue(issue.ConfigLoadFailedId)
				return &ExitError{Code: 1, Err: err}
			}
			fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(a.cfg))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the path of the config file in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, path, err := config.ResolvedPath(cmd.Context(), config.LoadOptions{
				ConfigFilePath: cfgFile,
			})
			if err != nil {
				printIssue(issue.ConfigLoadFailedId)
				return &ExitError{Code: 1, Err: err}
			}
			if path == "" {
				fmt.Fprintln(cmd.OutOrStdout(), SubtitleStyle.Render("(built-in defaults, no config file)"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.CreateDefaultConfig(); err != nil {
				return &ExitError{Code: 1, Err: err}
			}
			dir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Config written to ")+dir)
			return nil
		},
	})

	return cmd
}
