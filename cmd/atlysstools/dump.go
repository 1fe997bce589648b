// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smb123w64gb/atlysstools/internal/watch"
)

// newDumpCommand creates the `atlysstools dump` command.
func newDumpCommand() *cobra.Command {
	var watchMode bool

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Write asset and container dump files",
		Long: `Load every mod, run the full startup sequence, and write two dump files
into the configured diagnostics directory: one listing every decoded
asset per mod and manager, one listing every opened container and its
entries.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			run := func(ctx context.Context) error {
				a, err := newApp(ctx)
				if err != nil {
					return err
				}
				l, report, err := a.buildLoader(ctx)
				if err != nil {
					return err
				}
				printDiagnostics(report)

				assetsPath, bundlesPath, err := l.WriteDump()
				if err != nil {
					return fmt.Errorf("write dump: %w", err)
				}
				fmt.Println(SuccessStyle.Render("Dump written:"))
				fmt.Printf("  %s\n", assetsPath)
				fmt.Printf("  %s\n", bundlesPath)
				return nil
			}

			if !watchMode {
				return run(cmd.Context())
			}
			return watchPluginsRoot(cmd, run)
		},
	}

	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "re-dump whenever files under the plugins root change")
	return cmd
}

// watchPluginsRoot runs fn once, then re-runs it on every debounced change
// under the resolved plugins root until the command context is canceled.
func watchPluginsRoot(cmd *cobra.Command, fn func(ctx context.Context) error) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	root := a.resolvedPluginsRoot()
	if root == "" {
		return &ExitError{Code: 1, Err: fmt.Errorf("no plugins root configured")}
	}

	if err := fn(cmd.Context()); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
	}

	w, err := watch.New(watch.Config{
		BaseDir:     root,
		Patterns:    []string{"**/*"},
		ClearScreen: true,
		Stdout:      cmd.OutOrStdout(),
		Stderr:      cmd.ErrOrStderr(),
		OnChange: func(ctx context.Context, changed []string) error {
			if err := fn(ctx); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
			}
			return nil
		},
	})
	if err != nil {
		return err
	}
	return w.Run(cmd.Context())
}
