// SPDX-License-Identifier: MPL-2.0

// Command atlysstools is the developer CLI around the mod-loading layer:
// it scans a plugins root, drives the loader through the full startup
// sequence, and reports on what the game would see.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/smb123w64gb/atlysstools/internal/config"
	"github.com/smb123w64gb/atlysstools/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// pluginsRoot overrides the configured plugins root
	pluginsRoot string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "atlysstools",
		Short: "Mod loading tools for ATLYSS",
		Long: TitleStyle.Render("atlysstools") + SubtitleStyle.Render(" - Mod loading tools for ATLYSS") + `

atlysstools loads game mods the way the game itself would: it scans a
plugins root for mod directories, orders them by their declared
dependencies, opens their asset containers, and decodes their JSON
asset definitions through the same lifecycle the in-game loader runs.

Each mod is a directory with an AtlyssTools.json descriptor and an
Assets/ directory holding asset containers and JSON definitions for
weapons, armor, skills, creeps, and status conditions.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Scaffold a mod with: atlysstools init <mod-id>
  2. Drop definitions and containers into its Assets/ directory
  3. Check it with: atlysstools validate <mod-dir>

` + SubtitleStyle.Render("Examples:") + `
  atlysstools list                 Load every mod and list their assets
  atlysstools validate ./my-mod    Check one mod without a full load
  atlysstools dump                 Write asset and container dump files
  atlysstools info ./my-mod        Show a mod's descriptor card
  atlysstools config show          Show current configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/atlysstools/config.cue)")
	rootCmd.PersistentFlags().StringVar(&pluginsRoot, "plugins-root", "", "directory scanned for mods (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newDumpCommand())
	rootCmd.AddCommand(newInfoCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newCompletionCommand())
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads the config file early so flag defaults reflect it.
func initRootConfig() {
	cfg, err := config.NewProvider().Load(context.Background(), config.LoadOptions{
		ConfigFilePath: cfgFile,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}

	// Apply verbose from config if not set via flag
	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}
}

// newLogger builds the slog logger every loader instance runs with. Verbose
// mode lowers the level to debug; the default hides everything below warn so
// command output stays readable.
func newLogger() *slog.Logger {
	level := charmlog.WarnLevel
	if verbose {
		level = charmlog.DebugLevel
	}
	handler := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		Level:           level,
		ReportTimestamp: false,
	})
	return slog.New(handler)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
