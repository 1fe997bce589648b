// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/smb123w64gb/atlysstools/internal/config"
	"github.com/smb123w64gb/atlysstools/internal/hostcat"
	"github.com/smb123w64gb/atlysstools/internal/issue"
	"github.com/smb123w64gb/atlysstools/pkg/loader"
)

// app carries the state every subcommand needs: the resolved configuration
// and the logger. Commands that need a fully started loader get one through
// buildLoader.
type app struct {
	cfg *config.Config
}

// newApp loads the configuration (flag overrides applied) and wraps it.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.NewProvider().Load(ctx, config.LoadOptions{
		ConfigFilePath: cfgFile,
	})
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg}, nil
}

// resolvedPluginsRoot applies the flag > config precedence. An empty result
// means no root is configured anywhere.
func (a *app) resolvedPluginsRoot() string {
	if pluginsRoot != "" {
		return pluginsRoot
	}
	return a.cfg.PluginsRoot.String()
}

// buildLoader constructs a loader from the resolved configuration, scans the
// plugins root for asset-only mods, and drives the full startup sequence so
// every mod's definitions are decoded. The returned report carries the scan
// diagnostics for display.
func (a *app) buildLoader(ctx context.Context) (*loader.Loader, *loader.ScanReport, error) {
	root := a.resolvedPluginsRoot()
	if root == "" {
		printIssue(issue.PluginsRootNotFoundId)
		return nil, nil, &ExitError{Code: 1, Err: fmt.Errorf("no plugins root configured")}
	}

	opts := []loader.Option{
		loader.WithLogger(newLogger()),
		loader.WithPluginsRoot(root),
	}
	if dir := a.cfg.DiagnosticsDir.String(); dir != "" {
		opts = append(opts, loader.WithDiagnosticsDir(dir))
	}
	if dir := a.cfg.HostCatalogDir.String(); dir != "" {
		catalog, err := hostcat.Open(dir, newLogger())
		if err != nil {
			return nil, nil, fmt.Errorf("open host catalog: %w", err)
		}
		opts = append(opts, loader.WithHostCatalog(catalog))
	}

	l := loader.New(opts...)
	report, err := l.ScanAssetOnlyMods(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := l.HostHooks().RunStartupSequence(ctx); err != nil {
		return nil, nil, err
	}
	return l, report, nil
}

// printDiagnostics renders the scan report's findings, warnings in amber and
// errors in red.
func printDiagnostics(report *loader.ScanReport) {
	for _, d := range report.Diagnostics {
		style := WarningStyle
		if d.Severity == "error" {
			style = ErrorStyle
		}
		line := fmt.Sprintf("%s [%s] %s", d.Severity, d.Code, d.Message)
		if d.Path != "" {
			line += " (" + d.Path + ")"
		}
		fmt.Fprintln(os.Stderr, style.Render(line))
	}
}

// printIssue renders one of the known issue cards to stderr. Rendering
// failures fall back to the raw markdown.
func printIssue(id issue.Id) {
	is := issue.Get(id)
	if is == nil {
		return
	}
	out, err := is.Render("auto")
	if err != nil {
		out = string(is.MarkdownMsg())
	}
	fmt.Fprintln(os.Stderr, out)
}
