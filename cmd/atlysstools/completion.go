// SPDX-License-Identifier: MPL-2.0

package main

import (
	"os"

	"github.com/spf13/cobra"
)

// newCompletionCommand creates the `atlysstools completion` command.
func newCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for atlysstools.

To enable shell completions, run one of the following commands:

` + SubtitleStyle.Render("Bash:") + `
  # Add to ~/.bashrc:
  eval "$(atlysstools completion bash)"

  # Or install system-wide:
  atlysstools completion bash > /etc/bash_completion.d/atlysstools

` + SubtitleStyle.Render("Zsh:") + `
  # Add to ~/.zshrc:
  eval "$(atlysstools completion zsh)"

  # Or install to fpath:
  atlysstools completion zsh > "${fpath[1]}/_atlysstools"

` + SubtitleStyle.Render("Fish:") + `
  atlysstools completion fish > ~/.config/fish/completions/atlysstools.fish

` + SubtitleStyle.Render("PowerShell:") + `
  atlysstools completion powershell | Out-String | Invoke-Expression

  # Or add to $PROFILE:
  atlysstools completion powershell >> $PROFILE
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
