package cmd

import "github.com/spf13/cobra"

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate a completion script for hookspec and write it to stdout.

Load it for the current shell:

  bash:        source <(hookspec completion bash)
  zsh:         source <(hookspec completion zsh)
  fish:        hookspec completion fish | source
  powershell:  hookspec completion powershell | Out-String | Invoke-Expression

To load completions in every session, write the script to your shell's
completion directory, for example:

  hookspec completion bash > /etc/bash_completion.d/hookspec
  hookspec completion zsh > "${fpath[1]}/_hookspec"
  hookspec completion fish > ~/.config/fish/completions/hookspec.fish
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletionV2(out, true)
		case "zsh":
			return cmd.Root().GenZshCompletion(out)
		case "fish":
			return cmd.Root().GenFishCompletion(out, true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletionWithDesc(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
