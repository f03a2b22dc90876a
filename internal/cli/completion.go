package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for punch.

To load completions for your shell:

Bash:
  source <(punch completion bash)

Zsh:
  punch completion zsh > "${fpath[1]}/_punch"

Fish:
  punch completion fish | source

PowerShell:
  punch completion powershell | Out-String | Invoke-Expression`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		shell := args[0]
		w := cmd.OutOrStdout()

		var err error
		switch shell {
		case "bash":
			err = cmd.Root().GenBashCompletion(w)
		case "zsh":
			err = cmd.Root().GenZshCompletion(w)
		case "fish":
			err = cmd.Root().GenFishCompletion(w, true)
		case "powershell":
			err = cmd.Root().GenPowerShellCompletionWithDesc(w)
		default:
			err = fmt.Errorf("unsupported shell type: %s", shell)
		}
		if err != nil {
			return fmt.Errorf("generate completion for %s: %w", shell, err)
		}
		return nil
	},
}
