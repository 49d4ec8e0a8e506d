package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xolan/hrs/internal/config"
	"github.com/xolan/hrs/internal/sheet"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate a tab-completion script for hrs.

Besides commands and flags, the scripts complete --mode, --log-level and
--date values (today, yesterday and the last week of days).

Load it for the current session:
  source <(hrs completion bash)
  source <(hrs completion zsh)
  hrs completion fish | source
  hrs completion powershell | Out-String | Invoke-Expression

Install it permanently:
  hrs completion bash > ~/.local/share/bash-completion/completions/hrs
  hrs completion zsh > "${fpath[1]}/_hrs"
  hrs completion fish > ~/.config/fish/completions/hrs.fish`,
	ValidArgs: completionShells,
	Args:      cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		generateCompletion(args[0])
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// registerFlagCompletions wires value completion for the root flags. It must
// run after the flags are defined.
func registerFlagCompletions() {
	fixed := func(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp)
	}
	_ = rootCmd.RegisterFlagCompletionFunc("mode", fixed(config.ModeOrdered, config.ModeUnordered, config.ModeBoth))
	_ = rootCmd.RegisterFlagCompletionFunc("log-level", fixed("debug", "info", "warn", "error"))
	_ = rootCmd.RegisterFlagCompletionFunc("date", completeDays)
}

// completeDays offers today, yesterday and the dates of the past week.
func completeDays(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	days := []string{"today", "yesterday"}
	now := deps.Now()
	for i := 2; i <= 7; i++ {
		days = append(days, sheet.DayOf(now.AddDate(0, 0, -i)))
	}
	return days, cobra.ShellCompDirectiveNoFileComp
}

// generateCompletion generates the appropriate completion script based on shell type
func generateCompletion(shell string) {
	var err error

	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletionV2(deps.Stdout, true)
	case "zsh":
		err = rootCmd.GenZshCompletion(deps.Stdout)
	case "fish":
		err = rootCmd.GenFishCompletion(deps.Stdout, true)
	case "powershell":
		err = rootCmd.GenPowerShellCompletionWithDesc(deps.Stdout)
	default:
		fail(fmt.Sprintf("Unsupported shell '%s'", shell), nil, "Supported shells: bash, zsh, fish, powershell")
		return
	}

	if err != nil {
		fail(fmt.Sprintf("Failed to generate %s completion", shell), err, "")
	}
}
