package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/hrs/internal/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	Long: `Launch the interactive Terminal User Interface for hrs.

Views available:
  - Calculator: Type or paste a day's log and see the hours as you type
  - Sheet: Browse, add and delete the lines saved for a day
  - Config: Change the mode, clock and theme

Keyboard shortcuts:
  - Tab/Shift+Tab: Navigate between views
  - 1-3: Jump to specific view
  - j/k or arrows: Navigate within lists
  - ?: Show help
  - q: Quit`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// runTUI initializes and runs the TUI application
func runTUI() {
	services, ok := loadServices()
	if !ok {
		return
	}

	if err := tui.Run(services); err != nil {
		fail("Failed to run TUI", err, "")
	}
}
