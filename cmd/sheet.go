package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xolan/hrs/internal/cli"
	"github.com/xolan/hrs/internal/timeutil"
)

// sheetCmd represents the sheet command
var sheetCmd = &cobra.Command{
	Use:   "sheet",
	Short: "List the lines saved for a day",
	Long: `List the lines saved to a day's sheet with their index numbers.
The index numbers are the ones 'hrs delete' expects.

Examples:
  hrs sheet
  hrs sheet --date yesterday`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		listSheet(dateFlag)
	},
}

func init() {
	rootCmd.AddCommand(sheetCmd)
}

// listSheet prints the lines of date's sheet
func listSheet(date string) {
	day, ok := resolveDay(date)
	if !ok {
		return
	}
	services, ok := loadServices()
	if !ok {
		return
	}

	lines, warnings, err := services.Sheet.List(day)
	if err != nil {
		fail("Failed to read sheet", err, "Run 'hrs validate' to check the sheet storage")
		return
	}

	if len(warnings) > 0 {
		_, _ = fmt.Fprintf(deps.Stderr, "Warning: Found %d corrupted %s in storage file (skipped):\n",
			len(warnings), cli.Pluralize("line", len(warnings)))
		for _, w := range warnings {
			_, _ = fmt.Fprintln(deps.Stderr, cli.FormatCorruptionWarning(w))
		}
		_, _ = fmt.Fprintln(deps.Stderr)
	}

	label := timeutil.FormatDay(day, deps.Now())
	if len(lines) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No lines saved for %s\n", label)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Sheet for %s:\n", label)
	for _, l := range lines {
		_, _ = fmt.Fprintf(deps.Stdout, "  [%d] %s\n", l.Index, l.Line.Text)
	}
	_, _ = fmt.Fprintf(deps.Stdout, "%d %s\n", len(lines), cli.Pluralize("line", len(lines)))
}
