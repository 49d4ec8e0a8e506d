package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/hrs/internal/timeutil"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <entry line>",
	Short: "Save an entry line to a day's sheet",
	Long: `Validate one entry line and append it to the day's sheet.

The words are joined with spaces, so quoting is optional.

Examples:
  hrs add oh 8-9
  hrs add 'client work 9-12, 1-5p'
  hrs add --date yesterday c 1-3`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		addLine(args, dateFlag)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}

// addLine validates and saves a line to the sheet of date
func addLine(args []string, date string) {
	day, ok := resolveDay(date)
	if !ok {
		return
	}
	services, ok := loadServices()
	if !ok {
		return
	}

	line, err := services.Sheet.Add(day, strings.Join(args, " "))
	if err != nil {
		fail("Failed to add line", err, calcHint(err))
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Added to %s: %s\n", timeutil.FormatDay(day, deps.Now()), line.Text)
}
