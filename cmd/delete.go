package cmd

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/hrs/internal/cli"
	"github.com/xolan/hrs/internal/timeutil"
)

var yesFlag bool

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <index>",
	Short: "Delete a saved line by index",
	Long: `Delete a line from a day's sheet by its index number.
The index is the one shown by 'hrs sheet'.
A confirmation prompt will be shown unless --yes is specified.

Example:
  hrs delete 3
  hrs delete 3 --yes
  hrs delete 1 --date yesterday`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deleteLine(args[0], dateFlag, yesFlag)
	},
}

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all lines of a day's sheet",
	Long: `Delete every line saved to a day's sheet.
A backup is made first, so 'hrs restore' can undo it.
A confirmation prompt will be shown unless --yes is specified.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		clearSheet(dateFlag, yesFlag)
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "skip confirmation prompt")
	clearCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(clearCmd)
}

// deleteLine handles the deletion of a saved line
func deleteLine(indexStr, date string, yes bool) {
	index, err := strconv.Atoi(indexStr)
	if err != nil {
		fail(fmt.Sprintf("Invalid index '%s'. Index must be a number", indexStr), nil, "Run 'hrs sheet' to see the index numbers")
		return
	}
	if index < 1 {
		fail(fmt.Sprintf("Index must be 1 or greater (got %d)", index), nil, "")
		return
	}

	day, ok := resolveDay(date)
	if !ok {
		return
	}
	services, ok := loadServices()
	if !ok {
		return
	}

	lines, _, err := services.Sheet.List(day)
	if err != nil {
		fail("Failed to read sheet", err, "")
		return
	}
	label := timeutil.FormatDay(day, deps.Now())
	if len(lines) == 0 {
		fail(fmt.Sprintf("No lines to delete for %s", label), nil, "")
		return
	}
	if index > len(lines) {
		fail(fmt.Sprintf("Index %d out of range. Valid range: 1-%d", index, len(lines)), nil, "")
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Line to delete:")
	_, _ = fmt.Fprintf(deps.Stdout, "  [%d] %s\n", index, lines[index-1].Line.Text)

	if !yes && !promptConfirmation("Delete this line?") {
		_, _ = fmt.Fprintln(deps.Stdout, "Deletion cancelled")
		return
	}

	deleted, err := services.Sheet.Delete(day, index)
	if err != nil {
		fail("Failed to delete line", err, "")
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Deleted: %s\n", deleted.Text)
}

// clearSheet removes every line of date's sheet
func clearSheet(date string, yes bool) {
	day, ok := resolveDay(date)
	if !ok {
		return
	}
	services, ok := loadServices()
	if !ok {
		return
	}

	lines, _, err := services.Sheet.List(day)
	if err != nil {
		fail("Failed to read sheet", err, "")
		return
	}
	label := timeutil.FormatDay(day, deps.Now())
	if len(lines) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No lines saved for %s\n", label)
		return
	}

	if !yes && !promptConfirmation(fmt.Sprintf("Delete all %d %s for %s?", len(lines), cli.Pluralize("line", len(lines)), label)) {
		_, _ = fmt.Fprintln(deps.Stdout, "Clear cancelled")
		return
	}

	n, err := services.Sheet.Clear(day)
	if err != nil {
		fail("Failed to clear sheet", err, "")
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Cleared %d %s for %s\n", n, cli.Pluralize("line", n), label)
	_, _ = fmt.Fprintln(deps.Stdout, "Run 'hrs restore' to undo")
}

// promptConfirmation asks the user to confirm an action
// Returns true if user confirms with 'y' or 'Y', false otherwise
func promptConfirmation(question string) bool {
	_, _ = fmt.Fprintf(deps.Stdout, "%s [y/N]: ", question)

	scanner := bufio.NewScanner(deps.Stdin)
	if !scanner.Scan() {
		return false
	}

	response := strings.TrimSpace(scanner.Text())
	return response == "y" || response == "Y"
}
