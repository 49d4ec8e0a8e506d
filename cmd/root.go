package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/hrs/internal/cli"
	"github.com/xolan/hrs/internal/config"
	"github.com/xolan/hrs/internal/service"
)

var (
	fileFlag     string
	dateFlag     string
	modeFlag     string
	targetFlag   float64
	jsonFlag     bool
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "hrs [entries...]",
	Short: "Charge-code hour calculator",
	Long: `hrs adds up the hours charged to each code in a free-text time log.

Each line holds a charge code followed by comma-separated time ranges:

  oh 8-8:30, 12-1
  client work 8:30-12, 1-5p
  \=8.5                       Target hours for the day

Times without am/pm are resolved automatically. The "ordered" mode assumes
lines are written in time-of-day order, the "unordered" mode only assumes
each code's own ranges are. By default both run and any disagreement is
reported.

Usage:
  hrs 'oh 8-9' 'c 9-12, 1-5'                    Calculate the given lines
  hrs -f day.txt                                Calculate a file (- for stdin)
  hrs                                           Calculate today's saved sheet
  hrs add 'c 9-12'                              Save a line to today's sheet
  hrs sheet                                     List today's saved lines
  hrs delete <index>                            Delete a saved line (with confirmation)
  hrs clear                                     Delete all of a day's lines
  hrs validate                                  Check sheet storage health
  hrs restore [n]                               Restore from backup (default: most recent)
  hrs serve                                     Start the HTTP API
  hrs tui                                       Launch the terminal UI`,
	Args: cobra.ArbitraryArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(logLevelFlag)
	},
	Run: func(cmd *cobra.Command, args []string) {
		calculate(calcOptions{
			Args:      args,
			File:      fileFlag,
			Date:      dateFlag,
			Mode:      modeFlag,
			Target:    targetFlag,
			HasTarget: cmd.Flags().Changed("target"),
			JSON:      jsonFlag,
		})
	},
}

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check sheet storage health",
	Long: `Check the sheet storage file for corrupted lines.

Reports the number of valid and corrupted lines and shows the content of each
corrupted line. Corrupted lines are skipped when sheets are read.`,
	Run: func(cmd *cobra.Command, args []string) {
		validateStorage()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dateFlag, "date", "", "day of the sheet: today, yesterday, YYYY-MM-DD or DD/MM/YYYY (default today)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn or error (default from config)")

	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "read entries from a file, - for stdin")
	rootCmd.Flags().StringVar(&modeFlag, "mode", "", "calculation mode: ordered, unordered or both (default from config)")
	rootCmd.Flags().Float64Var(&targetFlag, "target", 0, "target hours for the day, overrides the configured default")
	rootCmd.Flags().BoolVar(&jsonFlag, "json", false, "print the results as JSON")

	rootCmd.AddCommand(validateCmd)

	registerFlagCompletions()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"hrs version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// setupLogging installs the default slog logger on deps.Stderr. The level
// comes from flagLevel, or the config file when the flag is empty.
func setupLogging(flagLevel string) error {
	level := strings.TrimSpace(flagLevel)
	if level == "" {
		level = config.DefaultConfig().LogLevel
		if path, err := deps.ConfigPath(); err == nil {
			if cfg, err := config.LoadOrDefault(path); err == nil {
				level = cfg.LogLevel
			}
		}
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: must be debug, info, warn or error", level)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(deps.Stderr, &slog.HandlerOptions{Level: l})))
	return nil
}

// calcOptions are the inputs of a root command calculation.
type calcOptions struct {
	Args      []string
	File      string
	Date      string
	Mode      string
	Target    float64
	HasTarget bool
	JSON      bool
}

// calculate computes hours for the given entries, file or saved sheet and
// prints them.
func calculate(opts calcOptions) {
	services, ok := loadServices()
	if !ok {
		return
	}
	cfg := services.Config.Get()

	mode := strings.ToLower(strings.TrimSpace(opts.Mode))
	if mode == "" {
		mode = cfg.Mode
	}
	switch mode {
	case config.ModeOrdered, config.ModeUnordered, config.ModeBoth:
	default:
		fail(fmt.Sprintf("Invalid mode '%s'", opts.Mode), nil, "Valid modes: ordered, unordered, both")
		return
	}

	target := 0.0
	if opts.HasTarget {
		if opts.Target <= 0 || opts.Target > 24 {
			fail(fmt.Sprintf("Invalid target %v", opts.Target), nil, "The target must be more than 0 and at most 24 hours")
			return
		}
		target = opts.Target
	}

	text, ok := readInput(opts, services)
	if !ok {
		return
	}
	if strings.TrimSpace(text) == "" {
		_, _ = fmt.Fprintln(deps.Stdout, "No entries to calculate")
		return
	}

	cmp, err := services.Calc.CompareWithTarget(context.Background(), text, target)
	if err != nil {
		fail("Calculation was interrupted", err, "")
		return
	}

	if opts.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cmp.ForMode(mode)); err != nil {
			fail("Failed to encode results", err, "")
		}
		return
	}

	if err := cli.WriteComparison(deps.Stdout, cmp, mode, cfg.Clock); err != nil {
		fail("Failed to calculate hours", err, calcHint(err))
	}
}

// readInput returns the text to calculate: the joined arguments, the file
// named by opts.File, or the saved sheet of opts.Date.
func readInput(opts calcOptions, services *service.Services) (string, bool) {
	switch {
	case len(opts.Args) > 0 && opts.File != "":
		fail("Entries and --file cannot be used together", nil, "Pass entries as arguments or in a file, not both")
		return "", false
	case len(opts.Args) > 0:
		return strings.Join(opts.Args, "\n"), true
	case opts.File == "-":
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			fail("Failed to read standard input", err, "")
			return "", false
		}
		return string(data), true
	case opts.File != "":
		data, err := os.ReadFile(opts.File)
		if err != nil {
			fail(fmt.Sprintf("Failed to read file '%s'", opts.File), err, "Check that the file exists and is readable")
			return "", false
		}
		return string(data), true
	}

	day, ok := resolveDay(opts.Date)
	if !ok {
		return "", false
	}
	text, err := services.Sheet.Text(day)
	if err != nil {
		fail("Failed to read sheet", err, "Run 'hrs validate' to check the sheet storage")
		return "", false
	}
	return text, true
}

// validateStorage checks the storage file and reports any corruption
func validateStorage() {
	services, ok := loadServices()
	if !ok {
		return
	}

	health, err := services.Sheet.Validate()
	if err != nil {
		fail("Failed to validate storage", err, "")
		return
	}

	// Display storage path
	_, _ = fmt.Fprintf(deps.Stdout, "Storage file: %s\n", services.Sheet.StoragePath())
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))

	// Display health metrics
	_, _ = fmt.Fprintf(deps.Stdout, "Total lines:     %d\n", health.TotalLines)
	_, _ = fmt.Fprintf(deps.Stdout, "Valid lines:     %d\n", health.ValidLines)
	_, _ = fmt.Fprintf(deps.Stdout, "Corrupted lines: %d\n", health.CorruptedLines)

	if len(health.Warnings) > 0 {
		_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
		_, _ = fmt.Fprintln(deps.Stdout, "Corrupted lines:")
		for _, warning := range health.Warnings {
			_, _ = fmt.Fprintln(deps.Stdout, cli.FormatCorruptionWarning(warning))
		}
	}

	// Overall status message
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	if health.CorruptedLines == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: ✓ Storage file is healthy")
	} else {
		_, _ = fmt.Fprintf(deps.Stderr, "Status: ⚠ Storage file has %d corrupted %s\n",
			health.CorruptedLines, cli.Pluralize("line", health.CorruptedLines))
	}
}
