package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/hrs/internal/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration settings for hrs.

Shows the configuration file location, whether it exists, and all current settings.
By default, hrs works without any configuration file. All settings have defaults:
  - mode: both
  - target_hours: 0 (no target)
  - clock: 12h
  - theme: dracula
  - listen_addr: 127.0.0.1:5001
  - log_level: warn

Examples:
  hrs config                       Show all current settings
  hrs config init                  Write a commented sample config file

Configuration file location:
  ~/.config/hrs/config.toml          Linux
  %APPDATA%\hrs\config.toml          Windows`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		showConfig()
	},
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a sample config file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		initConfig()
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// showConfig displays the current effective configuration
func showConfig() {
	services, ok := loadServices()
	if !ok {
		return
	}
	cfg := services.Config.Get()

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration for hrs")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 60))
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintf(deps.Stdout, "Config file:     %s\n", services.Config.GetPath())
	if services.Config.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:          File exists (using custom configuration)")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:          No config file (using defaults)")
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Sheet storage:   %s\n", services.Sheet.StoragePath())
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintln(deps.Stdout, "Current Settings:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	_, _ = fmt.Fprintf(deps.Stdout, "Mode:            %s\n", cfg.Mode)
	if cfg.TargetHours > 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "Target Hours:    %.1f\n", cfg.TargetHours)
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Target Hours:    (none)")
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Clock:           %s\n", cfg.Clock)
	_, _ = fmt.Fprintf(deps.Stdout, "Theme:           %s\n", cfg.Theme)
	_, _ = fmt.Fprintf(deps.Stdout, "Listen Address:  %s\n", cfg.ListenAddr)
	_, _ = fmt.Fprintf(deps.Stdout, "Log Level:       %s\n", cfg.LogLevel)
	_, _ = fmt.Fprintln(deps.Stdout)

	if !services.Config.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Tip: Run 'hrs config init' to create a sample config file.")
		_, _ = fmt.Fprintln(deps.Stdout)
	}
}

// initConfig writes the sample config file
func initConfig() {
	services, ok := loadServices()
	if !ok {
		return
	}

	if err := services.Config.Init(); err != nil {
		fail("Failed to create config file", err, "Edit the existing file or remove it first")
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\n", services.Config.GetPath())
	_, _ = fmt.Fprintf(deps.Stdout, "Valid modes: %s, %s, %s\n", config.ModeOrdered, config.ModeUnordered, config.ModeBoth)
}
