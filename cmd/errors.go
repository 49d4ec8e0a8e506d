package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/xolan/hrs/internal/calc"
	"github.com/xolan/hrs/internal/config"
	"github.com/xolan/hrs/internal/service"
	"github.com/xolan/hrs/internal/timeutil"
)

// fail prints the Error/Details/Hint block and exits with status 1. Empty
// details or hint lines are left out.
func fail(msg string, err error, hint string) {
	_, _ = fmt.Fprintf(deps.Stderr, "Error: %s\n", msg)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	}
	if hint != "" {
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: %s\n", hint)
	}
	deps.Exit(1)
}

// loadServices builds the services from the injected storage and config
// paths. It reports failures itself and returns false.
func loadServices() (*service.Services, bool) {
	storagePath, err := deps.StoragePath()
	if err != nil {
		fail("Failed to determine sheet storage location", err, "Check that your home directory is accessible")
		return nil, false
	}

	configPath, err := deps.ConfigPath()
	if err != nil {
		fail("Failed to determine config file location", err, "Check that your home directory is accessible")
		return nil, false
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		fail("Failed to load configuration", err, fmt.Sprintf("Check that your config file is valid TOML format: %s", configPath))
		return nil, false
	}

	return service.NewServicesWithPaths(storagePath, configPath, cfg), true
}

// resolveDay parses a --date value relative to deps.Now.
func resolveDay(input string) (time.Time, bool) {
	day, err := timeutil.ParseDay(input, deps.Now())
	if err != nil {
		fail("Invalid date", err, "Use today, yesterday, YYYY-MM-DD or DD/MM/YYYY")
		return time.Time{}, false
	}
	return day, true
}

// calcHint suggests a fix for a calculation failure.
func calcHint(err error) string {
	switch {
	case errors.Is(err, calc.ErrDoubleCharged), errors.Is(err, calc.ErrOverlapsPrevious):
		return "Add am/pm to the ambiguous times, or try --mode unordered if the lines are not in time order"
	case errors.Is(err, calc.ErrCrossesMidnight), errors.Is(err, calc.ErrSpanExceedsDay):
		return "Each range must start and end on the same day"
	case errors.Is(err, calc.ErrMalformedLine), errors.Is(err, calc.ErrMalformedRange):
		return "Lines look like: code 8-12, 1-5p"
	case errors.Is(err, calc.ErrInvalidTimeToken), errors.Is(err, calc.ErrInvalidMinutes):
		return "Times look like 8, 8.5, 8:30, 1p or 12:15am"
	}
	return ""
}
