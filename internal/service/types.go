// Package service provides the business logic layer for the hrs application.
// It wraps the calc engine, sheet storage and config, providing one API for
// the CLI, the TUI and the HTTP server.
package service

import (
	"encoding/json"
	"time"

	"github.com/xolan/hrs/internal/calc"
	"github.com/xolan/hrs/internal/config"
	"github.com/xolan/hrs/internal/sheet"
	"github.com/xolan/hrs/internal/storage"
)

// Outcome is what one mode produced for an input. Exactly one of Result and
// Err is set.
type Outcome struct {
	Mode   calc.Mode
	Result *calc.Result
	Err    error
}

// OK reports whether the mode produced a result.
func (o Outcome) OK() bool {
	return o.Err == nil && o.Result != nil
}

type outcomeJSON struct {
	Result *calc.Result `json:"result,omitempty"`
	Error  string       `json:"error,omitempty"`
	Kind   string       `json:"kind,omitempty"`
}

// MarshalJSON encodes the outcome as {"result": ...} or
// {"error": "...", "kind": "..."}.
func (o Outcome) MarshalJSON() ([]byte, error) {
	if o.Err != nil {
		return json.Marshal(outcomeJSON{Error: o.Err.Error(), Kind: calc.KindName(o.Err)})
	}
	return json.Marshal(outcomeJSON{Result: o.Result})
}

// Comparison holds the outcome of both modes for the same input.
type Comparison struct {
	Ordered   Outcome `json:"ordered"`
	Unordered Outcome `json:"unordered"`
	// Differ is set when exactly one mode failed, or when both succeeded but
	// disagree on totals or breaks.
	Differ bool `json:"differ"`
	// DisagreeingIDs lists identifiers whose hours differ between the modes.
	DisagreeingIDs []string `json:"disagreeing_ids,omitempty"`
}

// Outcome returns the outcome for mode.
func (c Comparison) Outcome(mode calc.Mode) Outcome {
	if mode == calc.ModeOrdered {
		return c.Ordered
	}
	return c.Unordered
}

// ForMode returns c itself for config.ModeBoth and a map holding only the
// requested outcome otherwise, ready to be encoded as JSON.
func (c Comparison) ForMode(mode string) any {
	switch mode {
	case config.ModeOrdered:
		return map[string]Outcome{"ordered": c.Ordered}
	case config.ModeUnordered:
		return map[string]Outcome{"unordered": c.Unordered}
	}
	return c
}

// IndexedLine is a sheet line with its 1-based position within its day.
type IndexedLine struct {
	Line  sheet.Line `json:"line"`
	Index int        `json:"index"`
}

// DayResult is a day's sheet with its calculation.
type DayResult struct {
	Day        time.Time              `json:"-"`
	Lines      []IndexedLine          `json:"lines"`
	Warnings   []storage.ParseWarning `json:"warnings,omitempty"`
	Comparison Comparison             `json:"comparison"`
}
