// Package cli provides the CLI presentation layer for the hrs application.
// It renders calculation results and storage diagnostics as plain text.
package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xolan/hrs/internal/calc"
	"github.com/xolan/hrs/internal/config"
	"github.com/xolan/hrs/internal/service"
	"github.com/xolan/hrs/internal/storage"
)

// FormatClock formats a 24-hour "H:MM" string for the given clock style.
// Unparseable input is returned unchanged.
// Examples: "13:30" -> "1:30 PM" (12h), "13:30" (24h)
func FormatClock(hm string, clock string) string {
	h, m, ok := splitHM(hm)
	if !ok {
		return hm
	}
	if clock == config.Clock24h {
		return fmt.Sprintf("%d:%02d", h, m)
	}
	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, m, period)
}

func splitHM(hm string) (int, int, bool) {
	hs, ms, found := strings.Cut(hm, ":")
	if !found {
		return 0, 0, false
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(ms)
	if err != nil {
		return 0, 0, false
	}
	return h, m, true
}

// FormatBreak formats a break for display.
// Example: "12:00 PM – 1:00 PM  (60 min / 1.00 hrs)"
func FormatBreak(b calc.Break, clock string) string {
	minutes := int(math.RoundToEven(b.Hours * 60))
	return fmt.Sprintf("%s \u2013 %s  (%d min / %.2f hrs)",
		FormatClock(b.Start, clock), FormatClock(b.End, clock), minutes, b.Hours)
}

// FormatTotals formats per-identifier hours on one line.
// Example: "oh = 1.0 hrs,  c = 7.0 hrs,  Total = 8.0 hrs"
func FormatTotals(r *calc.Result) string {
	parts := make([]string, 0, len(r.Totals)+1)
	for _, t := range r.Totals {
		parts = append(parts, fmt.Sprintf("%s = %.1f hrs", t.ID, t.Hours))
	}
	parts = append(parts, fmt.Sprintf("Total = %.1f hrs", r.Total))
	return strings.Join(parts, ",  ")
}

// FormatTarget describes when the target is or was met, or returns "" when the
// result has no target.
func FormatTarget(r *calc.Result) string {
	switch {
	case r.Metadata.TargetAchievedAt != "":
		return fmt.Sprintf("Target %.1f hrs: done since %s", r.TargetHours, r.Metadata.TargetAchievedAt)
	case r.Metadata.TargetTime != "":
		return fmt.Sprintf("Target %.1f hrs: done by %s", r.TargetHours, r.Metadata.TargetTime)
	}
	return ""
}

// WriteResult writes a result as an aligned table of hours followed by breaks,
// the target projection and multi-word identifier notes.
func WriteResult(w io.Writer, r *calc.Result, clock string) {
	width := len("Total")
	for _, t := range r.Totals {
		width = max(width, len(t.ID))
	}

	for _, t := range r.Totals {
		_, _ = fmt.Fprintf(w, "%-*s  %5.1f\n", width, t.ID, t.Hours)
	}
	_, _ = fmt.Fprintln(w, strings.Repeat("-", width+7))
	_, _ = fmt.Fprintf(w, "%-*s  %5.1f\n", width, "Total", r.Total)

	if len(r.Breaks) > 0 {
		_, _ = fmt.Fprintf(w, "\n%s:\n", Pluralize("Break", len(r.Breaks)))
		for _, b := range r.Breaks {
			_, _ = fmt.Fprintf(w, "  %s\n", FormatBreak(b, clock))
		}
	}

	if target := FormatTarget(r); target != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", target)
	}

	if ids := r.Metadata.DetectedIDs; len(ids) > 0 {
		_, _ = fmt.Fprintf(w, "\nMulti-word %s detected:\n", Pluralize("ID", len(ids)))
		for _, id := range ids {
			_, _ = fmt.Fprintf(w, "  ID detected as: %q\n", id)
		}
	}
}

// WriteComparison writes the calculation for mode, which is one of the
// config.Mode* values. In "both" mode the ordered result is shown when it
// exists and disagreements with the unordered calculation are reported.
//
// The returned error is the failure to show when no result could be written.
func WriteComparison(w io.Writer, c service.Comparison, mode string, clock string) error {
	switch mode {
	case config.ModeOrdered:
		return writeOutcome(w, c.Ordered, clock)
	case config.ModeUnordered:
		return writeOutcome(w, c.Unordered, clock)
	}

	ordered, unordered := c.Ordered, c.Unordered
	switch {
	case !ordered.OK() && !unordered.OK():
		return ordered.Err
	case !ordered.OK():
		_, _ = fmt.Fprintln(w, "Warning: disagreement between calculation methods, ordered mode failed")
		_, _ = fmt.Fprintf(w, "  %s\n", ordered.Err)
		_, _ = fmt.Fprintln(w, "  Showing unordered results below. Please review the results for accuracy.")
		_, _ = fmt.Fprintln(w)
		WriteResult(w, unordered.Result, clock)
		return nil
	}

	WriteResult(w, ordered.Result, clock)

	switch {
	case !unordered.OK():
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "Warning: disagreement between calculation methods, unordered mode failed")
		_, _ = fmt.Fprintf(w, "  %s\n", unordered.Err)
		_, _ = fmt.Fprintln(w, "  Showing ordered results above. Please review the results for accuracy.")
	case c.Differ:
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "Warning: disagreement between calculation methods, input order may be ambiguous")
		_, _ = fmt.Fprintf(w, "  Unordered: %s\n", FormatTotals(unordered.Result))
		if len(c.DisagreeingIDs) > 0 {
			_, _ = fmt.Fprintf(w, "  Differing: %s\n", strings.Join(c.DisagreeingIDs, ", "))
		}
		_, _ = fmt.Fprintln(w, "  Showing ordered results above. Please review the results for accuracy.")
	}
	return nil
}

func writeOutcome(w io.Writer, o service.Outcome, clock string) error {
	if !o.OK() {
		return o.Err
	}
	WriteResult(w, o.Result, clock)
	return nil
}

// FormatCorruptionWarning formats a ParseWarning into a human-readable string
func FormatCorruptionWarning(warning storage.ParseWarning) string {
	content := warning.Content
	if len(content) > 50 {
		content = content[:47] + "..."
	}
	return fmt.Sprintf("  Line %d: %s (error: %s)", warning.LineNumber, content, warning.Error)
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
