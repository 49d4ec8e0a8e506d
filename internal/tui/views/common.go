package views

import (
	"fmt"
	"strings"

	"github.com/xolan/hrs/internal/calc"
	"github.com/xolan/hrs/internal/cli"
	"github.com/xolan/hrs/internal/config"
	"github.com/xolan/hrs/internal/service"
	"github.com/xolan/hrs/internal/tui/ui"
)

// RenderResult renders per-code hours, the total, breaks and the target of a
// calculation.
func RenderResult(r *calc.Result, styles ui.Styles, clock string) string {
	width := len("Total")
	for _, t := range r.Totals {
		width = max(width, len(t.ID))
	}

	var b strings.Builder
	for _, t := range r.Totals {
		b.WriteString(styles.CodeID.Render(fmt.Sprintf("%-*s", width, t.ID)))
		b.WriteString(styles.CodeHours.Render(fmt.Sprintf("%.1f", t.Hours)))
		b.WriteString("\n")
	}
	b.WriteString(styles.Total.Render(fmt.Sprintf("%-*s", width, "Total")))
	b.WriteString(styles.CodeHours.Inherit(styles.Total).Render(fmt.Sprintf("%.1f", r.Total)))
	b.WriteString("\n")

	if len(r.Breaks) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.StatLabel.Render(cli.Pluralize("Break", len(r.Breaks))))
		b.WriteString("\n")
		for _, brk := range r.Breaks {
			b.WriteString(styles.Break.Render("  " + cli.FormatBreak(brk, clock)))
			b.WriteString("\n")
		}
	}

	if target := cli.FormatTarget(r); target != "" {
		b.WriteString("\n")
		b.WriteString(styles.Target.Render(target))
		b.WriteString("\n")
	}

	for _, id := range r.Metadata.DetectedIDs {
		b.WriteString(styles.Warning.Render(fmt.Sprintf("Multi-word ID: %q", id)))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderOutcome renders one mode's result, or its error.
func RenderOutcome(title string, o service.Outcome, styles ui.Styles, clock string) string {
	var b strings.Builder
	b.WriteString(styles.PaneTitle.Render(title))
	b.WriteString("\n\n")
	if o.Err != nil {
		b.WriteString(styles.Error.Render(o.Err.Error()))
		return b.String()
	}
	if o.Result != nil {
		b.WriteString(RenderResult(o.Result, styles, clock))
	}
	return b.String()
}

// RenderLines renders a day's sheet lines with their 1-based indexes. The line
// at cursor is highlighted; pass -1 for none.
func RenderLines(lines []service.IndexedLine, styles ui.Styles, cursor int) string {
	var b strings.Builder
	for i, l := range lines {
		style := styles.LineNormal
		if i == cursor {
			style = styles.LineSelected
		}
		index := styles.LineIndex.Render(fmt.Sprintf("[%d]", l.Index))
		b.WriteString(style.Render(index + " " + styles.LineText.Render(l.Line.Text)))
		b.WriteString("\n")
	}
	return b.String()
}

// primaryOutcome picks the outcome to report for mode: the requested one, or
// for "both" the ordered outcome unless only unordered succeeded.
func primaryOutcome(c service.Comparison, mode string) service.Outcome {
	switch mode {
	case config.ModeOrdered:
		return c.Ordered
	case config.ModeUnordered:
		return c.Unordered
	}
	if !c.Ordered.OK() && c.Unordered.OK() {
		return c.Unordered
	}
	return c.Ordered
}
