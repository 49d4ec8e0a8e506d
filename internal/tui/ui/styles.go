package ui

import (
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
)

// Styles contains all the styles used in the TUI
type Styles struct {
	App lipgloss.Style

	// Tab bar
	TabBar      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	ViewTitle lipgloss.Style
	PaneTitle lipgloss.Style
	Pane      lipgloss.Style

	// Status bar
	StatusBar   lipgloss.Style
	StatusKey   lipgloss.Style
	StatusValue lipgloss.Style
	StatusHelp  lipgloss.Style

	// Sheet lines
	LineSelected lipgloss.Style
	LineNormal   lipgloss.Style
	LineIndex    lipgloss.Style
	LineText     lipgloss.Style

	// Results
	CodeID    lipgloss.Style
	CodeHours lipgloss.Style
	Total     lipgloss.Style
	Break     lipgloss.Style
	Target    lipgloss.Style

	StatLabel lipgloss.Style
	StatValue lipgloss.Style
	Muted     lipgloss.Style

	Input        lipgloss.Style
	InputFocused lipgloss.Style

	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style

	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

// palette maps semantic roles to colors.
type palette struct {
	primary, secondary, accent, muted lipgloss.TerminalColor
	success, warning, err             lipgloss.TerminalColor
	fg, bg, selection                 lipgloss.TerminalColor
}

// DefaultStyles returns styles on the 256-color ANSI palette, for terminals
// without a theme.
func DefaultStyles() Styles {
	return buildStyles(palette{
		primary:   lipgloss.Color("99"),
		secondary: lipgloss.Color("39"),
		accent:    lipgloss.Color("212"),
		muted:     lipgloss.Color("240"),
		success:   lipgloss.Color("82"),
		warning:   lipgloss.Color("214"),
		err:       lipgloss.Color("196"),
		fg:        lipgloss.Color("252"),
		bg:        lipgloss.Color("236"),
		selection: lipgloss.Color("237"),
	})
}

// NewStylesFromRegistry creates styles from the current theme of a
// bubbletint registry:
// - Primary: Purple (tabs, titles, totals)
// - Secondary: Cyan (charge codes, keys)
// - Accent: BrightPurple (hours)
// - Muted: BrightBlack (labels, indexes, breaks)
func NewStylesFromRegistry(r *tint.Registry) Styles {
	return buildStyles(palette{
		primary:   r.Purple(),
		secondary: r.Cyan(),
		accent:    r.BrightPurple(),
		muted:     r.BrightBlack(),
		success:   r.Green(),
		warning:   r.Yellow(),
		err:       r.Red(),
		fg:        r.Fg(),
		bg:        r.Bg(),
		selection: r.BrightBlack(),
	})
}

func buildStyles(p palette) Styles {
	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		TabBar: lipgloss.NewStyle().
			MarginBottom(1).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.muted),
		TabActive: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 2),

		ViewTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),
		PaneTitle: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true),
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.muted).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.fg).
			Background(p.bg).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true),
		StatusValue: lipgloss.NewStyle().
			Foreground(p.fg),
		StatusHelp: lipgloss.NewStyle().
			Foreground(p.muted),

		LineSelected: lipgloss.NewStyle().
			Background(p.selection).
			Bold(true),
		LineNormal: lipgloss.NewStyle(),
		LineIndex: lipgloss.NewStyle().
			Foreground(p.muted).
			Width(5),
		LineText: lipgloss.NewStyle().
			Foreground(p.fg),

		CodeID: lipgloss.NewStyle().
			Foreground(p.secondary),
		CodeHours: lipgloss.NewStyle().
			Foreground(p.accent).
			Width(7).
			Align(lipgloss.Right),
		Total: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true),
		Break: lipgloss.NewStyle().
			Foreground(p.muted),
		Target: lipgloss.NewStyle().
			Foreground(p.success),

		StatLabel: lipgloss.NewStyle().
			Foreground(p.muted).
			Width(16),
		StatValue: lipgloss.NewStyle().
			Foreground(p.fg).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(p.muted),

		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.muted).
			Padding(0, 1),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.primary).
			Padding(0, 1),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(1, 2).
			Width(56),
		DialogTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),

		Error: lipgloss.NewStyle().
			Foreground(p.err),
		Warning: lipgloss.NewStyle().
			Foreground(p.warning),
		Success: lipgloss.NewStyle().
			Foreground(p.success),
	}
}
