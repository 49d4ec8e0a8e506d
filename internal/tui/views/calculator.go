package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xolan/hrs/internal/service"
	"github.com/xolan/hrs/internal/tui/ui"
)

// CalculatorModel is a scratch editor whose input is recalculated in both
// modes on every edit.
type CalculatorModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap
	now      func() time.Time

	width      int
	height     int
	editor     textarea.Model
	comparison *service.Comparison
	err        error
}

// NewCalculatorModel creates a new calculator view model
func NewCalculatorModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) CalculatorModel {
	editor := textarea.New()
	editor.Placeholder = "oh 8-8:30, 12-1\nc 8:30-12, 1-5"
	editor.ShowLineNumbers = true
	editor.CharLimit = 0
	editor.SetWidth(60)
	editor.SetHeight(8)
	editor.Focus()

	return CalculatorModel{
		services: services,
		styles:   styles,
		keys:     keys,
		now:      time.Now,
		editor:   editor,
	}
}

type comparisonMsg struct {
	text       string
	comparison *service.Comparison
	err        error
}

type sheetTextMsg struct {
	text string
	err  error
}

// Init implements tea.Model
func (m CalculatorModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model
func (m CalculatorModel) Update(msg tea.Msg) (CalculatorModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.LoadSheet):
			return m, m.loadSheet()
		case key.Matches(msg, m.keys.ClearEditor):
			m.editor.Reset()
			m.comparison = nil
			m.err = nil
			return m, nil
		case key.Matches(msg, m.keys.Back) && m.editor.Focused():
			m.editor.Blur()
			return m, nil
		case key.Matches(msg, m.keys.Select) && !m.editor.Focused():
			return m, m.editor.Focus()
		}

		if !m.editor.Focused() {
			return m, nil
		}
		before := m.editor.Value()
		m.editor, cmd = m.editor.Update(msg)
		if text := m.editor.Value(); text != before {
			return m, tea.Batch(cmd, m.calculate(text))
		}
		return m, cmd

	case comparisonMsg:
		// Results of text that has since been edited are dropped.
		if msg.text != m.editor.Value() {
			return m, nil
		}
		m.comparison = msg.comparison
		m.err = msg.err
		return m, nil

	case sheetTextMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.editor.SetValue(msg.text)
		return m, m.calculate(msg.text)

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// calculate creates a command running both modes over text
func (m CalculatorModel) calculate(text string) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(text) == "" {
			return comparisonMsg{text: text}
		}
		cmp, err := m.services.Calc.Compare(context.Background(), text)
		if err != nil {
			return comparisonMsg{text: text, err: err}
		}
		return comparisonMsg{text: text, comparison: &cmp}
	}
}

// loadSheet creates a command reading today's sheet as editor text
func (m CalculatorModel) loadSheet() tea.Cmd {
	return func() tea.Msg {
		text, err := m.services.Sheet.Text(m.now())
		return sheetTextMsg{text: text, err: err}
	}
}

// View implements tea.Model
func (m CalculatorModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Calculator"))
	b.WriteString("\n")
	b.WriteString(m.editor.View())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	if m.comparison == nil {
		b.WriteString(m.styles.Muted.Render("Times: 8, 8:30, 8.5, 3p, 3pm  |  Comments: # // <...>  |  Target: \\=8.0"))
		return b.String()
	}

	clock := m.services.Config.Get().Clock
	paneWidth := max(30, (m.width-8)/2)
	pane := m.styles.Pane.Width(paneWidth)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		pane.Render(RenderOutcome("Ordered", m.comparison.Ordered, m.styles, clock)),
		" ",
		pane.Render(RenderOutcome("Unordered", m.comparison.Unordered, m.styles, clock)),
	))

	if m.comparison.Differ {
		b.WriteString("\n")
		b.WriteString(m.styles.Warning.Render("Results differ between calculation methods, review for accuracy."))
		if ids := m.comparison.DisagreeingIDs; len(ids) > 0 {
			b.WriteString("\n")
			b.WriteString(m.styles.Warning.Render("Differing: " + strings.Join(ids, ", ")))
		}
	}
	return b.String()
}

// SetSize sets the view dimensions
func (m *CalculatorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.editor.SetWidth(min(max(20, width-8), 100))
	m.editor.SetHeight(max(5, height/3))
}

// Text returns the editor contents.
func (m CalculatorModel) Text() string {
	return m.editor.Value()
}

// IsCapturingKeys returns true while the editor has focus
func (m CalculatorModel) IsCapturingKeys() bool {
	return m.editor.Focused()
}
