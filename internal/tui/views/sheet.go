package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/hrs/internal/cli"
	"github.com/xolan/hrs/internal/service"
	"github.com/xolan/hrs/internal/timeutil"
	"github.com/xolan/hrs/internal/tui/ui"
)

type sheetMode int

const (
	sheetModeNormal sheetMode = iota
	sheetModeAdd
	sheetModeDelete
)

// SheetModel is the model for the view of today's saved lines
type SheetModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap
	now      func() time.Time

	width   int
	height  int
	cursor  int
	result  *service.DayResult
	loading bool
	err     error

	mode  sheetMode
	input textinput.Model
}

// NewSheetModel creates a new sheet view model
func NewSheetModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) SheetModel {
	input := textinput.New()
	input.Placeholder = "oh 8-9, 12-1"
	input.CharLimit = 200
	input.Width = 50

	return SheetModel{
		services: services,
		styles:   styles,
		keys:     keys,
		now:      time.Now,
		loading:  true,
		input:    input,
	}
}

// sheetLoadedMsg is sent when the day's sheet is loaded
type sheetLoadedMsg struct {
	result *service.DayResult
	err    error
}

// lineAddedMsg is sent after a line was saved, or failed validation
type lineAddedMsg struct {
	err error
}

// Init implements tea.Model
func (m SheetModel) Init() tea.Cmd {
	return m.loadSheet()
}

// Update implements tea.Model
func (m SheetModel) Update(msg tea.Msg) (SheetModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case sheetModeAdd:
			return m.handleAddMode(msg)
		case sheetModeDelete:
			return m.handleDeleteMode(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.lines())-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, m.loadSheet()
		case key.Matches(msg, m.keys.New):
			m.mode = sheetModeAdd
			m.err = nil
			m.input.SetValue("")
			m.input.Focus()
			return m, textinput.Blink
		case key.Matches(msg, m.keys.Delete):
			if len(m.lines()) > 0 {
				m.mode = sheetModeDelete
			}
			return m, nil
		}

	case sheetLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.result = msg.result
			if m.cursor >= len(m.lines()) {
				m.cursor = max(0, len(m.lines())-1)
			}
		}
		return m, nil

	case lineAddedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.input.Focus()
			return m, nil
		}
		m.mode = sheetModeNormal
		m.err = nil
		m.cursor = len(m.lines())
		return m, m.loadSheet()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	if m.mode == sheetModeAdd {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m SheetModel) handleAddMode(msg tea.KeyMsg) (SheetModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		m.input.Blur()
		return m, m.addLine(text)
	case key.Matches(msg, m.keys.Back):
		m.mode = sheetModeNormal
		m.err = nil
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m SheetModel) handleDeleteMode(msg tea.KeyMsg) (SheetModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = sheetModeNormal
		if m.cursor < len(m.lines()) {
			return m, m.deleteLine(m.lines()[m.cursor].Index)
		}
	case "n", "N", "esc":
		m.mode = sheetModeNormal
	}
	return m, nil
}

func (m SheetModel) lines() []service.IndexedLine {
	if m.result == nil {
		return nil
	}
	return m.result.Lines
}

// View implements tea.Model
func (m SheetModel) View() string {
	switch m.mode {
	case sheetModeAdd:
		return m.renderAddForm()
	case sheetModeDelete:
		return m.renderDeleteConfirm()
	}

	var b strings.Builder
	now := m.now()
	b.WriteString(m.styles.ViewTitle.Render("Sheet for " + timeutil.FormatDay(now, now)))
	b.WriteString("\n")

	if m.loading {
		b.WriteString("Loading...")
		return b.String()
	}
	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}

	lines := m.lines()
	if len(lines) == 0 {
		b.WriteString(m.styles.StatLabel.Render("No lines saved"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatLabel.Render("Press 'n' to add a line"))
		return b.String()
	}

	b.WriteString(RenderLines(lines, m.styles, m.cursor))
	b.WriteString(strings.Repeat("─", min(50, max(m.width, 10))))
	b.WriteString("\n")
	b.WriteString(m.renderTotal())
	return b.String()
}

// renderTotal renders the day total in the configured mode
func (m SheetModel) renderTotal() string {
	cfg := m.services.Config.Get()
	cmp := m.result.Comparison
	out := primaryOutcome(cmp, cfg.Mode)

	var b strings.Builder
	if out.Err != nil {
		b.WriteString(m.styles.Error.Render(out.Err.Error()))
	} else if out.Result != nil {
		b.WriteString(fmt.Sprintf("Total: %s (%d %s, %s)",
			m.styles.Total.Render(fmt.Sprintf("%.1f hrs", out.Result.Total)),
			len(m.lines()), cli.Pluralize("line", len(m.lines())), out.Mode))
		if target := cli.FormatTarget(out.Result); target != "" {
			b.WriteString("\n")
			b.WriteString(m.styles.Target.Render(target))
		}
	}
	if cmp.Differ {
		b.WriteString("\n")
		b.WriteString(m.styles.Warning.Render("Calculation methods disagree, open the calculator (ctrl+l) for details"))
	}
	return b.String()
}

func (m SheetModel) renderAddForm() string {
	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("New Line"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(m.styles.Error.Render(m.err.Error()))
		b.WriteString("\n\n")
	}
	b.WriteString(m.styles.StatLabel.Render("Enter to save, Esc to cancel"))
	return b.String()
}

func (m SheetModel) renderDeleteConfirm() string {
	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Delete Line"))
	b.WriteString("\n\n")
	if m.cursor < len(m.lines()) {
		b.WriteString(m.styles.Warning.Render("Are you sure you want to delete this line?"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatValue.Render(m.lines()[m.cursor].Line.Text))
		b.WriteString("\n\n")
	}
	b.WriteString(m.styles.StatLabel.Render("Press Y to confirm, N or Esc to cancel"))
	return b.String()
}

// SetSize sets the view dimensions
func (m *SheetModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// loadSheet creates a command calculating today's sheet
func (m SheetModel) loadSheet() tea.Cmd {
	return func() tea.Msg {
		result, err := m.services.Sheet.Calculate(context.Background(), m.now())
		return sheetLoadedMsg{result: result, err: err}
	}
}

// addLine creates a command saving a line to today's sheet
func (m SheetModel) addLine(text string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.services.Sheet.Add(m.now(), text)
		return lineAddedMsg{err: err}
	}
}

// deleteLine creates a command removing the line at a 1-based index
func (m SheetModel) deleteLine(index int) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.services.Sheet.Delete(m.now(), index); err != nil {
			return sheetLoadedMsg{err: err}
		}
		result, err := m.services.Sheet.Calculate(context.Background(), m.now())
		return sheetLoadedMsg{result: result, err: err}
	}
}

// IsInputMode returns true when the view is capturing keyboard input
func (m SheetModel) IsInputMode() bool {
	return m.mode == sheetModeAdd
}
