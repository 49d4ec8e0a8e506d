// Package tui provides the terminal user interface of hrs.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xolan/hrs/internal/service"
	"github.com/xolan/hrs/internal/tui/ui"
	"github.com/xolan/hrs/internal/tui/views"
)

// Tab represents a view tab
type Tab int

const (
	TabCalculator Tab = iota
	TabSheet
	TabConfig
)

var tabNames = []string{"Calculator", "Sheet", "Config"}

// Model is the root TUI model
type Model struct {
	services *service.Services

	activeTab Tab
	width     int
	height    int
	showHelp  bool

	calculatorView views.CalculatorModel
	sheetView      views.SheetModel
	configView     views.ConfigModel

	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
}

// New creates a new TUI model
func New(services *service.Services) Model {
	themeProvider := ui.NewThemeProvider(services.Config.Get().Theme)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	return Model{
		services:       services,
		activeTab:      TabCalculator,
		themeProvider:  themeProvider,
		styles:         styles,
		keys:           keys,
		calculatorView: views.NewCalculatorModel(services, styles, keys),
		sheetView:      views.NewSheetModel(services, styles, keys),
		configView:     views.NewConfigModel(services, themeProvider, styles, keys),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.calculatorView.Init(),
		m.sheetView.Init(),
		m.configView.Init(),
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// modal blocks every global key except ctrl+c, capturing only the
		// character keys.
		modal := m.isModalInputMode()
		capturing := m.isCapturingKeys()

		switch {
		case msg.Type == tea.KeyCtrlC:
			return m, tea.Quit

		case key.Matches(msg, m.keys.Quit) && !capturing:
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help) && !capturing:
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.NextTab) && !modal:
			return m.switchTab(Tab((int(m.activeTab) + 1) % len(tabNames)))

		case key.Matches(msg, m.keys.PrevTab) && !modal:
			return m.switchTab(Tab((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames)))

		case key.Matches(msg, m.keys.Tab1) && !capturing:
			return m.switchTab(TabCalculator)

		case key.Matches(msg, m.keys.Tab2) && !capturing:
			return m.switchTab(TabSheet)

		case key.Matches(msg, m.keys.Tab3) && !capturing:
			return m.switchTab(TabConfig)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		contentHeight := m.height - 4
		m.calculatorView.SetSize(m.width, contentHeight)
		m.sheetView.SetSize(m.width, contentHeight)
		m.configView.SetSize(m.width, contentHeight)
		return m, nil

	case ui.ThemeChangeRequestMsg:
		m.themeProvider.SetTheme(msg.ThemeName)
		m.styles = m.themeProvider.Styles()

		themeMsg := ui.ThemeChangedMsg{
			ThemeName: m.themeProvider.CurrentName(),
			Styles:    m.styles,
		}
		m.calculatorView, _ = m.calculatorView.Update(themeMsg)
		m.sheetView, _ = m.sheetView.Update(themeMsg)
		m.configView, _ = m.configView.Update(themeMsg)

		return m, m.saveThemeConfig(themeMsg.ThemeName)
	}

	switch m.activeTab {
	case TabCalculator:
		m.calculatorView, cmd = m.calculatorView.Update(msg)
	case TabSheet:
		m.sheetView, cmd = m.sheetView.Update(msg)
	case TabConfig:
		m.configView, cmd = m.configView.Update(msg)
	}
	return m, cmd
}

func (m Model) switchTab(tab Tab) (tea.Model, tea.Cmd) {
	m.activeTab = tab
	return m, m.initCurrentView()
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.activeTab {
	case TabCalculator:
		b.WriteString(m.calculatorView.View())
	case TabSheet:
		b.WriteString(m.sheetView.View())
	case TabConfig:
		b.WriteString(m.configView.View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return m.styles.App.Render(b.String())
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs[i] = m.styles.TabActive.Render(name)
		} else {
			tabs[i] = m.styles.TabInactive.Render(name)
		}
	}
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m Model) renderStatusBar() string {
	var parts []string

	if m.isModalInputMode() {
		parts = append(parts,
			m.renderKeyHelp("Enter", "save"),
			m.renderKeyHelp("Esc", "cancel"))
	} else {
		switch m.activeTab {
		case TabCalculator:
			if m.calculatorView.IsCapturingKeys() {
				parts = append(parts, m.renderKeyHelp("Esc", "leave editor"))
			} else {
				parts = append(parts, m.renderKeyHelp("Enter", "edit"))
			}
			parts = append(parts,
				m.renderKeyHelp("ctrl+l", "load sheet"),
				m.renderKeyHelp("ctrl+k", "clear"))
		case TabSheet:
			parts = append(parts,
				m.renderKeyHelp("n", "new"),
				m.renderKeyHelp("d", "delete"),
				m.renderKeyHelp("r", "refresh"))
		case TabConfig:
			parts = append(parts,
				m.renderKeyHelp("t", "themes"),
				m.renderKeyHelp("m", "mode"),
				m.renderKeyHelp("c", "clock"))
		}

		if !m.isCapturingKeys() {
			parts = append(parts,
				m.renderKeyHelp("1-3", "views"),
				m.renderKeyHelp("?", "help"),
				m.renderKeyHelp("q", "quit"))
		}
	}

	content := strings.Join(parts, "  ")
	if padding := m.width - lipgloss.Width(content); padding > 0 {
		content += strings.Repeat(" ", padding)
	}
	return m.styles.StatusBar.Render(content)
}

func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// isModalInputMode reports whether the active view holds an input that must
// not be left with tab.
func (m Model) isModalInputMode() bool {
	switch m.activeTab {
	case TabSheet:
		return m.sheetView.IsInputMode()
	case TabConfig:
		return m.configView.IsSelecting()
	}
	return false
}

// isCapturingKeys reports whether character keys belong to the active view.
func (m Model) isCapturingKeys() bool {
	switch m.activeTab {
	case TabCalculator:
		return m.calculatorView.IsCapturingKeys()
	case TabSheet:
		return m.sheetView.IsInputMode()
	}
	return false
}

func (m Model) initCurrentView() tea.Cmd {
	switch m.activeTab {
	case TabSheet:
		return m.sheetView.Init()
	case TabConfig:
		return m.configView.Init()
	}
	return nil
}

// saveThemeConfig saves the theme to the config file
func (m Model) saveThemeConfig(themeName string) tea.Cmd {
	return func() tea.Msg {
		cfg := m.services.Config.Get()
		cfg.Theme = themeName
		_ = m.services.Config.Update(cfg)
		return nil
	}
}

func (m Model) renderHelpOverlay() string {
	var help strings.Builder

	help.WriteString(m.styles.DialogTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n\n")

	help.WriteString(m.styles.StatLabel.Render("Global:"))
	help.WriteString("\n")
	help.WriteString("  Tab/1-3    Switch views\n")
	help.WriteString("  ?          Toggle help\n")
	help.WriteString("  q          Quit\n")
	help.WriteString("\n")

	switch m.activeTab {
	case TabCalculator:
		help.WriteString(m.styles.StatLabel.Render("Calculator:"))
		help.WriteString("\n")
		help.WriteString("  Esc        Leave the editor\n")
		help.WriteString("  Enter      Return to the editor\n")
		help.WriteString("  ctrl+l     Load today's sheet\n")
		help.WriteString("  ctrl+k     Clear the editor\n")
		help.WriteString("\n")
		help.WriteString("  Times      8, 8:30, 8.5, 3p, 3pm\n")
		help.WriteString("  Comments   # // <...>\n")
		help.WriteString("  Target     \\=8.0\n")
	case TabSheet:
		help.WriteString(m.styles.StatLabel.Render("Sheet:"))
		help.WriteString("\n")
		help.WriteString("  j/k        Navigate up/down\n")
		help.WriteString("  n          New line\n")
		help.WriteString("  d          Delete line\n")
		help.WriteString("  r          Refresh\n")
	case TabConfig:
		help.WriteString(m.styles.StatLabel.Render("Config:"))
		help.WriteString("\n")
		help.WriteString("  t/Enter    Open theme selector\n")
		help.WriteString("  m          Cycle calculation mode\n")
		help.WriteString("  c          Toggle 12h/24h breaks\n")
	}

	help.WriteString("\n")
	help.WriteString(m.styles.Muted.Render("Press ? to close"))

	return m.styles.App.Render(m.styles.Dialog.Render(help.String()))
}

// Run starts the TUI application
func Run(services *service.Services) error {
	p := tea.NewProgram(New(services), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
