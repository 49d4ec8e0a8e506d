package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/hrs/internal/config"
	"github.com/xolan/hrs/internal/service"
	"github.com/xolan/hrs/internal/tui/ui"
)

// modeCycle is the order m steps through.
var modeCycle = []string{config.ModeBoth, config.ModeOrdered, config.ModeUnordered}

// ConfigModel is the model for the config view
type ConfigModel struct {
	services      *service.Services
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap

	width     int
	height    int
	config    config.Config
	path      string
	exists    bool
	themeName string
	err       error

	// Theme selector state
	selectingTheme bool
	themes         []string
	themeCursor    int
	themeOffset    int
}

// NewConfigModel creates a new config view model
func NewConfigModel(services *service.Services, themeProvider *ui.ThemeProvider, styles ui.Styles, keys ui.KeyMap) ConfigModel {
	return ConfigModel{
		services:      services,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		themes:        themeProvider.AvailableThemes(),
		themeCursor:   max(0, themeProvider.IndexOf(themeProvider.CurrentName())),
		themeName:     themeProvider.CurrentName(),
	}
}

// Init implements tea.Model
func (m ConfigModel) Init() tea.Cmd {
	return m.loadConfig()
}

// configLoadedMsg is sent when config is loaded or saved
type configLoadedMsg struct {
	config config.Config
	path   string
	exists bool
	err    error
}

// maxVisibleThemes is the maximum number of themes to show at once
const maxVisibleThemes = 10

// Update implements tea.Model
func (m ConfigModel) Update(msg tea.Msg) (ConfigModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.selectingTheme {
			return m.handleThemeSelection(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Select), key.Matches(msg, m.keys.Themes):
			m.selectingTheme = true
			m.updateThemeOffset()
			return m, nil
		case key.Matches(msg, m.keys.CycleMode):
			cfg := m.services.Config.Get()
			cfg.Mode = nextMode(cfg.Mode)
			return m, m.saveConfig(cfg)
		case key.Matches(msg, m.keys.ToggleClock):
			cfg := m.services.Config.Get()
			cfg.Clock = config.Clock24h
			if cfg.Clock == config.Clock24h {
				cfg.Clock = config.Clock12h
			}
			return m, m.saveConfig(cfg)
		}

	case configLoadedMsg:
		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}
		m.config = msg.config
		m.path = msg.path
		m.exists = msg.exists
		m.themeName = msg.config.Theme
		if m.themeName == "" {
			m.themeName = ui.DefaultTheme
		}
		if i := m.themeProvider.IndexOf(m.themeName); i >= 0 {
			m.themeCursor = i
		}

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		m.themeName = msg.ThemeName
		m.config.Theme = msg.ThemeName
		return m, nil
	}

	return m, nil
}

func nextMode(mode string) string {
	for i, md := range modeCycle {
		if md == mode {
			return modeCycle[(i+1)%len(modeCycle)]
		}
	}
	return modeCycle[0]
}

// handleThemeSelection handles keys when theme selector is open
func (m ConfigModel) handleThemeSelection(msg tea.KeyMsg) (ConfigModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.themeCursor > 0 {
			m.themeCursor--
			m.updateThemeOffset()
		}
	case key.Matches(msg, m.keys.Down):
		if m.themeCursor < len(m.themes)-1 {
			m.themeCursor++
			m.updateThemeOffset()
		}
	case key.Matches(msg, m.keys.Select):
		m.selectingTheme = false
		return m, m.requestThemeChange(m.themes[m.themeCursor])
	case key.Matches(msg, m.keys.Back):
		m.selectingTheme = false
		if i := m.themeProvider.IndexOf(m.themeName); i >= 0 {
			m.themeCursor = i
		}
	}
	return m, nil
}

// updateThemeOffset adjusts scroll offset to keep cursor visible
func (m *ConfigModel) updateThemeOffset() {
	if m.themeCursor < m.themeOffset {
		m.themeOffset = m.themeCursor
	} else if m.themeCursor >= m.themeOffset+maxVisibleThemes {
		m.themeOffset = m.themeCursor - maxVisibleThemes + 1
	}
}

func (m ConfigModel) requestThemeChange(themeName string) tea.Cmd {
	return func() tea.Msg {
		return ui.ThemeChangeRequestMsg{ThemeName: themeName}
	}
}

// View implements tea.Model
func (m ConfigModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Configuration"))
	b.WriteString("\n\n")

	b.WriteString(m.renderConfigLine("Config file:", m.path))
	b.WriteString(m.styles.StatLabel.Render("Status:"))
	b.WriteString(" ")
	if m.exists {
		b.WriteString(m.styles.Success.Render("File exists"))
	} else {
		b.WriteString(m.styles.Warning.Render("Using defaults (no config file)"))
	}
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", min(50, max(m.width, 10))))
	b.WriteString("\n\n")

	target := "none"
	if m.config.TargetHours > 0 {
		target = fmt.Sprintf("%.2f", m.config.TargetHours)
	}
	b.WriteString(m.renderConfigLine("mode:", m.config.Mode))
	b.WriteString(m.renderConfigLine("target_hours:", target))
	b.WriteString(m.renderConfigLine("clock:", m.config.Clock))
	b.WriteString(m.renderConfigLine("listen_addr:", m.config.ListenAddr))
	b.WriteString(m.renderConfigLine("log_level:", m.config.LogLevel))

	if m.selectingTheme {
		b.WriteString(m.renderThemeSelector())
	} else {
		b.WriteString(m.renderConfigLine("theme:", m.themeName))
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("t themes  m mode  c clock"))
	}

	return b.String()
}

// renderThemeSelector renders the theme selection list
func (m ConfigModel) renderThemeSelector() string {
	var b strings.Builder

	b.WriteString(m.styles.StatLabel.Render("theme:"))
	b.WriteString(" ")
	b.WriteString(m.styles.StatValue.Render("Select a theme"))
	b.WriteString("\n\n")

	end := min(m.themeOffset+maxVisibleThemes, len(m.themes))
	if m.themeOffset > 0 {
		b.WriteString(m.styles.Muted.Render("  ↑ more themes above"))
		b.WriteString("\n")
	}

	for i := m.themeOffset; i < end; i++ {
		theme := m.themes[i]
		switch {
		case i == m.themeCursor:
			b.WriteString(m.styles.LineSelected.Render("▸ " + theme))
			if theme == m.themeName {
				b.WriteString(m.styles.Success.Render(" (current)"))
			}
		case theme == m.themeName:
			b.WriteString("  ")
			b.WriteString(m.styles.Success.Render(theme + " (current)"))
		default:
			b.WriteString("  ")
			b.WriteString(m.styles.StatValue.Render(theme))
		}
		b.WriteString("\n")
	}

	if end < len(m.themes) {
		b.WriteString(m.styles.Muted.Render("  ↓ more themes below"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("↑/↓ navigate  Enter select  Esc cancel"))
	return b.String()
}

// SetSize sets the view dimensions
func (m *ConfigModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m ConfigModel) loadConfig() tea.Cmd {
	return func() tea.Msg {
		return configLoadedMsg{
			config: m.services.Config.Get(),
			path:   m.services.Config.GetPath(),
			exists: m.services.Config.Exists(),
		}
	}
}

// saveConfig creates a command persisting cfg and reloading the view
func (m ConfigModel) saveConfig(cfg config.Config) tea.Cmd {
	return func() tea.Msg {
		if err := m.services.Config.Update(cfg); err != nil {
			return configLoadedMsg{err: err}
		}
		return configLoadedMsg{
			config: m.services.Config.Get(),
			path:   m.services.Config.GetPath(),
			exists: m.services.Config.Exists(),
		}
	}
}

// IsSelecting returns true while the theme selector is open
func (m ConfigModel) IsSelecting() bool {
	return m.selectingTheme
}

func (m ConfigModel) renderConfigLine(label, value string) string {
	return m.styles.StatLabel.Render(label) + " " + m.styles.StatValue.Render(value) + "\n"
}
