package views

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xolan/hrs/internal/calc"
	"github.com/xolan/hrs/internal/config"
	"github.com/xolan/hrs/internal/service"
	"github.com/xolan/hrs/internal/sheet"
	"github.com/xolan/hrs/internal/tui/ui"
)

var testNow = time.Date(2026, 10, 18, 14, 0, 0, 0, time.Local)

func setupTestServices(t *testing.T) *service.Services {
	t.Helper()
	tmpDir := t.TempDir()
	return service.NewServicesWithPaths(
		filepath.Join(tmpDir, "sheets.jsonl"),
		filepath.Join(tmpDir, "config.toml"),
		config.DefaultConfig(),
	)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRenderResult(t *testing.T) {
	r, err := calc.Process("oh 8-9\nc 9-12, 1-5\n\\=8.5", calc.ModeOrdered)
	require.NoError(t, err)

	out := RenderResult(r, ui.DefaultStyles(), config.Clock12h)

	assert.Contains(t, out, "oh")
	assert.Contains(t, out, "1.0")
	assert.Contains(t, out, "7.0")
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "8.0")
	assert.Contains(t, out, "12:00 PM – 1:00 PM  (60 min / 1.00 hrs)")
	assert.Contains(t, out, "Target 8.5 hrs: done by 5:28pm")
}

func TestRenderResult_MultiWordID(t *testing.T) {
	r, err := calc.Process("client work 8-9", calc.ModeOrdered)
	require.NoError(t, err)

	out := RenderResult(r, ui.DefaultStyles(), config.Clock24h)

	assert.Contains(t, out, `Multi-word ID: "client work"`)
	assert.NotContains(t, out, "Break")
}

func TestRenderOutcome(t *testing.T) {
	styles := ui.DefaultStyles()

	out := RenderOutcome("Ordered", service.Outcome{Err: errors.New("boom")}, styles, config.Clock12h)
	assert.Contains(t, out, "Ordered")
	assert.Contains(t, out, "boom")

	r, err := calc.Process("a 8-10", calc.ModeUnordered)
	require.NoError(t, err)
	out = RenderOutcome("Unordered", service.Outcome{Result: r}, styles, config.Clock12h)
	assert.Contains(t, out, "Unordered")
	assert.Contains(t, out, "2.0")
}

func TestRenderLines(t *testing.T) {
	lines := []service.IndexedLine{
		{Line: sheet.Line{Text: "oh 8-9"}, Index: 1},
		{Line: sheet.Line{Text: "c 9-12"}, Index: 2},
	}

	out := RenderLines(lines, ui.DefaultStyles(), 1)

	assert.Contains(t, out, "[1]")
	assert.Contains(t, out, "oh 8-9")
	assert.Contains(t, out, "[2]")
	assert.Contains(t, out, "c 9-12")
	assert.Empty(t, RenderLines(nil, ui.DefaultStyles(), -1))
}

func TestPrimaryOutcome(t *testing.T) {
	okOrdered := service.Outcome{Mode: calc.ModeOrdered, Result: &calc.Result{Mode: calc.ModeOrdered}}
	okUnordered := service.Outcome{Mode: calc.ModeUnordered, Result: &calc.Result{Mode: calc.ModeUnordered}}
	failOrdered := service.Outcome{Mode: calc.ModeOrdered, Err: errors.New("x")}

	tests := []struct {
		name string
		cmp  service.Comparison
		mode string
		want calc.Mode
	}{
		{"both prefers ordered", service.Comparison{Ordered: okOrdered, Unordered: okUnordered}, config.ModeBoth, calc.ModeOrdered},
		{"both falls back to unordered", service.Comparison{Ordered: failOrdered, Unordered: okUnordered}, config.ModeBoth, calc.ModeUnordered},
		{"explicit unordered", service.Comparison{Ordered: okOrdered, Unordered: okUnordered}, config.ModeUnordered, calc.ModeUnordered},
		{"explicit ordered keeps failure", service.Comparison{Ordered: failOrdered, Unordered: okUnordered}, config.ModeOrdered, calc.ModeOrdered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, primaryOutcome(tt.cmp, tt.mode).Mode)
		})
	}
}

func newTestCalculator(t *testing.T) (CalculatorModel, *service.Services) {
	t.Helper()
	services := setupTestServices(t)
	m := NewCalculatorModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())
	m.now = func() time.Time { return testNow }
	m.SetSize(100, 40)
	return m, services
}

func TestCalculatorModel_Typing(t *testing.T) {
	m, _ := newTestCalculator(t)
	require.True(t, m.IsCapturingKeys())

	m, cmd := m.Update(keyRunes("a 8-9"))

	assert.Equal(t, "a 8-9", m.Text())
	assert.NotNil(t, cmd, "an edit should schedule a calculation")
}

func TestCalculatorModel_ShowsBothModes(t *testing.T) {
	m, _ := newTestCalculator(t)
	m.editor.SetValue("a 8-9\nb 9-10")

	m, _ = m.Update(m.calculate(m.Text())())
	require.NotNil(t, m.comparison)

	view := m.View()
	assert.Contains(t, view, "Ordered")
	assert.Contains(t, view, "Unordered")
	assert.Contains(t, view, "2.0")
	assert.NotContains(t, view, "Results differ")
}

func TestCalculatorModel_ShowsDisagreement(t *testing.T) {
	m, _ := newTestCalculator(t)
	m.editor.SetValue("b 9-8\na 7-8")

	m, _ = m.Update(m.calculate(m.Text())())

	view := m.View()
	assert.Contains(t, view, "Double charging")
	assert.Contains(t, view, "Results differ between calculation methods")
}

func TestCalculatorModel_DropsStaleResults(t *testing.T) {
	m, _ := newTestCalculator(t)
	m.editor.SetValue("a 8-9")
	stale := m.calculate("a 8-10")()

	m, _ = m.Update(stale)

	assert.Nil(t, m.comparison)
}

func TestCalculatorModel_BlankInputClearsResults(t *testing.T) {
	m, _ := newTestCalculator(t)
	m.editor.SetValue("a 8-9")
	m, _ = m.Update(m.calculate(m.Text())())
	require.NotNil(t, m.comparison)

	m.editor.SetValue("  ")
	m, _ = m.Update(m.calculate(m.Text())())

	assert.Nil(t, m.comparison)
}

func TestCalculatorModel_LoadSheet(t *testing.T) {
	m, services := newTestCalculator(t)
	_, err := services.Sheet.Add(testNow, "oh 8-9")
	require.NoError(t, err)
	_, err = services.Sheet.Add(testNow, "c 9-12")
	require.NoError(t, err)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	require.NotNil(t, cmd)

	m, cmd = m.Update(cmd())
	assert.Equal(t, "oh 8-9\nc 9-12", m.Text())
	require.NotNil(t, cmd)

	m, _ = m.Update(cmd())
	require.NotNil(t, m.comparison)
	assert.Equal(t, 4.0, m.comparison.Ordered.Result.Total)
}

func TestCalculatorModel_FocusAndClear(t *testing.T) {
	m, _ := newTestCalculator(t)
	m.editor.SetValue("a 8-9")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.IsCapturingKeys())

	m, _ = m.Update(keyRunes("x"))
	assert.Equal(t, "a 8-9", m.Text(), "keys are ignored while the editor is blurred")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.IsCapturingKeys())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlK})
	assert.Empty(t, m.Text())
}

func newTestSheet(t *testing.T) (SheetModel, *service.Services) {
	t.Helper()
	services := setupTestServices(t)
	m := NewSheetModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())
	m.now = func() time.Time { return testNow }
	m.SetSize(100, 40)
	return m, services
}

func TestSheetModel_Empty(t *testing.T) {
	m, _ := newTestSheet(t)
	assert.Contains(t, m.View(), "Loading...")

	m, _ = m.Update(m.Init()())

	assert.Contains(t, m.View(), "No lines saved")
	assert.Contains(t, m.View(), "Sheet for today")
}

func TestSheetModel_AddAndDelete(t *testing.T) {
	m, services := newTestSheet(t)
	m, _ = m.Update(m.Init()())

	m, _ = m.Update(keyRunes("n"))
	require.True(t, m.IsInputMode())
	m, _ = m.Update(keyRunes("oh 8-9"))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	m, cmd = m.Update(cmd())
	assert.False(t, m.IsInputMode())
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())

	view := m.View()
	assert.Contains(t, view, "oh 8-9")
	assert.Contains(t, view, "Total:")
	assert.Contains(t, view, "1.0 hrs")

	text, err := services.Sheet.Text(testNow)
	require.NoError(t, err)
	assert.Equal(t, "oh 8-9", text)

	m, _ = m.Update(keyRunes("d"))
	assert.Contains(t, m.View(), "Are you sure")
	m, cmd = m.Update(keyRunes("y"))
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())

	assert.Contains(t, m.View(), "No lines saved")
}

func TestSheetModel_AddInvalidLine(t *testing.T) {
	m, _ := newTestSheet(t)
	m, _ = m.Update(m.Init()())

	m, _ = m.Update(keyRunes("n"))
	m, _ = m.Update(keyRunes("oh"))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())

	assert.True(t, m.IsInputMode(), "a rejected line keeps the form open")
	assert.Error(t, m.err)
}

func TestSheetModel_CancelAdd(t *testing.T) {
	m, _ := newTestSheet(t)
	m, _ = m.Update(m.Init()())

	m, _ = m.Update(keyRunes("n"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.IsInputMode())
}

func TestSheetModel_Navigation(t *testing.T) {
	m, services := newTestSheet(t)
	for _, line := range []string{"a 8-9", "b 9-10", "c 10-11"} {
		_, err := services.Sheet.Add(testNow, line)
		require.NoError(t, err)
	}
	m, _ = m.Update(m.Init()())

	m, _ = m.Update(keyRunes("j"))
	m, _ = m.Update(keyRunes("j"))
	m, _ = m.Update(keyRunes("j"))
	assert.Equal(t, 2, m.cursor)

	m, _ = m.Update(keyRunes("k"))
	assert.Equal(t, 1, m.cursor)
}

func newTestConfig(t *testing.T) (ConfigModel, *service.Services) {
	t.Helper()
	services := setupTestServices(t)
	m := NewConfigModel(services, ui.NewThemeProvider(ui.DefaultTheme), ui.DefaultStyles(), ui.DefaultKeyMap())
	m, _ = m.Update(m.Init()())
	return m, services
}

func TestConfigModel_View(t *testing.T) {
	m, _ := newTestConfig(t)

	view := m.View()
	assert.Contains(t, view, "Configuration")
	assert.Contains(t, view, "Using defaults")
	assert.Contains(t, view, config.ModeBoth)
	assert.Contains(t, view, config.Clock12h)
	assert.Contains(t, view, ui.DefaultTheme)
}

func TestConfigModel_ThemeSelection(t *testing.T) {
	m, _ := newTestConfig(t)
	start := m.themeCursor

	m, _ = m.Update(keyRunes("t"))
	require.True(t, m.IsSelecting())

	m, _ = m.Update(keyRunes("j"))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, m.IsSelecting())

	msg, ok := cmd().(ui.ThemeChangeRequestMsg)
	require.True(t, ok)
	if start < len(m.themes)-1 {
		assert.Equal(t, m.themes[start+1], msg.ThemeName)
	}
}

func TestConfigModel_ThemeSelectionCancel(t *testing.T) {
	m, _ := newTestConfig(t)
	start := m.themeCursor

	m, _ = m.Update(keyRunes("t"))
	m, _ = m.Update(keyRunes("k"))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
	assert.False(t, m.IsSelecting())
	assert.Equal(t, start, m.themeCursor)
}

func TestConfigModel_CycleModeAndClock(t *testing.T) {
	m, services := newTestConfig(t)

	m, cmd := m.Update(keyRunes("m"))
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	assert.Equal(t, config.ModeOrdered, services.Config.Get().Mode)
	assert.Equal(t, config.ModeOrdered, m.config.Mode)
	assert.True(t, services.Config.Exists())

	m, cmd = m.Update(keyRunes("c"))
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	assert.Equal(t, config.Clock24h, services.Config.Get().Clock)
	assert.Contains(t, m.View(), "File exists")
}

func TestNextMode(t *testing.T) {
	assert.Equal(t, config.ModeOrdered, nextMode(config.ModeBoth))
	assert.Equal(t, config.ModeUnordered, nextMode(config.ModeOrdered))
	assert.Equal(t, config.ModeBoth, nextMode(config.ModeUnordered))
	assert.Equal(t, config.ModeBoth, nextMode("bogus"))
}
