package ui

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewThemeProvider(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		want    string
	}{
		{"empty uses default", "", DefaultTheme},
		{"known theme", "nord", "nord"},
		{"unknown theme falls back", "nonexistent-theme-xyz", DefaultTheme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tp := NewThemeProvider(tt.initial)
			require.NotNil(t, tp)
			assert.Equal(t, tt.want, tp.CurrentName())
		})
	}
}

func TestThemeProvider_SetTheme(t *testing.T) {
	tp := NewThemeProvider("")

	assert.True(t, tp.SetTheme("nord"))
	assert.Equal(t, "nord", tp.CurrentName())

	assert.False(t, tp.SetTheme("nonexistent-theme-xyz"))
	assert.Equal(t, "nord", tp.CurrentName(), "invalid theme must not change the current one")
}

func TestThemeProvider_Cycle(t *testing.T) {
	tp := NewThemeProvider(DefaultTheme)

	next := tp.NextTheme()
	assert.Equal(t, next, tp.CurrentName())

	prev := tp.PreviousTheme()
	assert.Equal(t, prev, tp.CurrentName())
	assert.Equal(t, DefaultTheme, prev)
}

func TestThemeProvider_AvailableThemes(t *testing.T) {
	tp := NewThemeProvider("")

	themes := tp.AvailableThemes()

	require.NotEmpty(t, themes)
	assert.True(t, sort.StringsAreSorted(themes))
	assert.Contains(t, themes, DefaultTheme)
}

func TestThemeProvider_IndexOf(t *testing.T) {
	tp := NewThemeProvider("")
	themes := tp.AvailableThemes()

	i := tp.IndexOf(DefaultTheme)
	require.GreaterOrEqual(t, i, 0)
	assert.Equal(t, DefaultTheme, themes[i])
	assert.Equal(t, -1, tp.IndexOf("nonexistent-theme-xyz"))
}

func TestThemeProvider_Styles(t *testing.T) {
	tp := NewThemeProvider(DefaultTheme)

	styles := tp.Styles()

	assert.Equal(t, 1, styles.App.GetPaddingTop())
	assert.NotEmpty(t, tp.CurrentDisplayName())
}
