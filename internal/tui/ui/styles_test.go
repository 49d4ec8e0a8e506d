package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultStyles(t *testing.T) {
	styles := DefaultStyles()

	assert.Equal(t, 1, styles.App.GetPaddingTop())
	assert.Equal(t, 2, styles.App.GetPaddingLeft())
	assert.True(t, styles.TabActive.GetBold())
	assert.False(t, styles.TabInactive.GetBold())
	assert.True(t, styles.Total.GetBold())
	assert.Equal(t, 5, styles.LineIndex.GetWidth())
	assert.Equal(t, 7, styles.CodeHours.GetWidth())
}

func TestNewStylesFromRegistry(t *testing.T) {
	tp := NewThemeProvider("nord")

	styles := NewStylesFromRegistry(tp.registry)

	assert.Equal(t, tp.registry.Purple(), styles.TabActive.GetForeground())
	assert.Equal(t, tp.registry.Cyan(), styles.CodeID.GetForeground())
	assert.Equal(t, tp.registry.Red(), styles.Error.GetForeground())
	assert.True(t, styles.ViewTitle.GetBold())
}
