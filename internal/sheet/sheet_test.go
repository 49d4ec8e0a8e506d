package sheet

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewLine(t *testing.T) {
	day := time.Date(2024, time.March, 4, 23, 59, 0, 0, time.Local)

	l := NewLine(day, "  oh 8-9  ")

	assert.NotEqual(t, uuid.Nil, l.ID)
	assert.Equal(t, "2024-03-04", l.Day)
	assert.Equal(t, "oh 8-9", l.Text)
	assert.False(t, l.CreatedAt.IsZero())
}

func TestForDay(t *testing.T) {
	lines := []Line{
		{Day: "2024-03-04", Text: "a 8-9"},
		{Day: "2024-03-05", Text: "b 8-9"},
		{Day: "2024-03-04", Text: "c 9-10"},
	}

	got := ForDay(lines, "2024-03-04")

	assert.Equal(t, []Line{lines[0], lines[2]}, got)
	assert.Empty(t, ForDay(lines, "2024-01-01"))
}

func TestText(t *testing.T) {
	assert.Equal(t, "", Text(nil))
	assert.Equal(t, "a 8-9\nc 9-10", Text([]Line{{Text: "a 8-9"}, {Text: "c 9-10"}}))
}
