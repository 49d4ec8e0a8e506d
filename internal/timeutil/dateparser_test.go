package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.March, 5, 15, 30, 0, 0, time.UTC)

func TestParseDay(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"", time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)},
		{"today", time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)},
		{"Y", time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)},
		{"yesterday", time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)},
		{"2024-01-15", time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)},
		{"15/01/2024", time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)},
		{" 2024-02-29 ", time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDay(tt.input, now)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}

func TestParseDay_YesterdayAcrossMonth(t *testing.T) {
	got, err := ParseDay("y", time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", got.Format("2006-01-02"))
}

func TestParseDate_Errors(t *testing.T) {
	tests := []struct {
		input  string
		errSub string
	}{
		{"", "cannot be empty"},
		{"2024", "missing month and day"},
		{"2024-01", "missing day"},
		{"01-15", "missing year"},
		{"15/01", "missing year"},
		{"2024-01-15-01", "too many date parts"},
		{"2023-02-29", "invalid date format"},
		{"soon", "invalid date format"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseDate(tt.input, time.UTC)
			assert.ErrorContains(t, err, tt.errSub)
		})
	}
}

func TestFormatDay(t *testing.T) {
	assert.Equal(t, "today", FormatDay(now.Add(-3*time.Hour), now))
	assert.Equal(t, "yesterday", FormatDay(now.AddDate(0, 0, -1), now))
	assert.Equal(t, "Mon 15 Jan 2024", FormatDay(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), now))
}
