// Package sheet models the saved entry lines of a day's time sheet.
package sheet

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DayLayout is the format of Line.Day.
const DayLayout = "2006-01-02"

// Line is one saved entry line, e.g. "oh 8-9, 12-1", belonging to a day.
type Line struct {
	ID        uuid.UUID `json:"id"`
	Day       string    `json:"day"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NewLine creates a line for the given day with a fresh ID.
func NewLine(day time.Time, text string) Line {
	return Line{
		ID:        uuid.New(),
		Day:       DayOf(day),
		Text:      strings.TrimSpace(text),
		CreatedAt: time.Now(),
	}
}

// DayOf returns the Day key for t in its own location.
func DayOf(t time.Time) string {
	return t.Format(DayLayout)
}

// ForDay returns the lines saved for day, in the order they were added.
func ForDay(lines []Line, day string) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.Day == day {
			out = append(out, l)
		}
	}
	return out
}

// Text joins lines into calculator input, one line per entry.
func Text(lines []Line) string {
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.Text
	}
	return strings.Join(texts, "\n")
}
