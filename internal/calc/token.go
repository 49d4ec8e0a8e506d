package calc

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numberPattern matches the numeric part of a time token: "8", "8.5", ".5".
var numberPattern = regexp.MustCompile(`^(?:\d+(?:\.\d*)?|\.\d+)$`)

// explicitPattern matches tokens that already say which half of the day they
// mean: a meridiem suffix or a leading-zero hour such as "09".
var explicitPattern = regexp.MustCompile(`(?i)(?:\d(?:am|pm|a|p)$|^0\d)`)

// meridiem suffixes, two-letter forms first.
var meridiems = []struct {
	suffix string
	pm     bool
}{
	{"am", false},
	{"pm", true},
	{"a", false},
	{"p", true},
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !numberPattern.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

// ParseTime converts one time token to decimal hours.
//
// Accepted forms are H, H.H and H:MM, each optionally followed by a, am, p or
// pm. Minutes contribute round(MM/60, 3) hours.
func ParseTime(token string) (float64, error) {
	raw := strings.TrimSpace(token)
	t := strings.ToLower(raw)

	am, pm := false, false
	for _, m := range meridiems {
		if strings.HasSuffix(t, m.suffix) {
			t = strings.TrimSpace(strings.TrimSuffix(t, m.suffix))
			am, pm = !m.pm, m.pm
			break
		}
	}

	hourPart, minutePart, hasMinutes := strings.Cut(t, ":")
	hours, ok := parseNumber(hourPart)
	if !ok {
		return 0, newError(ErrInvalidTimeToken,
			"Invalid time '%s'. Expected a time like 8, 8.5, 8:30, 8a or 8pm.", raw)
	}

	minutes := 0.0
	if hasMinutes {
		rawMinutes, ok := parseNumber(minutePart)
		if !ok {
			return 0, newError(ErrInvalidTimeToken,
				"Invalid time '%s'. Expected a time like 8, 8.5, 8:30, 8a or 8pm.", raw)
		}
		if rawMinutes > 59 {
			return 0, newError(ErrInvalidMinutes,
				"Invalid minutes '%d' in time '%s'. Minutes must be 0-59.", int(rawMinutes), t)
		}
		minutes = round(rawMinutes/60, 3)
	}

	switch {
	case am && math.Trunc(hours) == 12:
		hours -= 12
	case pm && math.Trunc(hours) != 12:
		hours += 12
	}

	return hours + minutes, nil
}

// IsExplicit reports whether a time token pins down AM/PM on its own.
func IsExplicit(token string) bool {
	return explicitPattern.MatchString(strings.TrimSpace(token))
}
