package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// round rounds x to the given number of decimal places, half to even on the
// exact binary value. strconv does the decimal conversion exactly, so the
// result never drifts the way math.Round(x*10)/10 does.
func round(x float64, places int) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', places, 64), 64)
	if err != nil {
		return x
	}
	return v
}

// Round rounds x to one decimal place the same way the totals are rounded.
func Round(x float64) float64 {
	return round(x, 1)
}

func splitClock(hours float64) (int, int) {
	h := int(math.Floor(hours))
	m := int(math.RoundToEven(math.Mod(hours, 1) * 60))
	if m == 60 {
		h++
		m = 0
	}
	return h, m
}

// FormatClock formats decimal hours as a 24-hour "H:MM" string.
// 13.5 becomes "13:30".
func FormatClock(hours float64) string {
	h, m := splitClock(hours)
	return fmt.Sprintf("%d:%02d", h, m)
}

// Format12h formats decimal hours as "H:MMam" or "H:MMpm".
// 13.567 becomes "1:34pm".
func Format12h(hours float64) string {
	h, m := splitClock(hours)
	h = ((h % 24) + 24) % 24
	switch {
	case h > 12:
		return fmt.Sprintf("%d:%02dpm", h-12, m)
	case h == 12:
		return fmt.Sprintf("12:%02dpm", m)
	case h == 0:
		return fmt.Sprintf("12:%02dam", m)
	default:
		return fmt.Sprintf("%d:%02dam", h, m)
	}
}

// FormatHours renders a decimal hour value in its shortest form while always
// keeping a fractional digit: 1 -> "1.0", 0.57 -> "0.57".
func FormatHours(hours float64) string {
	s := strconv.FormatFloat(hours, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
