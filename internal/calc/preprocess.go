package calc

import (
	"math"
	"strconv"
	"strings"
)

// commentMarkers are applied in order, each to what is left of the line.
var commentMarkers = []string{"#", "//", "<"}

// StripComment removes an inline comment and surrounding whitespace from line.
func StripComment(line string) string {
	for _, marker := range commentMarkers {
		if i := strings.Index(line, marker); i >= 0 {
			line = line[:i]
		}
	}
	return strings.TrimSpace(line)
}

// splitLines expands escaped "\n" sequences and splits text into trimmed,
// non-empty lines.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, `\n`, "\n")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// parseDirective reports whether line is a target-hours directive and, if so,
// the value it carries. ok is false for a directive whose value is not a
// finite number.
func parseDirective(line string) (target float64, ok bool, isDirective bool) {
	var raw string
	switch {
	case strings.HasPrefix(line, `\==`):
		raw = line[3:]
	case strings.HasPrefix(line, `\=`):
		raw = line[2:]
	default:
		return 0, false, false
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, true
	}
	return v, true, true
}

// preprocess strips comments, pulls out the target directive (last one wins)
// and returns the remaining entry lines.
func preprocess(text string) (lines []string, target float64, hasTarget bool) {
	for _, line := range splitLines(text) {
		line = StripComment(line)
		if line == "" {
			continue
		}
		if v, ok, isDirective := parseDirective(line); isDirective {
			if ok {
				target, hasTarget = v, true
			}
			continue
		}
		lines = append(lines, line)
	}
	return lines, target, hasTarget
}
