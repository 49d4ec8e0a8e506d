package calc

import (
	"regexp"
	"strings"
)

// boundaryPattern finds where the identifier ends: the first whitespace run
// followed by a digit-led time token and a dash. The group marks the start of
// the ranges.
var boundaryPattern = regexp.MustCompile(`\s+(\d[\d.:]*(?i:am?|pm?)?-)`)

// Interval is a span of the day in decimal hours.
type Interval struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Entry is one charge code with its intervals in input order.
type Entry struct {
	ID        string
	Intervals []Interval
	// Explicit is set when the code's first time token carried a meridiem
	// suffix or a leading-zero hour.
	Explicit bool
}

func (e Entry) clone() Entry {
	e.Intervals = append([]Interval(nil), e.Intervals...)
	return e
}

// splitLine separates a line into its identifier and the raw ranges text.
func splitLine(line string) (id, ranges string, ok bool) {
	loc := boundaryPattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return "", "", false
	}
	return strings.TrimSpace(line[:loc[0]]), line[loc[2]:], true
}

// parseRanges turns "8-9, 10:30-12" into intervals. explicit reports whether
// the first start token is unambiguous about AM/PM.
func parseRanges(ranges string) (intervals []Interval, explicit bool, err error) {
	for i, token := range strings.Split(ranges, ",") {
		token = strings.TrimSuffix(strings.TrimSpace(token), ",")

		parts := strings.Split(token, "-")
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
			return nil, false, newError(ErrMalformedRange,
				"Invalid time range '%s'. Expected format: start-end (e.g. 8-5, 8:30-12).", token)
		}

		start, err := ParseTime(parts[0])
		if err != nil {
			return nil, false, err
		}
		end, err := ParseTime(parts[1])
		if err != nil {
			return nil, false, err
		}

		if i == 0 {
			explicit = IsExplicit(parts[0])
		}
		intervals = append(intervals, Interval{Start: start, End: end})
	}
	return intervals, explicit, nil
}

// parseEntries builds entries in first-seen order. Lines sharing an
// identifier are merged. detected lists identifiers containing spaces.
func parseEntries(lines []string) (entries []Entry, detected []string, err error) {
	index := make(map[string]int)
	seenDetected := make(map[string]bool)

	for _, line := range lines {
		line = strings.TrimRight(line, ",")

		id, ranges, ok := splitLine(line)
		if !ok {
			return nil, nil, newError(ErrMalformedLine, "Invalid line (missing time ranges): '%s'", line)
		}
		if strings.Contains(id, " ") && !seenDetected[id] {
			seenDetected[id] = true
			detected = append(detected, id)
		}

		intervals, explicit, err := parseRanges(ranges)
		if err != nil {
			return nil, nil, err
		}

		if i, ok := index[id]; ok {
			entries[i].Intervals = append(entries[i].Intervals, intervals...)
			continue
		}
		index[id] = len(entries)
		entries = append(entries, Entry{ID: id, Intervals: intervals, Explicit: explicit})
	}
	return entries, detected, nil
}

// ValidateLine checks that a single input line would parse. Blank lines,
// comments and target directives are valid.
func ValidateLine(line string) error {
	lines, _, _ := preprocess(line)
	_, _, err := parseEntries(lines)
	return err
}
