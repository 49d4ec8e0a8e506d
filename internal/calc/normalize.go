package calc

// Normalize converts each entry's intervals to increasing 24-hour bounds.
//
// Intervals are read in order. As soon as one starts before the previous one
// ended, or ends before it starts, the rest of that entry is taken to be in
// the afternoon and bounds at or below noon move 12 hours later.
func Normalize(entries []Entry) ([]Entry, error) {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		intervals, err := normalizeIntervals(e.ID, e.Intervals)
		if err != nil {
			return nil, err
		}
		e.Intervals = intervals
		out[i] = e
	}
	return out, nil
}

func normalizeIntervals(id string, intervals []Interval) ([]Interval, error) {
	out := make([]Interval, 0, len(intervals))
	afternoon := false

	for _, t := range intervals {
		switch {
		case len(out) > 0 && t.Start < out[len(out)-1].End:
			afternoon = true
		case t.End < t.Start:
			afternoon = true
		}

		n := t
		if afternoon {
			if t.End < t.Start && t.End <= 12 {
				n.End = t.End + 12
			} else {
				if t.Start < 12 {
					n.Start = t.Start + 12
				}
				if t.End <= 12 {
					n.End = t.End + 12
				}
			}
		}

		if n.Start > 24 || n.End > 24 {
			return nil, newError(ErrSpanExceedsDay,
				"Interval for '%s' exceeds 24 hours after conversion. "+
					"Hours can only be calculated within a single day.", id)
		}
		if n.End < n.Start {
			return nil, newError(ErrCrossesMidnight,
				"Interval for '%s' spans past midnight after conversion (%s-%s next day). "+
					"Hours can only be calculated within a single day.",
				id, FormatClock(n.Start), FormatClock(n.End))
		}
		if len(out) > 0 && n.Start < out[len(out)-1].End {
			prev := out[len(out)-1]
			return nil, newError(ErrOverlapsPrevious,
				"Interval for '%s' overlaps a previous interval after conversion "+
					"(%s-%s starts before %s-%s ends). "+
					"Time entries may cross midnight; hours can only be calculated within a single day.",
				id, FormatClock(n.Start), FormatClock(n.End), FormatClock(prev.Start), FormatClock(prev.End))
		}
		out = append(out, n)
	}
	return out, nil
}
