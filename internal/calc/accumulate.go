package calc

import "math"

// Break is an idle gap in the merged timeline. Start and End are 24-hour
// "H:MM" strings and Duration is a decimal hour string such as "1.0".
type Break struct {
	Start    string  `json:"start"`
	End      string  `json:"end"`
	Duration string  `json:"duration"`
	Hours    float64 `json:"hours"`
}

// Slot is one interval charged to an identifier, in timeline order.
type Slot struct {
	ID string
	Interval
}

// Ledger is the outcome of walking the merged timeline.
type Ledger struct {
	// Exact holds per-entry totals, indexed like the accumulated entries.
	Exact    []float64
	Breaks   []Break
	Timeline []Slot
	// LastEnd is the latest end time across all entries.
	LastEnd float64
}

// Accumulate merges all entries' normalized intervals into one timeline,
// summing each entry's duration and recording gaps as breaks. Intervals from
// different entries that overlap fail with ErrDoubleCharged.
func Accumulate(entries []Entry) (Ledger, error) {
	ledger := Ledger{Exact: make([]float64, len(entries))}

	queues := make([][]Interval, len(entries))
	remaining := 0
	for i, e := range entries {
		queues[i] = e.Intervals
		remaining += len(e.Intervals)
		if n := len(e.Intervals); n > 0 && e.Intervals[n-1].End > ledger.LastEnd {
			ledger.LastEnd = e.Intervals[n-1].End
		}
	}

	var prevEnd float64
	hasPrev := false
	for ; remaining > 0; remaining-- {
		next := nextCharge(queues)
		t := queues[next][0]
		queues[next] = queues[next][1:]

		if hasPrev && t.Start < prevEnd {
			return Ledger{}, newError(ErrDoubleCharged,
				"Double charging or invalid range: %s-%s. "+
					"Ensure lines starting with a PM time are written in 24 hour format.",
				FormatClock(t.Start), FormatClock(prevEnd))
		}
		if hasPrev && t.Start > prevEnd {
			hours := round(t.Start-prevEnd, 2)
			ledger.Breaks = append(ledger.Breaks, Break{
				Start:    FormatClock(round(prevEnd, 3)),
				End:      FormatClock(round(t.Start, 3)),
				Duration: FormatHours(hours),
				Hours:    hours,
			})
		}

		ledger.Exact[next] += round(math.Abs(t.End-t.Start), 3)
		ledger.Timeline = append(ledger.Timeline, Slot{ID: entries[next].ID, Interval: t})
		prevEnd = t.End
		hasPrev = true
	}
	return ledger, nil
}

// nextCharge returns the index of the queue whose head starts earliest. On a
// tie the queue visited last wins.
func nextCharge(queues [][]Interval) int {
	best := -1
	for i, q := range queues {
		if len(q) == 0 {
			continue
		}
		if best < 0 || q[0].Start <= queues[best][0].Start {
			best = i
		}
	}
	return best
}
