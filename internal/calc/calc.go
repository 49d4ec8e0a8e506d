// Package calc turns free-text charge-code time logs into per-code hour
// totals, breaks and a target completion time.
//
// A log has one charge code per line followed by comma-separated ranges:
//
//	oh 8-8:30, 12-1
//	c 8:30-12, 1-5p   # inline comments are ignored
//	\=8.5             # target hours
//
// Times without a meridiem are ambiguous. Process resolves them with one of
// two strategies, see Mode.
package calc

import "slices"

// ChargeTotal is the hours charged to one identifier.
type ChargeTotal struct {
	ID string `json:"id"`
	// Hours is the reconciled value rounded to a tenth.
	Hours float64 `json:"hours"`
	// Exact is the unrounded sum of the identifier's intervals.
	Exact float64 `json:"exact"`
}

// Metadata carries caller-facing extras of a calculation.
type Metadata struct {
	TargetTime       string `json:"target_time,omitempty"`
	TargetAchievedAt string `json:"target_achieved_at,omitempty"`
	// DetectedIDs lists identifiers containing spaces. They are valid but
	// often a sign of a missing time range.
	DetectedIDs []string `json:"detected_ids"`
}

// Result is the outcome of one calculation.
type Result struct {
	Mode        Mode          `json:"mode"`
	Totals      []ChargeTotal `json:"totals"`
	Total       float64       `json:"total"`
	ExactTotal  float64       `json:"exact_total"`
	Breaks      []Break       `json:"breaks"`
	LastEnd     float64       `json:"last_end"`
	TargetHours float64       `json:"target_hours,omitempty"`
	Metadata    Metadata      `json:"metadata"`
}

// Hours returns the reconciled hours for id.
func (r *Result) Hours(id string) (float64, bool) {
	for _, t := range r.Totals {
		if t.ID == id {
			return t.Hours, true
		}
	}
	return 0, false
}

// Equivalent reports whether two results show the same totals and breaks.
func (r *Result) Equivalent(o *Result) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.Total != o.Total || len(r.Totals) != len(o.Totals) {
		return false
	}
	for _, t := range r.Totals {
		h, ok := o.Hours(t.ID)
		if !ok || h != t.Hours {
			return false
		}
	}
	return slices.EqualFunc(r.Breaks, o.Breaks, func(a, b Break) bool {
		return a.Start == b.Start && a.End == b.End && a.Duration == b.Duration
	})
}

type options struct {
	defaultTarget float64
}

// Option configures Process.
type Option func(*options)

// WithDefaultTarget sets the target hours used when the input has no target
// directive.
func WithDefaultTarget(hours float64) Option {
	return func(o *options) {
		o.defaultTarget = hours
	}
}

// Process calculates hour totals for text using the given mode.
func Process(text string, mode Mode, opts ...Option) (*Result, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	lines, target, hasTarget := preprocess(text)
	if !hasTarget {
		target = o.defaultTarget
	}

	entries, detected, err := parseEntries(lines)
	if err != nil {
		return nil, err
	}

	entries, err = Normalize(mode.Strategy()(entries))
	if err != nil {
		return nil, err
	}

	ledger, err := Accumulate(entries)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Mode:        mode,
		Totals:      make([]ChargeTotal, len(entries)),
		Breaks:      ledger.Breaks,
		LastEnd:     ledger.LastEnd,
		TargetHours: target,
		Metadata:    Metadata{DetectedIDs: detected},
	}
	if result.Breaks == nil {
		result.Breaks = []Break{}
	}
	if result.Metadata.DetectedIDs == nil {
		result.Metadata.DetectedIDs = []string{}
	}

	display := Reconcile(ledger.Exact)
	total := 0.0
	for i, e := range entries {
		result.Totals[i] = ChargeTotal{ID: e.ID, Hours: display[i], Exact: ledger.Exact[i]}
		result.ExactTotal += ledger.Exact[i]
		total += display[i]
	}
	result.Total = round(total, 1)

	p := Project(target, result.ExactTotal, ledger.LastEnd)
	result.Metadata.TargetTime = p.TargetTime
	result.Metadata.TargetAchievedAt = p.AchievedAt

	return result, nil
}
