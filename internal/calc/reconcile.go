package calc

import (
	"cmp"
	"math"
	"slices"
)

type residual struct {
	index int
	exact float64
	diff  float64
}

// Reconcile rounds each exact total to a tenth so that the rounded values
// add up to the exact grand total rounded to a tenth.
//
// Codes whose own rounding went the wrong way absorb the discrepancy, one
// tenth at a time, largest residual first and, among equal residuals, the
// code with more time worked first.
func Reconcile(exact []float64) []float64 {
	display := make([]float64, len(exact))

	grand, roundedSum := 0.0, 0.0
	candidates := make([]*residual, len(exact))
	for i, v := range exact {
		grand += v
		display[i] = round(v, 1)
		roundedSum += display[i]
		candidates[i] = &residual{index: i, exact: v, diff: round(v-round(v, 1), 4)}
	}

	slices.SortStableFunc(candidates, func(a, b *residual) int {
		return cmp.Compare(b.exact, a.exact)
	})

	diff := round(round(grand, 1)-roundedSum, 4)
	for pass := 0; math.Abs(diff) >= 0.1 && pass < 2*len(exact); pass++ {
		slices.SortStableFunc(candidates, func(a, b *residual) int {
			return cmp.Compare(math.Abs(b.diff), math.Abs(a.diff))
		})

		c := pickCandidate(candidates, diff)
		if c == nil {
			break
		}
		if diff > 0 {
			display[c.index] = round(display[c.index]+0.1, 1)
			diff = round(diff-0.1, 4)
		} else {
			display[c.index] = round(display[c.index]-0.1, 1)
			diff = round(diff+0.1, 4)
		}
		c.diff = 0
	}
	return display
}

// pickCandidate returns the first candidate rounded away from the direction
// of the outstanding discrepancy, or nil when none is left.
func pickCandidate(candidates []*residual, diff float64) *residual {
	for _, c := range candidates {
		if (diff > 0 && c.diff > 0) || (diff < 0 && c.diff < 0) {
			return c
		}
	}
	return nil
}
