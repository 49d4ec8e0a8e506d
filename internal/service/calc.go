package service

import (
	"context"
	"log/slog"
	"slices"

	"github.com/xolan/hrs/internal/calc"
	"github.com/xolan/hrs/internal/config"
	"golang.org/x/sync/errgroup"
)

// CalcService runs the calculation engine with the configured defaults.
type CalcService struct {
	config func() config.Config
}

// NewCalcService creates a new CalcService with a fixed configuration.
func NewCalcService(cfg config.Config) *CalcService {
	return &CalcService{config: func() config.Config { return cfg }}
}

func (s *CalcService) options(target float64) []calc.Option {
	if target > 0 {
		return []calc.Option{calc.WithDefaultTarget(target)}
	}
	if t := s.config().TargetHours; t > 0 {
		return []calc.Option{calc.WithDefaultTarget(t)}
	}
	return nil
}

// Calculate processes text with a single mode.
func (s *CalcService) Calculate(ctx context.Context, text string, mode calc.Mode) (*calc.Result, error) {
	return s.CalculateWithTarget(ctx, text, mode, 0)
}

// CalculateWithTarget is Calculate with a default target that overrides the
// configured one. A zero target keeps the configured default.
func (s *CalcService) CalculateWithTarget(ctx context.Context, text string, mode calc.Mode, target float64) (*calc.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := calc.Process(text, mode, s.options(target)...)
	if err != nil {
		slog.Debug("calculation failed", "mode", mode, "kind", calc.KindName(err), "error", err)
		return nil, err
	}
	slog.Debug("calculation done", "mode", mode, "total", result.Total, "codes", len(result.Totals), "breaks", len(result.Breaks))
	return result, nil
}

// Compare runs both modes concurrently on the same input. Failures of a mode
// are recorded in its Outcome; the returned error is only set when ctx is
// done.
func (s *CalcService) Compare(ctx context.Context, text string) (Comparison, error) {
	return s.CompareWithTarget(ctx, text, 0)
}

// CompareWithTarget is Compare with a default target, see CalculateWithTarget.
func (s *CalcService) CompareWithTarget(ctx context.Context, text string, target float64) (Comparison, error) {
	cmp := Comparison{
		Ordered:   Outcome{Mode: calc.ModeOrdered},
		Unordered: Outcome{Mode: calc.ModeUnordered},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, out := range []*Outcome{&cmp.Ordered, &cmp.Unordered} {
		g.Go(func() error {
			out.Result, out.Err = s.CalculateWithTarget(gctx, text, out.Mode, target)
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return Comparison{}, err
	}

	compareOutcomes(&cmp)
	return cmp, nil
}

func compareOutcomes(c *Comparison) {
	o, u := c.Ordered, c.Unordered
	switch {
	case o.OK() != u.OK():
		c.Differ = true
	case o.OK():
		c.DisagreeingIDs = disagreeingIDs(o.Result, u.Result)
		c.Differ = !o.Result.Equivalent(u.Result)
	}

	if c.Differ {
		slog.Info("modes disagree",
			"ordered_ok", o.OK(), "unordered_ok", u.OK(), "ids", c.DisagreeingIDs)
	}
	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		logComparison(c)
	}
}

// disagreeingIDs returns identifiers whose hours differ, in first-seen order.
func disagreeingIDs(a, b *calc.Result) []string {
	var ids []string
	for _, t := range a.Totals {
		if h, ok := b.Hours(t.ID); !ok || h != t.Hours {
			ids = append(ids, t.ID)
		}
	}
	for _, t := range b.Totals {
		if _, ok := a.Hours(t.ID); !ok && !slices.Contains(ids, t.ID) {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// logComparison writes one debug record per identifier with both modes'
// hours side by side.
func logComparison(c *Comparison) {
	hours := func(o Outcome, id string) any {
		if !o.OK() {
			return "ERR"
		}
		if h, ok := o.Result.Hours(id); ok {
			return h
		}
		return "n/a"
	}

	var ids []string
	for _, o := range []Outcome{c.Ordered, c.Unordered} {
		if !o.OK() {
			continue
		}
		for _, t := range o.Result.Totals {
			if !slices.Contains(ids, t.ID) {
				ids = append(ids, t.ID)
			}
		}
	}

	for _, id := range ids {
		slog.Debug("mode comparison",
			"id", id,
			"ordered", hours(c.Ordered, id),
			"unordered", hours(c.Unordered, id),
			"differs", slices.Contains(c.DisagreeingIDs, id))
	}
	for _, o := range []Outcome{c.Ordered, c.Unordered} {
		if o.Err != nil {
			slog.Debug("mode comparison", "mode", o.Mode, "error", o.Err)
		}
	}
}
