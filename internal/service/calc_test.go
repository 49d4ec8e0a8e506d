package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xolan/hrs/internal/calc"
	"github.com/xolan/hrs/internal/config"
)

func TestCalcService_Calculate(t *testing.T) {
	svc := NewCalcService(config.DefaultConfig())

	r, err := svc.Calculate(context.Background(), "oh 8-9\nc 9-12, 1-5", calc.ModeOrdered)
	require.NoError(t, err)
	assert.Equal(t, 8.0, r.Total)

	_, err = svc.Calculate(context.Background(), "oh lunch", calc.ModeOrdered)
	assert.ErrorIs(t, err, calc.ErrMalformedLine)
}

func TestCalcService_Targets(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.TargetHours = 4
	svc := NewCalcService(cfg)
	input := "id1 6-8\nid2 8-10\nid3 10-11:33"

	r, err := svc.Calculate(context.Background(), input, calc.ModeOrdered)
	require.NoError(t, err)
	assert.Equal(t, 4.0, r.TargetHours)
	assert.NotEmpty(t, r.Metadata.TargetAchievedAt)

	r, err = svc.CalculateWithTarget(context.Background(), input, calc.ModeOrdered, 5.6)
	require.NoError(t, err)
	assert.Equal(t, "11:34am", r.Metadata.TargetTime)
}

func TestCalcService_CanceledContext(t *testing.T) {
	svc := NewCalcService(config.DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Calculate(ctx, "oh 8-9", calc.ModeOrdered)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = svc.Compare(ctx, "oh 8-9")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalcService_Compare(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		orderedOK   bool
		unorderedOK bool
		differ      bool
		ids         []string
	}{
		{
			name:        "agree",
			input:       "oh 8-9\nc 9-12, 1-5",
			orderedOK:   true,
			unorderedOK: true,
		},
		{
			name:        "only unordered works",
			input:       "b 9-8\na 7-8",
			unorderedOK: true,
			differ:      true,
		},
		{
			name:      "only ordered works",
			input:     "a 7-12\nb 1-8",
			orderedOK: true,
			differ:    true,
		},
		{
			name:        "same totals, different breaks",
			input:       "a 8-10\nb 10-1, 2-6\nc 7-8",
			orderedOK:   true,
			unorderedOK: true,
			differ:      true,
		},
		{
			name:   "both fail",
			input:  "oh lunch",
			differ: false,
		},
	}

	svc := NewCalcService(config.DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmp, err := svc.Compare(context.Background(), tt.input)
			require.NoError(t, err)

			assert.Equal(t, calc.ModeOrdered, cmp.Ordered.Mode)
			assert.Equal(t, calc.ModeUnordered, cmp.Unordered.Mode)
			assert.Equal(t, tt.orderedOK, cmp.Ordered.OK())
			assert.Equal(t, tt.unorderedOK, cmp.Unordered.OK())
			assert.Equal(t, tt.differ, cmp.Differ)
			assert.Equal(t, tt.ids, cmp.DisagreeingIDs)
			assert.Equal(t, cmp.Ordered, cmp.Outcome(calc.ModeOrdered))
		})
	}
}

func TestDisagreeingIDs(t *testing.T) {
	a := &calc.Result{Totals: []calc.ChargeTotal{{ID: "x", Hours: 1}, {ID: "y", Hours: 2}}}
	b := &calc.Result{Totals: []calc.ChargeTotal{{ID: "y", Hours: 2.5}, {ID: "z", Hours: 1}}}

	assert.Equal(t, []string{"x", "y", "z"}, disagreeingIDs(a, b))
	assert.Nil(t, disagreeingIDs(a, a))
}

func TestOutcome_MarshalJSON(t *testing.T) {
	svc := NewCalcService(config.DefaultConfig())

	cmp, err := svc.Compare(context.Background(), "b 9-8\na 7-8")
	require.NoError(t, err)

	data, err := json.Marshal(cmp)
	require.NoError(t, err)

	var decoded struct {
		Ordered struct {
			Error string `json:"error"`
			Kind  string `json:"kind"`
		} `json:"ordered"`
		Unordered struct {
			Result struct {
				Total float64 `json:"total"`
				Mode  string  `json:"mode"`
			} `json:"result"`
		} `json:"unordered"`
		Differ bool `json:"differ"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "double_charged", decoded.Ordered.Kind)
	assert.Contains(t, decoded.Ordered.Error, "Double charging")
	assert.Equal(t, 12.0, decoded.Unordered.Result.Total)
	assert.Equal(t, "unordered", decoded.Unordered.Result.Mode)
	assert.True(t, decoded.Differ)
}

func TestComparison_ForMode(t *testing.T) {
	svc := NewCalcService(config.DefaultConfig())
	cmp, err := svc.Compare(context.Background(), "oh 8-9")
	require.NoError(t, err)

	tests := []struct {
		mode string
		keys []string
	}{
		{config.ModeOrdered, []string{"ordered"}},
		{config.ModeUnordered, []string{"unordered"}},
		{config.ModeBoth, []string{"differ", "ordered", "unordered"}},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			data, err := json.Marshal(cmp.ForMode(tt.mode))
			require.NoError(t, err)

			var decoded map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(data, &decoded))
			keys := make([]string, 0, len(decoded))
			for k := range decoded {
				keys = append(keys, k)
			}
			assert.ElementsMatch(t, tt.keys, keys)
		})
	}
}
