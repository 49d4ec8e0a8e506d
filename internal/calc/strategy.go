package calc

import (
	"fmt"
	"strings"
)

// Mode selects how cross-identifier chronology is inferred.
type Mode int

const (
	// ModeUnordered trusts only the order of intervals within one identifier.
	ModeUnordered Mode = iota
	// ModeOrdered assumes input lines are listed in time-of-day order.
	ModeOrdered
)

func (m Mode) String() string {
	if m == ModeOrdered {
		return "ordered"
	}
	return "unordered"
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMode parses "ordered" or "unordered" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ordered":
		return ModeOrdered, nil
	case "unordered":
		return ModeUnordered, nil
	default:
		return ModeUnordered, fmt.Errorf("invalid mode %q: must be 'ordered' or 'unordered'", s)
	}
}

// Strategy resolves AM/PM ambiguity across identifiers. It returns a new
// slice and leaves its input untouched.
type Strategy func(entries []Entry) []Entry

// Strategy returns the resolution strategy for the mode.
func (m Mode) Strategy() Strategy {
	if m == ModeOrdered {
		return ResolveOrdered
	}
	return ResolveUnordered
}

// ResolveUnordered leaves every interval as written. Cross-identifier order
// falls out of normalization alone.
func ResolveUnordered(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = e.clone()
	}
	return out
}

// ResolveOrdered infers a PM offset for identifiers listed after one that
// started later. Once any earlier identifier's first start is larger than the
// current one's, every following identifier's first start moves 12 hours
// later, unless its first token was explicit.
func ResolveOrdered(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	afternoon := false
	latest := 0.0

	for i, e := range entries {
		e = e.clone()
		out[i] = e
		if len(e.Intervals) == 0 {
			continue
		}

		first := e.Intervals[0].Start
		if i > 0 && latest > first {
			afternoon = true
		}
		if i == 0 || first > latest {
			latest = first
		}

		if afternoon && !e.Explicit {
			e.Intervals[0].Start += 12
		}
	}
	return out
}
