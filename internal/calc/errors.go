package calc

import (
	"errors"
	"fmt"
)

// Kinds of calculation failures. Every error returned by Process wraps one of
// these, so callers can use errors.Is to tell them apart.
var (
	ErrMalformedLine    = errors.New("malformed line")
	ErrMalformedRange   = errors.New("malformed range")
	ErrInvalidTimeToken = errors.New("invalid time token")
	ErrInvalidMinutes   = errors.New("invalid minutes")
	ErrSpanExceedsDay   = errors.New("span exceeds day")
	ErrCrossesMidnight  = errors.New("crosses midnight")
	ErrOverlapsPrevious = errors.New("overlaps previous interval")
	ErrDoubleCharged    = errors.New("double charged")
)

var kindNames = map[error]string{
	ErrMalformedLine:    "malformed_line",
	ErrMalformedRange:   "malformed_range",
	ErrInvalidTimeToken: "invalid_time_token",
	ErrInvalidMinutes:   "invalid_minutes",
	ErrSpanExceedsDay:   "span_exceeds_day",
	ErrCrossesMidnight:  "crosses_midnight",
	ErrOverlapsPrevious: "overlaps_previous",
	ErrDoubleCharged:    "double_charged",
}

// Error is a terminal calculation failure. Msg is shown to the user as is.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindName returns a stable snake_case name for the kind of a calculation
// error, or "" when err is not one.
func KindName(err error) string {
	var ce *Error
	if !errors.As(err, &ce) {
		return ""
	}
	return kindNames[ce.Kind]
}
