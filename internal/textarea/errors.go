package textarea

import (
	"errors"
	"fmt"
)

// ErrPreeditRange indicates a host supplied a preedit range outside its text.
var ErrPreeditRange = errors.New("preedit range out of bounds")

// RangeError describes a malformed preedit range. Start and End are the
// values the host sent; Len is the preedit length in code points.
type RangeError struct {
	Text       string
	Start, End int
	Len        int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("preedit %q: range [%d, %d) invalid for length %d", e.Text, e.Start, e.End, e.Len)
}

// Unwrap returns ErrPreeditRange.
func (e *RangeError) Unwrap() error {
	return ErrPreeditRange
}
