package reader

import (
	"fmt"

	"github.com/simon-lentz/xjs/location"
)

// SyntaxError is returned by every Cursor method that can fail: an
// unexpected character, an unterminated quote, an unterminated comment, or
// running past the end of input when more input was required. It always
// carries the span at which the problem was detected.
type SyntaxError struct {
	Span    location.Span
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Span.Start, e.Message)
}

func (c *Cursor) errorf(start location.Position, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Span:    location.Span{Source: c.source, Start: start, End: c.Position()},
		Message: fmt.Sprintf(format, args...),
	}
}
