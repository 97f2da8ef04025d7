package syntax

import (
	"errors"
	"fmt"
)

// ErrParse indicates the source is not syntactically valid Java.
var ErrParse = errors.New("java parse error")

// ParseError reports the first syntax error found in a source file.
type ParseError struct {
	Line   int
	Column int
	Detail string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%v: %s", ErrParse, e.Detail)
	}
	return fmt.Sprintf("%v at %d:%d: %s", ErrParse, e.Line, e.Column, e.Detail)
}

func (e *ParseError) Unwrap() error { return ErrParse }
