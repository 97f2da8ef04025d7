package scrub

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange indicates a computed removal range lies outside the text.
	ErrInvalidRange = errors.New("invalid removal range")

	// ErrDocCommentAnchorNotFound indicates a declaration's doc comment text
	// could not be located in the source preceding it.
	ErrDocCommentAnchorNotFound = errors.New("doc comment anchor not found")
)

// InvalidRangeError reports a removal range that does not fit the text.
type InvalidRangeError struct {
	Range   Range
	TextLen int
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("%v: %v in text of length %d", ErrInvalidRange, e.Range, e.TextLen)
}

func (e *InvalidRangeError) Unwrap() error { return ErrInvalidRange }

// DocCommentAnchorNotFoundError reports a doc comment whose text does not
// appear before the declaration it belongs to.
type DocCommentAnchorNotFoundError struct {
	Declaration string
	Offset      int
	Doc         string
	Pattern     string
}

func (e *DocCommentAnchorNotFoundError) Error() string {
	return fmt.Sprintf("%v: cannot find doc comment %q for %s at offset %d (pattern %s)",
		ErrDocCommentAnchorNotFound, e.Doc, e.Declaration, e.Offset, e.Pattern)
}

func (e *DocCommentAnchorNotFoundError) Unwrap() error { return ErrDocCommentAnchorNotFound }
