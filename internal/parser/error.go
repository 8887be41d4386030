package parser

import (
	"github.com/cwbudde/swinglibrary-go/errs"
	"github.com/cwbudde/swinglibrary-go/internal/token"
)

// structuredError is the builder the grammar functions use internally;
// it is converted to the public errs.LocatorParseError at the parser's
// exported boundary (see Parse in parser.go). Keeping the builder
// separate from the public type lets every sub-grammar attach an
// "expected" description without constructing format strings inline.
type structuredError struct {
	pos      token.Position
	expected string
}

func newError(pos token.Position, expected string) *structuredError {
	return &structuredError{pos: pos, expected: expected}
}

func (e *structuredError) Error() string {
	return "expected " + e.expected + " at " + e.pos.String()
}

// toLocatorParseError renders a structuredError against the original
// input, producing the byte offset the public API contract requires.
func toLocatorParseError(input string, e *structuredError) *errs.LocatorParseError {
	return &errs.LocatorParseError{
		Input:    input,
		Offset:   e.pos.Offset,
		Expected: e.expected,
	}
}
