package metadata

import "fmt"

// ParseError reports a structural violation of the metadata grammar.
// There is no partial result on failure: a truncated or corrupted file
// must not silently yield incomplete-but-plausible fields, so the
// caller's only recourse is to reject the input.
//
// Offset is a byte offset into the input. Line and Column are 1-based;
// Column counts bytes from the start of the line.
type ParseError struct {
	Offset   int
	Line     int
	Column   int
	Expected string // e.g. "field name", "field separator", "end of line"
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse metadata: %d:%d: expected %s", e.Line, e.Column, e.Expected)
}
