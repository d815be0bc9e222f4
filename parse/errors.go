package parse

import (
	"fmt"

	"github.com/flatkit/flatkit/format"
)

// ParseError reports malformed input text.
type ParseError struct {
	Format format.Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
