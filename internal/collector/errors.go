package collector

import (
	"errors"
	"fmt"
)

// ErrInvariantViolation marks a parser that reported success without a record.
// It ends the ingestion pass; it is never skipped like a bad line.
var ErrInvariantViolation = errors.New("invariant violation")

// ResourceError reports a line source that could not be opened, read or closed.
type ResourceError struct {
	Op   string
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }
