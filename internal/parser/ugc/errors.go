package ugc

import (
	"errors"
	"fmt"
)

// ErrChildNotImplemented is returned for child records, whose layout is
// not decoded yet.
var ErrChildNotImplemented = errors.New("ugc: child note records are not implemented")

// LineError locates a decode failure. Line is 1-based.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
