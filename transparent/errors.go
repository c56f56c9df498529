package transparent

import (
	"errors"
	"fmt"
)

// ErrInvalidThreshold is returned for a threshold outside [0, 255].
var ErrInvalidThreshold = errors.New("threshold must be within [0, 255]")

// DecodeError reports a source file that could not be parsed as an image.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IOError reports a filesystem failure. Op is "open", "write" or "mkdir";
// Path is the source for "open" and the destination otherwise.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
