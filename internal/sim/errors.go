package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFrameSource is returned by Run when no frame channel is supplied.
	ErrNoFrameSource = errors.New("sim: no frame source")

	// ErrInvalidTimeScale indicates a zero, negative or non-finite time scale.
	ErrInvalidTimeScale = errors.New("sim: time scale must be finite and positive")
)

// FrameError wraps a renderer failure with the frame it happened on.
type FrameError struct {
	Frame   int
	Time    float64
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d (t=%.3fs): %v", e.Frame, e.Time, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
