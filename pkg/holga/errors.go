package holga

import (
	"errors"
	"fmt"
)

var (
	// ErrRollFull is returned when appending to a roll that has no exposures left.
	ErrRollFull = errors.New("roll is full")
	// ErrNotReady is returned when asking for developed frames before the roll is ready.
	ErrNotReady = errors.New("roll is not ready")
	// ErrDecode matches any *DecodeError.
	ErrDecode = errors.New("decode failure")
)

// DecodeError means a frame could not be decoded into a processable image.
type DecodeError struct {
	Path  string
	Index int
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("decode frame %d (%s): %v", e.Index, e.Path, e.Err)
	}
	return fmt.Sprintf("decode frame %d: %v", e.Index, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is reports ErrDecode as a match.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}
