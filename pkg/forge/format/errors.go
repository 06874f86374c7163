package format

import (
	"errors"
	"fmt"
)

// ErrInvalidRule indicates a formatting rule that cannot be applied.
var ErrInvalidRule = errors.New("invalid formatting rule")

// InvalidStopOrderError reports a color scale whose stop values decrease.
type InvalidStopOrderError struct {
	Index    int
	Previous float64
	Value    float64
}

func (e *InvalidStopOrderError) Error() string {
	return fmt.Sprintf("color scale stop %d has value %g below previous stop %g", e.Index, e.Value, e.Previous)
}

func (e *InvalidStopOrderError) Unwrap() error {
	return ErrInvalidRule
}

// InvalidStopCountError reports a color scale with an unsupported number of stops.
type InvalidStopCountError struct {
	Count int
}

func (e *InvalidStopCountError) Error() string {
	return fmt.Sprintf("color scale needs 2 or 3 stops, got %d", e.Count)
}

func (e *InvalidStopCountError) Unwrap() error {
	return ErrInvalidRule
}
