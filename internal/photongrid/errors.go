package photongrid

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds      = errors.New("position out of bounds")
	ErrOccupied         = errors.New("cell already occupied")
	ErrBlockedCell      = errors.New("cell is blocked")
	ErrInvalidComponent = errors.New("invalid component")
	ErrDuplicateID      = errors.New("duplicate component id")
	ErrMalformedLine    = errors.New("malformed line")
	ErrOutOfRange       = errors.New("coordinate out of grid bounds")
	ErrConservation     = errors.New("energy not conserved")
)

// PlacementError reports a rejected place operation. The grid is left unchanged.
type PlacementError struct {
	Pos  Point
	Kind Kind
	Err  error
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("cannot place %s at %s: %v", e.Kind, e.Pos, e.Err)
}

func (e *PlacementError) Unwrap() error { return e.Err }

// ConfigurationError reports a skipped line of a field file.
type ConfigurationError struct {
	File string
	Line int
	Text string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s:%d: %v: %q", e.File, e.Line, e.Err, e.Text)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }
