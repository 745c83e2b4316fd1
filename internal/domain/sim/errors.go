package sim

import (
	"errors"
	"fmt"

	"gridclash/internal/domain/grid"
)

var (
	ErrInsufficientDimensions = errors.New("insufficient grid dimensions")
	ErrOutOfBounds            = errors.New("position out of bounds")
	ErrPositionNonempty       = errors.New("position not empty")
	ErrPositionEmpty          = errors.New("position empty")
)

type DimensionsError struct {
	MinWidth  int
	MinHeight int
	Width     int
	Height    int
}

func (e *DimensionsError) Error() string {
	return fmt.Sprintf("%s: got %dx%d, need at least %dx%d",
		ErrInsufficientDimensions, e.Width, e.Height, e.MinWidth, e.MinHeight)
}

func (e *DimensionsError) Unwrap() error {
	return ErrInsufficientDimensions
}

type OutOfBoundsError struct {
	Width  int
	Height int
	Pos    grid.Position
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("%s: %v on a %dx%d grid", ErrOutOfBounds, e.Pos, e.Width, e.Height)
}

func (e *OutOfBoundsError) Unwrap() error {
	return ErrOutOfBounds
}

// PositionError reports an occupancy precondition failure. Err is
// ErrPositionNonempty or ErrPositionEmpty.
type PositionError struct {
	Pos grid.Position
	Err error
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Err, e.Pos)
}

func (e *PositionError) Unwrap() error {
	return e.Err
}
