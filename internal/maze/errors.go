package maze

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned for tile queries and mutations outside the grid.
	ErrOutOfBounds = errors.New("maze: coordinate out of bounds")

	// ErrInvalidLevel is returned when a level definition breaks a placement rule.
	ErrInvalidLevel = errors.New("maze: invalid level")

	// ErrOccupied is returned when a player wall cannot be placed on a tile.
	ErrOccupied = errors.New("maze: tile occupied")
)

// OutOfBoundsError carries the offending coordinate and grid size.
type OutOfBoundsError struct {
	Coord  Coord
	Width  int
	Height int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("maze: coordinate %s out of bounds for %dx%d grid", e.Coord, e.Width, e.Height)
}

// Is makes errors.Is(err, ErrOutOfBounds) hold.
func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}

func invalidLevel(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidLevel, fmt.Sprintf(format, args...))
}
