// Package maze holds the level model and simulation rules for the maze game:
// the tile grid, player and monster state, axis-sliding movement and the
// breadth-first pathfinder. It has no rendering or terminal dependencies.
package maze

import (
	"fmt"
	"math"
)

// Coord is an integer tile address. X grows to the east, Y grows to the south.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Step returns the neighbouring tile in the given direction.
func (c Coord) Step(d Dir) Coord {
	dx, dy := d.Delta()
	return c.Add(dx, dy)
}

// Center returns the continuous position of the middle of the tile.
func (c Coord) Center() Vec {
	return Vec{X: float64(c.X) + 0.5, Y: float64(c.Y) + 0.5}
}

// Manhattan returns the Manhattan distance to another coordinate.
func (c Coord) Manhattan(other Coord) int {
	dx := c.X - other.X
	dy := c.Y - other.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Dir is one of the four orthogonal neighbour directions.
type Dir uint8

const (
	DirNorth Dir = iota
	DirSouth
	DirEast
	DirWest
)

// NeighbourOrder is the fixed visit order used by every grid search.
// Keeping it fixed makes monster steps reproducible.
var NeighbourOrder = [4]Dir{DirNorth, DirSouth, DirEast, DirWest}

// Delta returns the (dx, dy) offset for one step in this direction.
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirNorth:
		return 0, -1
	case DirSouth:
		return 0, 1
	case DirEast:
		return 1, 0
	case DirWest:
		return -1, 0
	default:
		return 0, 0
	}
}

func (d Dir) String() string {
	switch d {
	case DirNorth:
		return "north"
	case DirSouth:
		return "south"
	case DirEast:
		return "east"
	case DirWest:
		return "west"
	default:
		return "unknown"
	}
}

// Vec is a continuous 2D vector: a position, a facing direction or a camera plane.
type Vec struct {
	X float64
	Y float64
}

// V is a convenience constructor for Vec.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec) Scale(s float64) Vec {
	return Vec{X: v.X * s, Y: v.Y * s}
}

// LenSquared returns the squared length of v.
func (v Vec) LenSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Rotate returns v rotated by the given angle in radians.
func (v Vec) Rotate(angle float64) Vec {
	sin, cos := math.Sincos(angle)
	return Vec{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Floor returns the tile containing the position.
func (v Vec) Floor() Coord {
	return Coord{X: int(math.Floor(v.X)), Y: int(math.Floor(v.Y))}
}

// DistanceSquared returns the squared Euclidean distance between two positions.
func DistanceSquared(a, b Vec) float64 {
	return a.Sub(b).LenSquared()
}

func (v Vec) String() string {
	return fmt.Sprintf("(%.2f,%.2f)", v.X, v.Y)
}
