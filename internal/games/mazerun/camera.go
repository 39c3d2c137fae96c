package mazerun

import (
	"math"

	"github.com/vovakirdan/tui-maze/internal/maze"
)

// Camera is the player's view: a unit facing vector and a camera plane
// perpendicular to it whose length sets the field of view.
type Camera struct {
	Facing maze.Vec
	Plane  maze.Vec
}

// NewCamera returns the starting camera, looking south (+Y) with the
// camera's right pointing west.
func NewCamera(planeLength float64) Camera {
	return Camera{
		Facing: maze.V(0, 1),
		Plane:  maze.V(-planeLength, 0),
	}
}

// Turn rotates the camera. Positive angles turn towards the camera's right.
func (c Camera) Turn(angle float64) Camera {
	return Camera{
		Facing: c.Facing.Rotate(angle),
		Plane:  c.Plane.Rotate(angle),
	}
}

// WithPlaneLength keeps the plane's direction and changes its length.
func (c Camera) WithPlaneLength(length float64) Camera {
	c.Plane = c.Right().Scale(length)
	return c
}

// Right returns the unit vector pointing to the camera's right.
func (c Camera) Right() maze.Vec {
	l := math.Sqrt(c.Plane.LenSquared())
	if l == 0 {
		// Facing rotated a quarter turn to the right.
		return maze.V(-c.Facing.Y, c.Facing.X)
	}
	return c.Plane.Scale(1 / l)
}

// Ahead returns the tile offset the camera mostly faces, one of the four
// cardinal neighbours.
func (c Camera) Ahead() (dx, dy int) {
	if math.Abs(c.Facing.X) >= math.Abs(c.Facing.Y) {
		if c.Facing.X < 0 {
			return -1, 0
		}
		return 1, 0
	}
	if c.Facing.Y < 0 {
		return 0, -1
	}
	return 0, 1
}

// Bearing returns the angle of target relative to the facing direction,
// in radians in (-pi, pi]. Positive bearings lie to the camera's right.
func (c Camera) Bearing(from, target maze.Vec) float64 {
	d := target.Sub(from)
	right := c.Right()
	return math.Atan2(d.X*right.X+d.Y*right.Y, d.X*c.Facing.X+d.Y*c.Facing.Y)
}

var compassArrows = []rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}

// Arrow turns a bearing into one of eight arrow glyphs.
func Arrow(bearing float64) rune {
	i := int(math.Round(bearing/(math.Pi/4))) % 8
	if i < 0 {
		i += 8
	}
	return compassArrows[i]
}
