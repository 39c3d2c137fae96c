package mazerun

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-maze/internal/maze"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func vecAlmostEqual(a, b maze.Vec) bool {
	return almostEqual(a.X, b.X) && almostEqual(a.Y, b.Y)
}

func TestNewCameraFacesSouth(t *testing.T) {
	c := NewCamera(0.66)

	if c.Facing != maze.V(0, 1) {
		t.Errorf("Facing = %v, expected (0,1)", c.Facing)
	}
	if !vecAlmostEqual(c.Plane, maze.V(-0.66, 0)) {
		t.Errorf("Plane = %v, expected (-0.66,0)", c.Plane)
	}
	if dx, dy := c.Ahead(); dx != 0 || dy != 1 {
		t.Errorf("Ahead() = (%d,%d), expected (0,1)", dx, dy)
	}
}

func TestCameraTurn(t *testing.T) {
	tests := []struct {
		name   string
		angle  float64
		facing maze.Vec
		dx, dy int
	}{
		{"right quarter", math.Pi / 2, maze.V(-1, 0), -1, 0},
		{"left quarter", -math.Pi / 2, maze.V(1, 0), 1, 0},
		{"half", math.Pi, maze.V(0, -1), 0, -1},
		{"slight right", 0.1, maze.V(-math.Sin(0.1), math.Cos(0.1)), 0, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCamera(0.66).Turn(tc.angle)
			if !vecAlmostEqual(c.Facing, tc.facing) {
				t.Errorf("Facing = %v, expected %v", c.Facing, tc.facing)
			}
			if dx, dy := c.Ahead(); dx != tc.dx || dy != tc.dy {
				t.Errorf("Ahead() = (%d,%d), expected (%d,%d)", dx, dy, tc.dx, tc.dy)
			}
			// The plane stays perpendicular to the facing vector.
			if dot := c.Facing.X*c.Plane.X + c.Facing.Y*c.Plane.Y; !almostEqual(dot, 0) {
				t.Errorf("facing . plane = %v, expected 0", dot)
			}
		})
	}
}

func TestCameraWithPlaneLength(t *testing.T) {
	c := NewCamera(0.66).Turn(math.Pi / 2).WithPlaneLength(0.9)

	if !almostEqual(c.Plane.LenSquared(), 0.81) {
		t.Errorf("plane length^2 = %v, expected 0.81", c.Plane.LenSquared())
	}
	if !vecAlmostEqual(c.Right(), maze.V(0, -1)) {
		t.Errorf("Right() = %v, expected (0,-1)", c.Right())
	}
}

func TestCameraRightWithoutPlane(t *testing.T) {
	c := Camera{Facing: maze.V(0, 1)}
	if !vecAlmostEqual(c.Right(), maze.V(-1, 0)) {
		t.Errorf("Right() = %v, expected (-1,0)", c.Right())
	}
}

func TestCameraBearing(t *testing.T) {
	c := NewCamera(0.66)
	from := maze.V(1.5, 1.5)

	tests := []struct {
		name    string
		target  maze.Vec
		bearing float64
		arrow   rune
	}{
		{"ahead", maze.V(1.5, 4.5), 0, '↑'},
		{"right", maze.V(0.5, 1.5), math.Pi / 2, '→'},
		{"left", maze.V(3.5, 1.5), -math.Pi / 2, '←'},
		{"behind", maze.V(1.5, 0.5), math.Pi, '↓'},
		{"ahead right", maze.V(0.5, 2.5), math.Pi / 4, '↗'},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := c.Bearing(from, tc.target)
			if !almostEqual(b, tc.bearing) {
				t.Errorf("Bearing() = %v, expected %v", b, tc.bearing)
			}
			if got := Arrow(b); got != tc.arrow {
				t.Errorf("Arrow(%v) = %q, expected %q", b, got, tc.arrow)
			}
		})
	}
}

func TestArrowWrapsNegativeBearings(t *testing.T) {
	tests := []struct {
		bearing float64
		arrow   rune
	}{
		{-math.Pi / 4, '↖'},
		{-3 * math.Pi / 4, '↙'},
		{-math.Pi, '↓'},
		{3 * math.Pi / 4, '↘'},
		{0.2, '↑'},
	}

	for _, tc := range tests {
		if got := Arrow(tc.bearing); got != tc.arrow {
			t.Errorf("Arrow(%v) = %q, expected %q", tc.bearing, got, tc.arrow)
		}
	}
}
