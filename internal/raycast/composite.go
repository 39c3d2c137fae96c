package raycast

import (
	"sort"

	"github.com/vovakirdan/tui-maze/internal/maze"
)

// Collision is anything that can be painted: a WallCollision or a
// SpriteCollision.
type Collision interface {
	Distance() float64
}

// Distance returns the squared Euclidean distance used for depth sorting.
func (w WallCollision) Distance() float64 { return w.EuclideanSquared }

// Distance returns the squared Euclidean distance used for depth sorting.
func (s SpriteCollision) Distance() float64 { return s.EuclideanSquared }

// Composite merges wall columns and sprites into a single paint list,
// farthest first, so nearer objects are painted over farther ones.
// Equal distances keep walls before sprites and input order otherwise.
func Composite(walls []WallCollision, sprites []SpriteCollision) []Collision {
	out := make([]Collision, 0, len(walls)+len(sprites))
	for _, w := range walls {
		out = append(out, w)
	}
	for _, s := range sprites {
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Distance() > out[j].Distance()
	})
	return out
}

// Frame is everything needed to paint one view.
type Frame struct {
	Facing  maze.Vec
	Plane   maze.Vec
	Columns []WallCollision
	Sprites []SpriteCollision
	Paint   []Collision
}

// Render casts columns and sprites for the scene and composites them.
func Render(columns int, s Scene, opts Options, facing, plane maze.Vec) Frame {
	walls := CastColumnsWith(columns, s, opts, facing, plane)
	sprites := CastSpritesWith(s, opts, facing, plane)
	return Frame{
		Facing:  facing,
		Plane:   plane,
		Columns: walls,
		Sprites: sprites,
		Paint:   Composite(walls, sprites),
	}
}
