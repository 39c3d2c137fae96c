// Package raycast turns a maze level and a camera into drawable geometry:
// one wall hit per screen column found by DDA grid stepping, projected
// point sprites, and a single depth-sorted paint list combining both.
package raycast

import (
	"math"

	"github.com/vovakirdan/tui-maze/internal/maze"
)

// noBoundary stands in for an infinite step distance on an axis the ray
// never crosses.
const noBoundary = 1e30

// Grid is the read-only view of a level needed to cast wall rays.
type Grid interface {
	InBounds(c maze.Coord) bool
	PresenceOrEdge(c maze.Coord) maze.Presence
	HasExitKey(c maze.Coord) bool
	End() maze.Coord
	PlayerPos() maze.Vec
}

// Options controls what stops a ray.
type Options struct {
	// EdgeAsWall makes rays leaving the grid hit an infinite wall instead
	// of revealing the background.
	EdgeAsWall bool
	// SolidMarkers makes key and end point tiles stop rays as distinct
	// solid blocks rather than being drawn as sprites.
	SolidMarkers bool
	// SpriteRange discards sprites farther than this many tiles. Zero means
	// no limit.
	SpriteRange float64
}

// HitKind classifies what a column ray struck.
type HitKind uint8

const (
	HitNone     HitKind = iota // left the grid with edges open
	HitWall                    // a wall tile
	HitEdge                    // the grid edge drawn as a wall
	HitKey                     // a key tile when markers are solid
	HitEndPoint                // the end point when markers are solid
)

func (k HitKind) String() string {
	switch k {
	case HitNone:
		return "none"
	case HitWall:
		return "wall"
	case HitEdge:
		return "edge"
	case HitKey:
		return "key"
	case HitEndPoint:
		return "end_point"
	default:
		return "unknown"
	}
}

// WallCollision is the result of casting one column ray.
type WallCollision struct {
	Tile  maze.Coord
	Side  maze.Side
	Kind  HitKind
	Point maze.Vec // exact world position of the hit
	// DrawDistance is the hit distance projected onto the facing direction.
	// It is +Inf when the ray left the grid without hitting anything.
	DrawDistance     float64
	EuclideanSquared float64
	Column           int
}

// Hit reports whether the ray struck something drawable.
func (w WallCollision) Hit() bool {
	return w.Kind != HitNone
}

// TextureU returns the horizontal texture coordinate in [0,1) of the hit,
// mirrored so textures read the same way from both sides of a wall.
func (w WallCollision) TextureU(facing, plane maze.Vec, columns int) float64 {
	var u float64
	if w.Side.Shaded() {
		u = w.Point.X - math.Floor(w.Point.X)
	} else {
		u = w.Point.Y - math.Floor(w.Point.Y)
	}
	dir := RayDirection(w.Column, columns, facing, plane)
	if (!w.Side.Shaded() && dir.X < 0) || (w.Side.Shaded() && dir.Y > 0) {
		u = 1 - u
	}
	if u >= 1 {
		u = 0
	}
	return u
}

// RayDirection returns the direction of the ray for a screen column. The
// sweep runs from facing-plane at column 0 to facing+plane at the far edge.
func RayDirection(column, columns int, facing, plane maze.Vec) maze.Vec {
	cameraX := 2*float64(column)/float64(columns) - 1
	return facing.Add(plane.Scale(cameraX))
}

// CastColumns casts one ray per screen column and returns exactly count
// results ordered by column.
func CastColumns(count int, g Grid, edgeAsWall bool, facing, plane maze.Vec) []WallCollision {
	return CastColumnsWith(count, g, Options{EdgeAsWall: edgeAsWall}, facing, plane)
}

// CastColumnsWith is CastColumns with full options.
func CastColumnsWith(count int, g Grid, opts Options, facing, plane maze.Vec) []WallCollision {
	if count <= 0 {
		return []WallCollision{}
	}
	out := make([]WallCollision, count)
	for col := 0; col < count; col++ {
		hit := castRay(g, g.PlayerPos(), RayDirection(col, count, facing, plane), opts, nil)
		hit.Column = col
		out[col] = hit
	}
	return out
}

// castRay walks the grid from pos along dir until something stops it.
// visit, if set, is called for every tile the ray passes through before
// the hit, the starting tile included.
func castRay(g Grid, pos, dir maze.Vec, opts Options, visit func(maze.Coord)) WallCollision {
	tile := pos.Floor()
	if dir.X == 0 && dir.Y == 0 {
		return miss(tile)
	}

	deltaX, deltaY := noBoundary, noBoundary
	if dir.X != 0 {
		deltaX = math.Abs(1 / dir.X)
	}
	if dir.Y != 0 {
		deltaY = math.Abs(1 / dir.Y)
	}

	var stepX, stepY int
	var sideX, sideY float64
	if dir.X < 0 {
		stepX = -1
		sideX = (pos.X - float64(tile.X)) * deltaX
	} else {
		stepX = 1
		sideX = (float64(tile.X) + 1 - pos.X) * deltaX
	}
	if dir.Y < 0 {
		stepY = -1
		sideY = (pos.Y - float64(tile.Y)) * deltaY
	} else {
		stepY = 1
		sideY = (float64(tile.Y) + 1 - pos.Y) * deltaY
	}

	for {
		if visit != nil {
			visit(tile)
		}

		var crossedY bool
		if sideX < sideY {
			sideX += deltaX
			tile.X += stepX
		} else {
			sideY += deltaY
			tile.Y += stepY
			crossedY = true
		}

		kind := classify(g, tile, opts)
		if kind == HitNone {
			if !g.InBounds(tile) {
				return miss(tile)
			}
			continue
		}

		var dist float64
		var side maze.Side
		if crossedY {
			dist = (float64(tile.Y) - pos.Y + float64(1-stepY)/2) / dir.Y
			side = maze.SideNorth
			if stepY < 0 {
				side = maze.SideSouth
			}
		} else {
			dist = (float64(tile.X) - pos.X + float64(1-stepX)/2) / dir.X
			side = maze.SideWest
			if stepX < 0 {
				side = maze.SideEast
			}
		}
		offset := dir.Scale(dist)
		return WallCollision{
			Tile:             tile,
			Side:             side,
			Kind:             kind,
			Point:            pos.Add(offset),
			DrawDistance:     dist,
			EuclideanSquared: offset.LenSquared(),
		}
	}
}

// classify returns what, if anything, stops a ray entering tile.
func classify(g Grid, tile maze.Coord, opts Options) HitKind {
	p := g.PresenceOrEdge(tile)
	switch p.Kind {
	case maze.PresenceEdge:
		if opts.EdgeAsWall {
			return HitEdge
		}
		return HitNone
	case maze.PresenceWall:
		return HitWall
	}
	if opts.SolidMarkers {
		if g.HasExitKey(tile) {
			return HitKey
		}
		if tile == g.End() {
			return HitEndPoint
		}
	}
	return HitNone
}

func miss(tile maze.Coord) WallCollision {
	return WallCollision{
		Tile:             tile,
		Kind:             HitNone,
		DrawDistance:     math.Inf(1),
		EuclideanSquared: math.Inf(1),
	}
}
