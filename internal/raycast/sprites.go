package raycast

import (
	"math"
	"sort"

	"github.com/vovakirdan/tui-maze/internal/maze"
)

// Scene is a Grid that also exposes the point entities drawn as sprites.
type Scene interface {
	Grid
	Start() maze.Coord
	ExitKeys() []maze.Coord
	KeySensors() []maze.Coord
	Guns() []maze.Coord
	Flags() []maze.Coord
	Decorations() map[maze.Coord]string
	Monster() (maze.Coord, bool)
}

// SpriteKind identifies what a sprite depicts.
type SpriteKind uint8

const (
	SpriteDecoration SpriteKind = iota
	SpriteMonster
	SpriteKey
	SpriteKeySensor
	SpriteGun
	SpriteEndPoint
	SpriteEndPointActive // end point once every key is collected
	SpriteStartPoint
	SpriteFlag
)

func (k SpriteKind) String() string {
	switch k {
	case SpriteDecoration:
		return "decoration"
	case SpriteMonster:
		return "monster"
	case SpriteKey:
		return "key"
	case SpriteKeySensor:
		return "key_sensor"
	case SpriteGun:
		return "gun"
	case SpriteEndPoint:
		return "end_point"
	case SpriteEndPointActive:
		return "end_point_active"
	case SpriteStartPoint:
		return "start_point"
	case SpriteFlag:
		return "flag"
	default:
		return "unknown"
	}
}

// SpriteCollision is a point entity placed in camera space.
type SpriteCollision struct {
	Kind  SpriteKind
	Tile  maze.Coord
	Name  string   // decoration texture name, empty for other kinds
	Point maze.Vec // world position, the tile centre
	// CameraX is the horizontal screen position in [-1,1] for the sprite
	// centre; values slightly outside keep partly visible sprites.
	CameraX float64
	// Depth is the distance along the facing direction. Sprite height on
	// screen is proportional to 1/Depth.
	Depth            float64
	EuclideanSquared float64
}

// ScreenX maps CameraX to a column index on a screen of the given width.
func (s SpriteCollision) ScreenX(width int) int {
	return int(float64(width) / 2 * (1 + s.CameraX))
}

// Size returns the on-screen size of a sprite that fills one tile.
func (s SpriteCollision) Size(width, height int) (w, h int) {
	return int(math.Abs(float64(width) / s.Depth)), int(math.Abs(float64(height) / s.Depth))
}

type entity struct {
	kind SpriteKind
	tile maze.Coord
	name string
}

// entities lists every point entity of the scene in a fixed order.
func entities(s Scene, opts Options) []entity {
	var out []entity
	decorations := s.Decorations()
	tiles := make([]maze.Coord, 0, len(decorations))
	for c := range decorations {
		tiles = append(tiles, c)
	}
	sort.Slice(tiles, func(i, j int) bool {
		if tiles[i].Y != tiles[j].Y {
			return tiles[i].Y < tiles[j].Y
		}
		return tiles[i].X < tiles[j].X
	})
	for _, c := range tiles {
		out = append(out, entity{kind: SpriteDecoration, tile: c, name: decorations[c]})
	}
	if m, ok := s.Monster(); ok {
		out = append(out, entity{kind: SpriteMonster, tile: m})
	}
	keys := s.ExitKeys()
	if !opts.SolidMarkers {
		for _, c := range keys {
			out = append(out, entity{kind: SpriteKey, tile: c})
		}
		end := entity{kind: SpriteEndPoint, tile: s.End()}
		if len(keys) == 0 {
			end.kind = SpriteEndPointActive
		}
		out = append(out, end)
	}
	for _, c := range s.KeySensors() {
		out = append(out, entity{kind: SpriteKeySensor, tile: c})
	}
	for _, c := range s.Guns() {
		out = append(out, entity{kind: SpriteGun, tile: c})
	}
	out = append(out, entity{kind: SpriteStartPoint, tile: s.Start()})
	for _, c := range s.Flags() {
		out = append(out, entity{kind: SpriteFlag, tile: c})
	}
	return out
}

// CastSprites projects every visible point entity into camera space.
// Entities behind the camera or outside the field of view are dropped.
// Several entities on one tile are all returned. The result is not sorted.
func CastSprites(s Scene, facing, plane maze.Vec) []SpriteCollision {
	return CastSpritesWith(s, Options{}, facing, plane)
}

// CastSpritesWith is CastSprites with full options.
func CastSpritesWith(s Scene, opts Options, facing, plane maze.Vec) []SpriteCollision {
	det := plane.X*facing.Y - facing.X*plane.Y
	if det == 0 {
		return []SpriteCollision{}
	}
	inv := 1 / det
	pos := s.PlayerPos()
	rangeSq := opts.SpriteRange * opts.SpriteRange

	out := []SpriteCollision{}
	for _, e := range entities(s, opts) {
		point := e.tile.Center()
		rel := point.Sub(pos)
		distSq := rel.LenSquared()
		if rangeSq > 0 && distSq > rangeSq {
			continue
		}

		tx := inv * (facing.Y*rel.X - facing.X*rel.Y)
		ty := inv * (-plane.Y*rel.X + plane.X*rel.Y)
		if ty <= 0 {
			continue
		}
		// The sprite is one tile wide, which is 1/ty in camera units.
		cameraX := tx / ty
		if math.Abs(cameraX) > 1+1/ty {
			continue
		}
		out = append(out, SpriteCollision{
			Kind:             e.kind,
			Tile:             e.tile,
			Name:             e.name,
			Point:            point,
			CameraX:          cameraX,
			Depth:            ty,
			EuclideanSquared: distSq,
		})
	}
	return out
}

// FirstCollision casts a single ray along dir from the player and returns
// the wall it stops at together with the sprites on the tiles it crossed
// before that, nearest first. It is used for line-of-fire checks.
func FirstCollision(s Scene, dir maze.Vec, opts Options) (WallCollision, []SpriteCollision) {
	pos := s.PlayerPos()
	byTile := make(map[maze.Coord][]entity)
	for _, e := range entities(s, opts) {
		byTile[e.tile] = append(byTile[e.tile], e)
	}

	var hits []SpriteCollision
	wall := castRay(s, pos, dir, opts, func(c maze.Coord) {
		for _, e := range byTile[c] {
			point := c.Center()
			hits = append(hits, SpriteCollision{
				Kind:             e.kind,
				Tile:             c,
				Name:             e.name,
				Point:            point,
				EuclideanSquared: maze.DistanceSquared(point, pos),
			})
		}
	})
	return wall, hits
}
