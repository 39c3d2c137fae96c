// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-maze/internal/maze"
	"gopkg.in/yaml.v3"
)

// Layout glyphs understood by every format.
const (
	GlyphWall           = '#'
	GlyphFloor          = '.'
	GlyphStart          = 'S'
	GlyphEnd            = 'E'
	GlyphKey            = 'K'
	GlyphKeySensor      = 'T'
	GlyphGun            = 'G'
	GlyphMonster        = 'M'
	GlyphMonsterBarrier = '~' // open floor the monster cannot cross
	GlyphPlayerBarrier  = '+' // open floor the player cannot cross
)

// reserved reports whether a glyph has a fixed meaning in layouts and so
// cannot name a wall. GlyphWall is the one wall glyph.
func reserved(ch rune) bool {
	switch ch {
	case GlyphFloor, ' ', GlyphStart, GlyphEnd, GlyphKey, GlyphKeySensor,
		GlyphGun, GlyphMonster, GlyphMonsterBarrier, GlyphPlayerBarrier:
		return true
	}
	return false
}

// DefaultWallTexture is used when a level names no wall texture.
const DefaultWallTexture = "brick"

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	EdgeTexture string            `yaml:"edge_texture,omitempty"`
	Walls       YAMLWalls         `yaml:"walls,omitempty"`
	Monster     *YAMLMonster      `yaml:"monster,omitempty"`
	Layout      []string          `yaml:"layout"`
	Decorations []YAMLDecoration  `yaml:"decorations,omitempty"`
	Metadata    map[string]string `yaml:"metadata,omitempty"`
}

// YAMLWalls configures wall textures. Default applies to '#'; Legend maps
// extra glyphs to their own textures.
type YAMLWalls struct {
	Default string              `yaml:"default,omitempty"`
	Legend  map[string]YAMLWall `yaml:"legend,omitempty"`
}

// YAMLWall names textures per side. All fills any side left empty.
type YAMLWall struct {
	All   string `yaml:"all,omitempty"`
	North string `yaml:"north,omitempty"`
	South string `yaml:"south,omitempty"`
	East  string `yaml:"east,omitempty"`
	West  string `yaml:"west,omitempty"`
}

// YAMLMonster enables the monster. Wait is in seconds after level start;
// a missing wait disables the monster even when the layout places one.
type YAMLMonster struct {
	Wait *float64 `yaml:"wait"`
}

// YAMLDecoration places a decorative sprite.
type YAMLDecoration struct {
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Sprite string `yaml:"sprite"`
}

// Level represents a parsed level ready for use.
type Level struct {
	Definition maze.Definition
	Metadata   map[string]string
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("level has no id")
	}

	legend := make(map[rune]maze.Wall, len(yl.Walls.Legend)+1)
	defaultTex := yl.Walls.Default
	if defaultTex == "" {
		defaultTex = DefaultWallTexture
	}
	legend[GlyphWall] = maze.UniformWall(defaultTex)
	for glyph, w := range yl.Walls.Legend {
		r := []rune(glyph)
		if len(r) != 1 {
			return Level{}, fmt.Errorf("wall legend key %q must be a single character", glyph)
		}
		if reserved(r[0]) {
			return Level{}, fmt.Errorf("wall legend key %q is a reserved layout glyph", glyph)
		}
		legend[r[0]] = w.toWall(defaultTex)
	}

	def, err := ParseLayout(yl.ID, yl.Layout, legend)
	if err != nil {
		return Level{}, err
	}
	def.Name = yl.Name
	if def.Name == "" {
		def.Name = yl.ID
	}
	def.EdgeTexture = yl.EdgeTexture
	if def.EdgeTexture == "" {
		def.EdgeTexture = defaultTex
	}

	if yl.Monster != nil && yl.Monster.Wait != nil {
		if *yl.Monster.Wait < 0 {
			return Level{}, fmt.Errorf("monster wait %v is negative", *yl.Monster.Wait)
		}
		wait := *yl.Monster.Wait
		def.MonsterWait = &wait
	}

	for _, d := range yl.Decorations {
		def.Decorations[maze.C(d.X, d.Y)] = d.Sprite
	}

	return Level{Definition: def, Metadata: yl.Metadata}, nil
}

// ParseLayout builds a definition from text rows. legend maps wall glyphs
// to wall textures. Every row must have the same width.
func ParseLayout(id string, rows []string, legend map[rune]maze.Wall) (maze.Definition, error) {
	if len(rows) == 0 {
		return maze.Definition{}, fmt.Errorf("layout is empty")
	}
	for ch := range legend {
		if reserved(ch) {
			return maze.Definition{}, fmt.Errorf("wall legend glyph %q is a reserved layout glyph", ch)
		}
	}
	width := len([]rune(rows[0]))
	if width == 0 {
		return maze.Definition{}, fmt.Errorf("layout row 0 is empty")
	}

	def := maze.NewDefinition(id, width, len(rows))
	var haveStart, haveEnd bool
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return maze.Definition{}, fmt.Errorf("layout row %d has width %d, expected %d", y, len(runes), width)
		}
		for x, ch := range runes {
			c := maze.C(x, y)
			if w, ok := legend[ch]; ok {
				def.SetWall(c, w)
				continue
			}
			switch ch {
			case GlyphFloor, ' ':
			case GlyphStart:
				if haveStart {
					return maze.Definition{}, fmt.Errorf("second start point at %s", c)
				}
				def.Start, haveStart = c, true
			case GlyphEnd:
				if haveEnd {
					return maze.Definition{}, fmt.Errorf("second end point at %s", c)
				}
				def.End, haveEnd = c, true
			case GlyphKey:
				def.ExitKeys = append(def.ExitKeys, c)
			case GlyphKeySensor:
				def.KeySensors = append(def.KeySensors, c)
			case GlyphGun:
				def.Guns = append(def.Guns, c)
			case GlyphMonster:
				if def.MonsterStart != nil {
					return maze.Definition{}, fmt.Errorf("second monster start at %s", c)
				}
				m := c
				def.MonsterStart = &m
			case GlyphMonsterBarrier:
				def.SetTile(c, maze.Tile{MonsterCollide: true})
			case GlyphPlayerBarrier:
				def.SetTile(c, maze.Tile{PlayerCollide: true})
			default:
				return maze.Definition{}, fmt.Errorf("unknown glyph %q at %s", ch, c)
			}
		}
	}
	if !haveStart {
		return maze.Definition{}, fmt.Errorf("layout has no start point")
	}
	if !haveEnd {
		return maze.Definition{}, fmt.Errorf("layout has no end point")
	}
	return def, nil
}

// FormatLayout renders a definition back into layout rows using the
// default glyphs. Custom wall textures are written as '#'.
func FormatLayout(def maze.Definition) []string {
	grid := make([][]rune, def.Height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(string(GlyphFloor), def.Width))
		for x := 0; x < def.Width; x++ {
			t := def.Tiles[y*def.Width+x]
			switch {
			case t.Presence.Present():
				grid[y][x] = GlyphWall
			case t.PlayerCollide:
				grid[y][x] = GlyphPlayerBarrier
			case t.MonsterCollide:
				grid[y][x] = GlyphMonsterBarrier
			}
		}
	}
	set := func(c maze.Coord, r rune) {
		if def.InBounds(c) {
			grid[c.Y][c.X] = r
		}
	}
	for _, c := range def.ExitKeys {
		set(c, GlyphKey)
	}
	for _, c := range def.KeySensors {
		set(c, GlyphKeySensor)
	}
	for _, c := range def.Guns {
		set(c, GlyphGun)
	}
	if def.MonsterStart != nil {
		set(*def.MonsterStart, GlyphMonster)
	}
	set(def.Start, GlyphStart)
	set(def.End, GlyphEnd)

	rows := make([]string, def.Height)
	for y, r := range grid {
		rows[y] = string(r)
	}
	return rows
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}

func (w YAMLWall) toWall(fallback string) maze.Wall {
	all := w.All
	if all == "" {
		all = fallback
	}
	pick := func(s string) string {
		if s == "" {
			return all
		}
		return s
	}
	var out maze.Wall
	out[maze.SideNorth] = pick(w.North)
	out[maze.SideSouth] = pick(w.South)
	out[maze.SideEast] = pick(w.East)
	out[maze.SideWest] = pick(w.West)
	return out
}
