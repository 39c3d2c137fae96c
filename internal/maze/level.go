package maze

import (
	"sort"
)

// Definition is the already-parsed, immutable description of a level.
// Tiles are stored in row-major order: index = y*Width + x.
type Definition struct {
	ID     string
	Name   string
	Width  int
	Height int
	Tiles  []Tile

	Start        Coord
	End          Coord
	ExitKeys     []Coord
	KeySensors   []Coord
	Guns         []Coord
	Decorations  map[Coord]string
	MonsterStart *Coord
	MonsterWait  *float64 // seconds after level start; nil disables the monster
	EdgeTexture  string
}

// NewDefinition returns a definition of the given size with every tile open.
func NewDefinition(id string, w, h int) Definition {
	return Definition{
		ID:          id,
		Name:        id,
		Width:       w,
		Height:      h,
		Tiles:       make([]Tile, w*h),
		Decorations: make(map[Coord]string),
	}
}

// InBounds reports whether c lies inside the definition's grid.
func (d *Definition) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < d.Width && c.Y >= 0 && c.Y < d.Height
}

// SetTile replaces the tile at c. Out-of-bounds coordinates are ignored.
func (d *Definition) SetTile(c Coord, t Tile) {
	if d.InBounds(c) {
		d.Tiles[c.Y*d.Width+c.X] = t
	}
}

// SetWall places a wall blocking both movers at c.
func (d *Definition) SetWall(c Coord, w Wall) {
	d.SetTile(c, WallTile(w))
}

// MonsterState is the lifecycle stage of the level's monster.
type MonsterState uint8

const (
	MonsterDisabled MonsterState = iota // level has no monster
	MonsterDormant                      // waiting for its first move
	MonsterActive                       // on the grid
	MonsterRemoved                      // shot or escaped; stays gone until Reset
)

func (s MonsterState) String() string {
	switch s {
	case MonsterDisabled:
		return "disabled"
	case MonsterDormant:
		return "dormant"
	case MonsterActive:
		return "active"
	case MonsterRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// PlayerWall is a temporary wall placed by the player.
type PlayerWall struct {
	Tile     Coord
	PlacedAt float64 // level time in seconds
	previous Tile
}

// Level is a playable instance of a Definition: the mutable tile grid plus
// player and monster state. It is owned by a single simulation tick at a time.
type Level struct {
	def Definition

	tiles            []Tile
	exitKeys         map[Coord]struct{}
	originalExitKeys []Coord
	keySensors       map[Coord]struct{}
	guns             map[Coord]struct{}

	player       Vec
	monster      Coord
	monsterState MonsterState
	won          bool
	killed       bool
	flags        map[Coord]struct{}
	playerWall   *PlayerWall
}

// NewLevel validates the definition and returns a level in its initial state.
func NewLevel(def Definition) (*Level, error) {
	if def.Width <= 0 || def.Height <= 0 {
		return nil, invalidLevel("dimensions %dx%d", def.Width, def.Height)
	}
	if len(def.Tiles) != def.Width*def.Height {
		return nil, invalidLevel("expected %d tiles, got %d", def.Width*def.Height, len(def.Tiles))
	}

	def = cloneDefinition(def)

	if !def.InBounds(def.Start) {
		return nil, invalidLevel("start point %s outside grid", def.Start)
	}
	if !def.InBounds(def.End) {
		return nil, invalidLevel("end point %s outside grid", def.End)
	}
	if def.Start == def.End {
		return nil, invalidLevel("start and end share tile %s", def.Start)
	}
	if def.Tiles[def.Start.Y*def.Width+def.Start.X].PlayerCollide {
		return nil, invalidLevel("start point %s is blocked", def.Start)
	}

	seen := make(map[Coord]struct{}, len(def.ExitKeys))
	for _, k := range def.ExitKeys {
		if !def.InBounds(k) {
			return nil, invalidLevel("key %s outside grid", k)
		}
		if k == def.Start || k == def.End {
			return nil, invalidLevel("key %s overlaps start or end", k)
		}
		if _, dup := seen[k]; dup {
			return nil, invalidLevel("duplicate key %s", k)
		}
		seen[k] = struct{}{}
	}
	for _, group := range [][]Coord{def.KeySensors, def.Guns} {
		for _, c := range group {
			if !def.InBounds(c) {
				return nil, invalidLevel("pickup %s outside grid", c)
			}
		}
	}
	for c := range def.Decorations {
		if !def.InBounds(c) {
			return nil, invalidLevel("decoration %s outside grid", c)
		}
	}
	if def.MonsterStart != nil && !def.InBounds(*def.MonsterStart) {
		return nil, invalidLevel("monster start %s outside grid", *def.MonsterStart)
	}

	l := &Level{def: def}
	l.originalExitKeys = sortedCoords(seen)
	l.Reset()
	return l, nil
}

// Reset restores all mutable state to the level's initial snapshot.
func (l *Level) Reset() {
	l.tiles = make([]Tile, len(l.def.Tiles))
	copy(l.tiles, l.def.Tiles)

	l.exitKeys = coordSet(l.def.ExitKeys)
	l.keySensors = coordSet(l.def.KeySensors)
	l.guns = coordSet(l.def.Guns)

	l.player = l.def.Start.Center()
	l.monster = Coord{}
	l.monsterState = MonsterDisabled
	if l.def.MonsterStart != nil && l.def.MonsterWait != nil {
		l.monsterState = MonsterDormant
	}
	l.won = false
	l.killed = false
	l.flags = make(map[Coord]struct{})
	l.playerWall = nil
}

// ID returns the level identifier.
func (l *Level) ID() string { return l.def.ID }

// Name returns the display name.
func (l *Level) Name() string { return l.def.Name }

// Width returns the grid width in tiles.
func (l *Level) Width() int { return l.def.Width }

// Height returns the grid height in tiles.
func (l *Level) Height() int { return l.def.Height }

// Definition returns a copy of the level's static data.
func (l *Level) Definition() Definition { return cloneDefinition(l.def) }

// InBounds reports whether c lies inside the grid.
func (l *Level) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < l.def.Width && c.Y >= 0 && c.Y < l.def.Height
}

func (l *Level) index(c Coord) int {
	return c.Y*l.def.Width + c.X
}

func (l *Level) outOfBounds(c Coord) error {
	return &OutOfBoundsError{Coord: c, Width: l.def.Width, Height: l.def.Height}
}

// Presence returns what occupies the tile at c.
func (l *Level) Presence(c Coord) (Presence, error) {
	if !l.InBounds(c) {
		return Presence{}, l.outOfBounds(c)
	}
	return l.tiles[l.index(c)].Presence, nil
}

// PresenceOrEdge is Presence with the edge sentinel substituted for
// coordinates outside the grid. Ray casting uses it to decide whether the
// edge is drawn as a wall or left open.
func (l *Level) PresenceOrEdge(c Coord) Presence {
	if !l.InBounds(c) {
		return Edge()
	}
	return l.tiles[l.index(c)].Presence
}

// SetPresence replaces the presence of the tile at c.
func (l *Level) SetPresence(c Coord, p Presence) error {
	if !l.InBounds(c) {
		return l.outOfBounds(c)
	}
	if p.Kind == PresenceEdge {
		p = Open()
	}
	l.tiles[l.index(c)].Presence = p
	return nil
}

// Flag returns a collision attribute of the tile at c.
func (l *Level) Flag(c Coord, a Attr) (bool, error) {
	if !l.InBounds(c) {
		return false, l.outOfBounds(c)
	}
	return l.tiles[l.index(c)].flag(a), nil
}

// SetFlag sets a collision attribute of the tile at c.
func (l *Level) SetFlag(c Coord, a Attr, v bool) error {
	if !l.InBounds(c) {
		return l.outOfBounds(c)
	}
	l.tiles[l.index(c)].setFlag(a, v)
	return nil
}

// Tile returns the full tile at c.
func (l *Level) Tile(c Coord) (Tile, error) {
	if !l.InBounds(c) {
		return Tile{}, l.outOfBounds(c)
	}
	return l.tiles[l.index(c)], nil
}

// blocked reports whether a mover with the given attribute cannot enter c.
// Tiles outside the grid are always blocked.
func (l *Level) blocked(c Coord, a Attr) bool {
	if !l.InBounds(c) {
		return true
	}
	return l.tiles[l.index(c)].flag(a)
}

// Start returns the start tile.
func (l *Level) Start() Coord { return l.def.Start }

// End returns the end tile.
func (l *Level) End() Coord { return l.def.End }

// EdgeTexture returns the texture used when the maze edge is drawn as a wall.
func (l *Level) EdgeTexture() string { return l.def.EdgeTexture }

// ExitKeys returns the keys still to collect, ordered by row then column.
func (l *Level) ExitKeys() []Coord { return sortedCoords(l.exitKeys) }

// HasExitKey reports whether an uncollected key lies on c.
func (l *Level) HasExitKey(c Coord) bool {
	_, ok := l.exitKeys[c]
	return ok
}

// OriginalExitKeys returns the keys present when the level was loaded.
func (l *Level) OriginalExitKeys() []Coord {
	out := make([]Coord, len(l.originalExitKeys))
	copy(out, l.originalExitKeys)
	return out
}

// KeysCollected returns how many keys have been collected and the total.
func (l *Level) KeysCollected() (collected, total int) {
	total = len(l.originalExitKeys)
	return total - len(l.exitKeys), total
}

// KeySensors returns the key sensor pickups still on the grid.
func (l *Level) KeySensors() []Coord { return sortedCoords(l.keySensors) }

// Guns returns the gun pickups still on the grid.
func (l *Level) Guns() []Coord { return sortedCoords(l.guns) }

// Decorations returns a copy of the decoration map.
func (l *Level) Decorations() map[Coord]string {
	out := make(map[Coord]string, len(l.def.Decorations))
	for c, s := range l.def.Decorations {
		out[c] = s
	}
	return out
}

// Decoration returns the sprite name of the decoration on c, if any.
func (l *Level) Decoration(c Coord) (string, bool) {
	s, ok := l.def.Decorations[c]
	return s, ok
}

// MonsterStart returns the tile the monster spawns on.
func (l *Level) MonsterStart() (Coord, bool) {
	if l.def.MonsterStart == nil {
		return Coord{}, false
	}
	return *l.def.MonsterStart, true
}

// MonsterWait returns the level's monster delay in seconds.
// ok is false when the level has no monster.
func (l *Level) MonsterWait() (wait float64, ok bool) {
	if l.def.MonsterWait == nil {
		return 0, false
	}
	return *l.def.MonsterWait, true
}

// Monster returns the monster's tile while it is on the grid.
func (l *Level) Monster() (Coord, bool) {
	if l.monsterState != MonsterActive {
		return Coord{}, false
	}
	return l.monster, true
}

// MonsterState returns the monster's lifecycle stage.
func (l *Level) MonsterState() MonsterState { return l.monsterState }

// RemoveMonster takes the monster off the grid until the next Reset.
func (l *Level) RemoveMonster() {
	if l.monsterState == MonsterDisabled {
		return
	}
	l.monsterState = MonsterRemoved
}

// PlayerPos returns the player's continuous position.
func (l *Level) PlayerPos() Vec { return l.player }

// PlayerTile returns the tile containing the player.
func (l *Level) PlayerTile() Coord { return l.player.Floor() }

// Teleport moves the player to p without collision checks.
func (l *Level) Teleport(p Vec) error {
	if !l.InBounds(p.Floor()) {
		return l.outOfBounds(p.Floor())
	}
	l.player = p
	return nil
}

// Won reports whether the player reached the end with every key.
func (l *Level) Won() bool { return l.won }

// Killed reports whether the player has been killed.
func (l *Level) Killed() bool { return l.killed }

// Kill marks the player as killed. It is terminal until Reset.
func (l *Level) Kill() { l.killed = true }

// Finished reports whether the level reached a terminal state.
func (l *Level) Finished() bool { return l.won || l.killed }

// Flags returns the tiles marked by the player.
func (l *Level) Flags() []Coord { return sortedCoords(l.flags) }

// HasFlag reports whether c is marked.
func (l *Level) HasFlag(c Coord) bool {
	_, ok := l.flags[c]
	return ok
}

// ToggleFlag marks or unmarks c and reports whether it is now marked.
func (l *Level) ToggleFlag(c Coord) (bool, error) {
	if !l.InBounds(c) {
		return false, l.outOfBounds(c)
	}
	if _, ok := l.flags[c]; ok {
		delete(l.flags, c)
		return false, nil
	}
	l.flags[c] = struct{}{}
	return true, nil
}

// PlayerWall returns the active player wall, if any.
func (l *Level) PlayerWall() (PlayerWall, bool) {
	if l.playerWall == nil {
		return PlayerWall{}, false
	}
	return *l.playerWall, true
}

// PlaceWall puts a temporary wall on c that blocks both movers.
// Only one player wall may exist at a time. The tile must be in bounds,
// empty, passable for both movers and not hold the player or the monster.
func (l *Level) PlaceWall(c Coord, at float64, w Wall) error {
	if !l.InBounds(c) {
		return l.outOfBounds(c)
	}
	if l.playerWall != nil {
		return ErrOccupied
	}
	t := l.tiles[l.index(c)]
	if t.Presence.Present() || t.PlayerCollide || t.MonsterCollide {
		return ErrOccupied
	}
	if c == l.PlayerTile() {
		return ErrOccupied
	}
	if m, ok := l.Monster(); ok && m == c {
		return ErrOccupied
	}
	l.playerWall = &PlayerWall{Tile: c, PlacedAt: at, previous: t}
	l.tiles[l.index(c)] = WallTile(w)
	return nil
}

// RemovePlayerWall reverts the player wall tile. It reports whether a wall was removed.
func (l *Level) RemovePlayerWall() bool {
	if l.playerWall == nil {
		return false
	}
	l.tiles[l.index(l.playerWall.Tile)] = l.playerWall.previous
	l.playerWall = nil
	return true
}

// ExpirePlayerWall removes the player wall once it has stood for lifetime
// seconds at level time now. It reports whether the wall expired.
func (l *Level) ExpirePlayerWall(now, lifetime float64) bool {
	if l.playerWall == nil || now < l.playerWall.PlacedAt+lifetime {
		return false
	}
	return l.RemovePlayerWall()
}

func cloneDefinition(d Definition) Definition {
	out := d
	out.Tiles = make([]Tile, len(d.Tiles))
	copy(out.Tiles, d.Tiles)
	out.ExitKeys = append([]Coord(nil), d.ExitKeys...)
	out.KeySensors = append([]Coord(nil), d.KeySensors...)
	out.Guns = append([]Coord(nil), d.Guns...)
	out.Decorations = make(map[Coord]string, len(d.Decorations))
	for c, s := range d.Decorations {
		out.Decorations[c] = s
	}
	if d.MonsterStart != nil {
		ms := *d.MonsterStart
		out.MonsterStart = &ms
	}
	if d.MonsterWait != nil {
		mw := *d.MonsterWait
		out.MonsterWait = &mw
	}
	return out
}

func coordSet(coords []Coord) map[Coord]struct{} {
	set := make(map[Coord]struct{}, len(coords))
	for _, c := range coords {
		set[c] = struct{}{}
	}
	return set
}

// sortedCoords returns the set's members ordered by row then column.
func sortedCoords(set map[Coord]struct{}) []Coord {
	out := make([]Coord, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}
