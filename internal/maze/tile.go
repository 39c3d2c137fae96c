package maze

// Side identifies the face of a tile struck by a ray.
type Side uint8

const (
	SideNorth Side = iota
	SideSouth
	SideEast
	SideWest
)

func (s Side) String() string {
	switch s {
	case SideNorth:
		return "north"
	case SideSouth:
		return "south"
	case SideEast:
		return "east"
	case SideWest:
		return "west"
	default:
		return "unknown"
	}
}

// Shaded reports whether the side is drawn with the darker shade.
// North and south faces are dark, east and west faces are light.
func (s Side) Shaded() bool {
	return s == SideNorth || s == SideSouth
}

// Wall holds one texture name per side, indexed by Side.
type Wall [4]string

// UniformWall returns a wall with the same texture on every side.
func UniformWall(texture string) Wall {
	return Wall{texture, texture, texture, texture}
}

// Texture returns the texture name for the given side.
func (w Wall) Texture(s Side) string {
	if int(s) >= len(w) {
		return ""
	}
	return w[s]
}

// PresenceKind distinguishes open tiles, walls and the off-grid edge.
type PresenceKind uint8

const (
	PresenceNone PresenceKind = iota
	PresenceWall
	PresenceEdge // sentinel for queries outside the grid
)

// Presence describes what occupies a tile for rendering purposes.
type Presence struct {
	Kind PresenceKind
	Wall Wall // valid only when Kind is PresenceWall
}

// Open is the presence of an empty tile.
func Open() Presence {
	return Presence{Kind: PresenceNone}
}

// Solid returns a wall presence with the given textures.
func Solid(w Wall) Presence {
	return Presence{Kind: PresenceWall, Wall: w}
}

// Edge returns the sentinel presence used for out-of-bounds queries.
func Edge() Presence {
	return Presence{Kind: PresenceEdge}
}

// Present reports whether the tile stops a ray.
func (p Presence) Present() bool {
	return p.Kind != PresenceNone
}

// Attr names a boolean per-tile collision attribute.
type Attr uint8

const (
	AttrPlayerCollide Attr = iota
	AttrMonsterCollide
)

func (a Attr) String() string {
	switch a {
	case AttrPlayerCollide:
		return "player_collide"
	case AttrMonsterCollide:
		return "monster_collide"
	default:
		return "unknown"
	}
}

// Tile is one grid cell.
type Tile struct {
	Presence       Presence
	PlayerCollide  bool
	MonsterCollide bool
}

// WallTile returns a tile with a wall that blocks both the player and the monster.
func WallTile(w Wall) Tile {
	return Tile{Presence: Solid(w), PlayerCollide: true, MonsterCollide: true}
}

func (t Tile) flag(a Attr) bool {
	if a == AttrMonsterCollide {
		return t.MonsterCollide
	}
	return t.PlayerCollide
}

func (t *Tile) setFlag(a Attr, v bool) {
	if a == AttrMonsterCollide {
		t.MonsterCollide = v
		return
	}
	t.PlayerCollide = v
}
