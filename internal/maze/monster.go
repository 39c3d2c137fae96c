package maze

// MoveMonster advances the monster by one tile and reports whether it now
// shares a tile with the player.
//
// The first call after level start or Reset spawns the monster on its start
// tile. Later calls step it along the shortest monster-passable path toward
// the player's tile; with no path it stays put. A disabled or removed
// monster never moves. Timing is the caller's concern.
func (l *Level) MoveMonster() bool {
	if l.Finished() {
		return false
	}
	switch l.monsterState {
	case MonsterDormant:
		l.monster = *l.def.MonsterStart
		l.monsterState = MonsterActive
	case MonsterActive:
		if next, ok := l.NextMonsterStep(); ok {
			l.monster = next
		}
	default:
		return false
	}
	return l.monster == l.PlayerTile()
}

// NextMonsterStep returns the tile the monster would move to next.
// ok is false when the monster is not on the grid or has no path to the
// player.
func (l *Level) NextMonsterStep() (Coord, bool) {
	if l.monsterState != MonsterActive {
		return Coord{}, false
	}
	path := l.ShortestPath(l.monster, l.PlayerTile(), AttrMonsterCollide)
	if len(path) < 2 {
		return Coord{}, false
	}
	return path[1], true
}
