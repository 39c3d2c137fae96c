package maze

import "math"

// maxStep bounds the distance covered by one collision check so that a
// large delta cannot carry the player across a wall tile.
const maxStep = 0.5

// MovePlayer advances the player by delta and returns the events raised.
//
// Each axis is resolved independently, X first and then Y against the
// already resolved X, so a diagonal move into a wall slides along it.
// Leaving the grid is always blocked. With collision disabled the
// player_collide checks are skipped, and pickups, winning and monster
// contact are only evaluated when both collect and collision are enabled.
// A won or killed level ignores movement.
func (l *Level) MovePlayer(delta Vec, hasGun, collect, collision bool) EventSet {
	var events EventSet
	if l.Finished() {
		return events
	}

	steps := int(math.Ceil(math.Max(math.Abs(delta.X), math.Abs(delta.Y)) / maxStep))
	if steps < 1 {
		steps = 1
	}
	part := delta.Scale(1 / float64(steps))
	for i := 0; i < steps; i++ {
		l.stepPlayer(part, collision)
		if collect && collision {
			events = events.Merge(l.collect(hasGun))
			if l.won {
				break
			}
		}
	}
	return events
}

func (l *Level) stepPlayer(delta Vec, collision bool) {
	pos := l.player

	if x := pos.X + delta.X; l.passable(Vec{X: x, Y: pos.Y}.Floor(), collision) {
		pos.X = x
	}
	if y := pos.Y + delta.Y; l.passable(Vec{X: pos.X, Y: y}.Floor(), collision) {
		pos.Y = y
	}
	l.player = pos
}

func (l *Level) passable(c Coord, collision bool) bool {
	if !l.InBounds(c) {
		return false
	}
	return !collision || !l.tiles[l.index(c)].PlayerCollide
}

// collect applies the effects of standing on the player's current tile.
func (l *Level) collect(hasGun bool) EventSet {
	var events EventSet
	tile := l.PlayerTile()

	if _, ok := l.exitKeys[tile]; ok {
		delete(l.exitKeys, tile)
		events = events.Add(EventPickedUpKey).Add(EventPickup)
	}
	if _, ok := l.keySensors[tile]; ok {
		delete(l.keySensors, tile)
		events = events.Add(EventPickedUpKeySensor).Add(EventPickup)
	}
	if _, ok := l.guns[tile]; ok && !hasGun {
		delete(l.guns, tile)
		events = events.Add(EventPickedUpGun).Add(EventPickup)
	}
	if tile == l.def.End && len(l.exitKeys) == 0 {
		l.won = true
	}
	if m, ok := l.Monster(); ok && m == tile {
		events = events.Add(EventMonsterCaught)
	}
	return events
}
