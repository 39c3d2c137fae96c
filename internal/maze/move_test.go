package maze

import "testing"

func TestMovePlayerNoTunneling(t *testing.T) {
	l := buildLevel(t,
		".....",
		".....",
		"S..#.",
		".....",
		"....E",
	)
	if err := l.Teleport(V(2.0, 2.0)); err != nil {
		t.Fatalf("Teleport() error = %v", err)
	}

	for i := 0; i < 5; i++ {
		l.MovePlayer(V(0.5, 0), false, true, true)
		if x := l.PlayerPos().X; x > 3.0 {
			t.Fatalf("after move %d x = %v, expected <= 3.0", i, x)
		}
	}
	if got := l.PlayerTile(); got != C(2, 2) {
		t.Errorf("PlayerTile() = %s, expected (2,2)", got)
	}
}

func TestMovePlayerLargeDeltaCannotSkipWall(t *testing.T) {
	l := buildLevel(t, "S.#..E")

	l.MovePlayer(V(4, 0), false, true, true)
	if x := l.PlayerPos().X; x >= 2.0 {
		t.Errorf("x = %v, expected player stopped before wall at x=2", x)
	}
}

func TestMovePlayerSlidesAlongWall(t *testing.T) {
	// Wall directly east: diagonal movement slides north.
	l := buildLevel(t,
		"...",
		".S#",
		"..E",
	)
	l.Teleport(V(1.9, 1.5))
	before := l.PlayerPos()

	l.MovePlayer(V(0.3, -0.3), false, true, true)
	after := l.PlayerPos()

	dx := after.X - before.X
	dy := after.Y - before.Y
	if dx != 0 {
		t.Errorf("dx = %v, expected blocked X axis", dx)
	}
	if !almostEqual(dy, -0.3) {
		t.Errorf("dy = %v, expected -0.3", dy)
	}
}

func TestMovePlayerLCorner(t *testing.T) {
	// Player in the inner corner of an L: east and south are walls.
	l := buildLevel(t,
		"S..",
		".?#",
		".#E",
	)
	l.Teleport(V(1.8, 1.8))

	tests := []struct {
		name     string
		delta    Vec
		expectDX bool
		expectDY bool
	}{
		{"into corner", V(0.3, 0.3), false, false},
		{"north-east", V(0.3, -0.3), false, true},
		{"south-west", V(-0.3, 0.3), true, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l.Teleport(V(1.8, 1.8))
			before := l.PlayerPos()
			l.MovePlayer(tc.delta, false, true, true)
			after := l.PlayerPos()
			movedX := after.X != before.X
			movedY := after.Y != before.Y
			if movedX != tc.expectDX || movedY != tc.expectDY {
				t.Errorf("moved x=%v y=%v, expected x=%v y=%v", movedX, movedY, tc.expectDX, tc.expectDY)
			}
		})
	}
}

func TestMovePlayerCollisionDisabled(t *testing.T) {
	l := buildLevel(t, "S#.E")

	events := l.MovePlayer(V(1.0, 0), false, true, false)
	if got := l.PlayerTile(); got != C(1, 0) {
		t.Errorf("PlayerTile() = %s, expected to pass into wall tile (1,0)", got)
	}
	if !events.Empty() {
		t.Errorf("events = %s, expected none with collision disabled", events)
	}

	// The grid edge still holds.
	l.MovePlayer(V(-5, 0), false, true, false)
	if x := l.PlayerPos().X; x < 0 {
		t.Errorf("x = %v, expected player kept inside grid", x)
	}
}

func TestMovePlayerKeysAndWin(t *testing.T) {
	l := buildLevel(t, "S.EK")

	// Reaching the end with a key outstanding does not win.
	events := l.MovePlayer(V(2, 0), false, true, true)
	if l.PlayerTile() != C(2, 0) {
		t.Fatalf("PlayerTile() = %s, expected (2,0)", l.PlayerTile())
	}
	if l.Won() {
		t.Fatalf("Won() = true with keys remaining")
	}
	if !events.Empty() {
		t.Errorf("events = %s, expected none", events)
	}

	events = l.MovePlayer(V(1, 0), false, true, true)
	if !events.Has(EventPickedUpKey) || !events.Has(EventPickup) {
		t.Errorf("events = %s, expected key pickup", events)
	}
	if collected, total := l.KeysCollected(); collected != 1 || total != 1 {
		t.Errorf("KeysCollected() = %d/%d, expected 1/1", collected, total)
	}

	l.MovePlayer(V(-1, 0), false, true, true)
	if !l.Won() {
		t.Errorf("Won() = false after returning to end with all keys")
	}

	// Terminal: further moves do nothing.
	pos := l.PlayerPos()
	l.MovePlayer(V(-1, 0), false, true, true)
	if l.PlayerPos() != pos {
		t.Errorf("player moved after winning")
	}
}

func TestMovePlayerKeysMonotonic(t *testing.T) {
	l := buildLevel(t,
		"SK.K",
		"..K.",
		"...E",
	)
	prev := len(l.ExitKeys())
	moves := []Vec{V(1, 0), V(1, 0), V(0, 1), V(1, 0), V(0, -1), V(-1, 0), V(-2, 0), V(0, 2)}
	for _, d := range moves {
		l.MovePlayer(d, false, true, true)
		n := len(l.ExitKeys())
		if n > prev {
			t.Fatalf("exit keys grew from %d to %d", prev, n)
		}
		prev = n
	}
}

func TestMovePlayerPickups(t *testing.T) {
	l := buildLevel(t, "STGG.E")

	events := l.MovePlayer(V(1, 0), false, true, true)
	if !events.Has(EventPickedUpKeySensor) || !events.Has(EventPickup) {
		t.Errorf("events = %s, expected key sensor pickup", events)
	}

	events = l.MovePlayer(V(1, 0), false, true, true)
	if !events.Has(EventPickedUpGun) {
		t.Errorf("events = %s, expected gun pickup", events)
	}

	// Already holding a gun: the second one stays.
	events = l.MovePlayer(V(1, 0), true, true, true)
	if events.Has(EventPickedUpGun) {
		t.Errorf("events = %s, expected gun left while holding one", events)
	}
	if len(l.Guns()) != 1 {
		t.Errorf("Guns() = %v, expected one gun left", l.Guns())
	}

	// Collection disabled leaves pickups alone.
	l.Reset()
	events = l.MovePlayer(V(1, 0), false, false, true)
	if !events.Empty() || len(l.KeySensors()) != 1 {
		t.Errorf("events = %s sensors = %v, expected nothing collected", events, l.KeySensors())
	}
}

func TestMovePlayerIntoMonster(t *testing.T) {
	l := buildLevel(t, "S.M.E")
	l.MoveMonster() // spawn

	events := l.MovePlayer(V(2, 0), false, true, true)
	if !events.Has(EventMonsterCaught) {
		t.Errorf("events = %s, expected monster_caught", events)
	}
	if l.Killed() {
		t.Errorf("Killed() = true, expected caller to decide")
	}
}
