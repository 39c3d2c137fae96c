package maze

import "testing"

func TestMoveMonsterLifecycle(t *testing.T) {
	l := buildLevel(t,
		"S....",
		"##.##",
		"M...E",
	)

	if l.MonsterState() != MonsterDormant {
		t.Fatalf("MonsterState() = %s, expected dormant", l.MonsterState())
	}
	if _, ok := l.Monster(); ok {
		t.Errorf("Monster() present before first move")
	}

	if l.MoveMonster() {
		t.Errorf("MoveMonster() caught player on spawn")
	}
	if m, ok := l.Monster(); !ok || m != C(0, 2) {
		t.Errorf("Monster() = %s, %v; expected (0,2), true", m, ok)
	}

	// (0,2) -> (1,2) -> (2,2) -> (2,1) -> (2,0) -> (1,0) -> (0,0)
	expected := []Coord{C(1, 2), C(2, 2), C(2, 1), C(2, 0), C(1, 0), C(0, 0)}
	for i, want := range expected {
		caught := l.MoveMonster()
		m, _ := l.Monster()
		if m != want {
			t.Fatalf("step %d monster = %s, expected %s", i, m, want)
		}
		if caught != (want == C(0, 0)) {
			t.Errorf("step %d caught = %v", i, caught)
		}
	}

	l.RemoveMonster()
	if l.MoveMonster() {
		t.Errorf("removed monster caught player")
	}
	if _, ok := l.Monster(); ok {
		t.Errorf("removed monster respawned")
	}
}

func TestMoveMonsterDisabled(t *testing.T) {
	l := buildLevel(t, "S..E")
	if l.MonsterState() != MonsterDisabled {
		t.Errorf("MonsterState() = %s, expected disabled", l.MonsterState())
	}
	if l.MoveMonster() {
		t.Errorf("MoveMonster() = true without a monster")
	}

	// A monster start without a wait time is also disabled.
	def := NewDefinition("nowait", 3, 1)
	def.Start, def.End = C(0, 0), C(2, 0)
	m := C(1, 0)
	def.MonsterStart = &m
	l2, err := NewLevel(def)
	if err != nil {
		t.Fatalf("NewLevel() error = %v", err)
	}
	if l2.MonsterState() != MonsterDisabled {
		t.Errorf("MonsterState() = %s, expected disabled", l2.MonsterState())
	}
}

func TestMoveMonsterNoPathStays(t *testing.T) {
	l := buildLevel(t,
		"S.#M",
		"..#E",
	)
	l.MoveMonster()
	l.MoveMonster()
	if m, _ := l.Monster(); m != C(3, 0) {
		t.Errorf("monster = %s, expected to stay at (3,0)", m)
	}
}

func TestMonsterStepDeterministic(t *testing.T) {
	layout := []string{
		"S.....",
		"......",
		"..##..",
		"......",
		".....M",
	}
	first := buildLevel(t, layout...)
	first.MoveMonster()
	want, ok := first.NextMonsterStep()
	if !ok {
		t.Fatalf("NextMonsterStep() found no path")
	}

	for i := 0; i < 10; i++ {
		l := buildLevel(t, layout...)
		l.MoveMonster()
		got, _ := l.NextMonsterStep()
		if got != want {
			t.Fatalf("run %d next step = %s, expected %s", i, got, want)
		}
		if again, _ := first.NextMonsterStep(); again != want {
			t.Fatalf("repeated query = %s, expected %s", again, want)
		}
	}
	// From (5,4) toward (0,0): north is tried first.
	if want != C(5, 3) {
		t.Errorf("next step = %s, expected (5,3)", want)
	}
}

func TestMonsterIgnoresPlayerOnlyBarriers(t *testing.T) {
	l := buildLevel(t, "S..M.E")
	l.SetFlag(C(2, 0), AttrPlayerCollide, true)
	l.MoveMonster()
	l.MoveMonster()
	if m, _ := l.Monster(); m != C(2, 0) {
		t.Errorf("monster = %s, expected to pass player-only barrier into (2,0)", m)
	}
}
