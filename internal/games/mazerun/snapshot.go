package mazerun

import "github.com/vovakirdan/tui-maze/internal/maze"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying  GameStateType = "playing"
	StateWaiting  GameStateType = "waiting" // level loaded, player has not moved
	StateEscaping GameStateType = "escaping"
	StateWon      GameStateType = "won"
	StateKilled   GameStateType = "killed"
	StatePaused   GameStateType = "paused"
	StateNoLevel  GameStateType = "no_level"
)

// Snapshot captures the game state for determinism tests and the
// spectator feed.
type Snapshot struct {
	Tick          uint64
	LevelID       string
	Player        maze.Vec
	Facing        maze.Vec
	Monster       *maze.Coord
	MonsterState  string
	KeysCollected int
	KeysTotal     int
	HasGun        bool
	Time          float64
	Moves         float64
	State         GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	if g.session == nil {
		return Snapshot{Tick: g.tick, State: StateNoLevel}
	}
	s := g.session
	l := s.level

	state := StatePlaying
	switch {
	case l.Won():
		state = StateWon
	case l.Killed():
		state = StateKilled
	case g.paused || g.resetPrompt:
		state = StatePaused
	case s.escape != nil:
		state = StateEscaping
	case !s.started:
		state = StateWaiting
	}

	got, total := l.KeysCollected()
	snap := Snapshot{
		Tick:          g.tick,
		LevelID:       l.ID(),
		Player:        l.PlayerPos(),
		Facing:        s.camera.Facing,
		MonsterState:  l.MonsterState().String(),
		KeysCollected: got,
		KeysTotal:     total,
		HasGun:        s.hasGun,
		Time:          s.time,
		Moves:         s.moves,
		State:         state,
	}
	if m, ok := l.Monster(); ok {
		snap.Monster = &m
	}
	return snap
}
