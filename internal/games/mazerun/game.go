// Package mazerun is the playable first-person maze game. It wraps a
// maze.Level in the timers of a run (monster cadence, escape presses,
// compass charge, items) and draws the ray-cast view into a core.Screen.
package mazerun

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/levels"
	"github.com/vovakirdan/tui-maze/internal/registry"
)

// Mode selects the normal game or the cheat game with a live map.
type Mode string

const (
	ModeNormal Mode = "normal"
	ModeCheat  Mode = "cheat"
)

// configPollTicks is how often, in ticks, the config file is checked.
const configPollTicks = 30

// Best holds the best values recorded for one level.
type Best struct {
	Time  float64
	Moves float64
}

// Game implements the maze game.
type Game struct {
	mode     Mode
	rng      *rand.Rand
	tick     uint64
	tickRate int

	cfg      config.MazeConfig
	reloader *config.Reloader

	levels   []levels.Level
	index    int
	sessions []*session // per level, created on first visit
	session  *session
	best     map[string]Best

	holds map[core.Action]float64 // seconds each movement key stays held

	flicker     bool // lights stutter this tick
	showMap     bool
	resetPrompt bool
	paused      bool
	loadError   string
}

// Package-level variables for config and level selection, set by the CLI
// before the game is created.
var (
	configPath       string
	difficultyPreset string
	levelSource      []levels.Level
	startLevel       string
)

// SetConfigPath sets the config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetLevels replaces the built-in levels.
func SetLevels(lvls []levels.Level) {
	levelSource = lvls
}

// SetStartLevel selects the level to start on by ID. Empty means the first.
func SetStartLevel(id string) {
	startLevel = id
}

// New creates a normal maze game.
func New() *Game {
	return &Game{mode: ModeNormal}
}

// NewCheat creates a maze game with the map and solutions always available.
func NewCheat() *Game {
	return &Game{mode: ModeCheat}
}

func init() {
	registry.Register("maze", func() registry.Game {
		return New()
	})
	registry.Register("maze_cheat", func() registry.Game {
		return NewCheat()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeCheat {
		return "maze_cheat"
	}
	return "maze"
}

// Mode reports whether this is the normal or the cheat game.
func (g *Game) Mode() Mode {
	return g.mode
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeCheat {
		return "Maze (Cheat)"
	}
	return "Maze"
}

// Reset loads configuration and levels and starts the selected level.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.tick = 0
	g.tickRate = rc.TickRate
	g.holds = make(map[core.Action]float64)
	g.flicker = false
	g.showMap = false
	g.resetPrompt = false
	g.paused = false
	g.loadError = ""
	if g.best == nil {
		g.best = make(map[string]Best)
	}

	cfg, source, err := config.LoadMaze(configPath)
	if err != nil {
		g.loadError = err.Error()
		cfg, source = config.DefaultMazeConfig(), config.SourceEmbedded
	}
	g.cfg = g.applyMode(applyPreset(cfg))
	g.reloader = config.NewReloader(source, cfg)

	g.levels = levelSource
	if len(g.levels) == 0 {
		lvls, lerr := levels.Builtin().LoadAll()
		if lerr != nil {
			g.loadError = lerr.Error()
		}
		g.levels = lvls
	}
	g.sessions = make([]*session, len(g.levels))

	g.index = 0
	for i, l := range g.levels {
		if l.ID == startLevel {
			g.index = i
		}
	}
	g.loadLevel()
}

// applyPreset applies the --difficulty preset, if one was given.
func applyPreset(cfg config.MazeConfig) config.MazeConfig {
	if difficultyPreset == "" {
		return cfg
	}
	if preset, err := config.ParsePreset(difficultyPreset); err == nil {
		config.ApplyMazePreset(&cfg, preset)
	}
	return cfg
}

// applyMode forces the cheat settings in cheat mode.
func (g *Game) applyMode(cfg config.MazeConfig) config.MazeConfig {
	if g.mode == ModeCheat {
		cfg.Cheats.Map = true
		cfg.Cheats.Solutions = true
	}
	return cfg
}

// loadLevel makes the level at g.index current. A level keeps its run
// while the player visits other levels.
func (g *Game) loadLevel() {
	g.session = nil
	g.showMap = false
	g.resetPrompt = false
	if len(g.levels) == 0 {
		if g.loadError == "" {
			g.loadError = "no levels available"
		}
		return
	}
	if s := g.sessions[g.index]; s != nil {
		s.configure(g.cfg)
		g.session = s
		return
	}
	m, err := g.levels[g.index].NewMaze()
	if err != nil {
		g.loadError = err.Error()
		return
	}
	g.session = newSession(m, g.cfg)
	g.sessions[g.index] = g.session
}

// SwitchLevel moves delta levels forward or back, stopping at the first
// and last level.
func (g *Game) SwitchLevel(delta int) {
	if len(g.levels) == 0 {
		return
	}
	next := core.Clamp(g.index+delta, 0, len(g.levels)-1)
	if next == g.index {
		if g.session != nil {
			if delta < 0 {
				g.session.say("this is the first level")
			} else {
				g.session.say("this is the last level")
			}
		}
		return
	}
	g.index = next
	clear(g.holds)
	g.loadLevel()
}

// SeedBest records a previously stored best so the HUD can show it.
func (g *Game) SeedBest(levelID string, time, moves float64) {
	if g.best == nil {
		g.best = make(map[string]Best)
	}
	g.recordBest(levelID, time, moves)
}

// BestFor returns the best values known for a level.
func (g *Game) BestFor(levelID string) (Best, bool) {
	b, ok := g.best[levelID]
	return b, ok
}

// recordBest keeps the lowest time and the lowest move count separately.
func (g *Game) recordBest(levelID string, time, moves float64) {
	b, ok := g.best[levelID]
	if !ok {
		g.best[levelID] = Best{Time: time, Moves: moves}
		return
	}
	b.Time = min(b.Time, time)
	b.Moves = min(b.Moves, moves)
	g.best[levelID] = b
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.flicker = false
	g.pollConfig()

	if g.session == nil {
		return core.StepResult{State: g.State()}
	}

	if g.resetPrompt {
		switch {
		case in.Has(core.ActionConfirm):
			g.restart()
		case in.Has(core.ActionCancel), in.Has(core.ActionReset):
			g.resetPrompt = false
		}
		return core.StepResult{State: g.State()}
	}

	switch {
	case in.Has(core.ActionPrevLevel):
		g.SwitchLevel(-1)
		return core.StepResult{State: g.State()}
	case in.Has(core.ActionNextLevel):
		g.SwitchLevel(1)
		return core.StepResult{State: g.State()}
	case in.Has(core.ActionReset):
		if g.session.level.Finished() {
			g.restart()
		} else {
			g.resetPrompt = true
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionMap) {
		g.showMap = !g.showMap
	}

	dt := 1.0 / float64(max(g.tickRate, 1))
	ctl := g.updateHolds(in, dt)
	mapBlocks := g.showMap && !g.cfg.Cheats.Map

	finished := g.session.step(in, ctl, mapBlocks, dt)
	g.flicker = g.flickering()
	if finished != nil && finished.Won {
		g.recordBest(finished.LevelID, finished.Time, finished.Moves)
	}
	return core.StepResult{State: g.State(), Finished: finished}
}

func (g *Game) restart() {
	g.resetPrompt = false
	g.showMap = false
	clear(g.holds)
	g.session.reset()
}

// updateHolds turns key presses into held movement. A press keeps the
// action active for key_hold_time seconds so terminal key repeat reads as
// a held key.
func (g *Game) updateHolds(in core.InputFrame, dt float64) controls {
	hold := g.cfg.Movement.KeyHoldTime
	for a := range in.Actions {
		if a.IsMovement() || a == core.ActionRun || a == core.ActionCrawl {
			g.holds[a] = hold
		}
	}

	held := func(a core.Action) bool {
		return g.holds[a] > 0
	}
	ctl := controls{
		forward:     held(core.ActionForward),
		backward:    held(core.ActionBackward),
		turnLeft:    held(core.ActionTurnLeft),
		turnRight:   held(core.ActionTurnRight),
		strafeLeft:  held(core.ActionStrafeLeft),
		strafeRight: held(core.ActionStrafeRight),
		run:         held(core.ActionRun),
		crawl:       held(core.ActionCrawl),
	}

	for a, left := range g.holds {
		if left -= dt; left <= 0 {
			delete(g.holds, a)
		} else {
			g.holds[a] = left
		}
	}
	return ctl
}

// pollConfig reloads the config file when it changes on disk.
func (g *Game) pollConfig() {
	if g.reloader == nil || g.tick%configPollTicks != 0 {
		return
	}
	cfg, changed, err := g.reloader.Poll()
	if err != nil {
		log.Warn("config not reloaded", "path", g.reloader.Path(), "error", err)
		if g.session != nil {
			g.session.say(fmt.Sprintf("config not reloaded: %v", err))
		}
		return
	}
	if !changed {
		return
	}
	log.Info("config reloaded", "path", g.reloader.Path())
	g.cfg = g.applyMode(applyPreset(cfg))
	if g.session != nil {
		g.session.configure(g.cfg)
		g.session.say("config reloaded")
	}
}

// Config returns the active configuration.
func (g *Game) Config() config.MazeConfig {
	return g.cfg
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{Paused: g.paused}
	}
	l := g.session.level
	return core.GameState{
		LevelID:  l.ID(),
		Time:     g.session.time,
		Moves:    g.session.moves,
		Won:      l.Won(),
		Killed:   l.Killed(),
		GameOver: l.Finished(),
		Paused:   g.paused || g.resetPrompt,
	}
}

// Levels returns the IDs and names of the loaded levels.
func (g *Game) Levels() []levels.Level {
	return g.levels
}
