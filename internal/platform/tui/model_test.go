package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/games/mazerun"
	"github.com/vovakirdan/tui-maze/internal/levels"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

// fakeGame finishes a run on the tick given by finishOn.
type fakeGame struct {
	mode     mazerun.Mode
	state    core.GameState
	finishOn int
	steps    int
	resets   int
	seeded   map[string]mazerun.Best
	lastIn   []core.Action
}

func (g *fakeGame) ID() string                 { return "maze" }
func (g *fakeGame) Title() string              { return "Maze" }
func (g *fakeGame) Reset(core.RuntimeConfig)   { g.resets++ }
func (g *fakeGame) Render(s *core.Screen)      { s.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState      { return g.state }
func (g *fakeGame) Mode() mazerun.Mode         { return g.mode }
func (g *fakeGame) SwitchLevel(int)            {}
func (g *fakeGame) Snapshot() mazerun.Snapshot { return mazerun.Snapshot{Tick: uint64(g.steps)} }

func (g *fakeGame) SeedBest(id string, t, m float64) {
	if g.seeded == nil {
		g.seeded = make(map[string]mazerun.Best)
	}
	g.seeded[id] = mazerun.Best{Time: t, Moves: m}
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.lastIn = g.lastIn[:0]
	for a := range in.Actions {
		g.lastIn = append(g.lastIn, a)
	}
	res := core.StepResult{State: g.state}
	if g.steps == g.finishOn {
		res.Finished = &core.RunResult{LevelID: "lvl01", Won: true, Time: 4.5, Moves: 12}
	}
	return res
}

type fakePublisher struct {
	snaps []mazerun.Snapshot
}

func (p *fakePublisher) Publish(_ string, snap mazerun.Snapshot) {
	p.snaps = append(p.snaps, snap)
}

func (p *fakePublisher) Forget(string) {}

var testRuntime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1}

func quietOptions() Options {
	return Options{Logger: log.New(io.Discard)}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	next, cmd := m.Update(TickMsg(time.Now()))
	if cmd == nil {
		t.Fatalf("tick returned no follow-up command")
	}
	return next.(Model)
}

func sendKey(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestModelSavesFinishedRun(t *testing.T) {
	tests := []struct {
		name  string
		mode  mazerun.Mode
		cheat bool
	}{
		{"normal", mazerun.ModeNormal, false},
		{"cheat", mazerun.ModeCheat, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := openStore(t)
			game := &fakeGame{mode: tt.mode, finishOn: 2}
			m := NewModel(game, store, testRuntime, quietOptions())

			m = tick(t, m)
			m = tick(t, m)
			m = tick(t, m)

			runs, err := store.AllRuns("lvl01")
			if err != nil {
				t.Fatalf("AllRuns() failed: %v", err)
			}
			if len(runs) != 1 {
				t.Fatalf("Expected 1 saved run, got %d", len(runs))
			}
			if runs[0].Cheat != tt.cheat || !runs[0].Won || runs[0].Time != 4.5 {
				t.Errorf("saved run = %+v, expected cheat %v", runs[0], tt.cheat)
			}
		})
	}
}

func TestModelSeedsBests(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveRun(core.RunResult{LevelID: "lvl01", Won: true, Time: 9, Moves: 20}, false); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	game := &fakeGame{}
	NewModel(game, store, testRuntime, quietOptions())

	if got := game.seeded["lvl01"]; got != (mazerun.Best{Time: 9, Moves: 20}) {
		t.Errorf("seeded best = %+v, expected time 9 and moves 20", got)
	}
}

func TestModelForwardsKeys(t *testing.T) {
	game := &fakeGame{}
	m := NewModel(game, nil, testRuntime, quietOptions())

	m, _ = sendKey(m, runeKey('W'))
	m = tick(t, m)

	if len(game.lastIn) != 2 {
		t.Errorf("Step() input = %v, expected Forward and Run", game.lastIn)
	}

	// The frame is cleared after each tick.
	tick(t, m)
	if len(game.lastIn) != 0 {
		t.Errorf("Step() input = %v, expected empty frame", game.lastIn)
	}
}

func TestModelBackToMenu(t *testing.T) {
	game := &fakeGame{}
	m := NewModel(game, nil, testRuntime, quietOptions())
	m = tick(t, m)

	m, _ = sendKey(m, runeKey('b'))
	if m.BackToMenu() {
		t.Fatalf("BackToMenu() = true while playing")
	}

	game.state.Paused = true
	m = tick(t, m)
	m, cmd := sendKey(m, runeKey('b'))
	if !m.BackToMenu() || cmd == nil {
		t.Errorf("BackToMenu() = %v, expected true with a quit command", m.BackToMenu())
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&fakeGame{}, nil, testRuntime, quietOptions())
	m, cmd := sendKey(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.IsQuitting() || cmd == nil {
		t.Errorf("IsQuitting() = %v after ctrl+c", m.IsQuitting())
	}
	if m.View() != "" {
		t.Errorf("View() after quit = %q, expected empty", m.View())
	}
}

func TestModelResizeKeepsLevel(t *testing.T) {
	game := &fakeGame{}
	m := NewModel(game, nil, testRuntime, quietOptions())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	if game.resets != 0 {
		t.Errorf("Reset() called %d times on resize, expected 0", game.resets)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d, expected 100x30", m.screen.Width(), m.screen.Height())
	}
}

func TestModelPublishes(t *testing.T) {
	pub := &fakePublisher{}
	game := &fakeGame{finishOn: 4}
	opts := quietOptions()
	opts.Publisher = pub
	opts.Session = "s1"
	m := NewModel(game, nil, testRuntime, opts)

	for range 4 {
		m = tick(t, m)
	}

	// Tick 3 on the cadence, tick 4 because the run finished.
	if len(pub.snaps) != 2 {
		t.Fatalf("Publish() called %d times, expected 2", len(pub.snaps))
	}
	if pub.snaps[0].Tick != 3 || pub.snaps[1].Tick != 4 {
		t.Errorf("published ticks = %d, %d, expected 3, 4", pub.snaps[0].Tick, pub.snaps[1].Tick)
	}
}

func TestLevelSelectModel(t *testing.T) {
	lvls := []levels.Level{{ID: "lvl01", Name: "First"}, {ID: "lvl02", Name: "Second"}}
	best := map[string]storage.Best{"lvl02": {LevelID: "lvl02", Time: 7.3, Moves: 18}}
	m := NewLevelSelectModel(lvls, best, 80, 24)

	view := m.View()
	if !strings.Contains(view, "Second") || !strings.Contains(view, "7.3s / 18.0") {
		t.Errorf("View() = %q, expected level names and best record", view)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(LevelSelectModel)

	id, ok := m.Selected()
	if !ok || id != "lvl02" {
		t.Errorf("Selected() = %q, %v, expected lvl02", id, ok)
	}
}

func TestSessionModelReturnsToMenu(t *testing.T) {
	s := NewSessionModel(nil, nil, testRuntime, quietOptions())

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyTab})
	s = next.(SessionModel)
	if s.scoreboard == nil {
		t.Fatalf("Tab did not open the scoreboard")
	}

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyEscape})
	s = next.(SessionModel)
	if s.scoreboard != nil || s.quitting {
		t.Errorf("Esc on the scoreboard did not return to the menu")
	}
	if !strings.Contains(s.View(), "M A Z E") {
		t.Errorf("View() = %q, expected the menu", s.View())
	}
}
