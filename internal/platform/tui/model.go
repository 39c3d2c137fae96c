package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/games/mazerun"
	"github.com/vovakirdan/tui-maze/internal/registry"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

// publishEvery is how often, in ticks, a snapshot goes to spectators.
const publishEvery = 3

// Publisher receives game snapshots for live spectating. Forget is called
// once a session is over.
type Publisher interface {
	Publish(session string, snap mazerun.Snapshot)
	Forget(session string)
}

type snapshotter interface {
	Snapshot() mazerun.Snapshot
}

type moder interface {
	Mode() mazerun.Mode
}

// Options configures optional parts of a game session.
type Options struct {
	Publisher Publisher
	Session   string // spectator session name
	Logger    *log.Logger
}

// Model is the Bubble Tea model for running the maze game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       Options
	logger     *log.Logger
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	ticks      uint64
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game. Stored best
// records are handed to the game so its HUD can show them.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		opts:       opts,
		logger:     logger,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
	m.seedBests()
	return m
}

func (m Model) seedBests() {
	lg, ok := m.game.(registry.LevelGame)
	if !ok || m.store == nil {
		return
	}
	bests, err := m.store.BestRuns()
	if err != nil {
		m.logger.Warn("cannot load best runs", "error", err)
		return
	}
	for id, b := range bests {
		lg.SeedBest(id, b.Time, b.Moves)
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "b":
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			return m, tea.Quit
		}
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events. The game draws into
// whatever screen it is given, so the level keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.ticks++

	if result.Finished != nil {
		m.saveRun(*result.Finished)
	}
	m.publish(result.Finished != nil)

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

func (m Model) saveRun(run core.RunResult) {
	if m.store == nil {
		return
	}
	cheat := false
	if g, ok := m.game.(moder); ok {
		cheat = g.Mode() == mazerun.ModeCheat
	}
	id, err := m.store.SaveRun(run, cheat)
	if err != nil {
		m.logger.Error("cannot save run", "level", run.LevelID, "error", err)
		return
	}
	m.logger.Debug("run saved", "id", id, "level", run.LevelID, "won", run.Won, "time", run.Time)
}

// publish sends a snapshot every few ticks, and always on the tick a run
// ends.
func (m Model) publish(force bool) {
	if m.opts.Publisher == nil || (!force && m.ticks%publishEvery != 0) {
		return
	}
	if s, ok := m.game.(snapshotter); ok {
		m.opts.Publisher.Publish(m.opts.Session, s.Snapshot())
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".maze", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the player left the game for the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Outcome is how a game session ended.
type Outcome struct {
	BackToMenu bool
	Config     core.RuntimeConfig
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) (Outcome, error) {
	model := NewModel(game, store, cfg, opts)
	if opts.Publisher != nil {
		defer opts.Publisher.Forget(opts.Session)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return Outcome{Config: cfg}, err
	}
	m, ok := finalModel.(Model)
	if !ok {
		return Outcome{Config: cfg}, nil
	}
	return Outcome{BackToMenu: m.BackToMenu(), Config: m.config}, nil
}
