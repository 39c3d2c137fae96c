package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/levels"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

// LevelSelectModel lets the player choose the level to start on.
type LevelSelectModel struct {
	levels    []levels.Level
	best      map[string]storage.Best
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selected  string
	chosen    bool
	quitting  bool
	back      bool
}

// NewLevelSelectModel creates a level selector. best may be nil.
func NewLevelSelectModel(lvls []levels.Level, best map[string]storage.Best, width, height int) LevelSelectModel {
	return LevelSelectModel{
		levels:    lvls,
		best:      best,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m LevelSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m LevelSelectModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.levels)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if len(m.levels) > 0 {
			m.selected = m.levels[m.cursor].ID
			m.chosen = true
			return m, tea.Quit
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the level list with the best record of each level.
func (m LevelSelectModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	if len(m.levels) == 0 {
		b.WriteString(centerText("No levels found", m.width))
		b.WriteString("\n")
	}

	for i, l := range m.levels {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		name := l.Name
		if name == "" {
			name = l.ID
		}
		record := "--"
		if best, ok := m.best[l.ID]; ok {
			record = fmt.Sprintf("%.1fs / %.1f", best.Time, best.Moves)
		}
		line := fmt.Sprintf("%s%2d. %-24s %s", cursor, i+1, name, record)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the chosen level ID and whether one was chosen.
func (m LevelSelectModel) Selected() (string, bool) {
	return m.selected, m.chosen
}

// IsQuitting returns true if user wants to quit.
func (m LevelSelectModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelSelectModel) WantsBack() bool {
	return m.back
}

// LevelSelection is the result of the level selector.
type LevelSelection struct {
	LevelID string
	Back    bool
	Quit    bool
}

// RunLevelSelector shows the level list and returns the player's choice.
func RunLevelSelector(lvls []levels.Level, store *storage.Store, cfg core.RuntimeConfig) (LevelSelection, error) {
	var best map[string]storage.Best
	if store != nil {
		var err error
		if best, err = store.BestRuns(); err != nil {
			return LevelSelection{}, err
		}
	}

	p := tea.NewProgram(NewLevelSelectModel(lvls, best, cfg.ScreenW, cfg.ScreenH), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return LevelSelection{}, err
	}

	m, ok := finalModel.(LevelSelectModel)
	if !ok || m.IsQuitting() {
		return LevelSelection{Quit: true}, nil
	}
	if m.WantsBack() {
		return LevelSelection{Back: true}, nil
	}
	id, chosen := m.Selected()
	if !chosen {
		return LevelSelection{Quit: true}, nil
	}
	return LevelSelection{LevelID: id}, nil
}
