package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/games/mazerun"
	"github.com/vovakirdan/tui-maze/internal/levels"
	"github.com/vovakirdan/tui-maze/internal/platform/tui"
	"github.com/vovakirdan/tui-maze/internal/registry"
	"github.com/vovakirdan/tui-maze/internal/spectate"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

var (
	flagDifficulty string
	flagCheat      bool
	flagSpectate   string
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play the maze",
	Long: `Start playing. With a level ID the game starts on that level,
otherwise a menu lets you pick the mode and level.

Controls:
  W/S, Up/Down     - Walk forward / back (Shift runs, Alt crawls)
  A/D, Left/Right  - Turn
  Q/E              - Strafe
  M                - Map
  C                - Compass
  F                - Flag the current tile
  Space            - Fire the gun
  X                - Place a temporary wall
  [ / ]            - Previous / next level
  R                - Reset the level
  P                - Pause (B returns to the menu while paused)
  Ctrl+S           - Screenshot
  Ctrl+C, Ctrl+Q   - Quit

Difficulty options:
  easy, normal, hard, fixed

Examples:
  maze play
  maze play 01-first-steps
  maze play --difficulty hard
  maze play --cheat
  maze play --spectate :8080`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagCheat, "cheat", false, "Play with the live map and solutions (runs are not ranked)")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a WebSocket spectator feed on this address")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cleanup, err := setupLogger(true)
	if err != nil {
		return err
	}
	defer cleanup()

	lvls, err := loadLevels()
	if err != nil {
		return err
	}
	mazerun.SetDifficultyPreset(flagDifficulty)

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	opts := tui.Options{Logger: log.Default()}
	if flagSpectate != "" {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		hub := spectate.NewHub(log.Default())
		go func() {
			if err := spectate.ListenAndServe(ctx, flagSpectate, hub); err != nil {
				log.Error("spectator feed stopped", "error", err)
			}
		}()
		opts.Publisher = hub
		opts.Session = "local-" + uuid.NewString()[:8]
	}

	if len(args) == 1 {
		if _, err := findLevel(lvls, args[0]); err != nil {
			return err
		}
		mazerun.SetStartLevel(args[0])
		_, err := playGame(gameID(flagCheat), store, cfg, opts)
		return err
	}
	return runMenuLoop(lvls, store, cfg, opts)
}

func gameID(cheat bool) string {
	if cheat {
		return "maze_cheat"
	}
	return "maze"
}

func playGame(id string, store *storage.Store, cfg core.RuntimeConfig, opts tui.Options) (tui.Outcome, error) {
	game, err := registry.CreateLevelGame(id)
	if err != nil {
		return tui.Outcome{Config: cfg}, err
	}
	cfg.Seed = time.Now().UnixNano()
	out, err := tui.Run(game, store, cfg, opts)
	if err != nil {
		return out, fmt.Errorf("error running game: %w", err)
	}
	return out, nil
}

// runMenuLoop shows the menu, the scoreboard and the level selector until
// the player quits.
func runMenuLoop(lvls []levels.Level, store *storage.Store, cfg core.RuntimeConfig, opts tui.Options) error {
	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, lvls, "", cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue
			}
			return nil
		}

		sel, err := tui.RunLevelSelector(lvls, store, cfg)
		if err != nil {
			return err
		}
		switch {
		case sel.Quit:
			return nil
		case sel.Back:
			continue
		}

		mazerun.SetStartLevel(sel.LevelID)
		out, err := playGame(menuResult.GameID, store, cfg, opts)
		if err != nil {
			return err
		}
		cfg = out.Config
		if !out.BackToMenu {
			return nil
		}
	}
}
