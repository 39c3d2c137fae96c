package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-maze/internal/levels"
	"github.com/vovakirdan/tui-maze/internal/platform/tui"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

var (
	flagScoresTUI   bool
	flagScoresLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show the best runs",
	Long: `Display the fastest winning runs of a level, or of every level when
none is given. Runs played with --cheat are never ranked.

Examples:
  maze scores
  maze scores 02-the-hunt
  maze scores --tui`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse the scores in an interactive screen")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Runs to show per level")
}

func runScores(_ *cobra.Command, args []string) error {
	cleanup, err := setupLogger(flagScoresTUI)
	if err != nil {
		return err
	}
	defer cleanup()

	lvls, err := loadLevels()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		lvl, err := findLevel(lvls, args[0])
		if err != nil {
			return err
		}
		if !flagScoresTUI {
			lvls = []levels.Level{lvl}
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open runs database: %w", err)
	}
	defer store.Close()

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		focus := ""
		if len(args) == 1 {
			focus = args[0]
		}
		_, err := tui.RunScoreboard(store, lvls, focus, width, height)
		return err
	}

	for i, l := range lvls {
		if i > 0 {
			fmt.Println()
		}
		if err := printLevelScores(store, l); err != nil {
			return err
		}
	}
	return nil
}

func printLevelScores(store *storage.Store, l levels.Level) error {
	runs, err := store.TopRuns(l.ID, flagScoresLimit)
	if err != nil {
		return err
	}
	stats, err := store.GetLevelStats(l.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Best runs - %s (%s)\n", l.Name, l.ID)
	if len(runs) == 0 {
		fmt.Println("  No winning runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-7s  %s\n", "Rank", "Time", "Moves", "Date")
	fmt.Printf("  %-4s  %-8s  %-7s  %s\n", "----", "----", "-----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8s  %-7.1f  %s\n", i+1, fmt.Sprintf("%.1fs", r.Time), r.Moves, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if best, ok, err := store.BestRun(l.ID); err == nil && ok {
		fmt.Printf("  Best time %.1fs, fewest moves %.1f\n", best.Time, best.Moves)
	}
	fmt.Printf("  %d attempts, %d wins, %d deaths\n", stats.Attempts, stats.Wins, stats.Deaths())
	return nil
}
