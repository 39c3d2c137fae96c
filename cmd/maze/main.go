// maze is a first-person ray-cast maze game for the terminal.
//
// Usage:
//
//	maze play [level]        - Play, starting at a level or from the menu
//	maze levels              - List the loaded levels
//	maze solve <level>       - Print a level with its solution paths
//	maze scores [level]      - Show the best runs
//	maze serve               - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 30)
//	--db <path>      - Set database path (default: ~/.maze/runs.db)
//	--levels <dir>   - Load levels from a directory instead of the built-in set
//	--config <path>  - Use a specific game config YAML
//	--log <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/games/mazerun"
	"github.com/vovakirdan/tui-maze/internal/levels"
)

var (
	// Global flags
	flagFPS     int
	flagDBPath  string
	flagLevels  string
	flagConfig  string
	flagLogPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "maze",
	Short: "Maze - find the exit before the monster finds you",
	Long: `Maze is a first-person maze game drawn with ray casting in your terminal.

Collect the keys, reach the exit, and stay away from the monster.

Available commands:
  play     - Play the game
  levels   - List levels
  solve    - Show the solution of a level
  scores   - View the best runs
  serve    - Start SSH server for remote play

Examples:
  maze play
  maze play 02-the-hunt --difficulty hard
  maze solve 03-labyrinth
  maze serve --ssh :2222 --spectate :8080`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.maze/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory of level files (default: built-in levels)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// setupLogger configures the default logger. Full-screen commands discard
// logs unless --log names a file, so the terminal is left to the game.
func setupLogger(fullScreen bool) (func(), error) {
	var out io.Writer = os.Stderr
	cleanup := func() {}

	switch {
	case flagLogPath != "":
		f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return cleanup, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		cleanup = func() { f.Close() }
	case fullScreen:
		out = io.Discard
	}

	log.SetDefault(log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "maze",
	}))
	return cleanup, nil
}

// loadLevels loads --levels or the built-in set and hands them to the game.
func loadLevels() ([]levels.Level, error) {
	var (
		lvls []levels.Level
		err  error
	)
	if flagLevels != "" {
		lvls, err = levels.NewLoader(flagLevels).LoadAllStrict()
		if err != nil && len(lvls) == 0 {
			return nil, fmt.Errorf("cannot load levels from %s: %w", flagLevels, err)
		}
		if err != nil {
			log.Warn("some level files were skipped", "error", err)
		}
	} else {
		lvls, err = levels.Builtin().LoadAll()
		if err != nil {
			return nil, fmt.Errorf("cannot load built-in levels: %w", err)
		}
	}
	if len(lvls) == 0 {
		return nil, fmt.Errorf("no levels found")
	}

	mazerun.SetLevels(lvls)
	mazerun.SetConfigPath(flagConfig)
	return lvls, nil
}

// findLevel returns the level with the given ID.
func findLevel(lvls []levels.Level, id string) (levels.Level, error) {
	for _, l := range lvls {
		if l.ID == id {
			return l, nil
		}
	}
	return levels.Level{}, fmt.Errorf("unknown level %q, run 'maze levels' to see available levels", id)
}
