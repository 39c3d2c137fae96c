package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/levels/formats"
	"github.com/vovakirdan/tui-maze/internal/maze"
)

// Glyphs drawn over the layout by the solve command.
const (
	glyphBestPath      = '*'
	glyphAlternatePath = 'o'
)

var flagMaxPaths int

var solveCmd = &cobra.Command{
	Use:   "solve <level>",
	Short: "Print a level with its solution paths",
	Long: `Prints the layout of a level with the shortest path from the start to
the exit marked '*' and tiles that only alternate paths use marked 'o'.

Examples:
  maze solve 03-labyrinth
  maze solve 03-labyrinth --paths 1`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().IntVar(&flagMaxPaths, "paths", maze.DefaultPathOptions().MaxPaths, "Maximum number of paths to find")
}

func runSolve(_ *cobra.Command, args []string) error {
	cleanup, err := setupLogger(false)
	if err != nil {
		return err
	}
	defer cleanup()

	lvls, err := loadLevels()
	if err != nil {
		return err
	}
	lvl, err := findLevel(lvls, args[0])
	if err != nil {
		return err
	}
	m, err := lvl.NewMaze()
	if err != nil {
		return err
	}

	opts := maze.DefaultPathOptions()
	opts.MaxPaths = flagMaxPaths
	paths := m.FindPossiblePathsWith(opts)

	fmt.Printf("%s - %s\n\n", lvl.ID, lvl.Name)
	if len(paths) == 0 {
		fmt.Println(strings.Join(formats.FormatLayout(m.Definition()), "\n"))
		fmt.Println()
		fmt.Println("No path from the start to the exit.")
		return nil
	}

	fmt.Println(strings.Join(overlayPaths(m, paths), "\n"))
	fmt.Println()
	fmt.Printf("Shortest path: %d steps\n", len(paths[0])-1)
	for i, p := range paths[1:] {
		fmt.Printf("Alternate %d:   %d steps\n", i+1, len(p)-1)
	}
	if keys := m.ExitKeys(); len(keys) > 0 {
		fmt.Printf("Keys to collect: %d\n", len(keys))
	}
	return nil
}

// overlayPaths marks solution tiles on the floor tiles of the layout.
func overlayPaths(m *maze.Level, paths [][]maze.Coord) []string {
	rows := formats.FormatLayout(m.Definition())
	grid := make([][]rune, len(rows))
	for y, r := range rows {
		grid[y] = []rune(r)
	}

	best, alternate := maze.HintTiles(paths)
	mark := func(tiles map[maze.Coord]struct{}, glyph rune) {
		for c := range tiles {
			if grid[c.Y][c.X] == formats.GlyphFloor {
				grid[c.Y][c.X] = glyph
			}
		}
	}
	mark(best, glyphBestPath)
	mark(alternate, glyphAlternatePath)

	out := make([]string, len(grid))
	for y, r := range grid {
		out[y] = string(r)
	}
	return out
}
