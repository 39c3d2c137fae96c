package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the loaded levels",
	Long: `Shows every level with its size, keys, monster and whether the exit
can be reached.

Examples:
  maze levels
  maze levels --levels ./my-levels`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	cleanup, err := setupLogger(false)
	if err != nil {
		return err
	}
	defer cleanup()

	lvls, err := loadLevels()
	if err != nil {
		return err
	}

	maxIDLen := 2 // "ID" header
	for _, l := range lvls {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Printf("  %-*s  %-24s  %-7s  %-4s  %-7s  %s\n", maxIDLen, "ID", "Name", "Size", "Keys", "Monster", "Shortest")
	fmt.Printf("  %-*s  %-24s  %-7s  %-4s  %-7s  %s\n", maxIDLen, "--", "----", "----", "----", "-------", "--------")

	for _, l := range lvls {
		m, err := l.NewMaze()
		if err != nil {
			fmt.Printf("  %-*s  invalid: %v\n", maxIDLen, l.ID, err)
			continue
		}

		_, keys := m.KeysCollected()
		monster := "no"
		if _, ok := m.MonsterStart(); ok {
			monster = "yes"
		}
		shortest := "unsolvable"
		if paths := m.FindPossiblePaths(); len(paths) > 0 {
			shortest = fmt.Sprintf("%d steps", len(paths[0])-1)
		}

		fmt.Printf("  %-*s  %-24s  %-7s  %-4d  %-7s  %s\n",
			maxIDLen, l.ID, l.Name, fmt.Sprintf("%dx%d", m.Width(), m.Height()), keys, monster, shortest)
	}

	fmt.Println()
	fmt.Println("Run 'maze play <id>' to play a level.")
	return nil
}
