package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List playable levels",
	Long: `Shows the built-in levels plus those found in --levels-dir.
Every level file is parsed, so a malformed one is reported here.

Examples:
  tanks levels
  tanks levels --levels-dir ./levels`,
	Run: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	all, err := levels.NewLoader(flagLevelsDir).LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Available levels:")
	fmt.Println()
	fmt.Printf("  %-12s  %-24s  %-7s  %-7s  %s\n", "ID", "Name", "Size", "Enemies", "Source")
	fmt.Printf("  %-12s  %-24s  %-7s  %-7s  %s\n", "--", "----", "----", "-------", "------")

	for _, l := range all {
		source := "built-in"
		if l.FilePath != "" {
			source = l.FilePath
		}
		size := fmt.Sprintf("%dx%d", l.Layout.Cols, l.Layout.Rows)
		enemies := "config"
		if l.Enemies > 0 {
			enemies = fmt.Sprint(l.Enemies)
		}
		fmt.Printf("  %-12s  %-24s  %-7s  %-7s  %s\n", l.ID, l.Name, size, enemies, source)
	}

	fmt.Println()
	fmt.Println("Run 'tanks play --level <id>' to battle on a level.")
}
