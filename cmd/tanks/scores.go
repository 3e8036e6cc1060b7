package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tanks/internal/platform/tui"
	"github.com/vovakirdan/tui-tanks/internal/registry"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresTUI   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show battle records",
	Long: `Display the best battles of a mode with its win/loss summary.
Without a mode the most recent battles of every mode are listed.

Examples:
  tanks scores tanks
  tanks scores tanks_survival --limit 20
  tanks scores --tui
  tanks scores tanks --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of records to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse records in the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the records of the mode")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresTUI {
		cfg := runtimeConfig()
		if _, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	if len(args) == 0 {
		printRecent(store)
		return
	}

	mode := args[0]
	if !registry.Exists(mode) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
		fmt.Fprintln(os.Stderr, "Run 'tanks list' to see available modes.")
		return
	}

	if flagScoresClear {
		if err := store.ClearResults(mode); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Printf("Cleared records of %s.\n", mode)
		return
	}

	records, err := store.TopScores(mode, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving records: %v\n", err)
		return
	}

	fmt.Printf("Best battles - %s\n", mode)
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No battles recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tanks play %s' to set the first record!\n", mode)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-12s  %s\n", "Rank", "Score", "Result", "Level", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-12s  %s\n", "----", "-----", "------", "-----", "----")
	for i, r := range records {
		fmt.Printf("  %-4d  %-8d  %-6s  %-12s  %s\n",
			i+1, r.Score, r.Outcome, r.Level, r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	stats, err := store.GetModeStats(mode)
	if err == nil {
		fmt.Println()
		fmt.Printf("Battles: %d  Wins: %d  Losses: %d  Best: %d  Avg: %.0f\n",
			stats.Battles, stats.Wins, stats.Losses, stats.HighScore, stats.AvgScore)
	}
}

func printRecent(store *storage.Store) {
	records, err := store.RecentResults(flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving records: %v\n", err)
		return
	}

	fmt.Println("Recent battles")
	fmt.Println()
	if len(records) == 0 {
		fmt.Println("No battles recorded yet.")
		return
	}

	fmt.Printf("  %-16s  %-8s  %-6s  %-12s  %s\n", "Mode", "Score", "Result", "Level", "Date")
	fmt.Printf("  %-16s  %-8s  %-6s  %-12s  %s\n", "----", "-----", "------", "-----", "----")
	for _, r := range records {
		fmt.Printf("  %-16s  %-8d  %-6s  %-12s  %s\n",
			r.Mode, r.Score, r.Outcome, r.Level, r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
}
