// tanks is a terminal tank battle: defend the base, destroy the enemy
// quota, play locally or host battles over SSH.
//
// Usage:
//
//	tanks list              - List game modes
//	tanks levels            - List playable levels
//	tanks play [mode]       - Play a battle (default mode: tanks)
//	tanks menu              - Pick mode and level interactively
//	tanks serve             - Start SSH server for remote play
//	tanks scores [mode]     - Show battle records
//	tanks config            - Print the default config YAML
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible battles
//	--db <path>          - Set database path (default: ~/.tanks/results.db)
//	--levels-dir <path>  - Add level files to the built-in set
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/vovakirdan/tui-tanks/internal/games/tanks"
)

var (
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagLevelsDir string
	flagLogPath   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tanks",
	Short: "Tanks - a tank battle in your terminal",
	Long: `Tanks is a terminal tank battle. Guard your base, destroy every
enemy tank of the level and pick up bonuses on the way.

Available commands:
  list     - Show game modes
  levels   - Show playable levels
  play     - Start a battle directly
  menu     - Interactive mode and level picker
  serve    - Start SSH server for remote play
  scores   - View battle records
  config   - Print the default configuration

Examples:
  tanks play
  tanks play tanks_survival --level level2
  tanks menu
  tanks serve --ssh :2222
  tanks scores tanks`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tanks/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels-dir", "", "Directory with extra level files")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "~/.tanks/tanks.log", "Path to the log file of local battles")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}
