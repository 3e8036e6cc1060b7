package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/levels"
	"github.com/vovakirdan/tui-tanks/internal/platform/tui"
	"github.com/vovakirdan/tui-tanks/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a battle",
	Long: `Start a battle in the given mode (tanks or tanks_survival).

Controls:
  Arrows/WASD  - Drive (keeps driving briefly after release)
  X            - Stop
  Space/F      - Fire
  C            - Cycle tank type
  P            - Pause
  R            - Restart (after the battle ends)
  Esc/B        - Leave (when paused or over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  tanks play
  tanks play --level level2
  tanks play tanks_survival --difficulty hard
  tanks play --config ./my-tanks.yaml
  tanks play --levels-dir ./levels --level arena`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	for _, cmd := range []*cobra.Command{playCmd, menuCmd} {
		cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
		cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	}
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Level ID (default from config)")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "tanks"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tanks list' to see available modes.")
		os.Exit(1)
	}

	// A malformed level aborts before the terminal is taken over
	loader := levels.NewLoader(flagLevelsDir)
	if flagLevel != "" {
		if _, err := loader.LoadByID(flagLevel); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	} else if _, err := loader.LoadAll(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tanks.SetConfigPath(flagConfig)
	tanks.SetDifficultyPreset(flagDifficulty)
	tanks.SetLevel(flagLevel)

	s := openSession()

	game, err := registry.Create(gameID)
	if err != nil {
		s.Close()
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	_, runErr := tui.Run(game, runtimeConfig())
	s.Close()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
