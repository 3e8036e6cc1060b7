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

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode and level interactively",
	Long: `Start in interactive menu mode.

Use arrow keys to pick a mode, left/right to pick a level and Enter to
start. After a battle you return to the menu.

Controls:
  Up/Down      - Choose mode
  Left/Right   - Choose level
  Enter/Space  - Start battle
  Tab          - Scoreboard
  Q            - Quit

Examples:
  tanks menu
  tanks menu --fps 30
  tanks menu --difficulty hard`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	choices, err := tui.LevelChoices(levels.NewLoader(flagLevelsDir))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tanks.SetConfigPath(flagConfig)
	tanks.SetDifficultyPreset(flagDifficulty)

	s := openSession()
	defer s.Close()

	cfg := runtimeConfig()
	levelID := ""

	for {
		result, err := tui.RunMenu(choices, levelID, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = result.Config

		if result.Quit {
			return
		}

		if result.WantsScoreboard {
			goBack, err := tui.RunScoreboard(s.store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if goBack {
				continue
			}
			return
		}

		levelID = result.LevelID
		tanks.SetLevel(levelID)

		game, err := registry.Create(result.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			return
		}

		backToMenu, err := tui.Run(game, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			return
		}
		if !backToMenu {
			return
		}
	}
}
