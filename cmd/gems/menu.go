package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-gems/internal/core"
	"github.com/vovakirdan/tui-gems/internal/games/gems"
	"github.com/vovakirdan/tui-gems/internal/platform/tui"
	"github.com/vovakirdan/tui-gems/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the main menu",
	Long: `Start in interactive menu mode.

Continue plays the next unlocked stage, Select Stage lists every stage with
its best star rating, High Scores shows the scoreboard. After a stage you
return to the menu.

Controls:
  Up/Down/j/k      - Navigate
  Left/Right       - Page through stages
  Enter/Space      - Select
  Tab              - High scores
  Esc/B            - Back
  Q                - Quit

Examples:
  gems menu
  gems menu --fps 60
  gems menu --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	defer closeStore(store)

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	for {
		game, err := registry.Create(gems.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			return
		}

		progress, err := loadProgress(store, game)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}

		result, err := tui.RunMenu(progress, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running menu: %v\n", err)
			return
		}
		cfg = result.Config

		switch result.Choice {
		case tui.MenuChoiceScoreboard:
			goBack, err := tui.RunScoreboard(store, game.ID(), tui.RecordKey(game.ID(), ""), cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
			}
			if !goBack {
				return
			}

		case tui.MenuChoicePlay:
			play := cfg
			play.Stage = result.Stage
			quit, err := tui.Run(game, store, play)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			}
			if quit {
				return
			}

		default:
			return
		}
	}
}
