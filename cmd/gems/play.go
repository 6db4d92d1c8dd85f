package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-gems/internal/core"
	"github.com/vovakirdan/tui-gems/internal/games/gems"
	"github.com/vovakirdan/tui-gems/internal/platform/tui"
	"github.com/vovakirdan/tui-gems/internal/registry"
	"github.com/vovakirdan/tui-gems/internal/storage"
)

var flagStage int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a stage",
	Long: `Start playing without the menu. By default the next unlocked stage is
played; --stage picks another unlocked one.

Controls:
  Arrows/WASD/HJKL - Move the cursor
  Enter/Space      - Select a gem, then a neighbour to swap
  ?/I              - Show a possible swap
  P                - Pause
  R                - Retry the stage
  N                - Next stage (after a clear)
  Esc/B            - Drop the selection, leave when paused or finished
  Q/Ctrl+C         - Quit
  Ctrl+S           - Save a screenshot to ~/.gems/screenshots

Difficulty options:
  easy   - Slow cascades, hints shown when idle
  normal - Cascades speed up over the stages
  hard   - Fast cascades, no idle hints
  fixed  - No progression, stays at config's initial level

Examples:
  gems play
  gems play --stage 40
  gems play --difficulty hard
  gems play --seed 42 --config ./my-gems.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagStage, "stage", 0, "Stage to play (0 = next unlocked)")
}

func runPlay(_ *cobra.Command, _ []string) {
	store := openStore()
	defer closeStore(store)

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Stage:    flagStage,
	}

	game, err := registry.Create(gems.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	if cfg.Stage == 0 {
		if p, err := loadProgress(store, game); err == nil {
			cfg.Stage = p.ContinueStage()
		}
	}

	if _, err := tui.Run(game, store, cfg); err != nil {
		closeStore(store)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// openStore opens the scores database. The game still works without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// closeStore closes a store opened by openStore.
func closeStore(store *storage.Store) {
	if store != nil {
		store.Close()
	}
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (width, height int) {
	width, height = 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

// loadProgress reads the local player's progress for a game.
func loadProgress(store *storage.Store, game registry.Game) (tui.Progress, error) {
	maxStages := 1
	if r, ok := game.(registry.StageReporter); ok {
		maxStages = r.StageCount()
	}
	return tui.LoadProgress(store, tui.RecordKey(game.ID(), ""), maxStages)
}
