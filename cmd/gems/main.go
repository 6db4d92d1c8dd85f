// gems is a match-3 gem puzzle for the terminal.
//
// Usage:
//
//	gems menu              - Main menu: continue, pick a stage, high scores
//	gems play              - Play the next unlocked stage directly
//	gems stages            - List stages with saved progress
//	gems stage <n>         - Print a generated stage as YAML
//	gems hint <n>          - Print a possible swap for a generated stage
//	gems scores            - Show high scores and stage records
//	gems serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30, env GEMS_FPS)
//	--seed <value>        - Set refill seed for reproducible cascades
//	--db <path>           - Set database path (default: ~/.gems/scores.db, env GEMS_DB)
//	--config <path>       - Load a custom gems.yaml
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-gems/internal/config"
	"github.com/vovakirdan/tui-gems/internal/games/gems"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

// envFlags maps flags to the environment variables that provide their defaults.
var envFlags = map[string]string{
	"db":       "GEMS_DB",
	"fps":      "GEMS_FPS",
	"ssh":      "GEMS_SSH_ADDR",
	"host-key": "GEMS_SSH_HOST_KEY",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gems",
	Short: "Gems - a match-3 puzzle in your terminal",
	Long: `Gems is a match-3 puzzle for the terminal. Swap neighbouring gems to line
up three or more of a color, chain cascades, build special gems and clear
a thousand generated stages.

Available commands:
  menu     - Interactive main menu
  play     - Play a stage directly
  stages   - List stages and your progress
  stage    - Print a generated stage
  hint     - Print a possible swap for a stage
  scores   - View high scores and stage records
  serve    - Start SSH server for remote play

Settings can also come from a .env file in the working directory:
  GEMS_DB, GEMS_FPS, GEMS_SSH_ADDR, GEMS_SSH_HOST_KEY

Examples:
  gems menu
  gems play --stage 12
  gems stage 250
  gems serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Refill seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gems/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom gems config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(stagesCmd)
	rootCmd.AddCommand(stageCmd)
	rootCmd.AddCommand(hintCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads .env defaults and hands shared flags to the game.
func setup(cmd *cobra.Command, _ []string) error {
	// A missing .env file is fine.
	_ = godotenv.Load()

	if err := applyEnv(cmd); err != nil {
		return err
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if _, ok := config.ParsePreset(flagDifficulty); !ok {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}

	gems.SetConfigPath(flagConfig)
	gems.SetDifficultyPreset(flagDifficulty)
	return nil
}

// applyEnv fills flags the user did not set from the environment.
func applyEnv(cmd *cobra.Command) error {
	for name, env := range envFlags {
		f := cmd.Flags().Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		v, ok := os.LookupEnv(env)
		if !ok || v == "" {
			continue
		}
		if err := f.Value.Set(v); err != nil {
			return fmt.Errorf("invalid %s=%q: %w", env, v, err)
		}
	}
	return nil
}
