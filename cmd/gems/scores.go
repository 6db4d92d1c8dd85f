package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-gems/internal/games/gems"
	"github.com/vovakirdan/tui-gems/internal/platform/tui"
	"github.com/vovakirdan/tui-gems/internal/storage"
)

var (
	flagPlayer      string
	flagResetStage  bool
	flagResetScores bool
	flagAllScores   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores and stage records",
	Long: `Display the top 10 high scores (or all of them with --all) and a summary of stage progress.

High scores are shared by everyone using the database. Stage records are
per player: local play uses your own records, SSH players are listed by
their user name with --player.

Examples:
  gems scores
  gems scores --all
  gems scores --player alice
  gems scores --reset-progress
  gems scores --reset-scores`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagPlayer, "player", "", "SSH user name whose stage records to show")
	scoresCmd.Flags().BoolVar(&flagResetStage, "reset-progress", false, "Delete the stage records of the player")
	scoresCmd.Flags().BoolVar(&flagResetScores, "reset-scores", false, "Delete all shared high scores")
	scoresCmd.Flags().BoolVar(&flagAllScores, "all", false, "List every recorded score instead of the top 10")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	key := tui.RecordKey(gems.GameID, flagPlayer)
	if flagResetStage {
		if err := store.ResetProgress(key); err != nil {
			fmt.Fprintf(os.Stderr, "Error resetting progress: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Stage progress of %s reset.\n", playerName(flagPlayer))
		return
	}

	if flagResetScores {
		if err := store.ClearScores(gems.GameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("High scores cleared.")
		return
	}

	var scores []storage.ScoreEntry
	if flagAllScores {
		scores, err = store.AllScores(gems.GameID)
	} else {
		scores, err = store.TopScores(gems.GameID, 10)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores - Gems")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'gems play' to set the first high score!")
	} else {
		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, entry := range scores {
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	stats, err := store.GetGameStats(key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stage records: %v\n", err)
		os.Exit(1)
	}
	unlocked, err := store.HighestUnlockedStage(key, gems.New().StageCount())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving progress: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Printf("Progress - %s\n", playerName(flagPlayer))
	fmt.Println()
	fmt.Printf("  Stages cleared:  %d\n", stats.StagesCleared)
	fmt.Printf("  Stars:           %d\n", stats.TotalStars)
	fmt.Printf("  Next stage:      %d\n", unlocked)
}

// playerName labels a player in output.
func playerName(player string) string {
	if player == "" {
		return "local player"
	}
	return player
}
