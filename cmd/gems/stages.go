package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-gems/internal/games/gems"
	"github.com/vovakirdan/tui-gems/internal/games/gems/core"
	"github.com/vovakirdan/tui-gems/internal/registry"
)

var (
	flagPage    int
	flagPerPage int
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "List stages and your progress",
	Long: `List stages with their grid size, target score, move budget and your best
result. Stages beyond the highest unlocked one are marked as locked.

Examples:
  gems stages
  gems stages --page 3
  gems stages --per-page 50`,
	Args: cobra.NoArgs,
	Run:  runStages,
}

var stageCmd = &cobra.Command{
	Use:   "stage <n>",
	Short: "Print a generated stage as YAML",
	Long: `Generate stage n exactly as the game does and print its settings, goals,
starting board and first possible swap as YAML.

Board glyphs: R Y B G P O are the colors, a "-" or "|" suffix marks a
striped gem, "*" a wrapped gem and "@" a color bomb.

Examples:
  gems stage 1
  gems stage 750`,
	Args: cobra.ExactArgs(1),
	RunE: runStage,
}

var hintCmd = &cobra.Command{
	Use:   "hint <n>",
	Short: "Print a possible swap for a generated stage",
	Args:  cobra.ExactArgs(1),
	RunE:  runHint,
}

func init() {
	stagesCmd.Flags().IntVar(&flagPage, "page", 1, "Page to show")
	stagesCmd.Flags().IntVar(&flagPerPage, "per-page", 20, "Stages per page")
}

func runStages(_ *cobra.Command, _ []string) {
	store := openStore()
	defer closeStore(store)

	game, err := registry.Create(gems.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	progress, err := loadProgress(store, game)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	perPage := max(flagPerPage, 1)
	pages := (progress.MaxStages + perPage - 1) / perPage
	page := min(max(flagPage, 1), pages)
	first := (page-1)*perPage + 1
	last := min(first+perPage-1, progress.MaxStages)

	fmt.Printf("Stages %d-%d of %d (page %d/%d)   Unlocked: %d   Stars: %d\n",
		first, last, progress.MaxStages, page, pages, progress.ContinueStage(), progress.TotalStars())
	fmt.Println()
	fmt.Printf("  %-5s  %-5s  %-6s  %-5s  %-5s  %-8s  %s\n", "Stage", "Grid", "Target", "Moves", "Stars", "Best", "Tries")
	fmt.Printf("  %-5s  %-5s  %-6s  %-5s  %-5s  %-8s  %s\n", "-----", "----", "------", "-----", "-----", "----", "-----")

	for stage := first; stage <= last; stage++ {
		size := core.GridSizeFor(stage)
		grid := fmt.Sprintf("%dx%d", size, size)
		if !progress.IsUnlocked(stage) {
			fmt.Printf("  %-5d  %-5s  %-6d  %-5d  locked\n", stage, grid, core.TargetScoreFor(stage), core.MaxMovesFor(stage))
			continue
		}

		rec := progress.Records[stage]
		fmt.Printf("  %-5d  %-5s  %-6d  %-5d  %-5s  %-8d  %d\n",
			stage, grid, core.TargetScoreFor(stage), core.MaxMovesFor(stage),
			starString(rec.Stars), rec.BestScore, rec.Attempts)
	}

	if page < pages {
		fmt.Println()
		fmt.Printf("Run 'gems stages --page %d' for more.\n", page+1)
	}
}

// stageDump is the YAML shape of a generated stage.
type stageDump struct {
	Stage       int        `yaml:"stage"`
	Rows        int        `yaml:"rows"`
	Cols        int        `yaml:"cols"`
	TargetScore int        `yaml:"target_score"`
	MaxMoves    int        `yaml:"max_moves"`
	Goals       []goalDump `yaml:"goals"`
	Board       []string   `yaml:"board"`
	Hint        *hintDump  `yaml:"hint,omitempty"`
}

type goalDump struct {
	Type   string `yaml:"type"`
	Target int    `yaml:"target"`
	Color  string `yaml:"color,omitempty"`
}

type hintDump struct {
	From [2]int `yaml:"from,flow"`
	To   [2]int `yaml:"to,flow"`
}

func runStage(_ *cobra.Command, args []string) error {
	stage, err := parseStage(args[0])
	if err != nil {
		return err
	}

	cfg := core.GenerateStage(stage)
	dump := stageDump{
		Stage:       cfg.StageNumber,
		Rows:        cfg.Rows,
		Cols:        cfg.Cols,
		TargetScore: cfg.TargetScore,
		MaxMoves:    cfg.MaxMoves,
		Board:       cfg.InitialBoard.Lines(),
	}
	for _, g := range cfg.Goals {
		gd := goalDump{Type: string(g.Type), Target: g.Target}
		if g.GemColor != nil {
			gd.Color = g.GemColor.String()
		}
		dump.Goals = append(dump.Goals, gd)
	}
	if h, ok := core.FindPossibleMatches(cfg.InitialBoard); ok {
		dump.Hint = &hintDump{
			From: [2]int{h.From.Row, h.From.Col},
			To:   [2]int{h.To.Row, h.To.Col},
		}
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(dump); err != nil {
		return fmt.Errorf("encode stage %d: %w", stage, err)
	}
	return enc.Close()
}

func runHint(_ *cobra.Command, args []string) error {
	stage, err := parseStage(args[0])
	if err != nil {
		return err
	}

	cfg := core.GenerateStage(stage)
	h, ok := core.FindPossibleMatches(cfg.InitialBoard)
	if !ok {
		fmt.Printf("Stage %d has no possible swap.\n", stage)
		return nil
	}

	fmt.Printf("Stage %d: swap %v with %v\n", stage, h.From, h.To)
	fmt.Println()
	for row, line := range cfg.InitialBoard.Lines() {
		marker := "  "
		if row == h.From.Row || row == h.To.Row {
			marker = "> "
		}
		fmt.Println(marker + line)
	}
	return nil
}

// parseStage parses and validates a stage number argument.
func parseStage(arg string) (int, error) {
	stage, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid stage %q: %w", arg, err)
	}
	if stage < 1 || stage > core.MaxStages {
		return 0, fmt.Errorf("stage %d out of range 1-%d", stage, core.MaxStages)
	}
	return stage, nil
}

// starString renders a star rating for plain text output.
func starString(stars int) string {
	stars = max(0, min(stars, core.MaxStars))
	return strings.Repeat("*", stars) + strings.Repeat(".", core.MaxStars-stars)
}
