package core_test

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-gems/internal/games/gems/core"
)

// newState builds a state around a fixed board.
func newState(t *testing.T, gravity *core.Gravity, moves, target int, rows ...string) core.GameState {
	t.Helper()
	b, err := core.ParseBoard(rows...)
	if err != nil {
		t.Fatalf("ParseBoard failed: %v", err)
	}
	cfg := core.StageConfig{
		StageNumber:  1,
		Rows:         b.Rows,
		Cols:         b.Cols,
		TargetScore:  target,
		MaxMoves:     moves,
		Goals:        []core.Goal{{Type: core.GoalScore, Target: target}},
		InitialBoard: b,
	}
	return core.NewGameState(cfg, gravity)
}

var noMatchBoard = []string{
	"RYB",
	"GPO",
	"BRY",
}

func TestSwapGemsRejected(t *testing.T) {
	base := newState(t, seq(0), 10, 1000, noMatchBoard...)

	over := base
	over.IsGameOver = true
	noMoves := base
	noMoves.Moves = 0
	paused := base.TogglePause()

	testCases := []struct {
		name     string
		state    core.GameState
		from, to core.Position
	}{
		{"not adjacent", base, core.P(0, 0), core.P(0, 2)},
		{"diagonal", base, core.P(0, 0), core.P(1, 1)},
		{"same cell", base, core.P(1, 1), core.P(1, 1)},
		{"off the board", base, core.P(0, 2), core.P(0, 3)},
		{"no match", base, core.P(0, 0), core.P(0, 1)},
		{"game over", over, core.P(0, 0), core.P(0, 1)},
		{"no moves left", noMoves, core.P(0, 0), core.P(0, 1)},
		{"paused", paused, core.P(0, 0), core.P(0, 1)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next, report := tc.state.SwapGems(tc.from, tc.to)
			if report.Applied {
				t.Error("expected swap to be rejected")
			}
			if next.Board != tc.state.Board {
				t.Error("rejected swap should return the same board")
			}
			if !reflect.DeepEqual(next, tc.state) {
				t.Error("rejected swap should return the state unchanged")
			}
		})
	}
}

func TestSwapGemsCreatesMatch(t *testing.T) {
	st := newState(t, seq(0), 10, 1000,
		"RRYR",
		"GPRB",
		"YBGP",
	)
	p := core.P(0, 0)
	st.SelectedGem = &p
	before := st.Board.Clone()

	next, report := st.SwapGems(core.P(0, 2), core.P(1, 2))
	if !report.Applied {
		t.Fatal("expected swap to be applied")
	}
	if next.Moves != 9 {
		t.Errorf("expected 9 moves, got %d", next.Moves)
	}
	if !next.IsAnimating || next.Phase() != core.PhaseSettling {
		t.Errorf("expected settling, got %v", next.Phase())
	}
	if next.SelectedGem != nil {
		t.Error("selection should be cleared")
	}
	if next.Score != 0 {
		t.Errorf("swap alone should not score, got %d", next.Score)
	}

	// A run of four leaves a horizontal striped gem at index 2.
	want := []core.SpecialGemInfo{{Pos: core.P(0, 2), Type: core.GemStriped, Stripe: core.Horizontal}}
	if !reflect.DeepEqual(report.Specials, want) {
		t.Errorf("expected specials %v, got %v", want, report.Specials)
	}
	if g := next.Board.Get(core.P(0, 2)); g.Type != core.GemStriped || g.Stripe != core.Horizontal {
		t.Errorf("expected striped gem on the board, got %v", g.Glyph())
	}
	if !st.Board.Equal(before) {
		t.Error("SwapGems must not modify the previous board")
	}
}

func TestSwapGemsWhileSettling(t *testing.T) {
	st := newState(t, seq(0), 10, 1000,
		"RRYR",
		"GPRB",
		"YBGP",
	)
	st.IsAnimating = true

	next, report := st.SwapGems(core.P(0, 2), core.P(1, 2))
	if !report.Applied || next.Moves != 9 {
		t.Error("swap should be accepted while a cascade is settling")
	}
}

func TestProcessMatchesSingleStep(t *testing.T) {
	st := newState(t, seq(1, 2, 3), 10, 1000,
		"GPO",
		"POG",
		"RRR",
	)
	st.IsAnimating = true

	next, report := st.ProcessMatches()

	want := core.MustParseBoard(
		"YBG",
		"GPO",
		"POG",
	)
	if !next.Board.Equal(want) {
		t.Errorf("expected\n%v\ngot\n%v", want, next.Board)
	}
	if next.Score != 30 || report.Gained != 30 || report.BaseScore != 30 {
		t.Errorf("expected 30 points, got score=%d gained=%d base=%d", next.Score, report.Gained, report.BaseScore)
	}
	if next.Goals[0].Current != 30 {
		t.Errorf("expected goal at 30, got %d", next.Goals[0].Current)
	}
	if st.Goals[0].Current != 0 {
		t.Error("previous state's goals must not change")
	}
	if report.HasNewMatches || next.ComboCount != 0 || next.IsAnimating {
		t.Errorf("expected settled step, got combo=%d animating=%v", next.ComboCount, next.IsAnimating)
	}
	if len(report.Removed) != 3 || len(report.Drops) != 9 {
		t.Errorf("expected 3 removed and 9 drops, got %d and %d", len(report.Removed), len(report.Drops))
	}
	if !next.Board.IsSettled() {
		t.Error("board should be settled after a step")
	}

	again, report := next.ProcessMatches()
	if report.Applied || !reflect.DeepEqual(again, next) {
		t.Error("ProcessMatches should be a no-op when not settling")
	}
}

func TestProcessMatchesComboChain(t *testing.T) {
	// The first refill lines up three reds, the second does not.
	st := newState(t, seq(0, 0, 0, 1, 2, 3), 10, 1000,
		"GPO",
		"POG",
		"RRR",
	)
	st.IsAnimating = true

	st, report := st.ProcessMatches()
	if !report.HasNewMatches || st.ComboCount != 1 {
		t.Fatalf("expected combo 1, got %d", st.ComboCount)
	}
	if report.ComboBonus != 3 || st.Score != 33 {
		t.Errorf("expected 30 + 3 bonus, got score=%d bonus=%d", st.Score, report.ComboBonus)
	}
	if !st.IsAnimating {
		t.Fatal("cascade should continue")
	}
	if !st.Board.IsSettled() {
		t.Error("board should be settled between steps")
	}

	st, report = st.ProcessMatches()
	if report.HasNewMatches || st.ComboCount != 0 {
		t.Errorf("combo should reset once no new match appears, got %d", st.ComboCount)
	}
	if st.Score != 63 {
		t.Errorf("expected 63 points, got %d", st.Score)
	}
	if st.IsAnimating || st.Phase() != core.PhaseIdle {
		t.Errorf("expected idle, got %v", st.Phase())
	}
}

func TestProcessMatchesActivatesSpecials(t *testing.T) {
	st := newState(t, seq(1, 2, 1, 2, 4), 10, 1000,
		"G P O",
		"P O G",
		"R R| R",
	)
	st.IsAnimating = true

	next, report := st.ProcessMatches()

	if !reflect.DeepEqual(report.Activated, []core.Position{core.P(2, 1)}) {
		t.Errorf("expected the striped gem to fire, got %v", report.Activated)
	}
	if report.SpecialScore != 60 || report.BaseScore != 30 {
		t.Errorf("expected base 30 and special 60, got %d and %d", report.BaseScore, report.SpecialScore)
	}
	if len(report.Removed) != 5 {
		t.Errorf("expected row and column removed (5 cells), got %d", len(report.Removed))
	}
	if next.Score != 90 {
		t.Errorf("expected 90 points, got %d", next.Score)
	}
	if next.Board.Count() != 9 || !next.Board.IsSettled() {
		t.Error("board should be refilled and settled")
	}
}

func TestProcessMatchesTerminalStates(t *testing.T) {
	t.Run("cleared", func(t *testing.T) {
		st := newState(t, seq(0, 0, 0), 5, 30, "GPO", "POG", "RRR")
		st.IsAnimating = true

		next, report := st.ProcessMatches()
		if !report.HasNewMatches {
			t.Fatal("refill should form a new match")
		}
		if next.IsAnimating {
			t.Error("cascade should stop once the stage is cleared")
		}
		if !next.IsCleared() || next.Phase() != core.PhaseCleared {
			t.Errorf("expected cleared, got %v", next.Phase())
		}
		if next.Goals[0].Current != 30 {
			t.Errorf("goal should clamp at target, got %d", next.Goals[0].Current)
		}
	})

	t.Run("game over", func(t *testing.T) {
		st := newState(t, seq(1, 2, 3), 0, 1000, "GPO", "POG", "RRR")
		st.IsAnimating = true

		next, _ := st.ProcessMatches()
		if !next.IsGameOver || next.Phase() != core.PhaseGameOver {
			t.Errorf("expected game over, got %v", next.Phase())
		}
		if next.IsAnimating {
			t.Error("game over should stop the cascade")
		}
	})

	t.Run("game over is sticky", func(t *testing.T) {
		st := newState(t, seq(1, 2, 3), 3, 1000, "GPO", "POG", "RRR")
		st.IsAnimating = true
		st.IsGameOver = true

		next, _ := st.ProcessMatches()
		if !next.IsGameOver {
			t.Error("game over must not be cleared by a step")
		}
	})
}

func TestProcessMatchesNoMatchEndsSettling(t *testing.T) {
	st := newState(t, seq(0), 10, 1000, noMatchBoard...)
	st.IsAnimating = true
	st.ComboCount = 2

	next, _ := st.ProcessMatches()
	if next.IsAnimating {
		t.Error("expected settling to end")
	}
	if !next.Board.Equal(st.Board) || next.Score != st.Score {
		t.Error("a step without matches should not touch board or score")
	}
}

func TestColorBombPairClearsBoard(t *testing.T) {
	sizes := []struct {
		stage int
		cells int
	}{
		{1, 81},
		{150, 64},
		{700, 36},
	}

	for _, sz := range sizes {
		cfg := core.GenerateStage(sz.stage)
		b := cfg.InitialBoard.Clone()
		b.Get(core.P(0, 0)).Type = core.GemColorBomb
		b.Get(core.P(0, 1)).Type = core.GemColorBomb
		cfg.InitialBoard = b

		st := core.NewGameState(cfg, core.NewGravity(core.NewRand(3), b.MaxID()))
		st.Score = 500

		next, report := st.SwapGems(core.P(0, 0), core.P(0, 1))
		if !report.Applied || !report.ComboSwap {
			t.Fatalf("stage %d: expected a combo swap", sz.stage)
		}
		if len(report.Removed) != sz.cells {
			t.Errorf("stage %d: expected %d cells removed, got %d", sz.stage, sz.cells, len(report.Removed))
		}
		if next.Score != 500+sz.cells*100 {
			t.Errorf("stage %d: expected score %d, got %d", sz.stage, 500+sz.cells*100, next.Score)
		}
		if next.Moves != cfg.MaxMoves-1 {
			t.Errorf("stage %d: expected %d moves, got %d", sz.stage, cfg.MaxMoves-1, next.Moves)
		}
		if next.ComboCount != 0 || next.SelectedGem != nil {
			t.Errorf("stage %d: combo swap should reset combo and selection", sz.stage)
		}
		if next.Board.Count() != sz.cells || !next.Board.IsSettled() {
			t.Errorf("stage %d: board should be refilled", sz.stage)
		}
	}
}

func TestComboSwapOnLastMove(t *testing.T) {
	st := newState(t, seq(1, 2, 3), 1, 100000,
		"R@ Y@ B",
		"G P O",
		"B R Y",
	)

	next, report := st.SwapGems(core.P(0, 0), core.P(0, 1))
	if !report.ComboSwap {
		t.Fatal("expected a combo swap")
	}
	if !next.IsGameOver || next.IsAnimating {
		t.Errorf("expected game over after the last move, got %v", next.Phase())
	}
}

func TestSelectGem(t *testing.T) {
	st := newState(t, seq(0), 10, 1000, noMatchBoard...)

	st = st.SelectGem(1, 1)
	if st.SelectedGem == nil || *st.SelectedGem != core.P(1, 1) {
		t.Fatalf("expected (1,1) selected, got %v", st.SelectedGem)
	}

	st = st.SelectGem(0, 2)
	if *st.SelectedGem != core.P(0, 2) {
		t.Errorf("expected selection to move, got %v", *st.SelectedGem)
	}

	st = st.SelectGem(0, 2)
	if st.SelectedGem != nil {
		t.Error("selecting the same cell should clear it")
	}

	if got := st.SelectGem(5, 5); got.SelectedGem != nil {
		t.Error("off-board selection should be ignored")
	}

	st.IsGameOver = true
	if got := st.SelectGem(0, 0); got.SelectedGem != nil {
		t.Error("selection should be ignored when the game is over")
	}
}

func TestTogglePause(t *testing.T) {
	st := newState(t, seq(0), 10, 1000, noMatchBoard...)

	st = st.TogglePause()
	if !st.IsPaused {
		t.Fatal("expected paused")
	}
	if got := st.SelectGem(0, 0); got.SelectedGem != nil {
		t.Error("selection should be ignored while paused")
	}
	st = st.TogglePause()
	if st.IsPaused {
		t.Error("expected resumed")
	}

	st.IsGameOver = true
	if st.TogglePause().IsPaused {
		t.Error("pause should be ignored when the game is over")
	}
}

func TestNewGameStateCopiesStage(t *testing.T) {
	cfg := core.GenerateStage(5)
	st := core.NewGameState(cfg, nil)

	if st.Board == cfg.InitialBoard || !st.Board.Equal(cfg.InitialBoard) {
		t.Error("state should own a copy of the initial board")
	}
	if st.Moves != cfg.MaxMoves || st.CurrentStage != 5 {
		t.Errorf("unexpected state: moves=%d stage=%d", st.Moves, st.CurrentStage)
	}
	if st.Phase() != core.PhaseIdle {
		t.Errorf("expected idle, got %v", st.Phase())
	}

	st.Goals[0].Current = 10
	if cfg.Goals[0].Current != 0 {
		t.Error("state goals should not alias the stage goals")
	}
}

func TestClearedGoals(t *testing.T) {
	testCases := []struct {
		name    string
		goals   []core.Goal
		cleared bool
	}{
		{"no goals", nil, true},
		{"unmet", []core.Goal{{Type: core.GoalScore, Target: 100, Current: 40}}, false},
		{"met", []core.Goal{{Type: core.GoalScore, Target: 100, Current: 100}}, true},
		{"one of two met", []core.Goal{
			{Type: core.GoalScore, Target: 100, Current: 100},
			{Type: core.GoalCollect, Target: 10, Current: 3},
		}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			st := core.GameState{Goals: tc.goals}
			if got := st.IsCleared(); got != tc.cleared {
				t.Errorf("expected cleared=%v, got %v", tc.cleared, got)
			}
		})
	}
}

func TestProcessMatchesSharesRefillSource(t *testing.T) {
	st := newState(t, core.NewGravity(core.NewRand(5), 100), 10, 100000,
		"RRRB",
		"GPYB",
		"YBGP",
	)
	st.IsAnimating = true
	before := st.Board.Clone()

	first, r1 := st.ProcessMatches()
	second, r2 := st.ProcessMatches()

	if !st.Board.Equal(before) {
		t.Error("the receiver's board should not change")
	}
	if first.Board == st.Board || second.Board == st.Board {
		t.Error("each step should produce its own board")
	}
	if !reflect.DeepEqual(r1.Removed, r2.Removed) || r1.BaseScore != r2.BaseScore {
		t.Errorf("removal should not depend on the refill: %v vs %v", r1.Removed, r2.Removed)
	}
}
