package core_test

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-gems/internal/games/gems/core"
)

func TestPrioritizeSpecialGemsLinear(t *testing.T) {
	testCases := []struct {
		name     string
		rows     []string
		expected []core.SpecialGemInfo
	}{
		{
			name:     "three makes nothing",
			rows:     []string{"RRRB"},
			expected: nil,
		},
		{
			name:     "four in a row makes horizontal striped at index 2",
			rows:     []string{"RRRR"},
			expected: []core.SpecialGemInfo{{Pos: core.P(0, 2), Type: core.GemStriped, Stripe: core.Horizontal}},
		},
		{
			name:     "four in a column makes vertical striped",
			rows:     []string{"Y", "Y", "Y", "Y", "B"},
			expected: []core.SpecialGemInfo{{Pos: core.P(2, 0), Type: core.GemStriped, Stripe: core.Vertical}},
		},
		{
			name:     "five makes color bomb at the center",
			rows:     []string{"GGGGG"},
			expected: []core.SpecialGemInfo{{Pos: core.P(0, 2), Type: core.GemColorBomb}},
		},
		{
			name:     "six makes color bomb at index 3",
			rows:     []string{"PPPPPP"},
			expected: []core.SpecialGemInfo{{Pos: core.P(0, 3), Type: core.GemColorBomb}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := core.PrioritizeSpecialGems(core.FindMatches(core.MustParseBoard(tc.rows...)))
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestPrioritizeSpecialGemsCrossWins(t *testing.T) {
	// A row of five crossed by a column of three at (0,2).
	b := core.MustParseBoard(
		"RRRRR",
		"YBRBY",
		"BYRYB",
	)

	got := core.PrioritizeSpecialGems(core.FindMatches(b))
	want := []core.SpecialGemInfo{{Pos: core.P(0, 2), Type: core.GemWrapped}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFindCrossMatchesLShape(t *testing.T) {
	b := core.MustParseBoard(
		"RRR",
		"RYB",
		"RBY",
	)

	got := core.FindCrossMatches(core.FindMatches(b))
	want := []core.SpecialGemInfo{{Pos: core.P(0, 0), Type: core.GemWrapped}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFindCrossMatchesHandBuilt(t *testing.T) {
	matches := []core.Match{
		{Dir: core.Horizontal, Positions: []core.Position{core.P(1, 0), core.P(1, 1), core.P(1, 2)}},
		{Dir: core.Vertical, Positions: []core.Position{core.P(0, 1), core.P(1, 1), core.P(2, 1)}},
	}

	got := core.FindCrossMatches(matches)
	if len(got) != 1 || got[0].Pos != core.P(1, 1) || got[0].Type != core.GemWrapped {
		t.Errorf("expected wrapped at (1,1), got %v", got)
	}
}

func TestFindCrossMatchesParallelRuns(t *testing.T) {
	b := core.MustParseBoard(
		"RRR",
		"YYY",
	)

	if got := core.FindCrossMatches(core.FindMatches(b)); len(got) != 0 {
		t.Errorf("parallel runs should not cross, got %v", got)
	}
}

func TestApplySpecialGems(t *testing.T) {
	b := core.MustParseBoard("RRRR")
	specials := []core.SpecialGemInfo{
		{Pos: core.P(0, 2), Type: core.GemStriped, Stripe: core.Vertical},
		{Pos: core.P(5, 5), Type: core.GemWrapped},
	}

	out := core.ApplySpecialGems(b, specials)

	g := out.Get(core.P(0, 2))
	if g.Type != core.GemStriped || g.Stripe != core.Vertical {
		t.Errorf("expected vertical striped gem, got %v %v", g.Type, g.Stripe)
	}
	if g.Color != core.ColorRed {
		t.Errorf("expected color to be kept, got %v", g.Color)
	}
	if b.Get(core.P(0, 2)).Type != core.GemNormal {
		t.Error("ApplySpecialGems must not modify its input")
	}
}
