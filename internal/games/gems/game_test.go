package gems

import (
	"reflect"
	"strings"
	"testing"

	platformcore "github.com/vovakirdan/tui-gems/internal/core"
	"github.com/vovakirdan/tui-gems/internal/config"
	"github.com/vovakirdan/tui-gems/internal/games/gems/core"
)

func testConfig() config.GemsConfig {
	cfg := config.DefaultGemsConfig()
	cfg.Timing.SwapDelayTicks = 0
	cfg.Timing.CascadeDelayTicks = 1
	cfg.Display.ShowHintOnIdle = false
	cfg.Difficulty.Enabled = false
	cfg.Difficulty.InitialLevel = 0
	return cfg
}

func testRuntime() platformcore.RuntimeConfig {
	return platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1}
}

// newTestGame starts a game on a hand-built board with a single score goal.
func newTestGame(t *testing.T, cfg config.GemsConfig, moves, target int, rows ...string) *Game {
	t.Helper()
	g := NewWithConfig(cfg)
	g.Reset(testRuntime())

	b := core.MustParseBoard(rows...)
	g.state = core.NewGameState(core.StageConfig{
		StageNumber:  1,
		Rows:         b.Rows,
		Cols:         b.Cols,
		TargetScore:  target,
		MaxMoves:     moves,
		Goals:        []core.Goal{{Type: core.GoalScore, Target: target}},
		InitialBoard: b,
	}, core.NewGravity(core.NewSeededRandom(7), b.MaxID()))
	g.cursor = core.P(0, 0)
	return g
}

// swap selects from and confirms on to, like a player would.
func swap(g *Game, from, to core.Position) platformcore.StepResult {
	g.cursor = from
	g.Step(platformcore.Frame(platformcore.ActionConfirm))
	g.cursor = to
	return g.Step(platformcore.Frame(platformcore.ActionConfirm))
}

// settleAll ticks until the cascade is over and returns every event.
func settleAll(t *testing.T, g *Game) []platformcore.Event {
	t.Helper()
	var events []platformcore.Event
	for i := 0; i < 500 && g.state.IsAnimating; i++ {
		events = append(events, g.Step(platformcore.NewInputFrame()).Events...)
	}
	if g.state.IsAnimating {
		t.Fatal("cascade did not settle")
	}
	return events
}

func hasEvent(events []platformcore.Event, kind platformcore.EventKind) bool {
	return platformcore.StepResult{Events: events}.Has(kind)
}

func TestResetStartsConfiguredStage(t *testing.T) {
	testCases := []struct {
		name       string
		startStage int
		runtime    int
		unlocked   int
		unlockAll  bool
		expected   int
	}{
		{"default", 1, 0, 0, false, 1},
		{"config start stage", 12, 0, 0, false, 12},
		{"runtime overrides config", 12, 40, 0, false, 40},
		{"clamped to unlocked", 1, 10, 3, false, 3},
		{"unlock all ignores progress", 1, 10, 3, true, 10},
		{"clamped to max", 1, 5000, 0, false, core.MaxStages},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Gameplay.StartStage = tc.startStage
			cfg.Gameplay.UnlockAll = tc.unlockAll

			g := NewWithConfig(cfg)
			g.UnlockStages(tc.unlocked)
			rc := testRuntime()
			rc.Stage = tc.runtime
			g.Reset(rc)

			if got := g.State().Stage; got != tc.expected {
				t.Errorf("expected stage %d, got %d", tc.expected, got)
			}
			if g.Engine().Moves != core.MaxMovesFor(tc.expected) {
				t.Errorf("expected %d moves, got %d", core.MaxMovesFor(tc.expected), g.Engine().Moves)
			}
		})
	}
}

func TestCursorMovementClamps(t *testing.T) {
	g := newTestGame(t, testConfig(), 5, 1000, noMatchRows...)

	g.Step(platformcore.Frame(platformcore.ActionUp))
	g.Step(platformcore.Frame(platformcore.ActionLeft))
	if g.Cursor() != core.P(0, 0) {
		t.Errorf("expected cursor to stay at (0,0), got %v", g.Cursor())
	}

	for i := 0; i < 5; i++ {
		g.Step(platformcore.Frame(platformcore.ActionDown))
		g.Step(platformcore.Frame(platformcore.ActionRight))
	}
	if g.Cursor() != core.P(2, 2) {
		t.Errorf("expected cursor clamped at (2,2), got %v", g.Cursor())
	}
}

var noMatchRows = []string{"RYB", "GPO", "BRY"}

func TestSelectionToggles(t *testing.T) {
	g := newTestGame(t, testConfig(), 5, 1000, noMatchRows...)

	g.Step(platformcore.Frame(platformcore.ActionConfirm))
	if sel := g.Engine().SelectedGem; sel == nil || *sel != core.P(0, 0) {
		t.Fatalf("expected (0,0) selected, got %v", sel)
	}

	// A non-adjacent cell moves the selection instead of swapping.
	g.cursor = core.P(2, 2)
	res := g.Step(platformcore.Frame(platformcore.ActionConfirm))
	if sel := g.Engine().SelectedGem; sel == nil || *sel != core.P(2, 2) {
		t.Fatalf("expected (2,2) selected, got %v", sel)
	}
	if len(res.Events) != 0 {
		t.Errorf("expected no events, got %v", res.Events)
	}

	g.Step(platformcore.Frame(platformcore.ActionConfirm))
	if g.Engine().SelectedGem != nil {
		t.Error("confirming the selected gem again should clear the selection")
	}

	g.Step(platformcore.Frame(platformcore.ActionConfirm))
	g.Step(platformcore.Frame(platformcore.ActionBack))
	if g.Engine().SelectedGem != nil {
		t.Error("back should clear the selection")
	}
}

func TestRejectedSwap(t *testing.T) {
	g := newTestGame(t, testConfig(), 5, 1000, noMatchRows...)
	before := g.Engine().Board.Clone()

	res := swap(g, core.P(0, 0), core.P(0, 1))
	if !res.Has(platformcore.EventSwapRejected) {
		t.Errorf("expected a rejected swap event, got %v", res.Events)
	}
	st := g.Engine()
	if !st.Board.Equal(before) || st.Moves != 5 || st.Score != 0 {
		t.Errorf("rejected swap changed the state: moves=%d score=%d\n%v", st.Moves, st.Score, st.Board)
	}
	if st.SelectedGem != nil {
		t.Error("rejected swap should clear the selection")
	}
}

func TestSwapPacesSettleSteps(t *testing.T) {
	cfg := testConfig()
	cfg.Timing.SwapDelayTicks = 2
	g := newTestGame(t, cfg, 5, 100000, "RRYR", "GPRB", "YBGP")

	res := swap(g, core.P(0, 2), core.P(1, 2))
	if !res.Has(platformcore.EventSwap) {
		t.Fatalf("expected a swap event, got %v", res.Events)
	}
	st := g.Engine()
	if !st.IsAnimating || st.Moves != 4 {
		t.Fatalf("expected settling with 4 moves left, got animating=%v moves=%d", st.IsAnimating, st.Moves)
	}
	if gem := st.Board.Get(core.P(0, 2)); gem == nil || gem.Type != core.GemStriped {
		t.Fatalf("expected a striped gem at (0,2), got %v", gem)
	}

	// The swap tick and the next one spend the delay; the third runs a step.
	if res := g.Step(platformcore.NewInputFrame()); res.Has(platformcore.EventSettleStepRequested) {
		t.Fatal("settle step ran before the swap delay elapsed")
	}
	res = g.Step(platformcore.NewInputFrame())
	if !res.Has(platformcore.EventSettleStepRequested) {
		t.Fatalf("expected a settle step, got %v", res.Events)
	}
	if g.Engine().Score == 0 {
		t.Error("expected the settle step to score")
	}

	settleAll(t, g)
	if !g.Engine().Board.IsSettled() {
		t.Errorf("board not settled:\n%v", g.Engine().Board)
	}
}

func TestSwapDuringCascade(t *testing.T) {
	cfg := testConfig()
	cfg.Timing.SwapDelayTicks = 10
	g := newTestGame(t, cfg, 5, 100000, "RRYR", "GPRB", "YBGP")

	swap(g, core.P(0, 2), core.P(1, 2))
	if !g.Engine().IsAnimating {
		t.Fatal("expected the first swap to start a cascade")
	}

	res := swap(g, core.P(2, 0), core.P(2, 1))
	if !res.Has(platformcore.EventSwap) {
		t.Fatalf("expected a swap while settling, got %v", res.Events)
	}
	if st := g.Engine(); st.Moves != 3 || st.ComboCount != 0 {
		t.Errorf("expected 3 moves and a fresh combo, got moves=%d combo=%d", st.Moves, st.ComboCount)
	}

	settleAll(t, g)
	if !g.Engine().Board.IsSettled() {
		t.Errorf("board not settled:\n%v", g.Engine().Board)
	}
}

func TestStageClearedAndNext(t *testing.T) {
	g := newTestGame(t, testConfig(), 5, 10, "RRYR", "GPRB", "YBGP")

	// With no swap delay the first settle step runs on the swap tick.
	events := swap(g, core.P(0, 2), core.P(1, 2)).Events
	events = append(events, settleAll(t, g)...)
	if !hasEvent(events, platformcore.EventStageCleared) {
		t.Fatalf("expected a stage cleared event, got %v", events)
	}
	if !g.State().Cleared || g.State().GameOver {
		t.Fatalf("unexpected state %+v", g.State())
	}

	result, ok := g.TakeStageResult()
	if !ok {
		t.Fatal("expected a stage result")
	}
	if !result.Cleared || result.Stage != 1 || result.Score != g.Engine().Score {
		t.Errorf("unexpected result %+v", result)
	}
	if result.Stars != core.CalculateStarRating(g.Engine()) || result.Stars < 1 {
		t.Errorf("expected %d stars, got %d", core.CalculateStarRating(g.Engine()), result.Stars)
	}
	if _, ok := g.TakeStageResult(); ok {
		t.Error("a stage result should be taken only once")
	}

	// Further ticks must not report the same attempt again.
	g.Step(platformcore.NewInputFrame())
	if _, ok := g.TakeStageResult(); ok {
		t.Error("the finished attempt was reported twice")
	}

	res := g.Step(platformcore.Frame(platformcore.ActionNext))
	if !res.Has(platformcore.EventStageStarted) {
		t.Fatalf("expected a stage started event, got %v", res.Events)
	}
	if g.State().Stage != 2 || g.Engine().Moves != core.MaxMovesFor(2) || g.Engine().Score != 0 {
		t.Errorf("expected fresh stage 2, got stage=%d moves=%d score=%d", g.State().Stage, g.Engine().Moves, g.Engine().Score)
	}
}

func TestGameOverAndRetry(t *testing.T) {
	g := newTestGame(t, testConfig(), 1, 100000, "RRYR", "GPRB", "YBGP")

	// With no swap delay the first settle step runs on the swap tick.
	events := swap(g, core.P(0, 2), core.P(1, 2)).Events
	events = append(events, settleAll(t, g)...)
	if !hasEvent(events, platformcore.EventGameOver) {
		t.Fatalf("expected a game over event, got %v", events)
	}
	if !g.State().GameOver {
		t.Fatal("expected game over")
	}

	result, ok := g.TakeStageResult()
	if !ok || result.Cleared || result.Stars != 0 {
		t.Errorf("unexpected result %+v (ok=%v)", result, ok)
	}

	// Input other than retry is ignored.
	g.Step(platformcore.Frame(platformcore.ActionNext))
	if !g.State().GameOver {
		t.Error("next should not leave a lost stage")
	}

	res := g.Step(platformcore.Frame(platformcore.ActionRestart))
	if !res.Has(platformcore.EventStageStarted) {
		t.Errorf("expected a stage started event, got %v", res.Events)
	}
	if g.State().GameOver || g.State().Stage != 1 || g.Engine().Moves != core.MaxMovesFor(1) {
		t.Errorf("retry should restart stage 1, got %+v moves=%d", g.State(), g.Engine().Moves)
	}
}

func TestPause(t *testing.T) {
	g := newTestGame(t, testConfig(), 5, 1000, noMatchRows...)

	g.Step(platformcore.Frame(platformcore.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused")
	}

	g.Step(platformcore.Frame(platformcore.ActionRight))
	g.Step(platformcore.Frame(platformcore.ActionConfirm))
	if g.Cursor() != core.P(0, 0) || g.Engine().SelectedGem != nil {
		t.Error("input should be ignored while paused")
	}

	g.Step(platformcore.Frame(platformcore.ActionPause))
	if g.State().Paused {
		t.Fatal("expected resumed")
	}
}

func TestPausedCascadeStillSettles(t *testing.T) {
	g := newTestGame(t, testConfig(), 5, 100000, "RRYR", "GPRB", "YBGP")

	swap(g, core.P(0, 2), core.P(1, 2))
	g.Step(platformcore.Frame(platformcore.ActionPause))
	settleAll(t, g)
	if !g.Engine().IsPaused || !g.Engine().Board.IsSettled() {
		t.Error("cascade should finish while paused")
	}
}

func TestHint(t *testing.T) {
	g := newTestGame(t, testConfig(), 5, 1000, "RRYR", "GPRB", "YBGP")

	g.Step(platformcore.Frame(platformcore.ActionHint))
	snap := g.Snapshot()
	want, _ := core.FindPossibleMatches(g.Engine().Board)
	if snap.Hint == nil || *snap.Hint != want {
		t.Errorf("expected hint %v, got %v", want, snap.Hint)
	}

	g.Step(platformcore.Frame(platformcore.ActionBack))
	if g.Snapshot().Hint != nil {
		t.Error("back should hide the hint")
	}
}

func TestHintWithoutMoves(t *testing.T) {
	g := newTestGame(t, testConfig(), 5, 1000, noMatchRows...)

	g.Step(platformcore.Frame(platformcore.ActionHint))
	if g.Snapshot().Hint != nil {
		t.Error("expected no hint on a board without moves")
	}
	if g.banner == "" {
		t.Error("expected a no-moves banner")
	}
}

func TestIdleHint(t *testing.T) {
	cfg := testConfig()
	cfg.Display.ShowHintOnIdle = true
	cfg.Timing.HintIdleTicks = 3
	g := newTestGame(t, cfg, 5, 1000, "RRYR", "GPRB", "YBGP")

	for i := 0; i < 2; i++ {
		g.Step(platformcore.NewInputFrame())
	}
	if g.Snapshot().Hint != nil {
		t.Fatal("hint shown too early")
	}
	g.Step(platformcore.NewInputFrame())
	if g.Snapshot().Hint == nil {
		t.Error("expected the idle hint after 3 ticks")
	}
}

func TestDeterministicReplay(t *testing.T) {
	run := func() Snapshot {
		g := NewWithConfig(testConfig())
		rc := testRuntime()
		rc.Stage = 5
		g.Reset(rc)
		for i := 0; i < 20; i++ {
			h, ok := core.FindPossibleMatches(g.Engine().Board)
			if !ok || g.state.Phase() != core.PhaseIdle {
				break
			}
			swap(g, h.From, h.To)
			settleAll(t, g)
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("snapshots differ:\n%+v\n%+v", a, b)
	}
	if a.Hash() != b.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", a.Hash(), b.Hash())
	}
	if a.Score == 0 {
		t.Error("expected the replay to score")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, testConfig(), 5, 1000, "RRYR", "GPRB", "YBGP")
	g.stage = 1
	screen := platformcore.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()
	for _, want := range []string{"Stage 1/1000", "Score: 0", "Moves: 5", "0/1000"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q on screen:\n%s", want, out)
		}
	}

	g.Step(platformcore.Frame(platformcore.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("expected the pause overlay")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := NewWithConfig(testConfig())
	g.Reset(testRuntime())
	g.Resize(20, 10)

	if !g.State().Paused {
		t.Error("a small window should pause the game")
	}
	screen := platformcore.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("expected the too-small message:\n%s", screen.String())
	}

	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("growing the window should resume")
	}
}

func TestGemCell(t *testing.T) {
	g := NewWithConfig(testConfig())
	testCases := []struct {
		token string
		text  string
	}{
		{"R", " ♦ "},
		{"Y-", "-★-"},
		{"B|", "|●|"},
		{"G*", "[▲]"},
		{"P@", "(✹)"},
	}
	for _, tc := range testCases {
		gem := core.MustParseBoard(tc.token).Get(core.P(0, 0))
		text, _ := g.gemCell(gem)
		if text != tc.text {
			t.Errorf("%s: expected %q, got %q", tc.token, tc.text, text)
		}
	}

	g.cfg.Display.CellWidth = 2
	g.cfg.Display.GlyphSet = "letters"
	text, _ := g.gemCell(core.MustParseBoard("O*").Get(core.P(0, 0)))
	if text != "O]" {
		t.Errorf("expected %q, got %q", "O]", text)
	}
}
