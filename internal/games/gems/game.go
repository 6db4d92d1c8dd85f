// Package gems provides the match-3 gem puzzle for the terminal.
// The rules live in the core subpackage; this package drives them from
// ticks and key actions, paces cascades and draws the board.
package gems

import (
	platformcore "github.com/vovakirdan/tui-gems/internal/core"
	"github.com/vovakirdan/tui-gems/internal/config"
	"github.com/vovakirdan/tui-gems/internal/games/gems/core"
	"github.com/vovakirdan/tui-gems/internal/registry"
)

// GameID is the registry and storage identifier.
const GameID = "gems"

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// Game implements registry.Game and registry.StageReporter.
type Game struct {
	cfg        config.GemsConfig
	fixedCfg   bool // Config supplied by NewWithConfig; Reset does not load files
	difficulty *config.DifficultyManager
	runtime    platformcore.RuntimeConfig

	state    core.GameState
	stage    int
	unlocked int // Highest stage the player may start, 0 = unknown
	tick     uint64

	cursor core.Position

	// Settle driver
	settleDelay int // Ticks until the next ProcessMatches call
	lastReport  core.StepReport

	// Presentation timers
	hint        core.Hint
	hintTicks   int // Ticks the hint stays visible, 0 = hidden
	idleTicks   int
	banner      string
	bannerTicks int

	// Stage result handed to the platform once per finished attempt
	finished bool
	pending  *registry.StageResult

	tooSmall bool
}

var _ registry.StageReporter = (*Game)(nil)

// New creates a game that loads its configuration on Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a game with a fixed configuration.
func NewWithConfig(cfg config.GemsConfig) *Game {
	return &Game{cfg: cfg, fixedCfg: true}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Gems"
}

// Reset loads configuration and starts the configured stage.
// RuntimeConfig.Stage overrides the configured start stage.
func (g *Game) Reset(rc platformcore.RuntimeConfig) {
	g.runtime = rc

	if !g.fixedCfg {
		cfg, err := config.LoadGems(configPath)
		if err != nil {
			cfg = config.DefaultGemsConfig()
		}
		if difficultyPreset != "" {
			config.ApplyGemsPreset(&cfg, difficultyPreset)
		}
		g.cfg = cfg
	}
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	stage := rc.Stage
	if stage <= 0 {
		stage = g.cfg.Gameplay.StartStage
	}
	g.tick = 0
	g.pending = nil
	g.startStage(stage)
}

// UnlockStages records the highest stage the player may start.
func (g *Game) UnlockStages(highest int) {
	g.unlocked = highest
}

// TakeStageResult returns the last finished attempt once.
func (g *Game) TakeStageResult() (registry.StageResult, bool) {
	if g.pending == nil {
		return registry.StageResult{}, false
	}
	r := *g.pending
	g.pending = nil
	return r, true
}

// StageCount returns the number of playable stages.
func (g *Game) StageCount() int {
	return g.maxStage()
}

// maxStage returns the last playable stage.
func (g *Game) maxStage() int {
	n := g.cfg.Gameplay.MaxStages
	if n <= 0 || n > core.MaxStages {
		n = core.MaxStages
	}
	return n
}

// startStage builds a fresh GameState for a stage.
func (g *Game) startStage(stage int) {
	stage = platformcore.Clamp(stage, 1, g.maxStage())
	if !g.cfg.Gameplay.UnlockAll && g.unlocked > 0 && stage > g.unlocked {
		stage = g.unlocked
	}
	g.stage = stage

	cfg := core.GenerateStage(stage)
	var gravity *core.Gravity
	if g.runtime.Seed != 0 {
		// Each stage gets its own refill sequence so retries replay the same cascades.
		gravity = core.NewGravity(core.NewRand(g.runtime.Seed+int64(stage)), cfg.InitialBoard.MaxID())
	}
	g.state = core.NewGameState(cfg, gravity)

	g.cursor = core.P(cfg.Rows/2, cfg.Cols/2)
	g.settleDelay = 0
	g.lastReport = core.StepReport{}
	g.hintTicks = 0
	g.idleTicks = 0
	g.banner = ""
	g.bannerTicks = 0
	g.finished = false
	g.checkScreenSize()
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++
	var events []platformcore.Event

	if g.bannerTicks > 0 {
		g.bannerTicks--
		if g.bannerTicks == 0 {
			g.banner = ""
		}
	}
	if g.hintTicks > 0 {
		g.hintTicks--
	}

	if g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionRestart) {
		g.startStage(g.stage)
		events = append(events, platformcore.Event{Kind: platformcore.EventStageStarted, Value: g.stage})
		return platformcore.StepResult{State: g.State(), Events: events}
	}

	switch g.state.Phase() {
	case core.PhaseCleared:
		if in.Has(platformcore.ActionNext) || in.Has(platformcore.ActionConfirm) {
			if g.stage < g.maxStage() {
				if g.unlocked > 0 && g.unlocked <= g.stage {
					g.unlocked = g.stage + 1
				}
				g.startStage(g.stage + 1)
				events = append(events, platformcore.Event{Kind: platformcore.EventStageStarted, Value: g.stage})
			}
		}
		return platformcore.StepResult{State: g.State(), Events: events}
	case core.PhaseGameOver:
		return platformcore.StepResult{State: g.State(), Events: events}
	}

	if in.Has(platformcore.ActionPause) {
		g.state = g.state.TogglePause()
	}

	if !in.Empty() {
		g.idleTicks = 0
	}

	if !g.state.IsPaused {
		events = append(events, g.handleInput(in)...)
	}

	events = append(events, g.settle()...)
	events = append(events, g.checkFinished()...)
	g.updateIdleHint()

	return platformcore.StepResult{State: g.State(), Events: events}
}

// handleInput moves the cursor, selects gems and requests swaps.
func (g *Game) handleInput(in platformcore.InputFrame) []platformcore.Event {
	b := g.state.Board
	switch {
	case in.Has(platformcore.ActionUp):
		g.cursor.Row = platformcore.Clamp(g.cursor.Row-1, 0, b.Rows-1)
	case in.Has(platformcore.ActionDown):
		g.cursor.Row = platformcore.Clamp(g.cursor.Row+1, 0, b.Rows-1)
	case in.Has(platformcore.ActionLeft):
		g.cursor.Col = platformcore.Clamp(g.cursor.Col-1, 0, b.Cols-1)
	case in.Has(platformcore.ActionRight):
		g.cursor.Col = platformcore.Clamp(g.cursor.Col+1, 0, b.Cols-1)
	}

	if in.Has(platformcore.ActionBack) {
		if sel := g.state.SelectedGem; sel != nil {
			g.state = g.state.SelectGem(sel.Row, sel.Col)
		}
		g.hintTicks = 0
	}

	if in.Has(platformcore.ActionHint) {
		g.showHint()
	}

	// A swap may interrupt a cascade; the engine restarts the chain from it.
	if in.Has(platformcore.ActionConfirm) {
		return g.confirm()
	}
	return nil
}

// confirm selects the gem under the cursor, or swaps it with the selection
// when the two are adjacent.
func (g *Game) confirm() []platformcore.Event {
	sel := g.state.SelectedGem
	if sel == nil || !sel.Adjacent(g.cursor) {
		// Selecting the selected gem again clears the selection.
		g.state = g.state.SelectGem(g.cursor.Row, g.cursor.Col)
		return nil
	}

	from := *sel
	next, report := g.state.SwapGems(from, g.cursor)
	if !report.Applied {
		g.state = g.state.SelectGem(from.Row, from.Col)
		return []platformcore.Event{{Kind: platformcore.EventSwapRejected}}
	}

	g.state = next
	g.lastReport = report
	g.hintTicks = 0
	g.settleDelay = g.cfg.Timing.SwapDelayTicks
	if report.ComboSwap {
		g.showBanner("Power combo!")
		g.settleDelay = g.cascadeDelay()
	}
	return []platformcore.Event{{Kind: platformcore.EventSwap, Value: report.Gained}}
}

// settle runs one cascade step each time the presentation delay elapses.
// The host owns the timing; the engine only sees discrete steps.
func (g *Game) settle() []platformcore.Event {
	if !g.state.IsAnimating {
		return nil
	}
	if g.settleDelay > 0 {
		g.settleDelay--
		return nil
	}

	next, report := g.state.ProcessMatches()
	g.state = next
	g.lastReport = report
	g.settleDelay = g.cascadeDelay()

	events := []platformcore.Event{{Kind: platformcore.EventSettleStepRequested, Value: report.Gained}}
	if report.HasNewMatches && g.state.ComboCount > 0 {
		events = append(events, platformcore.Event{Kind: platformcore.EventCombo, Value: g.state.ComboCount})
		g.showBanner(comboText(g.state.ComboCount))
	}
	return events
}

// checkFinished reports a stage clear or loss once per attempt.
func (g *Game) checkFinished() []platformcore.Event {
	if g.finished {
		return nil
	}
	var kind platformcore.EventKind
	switch g.state.Phase() {
	case core.PhaseCleared:
		kind = platformcore.EventStageCleared
	case core.PhaseGameOver:
		kind = platformcore.EventGameOver
	default:
		return nil
	}

	g.finished = true
	stars := 0
	if kind == platformcore.EventStageCleared {
		stars = core.CalculateStarRating(g.state)
	}
	g.pending = &registry.StageResult{
		Stage:   g.stage,
		Score:   g.state.Score,
		Stars:   stars,
		Cleared: kind == platformcore.EventStageCleared,
	}
	return []platformcore.Event{{Kind: kind, Value: g.stage}}
}

// updateIdleHint reveals a hint after the player has been idle long enough.
func (g *Game) updateIdleHint() {
	if g.state.Phase() != core.PhaseIdle || g.state.IsPaused {
		g.idleTicks = 0
		return
	}
	g.idleTicks++
	if !g.cfg.Display.ShowHintOnIdle || g.hintTicks > 0 {
		return
	}
	if g.idleTicks >= g.difficulty.HintDelay(g.cfg.Timing.HintIdleTicks, g.stage) {
		g.showHint()
		g.idleTicks = 0
	}
}

// showHint looks up a possible swap and displays it for a while.
func (g *Game) showHint() {
	h, ok := core.FindPossibleMatches(g.state.Board)
	if !ok {
		g.hintTicks = 0
		g.showBanner("No moves left, press R")
		return
	}
	g.hint = h
	g.hintTicks = g.cfg.Timing.HintShowTicks
}

func (g *Game) showBanner(text string) {
	g.banner = text
	g.bannerTicks = g.cfg.Timing.BannerTicks
}

func (g *Game) cascadeDelay() int {
	return g.difficulty.CascadeDelay(g.cfg.Timing.CascadeDelayTicks, g.stage)
}

// Resize adapts to a new terminal size without restarting the stage.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough for the stage.
func (g *Game) checkScreenSize() {
	w, h := g.layoutSize()
	g.tooSmall = g.runtime.ScreenW < w || g.runtime.ScreenH < h
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Score:    g.state.Score,
		Stage:    g.stage,
		GameOver: g.state.IsGameOver,
		Cleared:  g.state.IsCleared(),
		Paused:   g.state.IsPaused || g.tooSmall,
	}
}

// Engine returns the underlying engine state.
func (g *Game) Engine() core.GameState {
	return g.state
}

// Cursor returns the cursor position.
func (g *Game) Cursor() core.Position {
	return g.cursor
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/HJKL: Move | Enter/Space: Select/Swap | ?: Hint | P: Pause | R: Retry | N: Next | Q: Quit"
}
