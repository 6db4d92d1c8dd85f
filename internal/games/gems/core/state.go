package core

import (
	"math/rand"
	"time"
)

// ScorePerMatchedCell is the base score of each cell removed by a match.
const ScorePerMatchedCell = 10

// Phase is the cascade state machine position derived from a GameState.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseSettling
	PhaseCleared
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSettling:
		return "settling"
	case PhaseCleared:
		return "cleared"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// GameState is the complete state of one stage attempt.
//
// Transitions are methods with value receivers that return the next state;
// the receiver's board is never modified. A rejected operation returns the
// receiver unchanged. Every copy of a state shares one refill source, which
// advances with each gravity pass, so repeating a transition on the same
// state can refill the board differently.
type GameState struct {
	Board        *Board
	Score        int
	Moves        int
	Goals        []Goal
	IsGameOver   bool
	IsPaused     bool
	CurrentStage int
	IsAnimating  bool
	SelectedGem  *Position
	ComboCount   int

	gravity *Gravity
}

// StepReport describes what a transition did, for the presentation layer.
type StepReport struct {
	Applied       bool
	ComboSwap     bool // The swap fired a special gem combo
	Matches       []Match
	Specials      []SpecialGemInfo // Power gems created by the swap
	Activated     []Position       // Special gems whose effects fired
	Removed       []Position
	Drops         []Drop
	BaseScore     int
	SpecialScore  int
	ComboBonus    int
	Gained        int
	HasNewMatches bool
}

// NewGameState creates a fresh state for a stage. gravity supplies refill
// gems during cascades; nil selects a time-seeded resolver.
func NewGameState(cfg StageConfig, gravity *Gravity) GameState {
	board := cfg.InitialBoard
	if board == nil {
		board = NewBoard(cfg.Rows, cfg.Cols)
	}
	board = board.Clone()
	if gravity == nil {
		gravity = NewGravity(rand.New(rand.NewSource(time.Now().UnixNano())), board.MaxID())
	}
	return GameState{
		Board:        board,
		Moves:        cfg.MaxMoves,
		Goals:        append([]Goal(nil), cfg.Goals...),
		CurrentStage: cfg.StageNumber,
		gravity:      gravity,
	}
}

// Phase derives the state machine position.
func (s GameState) Phase() Phase {
	switch {
	case s.IsGameOver:
		return PhaseGameOver
	case s.IsCleared():
		return PhaseCleared
	case s.IsAnimating:
		return PhaseSettling
	default:
		return PhaseIdle
	}
}

// IsCleared reports whether every goal is met. A state without goals counts
// as cleared.
func (s GameState) IsCleared() bool {
	return allGoalsDone(s.Goals)
}

func allGoalsDone(goals []Goal) bool {
	for _, g := range goals {
		if !g.Done() {
			return false
		}
	}
	return true
}

// SelectGem toggles the selection at (row, col). Ignored when the game is
// over, while paused and for cells off the board.
func (s GameState) SelectGem(row, col int) GameState {
	if s.IsGameOver || s.IsPaused || !s.Board.InBounds(P(row, col)) {
		return s
	}
	if s.SelectedGem != nil && s.SelectedGem.Row == row && s.SelectedGem.Col == col {
		s.SelectedGem = nil
		return s
	}
	p := P(row, col)
	s.SelectedGem = &p
	return s
}

// TogglePause flips the pause flag. Ignored once the game is over.
func (s GameState) TogglePause() GameState {
	if s.IsGameOver {
		return s
	}
	s.IsPaused = !s.IsPaused
	return s
}

// SwapGems exchanges two adjacent gems.
//
// When both gems are special the pair fires as a combo and commits at once.
// Otherwise the swap stands only if it creates a match; the matched board is
// classified for power gems and the state enters the settling phase. Swaps
// are accepted while a cascade is still settling.
func (s GameState) SwapGems(from, to Position) (GameState, StepReport) {
	if s.IsGameOver || s.IsPaused || s.Moves <= 0 {
		return s, StepReport{}
	}
	if !from.Adjacent(to) || !s.Board.InBounds(from) || !s.Board.InBounds(to) {
		return s, StepReport{}
	}

	a, c := s.Board.Get(from), s.Board.Get(to)
	if a != nil && c != nil && a.Type.IsSpecial() && c.Type.IsSpecial() {
		swapped := s.Board.Clone()
		swapped.Swap(from, to)
		if eff, ok := ActivateSpecialGemCombo(swapped.Get(to), swapped.Get(from), swapped); ok {
			return s.commitCombo(swapped, eff)
		}
	}

	swapped := s.Board.Clone()
	swapped.Swap(from, to)
	matches := FindMatches(swapped)
	if len(matches) == 0 {
		return s, StepReport{}
	}

	specials := PrioritizeSpecialGems(matches)
	s.Board = ApplySpecialGems(swapped, specials)
	s.Moves--
	s.IsAnimating = true
	s.SelectedGem = nil
	s.ComboCount = 0

	return s, StepReport{
		Applied:  true,
		Matches:  matches,
		Specials: specials,
	}
}

// commitCombo removes the combo's cells, settles the board and scores it.
func (s GameState) commitCombo(board *Board, eff Effect) (GameState, StepReport) {
	for _, p := range eff.Positions {
		board.Clear(p)
	}
	settled, drops := s.resolver().Apply(board)

	s.Board = settled
	s.Score += eff.Score
	s.Goals = advanceGoals(s.Goals, eff.Score)
	s.Moves--
	cleared := allGoalsDone(s.Goals)
	s.IsGameOver = s.IsGameOver || (s.Moves <= 0 && !cleared)
	s.IsAnimating = !cleared && !s.IsGameOver
	s.ComboCount = 0
	s.SelectedGem = nil

	return s, StepReport{
		Applied:      true,
		ComboSwap:    true,
		Removed:      eff.Positions,
		Drops:        drops,
		SpecialScore: eff.Score,
		Gained:       eff.Score,
	}
}

// ProcessMatches advances the cascade by one settle step. It is a no-op
// unless the state is settling. The host calls it again after its own
// presentation delay while IsAnimating stays true; calls must not overlap.
func (s GameState) ProcessMatches() (GameState, StepReport) {
	if !s.IsAnimating {
		return s, StepReport{}
	}

	matches := FindMatches(s.Board)
	if len(matches) == 0 {
		s.IsAnimating = false
		return s, StepReport{Applied: true}
	}

	report := StepReport{Applied: true, Matches: matches}
	matched := MatchedPositions(matches)
	report.BaseScore = len(matched) * ScorePerMatchedCell

	removal := newCellSet(s.Board)
	for _, p := range matched {
		removal.add(p)
	}
	for _, p := range matched {
		gem := s.Board.Get(p)
		if gem == nil || !gem.Type.IsSpecial() {
			continue
		}
		eff := ActivateSpecialGem(gem, s.Board)
		report.Activated = append(report.Activated, p)
		report.SpecialScore += eff.Score
		for _, q := range eff.Positions {
			removal.add(q)
		}
	}

	board := s.Board.Clone()
	for _, p := range removal.order {
		board.Clear(p)
	}
	settled, drops := s.resolver().Apply(board)
	report.Removed = removal.order
	report.Drops = drops

	report.HasNewMatches = len(FindMatches(settled)) > 0
	if report.HasNewMatches {
		s.ComboCount++
	} else {
		s.ComboCount = 0
	}

	total := report.BaseScore + report.SpecialScore
	// Multiplier is 1 + 0.1 per combo step; the bonus is floored.
	report.ComboBonus = total * s.ComboCount / 10
	report.Gained = total + report.ComboBonus

	s.Board = settled
	s.Score += report.Gained
	s.Goals = advanceGoals(s.Goals, report.Gained)

	cleared := allGoalsDone(s.Goals)
	s.IsGameOver = s.IsGameOver || (s.Moves <= 0 && !cleared)
	s.IsAnimating = report.HasNewMatches && !cleared && !s.IsGameOver

	return s, report
}

// ComboMultiplier returns the score multiplier of the current combo chain.
func (s GameState) ComboMultiplier() float64 {
	return 1 + float64(s.ComboCount)*0.1
}

// resolver returns the state's gravity, creating a deterministic one if the
// state was built without NewGameState.
func (s *GameState) resolver() *Gravity {
	if s.gravity == nil {
		s.gravity = NewGravity(rand.New(rand.NewSource(1)), s.Board.MaxID())
	}
	return s.gravity
}

// advanceGoals returns a copy of goals with every score goal advanced.
func advanceGoals(goals []Goal, points int) []Goal {
	out := make([]Goal, len(goals))
	for i, g := range goals {
		if g.Type == GoalScore {
			g = g.advance(points)
		}
		out[i] = g
	}
	return out
}
