package gems

import "github.com/vovakirdan/tui-gems/internal/games/gems/core"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateSettling    GameStateType = "settling"
	StatePaused      GameStateType = "paused"
	StateCleared     GameStateType = "stage_cleared"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	Stage    int
	Score    int
	Moves    int
	Combo    int
	Goal     core.Goal
	Board    []string // ParseBoard rows
	Cursor   core.Position
	Selected *core.Position
	Hint     *core.Hint
	State    GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	st := g.state

	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case st.Phase() == core.PhaseGameOver:
		state = StateGameOver
	case st.Phase() == core.PhaseCleared:
		state = StateCleared
	case st.IsPaused:
		state = StatePaused
	case st.IsAnimating:
		state = StateSettling
	}

	snap := Snapshot{
		Tick:   g.tick,
		Stage:  g.stage,
		Score:  st.Score,
		Moves:  st.Moves,
		Combo:  st.ComboCount,
		Cursor: g.cursor,
		State:  state,
	}
	if len(st.Goals) > 0 {
		snap.Goal = st.Goals[0]
	}
	if st.Board != nil {
		snap.Board = st.Board.Lines()
	}
	if st.SelectedGem != nil {
		p := *st.SelectedGem
		snap.Selected = &p
	}
	if g.hintTicks > 0 {
		h := g.hint
		snap.Hint = &h
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Stage)                         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)                         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Moves)                         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Combo)                         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Goal.Current)                  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Cursor.Row*64+snap.Cursor.Col) //#nosec G115 -- hash computation

	for _, row := range snap.Board {
		for _, r := range row {
			h = h*31 + uint64(r)
		}
	}
	for _, r := range snap.State {
		h = h*31 + uint64(r)
	}

	return h
}
