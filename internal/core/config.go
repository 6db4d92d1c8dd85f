package core

// RuntimeConfig is passed to games when they start or restart.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // Seed for refill randomness; 0 means time-based
	Stage    int   // Stage to start on; 0 means the game's default
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState summarizes a game for the platform.
type GameState struct {
	Score    int
	Stage    int
	GameOver bool
	Cleared  bool // The current stage was completed
	Paused   bool
}

// EventKind identifies something a game reports after a tick.
type EventKind int

const (
	EventSwap                EventKind = iota + 1 // A swap was accepted
	EventSwapRejected                             // A swap produced no match and was undone
	EventSettleStepRequested                      // The presentation delay elapsed; one cascade step ran
	EventCombo                                    // A cascade step chained into another match
	EventStageCleared                             // All goals of the stage were met
	EventGameOver                                 // The stage was lost
	EventStageStarted                             // A stage was (re)started
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventSwap:
		return "swap"
	case EventSwapRejected:
		return "swap_rejected"
	case EventSettleStepRequested:
		return "settle_step"
	case EventCombo:
		return "combo"
	case EventStageCleared:
		return "stage_cleared"
	case EventGameOver:
		return "game_over"
	case EventStageStarted:
		return "stage_started"
	default:
		return "unknown"
	}
}

// Event is a notable occurrence during a tick.
type Event struct {
	Kind  EventKind
	Value int // Kind-specific: combo count, stage number, points
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether the result contains an event of the given kind.
func (r StepResult) Has(kind EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
