// Package registry provides a global registry for game factories.
// Games register themselves in init() functions so the CLI, the local TUI and
// the SSH server can create them by ID.
package registry

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-gems/internal/core"
)

// Game is the interface every playable mode implements.
// Games hold pure logic with no Bubble Tea dependency; the platform owns
// input mapping, timing and terminal output.
type Game interface {
	// ID returns a unique identifier (e.g., "gems"), used by the CLI and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts the game from the configured stage.
	// Called once at start and again when the player retries.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by one tick with the actions pressed during it.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current summary (score, stage, game over, paused).
	State() core.GameState
}

// StageResult is the outcome of one finished stage attempt.
type StageResult struct {
	Stage   int
	Score   int
	Stars   int
	Cleared bool
}

// StageReporter is implemented by games with numbered stages. The platform
// polls it after each tick and persists every finished attempt once.
type StageReporter interface {
	// TakeStageResult returns the last finished attempt and forgets it.
	// ok is false when no attempt finished since the previous call.
	TakeStageResult() (result StageResult, ok bool)

	// UnlockStages tells the game the highest stage the player may start.
	UnlockStages(highest int)

	// StageCount returns the number of playable stages.
	StageCount() int
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
