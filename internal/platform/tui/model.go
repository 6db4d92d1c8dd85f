package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-gems/internal/core"
	"github.com/vovakirdan/tui-gems/internal/registry"
	"github.com/vovakirdan/tui-gems/internal/storage"
)

// Resizer is implemented by games that can adapt to a new terminal size
// without restarting.
type Resizer interface {
	Resize(w, h int)
}

// RecordKey returns the storage key for a player's stage progress.
// Local play uses the bare game id; SSH users get their own progress.
func RecordKey(gameID, player string) string {
	if player == "" {
		return gameID
	}
	return gameID + ":" + player
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       *KeyMapper
	logger     *log.Logger
	inputFrame core.InputFrame
	gameState  core.GameState
	player     string // Empty for local play
	embedded   bool   // Hosted by SessionModel: back returns to its menu
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keys:       NewKeyMapper(),
		logger:     log.NewWithOptions(os.Stderr, log.Options{Prefix: "gems"}),
		inputFrame: core.NewInputFrame(),
	}
}

// WithPlayer returns the model recording stage progress for a named player.
func (m Model) WithPlayer(name string) Model {
	m.player = name
	return m
}

// WithLogger returns the model using the given logger.
func (m Model) WithLogger(logger *log.Logger) Model {
	if logger != nil {
		m.logger = logger
	}
	return m
}

// embed marks the model as hosted by a SessionModel.
func (m Model) embed() Model {
	m.embedded = true
	return m
}

// Init unlocks saved progress, starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.unlockFromStore()
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		} else {
			m.logger.Debug("screenshot saved", "path", path)
		}
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back leaves the game only when nothing is in progress.
	if m.inputFrame.Has(core.ActionBack) && m.canLeave() {
		m.backToMenu = true
		if m.embedded {
			return m, nil
		}
		return m, tea.Quit
	}

	return m, nil
}

// canLeave reports whether Back should return to the menu.
func (m Model) canLeave() bool {
	st := m.game.State()
	return st.GameOver || st.Cleared || st.Paused
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.recordStageResult()

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// recordStageResult persists a finished stage attempt and refreshes unlocks.
func (m Model) recordStageResult() {
	reporter, ok := m.game.(registry.StageReporter)
	if !ok {
		return
	}
	res, ok := reporter.TakeStageResult()
	if !ok || m.store == nil {
		return
	}

	key := RecordKey(m.game.ID(), m.player)
	if _, err := m.store.RecordStage(key, storage.StageAttempt{
		Stage:   res.Stage,
		Score:   res.Score,
		Stars:   res.Stars,
		Cleared: res.Cleared,
	}); err != nil {
		m.logger.Warn("could not record stage", "stage", res.Stage, "error", err)
		return
	}
	if res.Score > 0 {
		if _, err := m.store.SaveScore(m.game.ID(), res.Score); err != nil {
			m.logger.Warn("could not save score", "error", err)
		}
	}
	m.unlockFromStore()
}

// unlockFromStore tells a staged game how far the player has progressed.
func (m Model) unlockFromStore() {
	reporter, ok := m.game.(registry.StageReporter)
	if !ok || m.store == nil {
		return
	}
	highest, err := m.store.HighestUnlockedStage(RecordKey(m.game.ID(), m.player), reporter.StageCount())
	if err != nil {
		m.logger.Warn("could not load progress", "error", err)
		return
	}
	reporter.UnlockStages(highest)
}

// saveScreenshot saves the current screen to a file.
func (m Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".gems", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create screenshot directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a local game. It reports whether
// the player quit outright rather than going back to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) (quit bool, err error) {
	p := tea.NewProgram(
		NewModel(game, store, cfg),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return true, err
	}
	if fm, ok := final.(Model); ok {
		return fm.IsQuitting(), nil
	}
	return false, nil
}
