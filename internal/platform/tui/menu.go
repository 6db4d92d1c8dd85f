package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-gems/internal/core"
)

// MenuChoice is what the player picked in the main menu.
type MenuChoice int

const (
	MenuChoiceNone MenuChoice = iota
	MenuChoicePlay
	MenuChoiceScoreboard
	MenuChoiceQuit
)

// Main menu entries
const (
	itemContinue = iota
	itemSelectStage
	itemScores
	itemQuit
	itemCount
)

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	progress  Progress
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	stages    *StageSelectModel // Non-nil while picking a stage
	choice    MenuChoice
	stage     int // Stage to play when choice is MenuChoicePlay
}

// NewMenuModel creates a new menu model.
func NewMenuModel(p Progress, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		progress:  p,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	if m.stages != nil {
		return m.updateStages(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

// updateStages forwards messages to the stage selector.
func (m MenuModel) updateStages(msg tea.Msg) (tea.Model, tea.Cmd) {
	stages, cmd := m.stages.Update(msg)
	m.stages = &stages

	switch {
	case stages.Chosen() > 0:
		m.choice = MenuChoicePlay
		m.stage = stages.Chosen()
		return m, tea.Quit
	case stages.WantsBack():
		m.stages = nil
	}
	return m, cmd
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.choice = MenuChoiceQuit
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < itemCount-1 {
			m.cursor++
		}

	case MenuActionScoreboard:
		m.choice = MenuChoiceScoreboard
		return m, tea.Quit

	case MenuActionSelect:
		return m.selectItem()
	}

	return m, nil
}

// selectItem activates the entry under the cursor.
func (m MenuModel) selectItem() (tea.Model, tea.Cmd) {
	switch m.cursor {
	case itemContinue:
		m.choice = MenuChoicePlay
		m.stage = m.progress.ContinueStage()
		return m, tea.Quit
	case itemSelectStage:
		stages := NewStageSelectModel(m.progress, m.width, m.height)
		m.stages = &stages
	case itemScores:
		m.choice = MenuChoiceScoreboard
		return m, tea.Quit
	case itemQuit:
		m.choice = MenuChoiceQuit
		return m, tea.Quit
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice == MenuChoiceQuit {
		return ""
	}
	if m.stages != nil {
		return m.stages.View()
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(theme.Title.Render("  G E M S  "), m.width))
	b.WriteString("\n\n")

	subtitle := fmt.Sprintf("Stage %d unlocked   %s %d", m.progress.ContinueStage(), theme.StarFilled.Render("★"), m.progress.TotalStars())
	b.WriteString(centerText(theme.Subtitle.Render(subtitle), m.width))
	b.WriteString("\n\n")

	items := [itemCount]string{
		itemContinue:    fmt.Sprintf("Continue (Stage %d)", m.progress.ContinueStage()),
		itemSelectStage: "Select Stage...",
		itemScores:      "High Scores",
		itemQuit:        "Quit",
	}
	for i, item := range items {
		line := "  " + theme.ItemNormal.Render(item)
		if i == m.cursor {
			line = "> " + theme.ItemActive.Render(item)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(theme.Controls.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Choice returns what the player picked.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Stage returns the stage to play after MenuChoicePlay.
func (m MenuModel) Stage() int {
	return m.stage
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice MenuChoice
	Stage  int
	Config core.RuntimeConfig
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(p Progress, cfg core.RuntimeConfig) (MenuResult, error) {
	prog := tea.NewProgram(
		NewMenuModel(p, cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := prog.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.Choice() == MenuChoiceNone {
		return MenuResult{Choice: MenuChoiceQuit, Config: cfg}, nil
	}

	return MenuResult{
		Choice: m.Choice(),
		Stage:  m.Stage(),
		Config: m.Config(),
	}, nil
}
