package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// stagesPerPage is the number of stages listed at once.
const stagesPerPage = 10

// StageSelectModel lets the player pick an unlocked stage.
// It is hosted by MenuModel and never ends the program itself.
type StageSelectModel struct {
	progress  Progress
	cursor    int // Zero-based stage index
	width     int
	height    int
	keyMapper *KeyMapper
	chosen    int // Picked stage, 0 while choosing
	back      bool
	message   string
}

// NewStageSelectModel creates a selector with the cursor on the continue stage.
func NewStageSelectModel(p Progress, width, height int) StageSelectModel {
	return StageSelectModel{
		progress:  p,
		cursor:    p.ContinueStage() - 1,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Update handles messages.
func (m StageSelectModel) Update(msg tea.Msg) (StageSelectModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleAction(m.keyMapper.MapKeyToMenuAction(msg)), nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m StageSelectModel) handleAction(action MenuAction) StageSelectModel {
	last := max(m.progress.MaxStages-1, 0)
	m.message = ""

	switch action {
	case MenuActionUp:
		m.cursor = max(m.cursor-1, 0)
	case MenuActionDown:
		m.cursor = min(m.cursor+1, last)
	case MenuActionLeft:
		m.cursor = max(m.cursor-stagesPerPage, 0)
	case MenuActionRight:
		m.cursor = min(m.cursor+stagesPerPage, last)
	case MenuActionSelect:
		stage := m.cursor + 1
		if !m.progress.IsUnlocked(stage) {
			m.message = fmt.Sprintf("Stage %d is locked. Clear stage %d first.", stage, m.progress.Unlocked)
			return m
		}
		m.chosen = stage
	case MenuActionBack, MenuActionQuit:
		m.back = true
	}
	return m
}

// View renders the current page of stages.
func (m StageSelectModel) View() string {
	var b strings.Builder

	page := m.cursor / stagesPerPage
	pages := (m.progress.MaxStages + stagesPerPage - 1) / stagesPerPage

	b.WriteString("\n")
	b.WriteString(centerText(theme.Title.Render("SELECT STAGE"), m.width))
	b.WriteString("\n\n")
	header := fmt.Sprintf("Page %d/%d   %s %d", page+1, pages, theme.StarFilled.Render("★"), m.progress.TotalStars())
	b.WriteString(centerText(theme.Subtitle.Render(header), m.width))
	b.WriteString("\n\n")

	first := page * stagesPerPage
	for i := first; i < min(first+stagesPerPage, m.progress.MaxStages); i++ {
		b.WriteString(centerText(m.stageLine(i), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.message != "" {
		b.WriteString(centerText(theme.Description.Render(m.message), m.width))
	}
	b.WriteString("\n")
	b.WriteString(centerText(theme.Controls.Render("Up/Down: Stage  |  Left/Right: Page  |  Enter: Play  |  Esc: Back"), m.width))

	return b.String()
}

// stageLine renders one entry of the list.
func (m StageSelectModel) stageLine(index int) string {
	stage := index + 1
	cursor := "  "
	if index == m.cursor {
		cursor = "> "
	}

	if !m.progress.IsUnlocked(stage) {
		return theme.ItemLocked.Render(fmt.Sprintf("%sStage %4d   locked          ", cursor, stage))
	}

	style := theme.ItemNormal
	if index == m.cursor {
		style = theme.ItemActive
	}
	best := ""
	if r, ok := m.progress.Records[stage]; ok && r.BestScore > 0 {
		best = fmt.Sprintf("best %d", r.BestScore)
	}
	return style.Render(fmt.Sprintf("%sStage %4d   ", cursor, stage)) +
		renderStars(m.progress.Stars(stage)) +
		theme.Description.Render(fmt.Sprintf("  %-12s", best))
}

// renderStars renders a rating out of three with the theme's star styles.
func renderStars(stars int) string {
	stars = max(0, min(stars, 3))
	return theme.StarFilled.Render(strings.Repeat("★", stars)) +
		theme.StarEmpty.Render(strings.Repeat("☆", 3-stars))
}

// Chosen returns the picked stage, or 0 while still choosing.
func (m StageSelectModel) Chosen() int {
	return m.chosen
}

// WantsBack returns true if the player left the selector.
func (m StageSelectModel) WantsBack() bool {
	return m.back
}

// Cursor returns the highlighted stage.
func (m StageSelectModel) Cursor() int {
	return m.cursor + 1
}
