package gems

import (
	"fmt"
	"strings"
	"unicode/utf8"

	platformcore "github.com/vovakirdan/tui-gems/internal/core"
	"github.com/vovakirdan/tui-gems/internal/games/gems/core"
)

const (
	hudHeight    = 3 // Title, score line, goal bar
	footerHeight = 2 // Banner, controls
	minScreenW   = 40
)

var gemColors = [core.ColorCount]platformcore.Color{
	core.ColorRed:    platformcore.ColorBrightRed,
	core.ColorYellow: platformcore.ColorBrightYellow,
	core.ColorBlue:   platformcore.ColorBrightBlue,
	core.ColorGreen:  platformcore.ColorBrightGreen,
	core.ColorPurple: platformcore.ColorBrightMagenta,
	core.ColorOrange: platformcore.ColorOrange,
}

var gemShapes = [core.ColorCount]rune{
	core.ColorRed:    '♦',
	core.ColorYellow: '★',
	core.ColorBlue:   '●',
	core.ColorGreen:  '▲',
	core.ColorPurple: '◆',
	core.ColorOrange: '■',
}

var (
	styleFrame  = platformcore.Fg(platformcore.ColorGray)
	styleText   = platformcore.Fg(platformcore.ColorWhite)
	styleTitle  = platformcore.Fg(platformcore.ColorBrightCyan).Bold()
	styleBanner = platformcore.Fg(platformcore.ColorBrightYellow).Bold()
	styleBomb   = platformcore.Fg(platformcore.ColorBrightWhite).Bold()
	styleMuted  = platformcore.Fg(platformcore.ColorGray)
)

// cellWidth returns the configured number of columns per gem.
func (g *Game) cellWidth() int {
	if g.cfg.Display.CellWidth == 2 {
		return 2
	}
	return 3
}

// layoutSize returns the minimum screen size for the current stage.
func (g *Game) layoutSize() (w, h int) {
	b := g.state.Board
	if b == nil {
		return minScreenW, hudHeight + footerHeight
	}
	boardW := b.Cols*g.cellWidth() + 2
	boardH := b.Rows + 2
	return max(boardW, minScreenW), hudHeight + boardH + footerHeight
}

// boardRect returns the framed board area centered on the screen.
func (g *Game) boardRect(dst *platformcore.Screen) platformcore.Rect {
	b := g.state.Board
	w := b.Cols*g.cellWidth() + 2
	h := b.Rows + 2
	return platformcore.NewRect((dst.Width()-w)/2, hudHeight, w, h)
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.tooSmall || g.state.Board == nil {
		g.renderTooSmall(dst)
		return
	}

	frame := g.boardRect(dst)
	g.renderHUD(dst)
	dst.DrawBox(frame, styleFrame)
	g.renderBoard(dst, frame)
	g.renderFooter(dst, frame)
	g.renderOverlays(dst, frame)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	w, h := g.layoutSize()
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small", styleText)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", w, h), styleMuted)
}

// renderHUD draws the stage, score, moves and goal progress.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	st := g.state
	dst.DrawTextCentered(0, fmt.Sprintf("GEMS  Stage %d/%d", g.stage, g.maxStage()), styleTitle)

	info := fmt.Sprintf("Score: %d   Moves: %d", st.Score, st.Moves)
	if st.ComboCount > 0 {
		info += fmt.Sprintf("   Combo x%.1f", st.ComboMultiplier())
	}
	dst.DrawTextCentered(1, info, styleText)

	if len(st.Goals) > 0 {
		dst.DrawTextCentered(2, goalBar(st.Goals[0], 20), styleMuted)
	}
}

// goalBar renders a goal as a fixed-width progress bar.
func goalBar(goal core.Goal, width int) string {
	filled := 0
	if goal.Target > 0 {
		filled = goal.Current * width / goal.Target
	}
	filled = platformcore.Clamp(filled, 0, width)
	return fmt.Sprintf("[%s%s] %d/%d", strings.Repeat("█", filled), strings.Repeat("░", width-filled), goal.Current, goal.Target)
}

// renderBoard draws every gem, the cursor, the selection and the hint.
func (g *Game) renderBoard(dst *platformcore.Screen, frame platformcore.Rect) {
	b := g.state.Board
	cw := g.cellWidth()
	hintOn := g.hintTicks > 0

	for row := 0; row < b.Rows; row++ {
		for col := 0; col < b.Cols; col++ {
			p := core.P(row, col)
			x := frame.X + 1 + col*cw
			y := frame.Y + 1 + row

			text, st := g.gemCell(b.Get(p))
			if hintOn && (p == g.hint.From || p == g.hint.To) {
				st = st.Bold()
				text = markHint(text)
			}
			if sel := g.state.SelectedGem; sel != nil && *sel == p {
				st = st.Bold().Reverse()
			} else if p == g.cursor && !g.state.IsPaused {
				st = st.Reverse()
			}
			dst.DrawText(x, y, text, st)
		}
	}
}

// gemCell returns the cell text and style for a gem. The text is always
// exactly cellWidth runes wide.
func (g *Game) gemCell(gem *core.Gem) (string, platformcore.Style) {
	cw := g.cellWidth()
	if gem == nil {
		return strings.Repeat(" ", cw), styleMuted
	}

	glyph := gemShapes[gem.Color]
	if g.cfg.Display.GlyphSet == "letters" {
		glyph = gem.Color.Char()
	}
	st := platformcore.Fg(gemColors[gem.Color])

	var left, right rune = ' ', ' '
	switch gem.Type {
	case core.GemStriped:
		if gem.Stripe == core.Vertical {
			left, right = '|', '|'
		} else {
			left, right = '-', '-'
		}
	case core.GemWrapped:
		left, right = '[', ']'
		st = st.Bold()
	case core.GemColorBomb:
		glyph = '✹'
		left, right = '(', ')'
		st = styleBomb
	}

	if cw == 2 {
		// Two columns: the glyph plus one marker.
		return string([]rune{glyph, right}), st
	}
	return string([]rune{left, glyph, right}), st
}

// markHint replaces the blank padding of a cell with arrows.
func markHint(text string) string {
	r := []rune(text)
	if r[0] == ' ' {
		r[0] = '›'
	}
	if last := len(r) - 1; last > 0 && r[last] == ' ' {
		r[last] = '‹'
	}
	return string(r)
}

// renderFooter draws the banner and control hints below the board.
func (g *Game) renderFooter(dst *platformcore.Screen, frame platformcore.Rect) {
	y := frame.Bottom()
	if g.banner != "" {
		dst.DrawTextCentered(y, g.banner, styleBanner)
	}
	controls := "←↑↓→ move  ⏎ swap  ? hint  p pause  r retry  q quit"
	if utf8.RuneCountInString(controls) <= dst.Width() {
		dst.DrawTextCentered(y+1, controls, styleMuted)
	}
}

// renderOverlays draws pause and end-of-stage boxes over the board.
func (g *Game) renderOverlays(dst *platformcore.Screen, frame platformcore.Rect) {
	switch g.state.Phase() {
	case core.PhaseCleared:
		stars := core.CalculateStarRating(g.state)
		next := "N: next stage   R: retry"
		if g.stage >= g.maxStage() {
			next = "All stages complete!   R: retry"
		}
		g.drawOverlay(dst, frame, styleBanner,
			fmt.Sprintf("STAGE %d CLEAR", g.stage),
			starText(stars),
			fmt.Sprintf("Score: %d", g.state.Score),
			next,
		)
	case core.PhaseGameOver:
		g.drawOverlay(dst, frame, platformcore.Fg(platformcore.ColorBrightRed).Bold(),
			"OUT OF MOVES",
			fmt.Sprintf("Score: %d / %d", g.state.Score, core.TargetScoreFor(g.stage)),
			"R: retry   Q: quit",
		)
	default:
		if g.state.IsPaused {
			g.drawOverlay(dst, frame, styleTitle, "PAUSED", "Press P to resume")
		}
	}
}

// drawOverlay draws a boxed message centered on the board.
func (g *Game) drawOverlay(dst *platformcore.Screen, frame platformcore.Rect, st platformcore.Style, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	box := frame.Centered(maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ', styleText)
	dst.DrawBox(box, st)
	for i, line := range lines {
		x := box.X + (box.W-utf8.RuneCountInString(line))/2
		dst.DrawText(x, box.Y+1+i, line, st)
	}
}

// starText renders a rating as filled and empty stars.
func starText(stars int) string {
	stars = platformcore.Clamp(stars, 0, core.MaxStars)
	return strings.Repeat("★", stars) + strings.Repeat("☆", core.MaxStars-stars)
}

// comboText is the banner shown for a combo chain.
func comboText(combo int) string {
	return fmt.Sprintf("Combo x%d!", combo)
}
