// Package core provides the deterministic match-3 engine for the Gems game.
// This package is UI-agnostic: it knows rows and columns, never pixels or frames.
package core

import (
	"fmt"
	"strings"
)

// Color is one of the six gem colors.
type Color uint8

const (
	ColorRed Color = iota
	ColorYellow
	ColorBlue
	ColorGreen
	ColorPurple
	ColorOrange
	ColorCount // Sentinel value for iteration
)

// String returns the string representation of a color.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorYellow:
		return "yellow"
	case ColorBlue:
		return "blue"
	case ColorGreen:
		return "green"
	case ColorPurple:
		return "purple"
	case ColorOrange:
		return "orange"
	default:
		return "unknown"
	}
}

// Char returns a single character representation of the color for ASCII boards.
func (c Color) Char() rune {
	switch c {
	case ColorRed:
		return 'R'
	case ColorYellow:
		return 'Y'
	case ColorBlue:
		return 'B'
	case ColorGreen:
		return 'G'
	case ColorPurple:
		return 'P'
	case ColorOrange:
		return 'O'
	default:
		return '?'
	}
}

// ParseColor converts a color name or its single-letter form to a Color.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(s) {
	case "red", "r":
		return ColorRed, true
	case "yellow", "y":
		return ColorYellow, true
	case "blue", "b":
		return ColorBlue, true
	case "green", "g":
		return ColorGreen, true
	case "purple", "p":
		return ColorPurple, true
	case "orange", "o":
		return ColorOrange, true
	default:
		return ColorRed, false
	}
}

// AllColors returns the six gem colors in generation order.
func AllColors() []Color {
	return []Color{ColorRed, ColorYellow, ColorBlue, ColorGreen, ColorPurple, ColorOrange}
}

// GemType distinguishes normal gems from power gems.
type GemType uint8

const (
	GemNormal GemType = iota
	GemStriped
	GemWrapped
	GemColorBomb
)

// String returns the type name.
func (t GemType) String() string {
	switch t {
	case GemNormal:
		return "normal"
	case GemStriped:
		return "striped"
	case GemWrapped:
		return "wrapped"
	case GemColorBomb:
		return "colorBomb"
	default:
		return "unknown"
	}
}

// IsSpecial reports whether the type has an activation effect.
func (t GemType) IsSpecial() bool {
	return t == GemStriped || t == GemWrapped || t == GemColorBomb
}

// Dir is the orientation of a match or a striped gem.
type Dir uint8

const (
	Horizontal Dir = iota
	Vertical
)

// String returns the orientation name.
func (d Dir) String() string {
	if d == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Position addresses a board cell.
type Position struct {
	Row int
	Col int
}

// P is a convenience constructor for Position.
func P(row, col int) Position {
	return Position{Row: row, Col: col}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Manhattan returns the Manhattan distance to another position.
func (p Position) Manhattan(other Position) int {
	dr := p.Row - other.Row
	dc := p.Col - other.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// Adjacent reports whether two positions share an edge.
func (p Position) Adjacent(other Position) bool {
	return p.Manhattan(other) == 1
}

// Gem is a colored tile occupying one cell.
// Stripe is only meaningful when Type is GemStriped.
type Gem struct {
	ID     int
	Color  Color
	Type   GemType
	Stripe Dir
	Pos    Position
}

// Match is a run of three or more same-colored gems.
// Positions excludes cells already claimed by an earlier match; Run is the
// full run as scanned, claimed cells included.
type Match struct {
	Dir       Dir
	Positions []Position
	Run       []Position
}

// Len returns the number of positions attributed to the match.
func (m Match) Len() int {
	return len(m.Positions)
}

// GoalType enumerates stage goal kinds. Only GoalScore is advanced by the engine.
type GoalType string

const (
	GoalScore         GoalType = "score"
	GoalCollect       GoalType = "collect"
	GoalClearBlock    GoalType = "clearBlock"
	GoalClearObstacle GoalType = "clearObstacle"
)

// Goal is a stage objective. Current never exceeds Target.
type Goal struct {
	Type     GoalType
	Target   int
	Current  int
	GemColor *Color // Only used by GoalCollect
}

// Done reports whether the goal is satisfied.
func (g Goal) Done() bool {
	return g.Current >= g.Target
}

// advance adds points to the goal, clamped at Target.
func (g Goal) advance(points int) Goal {
	g.Current += points
	if g.Current > g.Target {
		g.Current = g.Target
	}
	return g
}
