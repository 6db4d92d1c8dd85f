package core

import (
	"errors"
	"fmt"
	"strings"
)

// Board is the game grid. Cells are stored in row-major order: index = row*Cols + col.
// A nil cell is empty. Boards are treated as values: transitions Clone before mutating.
type Board struct {
	Rows  int
	Cols  int
	Cells []*Gem
}

// NewBoard creates an empty board with the given dimensions.
func NewBoard(rows, cols int) *Board {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Board{
		Rows:  rows,
		Cols:  cols,
		Cells: make([]*Gem, rows*cols),
	}
}

// index converts a position to a flat array index.
func (b *Board) index(p Position) int {
	return p.Row*b.Cols + p.Col
}

// InBounds returns true if the position is within the board.
func (b *Board) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < b.Rows && p.Col >= 0 && p.Col < b.Cols
}

// Get returns the gem at the given position, or nil for empty or out-of-range cells.
func (b *Board) Get(p Position) *Gem {
	if b == nil || !b.InBounds(p) {
		return nil
	}
	return b.Cells[b.index(p)]
}

// At is Get with separate coordinates.
func (b *Board) At(row, col int) *Gem {
	return b.Get(P(row, col))
}

// Set places a gem at the given position and updates its logical position.
// Passing nil empties the cell. Out-of-range writes are ignored.
func (b *Board) Set(p Position, g *Gem) {
	if !b.InBounds(p) {
		return
	}
	if g != nil {
		g.Pos = p
	}
	b.Cells[b.index(p)] = g
}

// Clear empties the cell at the given position.
func (b *Board) Clear(p Position) {
	b.Set(p, nil)
}

// Swap exchanges the contents of two cells, updating gem positions.
func (b *Board) Swap(a, c Position) {
	if !b.InBounds(a) || !b.InBounds(c) {
		return
	}
	ga, gc := b.Get(a), b.Get(c)
	b.Set(a, gc)
	b.Set(c, ga)
}

// Clone returns a deep copy of the board. Gems are copied, not shared.
func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}
	cells := make([]*Gem, len(b.Cells))
	for i, g := range b.Cells {
		if g != nil {
			cp := *g
			cells[i] = &cp
		}
	}
	return &Board{
		Rows:  b.Rows,
		Cols:  b.Cols,
		Cells: cells,
	}
}

// Equal returns true if two boards have the same shape and the same gem
// colors, types and stripe directions in every cell. Gem IDs are ignored.
func (b *Board) Equal(other *Board) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.Rows != other.Rows || b.Cols != other.Cols {
		return false
	}
	for i, g := range b.Cells {
		o := other.Cells[i]
		if (g == nil) != (o == nil) {
			return false
		}
		if g == nil {
			continue
		}
		if g.Color != o.Color || g.Type != o.Type {
			return false
		}
		if g.Type == GemStriped && g.Stripe != o.Stripe {
			return false
		}
	}
	return true
}

// Count returns the number of occupied cells.
func (b *Board) Count() int {
	n := 0
	for _, g := range b.Cells {
		if g != nil {
			n++
		}
	}
	return n
}

// IsSettled reports whether no column has an empty cell beneath a gem.
func (b *Board) IsSettled() bool {
	for col := 0; col < b.Cols; col++ {
		seenGem := false
		for row := 0; row < b.Rows; row++ {
			if b.At(row, col) != nil {
				seenGem = true
			} else if seenGem {
				return false
			}
		}
	}
	return true
}

// Positions returns every position in row-major order.
func (b *Board) Positions() []Position {
	ps := make([]Position, 0, b.Rows*b.Cols)
	for row := 0; row < b.Rows; row++ {
		for col := 0; col < b.Cols; col++ {
			ps = append(ps, P(row, col))
		}
	}
	return ps
}

// ErrRaggedBoard is returned by ParseBoard when rows differ in length.
var ErrRaggedBoard = errors.New("core: ragged board rows")

// ParseBoard builds a board from text rows. A row is either a run of single
// glyphs ("RRYB") or whitespace-separated tokens ("R R- Y|").
//
// Glyphs: a color letter (R Y B G P O) for a normal gem, "." for an empty cell.
// Suffixes: "-" horizontal striped, "|" vertical striped, "*" wrapped, "@" color bomb.
func ParseBoard(rows ...string) (*Board, error) {
	tokens := make([][]string, len(rows))
	for i, row := range rows {
		if strings.ContainsAny(row, " \t") {
			tokens[i] = strings.Fields(row)
		} else {
			tokens[i] = splitGlyphs(row)
		}
		if i > 0 && len(tokens[i]) != len(tokens[0]) {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedBoard, i, len(tokens[i]), len(tokens[0]))
		}
	}

	cols := 0
	if len(tokens) > 0 {
		cols = len(tokens[0])
	}
	b := NewBoard(len(rows), cols)
	id := 1
	for r, row := range tokens {
		for c, tok := range row {
			g, err := parseToken(tok)
			if err != nil {
				return nil, fmt.Errorf("core: cell %s: %w", P(r, c), err)
			}
			if g != nil {
				g.ID = id
				id++
			}
			b.Set(P(r, c), g)
		}
	}
	return b, nil
}

// MustParseBoard is ParseBoard that panics on malformed input. Intended for tests and fixtures.
func MustParseBoard(rows ...string) *Board {
	b, err := ParseBoard(rows...)
	if err != nil {
		panic(err)
	}
	return b
}

// splitGlyphs splits a compact row, attaching suffix runes to the preceding letter.
func splitGlyphs(row string) []string {
	var out []string
	for _, r := range row {
		if strings.ContainsRune("-|*@", r) && len(out) > 0 {
			out[len(out)-1] += string(r)
			continue
		}
		out = append(out, string(r))
	}
	return out
}

// parseToken converts a single cell token into a gem (nil for empty).
func parseToken(tok string) (*Gem, error) {
	if tok == "." {
		return nil, nil
	}
	if tok == "" {
		return nil, errors.New("empty token")
	}
	color, ok := ParseColor(tok[:1])
	if !ok {
		return nil, fmt.Errorf("unknown color %q", tok[:1])
	}
	g := &Gem{Color: color, Type: GemNormal}
	switch tok[1:] {
	case "":
	case "-":
		g.Type, g.Stripe = GemStriped, Horizontal
	case "|":
		g.Type, g.Stripe = GemStriped, Vertical
	case "*":
		g.Type = GemWrapped
	case "@":
		g.Type = GemColorBomb
	default:
		return nil, fmt.Errorf("unknown suffix %q", tok[1:])
	}
	return g, nil
}

// Glyph returns the ParseBoard token for a gem.
func (g *Gem) Glyph() string {
	if g == nil {
		return "."
	}
	s := string(g.Color.Char())
	switch g.Type {
	case GemStriped:
		if g.Stripe == Vertical {
			return s + "|"
		}
		return s + "-"
	case GemWrapped:
		return s + "*"
	case GemColorBomb:
		return s + "@"
	}
	return s
}

// Lines returns the board as token rows accepted by ParseBoard.
func (b *Board) Lines() []string {
	lines := make([]string, b.Rows)
	for row := 0; row < b.Rows; row++ {
		toks := make([]string, b.Cols)
		for col := 0; col < b.Cols; col++ {
			toks[col] = b.At(row, col).Glyph()
		}
		lines[row] = strings.Join(toks, " ")
	}
	return lines
}

// String returns the board as newline-separated token rows.
func (b *Board) String() string {
	return strings.Join(b.Lines(), "\n")
}

// MaxID returns the largest gem ID on the board, or 0 when it is empty.
func (b *Board) MaxID() int {
	id := 0
	for _, g := range b.Cells {
		if g != nil && g.ID > id {
			id = g.ID
		}
	}
	return id
}
