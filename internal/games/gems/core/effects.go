package core

// Per-cell scores for special gem activations.
const (
	ScoreStriped          = 20
	ScoreWrapped          = 30
	ScoreColorBomb        = 50
	ScoreStripedStriped   = 30
	ScoreStripedWrapped   = 40
	ScoreStripedColorBomb = 60
	ScoreWrappedWrapped   = 50
	ScoreWrappedColorBomb = 70
	ScoreColorBombPair    = 100
)

// Effect is the outcome of activating a special gem or a combo: the occupied
// cells to remove and the points they are worth.
type Effect struct {
	Positions []Position
	Score     int
}

// Empty reports whether the effect removes nothing.
func (e Effect) Empty() bool {
	return len(e.Positions) == 0
}

// cellSet collects unique occupied positions in insertion order.
type cellSet struct {
	b     *Board
	seen  map[Position]bool
	order []Position
}

func newCellSet(b *Board) *cellSet {
	return &cellSet{b: b, seen: make(map[Position]bool)}
}

// add records p if it is on the board, occupied and not yet present.
func (s *cellSet) add(p Position) {
	if s.seen[p] || s.b.Get(p) == nil {
		return
	}
	s.seen[p] = true
	s.order = append(s.order, p)
}

func (s *cellSet) row(r int) {
	for c := 0; c < s.b.Cols; c++ {
		s.add(P(r, c))
	}
}

func (s *cellSet) col(c int) {
	for r := 0; r < s.b.Rows; r++ {
		s.add(P(r, c))
	}
}

func (s *cellSet) square(center Position, radius int) {
	for r := center.Row - radius; r <= center.Row+radius; r++ {
		for c := center.Col - radius; c <= center.Col+radius; c++ {
			s.add(P(r, c))
		}
	}
}

func (s *cellSet) color(col Color) {
	for _, p := range s.b.Positions() {
		if g := s.b.Get(p); g != nil && g.Color == col {
			s.add(p)
		}
	}
}

func (s *cellSet) all() {
	for _, p := range s.b.Positions() {
		s.add(p)
	}
}

func (s *cellSet) effect(unit int) Effect {
	return Effect{Positions: s.order, Score: len(s.order) * unit}
}

// ActivateSpecialGem computes the removal set of a single special gem at
// its logical position. Normal gems, nil gems and gems off the board have no effect.
func ActivateSpecialGem(g *Gem, b *Board) Effect {
	if g == nil || b == nil || !b.InBounds(g.Pos) {
		return Effect{}
	}
	s := newCellSet(b)
	switch g.Type {
	case GemStriped:
		if g.Stripe == Vertical {
			s.col(g.Pos.Col)
		} else {
			s.row(g.Pos.Row)
		}
		return s.effect(ScoreStriped)
	case GemWrapped:
		s.square(g.Pos, 1)
		return s.effect(ScoreWrapped)
	case GemColorBomb:
		s.color(g.Color)
		return s.effect(ScoreColorBomb)
	default:
		return Effect{}
	}
}

// ActivateSpecialGemCombo computes the effect of two special gems swapped
// into each other. The pair is keyed by type regardless of order; a is the
// gem that was moved and its position is the swap cell. ok is false for any
// pair that is not a combo.
func ActivateSpecialGemCombo(a, c *Gem, b *Board) (Effect, bool) {
	if a == nil || c == nil || b == nil {
		return Effect{}, false
	}
	if !a.Type.IsSpecial() || !c.Type.IsSpecial() {
		return Effect{}, false
	}
	// Order the pair so lo.Type <= hi.Type: striped < wrapped < colorBomb.
	lo, hi := a, c
	if lo.Type > hi.Type {
		lo, hi = hi, lo
	}

	s := newCellSet(b)
	switch {
	case lo.Type == GemStriped && hi.Type == GemStriped:
		s.row(a.Pos.Row)
		s.col(a.Pos.Col)
		return s.effect(ScoreStripedStriped), true

	case lo.Type == GemStriped && hi.Type == GemWrapped:
		center := hi.Pos
		if lo.Stripe == Vertical {
			for col := center.Col - 1; col <= center.Col+1; col++ {
				if col >= 0 && col < b.Cols {
					s.col(col)
				}
			}
		} else {
			for row := center.Row - 1; row <= center.Row+1; row++ {
				if row >= 0 && row < b.Rows {
					s.row(row)
				}
			}
		}
		return s.effect(ScoreStripedWrapped), true

	case lo.Type == GemStriped && hi.Type == GemColorBomb:
		s.color(lo.Color)
		return s.effect(ScoreStripedColorBomb), true

	case lo.Type == GemWrapped && hi.Type == GemWrapped:
		s.square(a.Pos, 2)
		return s.effect(ScoreWrappedWrapped), true

	case lo.Type == GemWrapped && hi.Type == GemColorBomb:
		s.color(lo.Color)
		return s.effect(ScoreWrappedColorBomb), true

	case lo.Type == GemColorBomb && hi.Type == GemColorBomb:
		s.all()
		return s.effect(ScoreColorBombPair), true
	}
	return Effect{}, false
}
