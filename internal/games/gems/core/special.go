package core

// SpecialGemInfo is a planned power-gem placement.
type SpecialGemInfo struct {
	Pos    Position
	Type   GemType
	Stripe Dir // Only meaningful for GemStriped
}

// FindCrossMatches places a wrapped gem wherever a horizontal and a vertical
// match intersect. Intersections are computed on the full runs, so a cell
// claimed by the horizontal pass still counts as shared.
func FindCrossMatches(matches []Match) []SpecialGemInfo {
	var out []SpecialGemInfo
	for _, h := range matches {
		if h.Dir != Horizontal {
			continue
		}
		for _, v := range matches {
			if v.Dir != Vertical {
				continue
			}
			if p, ok := crossPoint(h, v); ok {
				out = append(out, SpecialGemInfo{Pos: p, Type: GemWrapped})
			}
		}
	}
	return out
}

// crossPoint returns the first cell of h that also belongs to v.
func crossPoint(h, v Match) (Position, bool) {
	vs := make(map[Position]bool, len(v.Run)+len(v.Positions))
	for _, p := range cells(v) {
		vs[p] = true
	}
	for _, p := range cells(h) {
		if vs[p] {
			return p, true
		}
	}
	return Position{}, false
}

// cells returns the full run of a match, falling back to its positions for
// hand-built matches that carry no run.
func cells(m Match) []Position {
	if len(m.Run) > 0 {
		return m.Run
	}
	return m.Positions
}

// DetermineSpecialGems classifies linear matches by their attributed length:
// 4 becomes a striped gem along the match, 5 or more a color bomb. Both are
// placed at index len/2.
func DetermineSpecialGems(matches []Match) []SpecialGemInfo {
	var out []SpecialGemInfo
	for _, m := range matches {
		n := len(m.Positions)
		switch {
		case n == 4:
			out = append(out, SpecialGemInfo{Pos: m.Positions[n/2], Type: GemStriped, Stripe: m.Dir})
		case n >= 5:
			out = append(out, SpecialGemInfo{Pos: m.Positions[n/2], Type: GemColorBomb})
		}
	}
	return out
}

// PrioritizeSpecialGems returns every placement for one commit. Cross matches
// win; matches that form a cross yield no linear placement, and a linear
// placement never lands on a cell already taken by a wrapped gem.
func PrioritizeSpecialGems(matches []Match) []SpecialGemInfo {
	crosses := FindCrossMatches(matches)

	taken := make(map[Position]bool, len(crosses))
	for _, c := range crosses {
		taken[c.Pos] = true
	}

	var linear []Match
	for _, m := range matches {
		if !partOfCross(m, matches) {
			linear = append(linear, m)
		}
	}

	out := append([]SpecialGemInfo(nil), crosses...)
	for _, s := range DetermineSpecialGems(linear) {
		if taken[s.Pos] {
			continue
		}
		taken[s.Pos] = true
		out = append(out, s)
	}
	return out
}

// partOfCross reports whether m intersects any perpendicular match.
func partOfCross(m Match, matches []Match) bool {
	for _, o := range matches {
		if o.Dir == m.Dir {
			continue
		}
		h, v := m, o
		if m.Dir == Vertical {
			h, v = o, m
		}
		if _, ok := crossPoint(h, v); ok {
			return true
		}
	}
	return false
}

// ApplySpecialGems returns a copy of the board with each placement's gem
// upgraded in place. Placements on empty cells are skipped.
func ApplySpecialGems(b *Board, specials []SpecialGemInfo) *Board {
	out := b.Clone()
	for _, s := range specials {
		g := out.Get(s.Pos)
		if g == nil {
			continue
		}
		g.Type = s.Type
		if s.Type == GemStriped {
			g.Stripe = s.Stripe
		}
	}
	return out
}
