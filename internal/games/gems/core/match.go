package core

// MinMatchLength is the shortest run that counts as a match.
const MinMatchLength = 3

// FindMatches scans every row left-to-right, then every column top-to-bottom,
// and returns each run of MinMatchLength or more same-colored gems.
//
// A cell claimed by an earlier match is left out of later matches, so the
// vertical arm of an L or T shape can report fewer positions than its real
// length. The union of all positions is still complete.
func FindMatches(b *Board) []Match {
	var matches []Match
	if b == nil {
		return matches
	}
	claimed := make(map[Position]bool)

	emit := func(dir Dir, run []Position) {
		positions := make([]Position, 0, len(run))
		for _, p := range run {
			if claimed[p] {
				continue
			}
			claimed[p] = true
			positions = append(positions, p)
		}
		if len(positions) > 0 {
			matches = append(matches, Match{Dir: dir, Positions: positions, Run: run})
		}
	}

	// Horizontal runs
	for row := 0; row < b.Rows; row++ {
		scanLine(b.Cols, func(i int) *Gem { return b.At(row, i) }, func(start, count int) {
			run := make([]Position, count)
			for i := range run {
				run[i] = P(row, start+i)
			}
			emit(Horizontal, run)
		})
	}

	// Vertical runs
	for col := 0; col < b.Cols; col++ {
		scanLine(b.Rows, func(i int) *Gem { return b.At(i, col) }, func(start, count int) {
			run := make([]Position, count)
			for i := range run {
				run[i] = P(start+i, col)
			}
			emit(Vertical, run)
		})
	}

	return matches
}

// scanLine walks one row or column of length n and reports every run of
// equal, non-empty colors that is at least MinMatchLength long.
func scanLine(n int, at func(i int) *Gem, found func(start, count int)) {
	if n == 0 {
		return
	}
	count := 1
	start := 0
	var current Color
	hasColor := false
	if g := at(0); g != nil {
		current, hasColor = g.Color, true
	}

	// i == n acts as a sentinel that flushes the final run.
	for i := 1; i <= n; i++ {
		var g *Gem
		if i < n {
			g = at(i)
		}
		if g != nil && hasColor && g.Color == current {
			count++
			continue
		}
		if hasColor && count >= MinMatchLength {
			found(start, count)
		}
		if g != nil {
			count, start = 1, i
			current, hasColor = g.Color, true
		} else {
			count = 0
			hasColor = false
		}
	}
}

// IsPositionInMatch reports whether (row, col) belongs to any of the matches.
func IsPositionInMatch(row, col int, matches []Match) bool {
	for _, m := range matches {
		for _, p := range m.Positions {
			if p.Row == row && p.Col == col {
				return true
			}
		}
	}
	return false
}

// ShouldCreateSpecialGem reports whether a match is long enough to yield a power gem.
func ShouldCreateSpecialGem(m Match) bool {
	return len(m.Positions) >= 4
}

// MatchedPositions returns the union of all match positions in discovery order.
func MatchedPositions(matches []Match) []Position {
	seen := make(map[Position]bool)
	var out []Position
	for _, m := range matches {
		for _, p := range m.Positions {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}
