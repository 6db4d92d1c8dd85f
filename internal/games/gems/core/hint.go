package core

// Hint is a swap that would produce at least one match.
type Hint struct {
	From Position
	To   Position
}

// FindPossibleMatches scans cells in row-major order and tries swapping each
// occupied cell with its right neighbor, then its bottom neighbor. It returns
// the first swap that yields a match; ok is false when no swap does.
func FindPossibleMatches(b *Board) (Hint, bool) {
	if b == nil {
		return Hint{}, false
	}
	for row := 0; row < b.Rows; row++ {
		for col := 0; col < b.Cols; col++ {
			if b.At(row, col) == nil {
				continue
			}
			from := P(row, col)
			for _, to := range []Position{P(row, col+1), P(row+1, col)} {
				if b.Get(to) == nil {
					continue
				}
				if swapMatches(b, from, to) {
					return Hint{From: from, To: to}, true
				}
			}
		}
	}
	return Hint{}, false
}

func swapMatches(b *Board, from, to Position) bool {
	test := b.Clone()
	test.Swap(from, to)
	return len(FindMatches(test)) > 0
}
