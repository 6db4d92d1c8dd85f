package core

// Drop records one gem movement produced by gravity. FromRow is negative for
// gems spawned above the board: -1 is the slot directly above row 0.
type Drop struct {
	Col     int
	FromRow int
	ToRow   int
	GemID   int
}

// Spawned reports whether the drop introduced a new gem.
func (d Drop) Spawned() bool {
	return d.FromRow < 0
}

// Gravity compacts columns and refills them with random normal gems.
// The random source is injected so cascades can be reproduced in tests.
type Gravity struct {
	rng    Source
	nextID int
}

// NewGravity creates a resolver drawing refill colors from rng.
// New gem IDs start above firstID.
func NewGravity(rng Source, firstID int) *Gravity {
	return &Gravity{rng: rng, nextID: firstID}
}

// Apply returns a settled copy of the board together with every movement.
// Each column is compacted bottom-up preserving relative order, then empty
// slots at the top are filled with new gems.
func (g *Gravity) Apply(b *Board) (*Board, []Drop) {
	out := b.Clone()
	var drops []Drop

	for col := 0; col < out.Cols; col++ {
		write := out.Rows - 1
		for row := out.Rows - 1; row >= 0; row-- {
			gem := out.At(row, col)
			if gem == nil {
				continue
			}
			if write != row {
				out.Set(P(write, col), gem)
				out.Clear(P(row, col))
				drops = append(drops, Drop{Col: col, FromRow: row, ToRow: write, GemID: gem.ID})
			}
			write--
		}

		for row := write; row >= 0; row-- {
			gem := g.spawn()
			out.Set(P(row, col), gem)
			drops = append(drops, Drop{Col: col, FromRow: row - write - 1, ToRow: row, GemID: gem.ID})
		}
	}

	return out, drops
}

// spawn creates a normal gem with a uniformly random color.
func (g *Gravity) spawn() *Gem {
	g.nextID++
	return &Gem{
		ID:    g.nextID,
		Color: Color(g.rng.Intn(int(ColorCount))),
		Type:  GemNormal,
	}
}
