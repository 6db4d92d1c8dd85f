package core

// MaxStages is the number of playable stages.
const MaxStages = 1000

// Stage generation tuning.
const (
	baseTargetScore  = 1000
	targetPerStage   = 50
	targetBonusStep  = 100
	targetBonus      = 500
	baseMoves        = 50
	minMoves         = 20
	movesStepStages  = 20
	lateStageFrom    = 500
	lateStageStep    = 10
	repairAttempts   = 100
	repairColorTries = 10
)

// StageConfig is the immutable description of one stage.
// It is a pure function of StageNumber.
type StageConfig struct {
	StageNumber  int
	Rows         int
	Cols         int
	TargetScore  int
	MaxMoves     int
	Goals        []Goal
	InitialBoard *Board
}

// GridSizeFor returns the square grid size of a stage: 9 up to stage 100,
// 8 up to 300, 7 up to 600 and 6 beyond.
func GridSizeFor(stage int) int {
	switch {
	case stage <= 100:
		return 9
	case stage <= 300:
		return 8
	case stage <= 600:
		return 7
	default:
		return 6
	}
}

// TargetScoreFor returns the score goal of a stage.
func TargetScoreFor(stage int) int {
	return baseTargetScore + stage*targetPerStage + (stage/targetBonusStep)*targetBonus
}

// BaselineMovesFor returns the move budget before the late-stage reduction.
func BaselineMovesFor(stage int) int {
	return max(minMoves, baseMoves-stage/movesStepStages)
}

// MaxMovesFor returns the move budget of a stage. Past stage 500 the budget
// shrinks faster but never below 20.
func MaxMovesFor(stage int) int {
	if stage > lateStageFrom {
		return max(minMoves, baseMoves-stage/movesStepStages-(stage-lateStageFrom)/lateStageStep)
	}
	return BaselineMovesFor(stage)
}

// GenerateStage builds the configuration of a stage. The board is filled from
// an LCG seeded with the stage number and then repaired so that, as far as the
// repair budget allows, it starts without matches.
func GenerateStage(stage int) StageConfig {
	rng := NewSeededRandom(int64(stage))
	size := GridSizeFor(stage)
	target := TargetScoreFor(stage)

	return StageConfig{
		StageNumber:  stage,
		Rows:         size,
		Cols:         size,
		TargetScore:  target,
		MaxMoves:     MaxMovesFor(stage),
		Goals:        []Goal{{Type: GoalScore, Target: target}},
		InitialBoard: generateBoard(size, size, rng),
	}
}

// generateBoard fills a board row by row with seeded colors.
func generateBoard(rows, cols int, rng *SeededRandom) *Board {
	b := NewBoard(rows, cols)
	id := 0
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			id++
			b.Set(P(row, col), &Gem{
				ID:    id,
				Color: Color(rng.Intn(int(ColorCount))),
				Type:  GemNormal,
			})
		}
	}
	repairMatches(b, rng)
	return b
}

// repairMatches recolors matched cells in place until no match remains or the
// attempt budget runs out. A replacement color is one that differs from the
// current color and, if possible, from every orthogonal neighbor.
func repairMatches(b *Board, rng *SeededRandom) {
	for attempt := 0; attempt < repairAttempts; attempt++ {
		matches := FindMatches(b)
		if len(matches) == 0 {
			return
		}
		for _, m := range matches {
			for _, p := range m.Positions {
				if gem := b.Get(p); gem != nil {
					gem.Color = pickRepairColor(b, p, gem.Color, rng)
				}
			}
		}
	}
}

func pickRepairColor(b *Board, p Position, current Color, rng *SeededRandom) Color {
	available := make([]Color, 0, ColorCount-1)
	for _, c := range AllColors() {
		if c != current {
			available = append(available, c)
		}
	}

	for tries := 0; tries < repairColorTries; tries++ {
		candidate := available[rng.Intn(len(available))]
		if !hasNeighborColor(b, p, candidate) {
			return candidate
		}
	}
	return available[0]
}

func hasNeighborColor(b *Board, p Position, c Color) bool {
	for _, n := range []Position{P(p.Row-1, p.Col), P(p.Row+1, p.Col), P(p.Row, p.Col-1), P(p.Row, p.Col+1)} {
		if g := b.Get(n); g != nil && g.Color == c {
			return true
		}
	}
	return false
}
