package core

// MaxStars is the best possible rating.
const MaxStars = 3

// CalculateStarRating rates a finished attempt from 0 to 3 stars.
//
// An unmet primary goal always rates 0. Otherwise one star is awarded, two
// when completion reaches 120% or at least 40% of the stage's baseline move
// budget is left, and three when completion reaches 150%, half the baseline
// is left and the score is at least 80% of one and a half times the target.
//
// Completion is Current over Target. Score goals clamp Current at Target,
// so a met score goal always completes at exactly 100%.
func CalculateStarRating(s GameState) int {
	if len(s.Goals) == 0 {
		return 0
	}
	goal := s.Goals[0]
	if goal.Current < goal.Target || goal.Target <= 0 {
		return 0
	}

	completion := float64(goal.Current) / float64(goal.Target)
	movesRatio := float64(s.Moves) / float64(BaselineMovesFor(s.CurrentStage))
	scoreRatio := min(float64(s.Score)/(float64(goal.Target)*1.5), 1)

	stars := 1
	if completion >= 1.2 || movesRatio >= 0.4 {
		stars = 2
	}
	if completion >= 1.5 && movesRatio >= 0.5 && scoreRatio >= 0.8 {
		stars = 3
	}
	return stars
}
