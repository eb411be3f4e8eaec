package pricing

import "github.com/yourusername/odds-apex/internal/models"

// AdjustForScoreline reweights both rates by the current goal difference
// (home minus away) and the match phase.
func AdjustForScoreline(p Params, lambdas models.LambdaPair, goalDiff int, elapsed float64) models.LambdaPair {
	s := p.Scoreline
	home, away := lambdas.Home, lambdas.Away

	switch {
	case goalDiff == 0:
		home *= s.Level
		away *= s.Level
	case goalDiff == 1:
		home *= s.OneGoalLeader
		away *= s.OneGoalTrailer
	case goalDiff == -1:
		home *= s.OneGoalTrailer
		away *= s.OneGoalLeader
	default:
		home, away = adjustMultiGoal(s, home, away, goalDiff)
	}

	if elapsed > s.LateMinute && goalDiff != 0 {
		home, away = adjustLate(s, home, away, goalDiff)
	}

	return models.LambdaPair{Home: home, Away: away}
}

func adjustMultiGoal(s ScorelineParams, home, away float64, goalDiff int) (float64, float64) {
	switch s.Mode {
	case ScorelineFlat:
		return home * s.MultiGoalLeader, away * s.MultiGoalLeader
	case ScorelineHomeAnchored:
		if goalDiff > 0 {
			return home * s.MultiGoalLeader, away * s.MultiGoalTrailer
		}
		return home * s.MultiGoalLeader, away * s.MultiGoalLeader
	default:
		if goalDiff > 0 {
			return home * s.MultiGoalLeader, away * s.MultiGoalTrailer
		}
		return home * s.MultiGoalTrailer, away * s.MultiGoalLeader
	}
}

func adjustLate(s ScorelineParams, home, away float64, goalDiff int) (float64, float64) {
	if s.Mode == ScorelineHomeAnchored {
		if goalDiff > 0 {
			return home * s.LateLeader, away * s.LateTrailer
		}
		return home * s.LateLeader, away * s.LateLeader
	}
	if goalDiff > 0 {
		return home * s.LateLeader, away * s.LateTrailer
	}
	return home * s.LateTrailer, away * s.LateLeader
}
