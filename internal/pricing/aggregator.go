package pricing

import (
	"math"

	"github.com/yourusername/odds-apex/internal/models"
)

// MatchOdds collapses the joint grid of additional goals into home win, draw
// and away win probabilities given the current score. Mass is accumulated by
// goal difference so mirrored rates give exactly mirrored probabilities.
func MatchOdds(g GridParams, lambdas models.LambdaPair, currentHome, currentAway int) models.OutcomeDistribution {
	n := g.Size
	homeRow := scoringRow(lambdas.Home, n, g.PZero)
	awayRow := scoringRow(lambdas.Away, n, g.PZero)

	byDiff := make([]float64, 2*n-1)
	for gh := 0; gh < n; gh++ {
		for ga := 0; ga < n; ga++ {
			byDiff[gh-ga+n-1] += homeRow[gh] * awayRow[ga]
		}
	}

	// final goal difference of byDiff[idx] is idx-(n-1)+offset; wins are
	// summed outward from the draw so the cost is independent of the score
	offset := currentHome - currentAway
	homeWin, draw, awayWin := 0.0, 0.0, 0.0
	for idx := 0; idx < len(byDiff); idx++ {
		switch final := idx - (n - 1) + offset; {
		case final > 0:
			homeWin += byDiff[idx]
		case final == 0:
			draw = byDiff[idx]
		}
	}
	for idx := len(byDiff) - 1; idx >= 0; idx-- {
		if idx-(n-1)+offset < 0 {
			awayWin += byDiff[idx]
		}
	}

	return models.NewOutcomeDistribution(
		models.OutcomeProbability{Outcome: models.OutcomeHomeWin, Probability: homeWin},
		models.OutcomeProbability{Outcome: models.OutcomeDraw, Probability: draw},
		models.OutcomeProbability{Outcome: models.OutcomeAwayWin, Probability: awayWin},
	)
}

// OverUnder splits the grid into totals at or below threshold (under) and
// the complement (over). Mass outside the grid counts as over.
func OverUnder(g GridParams, lambdas models.LambdaPair, goalsSoFar, threshold int) models.OutcomeDistribution {
	n := g.Size
	homeRow := scoringRow(lambdas.Home, n, g.PZero)
	awayRow := scoringRow(lambdas.Away, n, g.PZero)

	under := 0.0
	for gh := 0; gh < n; gh++ {
		for ga := 0; ga < n; ga++ {
			if goalsSoFar+gh+ga <= threshold {
				under += homeRow[gh] * awayRow[ga]
			}
		}
	}
	under = math.Min(1, under)

	return models.NewOutcomeDistribution(
		models.OutcomeProbability{Outcome: models.OutcomeUnder, Probability: under},
		models.OutcomeProbability{Outcome: models.OutcomeOver, Probability: 1 - under},
	)
}

// NextGoal returns the probability of at least one more goal, held inside
// the configured band
func NextGoal(p Params, lambdas models.LambdaPair, elapsed float64) models.OutcomeDistribution {
	ng := p.NextGoal
	remaining := p.Remaining(elapsed)
	prob := 1 - math.Exp(-lambdas.Total()*remaining/ng.HorizonMinutes)
	prob = math.Max(ng.MinProbability, math.Min(ng.MaxProbability, prob))

	return models.NewOutcomeDistribution(
		models.OutcomeProbability{Outcome: models.OutcomeGoal, Probability: prob},
		models.OutcomeProbability{Outcome: models.OutcomeNoGoal, Probability: 1 - prob},
	)
}
