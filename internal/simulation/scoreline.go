// Package simulation provides seeded Monte Carlo checks of the goal model
// and of the bankroll risk of following its recommendations.
package simulation

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/yourusername/odds-apex/internal/metrics"
	"github.com/yourusername/odds-apex/internal/models"
)

// ScorelineConfig configures a scoreline simulation
type ScorelineConfig struct {
	Iterations int
	Seed       int64
	PZero      float64
	// Lines are the over/under lines to report
	Lines []float64
}

// Interval is a two-sided percentile interval
type Interval struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// ScorelineResult summarises simulated final scores
type ScorelineResult struct {
	Iterations          int                 `json:"iterations"`
	Seed                int64               `json:"seed"`
	Lambdas             models.LambdaPair   `json:"lambdas"`
	HomeWin             float64             `json:"home_win"`
	Draw                float64             `json:"draw"`
	AwayWin             float64             `json:"away_win"`
	AnotherGoal         float64             `json:"another_goal"`
	MeanTotalGoals      float64             `json:"mean_total_goals"`
	StdTotalGoals       float64             `json:"std_total_goals"`
	Over                map[string]float64  `json:"over"`
	ConfidenceIntervals map[string]Interval `json:"confidence_intervals"`
}

// MatchOdds returns the simulated result frequencies as a distribution
func (r ScorelineResult) MatchOdds() models.OutcomeDistribution {
	return models.NewOutcomeDistribution(
		models.OutcomeProbability{Outcome: models.OutcomeHomeWin, Probability: r.HomeWin},
		models.OutcomeProbability{Outcome: models.OutcomeDraw, Probability: r.Draw},
		models.OutcomeProbability{Outcome: models.OutcomeAwayWin, Probability: r.AwayWin},
	)
}

// SimulateScorelines samples the remaining goals of each side from the
// zero-inflated Poisson and reports final-result frequencies
func SimulateScorelines(ctx context.Context, lambdas models.LambdaPair, currentHome, currentAway int, cfg ScorelineConfig) (ScorelineResult, error) {
	if cfg.Iterations <= 0 {
		cfg.Iterations = 10000
	}
	if cfg.PZero < 0 || cfg.PZero >= 1 {
		return ScorelineResult{}, fmt.Errorf("p_zero must be in [0, 1), got %v", cfg.PZero)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	start := time.Now()

	rng := rand.New(rand.NewSource(cfg.Seed))
	totals := make([]float64, cfg.Iterations)
	overCounts := make([]int, len(cfg.Lines))
	homeWins, draws, awayWins, more := 0, 0, 0, 0

	for i := 0; i < cfg.Iterations; i++ {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return ScorelineResult{}, err
			}
		}
		h := sampleGoals(rng, lambdas.Home, cfg.PZero)
		a := sampleGoals(rng, lambdas.Away, cfg.PZero)

		finalHome, finalAway := currentHome+h, currentAway+a
		switch {
		case finalHome > finalAway:
			homeWins++
		case finalHome < finalAway:
			awayWins++
		default:
			draws++
		}
		if h+a > 0 {
			more++
		}

		total := finalHome + finalAway
		totals[i] = float64(total)
		for j, line := range cfg.Lines {
			if float64(total) > line {
				overCounts[j]++
			}
		}
	}

	n := float64(cfg.Iterations)
	mean, std := meanStd(totals)
	over := make(map[string]float64, len(cfg.Lines))
	for j, line := range cfg.Lines {
		over[string(models.OverMarket(line))] = float64(overCounts[j]) / n
	}

	metrics.RecordSimulation(time.Since(start).Seconds())

	return ScorelineResult{
		Iterations:          cfg.Iterations,
		Seed:                cfg.Seed,
		Lambdas:             lambdas,
		HomeWin:             float64(homeWins) / n,
		Draw:                float64(draws) / n,
		AwayWin:             float64(awayWins) / n,
		AnotherGoal:         float64(more) / n,
		MeanTotalGoals:      mean,
		StdTotalGoals:       std,
		Over:                over,
		ConfidenceIntervals: CalculateConfidenceIntervals(totals, []float64{0.9, 0.95, 0.99}),
	}, nil
}

// sampleGoals draws from the zero-inflated Poisson by inversion
func sampleGoals(rng *rand.Rand, lambda, pZero float64) int {
	if lambda <= 0 || rng.Float64() < pZero {
		return 0
	}
	u := rng.Float64()
	k := 0
	p := math.Exp(-lambda)
	cdf := p
	for u > cdf && k < 100 {
		k++
		p *= lambda / float64(k)
		cdf += p
	}
	return k
}
