package pricing

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/odds-apex/internal/models"
)

func TestMatchOddsSymmetricRates(t *testing.T) {
	p := DefaultParams()
	dist := MatchOdds(p.MatchOdds, models.LambdaPair{Home: 1.5, Away: 1.5}, 0, 0)

	home := dist.Probability(models.OutcomeHomeWin)
	away := dist.Probability(models.OutcomeAwayWin)
	draw := dist.Probability(models.OutcomeDraw)

	assert.Equal(t, home, away)
	assert.InDelta(t, 1.0, dist.Sum(), 1e-12)
	// equal rates of 1.5 still leave each win more likely than the draw
	assert.Less(t, draw, home)
	assert.Greater(t, draw, 0.2)
}

func TestMatchOddsLowSymmetricRatesFavourDraw(t *testing.T) {
	p := DefaultParams()
	dist := MatchOdds(p.MatchOdds, models.LambdaPair{Home: 0.5, Away: 0.5}, 1, 1)

	draw := dist.Probability(models.OutcomeDraw)
	assert.Equal(t, dist.Probability(models.OutcomeHomeWin), dist.Probability(models.OutcomeAwayWin))
	assert.Greater(t, draw, dist.Probability(models.OutcomeHomeWin))
}

func TestMatchOddsSumsToOne(t *testing.T) {
	p := DefaultParams()
	for _, lambdas := range []models.LambdaPair{
		{Home: 0.1, Away: 0.1},
		{Home: 0.4, Away: 2.8},
		{Home: 3.5, Away: 0.2},
		{Home: 6, Away: 6},
	} {
		for _, score := range [][2]int{{0, 0}, {1, 0}, {0, 2}, {3, 3}, {5, 0}, {0, 7}} {
			dist := MatchOdds(p.MatchOdds, lambdas, score[0], score[1])
			assert.InDelta(t, 1.0, dist.Sum(), 1e-12, "lambdas=%+v score=%v", lambdas, score)
			for _, e := range dist {
				assert.GreaterOrEqual(t, e.Probability, 0.0)
			}
		}
	}
}

func TestMatchOddsCurrentScoreMatters(t *testing.T) {
	p := DefaultParams()
	lambdas := models.LambdaPair{Home: 0.3, Away: 0.3}

	leading := MatchOdds(p.MatchOdds, lambdas, 2, 0)
	trailing := MatchOdds(p.MatchOdds, lambdas, 0, 2)

	assert.Greater(t, leading.Probability(models.OutcomeHomeWin), 0.9)
	assert.InDelta(t, leading.Probability(models.OutcomeHomeWin), trailing.Probability(models.OutcomeAwayWin), 1e-15)
	assert.InDelta(t, leading.Probability(models.OutcomeDraw), trailing.Probability(models.OutcomeDraw), 1e-15)
}

func TestMatchOddsUnreachableOutcome(t *testing.T) {
	p := DefaultParams()
	// a six goal lead cannot be overturned inside a 0..5 grid
	dist := MatchOdds(p.MatchOdds, models.LambdaPair{Home: 0.1, Away: 4}, 6, 0)

	assert.Equal(t, 0.0, dist.Probability(models.OutcomeDraw))
	assert.Equal(t, 0.0, dist.Probability(models.OutcomeAwayWin))
	assert.InDelta(t, 1.0, dist.Probability(models.OutcomeHomeWin), 1e-12)
}

func TestMatchOddsLargeGoalDifference(t *testing.T) {
	p := DefaultParams()
	lambdas := models.LambdaPair{Home: 1.2, Away: 1.2}

	done := make(chan models.OutcomeDistribution, 2)
	go func() { done <- MatchOdds(p.MatchOdds, lambdas, 1_000_000_000, 0) }()
	go func() { done <- MatchOdds(p.MatchOdds, lambdas, 0, 1_000_000_000) }()

	for i := 0; i < 2; i++ {
		select {
		case dist := <-done:
			assert.InDelta(t, 1.0, dist.Sum(), 1e-12)
			assert.Zero(t, dist.Probability(models.OutcomeDraw))
			win := math.Max(dist.Probability(models.OutcomeHomeWin), dist.Probability(models.OutcomeAwayWin))
			assert.InDelta(t, 1.0, win, 1e-12)
		case <-time.After(time.Second):
			t.Fatal("MatchOdds did not return for a large goal difference")
		}
	}
}

func TestOverUnderMatchesPoissonTotal(t *testing.T) {
	p := DefaultParams()
	lambdas := models.LambdaPair{Home: 1.2, Away: 1.3}

	dist := OverUnder(p.OverUnder, lambdas, 0, 2)

	mu := lambdas.Total()
	expectedUnder := math.Exp(-mu) * (1 + mu + mu*mu/2)
	assert.InDelta(t, expectedUnder, dist.Probability(models.OutcomeUnder), 1e-12)
	assert.InDelta(t, 1-expectedUnder, dist.Probability(models.OutcomeOver), 1e-12)
	assert.InDelta(t, 1.0, dist.Sum(), 1e-12)
}

func TestOverUnderLineAlreadyPassed(t *testing.T) {
	p := DefaultParams()
	dist := OverUnder(p.OverUnder, models.LambdaPair{Home: 1, Away: 1}, 3, 2)

	assert.Equal(t, 0.0, dist.Probability(models.OutcomeUnder))
	assert.Equal(t, 1.0, dist.Probability(models.OutcomeOver))
	assert.True(t, FairOdds(dist.Probability(models.OutcomeUnder)).IsInf())
}

func TestNextGoal(t *testing.T) {
	p := DefaultParams()

	tests := []struct {
		name     string
		lambdas  models.LambdaPair
		elapsed  float64
		expected float64
	}{
		{"inside band", models.LambdaPair{Home: 1.0, Away: 1.0}, 45, 1 - math.Exp(-2)},
		{"clamped high", models.LambdaPair{Home: 3, Away: 3}, 0, 0.90},
		{"clamped low at full time", models.LambdaPair{Home: 1, Away: 1}, 90, 0.30},
		{"stoppage time", models.LambdaPair{Home: 1, Away: 1}, 97, 0.30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist := NextGoal(p, tt.lambdas, tt.elapsed)
			assert.InDelta(t, tt.expected, dist.Probability(models.OutcomeGoal), 1e-12)
			assert.InDelta(t, 1.0, dist.Sum(), 1e-12)
		})
	}
}
