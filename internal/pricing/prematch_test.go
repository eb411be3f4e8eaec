package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/odds-apex/internal/models"
)

func preMatchFixture() models.PreMatchSnapshot {
	return models.PreMatchSnapshot{
		Home: models.PreMatchTeam{
			AvgScored:   1.6,
			AvgConceded: 0.9,
			XGScored:    1.4,
			XGConceded:  1.1,
			Injuries:    2,
			Position:    5,
			Form:        3,
		},
		Away: models.PreMatchTeam{
			AvgScored:   1.1,
			AvgConceded: 1.2,
			XGScored:    1.0,
			XGConceded:  1.0,
			Injuries:    0,
			Position:    14,
			Form:        1,
		},
	}
}

func TestPreMatchRates(t *testing.T) {
	lambdas := PreMatchRates(DefaultParams(), preMatchFixture())

	// (1.6 + 1.4 + 1.2 + 1.0) / 4 = 1.3, less 6% for injuries, +0.3 form, -0.05 position
	assert.InDelta(t, 1.472, lambdas.Home, 1e-9)
	// (1.1 + 1.0 + 0.9 + 1.1) / 4 = 1.025, +0.1 form, -0.14 position
	assert.InDelta(t, 0.985, lambdas.Away, 1e-9)
}

func TestPreMatchRatesFloored(t *testing.T) {
	snapshot := models.PreMatchSnapshot{
		Home: models.PreMatchTeam{Position: 20, Form: -5},
	}

	lambdas := PreMatchRates(DefaultParams(), snapshot)

	assert.Equal(t, models.MinLambda, lambdas.Home)
	assert.Equal(t, models.MinLambda, lambdas.Away)
}

func TestPreMatchOverUnderWithoutMarket(t *testing.T) {
	p := DefaultParams()
	result := PreMatchOverUnder(p, preMatchFixture(), 0)

	mu := result.Lambdas.Total()
	under := math.Exp(-mu) * (1 + mu + mu*mu/2)

	assert.Equal(t, models.DefaultGoalLine, result.Line)
	assert.Equal(t, result.Model, result.Blended)
	assert.InDelta(t, under, result.Model.Probability(models.OutcomeUnder), 1e-9)
	assert.InDelta(t, 1/(1-under), result.OverPrice.Float64(), 1e-6)
	assert.InDelta(t, 1/under, result.UnderPrice.Float64(), 1e-6)
}

func TestPreMatchOverUnderSkipsBlendWithoutUsablePrice(t *testing.T) {
	p := DefaultParams()
	for _, liveOver := range []float64{0, -2, 0.5, 1} {
		result := PreMatchOverUnder(p, preMatchFixture(), liveOver)
		assert.Equal(t, result.Model, result.Blended, "live over %v", liveOver)
		assert.InDelta(t, 1/result.Model.Probability(models.OutcomeOver), result.OverPrice.Float64(), 1e-9)
	}
}

func TestPreMatchOverUnderBlendsMarket(t *testing.T) {
	p := DefaultParams()
	result := PreMatchOverUnder(p, preMatchFixture(), 2.0)

	modelOver := result.Model.Probability(models.OutcomeOver)
	expected := modelOver*0.7 + 0.5*0.3

	assert.InDelta(t, expected, result.Blended.Probability(models.OutcomeOver), 1e-9)
	assert.InDelta(t, 1.0, result.Blended.Sum(), 1e-12)
	assert.InDelta(t, 1/expected, result.OverPrice.Float64(), 1e-6)
}

func TestPreMatchOverUnderCustomLine(t *testing.T) {
	p := DefaultParams()
	snapshot := preMatchFixture()
	snapshot.Line = 3.5

	result := PreMatchOverUnder(p, snapshot, 0)
	mu := result.Lambdas.Total()
	under := 0.0
	for k := 0; k <= 3; k++ {
		under += math.Exp(-mu) * math.Pow(mu, float64(k)) / math.Gamma(float64(k+1))
	}

	assert.Equal(t, 3.5, result.Line)
	assert.InDelta(t, under, result.Model.Probability(models.OutcomeUnder), 1e-9)
}
