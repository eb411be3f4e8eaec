package pricing

import (
	"math"

	"github.com/yourusername/odds-apex/internal/models"
)

// FairOdds converts a probability into a fair decimal price. A zero
// probability yields the infinite sentinel.
func FairOdds(p float64) models.Price {
	if p > 0 && !math.IsNaN(p) {
		return models.Price(1 / p)
	}
	return models.InfinitePrice
}

// ImpliedProbability converts a decimal price into its implied probability
func ImpliedProbability(price float64) float64 {
	if price <= 0 {
		return 0
	}
	return 1 / price
}

// Overround returns the bookmaker margin implied by a complete set of prices.
// Markets that are not offered make the book incomplete and return 0.
func Overround(prices ...float64) float64 {
	if len(prices) == 0 {
		return 0
	}
	total := 0.0
	for _, price := range prices {
		if price <= 0 {
			return 0
		}
		total += ImpliedProbability(price)
	}
	return total - 1
}

// FairPrices maps every outcome of a distribution to its fair price
func FairPrices(dist models.OutcomeDistribution) map[models.Outcome]models.Price {
	prices := make(map[models.Outcome]models.Price, len(dist))
	for _, e := range dist {
		prices[e.Outcome] = FairOdds(e.Probability)
	}
	return prices
}
