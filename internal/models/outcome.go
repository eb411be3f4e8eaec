package models

import "math"

// Outcome names a mutually exclusive result within a market family
type Outcome string

const (
	OutcomeHomeWin Outcome = "home_win"
	OutcomeDraw    Outcome = "draw"
	OutcomeAwayWin Outcome = "away_win"
	OutcomeUnder   Outcome = "under"
	OutcomeOver    Outcome = "over"
	OutcomeGoal    Outcome = "goal"
	OutcomeNoGoal  Outcome = "no_goal"
)

// LambdaPair is the expected-goal rate of each side for the rest of the match
type LambdaPair struct {
	Home float64 `json:"home"`
	Away float64 `json:"away"`
}

// MinLambda is the floor applied to every expected-goal rate
const MinLambda = 0.1

// Clamp returns the pair with both rates floored at min
func (l LambdaPair) Clamp(min float64) LambdaPair {
	return LambdaPair{
		Home: clampRate(l.Home, min),
		Away: clampRate(l.Away, min),
	}
}

// Total returns the combined rate of both sides
func (l LambdaPair) Total() float64 {
	return l.Home + l.Away
}

func clampRate(v, min float64) float64 {
	if math.IsNaN(v) || v < min {
		return min
	}
	return v
}

// OutcomeProbability pairs an outcome with its modelled probability
type OutcomeProbability struct {
	Outcome     Outcome `json:"outcome"`
	Probability float64 `json:"probability"`
}

// OutcomeDistribution is an ordered set of outcome probabilities
type OutcomeDistribution []OutcomeProbability

// NewOutcomeDistribution builds a distribution and renormalises it
func NewOutcomeDistribution(entries ...OutcomeProbability) OutcomeDistribution {
	dist := make(OutcomeDistribution, len(entries))
	for i, e := range entries {
		if e.Probability < 0 || math.IsNaN(e.Probability) {
			e.Probability = 0
		}
		dist[i] = e
	}
	return dist.Normalize()
}

// Probability returns the probability of o, or 0 when o is not present
func (d OutcomeDistribution) Probability(o Outcome) float64 {
	for _, e := range d {
		if e.Outcome == o {
			return e.Probability
		}
	}
	return 0
}

// Sum returns the total probability mass
func (d OutcomeDistribution) Sum() float64 {
	total := 0.0
	for _, e := range d {
		total += e.Probability
	}
	return total
}

// Normalize rescales the distribution to sum to 1 when its mass is positive
func (d OutcomeDistribution) Normalize() OutcomeDistribution {
	total := d.Sum()
	out := make(OutcomeDistribution, len(d))
	copy(out, d)
	if total <= 0 {
		return out
	}
	for i := range out {
		out[i].Probability /= total
	}
	return out
}
