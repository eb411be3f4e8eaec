package pricing

import "github.com/yourusername/odds-apex/internal/models"

// PreMatchResult is the output of the pre-match over/under model
type PreMatchResult struct {
	Lambdas    models.LambdaPair          `json:"lambdas"`
	Line       float64                    `json:"line"`
	Model      models.OutcomeDistribution `json:"model"`
	Blended    models.OutcomeDistribution `json:"blended"`
	OverPrice  models.Price               `json:"over_price"`
	UnderPrice models.Price               `json:"under_price"`
}

// PreMatchRates estimates full-match expected goals from season numbers,
// squad availability, form and league position
func PreMatchRates(p Params, snapshot models.PreMatchSnapshot) models.LambdaPair {
	home := preMatchRate(p.PreMatch, snapshot.Home, snapshot.Away)
	away := preMatchRate(p.PreMatch, snapshot.Away, snapshot.Home)
	return models.LambdaPair{Home: home, Away: away}.Clamp(p.LambdaFloor)
}

func preMatchRate(pm PreMatchParams, own, opponent models.PreMatchTeam) float64 {
	rate := (own.AvgScored + own.XGScored + opponent.AvgConceded + opponent.XGConceded) / 4
	rate *= 1 - pm.InjuryPenalty*float64(own.Injuries)
	rate += float64(own.Form)*pm.FormWeight - float64(own.Position)*pm.PositionWeight
	return rate
}

// PreMatchOverUnder prices the goal line before kick-off. When a live over
// price above 1 is supplied the model is blended with the market's view.
// A price of 1 or less carries no market view; the blend is skipped and
// Blended equals Model.
func PreMatchOverUnder(p Params, snapshot models.PreMatchSnapshot, liveOver float64) PreMatchResult {
	line := snapshot.GoalLine()
	spec := models.MarketSpec{Line: line}
	lambdas := PreMatchRates(p, snapshot)
	model := OverUnder(p.OverUnder, lambdas, 0, spec.Threshold())

	blended := model
	if liveOver > 1 {
		weight := p.PreMatch.MarketBlend
		marketOver := ImpliedProbability(liveOver)
		blended = models.NewOutcomeDistribution(
			models.OutcomeProbability{
				Outcome:     models.OutcomeUnder,
				Probability: model.Probability(models.OutcomeUnder)*(1-weight) + (1-marketOver)*weight,
			},
			models.OutcomeProbability{
				Outcome:     models.OutcomeOver,
				Probability: model.Probability(models.OutcomeOver)*(1-weight) + marketOver*weight,
			},
		)
	}

	return PreMatchResult{
		Lambdas:    lambdas,
		Line:       line,
		Model:      model,
		Blended:    blended,
		OverPrice:  FairOdds(blended.Probability(models.OutcomeOver)),
		UnderPrice: FairOdds(blended.Probability(models.OutcomeUnder)),
	}
}
