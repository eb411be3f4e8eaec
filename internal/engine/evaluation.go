package engine

import (
	"github.com/yourusername/odds-apex/internal/models"
	"github.com/yourusername/odds-apex/internal/pricing"
)

// LineDistribution is the over/under split for one goal line
type LineDistribution struct {
	Line         float64                    `json:"line"`
	Distribution models.OutcomeDistribution `json:"distribution"`
}

// Evaluation is the complete result of pricing one in-play snapshot
type Evaluation struct {
	Profile         string                         `json:"profile"`
	Lambdas         models.LambdaPair              `json:"lambdas"`
	MatchOdds       models.OutcomeDistribution     `json:"match_odds"`
	NextGoal        models.OutcomeDistribution     `json:"next_goal"`
	OverUnder       []LineDistribution             `json:"over_under"`
	FairPrices      map[models.Market]models.Price `json:"fair_prices"`
	Overround       float64                        `json:"overround"`
	Assessments     []models.EdgeAssessment        `json:"-"`
	Recommendations []models.Recommendation        `json:"recommendations"`
}

// Clone returns a deep copy so cached results cannot be mutated by callers
func (e *Evaluation) Clone() *Evaluation {
	if e == nil {
		return nil
	}
	out := *e
	out.MatchOdds = cloneDistribution(e.MatchOdds)
	out.NextGoal = cloneDistribution(e.NextGoal)
	if e.OverUnder != nil {
		out.OverUnder = make([]LineDistribution, len(e.OverUnder))
		for i, ld := range e.OverUnder {
			out.OverUnder[i] = LineDistribution{Line: ld.Line, Distribution: cloneDistribution(ld.Distribution)}
		}
	}
	out.FairPrices = clonePrices(e.FairPrices)
	out.Assessments = cloneAssessments(e.Assessments)
	out.Recommendations = cloneRecommendations(e.Recommendations)
	return &out
}

// PreMatchEvaluation is the result of pricing a goal line before kick-off
type PreMatchEvaluation struct {
	Profile string `json:"profile"`
	pricing.PreMatchResult
	FairPrices      map[models.Market]models.Price `json:"fair_prices"`
	Assessments     []models.EdgeAssessment        `json:"-"`
	Recommendations []models.Recommendation        `json:"recommendations"`
}

// Clone returns a deep copy
func (e *PreMatchEvaluation) Clone() *PreMatchEvaluation {
	if e == nil {
		return nil
	}
	out := *e
	out.Model = cloneDistribution(e.Model)
	out.Blended = cloneDistribution(e.Blended)
	out.FairPrices = clonePrices(e.FairPrices)
	out.Assessments = cloneAssessments(e.Assessments)
	out.Recommendations = cloneRecommendations(e.Recommendations)
	return &out
}

func cloneDistribution(d models.OutcomeDistribution) models.OutcomeDistribution {
	if d == nil {
		return nil
	}
	out := make(models.OutcomeDistribution, len(d))
	copy(out, d)
	return out
}

func cloneAssessments(a []models.EdgeAssessment) []models.EdgeAssessment {
	if a == nil {
		return nil
	}
	out := make([]models.EdgeAssessment, len(a))
	copy(out, a)
	return out
}

func cloneRecommendations(r []models.Recommendation) []models.Recommendation {
	if r == nil {
		return nil
	}
	out := make([]models.Recommendation, len(r))
	copy(out, r)
	return out
}

func clonePrices(m map[models.Market]models.Price) map[models.Market]models.Price {
	if m == nil {
		return nil
	}
	out := make(map[models.Market]models.Price, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
