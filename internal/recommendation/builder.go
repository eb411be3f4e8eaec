// Package recommendation renders edge assessments into presentation records.
// Styling is derived from the assessment direction only.
package recommendation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yourusername/odds-apex/internal/models"
)

// Build pairs each assessment with its line and tag, preserving order
func Build(assessments []models.EdgeAssessment) []models.Recommendation {
	recs := make([]models.Recommendation, 0, len(assessments))
	for _, a := range assessments {
		recs = append(recs, models.Recommendation{
			EdgeAssessment: a,
			Tag:            models.TagFor(a.Direction),
			Line:           Line(a),
		})
	}
	return recs
}

// Line renders a single assessment as human-readable text
func Line(a models.EdgeAssessment) string {
	label := MarketLabel(a.Market)
	switch a.Direction {
	case models.DirectionLay:
		return fmt.Sprintf("Lay %s: Edge: %s, Liability: %s, Lay Stake: %s",
			label, Percent(a.Edge), Money(a.StakeOrLiability), Money(a.LayStake))
	case models.DirectionBack:
		return fmt.Sprintf("Back %s: Edge: %s, Stake: %s, Profit: %s",
			label, Percent(a.Edge), Money(a.StakeOrLiability), Money(a.ProjectedProfit))
	}
	if !a.Offered {
		return fmt.Sprintf("%s: Not offered.", label)
	}
	return fmt.Sprintf("%s: No clear edge.", label)
}

// Text joins the lines of a recommendation set
func Text(recs []models.Recommendation) string {
	var b strings.Builder
	for _, r := range recs {
		b.WriteString(r.Line)
		b.WriteByte('\n')
	}
	return b.String()
}

// MarketLabel returns the display name of a market
func MarketLabel(m models.Market) string {
	switch m {
	case models.MarketHome:
		return "Home"
	case models.MarketDraw:
		return "Draw"
	case models.MarketAway:
		return "Away"
	case models.MarketNextGoal:
		return "Next Goal"
	}
	spec, err := models.ParseMarket(string(m))
	if err != nil {
		return string(m)
	}
	switch spec.Kind {
	case models.MarketKindOver:
		return "Over " + decimal.NewFromFloat(spec.Line).String()
	case models.MarketKindUnder:
		return "Under " + decimal.NewFromFloat(spec.Line).String()
	}
	return string(m)
}

// Money rounds an amount to two decimal places
func Money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Percent renders a fraction as a percentage with two decimal places
func Percent(v float64) string {
	return decimal.NewFromFloat(v).Shift(2).StringFixed(2) + "%"
}

// Price renders a decimal price, or "-" for the infinite sentinel
func Price(p models.Price) string {
	if p.IsInf() {
		return "-"
	}
	return decimal.NewFromFloat(p.Float64()).StringFixed(2)
}
