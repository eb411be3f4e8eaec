package models

// Direction is the recommended side of a bet
type Direction string

const (
	DirectionBack Direction = "BACK"
	DirectionLay  Direction = "LAY"
	DirectionNone Direction = "NONE"
)

// EdgeAssessment compares a fair price with a live price for one market
type EdgeAssessment struct {
	Market           Market    `json:"market"`
	Direction        Direction `json:"direction"`
	FairPrice        Price     `json:"fair_price"`
	LivePrice        float64   `json:"live_price"`
	Offered          bool      `json:"offered"`
	Edge             float64   `json:"edge"`
	KellyFraction    float64   `json:"kelly_fraction"`
	StakeOrLiability float64   `json:"stake_or_liability"`
	LayStake         float64   `json:"lay_stake,omitempty"`
	ProjectedProfit  float64   `json:"projected_profit"`
}

// HasEdge reports whether a bet is recommended
func (e EdgeAssessment) HasEdge() bool {
	return e.Direction == DirectionBack || e.Direction == DirectionLay
}

// Tag is the semantic styling hint handed to the presentation layer
type Tag string

const (
	TagLay    Tag = "lay"
	TagBack   Tag = "back"
	TagNormal Tag = "normal"
)

// TagFor maps a direction to its presentation tag
func TagFor(d Direction) Tag {
	switch d {
	case DirectionLay:
		return TagLay
	case DirectionBack:
		return TagBack
	default:
		return TagNormal
	}
}

// Recommendation is an assessment paired with a human-readable line
type Recommendation struct {
	EdgeAssessment
	Tag  Tag    `json:"tag"`
	Line string `json:"line"`
}
