package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Market names a priced market
type Market string

const (
	MarketHome     Market = "home"
	MarketDraw     Market = "draw"
	MarketAway     Market = "away"
	MarketNextGoal Market = "next_goal"
)

// MarketKind groups markets that are priced the same way
type MarketKind string

const (
	MarketKindMatchOdds MarketKind = "match_odds"
	MarketKindNextGoal  MarketKind = "next_goal"
	MarketKindOver      MarketKind = "over"
	MarketKindUnder     MarketKind = "under"
)

const (
	overPrefix  = "over_"
	underPrefix = "under_"
)

// MarketSpec is the parsed form of a market name
type MarketSpec struct {
	Market  Market
	Kind    MarketKind
	Outcome Outcome
	Line    float64
}

// Threshold returns the highest goal total that still settles as under
func (s MarketSpec) Threshold() int {
	return int(math.Floor(s.Line))
}

// OverMarket returns the market name for over the given line
func OverMarket(line float64) Market {
	return Market(overPrefix + formatLine(line))
}

// UnderMarket returns the market name for under the given line
func UnderMarket(line float64) Market {
	return Market(underPrefix + formatLine(line))
}

func formatLine(line float64) string {
	return strconv.FormatFloat(line, 'f', -1, 64)
}

// ParseMarket validates a market name
func ParseMarket(name string) (MarketSpec, error) {
	m := Market(strings.ToLower(strings.TrimSpace(name)))
	switch m {
	case MarketHome:
		return MarketSpec{Market: m, Kind: MarketKindMatchOdds, Outcome: OutcomeHomeWin}, nil
	case MarketDraw:
		return MarketSpec{Market: m, Kind: MarketKindMatchOdds, Outcome: OutcomeDraw}, nil
	case MarketAway:
		return MarketSpec{Market: m, Kind: MarketKindMatchOdds, Outcome: OutcomeAwayWin}, nil
	case MarketNextGoal:
		return MarketSpec{Market: m, Kind: MarketKindNextGoal, Outcome: OutcomeGoal}, nil
	}

	s := string(m)
	switch {
	case strings.HasPrefix(s, overPrefix):
		line, err := parseLine(strings.TrimPrefix(s, overPrefix))
		if err != nil {
			return MarketSpec{}, fmt.Errorf("%w: %s", ErrUnknownMarket, name)
		}
		return MarketSpec{Market: OverMarket(line), Kind: MarketKindOver, Outcome: OutcomeOver, Line: line}, nil
	case strings.HasPrefix(s, underPrefix):
		line, err := parseLine(strings.TrimPrefix(s, underPrefix))
		if err != nil {
			return MarketSpec{}, fmt.Errorf("%w: %s", ErrUnknownMarket, name)
		}
		return MarketSpec{Market: UnderMarket(line), Kind: MarketKindUnder, Outcome: OutcomeUnder, Line: line}, nil
	}
	return MarketSpec{}, fmt.Errorf("%w: %s", ErrUnknownMarket, name)
}

// only half-goal lines settle without a push
func parseLine(s string) (float64, error) {
	line, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if line < 0 || line-math.Floor(line) != 0.5 {
		return 0, fmt.Errorf("line %s is not a half-goal line", s)
	}
	return line, nil
}

// MarketQuote is a live decimal price for a market; a price <= 0 means the
// market is not offered
type MarketQuote struct {
	Market Market  `json:"market" mapstructure:"market"`
	Price  float64 `json:"price" mapstructure:"price" validate:"finite"`
}

// IsOffered reports whether the quote carries a usable price
func (q MarketQuote) IsOffered() bool {
	return q.Price > 0
}
