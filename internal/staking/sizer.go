// Package staking turns a fair price and a live price into a directional
// recommendation sized with fractional Kelly.
package staking

import (
	"math"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/odds-apex/internal/models"
)

// DefaultKellyMultiplier is the quarter-Kelly fraction applied to every edge
const DefaultKellyMultiplier = 0.25

// Params configures the stake sizer
type Params struct {
	KellyMultiplier float64 `mapstructure:"kelly_multiplier" json:"kelly_multiplier"`
	// MaxStakePerBet caps stake or liability; 0 leaves it uncapped
	MaxStakePerBet float64 `mapstructure:"max_stake_per_bet" json:"max_stake_per_bet"`
}

// DefaultParams returns quarter Kelly with no cap
func DefaultParams() Params {
	return Params{KellyMultiplier: DefaultKellyMultiplier}
}

// Sizer compares fair and live prices and sizes the resulting bet
type Sizer struct {
	params Params
	logger *logrus.Logger
}

// NewSizer creates a new stake sizer
func NewSizer(params Params, logger *logrus.Logger) *Sizer {
	if params.KellyMultiplier <= 0 {
		params.KellyMultiplier = DefaultKellyMultiplier
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Sizer{params: params, logger: logger}
}

// KellyFraction returns the fraction of balance to commit for an edge
func (s *Sizer) KellyFraction(edge float64) float64 {
	return math.Max(0, s.params.KellyMultiplier*edge)
}

// Assess compares the fair price of a market with its live price. A live
// price <= 0 means the market is not offered and yields no recommendation.
func (s *Sizer) Assess(market models.Market, fair models.Price, live, balance float64) models.EdgeAssessment {
	a := models.EdgeAssessment{
		Market:    market,
		Direction: models.DirectionNone,
		FairPrice: fair,
		LivePrice: live,
		Offered:   live > 0,
	}
	if !a.Offered || math.IsNaN(fair.Float64()) {
		return a
	}

	balance = math.Max(0, balance)
	f := fair.Float64()

	switch {
	case f > live:
		// 1 - L/F keeps the edge finite when F is the infinite sentinel
		a.Direction = models.DirectionLay
		a.Edge = 1 - live/f
		a.KellyFraction = s.KellyFraction(a.Edge)
		a.StakeOrLiability = s.capStake(market, balance*a.KellyFraction)
		if live > 1 {
			a.LayStake = a.StakeOrLiability / (live - 1)
		}
		a.ProjectedProfit = a.LayStake
	case f < live:
		a.Direction = models.DirectionBack
		a.Edge = (live - f) / f
		a.KellyFraction = s.KellyFraction(a.Edge)
		a.StakeOrLiability = s.capStake(market, balance*a.KellyFraction)
		a.ProjectedProfit = a.StakeOrLiability * (live - 1)
	}

	s.logger.WithFields(logrus.Fields{
		"market":         market,
		"direction":      a.Direction,
		"fair_price":     fair,
		"live_price":     live,
		"edge":           a.Edge,
		"kelly_fraction": a.KellyFraction,
		"stake":          a.StakeOrLiability,
	}).Debug("Edge assessed")

	return a
}

func (s *Sizer) capStake(market models.Market, stake float64) float64 {
	if s.params.MaxStakePerBet > 0 && stake > s.params.MaxStakePerBet {
		s.logger.WithFields(logrus.Fields{
			"market":           market,
			"calculated_stake": stake,
			"max_stake":        s.params.MaxStakePerBet,
		}).Debug("Stake capped at maximum")
		return s.params.MaxStakePerBet
	}
	return stake
}
