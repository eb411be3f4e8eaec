// Package pricing implements the goal model that turns match statistics into
// outcome probabilities and fair prices.
package pricing

import (
	"fmt"
	"sort"

	"github.com/yourusername/odds-apex/internal/models"
)

// ScorelineMode selects how a lead of two or more goals reshapes the rates
type ScorelineMode string

const (
	// ScorelineDirectional slows the leader and pushes the trailer
	ScorelineDirectional ScorelineMode = "directional"
	// ScorelineFlat slows both sides once the lead is two goals or more
	ScorelineFlat ScorelineMode = "flat"
	// ScorelineHomeAnchored always treats the home side as the leader
	ScorelineHomeAnchored ScorelineMode = "home_anchored"
)

// DecayParams configures the time-decay adjustment
type DecayParams struct {
	Rate             float64 `mapstructure:"rate" json:"rate"`
	Floor            float64 `mapstructure:"floor" json:"floor"`
	XGBoostThreshold float64 `mapstructure:"xg_boost_threshold" json:"xg_boost_threshold"`
	XGBoost          float64 `mapstructure:"xg_boost" json:"xg_boost"`
	LateWindow       float64 `mapstructure:"late_window" json:"late_window"`
	LateShrink       float64 `mapstructure:"late_shrink" json:"late_shrink"`
	ScaleLateShrink  bool    `mapstructure:"scale_late_shrink" json:"scale_late_shrink"`
	MinRate          float64 `mapstructure:"min_rate" json:"min_rate"`
}

// ScorelineParams configures the score-state adjustment
type ScorelineParams struct {
	Mode             ScorelineMode `mapstructure:"mode" json:"mode"`
	OneGoalLeader    float64       `mapstructure:"one_goal_leader" json:"one_goal_leader"`
	OneGoalTrailer   float64       `mapstructure:"one_goal_trailer" json:"one_goal_trailer"`
	Level            float64       `mapstructure:"level" json:"level"`
	MultiGoalLeader  float64       `mapstructure:"multi_goal_leader" json:"multi_goal_leader"`
	MultiGoalTrailer float64       `mapstructure:"multi_goal_trailer" json:"multi_goal_trailer"`
	LateMinute       float64       `mapstructure:"late_minute" json:"late_minute"`
	LateLeader       float64       `mapstructure:"late_leader" json:"late_leader"`
	LateTrailer      float64       `mapstructure:"late_trailer" json:"late_trailer"`
}

// BlendParams configures how live and pre-match signals combine
type BlendParams struct {
	PriorWeight           float64 `mapstructure:"prior_weight" json:"prior_weight"`
	ScalePriorByRemaining bool    `mapstructure:"scale_prior_by_remaining" json:"scale_prior_by_remaining"`
	ConcededFloor         float64 `mapstructure:"conceded_floor" json:"conceded_floor"`
	PossessionDivisor     float64 `mapstructure:"possession_divisor" json:"possession_divisor"`
	XGBoostThreshold      float64 `mapstructure:"xg_boost_threshold" json:"xg_boost_threshold"`
	XGBoost               float64 `mapstructure:"xg_boost" json:"xg_boost"`
	ShotsDivisor          float64 `mapstructure:"shots_divisor" json:"shots_divisor"`
	TouchesBaseline       float64 `mapstructure:"touches_baseline" json:"touches_baseline"`
	TouchesDivisor        float64 `mapstructure:"touches_divisor" json:"touches_divisor"`
	CornersBaseline       float64 `mapstructure:"corners_baseline" json:"corners_baseline"`
	CornersDivisor        float64 `mapstructure:"corners_divisor" json:"corners_divisor"`
}

// GridParams bounds the scoreline grid and sets the zero inflation
type GridParams struct {
	Size  int     `mapstructure:"size" json:"size"`
	PZero float64 `mapstructure:"p_zero" json:"p_zero"`
}

// NextGoalParams configures the next-goal probability band
type NextGoalParams struct {
	HorizonMinutes float64 `mapstructure:"horizon_minutes" json:"horizon_minutes"`
	MinProbability float64 `mapstructure:"min_probability" json:"min_probability"`
	MaxProbability float64 `mapstructure:"max_probability" json:"max_probability"`
}

// PreMatchParams configures the pre-match goals model
type PreMatchParams struct {
	InjuryPenalty  float64 `mapstructure:"injury_penalty" json:"injury_penalty"`
	FormWeight     float64 `mapstructure:"form_weight" json:"form_weight"`
	PositionWeight float64 `mapstructure:"position_weight" json:"position_weight"`
	MarketBlend    float64 `mapstructure:"market_blend" json:"market_blend"`
}

// Params is the complete coefficient set of the goal model
type Params struct {
	MatchMinutes float64         `mapstructure:"match_minutes" json:"match_minutes"`
	LambdaFloor  float64         `mapstructure:"lambda_floor" json:"lambda_floor"`
	Decay        DecayParams     `mapstructure:"decay" json:"decay"`
	Scoreline    ScorelineParams `mapstructure:"scoreline" json:"scoreline"`
	Blend        BlendParams     `mapstructure:"blend" json:"blend"`
	MatchOdds    GridParams      `mapstructure:"match_odds" json:"match_odds"`
	OverUnder    GridParams      `mapstructure:"over_under" json:"over_under"`
	NextGoal     NextGoalParams  `mapstructure:"next_goal" json:"next_goal"`
	PreMatch     PreMatchParams  `mapstructure:"pre_match" json:"pre_match"`
}

// Profile names
const (
	ProfileInPlay             = "in_play"
	ProfileClassic            = "classic"
	ProfileConservative       = "conservative"
	ProfileConservativeScaled = "conservative_scaled"
)

// DefaultParams returns the in_play profile
func DefaultParams() Params {
	return Params{
		MatchMinutes: 90,
		LambdaFloor:  models.MinLambda,
		Decay: DecayParams{
			Rate:             0.01,
			Floor:            0.6,
			XGBoostThreshold: 1.5,
			XGBoost:          1.15,
			LateWindow:       10,
			LateShrink:       0.65,
			MinRate:          0.1,
		},
		Scoreline: ScorelineParams{
			Mode:             ScorelineDirectional,
			OneGoalLeader:    0.9,
			OneGoalTrailer:   1.2,
			Level:            1.05,
			MultiGoalLeader:  0.8,
			MultiGoalTrailer: 1.3,
			LateMinute:       75,
			LateLeader:       0.85,
			LateTrailer:      1.15,
		},
		Blend: BlendParams{
			PriorWeight:       0.15,
			ConcededFloor:     0.75,
			PossessionDivisor: 200,
			XGBoostThreshold:  1.2,
			XGBoost:           1.15,
			ShotsDivisor:      20,
			TouchesBaseline:   20,
			TouchesDivisor:    200,
			CornersBaseline:   4,
			CornersDivisor:    50,
		},
		MatchOdds: GridParams{Size: 6, PZero: 0.06},
		OverUnder: GridParams{Size: 10, PZero: 0},
		NextGoal: NextGoalParams{
			HorizonMinutes: 45,
			MinProbability: 0.30,
			MaxProbability: 0.90,
		},
		PreMatch: PreMatchParams{
			InjuryPenalty:  0.03,
			FormWeight:     0.1,
			PositionWeight: 0.01,
			MarketBlend:    0.3,
		},
	}
}

var profiles = map[string]func() Params{
	ProfileInPlay: DefaultParams,
	ProfileClassic: func() Params {
		p := DefaultParams()
		p.Scoreline.Mode = ScorelineHomeAnchored
		return p
	},
	ProfileConservative: func() Params {
		p := DefaultParams()
		p.Decay.Floor = 0.4
		p.Decay.LateShrink = 0.75
		p.Scoreline.Mode = ScorelineFlat
		p.Blend.ScalePriorByRemaining = true
		return p
	},
	ProfileConservativeScaled: func() Params {
		p := DefaultParams()
		p.Decay.Floor = 0.4
		p.Decay.LateShrink = 0.75
		p.Decay.ScaleLateShrink = true
		p.Scoreline.Mode = ScorelineFlat
		p.Blend.ScalePriorByRemaining = true
		return p
	},
}

// ProfileParams returns the coefficient set of a named profile
func ProfileParams(name string) (Params, error) {
	build, ok := profiles[name]
	if !ok {
		return Params{}, fmt.Errorf("%w: %q", models.ErrInvalidProfile, name)
	}
	return build(), nil
}

// ProfileNames lists the known profiles in sorted order
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsProfile reports whether name is a known profile
func IsProfile(name string) bool {
	_, ok := profiles[name]
	return ok
}

// Validate checks the coefficients that guard numeric safety
func (p Params) Validate() error {
	if p.MatchMinutes <= 0 {
		return fmt.Errorf("match_minutes must be positive")
	}
	if p.LambdaFloor <= 0 {
		return fmt.Errorf("lambda_floor must be positive")
	}
	if p.Decay.Floor < 0 || p.Decay.Floor > 1 {
		return fmt.Errorf("decay floor must be between 0 and 1")
	}
	if p.Decay.MinRate <= 0 {
		return fmt.Errorf("decay min_rate must be positive")
	}
	switch p.Scoreline.Mode {
	case ScorelineDirectional, ScorelineFlat, ScorelineHomeAnchored:
	default:
		return fmt.Errorf("unknown scoreline mode %q", p.Scoreline.Mode)
	}
	if p.Blend.PriorWeight < 0 || p.Blend.PriorWeight > 1 {
		return fmt.Errorf("blend prior_weight must be between 0 and 1")
	}
	if p.Blend.ConcededFloor <= 0 {
		return fmt.Errorf("blend conceded_floor must be positive")
	}
	if p.Blend.PossessionDivisor == 0 || p.Blend.ShotsDivisor == 0 ||
		p.Blend.TouchesDivisor == 0 || p.Blend.CornersDivisor == 0 {
		return fmt.Errorf("blend divisors must be non-zero")
	}
	for name, g := range map[string]GridParams{"match_odds": p.MatchOdds, "over_under": p.OverUnder} {
		if g.Size <= 0 {
			return fmt.Errorf("%s grid size must be positive", name)
		}
		if g.PZero < 0 || g.PZero >= 1 {
			return fmt.Errorf("%s p_zero must be in [0, 1)", name)
		}
	}
	if p.NextGoal.HorizonMinutes <= 0 {
		return fmt.Errorf("next_goal horizon_minutes must be positive")
	}
	if p.NextGoal.MinProbability <= 0 || p.NextGoal.MinProbability > p.NextGoal.MaxProbability || p.NextGoal.MaxProbability > 1 {
		return fmt.Errorf("next_goal probability band must satisfy 0 < min <= max <= 1")
	}
	if p.PreMatch.MarketBlend < 0 || p.PreMatch.MarketBlend > 1 {
		return fmt.Errorf("pre_match market_blend must be between 0 and 1")
	}
	return nil
}

// Remaining returns the minutes left in regulation, never negative
func (p Params) Remaining(elapsed float64) float64 {
	remaining := p.MatchMinutes - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}
