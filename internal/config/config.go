// Package config provides configuration management for the odds-apex engine.
package config

import (
	"time"

	"github.com/yourusername/odds-apex/internal/staking"
)

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Model      ModelConfig      `mapstructure:"model" validate:"required"`
	Staking    StakingConfig    `mapstructure:"staking" validate:"required"`
	Markets    MarketsConfig    `mapstructure:"markets"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Metrics    MetricsConfig    `mapstructure:"metrics" validate:"required"`
	Simulation SimulationConfig `mapstructure:"simulation" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ModelConfig selects a pricing profile and optional coefficient overrides
type ModelConfig struct {
	Profile   string         `mapstructure:"profile" validate:"required,profile"`
	Overrides ModelOverrides `mapstructure:"overrides"`
	// Params sets any pricing coefficient by its nested key, for example
	// scoreline.one_goal_leader or decay.rate
	Params map[string]interface{} `mapstructure:"params"`
}

// ModelOverrides replace individual profile coefficients when set
type ModelOverrides struct {
	ScorelineMode         *string  `mapstructure:"scoreline_mode" validate:"omitempty,scoreline_mode"`
	DecayFloor            *float64 `mapstructure:"decay_floor" validate:"omitempty,gte=0,lte=1"`
	LateShrink            *float64 `mapstructure:"late_shrink" validate:"omitempty,gt=0"`
	ScaleLateShrink       *bool    `mapstructure:"scale_late_shrink"`
	PriorWeight           *float64 `mapstructure:"prior_weight" validate:"omitempty,gte=0,lte=1"`
	ScalePriorByRemaining *bool    `mapstructure:"scale_prior_by_remaining"`
	MatchOddsPZero        *float64 `mapstructure:"match_odds_p_zero" validate:"omitempty,gte=0,lt=1"`
	OverUnderPZero        *float64 `mapstructure:"over_under_p_zero" validate:"omitempty,gte=0,lt=1"`
	MatchOddsGridSize     *int     `mapstructure:"match_odds_grid_size" validate:"omitempty,gt=0,lte=20"`
	OverUnderGridSize     *int     `mapstructure:"over_under_grid_size" validate:"omitempty,gt=0,lte=20"`
	NextGoalMin           *float64 `mapstructure:"next_goal_min" validate:"omitempty,gt=0,lte=1"`
	NextGoalMax           *float64 `mapstructure:"next_goal_max" validate:"omitempty,gt=0,lte=1"`
	PreMatchMarketBlend   *float64 `mapstructure:"pre_match_market_blend" validate:"omitempty,gte=0,lte=1"`
}

// StakingConfig represents stake sizing configuration
type StakingConfig struct {
	KellyMultiplier float64 `mapstructure:"kelly_multiplier" validate:"required,gt=0,lte=1"`
	MaxStakePerBet  float64 `mapstructure:"max_stake_per_bet" validate:"gte=0"`
}

// MarketsConfig represents the goal lines priced on every evaluation
type MarketsConfig struct {
	Lines []float64 `mapstructure:"lines" validate:"dive,half_line"`
}

// CacheConfig represents the evaluation result cache
type CacheConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	TTLSeconds int  `mapstructure:"ttl_seconds" validate:"gte=0"`
	MaxSize    int  `mapstructure:"max_size" validate:"gte=0"`
}

// ServerConfig represents the HTTP API configuration
type ServerConfig struct {
	Address             string  `mapstructure:"address" validate:"required"`
	ReadTimeoutSeconds  int     `mapstructure:"read_timeout_seconds" validate:"required,gt=0"`
	WriteTimeoutSeconds int     `mapstructure:"write_timeout_seconds" validate:"required,gt=0"`
	RateLimitPerSecond  float64 `mapstructure:"rate_limit_per_second" validate:"required,gt=0"`
	RateLimitBurst      int     `mapstructure:"rate_limit_burst" validate:"required,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required"`
}

// SimulationConfig represents Monte Carlo defaults
type SimulationConfig struct {
	Iterations     int     `mapstructure:"iterations" validate:"required,gt=0"`
	Seed           int64   `mapstructure:"seed"`
	CommissionRate float64 `mapstructure:"commission_rate" validate:"gte=0,lte=0.1"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// StakingParams returns the stake sizer configuration
func (c *Config) StakingParams() staking.Params {
	return staking.Params{
		KellyMultiplier: c.Staking.KellyMultiplier,
		MaxStakePerBet:  c.Staking.MaxStakePerBet,
	}
}

// CacheTTL returns the result cache lifetime, zero when caching is off
func (c *Config) CacheTTL() time.Duration {
	if !c.Cache.Enabled {
		return 0
	}
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}
