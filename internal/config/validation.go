package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yourusername/odds-apex/internal/pricing"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	// Registration only fails on an empty tag or nil function
	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("profile", validateProfile)
	_ = v.RegisterValidation("scoreline_mode", validateScorelineMode)
	_ = v.RegisterValidation("half_line", validateHalfLine)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := validateCrossField(cfg); err != nil {
		return err
	}

	return nil
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func validateProfile(fl validator.FieldLevel) bool {
	return pricing.IsProfile(fl.Field().String())
}

func validateScorelineMode(fl validator.FieldLevel) bool {
	switch pricing.ScorelineMode(fl.Field().String()) {
	case pricing.ScorelineDirectional, pricing.ScorelineFlat, pricing.ScorelineHomeAnchored:
		return true
	default:
		return false
	}
}

// validateHalfLine accepts positive goal lines ending in .5
func validateHalfLine(fl validator.FieldLevel) bool {
	line := fl.Field().Float()
	if line <= 0 || math.IsInf(line, 0) || math.IsNaN(line) {
		return false
	}
	return line-math.Floor(line) == 0.5
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	if _, _, err := cfg.ModelParams(); err != nil {
		return err
	}

	seen := make(map[float64]bool, len(cfg.Markets.Lines))
	for _, line := range cfg.Markets.Lines {
		if seen[line] {
			return fmt.Errorf("markets lines contain %.1f more than once", line)
		}
		seen[line] = true
	}

	if cfg.Cache.Enabled && cfg.Cache.TTLSeconds == 0 {
		return fmt.Errorf("cache ttl_seconds must be positive when the cache is enabled")
	}

	if cfg.IsProduction() {
		if cfg.App.LogLevel == "debug" {
			return fmt.Errorf("production environment should not log at debug level")
		}
		if cfg.Staking.MaxStakePerBet == 0 {
			return fmt.Errorf("production environment requires max_stake_per_bet to be set")
		}
	}

	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		return fmt.Errorf("metrics path must start with '/'")
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var errMsg string
	for _, fieldError := range validationErrors {
		field := fieldError.StructField()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required":
			errMsg += fmt.Sprintf("- Field '%s' is required\n", field)
		case "gt", "gte", "lt", "lte":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: numeric constraint %s violated\n", field, tag)
		case "environment":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "profile":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: %s\n", field, strings.Join(pricing.ProfileNames(), ", "))
		case "scoreline_mode":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: directional, flat, home_anchored\n", field)
		case "half_line":
			errMsg += fmt.Sprintf("- Field '%s' must be a positive half-goal line, got '%v'\n", field, value)
		default:
			errMsg += fmt.Sprintf("- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", errMsg)
}
