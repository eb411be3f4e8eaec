package config

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/yourusername/odds-apex/internal/pricing"
)

// Override records one coefficient replaced by configuration
type Override struct {
	Name     string
	OldValue interface{}
	NewValue interface{}
}

// ModelParams resolves the configured profile, decodes the params block over
// it and then applies the named overrides
func (c *Config) ModelParams() (pricing.Params, []Override, error) {
	p, err := pricing.ProfileParams(c.Model.Profile)
	if err != nil {
		return pricing.Params{}, nil, err
	}

	applied, err := applyParams(&p, c.Model.Params)
	if err != nil {
		return pricing.Params{}, nil, err
	}

	o := c.Model.Overrides
	if o.ScorelineMode != nil {
		mode := pricing.ScorelineMode(*o.ScorelineMode)
		applied = append(applied, Override{"scoreline_mode", string(p.Scoreline.Mode), string(mode)})
		p.Scoreline.Mode = mode
	}
	applied = overrideFloat(applied, "decay_floor", &p.Decay.Floor, o.DecayFloor)
	applied = overrideFloat(applied, "late_shrink", &p.Decay.LateShrink, o.LateShrink)
	applied = overrideBool(applied, "scale_late_shrink", &p.Decay.ScaleLateShrink, o.ScaleLateShrink)
	applied = overrideFloat(applied, "prior_weight", &p.Blend.PriorWeight, o.PriorWeight)
	applied = overrideBool(applied, "scale_prior_by_remaining", &p.Blend.ScalePriorByRemaining, o.ScalePriorByRemaining)
	applied = overrideFloat(applied, "match_odds_p_zero", &p.MatchOdds.PZero, o.MatchOddsPZero)
	applied = overrideFloat(applied, "over_under_p_zero", &p.OverUnder.PZero, o.OverUnderPZero)
	applied = overrideInt(applied, "match_odds_grid_size", &p.MatchOdds.Size, o.MatchOddsGridSize)
	applied = overrideInt(applied, "over_under_grid_size", &p.OverUnder.Size, o.OverUnderGridSize)
	applied = overrideFloat(applied, "next_goal_min", &p.NextGoal.MinProbability, o.NextGoalMin)
	applied = overrideFloat(applied, "next_goal_max", &p.NextGoal.MaxProbability, o.NextGoalMax)
	applied = overrideFloat(applied, "pre_match_market_blend", &p.PreMatch.MarketBlend, o.PreMatchMarketBlend)

	if err := p.Validate(); err != nil {
		return pricing.Params{}, nil, fmt.Errorf("model overrides produce invalid parameters: %w", err)
	}
	return p, applied, nil
}

// applyParams decodes raw over p. Unknown keys are an error; every changed
// coefficient is reported under its dotted key.
func applyParams(p *pricing.Params, raw map[string]interface{}) ([]Override, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	before := *p
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           p,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build params decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid model params: %w", err)
	}
	return diffParams("params.", reflect.ValueOf(before), reflect.ValueOf(*p), nil), nil
}

func diffParams(prefix string, old, cur reflect.Value, applied []Override) []Override {
	t := old.Type()
	for i := 0; i < t.NumField(); i++ {
		name := prefix + t.Field(i).Tag.Get("mapstructure")
		o, c := old.Field(i), cur.Field(i)
		if o.Kind() == reflect.Struct {
			applied = diffParams(name+".", o, c, applied)
			continue
		}
		if o.Interface() != c.Interface() {
			applied = append(applied, Override{name, o.Interface(), c.Interface()})
		}
	}
	return applied
}

func overrideFloat(applied []Override, name string, target *float64, value *float64) []Override {
	if value == nil {
		return applied
	}
	applied = append(applied, Override{name, *target, *value})
	*target = *value
	return applied
}

func overrideBool(applied []Override, name string, target *bool, value *bool) []Override {
	if value == nil {
		return applied
	}
	applied = append(applied, Override{name, *target, *value})
	*target = *value
	return applied
}

func overrideInt(applied []Override, name string, target *int, value *int) []Override {
	if value == nil {
		return applied
	}
	applied = append(applied, Override{name, *target, *value})
	*target = *value
	return applied
}
