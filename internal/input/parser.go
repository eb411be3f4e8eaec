// Package input converts the text fields of a data-entry surface into
// validated model snapshots.
package input

import (
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yourusername/odds-apex/internal/models"
)

type bound int

const (
	anySign bound = iota
	nonNegative
	percentage
)

// whole-number fields are counts, positions or form; anything wider than
// int32 is rejected before conversion so it cannot wrap
var maxWhole = decimal.NewFromInt(math.MaxInt32)

type floatField struct {
	name   string
	target *float64
	bound  bound
}

type intField struct {
	name   string
	target *int
	bound  bound
}

// ParseSnapshot builds an in-play snapshot from text fields. Empty or
// missing fields read as zero.
func ParseSnapshot(fields map[string]string) (models.MatchSnapshot, error) {
	var s models.MatchSnapshot
	floats := []floatField{
		{"elapsed_minutes", &s.ElapsedMinutes, nonNegative},
		{"account_balance", &s.AccountBalance, nonNegative},
	}
	var ints []intField
	for _, side := range []struct {
		prefix string
		team   *models.TeamStats
	}{{"home_", &s.Home}, {"away_", &s.Away}} {
		t := side.team
		floats = append(floats,
			floatField{side.prefix + "avg_scored", &t.AvgScored, nonNegative},
			floatField{side.prefix + "avg_conceded", &t.AvgConceded, nonNegative},
			floatField{side.prefix + "xg", &t.XG, nonNegative},
			floatField{side.prefix + "in_play_xg", &t.InPlayXG, nonNegative},
			floatField{side.prefix + "possession", &t.Possession, percentage},
			floatField{side.prefix + "box_touches", &t.BoxTouches, nonNegative},
			floatField{side.prefix + "corners", &t.Corners, nonNegative},
		)
		ints = append(ints,
			intField{side.prefix + "goals", &t.Goals, nonNegative},
			intField{side.prefix + "shots_on_target", &t.ShotsOnTarget, nonNegative},
		)
	}

	verr := parseFields(fields, floats, ints)
	return s, verr.errOrNil()
}

// ParsePreMatch builds a pre-match snapshot from text fields
func ParsePreMatch(fields map[string]string) (models.PreMatchSnapshot, error) {
	var s models.PreMatchSnapshot
	floats := []floatField{
		{"line", &s.Line, nonNegative},
		{"account_balance", &s.AccountBalance, nonNegative},
	}
	var ints []intField
	for _, side := range []struct {
		prefix string
		team   *models.PreMatchTeam
	}{{"home_", &s.Home}, {"away_", &s.Away}} {
		t := side.team
		floats = append(floats,
			floatField{side.prefix + "avg_scored", &t.AvgScored, nonNegative},
			floatField{side.prefix + "avg_conceded", &t.AvgConceded, nonNegative},
			floatField{side.prefix + "xg_scored", &t.XGScored, nonNegative},
			floatField{side.prefix + "xg_conceded", &t.XGConceded, nonNegative},
		)
		ints = append(ints,
			intField{side.prefix + "injuries", &t.Injuries, nonNegative},
			intField{side.prefix + "position", &t.Position, nonNegative},
			intField{side.prefix + "form", &t.Form, anySign},
		)
	}

	verr := parseFields(fields, floats, ints)
	if verr.errOrNil() == nil && s.Line > 0 {
		if _, err := models.ParseMarket(string(models.OverMarket(s.Line))); err != nil {
			verr.add("line", fields["line"], "not a half-goal line")
		}
	}
	return s, verr.errOrNil()
}

func parseFields(fields map[string]string, floats []floatField, ints []intField) *ValidationError {
	verr := &ValidationError{}
	known := make(map[string]bool, len(floats)+len(ints))

	for _, f := range floats {
		known[f.name] = true
		raw := fields[f.name]
		d, reason := parseNumber(raw, f.bound)
		if reason != "" {
			verr.add(f.name, raw, reason)
			continue
		}
		v := d.InexactFloat64()
		if math.IsInf(v, 0) {
			verr.add(f.name, raw, "out of range")
			continue
		}
		*f.target = v
	}
	for _, f := range ints {
		known[f.name] = true
		raw := fields[f.name]
		d, reason := parseNumber(raw, f.bound)
		if reason == "" && !d.IsInteger() {
			reason = "must be a whole number"
		}
		if reason == "" && d.Abs().GreaterThan(maxWhole) {
			reason = "out of range"
		}
		if reason != "" {
			verr.add(f.name, raw, reason)
			continue
		}
		*f.target = int(d.IntPart())
	}

	unknown := make([]string, 0)
	for name := range fields {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		verr.add(name, fields[name], "unknown field")
	}
	return verr
}

func parseNumber(raw string, b bound) (decimal.Decimal, string) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, ""
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, "not a number"
	}
	switch b {
	case nonNegative:
		if d.IsNegative() {
			return decimal.Zero, "must not be negative"
		}
	case percentage:
		if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(100)) {
			return decimal.Zero, "must be between 0 and 100"
		}
	}
	return d, ""
}
