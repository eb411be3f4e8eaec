package pricing

import "math"

// TimeDecay scales a remaining-match expected-goal rate for the minutes
// already played. inPlayXG is the expected goals the side has created so far.
func TimeDecay(p Params, rate, elapsed, inPlayXG float64) float64 {
	d := p.Decay
	multiplier := math.Max(math.Exp(-d.Rate*elapsed), d.Floor)

	remaining := p.Remaining(elapsed)
	if inPlayXG > d.XGBoostThreshold {
		multiplier *= d.XGBoost
	} else if remaining < d.LateWindow {
		multiplier *= lateShrink(d, remaining)
	}

	adjusted := rate * multiplier
	if math.IsNaN(adjusted) || adjusted < d.MinRate {
		return d.MinRate
	}
	return adjusted
}

// lateShrink eases the shrink in across the late window when scaling is on
func lateShrink(d DecayParams, remaining float64) float64 {
	if !d.ScaleLateShrink || d.LateWindow <= 0 {
		return d.LateShrink
	}
	depth := 1 - remaining/d.LateWindow
	return 1 - (1-d.LateShrink)*depth
}
