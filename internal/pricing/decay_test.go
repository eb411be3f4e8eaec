package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeDecay(t *testing.T) {
	p := DefaultParams()

	tests := []struct {
		name     string
		rate     float64
		elapsed  float64
		inPlayXG float64
		expected float64
	}{
		{"kick-off keeps rate", 1.0, 0, 0, 1.0},
		{"decay above floor", 1.0, 30, 0.4, math.Exp(-0.3)},
		{"decay floored", 1.0, 60, 0.4, 0.6},
		{"late shrink", 2.0, 85, 0.5, 2.0 * 0.6 * 0.65},
		{"high xG boost wins over late shrink", 2.0, 85, 2.0, 2.0 * 0.6 * 1.15},
		{"floored at minimum rate", 0.05, 10, 0, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, TimeDecay(p, tt.rate, tt.elapsed, tt.inPlayXG), 1e-12)
		})
	}
}

func TestTimeDecayNeverBelowFloor(t *testing.T) {
	for _, profile := range ProfileNames() {
		p, err := ProfileParams(profile)
		require.NoError(t, err)
		for _, rate := range []float64{-2, 0, 0.01, 0.5, 3} {
			for elapsed := 0.0; elapsed <= 120; elapsed += 7.5 {
				for _, xg := range []float64{0, 1, 2.5} {
					got := TimeDecay(p, rate, elapsed, xg)
					assert.GreaterOrEqual(t, got, 0.1, "profile=%s rate=%v elapsed=%v xg=%v", profile, rate, elapsed, xg)
				}
			}
		}
	}
}

func TestTimeDecayScaledLateShrink(t *testing.T) {
	p, err := ProfileParams(ProfileConservativeScaled)
	require.NoError(t, err)

	// five minutes left: half way through the late window
	expected := 1.0 * math.Exp(-0.85) * (1 - 0.25*0.5)
	assert.InDelta(t, expected, TimeDecay(p, 1.0, 85, 0), 1e-12)

	// full shrink at the final whistle
	assert.InDelta(t, math.Exp(-0.9)*0.75, TimeDecay(p, 1.0, 90, 0), 1e-12)

	// past the point where e^(-0.01 t) drops under the 0.4 floor
	assert.InDelta(t, 0.4*0.75, TimeDecay(p, 1.0, 95, 0), 1e-12)
}
