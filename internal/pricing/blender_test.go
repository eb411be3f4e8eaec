package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/odds-apex/internal/models"
)

func neutralTeam() models.TeamStats {
	return models.TeamStats{
		AvgScored:   1.5,
		AvgConceded: 1.0,
		XG:          1.5,
		Possession:  50,
		BoxTouches:  20,
		Corners:     4,
	}
}

func TestBlendRatesKickOff(t *testing.T) {
	snapshot := models.MatchSnapshot{Home: neutralTeam(), Away: neutralTeam()}

	got := BlendRates(DefaultParams(), snapshot)

	// decay 1.0, level score x1.05, 85/15 blend with a 1.5 strength ratio
	expected := 1.5*1.05*0.85 + 1.5*0.15
	assert.InDelta(t, expected, got.Home, 1e-12)
	assert.InDelta(t, expected, got.Away, 1e-12)
}

func TestBlendRatesTilts(t *testing.T) {
	home := neutralTeam()
	home.Possession = 60
	home.InPlayXG = 1.3
	home.ShotsOnTarget = 4
	home.BoxTouches = 30
	home.Corners = 9
	home.XG = 0
	snapshot := models.MatchSnapshot{Home: home, Away: neutralTeam()}

	got := BlendRates(DefaultParams(), snapshot)

	live := 1.3 * 1.05
	expected := live*0.85 + 1.5*0.15
	expected *= 1 + 10.0/200
	expected *= 1.15
	expected *= 1 + 4.0/20
	expected *= 1 + 10.0/200
	expected *= 1 + 5.0/50
	assert.InDelta(t, expected, got.Home, 1e-12)
}

func TestBlendRatesConcededFloor(t *testing.T) {
	home := neutralTeam()
	away := neutralTeam()
	away.AvgConceded = 0
	snapshot := models.MatchSnapshot{Home: home, Away: away}

	got := BlendRates(DefaultParams(), snapshot)

	expected := 1.5*1.05*0.85 + (1.5/0.75)*0.15
	assert.InDelta(t, expected, got.Home, 1e-12)
}

func TestBlendRatesClampedToFloor(t *testing.T) {
	snapshot := models.MatchSnapshot{ElapsedMinutes: 89}

	got := BlendRates(DefaultParams(), snapshot)

	assert.Equal(t, models.MinLambda, got.Home)
	assert.Equal(t, models.MinLambda, got.Away)
}

func TestBlendRatesStoppageTime(t *testing.T) {
	snapshot := models.MatchSnapshot{Home: neutralTeam(), Away: neutralTeam(), ElapsedMinutes: 96}

	got := BlendRates(DefaultParams(), snapshot)

	assert.GreaterOrEqual(t, got.Home, models.MinLambda)
	assert.GreaterOrEqual(t, got.Away, models.MinLambda)
}

func TestBlendRatesMirrored(t *testing.T) {
	home := neutralTeam()
	home.Goals = 2
	home.ShotsOnTarget = 3
	away := neutralTeam()
	away.Goals = 1
	away.Possession = 62

	forward := BlendRates(DefaultParams(), models.MatchSnapshot{Home: home, Away: away, ElapsedMinutes: 70})
	mirrored := BlendRates(DefaultParams(), models.MatchSnapshot{Home: away, Away: home, ElapsedMinutes: 70})

	assert.Equal(t, forward.Home, mirrored.Away)
	assert.Equal(t, forward.Away, mirrored.Home)
}

func TestBlendRatesScaledPrior(t *testing.T) {
	p := DefaultParams()
	p.Blend.ScalePriorByRemaining = true
	snapshot := models.MatchSnapshot{Home: neutralTeam(), Away: neutralTeam(), ElapsedMinutes: 45}

	got := BlendRates(p, snapshot)

	live := TimeDecay(p, 1.5*45/90, 45, 0) * 1.05
	weight := 0.15 * 45 / 90
	assert.InDelta(t, live*(1-weight)+1.5*weight, got.Home, 1e-12)
}
