package pricing

import (
	"math"

	"github.com/yourusername/odds-apex/internal/models"
)

// BlendRates turns a match snapshot into the expected-goal rates of both
// sides for the rest of the match. Tilts are applied in a fixed order and
// compound multiplicatively.
func BlendRates(p Params, snapshot models.MatchSnapshot) models.LambdaPair {
	elapsed := snapshot.ElapsedMinutes
	remaining := p.Remaining(elapsed)

	live := models.LambdaPair{
		Home: liveRate(p, snapshot.Home, elapsed, remaining),
		Away: liveRate(p, snapshot.Away, elapsed, remaining),
	}
	live = AdjustForScoreline(p, live, snapshot.GoalDifference(), elapsed)

	weight := priorWeight(p.Blend, remaining, p.MatchMinutes)
	home := blend(live.Home, strengthRatio(p.Blend, snapshot.Home, snapshot.Away), weight)
	away := blend(live.Away, strengthRatio(p.Blend, snapshot.Away, snapshot.Home), weight)

	home = applyTilts(p.Blend, home, snapshot.Home)
	away = applyTilts(p.Blend, away, snapshot.Away)

	return models.LambdaPair{Home: home, Away: away}.Clamp(p.LambdaFloor)
}

// liveRate projects pre-match xG over the remaining minutes on top of the
// in-play xG and applies time decay
func liveRate(p Params, team models.TeamStats, elapsed, remaining float64) float64 {
	raw := team.InPlayXG + team.XG*remaining/p.MatchMinutes
	return TimeDecay(p, raw, elapsed, team.InPlayXG)
}

// strengthRatio compares own scoring with the opponent's conceding
func strengthRatio(b BlendParams, own, opponent models.TeamStats) float64 {
	return own.AvgScored / math.Max(b.ConcededFloor, opponent.AvgConceded)
}

func priorWeight(b BlendParams, remaining, matchMinutes float64) float64 {
	if !b.ScalePriorByRemaining {
		return b.PriorWeight
	}
	return b.PriorWeight * remaining / matchMinutes
}

func blend(live, prior, weight float64) float64 {
	return live*(1-weight) + prior*weight
}

func applyTilts(b BlendParams, rate float64, team models.TeamStats) float64 {
	rate *= 1 + (team.Possession-50)/b.PossessionDivisor
	if team.InPlayXG > b.XGBoostThreshold {
		rate *= b.XGBoost
	}
	rate *= 1 + float64(team.ShotsOnTarget)/b.ShotsDivisor
	rate *= 1 + (team.BoxTouches-b.TouchesBaseline)/b.TouchesDivisor
	rate *= 1 + (team.Corners-b.CornersBaseline)/b.CornersDivisor
	return rate
}
