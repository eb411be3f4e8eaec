package engine

import (
	"context"
	"io"
	"math"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/odds-apex/internal/metrics"
	"github.com/yourusername/odds-apex/internal/models"
	"github.com/yourusername/odds-apex/internal/pricing"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestEvaluator(t *testing.T, opts Options) *Evaluator {
	t.Helper()
	e, err := NewEvaluator(opts, testLogger())
	require.NoError(t, err)
	return e
}

func liveSnapshot() models.MatchSnapshot {
	return models.MatchSnapshot{
		Home: models.TeamStats{
			AvgScored: 1.8, AvgConceded: 0.9, XG: 1.7, InPlayXG: 0.9, Goals: 1,
			Possession: 58, ShotsOnTarget: 4, BoxTouches: 26, Corners: 5,
		},
		Away: models.TeamStats{
			AvgScored: 1.1, AvgConceded: 1.4, XG: 1.0, InPlayXG: 0.4, Goals: 0,
			Possession: 42, ShotsOnTarget: 1, BoxTouches: 14, Corners: 2,
		},
		ElapsedMinutes: 60,
		AccountBalance: 500,
	}
}

func mirror(s models.MatchSnapshot) models.MatchSnapshot {
	s.Home, s.Away = s.Away, s.Home
	return s
}

func TestEvaluate(t *testing.T) {
	e := newTestEvaluator(t, DefaultOptions())
	quotes := []models.MarketQuote{
		{Market: "draw", Price: 4.2},
		{Market: "home", Price: 1.6},
		{Market: "away", Price: 7.5},
		{Market: "over_1.5", Price: 1.7},
		{Market: "next_goal", Price: 0},
	}

	ev, err := e.Evaluate(context.Background(), liveSnapshot(), quotes)
	require.NoError(t, err)

	assert.Equal(t, pricing.ProfileInPlay, ev.Profile)
	assert.InDelta(t, 1.0, ev.MatchOdds.Sum(), 1e-12)
	assert.Greater(t, ev.MatchOdds.Probability(models.OutcomeHomeWin), ev.MatchOdds.Probability(models.OutcomeAwayWin))

	// configured 2.5 plus the quoted 1.5
	require.Len(t, ev.OverUnder, 2)
	assert.Equal(t, 1.5, ev.OverUnder[0].Line)
	assert.Equal(t, 2.5, ev.OverUnder[1].Line)
	for _, m := range []models.Market{"home", "draw", "away", "next_goal", "over_1.5", "under_1.5", "over_2.5", "under_2.5"} {
		assert.Contains(t, ev.FairPrices, m)
	}

	home := ev.MatchOdds.Probability(models.OutcomeHomeWin)
	assert.InDelta(t, 1/home, ev.FairPrices[models.MarketHome].Float64(), 1e-9)
	assert.InDelta(t, 1/4.2+1/1.6+1/7.5-1, ev.Overround, 1e-12)

	require.Len(t, ev.Recommendations, len(quotes))
	require.Len(t, ev.Assessments, len(quotes))
	for i, q := range quotes {
		assert.Equal(t, q.Market, ev.Recommendations[i].Market)
		assert.Equal(t, ev.Assessments[i], ev.Recommendations[i].EdgeAssessment)
		assert.Equal(t, models.TagFor(ev.Recommendations[i].Direction), ev.Recommendations[i].Tag)
	}

	nextGoal := ev.Recommendations[4]
	assert.False(t, nextGoal.Offered)
	assert.Equal(t, models.DirectionNone, nextGoal.Direction)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	e := newTestEvaluator(t, DefaultOptions())
	quotes := []models.MarketQuote{{Market: "home", Price: 2.1}, {Market: "under_2.5", Price: 1.9}}

	first, err := e.Evaluate(context.Background(), liveSnapshot(), quotes)
	require.NoError(t, err)
	second, err := e.Evaluate(context.Background(), liveSnapshot(), quotes)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEvaluateMirroredSnapshot(t *testing.T) {
	e := newTestEvaluator(t, DefaultOptions())

	forward, err := e.Evaluate(context.Background(), liveSnapshot(), nil)
	require.NoError(t, err)
	mirrored, err := e.Evaluate(context.Background(), mirror(liveSnapshot()), nil)
	require.NoError(t, err)

	assert.Equal(t, forward.Lambdas.Home, mirrored.Lambdas.Away)
	assert.Equal(t, forward.Lambdas.Away, mirrored.Lambdas.Home)
	assert.InDelta(t, forward.FairPrices[models.MarketHome].Float64(), mirrored.FairPrices[models.MarketAway].Float64(), 1e-9)
	assert.InDelta(t, forward.FairPrices[models.MarketDraw].Float64(), mirrored.FairPrices[models.MarketDraw].Float64(), 1e-9)
	assert.Empty(t, forward.Recommendations)
	assert.Zero(t, forward.Overround)
}

func TestEvaluateLinePassed(t *testing.T) {
	e := newTestEvaluator(t, DefaultOptions())
	snapshot := liveSnapshot()
	snapshot.Home.Goals = 2
	snapshot.Away.Goals = 1

	ev, err := e.Evaluate(context.Background(), snapshot, []models.MarketQuote{{Market: "under_2.5", Price: 5.0}})
	require.NoError(t, err)

	assert.True(t, ev.FairPrices[models.UnderMarket(2.5)].IsInf())
	assert.Equal(t, models.Price(1), ev.FairPrices[models.OverMarket(2.5)])

	rec := ev.Recommendations[0]
	assert.Equal(t, models.DirectionLay, rec.Direction)
	assert.Equal(t, 1.0, rec.Edge)
	assert.Equal(t, 125.0, rec.StakeOrLiability)
	assert.Equal(t, models.TagLay, rec.Tag)
}

func TestEvaluateRejectsUnknownMarket(t *testing.T) {
	e := newTestEvaluator(t, DefaultOptions())

	_, err := e.Evaluate(context.Background(), liveSnapshot(), []models.MarketQuote{
		{Market: "home", Price: 2},
		{Market: "corners_over_9.5", Price: 1.8},
	})

	assert.ErrorIs(t, err, models.ErrUnknownMarket)
}

func TestEvaluateRejectsInvalidInput(t *testing.T) {
	e := newTestEvaluator(t, DefaultOptions())

	snapshot := liveSnapshot()
	snapshot.ElapsedMinutes = -5
	_, err := e.Evaluate(context.Background(), snapshot, nil)
	assert.ErrorIs(t, err, models.ErrInvalidNumber)

	_, err = e.Evaluate(context.Background(), liveSnapshot(), []models.MarketQuote{{Market: "home", Price: math.NaN()}})
	assert.ErrorIs(t, err, models.ErrInvalidNumber)
}

func TestEvaluateCancelledContext(t *testing.T) {
	e := newTestEvaluator(t, DefaultOptions())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Evaluate(ctx, liveSnapshot(), nil)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = e.EvaluatePreMatch(ctx, models.PreMatchSnapshot{}, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEvaluateUsesCache(t *testing.T) {
	opts := DefaultOptions()
	opts.CacheTTL = time.Minute
	opts.CacheSize = 10
	e := newTestEvaluator(t, opts)
	quotes := []models.MarketQuote{{Market: "away", Price: 9}}

	first, err := e.Evaluate(context.Background(), liveSnapshot(), quotes)
	require.NoError(t, err)

	first.FairPrices[models.MarketHome] = 99
	first.Recommendations[0].Line = "tampered"

	second, err := e.Evaluate(context.Background(), liveSnapshot(), quotes)
	require.NoError(t, err)

	assert.NotEqual(t, models.Price(99), second.FairPrices[models.MarketHome])
	assert.NotEqual(t, "tampered", second.Recommendations[0].Line)

	hits, misses, _ := e.Cache().Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
	assert.Equal(t, 1, e.Cache().ItemCount())

	uncached := newTestEvaluator(t, DefaultOptions())
	fresh, err := uncached.Evaluate(context.Background(), liveSnapshot(), quotes)
	require.NoError(t, err)
	assert.Equal(t, fresh, second)
}

func TestEvaluatePreMatch(t *testing.T) {
	e := newTestEvaluator(t, DefaultOptions())
	snapshot := models.PreMatchSnapshot{
		Home:           models.PreMatchTeam{AvgScored: 1.6, AvgConceded: 0.9, XGScored: 1.4, XGConceded: 1.1, Injuries: 2, Position: 5, Form: 3},
		Away:           models.PreMatchTeam{AvgScored: 1.1, AvgConceded: 1.2, XGScored: 1.0, XGConceded: 1.0, Position: 14, Form: 1},
		AccountBalance: 200,
	}

	ev, err := e.EvaluatePreMatch(context.Background(), snapshot, 2.0)
	require.NoError(t, err)

	assert.Equal(t, 2.5, ev.Line)
	assert.Equal(t, ev.OverPrice, ev.FairPrices[models.OverMarket(2.5)])
	assert.Equal(t, ev.UnderPrice, ev.FairPrices[models.UnderMarket(2.5)])
	require.Len(t, ev.Recommendations, 1)
	assert.Equal(t, models.OverMarket(2.5), ev.Recommendations[0].Market)
	assert.True(t, ev.Recommendations[0].Offered)

	unquoted, err := e.EvaluatePreMatch(context.Background(), snapshot, 0)
	require.NoError(t, err)
	assert.Equal(t, unquoted.Model, unquoted.Blended)
	assert.Equal(t, models.DirectionNone, unquoted.Recommendations[0].Direction)
	assert.Equal(t, "Over 2.5: Not offered.", unquoted.Recommendations[0].Line)
}

func TestEvaluatePreMatchRejects(t *testing.T) {
	e := newTestEvaluator(t, DefaultOptions())

	_, err := e.EvaluatePreMatch(context.Background(), models.PreMatchSnapshot{Line: 3}, 0)
	assert.ErrorIs(t, err, models.ErrUnknownMarket)

	_, err = e.EvaluatePreMatch(context.Background(), models.PreMatchSnapshot{}, math.Inf(1))
	assert.ErrorIs(t, err, models.ErrInvalidNumber)
}

func TestNewEvaluatorRejectsBadOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.Params.MatchMinutes = 0
	_, err := NewEvaluator(opts, testLogger())
	assert.Error(t, err)

	opts = DefaultOptions()
	opts.Lines = []float64{2}
	_, err = NewEvaluator(opts, testLogger())
	assert.ErrorIs(t, err, models.ErrUnknownMarket)
}

func TestProfilesChangePrices(t *testing.T) {
	snapshot := liveSnapshot()
	snapshot.Home.Goals = 0
	snapshot.Away.Goals = 3
	snapshot.ElapsedMinutes = 70

	prices := map[string]models.Price{}
	for _, name := range pricing.ProfileNames() {
		params, err := pricing.ProfileParams(name)
		require.NoError(t, err)
		opts := DefaultOptions()
		opts.Profile = name
		opts.Params = params
		ev, err := newTestEvaluator(t, opts).Evaluate(context.Background(), snapshot, nil)
		require.NoError(t, err)
		prices[name] = ev.FairPrices[models.MarketDraw]
	}

	assert.NotEqual(t, prices[pricing.ProfileInPlay], prices[pricing.ProfileConservative])
	assert.NotEqual(t, prices[pricing.ProfileInPlay], prices[pricing.ProfileClassic])
}

func TestEvaluateKeepsMetricLabelsBounded(t *testing.T) {
	e := newTestEvaluator(t, DefaultOptions())
	quotes := make([]models.MarketQuote, 0, 80)
	for i := 0; i < 40; i++ {
		line := 10.5 + float64(i)
		quotes = append(quotes,
			models.MarketQuote{Market: models.OverMarket(line), Price: 1.5},
			models.MarketQuote{Market: models.UnderMarket(line), Price: 1.5},
		)
	}

	// warm the fixed series first so the second count isolates quoted lines
	_, err := e.Evaluate(context.Background(), liveSnapshot(), nil)
	require.NoError(t, err)
	before := testutil.CollectAndCount(metrics.FairPrice)

	_, err = e.Evaluate(context.Background(), liveSnapshot(), quotes)
	require.NoError(t, err)

	assert.Equal(t, before, testutil.CollectAndCount(metrics.FairPrice))
	for _, line := range []float64{10.5, 30.5, 49.5} {
		for _, m := range []models.Market{models.OverMarket(line), models.UnderMarket(line)} {
			assert.False(t, metrics.FairPrice.DeleteLabelValues(string(m)), m)
			for _, d := range []models.Direction{models.DirectionBack, models.DirectionLay} {
				assert.False(t, metrics.RecommendationsTotal.DeleteLabelValues(string(m), string(d)), m)
			}
		}
	}

	label, configured := e.metricMarket(models.OverMarket(models.DefaultGoalLine))
	assert.True(t, configured)
	assert.Equal(t, string(models.OverMarket(models.DefaultGoalLine)), label)
	label, configured = e.metricMarket(models.UnderMarket(30.5))
	assert.False(t, configured)
	assert.Equal(t, "under_other", label)
}
