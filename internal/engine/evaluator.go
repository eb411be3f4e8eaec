// Package engine wires the pricing model, the stake sizer and the
// recommendation builder into a single evaluation entry point.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/odds-apex/internal/logger"
	"github.com/yourusername/odds-apex/internal/metrics"
	"github.com/yourusername/odds-apex/internal/models"
	"github.com/yourusername/odds-apex/internal/pricing"
	"github.com/yourusername/odds-apex/internal/recommendation"
	"github.com/yourusername/odds-apex/internal/staking"
)

const (
	kindInPlay   = "in_play"
	kindPreMatch = "pre_match"
)

// Options configures an Evaluator
type Options struct {
	Profile string
	Params  pricing.Params
	Staking staking.Params
	// Lines are over/under lines priced even when no quote names them
	Lines []float64
	// CacheTTL of zero disables the result cache
	CacheTTL  time.Duration
	CacheSize int
}

// DefaultOptions returns the in_play profile with quarter Kelly, the 2.5 line
// and no cache
func DefaultOptions() Options {
	return Options{
		Profile: pricing.ProfileInPlay,
		Params:  pricing.DefaultParams(),
		Staking: staking.DefaultParams(),
		Lines:   []float64{models.DefaultGoalLine},
	}
}

// Evaluator prices snapshots and sizes bets against live quotes. It holds
// only immutable parameters and a concurrency-safe cache.
type Evaluator struct {
	opts    Options
	sizer   *staking.Sizer
	cache   *ResultCache
	evalLog *logger.EvaluationLogger
	audit   *logger.AuditLogger
	now     func() time.Time
}

// NewEvaluator creates a new evaluator
func NewEvaluator(opts Options, log *logrus.Logger) (*Evaluator, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if opts.Profile == "" {
		opts.Profile = pricing.ProfileInPlay
	}
	if err := opts.Params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model parameters: %w", err)
	}
	for _, line := range opts.Lines {
		if _, err := models.ParseMarket(string(models.OverMarket(line))); err != nil {
			return nil, fmt.Errorf("invalid goal line %v: %w", line, err)
		}
	}
	opts.Lines = uniqueLines(opts.Lines)

	e := &Evaluator{
		opts:    opts,
		sizer:   staking.NewSizer(opts.Staking, log),
		evalLog: logger.NewEvaluationLogger(log),
		audit:   logger.NewAuditLogger(log),
		now:     time.Now,
	}
	if opts.CacheTTL > 0 {
		e.cache = NewResultCache(opts.CacheTTL, opts.CacheSize)
	}

	e.audit.LogProfileLoaded(opts.Profile, opts.Staking.KellyMultiplier, opts.Staking.MaxStakePerBet)
	return e, nil
}

// Profile returns the name of the model profile in use
func (e *Evaluator) Profile() string {
	return e.opts.Profile
}

// Params returns the model coefficients in use
func (e *Evaluator) Params() pricing.Params {
	return e.opts.Params
}

// Cache returns the result cache, or nil when caching is disabled
func (e *Evaluator) Cache() *ResultCache {
	return e.cache
}

type quotedMarket struct {
	spec  models.MarketSpec
	price float64
}

// Evaluate prices an in-play snapshot and assesses every quote in order.
// Identical inputs always produce identical results.
func (e *Evaluator) Evaluate(ctx context.Context, snapshot models.MatchSnapshot, quotes []models.MarketQuote) (*Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := e.now()
	id := uuid.NewString()

	if err := snapshot.Validate(); err != nil {
		e.reject(id, "invalid_input", err)
		return nil, err
	}
	quoted, err := parseQuotes(quotes)
	if err != nil {
		e.reject(id, rejectReason(err), err)
		return nil, err
	}

	ev, cacheHit := e.cachedEvaluation(snapshot, quoted)
	if ev == nil {
		ev = e.evaluate(snapshot, quoted)
		e.storeEvaluation(snapshot, quoted, ev)
	}

	elapsed := e.now().Sub(start)
	metrics.RecordEvaluation(kindInPlay, elapsed.Seconds())
	e.observe(id, ev.FairPrices, ev.Assessments, snapshot.AccountBalance)
	if ev.Overround != 0 {
		metrics.UpdateOverround(ev.Overround)
	}
	e.evalLog.LogEvaluation(id, e.opts.Profile, snapshot, ev.Lambdas, len(quotes), countEdges(ev.Assessments), cacheHit, float64(elapsed.Microseconds())/1000)

	return ev, nil
}

func (e *Evaluator) evaluate(snapshot models.MatchSnapshot, quoted []quotedMarket) *Evaluation {
	p := e.opts.Params

	lambdas := pricing.BlendRates(p, snapshot)
	matchOdds := pricing.MatchOdds(p.MatchOdds, lambdas, snapshot.Home.Goals, snapshot.Away.Goals)
	nextGoal := pricing.NextGoal(p, lambdas, snapshot.ElapsedMinutes)

	fair := map[models.Market]models.Price{
		models.MarketHome:     pricing.FairOdds(matchOdds.Probability(models.OutcomeHomeWin)),
		models.MarketDraw:     pricing.FairOdds(matchOdds.Probability(models.OutcomeDraw)),
		models.MarketAway:     pricing.FairOdds(matchOdds.Probability(models.OutcomeAwayWin)),
		models.MarketNextGoal: pricing.FairOdds(nextGoal.Probability(models.OutcomeGoal)),
	}

	lines := e.linesFor(quoted)
	overUnder := make([]LineDistribution, 0, len(lines))
	for _, line := range lines {
		threshold := models.MarketSpec{Line: line}.Threshold()
		dist := pricing.OverUnder(p.OverUnder, lambdas, snapshot.TotalGoals(), threshold)
		overUnder = append(overUnder, LineDistribution{Line: line, Distribution: dist})
		fair[models.OverMarket(line)] = pricing.FairOdds(dist.Probability(models.OutcomeOver))
		fair[models.UnderMarket(line)] = pricing.FairOdds(dist.Probability(models.OutcomeUnder))
	}

	assessments := make([]models.EdgeAssessment, 0, len(quoted))
	for _, q := range quoted {
		assessments = append(assessments, e.sizer.Assess(q.spec.Market, fair[q.spec.Market], q.price, snapshot.AccountBalance))
	}

	return &Evaluation{
		Profile:         e.opts.Profile,
		Lambdas:         lambdas,
		MatchOdds:       matchOdds,
		NextGoal:        nextGoal,
		OverUnder:       overUnder,
		FairPrices:      fair,
		Overround:       matchOddsOverround(quoted),
		Assessments:     assessments,
		Recommendations: recommendation.Build(assessments),
	}
}

// EvaluatePreMatch prices the goal line of a pre-match snapshot. A live over
// price <= 0 skips the market blend and the over market is reported as not
// offered.
func (e *Evaluator) EvaluatePreMatch(ctx context.Context, snapshot models.PreMatchSnapshot, liveOver float64) (*PreMatchEvaluation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := e.now()
	id := uuid.NewString()

	if err := snapshot.Validate(); err != nil {
		e.reject(id, "invalid_input", err)
		return nil, err
	}
	if math.IsNaN(liveOver) || math.IsInf(liveOver, 0) {
		err := fmt.Errorf("%w: live over price %v", models.ErrInvalidNumber, liveOver)
		e.reject(id, "invalid_input", err)
		return nil, err
	}
	line := snapshot.GoalLine()
	overSpec, err := models.ParseMarket(string(models.OverMarket(line)))
	if err != nil {
		e.reject(id, "unknown_market", err)
		return nil, err
	}

	var key CacheKey
	var ev *PreMatchEvaluation
	if e.cache != nil {
		if key, err = NewCacheKey(kindPreMatch, snapshot, liveOver); err == nil {
			if cached, ok := e.cache.Get(key); ok {
				if hit, ok := cached.(*PreMatchEvaluation); ok {
					ev = hit.Clone()
				}
			}
		}
	}

	if ev == nil {
		result := pricing.PreMatchOverUnder(e.opts.Params, snapshot, liveOver)
		fair := map[models.Market]models.Price{
			overSpec.Market:          result.OverPrice,
			models.UnderMarket(line): result.UnderPrice,
		}
		assessments := []models.EdgeAssessment{
			e.sizer.Assess(overSpec.Market, result.OverPrice, liveOver, snapshot.AccountBalance),
		}
		ev = &PreMatchEvaluation{
			Profile:         e.opts.Profile,
			PreMatchResult:  result,
			FairPrices:      fair,
			Assessments:     assessments,
			Recommendations: recommendation.Build(assessments),
		}
		if e.cache != nil && key.Digest != "" {
			e.cache.Set(key, ev)
			ev = ev.Clone()
		}
	}

	elapsed := e.now().Sub(start)
	metrics.RecordEvaluation(kindPreMatch, elapsed.Seconds())
	e.observe(id, ev.FairPrices, ev.Assessments, snapshot.AccountBalance)
	e.evalLog.LogPreMatchEvaluation(id, e.opts.Profile, line, ev.Lambdas, liveOver, float64(elapsed.Microseconds())/1000)

	return ev, nil
}

func (e *Evaluator) cachedEvaluation(snapshot models.MatchSnapshot, quoted []quotedMarket) (*Evaluation, bool) {
	if e.cache == nil {
		return nil, false
	}
	key, err := e.inPlayKey(snapshot, quoted)
	if err != nil {
		return nil, false
	}
	cached, ok := e.cache.Get(key)
	if !ok {
		return nil, false
	}
	ev, ok := cached.(*Evaluation)
	if !ok {
		return nil, false
	}
	return ev.Clone(), true
}

func (e *Evaluator) storeEvaluation(snapshot models.MatchSnapshot, quoted []quotedMarket, ev *Evaluation) {
	if e.cache == nil {
		return
	}
	key, err := e.inPlayKey(snapshot, quoted)
	if err != nil {
		return
	}
	e.cache.Set(key, ev.Clone())
}

func (e *Evaluator) inPlayKey(snapshot models.MatchSnapshot, quoted []quotedMarket) (CacheKey, error) {
	quotes := make([]models.MarketQuote, len(quoted))
	for i, q := range quoted {
		quotes[i] = models.MarketQuote{Market: q.spec.Market, Price: q.price}
	}
	return NewCacheKey(kindInPlay, snapshot, quotes)
}

// linesFor merges the configured lines with every quoted over/under line
func (e *Evaluator) linesFor(quoted []quotedMarket) []float64 {
	lines := append([]float64(nil), e.opts.Lines...)
	for _, q := range quoted {
		if q.spec.Kind == models.MarketKindOver || q.spec.Kind == models.MarketKindUnder {
			lines = append(lines, q.spec.Line)
		}
	}
	return uniqueLines(lines)
}

func (e *Evaluator) observe(id string, fair map[models.Market]models.Price, assessments []models.EdgeAssessment, balance float64) {
	for market, price := range fair {
		label, configured := e.metricMarket(market)
		if configured && !price.IsInf() {
			metrics.UpdateFairPrice(label, price.Float64())
		}
	}
	for _, a := range assessments {
		if !a.HasEdge() {
			continue
		}
		label, _ := e.metricMarket(a.Market)
		metrics.RecordRecommendation(label, string(a.Direction))
		metrics.RecordEdge(string(a.Direction), a.Edge)
		e.evalLog.LogRecommendation(id, a)
		e.audit.LogStakeRecommendation(id, string(a.Market), string(a.Direction), a.StakeOrLiability, a.LivePrice, balance, e.now())
	}
}

// metricMarket maps a market to its metric label. Over/under lines outside
// the configured set share one label per side so quoted lines cannot grow
// the series count.
func (e *Evaluator) metricMarket(market models.Market) (string, bool) {
	spec, err := models.ParseMarket(string(market))
	if err != nil {
		return "other", false
	}
	if spec.Kind != models.MarketKindOver && spec.Kind != models.MarketKindUnder {
		return string(spec.Market), true
	}
	for _, line := range e.opts.Lines {
		if line == spec.Line {
			return string(spec.Market), true
		}
	}
	return string(spec.Kind) + "_other", false
}

func (e *Evaluator) reject(id, reason string, err error) {
	metrics.RecordEvaluationError(reason)
	e.evalLog.LogRejected(id, reason, err)
}

func parseQuotes(quotes []models.MarketQuote) ([]quotedMarket, error) {
	quoted := make([]quotedMarket, 0, len(quotes))
	for _, q := range quotes {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("quote %q: %w", q.Market, err)
		}
		spec, err := models.ParseMarket(string(q.Market))
		if err != nil {
			return nil, err
		}
		quoted = append(quoted, quotedMarket{spec: spec, price: q.Price})
	}
	return quoted, nil
}

// matchOddsOverround is reported only when all three match odds prices are
// quoted; the first quote of each market wins
func matchOddsOverround(quoted []quotedMarket) float64 {
	prices := map[models.Market]float64{}
	for _, q := range quoted {
		if q.spec.Kind != models.MarketKindMatchOdds {
			continue
		}
		if _, seen := prices[q.spec.Market]; !seen {
			prices[q.spec.Market] = q.price
		}
	}
	if len(prices) != 3 {
		return 0
	}
	return pricing.Overround(prices[models.MarketHome], prices[models.MarketDraw], prices[models.MarketAway])
}

func rejectReason(err error) string {
	if errors.Is(err, models.ErrUnknownMarket) {
		return "unknown_market"
	}
	return "invalid_input"
}

func countEdges(assessments []models.EdgeAssessment) int {
	n := 0
	for _, a := range assessments {
		if a.HasEdge() {
			n++
		}
	}
	return n
}

func uniqueLines(lines []float64) []float64 {
	if len(lines) == 0 {
		return nil
	}
	sorted := append([]float64(nil), lines...)
	sort.Float64s(sorted)
	out := sorted[:1]
	for _, l := range sorted[1:] {
		if l != out[len(out)-1] {
			out = append(out, l)
		}
	}
	return out
}
