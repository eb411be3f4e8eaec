package simulation

import (
	"context"
	"math/rand"
	"strconv"
	"time"

	"github.com/yourusername/odds-apex/internal/metrics"
	"github.com/yourusername/odds-apex/internal/models"
)

// BankrollConfig configures a bankroll simulation
type BankrollConfig struct {
	Iterations      int
	Seed            int64
	CommissionRate  float64
	InitialBankroll float64
}

// BankrollResult represents simulated outcomes of following a set of
// recommendations
type BankrollResult struct {
	Iterations          int                 `json:"iterations"`
	MeanReturn          float64             `json:"mean_return"`
	StdReturn           float64             `json:"std_return"`
	VaR95               float64             `json:"var_95"`
	VaR99               float64             `json:"var_99"`
	ProbabilityOfProfit float64             `json:"probability_of_profit"`
	ProbabilityOfRuin   float64             `json:"probability_of_ruin"`
	ConfidenceIntervals map[string]Interval `json:"confidence_intervals"`
}

// SimulateBankroll settles every directional assessment against its model
// probability, taken as 1 / fair price. Mutually exclusive markets (the three
// match odds outcomes, or over and under of one line) are settled against a
// single draw per iteration so at most one of them happens.
func SimulateBankroll(ctx context.Context, assessments []models.EdgeAssessment, cfg BankrollConfig) (BankrollResult, error) {
	if cfg.Iterations <= 0 {
		cfg.Iterations = 1000
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	start := time.Now()

	rng := rand.New(rand.NewSource(seed))
	distribution := make([]float64, cfg.Iterations)
	legs, groups := buildLegs(assessments)
	draws := make([]float64, groups)

	for i := 0; i < cfg.Iterations; i++ {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return BankrollResult{}, err
			}
		}
		for g := range draws {
			draws[g] = rng.Float64()
		}
		bankroll := cfg.InitialBankroll
		for _, l := range legs {
			u := draws[l.group]
			pnl := settle(l.assessment, u >= l.lo && u < l.hi)
			if pnl > 0 && cfg.CommissionRate > 0 {
				pnl -= pnl * cfg.CommissionRate
			}
			bankroll += pnl
			if bankroll <= 0 {
				bankroll = 0
				break
			}
		}
		distribution[i] = bankroll
	}

	initial := cfg.InitialBankroll
	if initial <= 0 {
		initial = 1
	}
	mean, std := meanStd(distribution)
	var95 := percentile(distribution, 0.05)
	var99 := percentile(distribution, 0.01)

	metrics.RecordSimulation(time.Since(start).Seconds())

	return BankrollResult{
		Iterations:          cfg.Iterations,
		MeanReturn:          (mean - cfg.InitialBankroll) / initial,
		StdReturn:           std / initial,
		VaR95:               (var95 - cfg.InitialBankroll) / initial,
		VaR99:               (var99 - cfg.InitialBankroll) / initial,
		ProbabilityOfProfit: probabilityAbove(distribution, cfg.InitialBankroll),
		ProbabilityOfRuin:   probabilityAtOrBelow(distribution, 0),
		ConfidenceIntervals: CalculateConfidenceIntervals(distribution, []float64{0.9, 0.95, 0.99}),
	}, nil
}

// leg is one directional bet whose outcome happens when its group's draw
// falls in [lo, hi)
type leg struct {
	assessment models.EdgeAssessment
	group      int
	lo, hi     float64
}

type outcomeSet struct {
	probs []float64
	known []bool
	// bounds[i] and bounds[i+1] delimit slot i
	bounds []float64
}

// exclusiveSlot places a market within its set of mutually exclusive
// outcomes. Next goal shares its set only with the unquoted no-goal outcome.
func exclusiveSlot(market models.Market) (key string, slot, size int, ok bool) {
	spec, err := models.ParseMarket(string(market))
	if err != nil {
		return "", 0, 0, false
	}
	switch spec.Kind {
	case models.MarketKindMatchOdds:
		switch spec.Outcome {
		case models.OutcomeHomeWin:
			return "match_odds", 0, 3, true
		case models.OutcomeDraw:
			return "match_odds", 1, 3, true
		case models.OutcomeAwayWin:
			return "match_odds", 2, 3, true
		}
	case models.MarketKindNextGoal:
		return "next_goal", 0, 2, true
	case models.MarketKindOver:
		return "total_" + strconv.FormatFloat(spec.Line, 'f', -1, 64), 0, 2, true
	case models.MarketKindUnder:
		return "total_" + strconv.FormatFloat(spec.Line, 'f', -1, 64), 1, 2, true
	}
	return "", 0, 0, false
}

// buildLegs assigns every directional assessment a group and an interval of
// that group's draw. Slot probabilities come from all assessments in the set;
// unquoted slots share what is left. It returns the legs and the group count.
func buildLegs(assessments []models.EdgeAssessment) ([]leg, int) {
	sets := map[string]*outcomeSet{}
	for _, a := range assessments {
		key, slot, size, ok := exclusiveSlot(a.Market)
		if !ok {
			continue
		}
		set, seen := sets[key]
		if !seen {
			set = &outcomeSet{probs: make([]float64, size), known: make([]bool, size)}
			sets[key] = set
		}
		if !set.known[slot] {
			set.probs[slot] = modelProbability(a.FairPrice)
			set.known[slot] = true
		}
	}
	for _, set := range sets {
		set.partition()
	}

	var legs []leg
	index := map[string]int{}
	groups := 0
	for _, a := range assessments {
		if !a.HasEdge() {
			continue
		}
		key, slot, _, ok := exclusiveSlot(a.Market)
		if !ok {
			legs = append(legs, leg{assessment: a, group: groups, hi: modelProbability(a.FairPrice)})
			groups++
			continue
		}
		g, seen := index[key]
		if !seen {
			g = groups
			index[key] = g
			groups++
		}
		bounds := sets[key].bounds
		legs = append(legs, leg{assessment: a, group: g, lo: bounds[slot], hi: bounds[slot+1]})
	}
	return legs, groups
}

// partition fills unquoted slots with an equal share of the remaining mass,
// rescaling when the quoted slots already exceed one
func (s *outcomeSet) partition() {
	sum, missing := 0.0, 0
	for i, p := range s.probs {
		if s.known[i] {
			sum += p
		} else {
			missing++
		}
	}
	share := 0.0
	if sum > 1 {
		for i := range s.probs {
			s.probs[i] /= sum
		}
	} else if missing > 0 {
		share = (1 - sum) / float64(missing)
	}

	s.bounds = make([]float64, len(s.probs)+1)
	for i, p := range s.probs {
		if !s.known[i] {
			p = share
		}
		s.bounds[i+1] = s.bounds[i] + p
	}
}

func modelProbability(fair models.Price) float64 {
	if fair.IsInf() || fair <= 0 {
		return 0
	}
	return 1 / fair.Float64()
}

// settle returns the profit of a bet given whether its outcome happened
func settle(a models.EdgeAssessment, happens bool) float64 {
	switch a.Direction {
	case models.DirectionBack:
		if happens {
			return a.ProjectedProfit
		}
		return -a.StakeOrLiability
	case models.DirectionLay:
		if happens {
			return -a.LayStake * (a.LivePrice - 1)
		}
		return a.LayStake
	}
	return 0
}
