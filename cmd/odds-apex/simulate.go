package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/odds-apex/internal/engine"
	"github.com/yourusername/odds-apex/internal/input"
	"github.com/yourusername/odds-apex/internal/models"
	"github.com/yourusername/odds-apex/internal/recommendation"
	"github.com/yourusername/odds-apex/internal/simulation"
)

var (
	simIterations int
	simSeed       int64
)

func init() {
	simulateCmd.Flags().IntVarP(&simIterations, "iterations", "n", 0, "Number of iterations (defaults to the configured value)")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "Random seed (defaults to the configured value)")
}

// simulationReport is the JSON form of the simulate command
type simulationReport struct {
	Evaluation *engine.Evaluation         `json:"evaluation"`
	Scorelines simulation.ScorelineResult `json:"scorelines"`
	Bankroll   simulation.BankrollResult  `json:"bankroll"`
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Cross-check a snapshot's prices by Monte Carlo and simulate the bankroll risk of its recommendations",
	RunE: func(cmd *cobra.Command, args []string) error {
		sf, err := loadSnapshotFile(snapshotPath)
		if err != nil {
			return err
		}
		snapshot, err := input.ParseSnapshot(sf.Fields)
		if err != nil {
			return err
		}
		quotes, err := input.ParseQuotes(sf.Quotes)
		if err != nil {
			return err
		}

		evaluator, err := newEvaluator()
		if err != nil {
			return err
		}
		ev, err := evaluator.Evaluate(cmd.Context(), snapshot, quotes)
		if err != nil {
			return err
		}

		iterations := cfg.Simulation.Iterations
		if simIterations > 0 {
			iterations = simIterations
		}
		seed := cfg.Simulation.Seed
		if cmd.Flags().Changed("seed") {
			seed = simSeed
		}

		lines := make([]float64, 0, len(ev.OverUnder))
		for _, ld := range ev.OverUnder {
			lines = append(lines, ld.Line)
		}
		scorelines, err := simulation.SimulateScorelines(cmd.Context(), ev.Lambdas, snapshot.Home.Goals, snapshot.Away.Goals, simulation.ScorelineConfig{
			Iterations: iterations,
			Seed:       seed,
			PZero:      evaluator.Params().MatchOdds.PZero,
			Lines:      lines,
		})
		if err != nil {
			return err
		}

		bankroll, err := simulation.SimulateBankroll(cmd.Context(), ev.Assessments, simulation.BankrollConfig{
			Iterations:      iterations,
			Seed:            seed,
			CommissionRate:  cfg.Simulation.CommissionRate,
			InitialBankroll: snapshot.AccountBalance,
		})
		if err != nil {
			return err
		}

		appLog.WithFields(logrus.Fields{
			"iterations": iterations,
			"seed":       seed,
		}).Info("Simulation complete")

		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), simulationReport{Evaluation: ev, Scorelines: scorelines, Bankroll: bankroll})
		}
		printSimulation(cmd.OutOrStdout(), ev, scorelines, bankroll)
		return nil
	},
}

func printSimulation(w io.Writer, ev *engine.Evaluation, sr simulation.ScorelineResult, br simulation.BankrollResult) {
	fmt.Fprintf(w, "Scoreline simulation (%d iterations, seed %d)\n", sr.Iterations, sr.Seed)
	fmt.Fprintf(w, "  %-10s %8s %8s\n", "", "model", "sim")
	simulated := sr.MatchOdds()
	for _, row := range []struct {
		market  models.Market
		outcome models.Outcome
	}{
		{models.MarketHome, models.OutcomeHomeWin},
		{models.MarketDraw, models.OutcomeDraw},
		{models.MarketAway, models.OutcomeAwayWin},
	} {
		fmt.Fprintf(w, "  %-10s %7.2f%% %7.2f%%\n", recommendation.MarketLabel(row.market),
			ev.MatchOdds.Probability(row.outcome)*100, simulated.Probability(row.outcome)*100)
	}
	for _, ld := range ev.OverUnder {
		key := string(models.OverMarket(ld.Line))
		fmt.Fprintf(w, "  %-10s %7.2f%% %7.2f%%\n", recommendation.MarketLabel(models.OverMarket(ld.Line)),
			ld.Distribution.Probability(models.OutcomeOver)*100, sr.Over[key]*100)
	}
	fmt.Fprintf(w, "  Mean total goals: %.3f (std %.3f)\n", sr.MeanTotalGoals, sr.StdTotalGoals)

	fmt.Fprintf(w, "\nBankroll simulation (%d iterations)\n", br.Iterations)
	fmt.Fprintf(w, "  Mean return: %s (std %s)\n", recommendation.Money(br.MeanReturn), recommendation.Money(br.StdReturn))
	fmt.Fprintf(w, "  VaR 95%%: %s, VaR 99%%: %s\n", recommendation.Money(br.VaR95), recommendation.Money(br.VaR99))
	fmt.Fprintf(w, "  Probability of profit: %s\n", recommendation.Percent(br.ProbabilityOfProfit))
	fmt.Fprintf(w, "  Probability of ruin: %s\n", recommendation.Percent(br.ProbabilityOfRuin))

	levels := make([]string, 0, len(br.ConfidenceIntervals))
	for level := range br.ConfidenceIntervals {
		levels = append(levels, level)
	}
	sort.Strings(levels)
	for _, level := range levels {
		ci := br.ConfidenceIntervals[level]
		fmt.Fprintf(w, "  %s interval: %s to %s\n", level, recommendation.Money(ci.Low), recommendation.Money(ci.High))
	}
}
