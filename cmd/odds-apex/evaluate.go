package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yourusername/odds-apex/internal/engine"
	"github.com/yourusername/odds-apex/internal/input"
	"github.com/yourusername/odds-apex/internal/models"
	"github.com/yourusername/odds-apex/internal/recommendation"
)

var (
	snapshotPath string
	jsonOutput   bool
)

func init() {
	for _, cmd := range []*cobra.Command{evaluateCmd, prematchCmd, simulateCmd} {
		cmd.Flags().StringVarP(&snapshotPath, "snapshot", "s", "", "Path to a snapshot file (yaml or json)")
		cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the full result as JSON")
		_ = cmd.MarkFlagRequired("snapshot")
	}
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Price an in-play snapshot and size stakes against its quotes",
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

		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), ev)
		}
		printEvaluation(cmd.OutOrStdout(), ev)
		return nil
	},
}

var prematchCmd = &cobra.Command{
	Use:   "prematch",
	Short: "Price the goal line of a pre-match snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		sf, err := loadSnapshotFile(snapshotPath)
		if err != nil {
			return err
		}
		snapshot, err := input.ParsePreMatch(sf.Fields)
		if err != nil {
			return err
		}
		liveOver, err := input.ParsePrice("live_over", sf.LiveOver)
		if err != nil {
			return err
		}

		evaluator, err := newEvaluator()
		if err != nil {
			return err
		}
		ev, err := evaluator.EvaluatePreMatch(cmd.Context(), snapshot, liveOver)
		if err != nil {
			return err
		}

		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), ev)
		}
		printPreMatch(cmd.OutOrStdout(), ev)
		return nil
	},
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printEvaluation(w io.Writer, ev *engine.Evaluation) {
	fmt.Fprintf(w, "Profile: %s\n", ev.Profile)
	fmt.Fprintf(w, "Expected goals remaining: home %.3f, away %.3f\n\n", ev.Lambdas.Home, ev.Lambdas.Away)

	fmt.Fprintln(w, "Fair prices:")
	printRow(w, models.MarketHome, ev.MatchOdds.Probability(models.OutcomeHomeWin), ev.FairPrices)
	printRow(w, models.MarketDraw, ev.MatchOdds.Probability(models.OutcomeDraw), ev.FairPrices)
	printRow(w, models.MarketAway, ev.MatchOdds.Probability(models.OutcomeAwayWin), ev.FairPrices)
	printRow(w, models.MarketNextGoal, ev.NextGoal.Probability(models.OutcomeGoal), ev.FairPrices)
	for _, ld := range ev.OverUnder {
		printRow(w, models.OverMarket(ld.Line), ld.Distribution.Probability(models.OutcomeOver), ev.FairPrices)
		printRow(w, models.UnderMarket(ld.Line), ld.Distribution.Probability(models.OutcomeUnder), ev.FairPrices)
	}
	if ev.Overround != 0 {
		fmt.Fprintf(w, "Quoted match odds overround: %s\n", recommendation.Percent(ev.Overround))
	}

	fmt.Fprintln(w, "\nRecommendations:")
	fmt.Fprint(w, recommendation.Text(ev.Recommendations))
}

func printPreMatch(w io.Writer, ev *engine.PreMatchEvaluation) {
	fmt.Fprintf(w, "Profile: %s\n", ev.Profile)
	fmt.Fprintf(w, "Expected goals: home %.3f, away %.3f\n\n", ev.Lambdas.Home, ev.Lambdas.Away)
	fmt.Fprintf(w, "Model over %v: %.2f%%\n", ev.Line, ev.Model.Probability(models.OutcomeOver)*100)
	fmt.Fprintf(w, "Blended over %v: %.2f%%\n", ev.Line, ev.Blended.Probability(models.OutcomeOver)*100)
	fmt.Fprintf(w, "Fair prices: over %s, under %s\n", recommendation.Price(ev.OverPrice), recommendation.Price(ev.UnderPrice))

	fmt.Fprintln(w, "\nRecommendations:")
	fmt.Fprint(w, recommendation.Text(ev.Recommendations))
}

func printRow(w io.Writer, market models.Market, probability float64, fair map[models.Market]models.Price) {
	fmt.Fprintf(w, "  %-10s %6.2f%%  %s\n", recommendation.MarketLabel(market), probability*100, recommendation.Price(fair[market]))
}
