// Package main provides the odds-apex command line: evaluate snapshots,
// price pre-match lines, run simulations and serve the HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/odds-apex/internal/config"
	"github.com/yourusername/odds-apex/internal/engine"
	"github.com/yourusername/odds-apex/internal/logger"
	"github.com/yourusername/odds-apex/internal/metrics"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	appLog     *logrus.Logger
	cfg        *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultPath, "Path to configuration file")
	rootCmd.AddCommand(evaluateCmd, prematchCmd, simulateCmd, serveCmd, versionCmd)
}

var rootCmd = &cobra.Command{
	Use:           "odds-apex",
	Short:         "Fair odds and stake sizing for football markets",
	Long:          `Prices match odds, next goal and over/under lines from live match statistics and sizes back or lay stakes against quoted prices.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd == versionCmd {
			return nil
		}
		var err error
		cfg, err = config.LoadAndValidate(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		appLog = logger.NewLoggerWithOutput(cfg.App.LogLevel, cfg.App.Environment, os.Stderr)
		if cfg.Metrics.Enabled {
			metrics.InitRegistry()
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "odds-apex %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newEvaluator builds an evaluator from the loaded configuration and audits
// every profile override
func newEvaluator() (*engine.Evaluator, error) {
	params, overrides, err := cfg.ModelParams()
	if err != nil {
		return nil, err
	}

	audit := logger.NewAuditLogger(appLog)
	for _, o := range overrides {
		audit.LogParameterOverride(cfg.Model.Profile, o.Name, o.OldValue, o.NewValue, configFile)
	}

	return engine.NewEvaluator(engine.Options{
		Profile:   cfg.Model.Profile,
		Params:    params,
		Staking:   cfg.StakingParams(),
		Lines:     cfg.Markets.Lines,
		CacheTTL:  cfg.CacheTTL(),
		CacheSize: cfg.Cache.MaxSize,
	}, appLog)
}
