package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/odds-apex/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the evaluation API with health and metrics endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		evaluator, err := newEvaluator()
		if err != nil {
			return err
		}

		srv := server.NewServer(server.Config{
			ServiceName:    cfg.App.Name,
			Version:        Version,
			Address:        cfg.Server.Address,
			ReadTimeout:    time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
			WriteTimeout:   time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
			RateLimit:      cfg.Server.RateLimitPerSecond,
			RateBurst:      cfg.Server.RateLimitBurst,
			MetricsPath:    cfg.Metrics.Path,
			DisableMetrics: !cfg.Metrics.Enabled,
			Logger:         appLog,
			Evaluator:      evaluator,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		appLog.WithFields(logrus.Fields{
			"environment": cfg.App.Environment,
			"profile":     evaluator.Profile(),
			"address":     cfg.Server.Address,
			"version":     Version,
			"commit":      GitCommit,
		}).Info("odds-apex starting")

		if err := srv.Start(ctx); err != nil {
			return err
		}

		<-ctx.Done()
		appLog.Info("Shutdown signal received")
		return srv.Shutdown()
	},
}

