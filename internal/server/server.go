// Package server exposes the evaluator over a JSON HTTP API together with
// health, readiness and metrics endpoints.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/yourusername/odds-apex/internal/engine"
	"github.com/yourusername/odds-apex/internal/metrics"
	"github.com/yourusername/odds-apex/internal/models"
)

// Evaluator prices snapshots for the API handlers
type Evaluator interface {
	Evaluate(ctx context.Context, snapshot models.MatchSnapshot, quotes []models.MarketQuote) (*engine.Evaluation, error)
	EvaluatePreMatch(ctx context.Context, snapshot models.PreMatchSnapshot, liveOver float64) (*engine.PreMatchEvaluation, error)
}

// Config holds the configuration for the API server.
type Config struct {
	ServiceName  string
	Version      string
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// RateLimit of zero disables rate limiting
	RateLimit float64
	RateBurst int

	MetricsPath    string
	DisableMetrics bool
	Logger         *logrus.Logger
	Evaluator      Evaluator
}

// Server is the HTTP front end of the evaluator.
type Server struct {
	cfg     Config
	server  *http.Server
	handler http.Handler
	limiter *rate.Limiter
	logger  *logrus.Entry
	mu      sync.RWMutex
	ready   bool

	shutdownOnce sync.Once
	shutdownErr  error
}

// NewServer creates a new API server.
func NewServer(cfg Config) *Server {
	if cfg.Address == "" {
		cfg.Address = ":8080"
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 5 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "/metrics"
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}

	s := &Server{
		cfg:    cfg,
		logger: cfg.Logger.WithField("component", "server"),
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	s.handler = s.routes()
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)
	mux.HandleFunc("GET /live", s.handleLive)
	if !s.cfg.DisableMetrics {
		mux.Handle("GET "+s.cfg.MetricsPath, metrics.Handler())
	}
	mux.Handle("POST /v1/evaluate", s.limit(s.requireEvaluator(http.HandlerFunc(s.handleEvaluate))))
	mux.Handle("POST /v1/prematch", s.limit(s.requireEvaluator(http.HandlerFunc(s.handlePreMatch))))
	return s.instrument(mux)
}

// Handler returns the routed and instrumented handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// SetReady marks the server as ready to accept traffic.
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// IsReady returns whether the server is ready.
func (s *Server) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Start listens on the configured address and serves until ctx is cancelled.
// The listener is bound before Start returns.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return err
	}

	s.server = &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		s.logger.WithFields(logrus.Fields{
			"address": ln.Addr().String(),
			"service": s.cfg.ServiceName,
		}).Info("API server starting")

		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.WithError(err).Error("API server error")
		}
	}()

	go func() {
		<-ctx.Done()
		if err := s.Shutdown(); err != nil {
			s.logger.WithError(err).Warn("API server shutdown error")
		}
	}()

	s.SetReady(true)
	return nil
}

// Shutdown gracefully shuts down the server. Calls after the first return
// the first result.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}
	s.shutdownOnce.Do(func() {
		s.SetReady(false)
		s.logger.Info("API server shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.shutdownErr = s.server.Shutdown(ctx)
	})
	return s.shutdownErr
}
