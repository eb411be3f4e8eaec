// Package logger provides evaluation-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
	"github.com/yourusername/odds-apex/internal/models"
)

// EvaluationLogger provides dedicated logging for pricing evaluations.
type EvaluationLogger struct {
	*logrus.Entry
}

// NewEvaluationLogger creates a new evaluation logger.
func NewEvaluationLogger(baseLogger *logrus.Logger) *EvaluationLogger {
	return &EvaluationLogger{
		Entry: baseLogger.WithField("component", "evaluation"),
	}
}

// LogEvaluation logs a completed in-play evaluation.
func (el *EvaluationLogger) LogEvaluation(evaluationID, profile string, snapshot models.MatchSnapshot, lambdas models.LambdaPair, quotes, recommendations int, cacheHit bool, durationMs float64) {
	el.WithFields(logrus.Fields{
		"evaluation_id":   evaluationID,
		"kind":            "in_play",
		"profile":         profile,
		"elapsed_minutes": snapshot.ElapsedMinutes,
		"score":           []int{snapshot.Home.Goals, snapshot.Away.Goals},
		"lambda_home":     lambdas.Home,
		"lambda_away":     lambdas.Away,
		"quotes":          quotes,
		"recommendations": recommendations,
		"cache_hit":       cacheHit,
		"duration_ms":     durationMs,
	}).Info("Evaluation completed")
}

// LogPreMatchEvaluation logs a completed pre-match evaluation.
func (el *EvaluationLogger) LogPreMatchEvaluation(evaluationID, profile string, line float64, lambdas models.LambdaPair, liveOver float64, durationMs float64) {
	el.WithFields(logrus.Fields{
		"evaluation_id": evaluationID,
		"kind":          "pre_match",
		"profile":       profile,
		"line":          line,
		"lambda_home":   lambdas.Home,
		"lambda_away":   lambdas.Away,
		"live_over":     liveOver,
		"duration_ms":   durationMs,
	}).Info("Pre-match evaluation completed")
}

// LogRecommendation logs a single directional recommendation.
func (el *EvaluationLogger) LogRecommendation(evaluationID string, a models.EdgeAssessment) {
	el.WithFields(logrus.Fields{
		"evaluation_id":      evaluationID,
		"market":             a.Market,
		"direction":          a.Direction,
		"fair_price":         a.FairPrice,
		"live_price":         a.LivePrice,
		"edge":               a.Edge,
		"kelly_fraction":     a.KellyFraction,
		"stake_or_liability": a.StakeOrLiability,
	}).Debug("Recommendation generated")
}

// LogRejected logs an evaluation rejected before pricing.
func (el *EvaluationLogger) LogRejected(evaluationID, reason string, err error) {
	el.WithFields(logrus.Fields{
		"evaluation_id": evaluationID,
		"reason":        reason,
	}).WithError(err).Warn("Evaluation rejected")
}
