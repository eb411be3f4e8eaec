// Package logger provides audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogStakeRecommendation logs a sized stake handed to the caller.
func (al *AuditLogger) LogStakeRecommendation(evaluationID, market, direction string, stakeOrLiability, livePrice, balance float64, timestamp time.Time) {
	al.WithFields(logrus.Fields{
		"evaluation_id":      evaluationID,
		"market":             market,
		"direction":          direction,
		"stake_or_liability": stakeOrLiability,
		"live_price":         livePrice,
		"account_balance":    balance,
		"timestamp":          timestamp.Unix(),
	}).Info("Stake recommendation issued")
}

// LogParameterOverride logs a model coefficient overridden by configuration.
func (al *AuditLogger) LogParameterOverride(profile, parameterName string, oldValue, newValue interface{}, source string) {
	al.WithFields(logrus.Fields{
		"profile":        profile,
		"parameter_name": parameterName,
		"old_value":      oldValue,
		"new_value":      newValue,
		"source":         source,
	}).Info("Model parameter overridden")
}

// LogProfileLoaded logs the model profile an engine starts with.
func (al *AuditLogger) LogProfileLoaded(profile string, kellyMultiplier, maxStakePerBet float64) {
	al.WithFields(logrus.Fields{
		"profile":           profile,
		"kelly_multiplier":  kellyMultiplier,
		"max_stake_per_bet": maxStakePerBet,
	}).Info("Model profile loaded")
}
