package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/odds-apex/internal/models"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerWithOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLoggerWithOutput("debug", "production", buf)

	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log.Info("ready")
	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "ready", entry["msg"])
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLoggerWithOutput("verbose", "development", buf)

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
	assert.Contains(t, buf.String(), "Invalid log level")
}

func TestEvaluationLoggerEvaluation(t *testing.T) {
	log, buf := setupTestLogger()
	evalLogger := NewEvaluationLogger(log)

	snapshot := models.MatchSnapshot{ElapsedMinutes: 63}
	snapshot.Home.Goals = 1

	evalLogger.LogEvaluation("eval_001", "in_play", snapshot, models.LambdaPair{Home: 0.8, Away: 0.5}, 3, 2, false, 0.4)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "eval_001", logEntry["evaluation_id"])
	assert.Equal(t, "evaluation", logEntry["component"])
	assert.Equal(t, "in_play", logEntry["kind"])
	assert.Equal(t, float64(63), logEntry["elapsed_minutes"])
	assert.Equal(t, []interface{}{float64(1), float64(0)}, logEntry["score"])
}

func TestEvaluationLoggerPreMatch(t *testing.T) {
	log, buf := setupTestLogger()
	evalLogger := NewEvaluationLogger(log)

	evalLogger.LogPreMatchEvaluation("eval_002", "classic", 2.5, models.LambdaPair{Home: 1.4, Away: 1.1}, 1.95, 0.2)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "pre_match", logEntry["kind"])
	assert.Equal(t, 2.5, logEntry["line"])
}

func TestEvaluationLoggerRecommendation(t *testing.T) {
	log, buf := setupTestLogger()
	evalLogger := NewEvaluationLogger(log)

	evalLogger.LogRecommendation("eval_003", models.EdgeAssessment{
		Market:    models.MarketHome,
		Direction: models.DirectionLay,
		FairPrice: models.InfinitePrice,
		LivePrice: 2,
		Edge:      1,
	})

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "LAY", logEntry["direction"])
	assert.Nil(t, logEntry["fair_price"])
	assert.Equal(t, "debug", logEntry["level"])
}

func TestEvaluationLoggerRejected(t *testing.T) {
	log, buf := setupTestLogger()
	evalLogger := NewEvaluationLogger(log)

	evalLogger.LogRejected("eval_004", "unknown_market", errors.New("unknown market: corners"))

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "unknown_market", logEntry["reason"])
	assert.Equal(t, "unknown market: corners", logEntry["error"])
	assert.Equal(t, "warning", logEntry["level"])
}

func TestAuditLoggerStakeRecommendation(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogStakeRecommendation(
		"eval_001",
		"away",
		"BACK",
		6.25,
		2.5,
		100,
		time.Date(2024, 2, 3, 12, 0, 0, 0, time.UTC),
	)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "audit", logEntry["component"])
	assert.Equal(t, 6.25, logEntry["stake_or_liability"])
}

func TestAuditLoggerParameterOverride(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogParameterOverride("in_play", "decay.floor", 0.6, 0.5, "config")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "decay.floor", logEntry["parameter_name"])
}

func TestAuditLoggerProfileLoaded(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogProfileLoaded("conservative", 0.25, 0)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "conservative", logEntry["profile"])
}

func BenchmarkEvaluationLoggerRecommendation(b *testing.B) {
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	log.SetLevel(logrus.DebugLevel)
	evalLogger := NewEvaluationLogger(log)

	a := models.EdgeAssessment{Market: models.MarketDraw, Direction: models.DirectionBack, FairPrice: 3.1, LivePrice: 3.4}
	for i := 0; i < b.N; i++ {
		evalLogger.LogRecommendation("eval_001", a)
	}
}
