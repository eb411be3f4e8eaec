package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/yourusername/odds-apex/internal/engine"
	"github.com/yourusername/odds-apex/internal/input"
	"github.com/yourusername/odds-apex/internal/models"
	"github.com/yourusername/odds-apex/internal/recommendation"
)

const maxBodyBytes = 1 << 20

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp,omitempty"`
	Version   string `json:"version,omitempty"`
}

// ReadyResponse represents the JSON response for readiness check endpoints.
type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// QuoteList accepts quotes either as an ordered array of {market, price}
// objects or as a market-to-price object
type QuoteList []input.RawQuote

// UnmarshalJSON implements json.Unmarshaler
func (q *QuoteList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var byMarket map[string]string
		if err := json.Unmarshal(trimmed, &byMarket); err != nil {
			return err
		}
		*q = input.QuotesFromMap(byMarket)
		return nil
	}
	var list []input.RawQuote
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return err
	}
	*q = list
	return nil
}

// EvaluateRequest is the body of POST /v1/evaluate
type EvaluateRequest struct {
	Fields map[string]string `json:"fields"`
	Quotes QuoteList         `json:"quotes"`
}

// PreMatchRequest is the body of POST /v1/prematch
type PreMatchRequest struct {
	Fields   map[string]string `json:"fields"`
	LiveOver string            `json:"live_over"`
}

// EvaluateResponse wraps an evaluation with its printable summary
type EvaluateResponse struct {
	*engine.Evaluation
	Text string `json:"text"`
}

// PreMatchResponse wraps a pre-match evaluation with its printable summary
type PreMatchResponse struct {
	*engine.PreMatchEvaluation
	Text string `json:"text"`
}

type errorResponse struct {
	Error  string             `json:"error"`
	Fields []input.FieldError `json:"fields,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Service:   s.cfg.ServiceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   s.cfg.Version,
	})
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Service: s.cfg.ServiceName})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"service": "ok", "evaluator": "ok"}
	healthy := true
	if !s.IsReady() {
		checks["service"] = "not_ready"
		healthy = false
	}
	if s.cfg.Evaluator == nil {
		checks["evaluator"] = "missing"
		healthy = false
	}

	if healthy {
		writeJSON(w, http.StatusOK, ReadyResponse{Status: "ok", Checks: checks})
		return
	}
	writeJSON(w, http.StatusServiceUnavailable, ReadyResponse{Status: "not_ready", Checks: checks})
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if !s.decode(w, r, &req) {
		return
	}

	snapshot, err := input.ParseSnapshot(req.Fields)
	if err != nil {
		s.writeError(w, err)
		return
	}
	quotes, err := input.ParseQuotes(req.Quotes)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ev, err := s.cfg.Evaluator.Evaluate(r.Context(), snapshot, quotes)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, EvaluateResponse{Evaluation: ev, Text: recommendation.Text(ev.Recommendations)})
}

func (s *Server) handlePreMatch(w http.ResponseWriter, r *http.Request) {
	var req PreMatchRequest
	if !s.decode(w, r, &req) {
		return
	}

	snapshot, err := input.ParsePreMatch(req.Fields)
	if err != nil {
		s.writeError(w, err)
		return
	}
	liveOver, err := input.ParsePrice("live_over", req.LiveOver)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ev, err := s.cfg.Evaluator.EvaluatePreMatch(r.Context(), snapshot, liveOver)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PreMatchResponse{PreMatchEvaluation: ev, Text: recommendation.Text(ev.Recommendations)})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return false
	}
	return true
}

// writeError maps evaluation errors to status codes
func (s *Server) writeError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: err.Error()}
	var verr *input.ValidationError
	if errors.As(err, &verr) {
		resp.Fields = verr.Fields
	}

	switch {
	case errors.Is(err, models.ErrInvalidNumber), errors.Is(err, models.ErrUnknownMarket):
		writeJSON(w, http.StatusBadRequest, resp)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeJSON(w, http.StatusServiceUnavailable, resp)
	default:
		s.logger.WithError(err).Error("Evaluation failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
