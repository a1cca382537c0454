package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"spendpause/internal/models"
	"spendpause/pkg/config"

	"go.uber.org/zap"
)

// TraceEvent is one evaluation record shipped to the hosted trace service.
type TraceEvent struct {
	UserID          string                  `json:"user_id"`
	ProductName     string                  `json:"product_name"`
	ProductURL      string                  `json:"product_url"`
	SuggestedAction models.SuggestedAction  `json:"suggested_action"`
	Scores          models.EvaluationResult `json:"scores"`
	LatencyMS       int64                   `json:"latency_ms"`
	CreatedAt       time.Time               `json:"created_at"`
}

// TraceService ships evaluation scores to an external ingestion endpoint.
// Tracing is strictly best-effort: every failure is logged and swallowed so
// it can never abort the caller's primary flow.
type TraceService struct {
	httpClient *http.Client
	cfg        *config.TraceConfig
	logger     *zap.Logger
}

func NewTraceService(cfg *config.TraceConfig, logger *zap.Logger) *TraceService {
	return &TraceService{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		logger:     logger,
	}
}

// RecordEvaluation posts one trace event. No error is returned.
func (s *TraceService) RecordEvaluation(ctx context.Context, event *TraceEvent) {
	if s.cfg.Endpoint == "" {
		s.logger.Debug("Trace endpoint not configured, skipping evaluation trace")
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		s.logger.Warn("Failed to encode trace event", zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		s.logger.Warn("Failed to build trace request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("Trace request failed", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.logger.Warn("Trace endpoint rejected event", zap.Int("status", resp.StatusCode))
		return
	}

	s.logger.Debug("Evaluation trace recorded", zap.String("product", event.ProductName))
}
