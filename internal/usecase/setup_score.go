package usecase

import (
	"context"
	"encoding/json"
	"time"

	"FxRater/internal/domain/models"
	domrepo "FxRater/internal/domain/repository"
	"FxRater/internal/domain/service"
	"FxRater/internal/services/scoring"
	xlogger "FxRater/pkg/logger"
)

// SetupScoreUseCase runs the scoring pipeline for one setup request and
// records the outcome.
type SetupScoreUseCase struct {
	logger  *xlogger.Logger
	metrics domrepo.Metrics
	rater   service.SetupRater
	band    scoring.GateBand
	timeout time.Duration
}

func NewSetupScoreUseCase(logger *xlogger.Logger, metrics domrepo.Metrics, rater service.SetupRater) *SetupScoreUseCase {
	return &SetupScoreUseCase{
		logger:  logger,
		metrics: metrics,
		rater:   rater,
		timeout: 15 * time.Second,
	}
}

// SetGateBand sets the server-level gate band. Request options still win.
func (uc *SetupScoreUseCase) SetGateBand(low, high float64) {
	uc.band = scoring.GateBand{Low: low, High: high}
}

func (uc *SetupScoreUseCase) Score(ctx context.Context, req *models.ScoreRequest) (models.CombinedScore, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	band := scoring.GateBand{Low: req.Options.GateLow, High: req.Options.GateHigh}
	if band == (scoring.GateBand{}) {
		band = uc.band
	}
	opts := &scoring.Options{
		UseAI: req.Options.UseAI,
		Band:  band,
	}
	if uc.rater != nil {
		opts.Rater = uc.timedRater()
	}

	res, err := scoring.ScoreSetup(ctx, req.Snapshot, req.Indicators, req.Trade, opts)
	if err != nil {
		uc.metrics.RecordError("score_setup")
		return models.CombinedScore{}, err
	}

	decision := "skipped"
	if res.Consulted {
		decision = "consulted"
	}
	if !req.Options.UseAI || uc.rater == nil {
		decision = "disabled"
	}
	uc.metrics.RecordGateDecision(decision)
	uc.metrics.RecordSetupScored(string(req.Trade.Side), confidenceBand(res.CombinedConfidence))

	uc.logger.Info("setup scored",
		xlogger.String("symbol", req.Snapshot.Symbol),
		xlogger.String("side", string(req.Trade.Side)),
		xlogger.Float64("base_confidence", res.Deterministic.ConfidenceConditional),
		xlogger.Float64("combined_confidence", res.CombinedConfidence),
		xlogger.Float64("p_fill", res.PFill),
		xlogger.Bool("consulted", res.Consulted),
	)
	return res, nil
}

// timedRater wraps the configured rater with a latency observation.
func (uc *SetupScoreUseCase) timedRater() service.SetupRater {
	return service.RaterFunc(func(ctx context.Context, systemPrompt string, payload models.RaterPayload) (json.RawMessage, error) {
		start := time.Now()
		raw, err := uc.rater.Rate(ctx, systemPrompt, payload)
		uc.metrics.RecordRaterLatency(time.Since(start).Seconds())
		if err != nil {
			uc.metrics.RecordError("rater")
		}
		return raw, err
	})
}

// confidenceBand buckets a combined confidence for the scored counter.
func confidenceBand(conf float64) string {
	switch {
	case conf < 0.45:
		return "low"
	case conf <= 0.70:
		return "mid"
	default:
		return "high"
	}
}
