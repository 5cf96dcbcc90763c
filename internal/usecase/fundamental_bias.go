package usecase

import (
	"context"
	"strings"
	"time"

	"FxRater/internal/domain/models"
	domrepo "FxRater/internal/domain/repository"
	"FxRater/internal/services/fundamentals"
	"FxRater/pkg/cache"
	xlogger "FxRater/pkg/logger"
)

// FundamentalBiasUseCase computes the pair bias from caller-supplied
// releases, or from the calendar store when the request carries none.
// Store-backed results are cached per pair.
type FundamentalBiasUseCase struct {
	logger  *xlogger.Logger
	metrics domrepo.Metrics
	store   domrepo.ReleaseStore
	cache   cache.Service
	ttl     time.Duration
}

func NewFundamentalBiasUseCase(
	logger *xlogger.Logger,
	metrics domrepo.Metrics,
	store domrepo.ReleaseStore,
	cch cache.Service,
	ttl time.Duration,
) *FundamentalBiasUseCase {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &FundamentalBiasUseCase{
		logger:  logger,
		metrics: metrics,
		store:   store,
		cache:   cch,
		ttl:     ttl,
	}
}

func (uc *FundamentalBiasUseCase) Bias(ctx context.Context, req *models.BiasRequest) (*models.BiasResponse, error) {
	if len(req.Releases) > 0 {
		return uc.biasFromPayload(req), nil
	}
	return uc.biasFromStore(ctx, req)
}

func (uc *FundamentalBiasUseCase) biasFromPayload(req *models.BiasRequest) *models.BiasResponse {
	validation := fundamentals.Normalize(models.FundamentalsInput{
		BaseCcy:  req.BaseCcy,
		QuoteCcy: req.QuoteCcy,
		Releases: req.Releases,
	}, time.Now().UTC())

	for i := 0; i < validation.Dropped; i++ {
		uc.metrics.RecordReleaseDropped("payload")
	}

	resp := &models.BiasResponse{Bias: fundamentals.ScoreBias(validation.Cleaned)}
	resp.Validation.OK = validation.OK
	resp.Validation.Issues = validation.Issues

	uc.metrics.RecordBiasComputed(resp.Bias.Label)
	uc.logger.Info("fundamental bias computed",
		xlogger.String("pair", req.BaseCcy+"/"+req.QuoteCcy),
		xlogger.String("label", resp.Bias.Label),
		xlogger.Int("strength", resp.Bias.Strength),
		xlogger.Int("releases", len(validation.Cleaned.Releases)),
		xlogger.Int("issues", len(validation.Issues)),
	)
	return resp
}

func (uc *FundamentalBiasUseCase) biasFromStore(ctx context.Context, req *models.BiasRequest) (*models.BiasResponse, error) {
	cleaned := models.CleanFundamentals{
		BaseCcy:  strings.ToUpper(req.BaseCcy),
		QuoteCcy: strings.ToUpper(req.QuoteCcy),
	}

	key := cache.GenerateKeyWithParams("bias", cleaned.BaseCcy, cleaned.QuoteCcy)
	if uc.cache != nil {
		var cached models.BiasResponse
		if err := uc.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	if uc.store != nil {
		releases, err := uc.store.ForCurrencies(ctx, cleaned.BaseCcy, cleaned.QuoteCcy)
		if err != nil {
			uc.metrics.RecordError("release_store")
			return nil, err
		}
		cleaned.Releases = releases
	}

	resp := &models.BiasResponse{Bias: fundamentals.ScoreBias(cleaned)}
	resp.Validation.OK = len(cleaned.Releases) > 0
	if !resp.Validation.OK {
		resp.Validation.Issues = []string{"no stored releases for pair"}
	}

	uc.metrics.RecordBiasComputed(resp.Bias.Label)
	uc.logger.Info("fundamental bias computed from store",
		xlogger.String("pair", cleaned.BaseCcy+"/"+cleaned.QuoteCcy),
		xlogger.String("label", resp.Bias.Label),
		xlogger.Int("strength", resp.Bias.Strength),
		xlogger.Int("releases", len(cleaned.Releases)),
	)

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, resp, uc.ttl); err != nil {
			uc.logger.Warn("bias cache write failed", xlogger.Error(err))
		}
	}
	return resp, nil
}
