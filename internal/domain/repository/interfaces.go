package repository

import (
	"context"

	"FxRater/internal/domain/models"
)

// ReleaseStore holds the latest normalized economic releases, fed by the
// calendar consumer and read by the bias usecase when a request carries no
// inline releases.
type ReleaseStore interface {
	Put(ctx context.Context, releases []models.EconomicRelease) error
	// ForCurrencies returns stored releases whose currency is in ccys,
	// newest first.
	ForCurrencies(ctx context.Context, ccys ...string) ([]models.EconomicRelease, error)
	Len(ctx context.Context) (int, error)
}

// Metrics abstracts the Prometheus recorder so usecases stay testable.
type Metrics interface {
	RecordSetupScored(side, band string)
	RecordGateDecision(decision string)
	RecordRaterLatency(seconds float64)
	RecordError(kind string)
	RecordReleaseIngested(currency string)
	RecordReleaseDropped(reason string)
	RecordBiasComputed(label string)
}
