//go:build wireinject
// +build wireinject

package di

import (
	"FxRater/pkg/config"
	"FxRater/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Storage and cache
		ProvideReleaseStore,
		ProvideCache,

		// External rater
		ProvideRater,

		// Use cases
		ProvideSetupScoreUseCase,
		ProvideFundamentalBiasUseCase,

		// Transport
		ProvideHTTPHandler,
		ProvideKafkaConsumer,
		ProvideKafkaReleasesHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
