package di

import (
	"fmt"
	"net"

	"FxRater/internal/domain/repository"
	"FxRater/internal/domain/service"
	"FxRater/internal/handler/api"
	internalrepo "FxRater/internal/repository"
	"FxRater/internal/services/fundamentals"
	"FxRater/internal/services/rater"
	"FxRater/internal/usecase"
	"FxRater/pkg/cache"
	"FxRater/pkg/config"
	xhttp "FxRater/pkg/http"
	pkgkafka "FxRater/pkg/kafka"
	applogger "FxRater/pkg/logger"
	"FxRater/pkg/metrics"
	"FxRater/pkg/server"
	"FxRater/pkg/util"
)

// releaseStoreCap bounds the in-memory release store across all currencies.
const releaseStoreCap = 512

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := "info"
	format := "json"
	if cfg.Environment == "development" {
		level = "debug"
		format = "console"
	}
	return applogger.New(&applogger.Config{Level: level, Format: format, Output: "stdout"})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideReleaseStore creates the in-memory economic release store.
func ProvideReleaseStore() repository.ReleaseStore {
	return internalrepo.NewMemoryReleaseStore(fundamentals.LookbackWindow, releaseStoreCap)
}

// ProvideCache creates the cache service: layered (memory + Redis) when Redis
// is enabled, memory-only otherwise.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}

	host, portStr, err := net.SplitHostPort(cfg.Redis.Addr)
	if err != nil {
		return nil, fmt.Errorf("redis addr: %w", err)
	}
	port := util.ParseIntDefault(portStr, 6379)

	rc, err := cache.NewRedisCache(
		cache.WithRedisHost(host),
		cache.WithRedisPort(port),
		cache.WithRedisPassword(cfg.Redis.Password),
		cache.WithRedisDB(cfg.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(rc), nil
}

// ProvideRater creates the external setup rater, or nil when disabled. A nil
// rater keeps scoring deterministic-only.
func ProvideRater(cfg *config.Config) service.SetupRater {
	if !cfg.Rater.Enabled {
		return nil
	}
	return rater.NewHTTPRater(cfg)
}

// ProvideSetupScoreUseCase creates the setup scoring use case.
func ProvideSetupScoreUseCase(
	logger *applogger.Logger,
	m repository.Metrics,
	r service.SetupRater,
	cfg *config.Config,
) *usecase.SetupScoreUseCase {
	uc := usecase.NewSetupScoreUseCase(logger, m, r)
	uc.SetGateBand(cfg.Rater.GateLow, cfg.Rater.GateHigh)
	return uc
}

// ProvideFundamentalBiasUseCase creates the fundamental bias use case.
func ProvideFundamentalBiasUseCase(
	logger *applogger.Logger,
	m repository.Metrics,
	store repository.ReleaseStore,
	cch cache.Service,
	cfg *config.Config,
) *usecase.FundamentalBiasUseCase {
	return usecase.NewFundamentalBiasUseCase(logger, m, store, cch, cfg.Fundamentals.CacheTTL.Std())
}

// ProvideHTTPHandler creates the Echo API handler.
func ProvideHTTPHandler(
	logger *applogger.Logger,
	score *usecase.SetupScoreUseCase,
	bias *usecase.FundamentalBiasUseCase,
) xhttp.Handler {
	return api.NewRatingEchoHandler(logger, score, bias)
}

// ProvideKafkaConsumer creates a Kafka consumer configured from YAML, or nil
// when Kafka ingest is disabled.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin.Std(), cfg.Kafka.Consumer.BackoffMax.Std()),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideKafkaReleasesHandler registers the handler for the releases topic.
func ProvideKafkaReleasesHandler(
	store repository.ReleaseStore,
	m repository.Metrics,
	cfg *config.Config,
) pkgkafka.MessageHandler {
	if !cfg.Kafka.Enabled {
		return nil
	}
	return usecase.NewKafkaReleasesHandler(cfg.Kafka.Topic, store, m)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	cch cache.Service,
) *server.App {
	return server.New(cfg, logger, handler, consumer, kh, cch)
}
