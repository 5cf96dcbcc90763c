package usecase

import (
	"context"
	"encoding/json"
	"time"

	"FxRater/internal/domain/models"
	domrepo "FxRater/internal/domain/repository"
	"FxRater/internal/services/fundamentals"
	pkgkafka "FxRater/pkg/kafka"
)

// KafkaReleasesHandler consumes economic-calendar releases and feeds the
// release store. Malformed releases are counted and skipped, never retried.
type KafkaReleasesHandler struct {
	topic   string
	store   domrepo.ReleaseStore
	metrics domrepo.Metrics
}

func NewKafkaReleasesHandler(topic string, store domrepo.ReleaseStore, metrics domrepo.Metrics) *KafkaReleasesHandler {
	return &KafkaReleasesHandler{topic: topic, store: store, metrics: metrics}
}

func (h *KafkaReleasesHandler) Topic() string { return h.topic }

// incoming message schema: a single release object or an array of them
func (h *KafkaReleasesHandler) Handle(ctx context.Context, b []byte) error {
	raws, err := decodeReleases(b)
	if err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return nil // poison message, not retryable
	}

	now := time.Now().UTC()
	var batch []models.EconomicRelease
	for _, raw := range raws {
		rel, err := fundamentals.NormalizeRelease(raw, now)
		if err != nil {
			h.metrics.RecordReleaseDropped("invalid")
			continue
		}
		batch = append(batch, rel)
	}
	if len(batch) == 0 {
		return nil
	}

	if err := h.store.Put(ctx, batch); err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	for _, rel := range batch {
		h.metrics.RecordReleaseIngested(rel.Currency)
	}
	return nil
}

func decodeReleases(b []byte) ([]models.RawRelease, error) {
	var many []models.RawRelease
	if err := json.Unmarshal(b, &many); err == nil {
		return many, nil
	}
	var one models.RawRelease
	if err := json.Unmarshal(b, &one); err != nil {
		return nil, err
	}
	return []models.RawRelease{one}, nil
}

var _ pkgkafka.MessageHandler = (*KafkaReleasesHandler)(nil)
