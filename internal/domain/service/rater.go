package service

import (
	"context"
	"encoding/json"

	"FxRater/internal/domain/models"
)

// SetupRater is the injected external rating capability. The engine calls it
// at most once per scoring request and never retries; any timeout policy
// belongs to the implementation or the caller's context.
//
// The returned message is either an AIAssessment-shaped JSON object or a JSON
// string containing one; the gate coerces and clamps it either way.
type SetupRater interface {
	Rate(ctx context.Context, systemPrompt string, payload models.RaterPayload) (json.RawMessage, error)
}

// RaterFunc adapts a plain function to SetupRater, mainly for tests.
type RaterFunc func(ctx context.Context, systemPrompt string, payload models.RaterPayload) (json.RawMessage, error)

func (f RaterFunc) Rate(ctx context.Context, systemPrompt string, payload models.RaterPayload) (json.RawMessage, error) {
	return f(ctx, systemPrompt, payload)
}
