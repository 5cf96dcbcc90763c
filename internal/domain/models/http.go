package models

// Requests for the scoring HTTP endpoints. Defined in domain for consistency and reuse.

type ScoreRequest struct {
	Snapshot   PriceSnapshot `json:"snapshot" validate:"required"`
	Indicators IndicatorSet  `json:"indicators" validate:"required"`
	Trade      TradeContext  `json:"trade" validate:"required"`
	Options    ScoreOptions  `json:"options"`
}

// ScoreOptions selects whether the external rater may be consulted and with
// which gate band. A zero band falls back to the configured server band, then
// the engine default.
type ScoreOptions struct {
	UseAI    bool    `json:"use_ai"`
	GateLow  float64 `json:"gate_low" validate:"gte=0,lte=1"`
	GateHigh float64 `json:"gate_high" validate:"gte=0,lte=1,gtefield=GateLow"`
}

// BiasRequest asks for a fundamental bias. Releases are optional; when absent
// the service scores whatever the release store currently holds for the pair.
type BiasRequest struct {
	BaseCcy  string       `json:"baseCcy" validate:"required,len=3,alpha"`
	QuoteCcy string       `json:"quoteCcy" validate:"required,len=3,alpha"`
	Releases []RawRelease `json:"releases,omitempty" validate:"max=500"`
}

// BiasResponse pairs the bias with the normalizer's verdict so callers can see
// which releases were dropped and why.
type BiasResponse struct {
	Bias       FundamentalBias `json:"bias"`
	Validation struct {
		OK     bool     `json:"ok"`
		Issues []string `json:"issues,omitempty"`
	} `json:"validation"`
}
