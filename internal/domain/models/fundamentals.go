package models

import "time"

// Bias labels for a currency pair.
const (
	BiasBullish = "BULLISH"
	BiasBearish = "BEARISH"
	BiasNeutral = "NEUTRAL"
)

// RawRelease is one untrusted economic-calendar record. Numeric fields arrive
// as numbers or strings depending on the upstream feed, so they are typed as
// any and coerced during normalization.
type RawRelease struct {
	Currency string `json:"currency"`
	Event    string `json:"event"`
	Time     string `json:"time"` // ISO-8601
	Actual   any    `json:"actual"`
	Forecast any    `json:"forecast"`
	Previous any    `json:"previous"`
}

// FundamentalsInput is the untrusted payload handed to the normalizer.
type FundamentalsInput struct {
	BaseCcy  string       `json:"baseCcy"`
	QuoteCcy string       `json:"quoteCcy"`
	Releases []RawRelease `json:"releases"`
}

// EconomicRelease is a normalized release: canonical event name, one of the
// eight major currencies, numeric actual.
type EconomicRelease struct {
	Currency string    `json:"currency"`
	Event    string    `json:"event"`
	Time     time.Time `json:"time"`
	Actual   float64   `json:"actual"`
	Forecast *float64  `json:"forecast,omitempty"`
	Previous *float64  `json:"previous,omitempty"`
}

// CleanFundamentals is the normalizer's cleaned structure.
type CleanFundamentals struct {
	BaseCcy  string            `json:"baseCcy"`
	QuoteCcy string            `json:"quoteCcy"`
	Releases []EconomicRelease `json:"releases"`
}

// FundamentalsValidation is the always-returned normalizer result. OK requires
// zero issues, at least one retained release, and distinct valid currencies.
type FundamentalsValidation struct {
	OK      bool              `json:"ok"`
	Cleaned CleanFundamentals `json:"cleaned"`
	Issues  []string          `json:"issues,omitempty"`
	// Dropped counts individual releases rejected during normalization.
	// Pair-level issues and the truncation notice do not count.
	Dropped int `json:"dropped,omitempty"`
}

// FundamentalBias is the directional bias derived from normalized releases.
type FundamentalBias struct {
	Label     string   `json:"label"` // BULLISH | BEARISH | NEUTRAL
	Strength  int      `json:"strength"`
	Summary   string   `json:"summary"`
	KeyEvents []string `json:"key_events,omitempty"`
}
