package models

// Side is the direction of a proposed trade.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Volume provenance tags for a price snapshot.
const (
	VolumeReal      = "real"
	VolumeSynthetic = "synthetic"
)

// PriceSnapshot is the market state at scoring time. Created per call, never mutated.
type PriceSnapshot struct {
	Symbol       string  `json:"symbol"`
	Price        float64 `json:"price"`
	VolumeSource string  `json:"volume_source" default:"real" validate:"omitempty,oneof=real synthetic"` // assumed real unless declared synthetic
}

// Zone is a support/resistance price band with a strength score.
type Zone struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Type     string  `json:"type"` // "support" | "resistance"
	Strength float64 `json:"strength"`
	Touches  *int    `json:"touches,omitempty"`
}

// Mid returns the band midpoint.
func (z Zone) Mid() float64 { return (z.Max + z.Min) / 2 }

// EnhancedIndicators is the optional indicator block. Pointer fields are
// absent-by-default; defaulting rules live in the feature normalizer.
type EnhancedIndicators struct {
	EMA20      float64  `json:"ema20"`
	EMA50      float64  `json:"ema50"`
	EMA100     float64  `json:"ema100"`
	EMA20Slope *float64 `json:"ema20_slope,omitempty"`
	EMA50Slope *float64 `json:"ema50_slope,omitempty"`

	Squeeze bool    `json:"squeeze"`
	HTFBias float64 `json:"htf_bias"` // higher-timeframe bias scalar

	ADRUsedToday     *float64 `json:"adr_used_today,omitempty"`
	DonchianPosition *float64 `json:"donchian_position,omitempty"`

	Zones []Zone `json:"zones,omitempty"`
}

// IndicatorSet is the raw technical snapshot supplied by the caller.
type IndicatorSet struct {
	ATR        float64 `json:"atr"`
	RSI        float64 `json:"rsi"`
	MACD       float64 `json:"macd"`
	MACDSignal float64 `json:"macd_signal"`
	MACDHist   float64 `json:"macd_hist"`
	SMA10      float64 `json:"sma10"`
	SMA20      float64 `json:"sma20"`
	BBLower    float64 `json:"bb_lower"`
	BBMiddle   float64 `json:"bb_middle"`
	BBUpper    float64 `json:"bb_upper"`

	Resistance *float64 `json:"resistance,omitempty"`
	Support    *float64 `json:"support,omitempty"`

	BandWidthPct *float64 `json:"band_width_pct,omitempty"`
	ATRPct       *float64 `json:"atr_pct,omitempty"`

	// ConfidenceScore is an externally computed 0-100 score, blended in when present.
	ConfidenceScore *float64 `json:"confidence_score,omitempty"`

	Enhanced *EnhancedIndicators `json:"enhanced,omitempty"`
}

// TradeContext carries the proposed order parameters.
type TradeContext struct {
	Side     Side    `json:"side"`
	Entry    float64 `json:"entry"`
	StopLoss float64 `json:"sl"`
	// Session and RedNewsSoon are carried through to the rater payload but are
	// not scoring factors: the model assumes the caller already filters for an
	// optimal session with no adverse news.
	Session     string `json:"session"`
	RedNewsSoon bool   `json:"red_news_soon"`

	ADRUsedOverride *float64 `json:"adr_used_override,omitempty"`
}

// SelectedZone is the zone the normalizer picked for the trade, if any.
type SelectedZone struct {
	Type     string  `json:"type"` // "support" | "resistance" | "none"
	Strength float64 `json:"strength"`
	Mid      float64 `json:"mid"`
}

// ScoringInputs is the canonical flat feature record the scorer consumes.
// It is derived purely from (PriceSnapshot, IndicatorSet, TradeContext).
type ScoringInputs struct {
	Symbol       string
	Side         Side    `validate:"required,oneof=BUY SELL"`
	Price        float64 `validate:"gt=0"`
	Entry        float64 `validate:"gt=0"`
	StopLoss     float64 `validate:"gte=0"`
	VolumeSource string  `validate:"omitempty,oneof=real synthetic"`

	ATR          float64 `validate:"gte=0"`
	ATRPct       float64
	RSI          float64 `validate:"gte=0,lte=100"`
	MACDHist     float64
	SMA10        float64
	SMA20        float64
	EMA20        float64
	EMA50        float64
	EMA100       float64
	EMA20Slope   *float64
	EMA50Slope   *float64
	BBLower      float64
	BBMiddle     float64
	BBUpper      float64
	BandWidthPct float64
	HTFBias      float64
	Squeeze      bool
	ADRUsed      float64

	Session     string
	RedNewsSoon bool

	Zone         SelectedZone
	EntryDistATR float64

	// AlgoConfidence is the external 0-100 score mapped into the engine's
	// conditional-probability range, when one was supplied.
	AlgoConfidence *float64
}

// SubScores is the per-factor telemetry of a deterministic scoring pass.
// Observability only; nothing branches on it.
type SubScores struct {
	Trend             float64 `json:"trend"`
	RSI               float64 `json:"rsi"`
	MACD              float64 `json:"macd"`
	Volatility        float64 `json:"volatility"`
	Bollinger         float64 `json:"bollinger"`
	SupportResistance float64 `json:"support_resistance"`
	MultiTimeframe    float64 `json:"multi_timeframe"`
	Blend             float64 `json:"blend"`
}

// DeterministicResult is the output of the deterministic scoring stage.
type DeterministicResult struct {
	// ConfidenceConditional is P(win | order fills), clamped to [0.15, 0.90].
	ConfidenceConditional float64 `json:"confidence_conditional"`
	// PFill is the probability the limit order fills at all, in [0, 1].
	PFill float64 `json:"p_fill"`
	// HeadlineConfidence averages the conditional and fill-weighted probabilities.
	HeadlineConfidence float64 `json:"headline_confidence"`

	SubScores SubScores `json:"sub_scores"`
}

// CombinedScore is the public result of a full scoring pass.
type CombinedScore struct {
	Deterministic      DeterministicResult `json:"deterministic"`
	CombinedConfidence float64             `json:"combined_confidence"`
	PFill              float64             `json:"p_fill"`
	Consulted          bool                `json:"ai_consulted"`
	Assessment         *AIAssessment       `json:"ai_assessment,omitempty"`
}
