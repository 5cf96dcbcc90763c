package models

// AIAssessment is a rater's second opinion after coercion. Every numeric field
// is clamped to its contractual range on ingestion; raw rater output is never
// trusted.
type AIAssessment struct {
	AIConfidenceConditional float64  `json:"ai_confidence_conditional"` // [0.2, 0.9]
	DeltaConfidence         float64  `json:"delta_confidence"`          // [-0.15, 0.15]
	DeltaPFill              *float64 `json:"delta_p_fill,omitempty"`    // [-0.2, 0.2]
	DirectionAgree          bool     `json:"direction_agree"`
	Reasons                 []string `json:"reasons,omitempty"`
}

// RaterPayload mirrors ScoringInputs on the wire, plus the deterministic
// baseline. RedNewsSoon is always false here: the engine rates setups under
// the assumption of optimal conditions.
type RaterPayload struct {
	Symbol       string   `json:"symbol"`
	Side         Side     `json:"side"`
	Price        float64  `json:"price"`
	Entry        float64  `json:"entry"`
	SL           float64  `json:"sl"`
	ATR          float64  `json:"atr"`
	ATRPct       float64  `json:"atr_pct"`
	RSI          float64  `json:"rsi"`
	MACDHist     float64  `json:"macd_hist"`
	EMA20        float64  `json:"ema20"`
	EMA50        float64  `json:"ema50"`
	EMA100       float64  `json:"ema100"`
	EMA20Slope   *float64 `json:"ema20_slope,omitempty"`
	EMA50Slope   *float64 `json:"ema50_slope,omitempty"`
	BBLower      float64  `json:"bb_lower"`
	BBMiddle     float64  `json:"bb_middle"`
	BBUpper      float64  `json:"bb_upper"`
	BandWidthPct float64  `json:"band_width_pct"`
	HTFBias      float64  `json:"htf_bias"`
	Squeeze      bool     `json:"squeeze"`
	ADRUsed      float64  `json:"adr_used"`
	Session      string   `json:"session"`
	RedNewsSoon  bool     `json:"red_news_soon"`

	Zone         SelectedZone `json:"zone"`
	EntryDistATR float64      `json:"entry_dist_atr"`

	BaseConfidenceConditional float64 `json:"base_confidence_conditional"`
	PFill                     float64 `json:"p_fill"`
}

// NewRaterPayload builds the request payload for the rater from normalized
// inputs and the deterministic baseline.
func NewRaterPayload(in *ScoringInputs, det DeterministicResult) RaterPayload {
	return RaterPayload{
		Symbol:       in.Symbol,
		Side:         in.Side,
		Price:        in.Price,
		Entry:        in.Entry,
		SL:           in.StopLoss,
		ATR:          in.ATR,
		ATRPct:       in.ATRPct,
		RSI:          in.RSI,
		MACDHist:     in.MACDHist,
		EMA20:        in.EMA20,
		EMA50:        in.EMA50,
		EMA100:       in.EMA100,
		EMA20Slope:   in.EMA20Slope,
		EMA50Slope:   in.EMA50Slope,
		BBLower:      in.BBLower,
		BBMiddle:     in.BBMiddle,
		BBUpper:      in.BBUpper,
		BandWidthPct: in.BandWidthPct,
		HTFBias:      in.HTFBias,
		Squeeze:      in.Squeeze,
		ADRUsed:      in.ADRUsed,
		Session:      in.Session,
		RedNewsSoon:  false,
		Zone:         in.Zone,
		EntryDistATR: in.EntryDistATR,

		BaseConfidenceConditional: det.ConfidenceConditional,
		PFill:                     det.PFill,
	}
}
