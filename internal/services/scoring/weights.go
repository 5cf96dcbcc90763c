package scoring

// BlendWeights are the per-factor weights of the deterministic blend. They are
// a named table rather than inline literals so they can be tuned and tested
// independently of the blending logic.
type BlendWeights struct {
	Trend             float64 `yaml:"trend"`
	RSI               float64 `yaml:"rsi"`
	SupportResistance float64 `yaml:"support_resistance"`
	MACD              float64 `yaml:"macd"`
	Bollinger         float64 `yaml:"bollinger"`
	Volatility        float64 `yaml:"volatility"`
}

// DefaultBlendWeights is the production weight table.
var DefaultBlendWeights = BlendWeights{
	Trend:             0.26,
	RSI:               0.22,
	SupportResistance: 0.18,
	MACD:              0.14,
	Bollinger:         0.12,
	Volatility:        0.08,
}

const (
	// eps guards every division in the pipeline.
	eps = 1e-9

	// Blend score -> conditional win-probability interpolation range.
	probLow  = 0.25
	probHigh = 0.85

	// Final conditional-probability clamp.
	confMin = 0.15
	confMax = 0.90

	rsiBuyTarget  = 62.0
	rsiSellTarget = 38.0
	rsiHalfWidth  = 20.0

	macdHistScale = 150.0

	atrPctSweetSpot = 0.18
	atrPctWidth     = 0.10

	bollBuyTarget  = 0.35
	bollSellTarget = 0.65
	bollFalloff    = 0.35

	srMatchBase    = 0.6
	srMismatchBase = 0.4
	srStrengthSpan = 0.4
	srNearATR      = 0.4
	srMidATR       = 0.7
	srNearMult     = 1.0
	srMidMult      = 0.7
	srFarMult      = 0.4
	srNoZoneScore  = 0.5

	mtfTilt         = 0.10
	squeezeBuyMult  = 1.03
	squeezeSellMult = 0.97

	// Weight of the externally supplied confidence when one is present.
	algoConfWeight = 0.3

	// ADR-exhaustion guardrails on the conditional probability.
	adrHeavyUsed    = 0.9
	adrHeavyPenalty = 0.10
	adrWarnUsed     = 0.8
	adrWarnPenalty  = 0.05

	// Fill-probability decay scale in ATR units, and the haircut applied when
	// the selected zone sits on the wrong side of the order.
	fillDecayATR      = 0.6
	fillWrongSideMult = 0.9
)

const (
	// Default gate band: deterministic scores inside it get a second opinion.
	GateLowDefault  = 0.45
	GateHighDefault = 0.70

	// Rater blend weight and its adjustments.
	alphaBase        = 0.25
	alphaDisagree    = 0.10
	alphaLowTrustCap = 0.15

	// Combined-confidence clamp.
	combinedMin = 0.2
	combinedMax = 0.9

	// AIAssessment contractual ranges, enforced on ingestion.
	aiConfMin    = 0.2
	aiConfMax    = 0.9
	aiConfDefault = 0.5
	deltaConfAbsMax = 0.15
	deltaFillAbsMax = 0.2
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 { return clamp(v, 0, 1) }
