package scoring

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"

	"FxRater/internal/domain/models"
)

var validate = validator.New()

// ErrInvalidInputs marks rejected scoring inputs so transports can map them
// to a client error.
var ErrInvalidInputs = errors.New("invalid scoring inputs")

// ValidateInputs rejects inputs the scoring arithmetic cannot be trusted with:
// non-finite numbers, non-positive prices, an unknown side. Run before Score;
// the scorer itself stays arithmetic-only.
func ValidateInputs(in *models.ScoringInputs) error {
	fields := map[string]float64{
		"price":          in.Price,
		"entry":          in.Entry,
		"sl":             in.StopLoss,
		"atr":            in.ATR,
		"atr_pct":        in.ATRPct,
		"rsi":            in.RSI,
		"macd_hist":      in.MACDHist,
		"bb_lower":       in.BBLower,
		"bb_middle":      in.BBMiddle,
		"bb_upper":       in.BBUpper,
		"band_width_pct": in.BandWidthPct,
		"ema20":          in.EMA20,
		"ema50":          in.EMA50,
		"ema100":         in.EMA100,
		"htf_bias":       in.HTFBias,
		"adr_used":       in.ADRUsed,
		"zone_mid":       in.Zone.Mid,
		"entry_dist_atr": in.EntryDistATR,
	}
	if in.EMA20Slope != nil {
		fields["ema20_slope"] = *in.EMA20Slope
	}
	if in.EMA50Slope != nil {
		fields["ema50_slope"] = *in.EMA50Slope
	}
	if in.AlgoConfidence != nil {
		fields["algo_confidence"] = *in.AlgoConfidence
	}
	for name, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidInputs, name)
		}
	}

	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInputs, err)
	}
	return nil
}
