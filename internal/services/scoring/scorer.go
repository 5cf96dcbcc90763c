package scoring

import (
	"math"

	"FxRater/internal/domain/models"
)

// Score runs the deterministic model over normalized inputs. Stateless and
// deterministic: identical inputs yield bit-identical output. Weights come in
// as a parameter so the table stays tunable; pass DefaultBlendWeights in
// production.
func Score(in *models.ScoringInputs, w BlendWeights) models.DeterministicResult {
	sub := models.SubScores{
		Trend:             trendScore(in),
		RSI:               rsiScore(in.Side, in.RSI),
		MACD:              macdScore(in.Side, in.MACDHist),
		Volatility:        volatilityScore(in.ATRPct),
		Bollinger:         bollingerScore(in),
		SupportResistance: srScore(in),
		MultiTimeframe:    mtfScore(in.Side, in.HTFBias),
	}

	blend := w.Trend*sub.Trend +
		w.RSI*sub.RSI +
		w.SupportResistance*sub.SupportResistance +
		w.MACD*sub.MACD +
		w.Bollinger*sub.Bollinger +
		w.Volatility*sub.Volatility

	// Higher-timeframe tilt: up to ±10% around a neutral MTF score.
	blend *= 1 + mtfTilt*(sub.MultiTimeframe-0.5)*2

	if in.Squeeze {
		if in.Side == models.SideSell {
			blend *= squeezeSellMult
		} else {
			blend *= squeezeBuyMult
		}
	}

	if in.AlgoConfidence != nil {
		blend = (1-algoConfWeight)*blend + algoConfWeight*(*in.AlgoConfidence)
	}
	sub.Blend = blend

	p := probLow + blend*(probHigh-probLow)

	// ADR exhaustion guardrails: most of the daily range already traded means
	// less room for the setup to run.
	switch {
	case in.ADRUsed >= adrHeavyUsed:
		p -= adrHeavyPenalty
	case in.ADRUsed >= adrWarnUsed:
		p -= adrWarnPenalty
	}
	p = clamp(p, confMin, confMax)

	pFill := fillProbability(in)

	return models.DeterministicResult{
		ConfidenceConditional: p,
		PFill:                 pFill,
		HeadlineConfidence:    0.5*p + 0.5*(p*pFill),
		SubScores:             sub,
	}
}

// trendScore is 1.0 when price and the three EMAs are ordered with the trade
// side, scaled to 0.8 unless both EMA slopes are present and agree with the
// side. 0 when the stack is not aligned.
func trendScore(in *models.ScoringInputs) float64 {
	var aligned bool
	if in.Side == models.SideSell {
		aligned = in.Price < in.EMA20 && in.EMA20 < in.EMA50 && in.EMA50 < in.EMA100
	} else {
		aligned = in.Price > in.EMA20 && in.EMA20 > in.EMA50 && in.EMA50 > in.EMA100
	}
	if !aligned {
		return 0
	}
	if slopesAgree(in.Side, in.EMA20Slope, in.EMA50Slope) {
		return 1.0
	}
	return 0.8
}

func slopesAgree(side models.Side, s20, s50 *float64) bool {
	if s20 == nil || s50 == nil {
		return false
	}
	if side == models.SideSell {
		return *s20 < 0 && *s50 < 0
	}
	return *s20 > 0 && *s50 > 0
}

// rsiScore is a triangular band centered at 62 for BUY and 38 for SELL with
// half-width 20.
func rsiScore(side models.Side, rsi float64) float64 {
	target := rsiBuyTarget
	if side == models.SideSell {
		target = rsiSellTarget
	}
	return math.Max(0, 1-math.Abs(rsi-target)/rsiHalfWidth)
}

// macdScore squashes the histogram through tanh and maps it to [0,1],
// favoring positive momentum for BUY and negative for SELL.
func macdScore(side models.Side, hist float64) float64 {
	t := math.Tanh(hist * macdHistScale)
	if side == models.SideSell {
		t = -t
	}
	return (1 + t) / 2
}

// volatilityScore is a Gaussian peaked at the ATR% sweet spot: too quiet and
// too wild both score low.
func volatilityScore(atrPct float64) float64 {
	d := (atrPct - atrPctSweetSpot) / atrPctWidth
	return math.Exp(-d * d)
}

func bollingerScore(in *models.ScoringInputs) float64 {
	pos := (in.Price - in.BBLower) / math.Max(in.BBUpper-in.BBLower, eps)
	target := bollBuyTarget
	if in.Side == models.SideSell {
		target = bollSellTarget
	}
	return math.Max(0, 1-math.Abs(pos-target)/bollFalloff)
}

// srScore rewards a selected zone of the side's favored type, its strength,
// and entry proximity to the zone midpoint. Without a zone it is neutral.
func srScore(in *models.ScoringInputs) float64 {
	if in.Zone.Type == "none" {
		return srNoZoneScore
	}
	base := srMismatchBase
	if in.Zone.Type == favoredZoneType(in.Side) {
		base = srMatchBase
	}

	distATR := math.Abs(in.Entry-in.Zone.Mid) / math.Max(in.ATR, eps)
	prox := srFarMult
	switch {
	case distATR <= srNearATR:
		prox = srNearMult
	case distATR <= srMidATR:
		prox = srMidMult
	}

	return base + srStrengthSpan*clamp01(in.Zone.Strength/100)*prox
}

// mtfScore maps the higher-timeframe bias scalar into [0,1]; SELL inverts it.
func mtfScore(side models.Side, bias float64) float64 {
	v := 0.5 + 0.5*math.Tanh(bias*2)
	if side == models.SideSell {
		return 1 - v
	}
	return v
}
