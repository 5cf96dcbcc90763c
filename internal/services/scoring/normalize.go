package scoring

import (
	"math"

	"FxRater/internal/domain/models"
)

// Normalize flattens a price snapshot, an indicator set and a trade context
// into the canonical feature record the scorer consumes. Pure function, no I/O.
func Normalize(snap models.PriceSnapshot, ind models.IndicatorSet, trade models.TradeContext) *models.ScoringInputs {
	in := &models.ScoringInputs{
		Symbol:       snap.Symbol,
		Side:         trade.Side,
		Price:        snap.Price,
		Entry:        trade.Entry,
		StopLoss:     trade.StopLoss,
		VolumeSource: snap.VolumeSource,

		ATR:      ind.ATR,
		RSI:      ind.RSI,
		MACDHist: ind.MACDHist,
		SMA10:    ind.SMA10,
		SMA20:    ind.SMA20,
		BBLower:  ind.BBLower,
		BBMiddle: ind.BBMiddle,
		BBUpper:  ind.BBUpper,

		Session:     trade.Session,
		RedNewsSoon: trade.RedNewsSoon,
	}

	in.ATRPct = atrPct(ind, snap.Price)
	in.BandWidthPct = bandWidthPct(ind)

	if enh := ind.Enhanced; enh != nil {
		in.EMA20 = enh.EMA20
		in.EMA50 = enh.EMA50
		in.EMA100 = enh.EMA100
		in.EMA20Slope = enh.EMA20Slope
		in.EMA50Slope = enh.EMA50Slope
		in.Squeeze = enh.Squeeze
		in.HTFBias = enh.HTFBias
	}

	in.ADRUsed = resolveADRUsed(ind.Enhanced, trade)
	in.Zone = selectZone(zonesOf(ind.Enhanced), trade.Side, trade.Entry)
	in.EntryDistATR = math.Abs(trade.Entry-snap.Price) / math.Max(ind.ATR, eps)

	if ind.ConfidenceScore != nil {
		c := probLow + clamp(*ind.ConfidenceScore, 0, 100)/100*(probHigh-probLow)
		in.AlgoConfidence = &c
	}

	return in
}

func atrPct(ind models.IndicatorSet, price float64) float64 {
	if ind.ATRPct != nil {
		return *ind.ATRPct
	}
	return ind.ATR / math.Max(price, eps) * 100
}

func bandWidthPct(ind models.IndicatorSet) float64 {
	if ind.BandWidthPct != nil {
		return *ind.BandWidthPct
	}
	return math.Abs(ind.BBUpper-ind.BBLower) / math.Max(math.Abs(ind.BBMiddle), eps) * 100
}

// resolveADRUsed resolves how much of the average daily range is already
// consumed. Resolution order: explicit trade override, indicator-supplied
// value, then a Donchian-position fallback (defaulting to 0.5 with no data).
func resolveADRUsed(enh *models.EnhancedIndicators, trade models.TradeContext) float64 {
	if trade.ADRUsedOverride != nil {
		return clamp01(*trade.ADRUsedOverride)
	}
	if enh != nil && enh.ADRUsedToday != nil {
		v := *enh.ADRUsedToday
		if v > 1 {
			v /= 100
		}
		return v
	}
	pos := 0.5
	if enh != nil && enh.DonchianPosition != nil {
		pos = *enh.DonchianPosition
	}
	return math.Max(pos, 1-pos)
}

func zonesOf(enh *models.EnhancedIndicators) []models.Zone {
	if enh == nil {
		return nil
	}
	return enh.Zones
}

// selectZone picks the zone closest to the entry price, preferring the type
// that favors the trade side (support for BUY, resistance for SELL). Ties keep
// the first-encountered candidate.
func selectZone(zones []models.Zone, side models.Side, entry float64) models.SelectedZone {
	if len(zones) == 0 {
		return models.SelectedZone{Type: "none", Strength: 0, Mid: entry}
	}

	favored := favoredZoneType(side)
	candidates := make([]models.Zone, 0, len(zones))
	for _, z := range zones {
		if z.Type == favored {
			candidates = append(candidates, z)
		}
	}
	if len(candidates) == 0 {
		candidates = zones
	}

	best := candidates[0]
	bestDist := math.Abs(best.Mid() - entry)
	for _, z := range candidates[1:] {
		if d := math.Abs(z.Mid() - entry); d < bestDist {
			best = z
			bestDist = d
		}
	}
	return models.SelectedZone{Type: best.Type, Strength: best.Strength, Mid: best.Mid()}
}

func favoredZoneType(side models.Side) string {
	if side == models.SideSell {
		return "resistance"
	}
	return "support"
}
