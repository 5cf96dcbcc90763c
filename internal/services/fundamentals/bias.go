package fundamentals

import (
	"fmt"
	"math"

	"FxRater/internal/domain/models"
)

// eventWeights is the per-event importance table. Inflation and employment
// releases move USD hardest after rate decisions; PMI and GDP sit in between.
var eventWeights = map[string]float64{
	EventCPI:           3,
	EventCoreCPI:       3,
	EventPCE:           3,
	EventNFP:           3,
	EventUnemployment:  3,
	EventJoblessClaims: 3,
	EventRateDecision:  4,
	EventGDP:           2.5,
	EventPMIManuf:      2,
	EventPMIServices:   2,
	EventRetailSales:   1,
}

const (
	// Inflation prints inside this band are "healthy": beating forecast there
	// is USD-bullish. Outside it the print is bearish regardless of beat.
	inflationHealthyLow  = 2.5
	inflationHealthyHigh = 4.0

	pmiExpansionLine = 50.0

	// Minimum strength before the bias label leaves NEUTRAL, and the event
	// bias magnitude that qualifies as a key event.
	neutralStrengthMax = 30
	keyEventMinBias    = 0.5
	maxKeyEvents       = 5
)

// ScoreBias converts normalized releases into a directional bias for the
// pair. Only USD carries a per-event scoring table, so pairs without a USD
// leg come back NEUTRAL immediately. A BULLISH USD reading inverts for pairs
// quoted against USD, where dollar strength pushes the pair down.
func ScoreBias(cleaned models.CleanFundamentals) models.FundamentalBias {
	if cleaned.BaseCcy != "USD" && cleaned.QuoteCcy != "USD" {
		return models.FundamentalBias{
			Label:    models.BiasNeutral,
			Strength: 0,
			Summary:  fmt.Sprintf("%s/%s has no USD leg; no fundamental model applies", cleaned.BaseCcy, cleaned.QuoteCcy),
		}
	}

	var bullish, bearish float64
	var keyEvents []string
	usdSeen := 0
	for _, rel := range cleaned.Releases {
		if rel.Currency != "USD" {
			continue
		}
		usdSeen++

		w := eventWeights[rel.Event]
		if w == 0 {
			w = 1
		}
		bias := eventBias(rel)
		if bias > 0 {
			bullish += w * bias
		} else {
			bearish += w * -bias
		}
		if math.Abs(bias) >= keyEventMinBias && len(keyEvents) < maxKeyEvents {
			keyEvents = append(keyEvents, keyEventLine(rel, bias))
		}
	}
	if usdSeen == 0 {
		return models.FundamentalBias{
			Label:    models.BiasNeutral,
			Strength: 0,
			Summary:  "no USD releases in window",
		}
	}

	total := bullish + bearish
	net := bullish - bearish
	strength := 0
	if total > 0 {
		strength = int(math.Round(math.Abs(net) / total * 100))
	}

	usdLabel := models.BiasNeutral
	if strength > neutralStrengthMax {
		if net > 0 {
			usdLabel = models.BiasBullish
		} else {
			usdLabel = models.BiasBearish
		}
	}

	pairLabel := usdLabel
	if cleaned.QuoteCcy == "USD" {
		pairLabel = invertLabel(usdLabel)
	}

	return models.FundamentalBias{
		Label:    pairLabel,
		Strength: strength,
		Summary: fmt.Sprintf("USD %s at %d%% over %d releases; %s/%s bias %s",
			usdLabel, strength, usdSeen, cleaned.BaseCcy, cleaned.QuoteCcy, pairLabel),
		KeyEvents: keyEvents,
	}
}

// eventBias is the signed per-release score before weighting, roughly in
// [-1.5, 1]. Positive means USD-bullish.
func eventBias(rel models.EconomicRelease) float64 {
	switch rel.Event {
	case EventCPI, EventCoreCPI, EventPCE:
		return inflationBias(rel)
	case EventUnemployment, EventJoblessClaims:
		// Inverted polarity: fewer unemployed than expected is good for USD.
		return declineBias(rel)
	case EventPMIManuf, EventPMIServices:
		if rel.Actual < pmiExpansionLine {
			return -1
		}
		if rel.Forecast != nil && rel.Actual > *rel.Forecast {
			return 1
		}
		return 0.5
	default:
		// NFP, GDP, Retail Sales, Rate Decision and anything unclassified:
		// beating forecast is bullish, beating only previous weakly so.
		return growthBias(rel)
	}
}

func inflationBias(rel models.EconomicRelease) float64 {
	switch {
	case rel.Actual > inflationHealthyHigh:
		return -(0.5 + math.Min(1, rel.Actual-inflationHealthyHigh))
	case rel.Actual < inflationHealthyLow:
		return -(0.5 + math.Min(1, inflationHealthyLow-rel.Actual))
	case rel.Forecast != nil && rel.Actual > *rel.Forecast:
		return 1
	case rel.Forecast != nil && rel.Actual < *rel.Forecast:
		return -0.5
	default:
		// In the healthy band with no forecast to beat (or exactly on it).
		return 0.25
	}
}

func growthBias(rel models.EconomicRelease) float64 {
	if rel.Forecast != nil {
		if rel.Actual > *rel.Forecast {
			return 1
		}
		if rel.Previous != nil && rel.Actual > *rel.Previous {
			return 0.5
		}
		return -0.5
	}
	if rel.Previous != nil {
		if rel.Actual > *rel.Previous {
			return 0.5
		}
		return -0.5
	}
	return 0
}

func declineBias(rel models.EconomicRelease) float64 {
	if rel.Forecast != nil {
		if rel.Actual < *rel.Forecast {
			return 1
		}
		if rel.Previous != nil && rel.Actual < *rel.Previous {
			return 0.5
		}
		return -0.5
	}
	if rel.Previous != nil {
		if rel.Actual < *rel.Previous {
			return 0.5
		}
		return -0.5
	}
	return 0
}

func invertLabel(label string) string {
	switch label {
	case models.BiasBullish:
		return models.BiasBearish
	case models.BiasBearish:
		return models.BiasBullish
	default:
		return models.BiasNeutral
	}
}

func keyEventLine(rel models.EconomicRelease, bias float64) string {
	marker := "+"
	if bias < 0 {
		marker = "-"
	}
	if rel.Forecast != nil {
		return fmt.Sprintf("%s %s %s %.2f vs %.2f forecast", marker, rel.Currency, rel.Event, rel.Actual, *rel.Forecast)
	}
	return fmt.Sprintf("%s %s %s %.2f", marker, rel.Currency, rel.Event, rel.Actual)
}
