package scoring

import (
	"math"

	"FxRater/internal/domain/models"
)

// fillProbability is a closed-form decay in entry distance: an order at the
// current price fills with certainty, and the chance drops exponentially with
// distance measured in ATR units. A zone on the wrong side of the order (a
// BUY resting under resistance, a SELL over support) takes a fixed haircut.
func fillProbability(in *models.ScoringInputs) float64 {
	p := math.Exp(-in.EntryDistATR / fillDecayATR)
	if wrongSideZone(in.Side, in.Zone.Type) {
		p *= fillWrongSideMult
	}
	return clamp01(p)
}

func wrongSideZone(side models.Side, zoneType string) bool {
	if side == models.SideSell {
		return zoneType == "support"
	}
	return zoneType == "resistance"
}
