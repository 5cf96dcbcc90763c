package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"FxRater/internal/domain/models"
	"FxRater/internal/domain/service"
)

// SystemPrompt frames the rater call. The payload already carries every
// feature the deterministic stage saw, plus its baseline numbers.
const SystemPrompt = `You are a forex setup rater. You receive one candidate limit-order setup as JSON,
including the deterministic model's baseline (base_confidence_conditional, p_fill).
Assess the setup and respond with ONLY a JSON object:
{"ai_confidence_conditional": <0.2-0.9>, "delta_confidence": <-0.15-0.15>,
 "delta_p_fill": <-0.2-0.2>, "direction_agree": <bool>, "reasons": [<short strings>]}
ai_confidence_conditional is your own P(win | fill). delta_confidence nudges the
blend. direction_agree is whether you would trade the same side. No prose.`

// ErrRater marks a failed rater consultation. The underlying cause stays
// wrapped; transports map this to an upstream-failure status.
var ErrRater = errors.New("rater failed")

// GateBand is the confidence interval in which a second opinion is sought.
// Both edges are inclusive. Scores outside it need no rater: very high and
// very low deterministic scores are already decisive.
type GateBand struct {
	Low  float64
	High float64
}

// DefaultGateBand is the production gate.
var DefaultGateBand = GateBand{Low: GateLowDefault, High: GateHighDefault}

// Contains reports whether p falls inside the band, edges included.
func (g GateBand) Contains(p float64) bool { return p >= g.Low && p <= g.High }

// Options control the AI stage of a scoring pass. A nil Options (or nil
// Rater) scores deterministically only.
type Options struct {
	UseAI bool
	Rater service.SetupRater
	Band  GateBand
}

// ScoreSetup is the public entry point: normalize, validate, score, and
// optionally blend in a gated second opinion. The rater is consulted at most
// once and its failure propagates: there is no silent fallback to the
// deterministic-only score.
func ScoreSetup(
	ctx context.Context,
	snap models.PriceSnapshot,
	ind models.IndicatorSet,
	trade models.TradeContext,
	opts *Options,
) (models.CombinedScore, error) {
	in := Normalize(snap, ind, trade)
	if err := ValidateInputs(in); err != nil {
		return models.CombinedScore{}, err
	}

	det := Score(in, DefaultBlendWeights)
	res := models.CombinedScore{
		Deterministic:      det,
		CombinedConfidence: det.ConfidenceConditional,
		PFill:              det.PFill,
	}

	if opts == nil || !opts.UseAI || opts.Rater == nil {
		return res, nil
	}
	band := opts.Band
	if band == (GateBand{}) {
		band = DefaultGateBand
	}
	if !band.Contains(det.ConfidenceConditional) {
		return res, nil
	}

	raw, err := opts.Rater.Rate(ctx, SystemPrompt, models.NewRaterPayload(in, det))
	if err != nil {
		return models.CombinedScore{}, fmt.Errorf("%w: %w", ErrRater, err)
	}
	a, err := CoerceAssessment(raw)
	if err != nil {
		return models.CombinedScore{}, fmt.Errorf("%w: %w", ErrRater, err)
	}

	alpha := blendAlpha(in, a)
	res.Consulted = true
	res.Assessment = &a
	res.CombinedConfidence = clamp(
		det.ConfidenceConditional*(1-alpha)+a.AIConfidenceConditional*alpha+a.DeltaConfidence,
		combinedMin, combinedMax,
	)
	if a.DeltaPFill != nil {
		res.PFill = clamp01(det.PFill + *a.DeltaPFill)
	}
	return res, nil
}

// blendAlpha adapts the rater's blend weight: less when it disagrees on
// direction, capped when the day's range is nearly spent or the volume data
// is synthetic.
func blendAlpha(in *models.ScoringInputs, a models.AIAssessment) float64 {
	alpha := alphaBase
	if !a.DirectionAgree {
		alpha = alphaDisagree
	}
	if in.ADRUsed > adrHeavyUsed || in.VolumeSource == models.VolumeSynthetic {
		alpha = math.Min(alpha, alphaLowTrustCap)
	}
	return alpha
}

// CoerceAssessment parses a rater response (a JSON object, or a JSON string
// wrapping one), fills defaults for missing fields, and clamps every numeric
// field to its contractual range. External numbers are never used unclamped.
func CoerceAssessment(raw json.RawMessage) (models.AIAssessment, error) {
	b := bytes.TrimSpace(raw)
	if len(b) == 0 {
		return models.AIAssessment{}, errors.New("rater: empty response")
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return models.AIAssessment{}, fmt.Errorf("rater: unwrap response string: %w", err)
		}
		b = []byte(s)
	}

	var loose struct {
		AIConfidence    *float64 `json:"ai_confidence_conditional"`
		DeltaConfidence *float64 `json:"delta_confidence"`
		DeltaPFill      *float64 `json:"delta_p_fill"`
		DirectionAgree  *bool    `json:"direction_agree"`
		Reasons         []string `json:"reasons"`
	}
	if err := json.Unmarshal(b, &loose); err != nil {
		return models.AIAssessment{}, fmt.Errorf("rater: parse response: %w", err)
	}

	a := models.AIAssessment{
		AIConfidenceConditional: aiConfDefault,
		Reasons:                 loose.Reasons,
	}
	if loose.AIConfidence != nil {
		a.AIConfidenceConditional = *loose.AIConfidence
	}
	if loose.DeltaConfidence != nil {
		a.DeltaConfidence = *loose.DeltaConfidence
	}
	if loose.DirectionAgree != nil {
		a.DirectionAgree = *loose.DirectionAgree
	}

	a.AIConfidenceConditional = clamp(a.AIConfidenceConditional, aiConfMin, aiConfMax)
	a.DeltaConfidence = clamp(a.DeltaConfidence, -deltaConfAbsMax, deltaConfAbsMax)
	dFill := 0.0
	if loose.DeltaPFill != nil {
		dFill = clamp(*loose.DeltaPFill, -deltaFillAbsMax, deltaFillAbsMax)
	}
	a.DeltaPFill = &dFill
	return a, nil
}
