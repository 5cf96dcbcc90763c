package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"FxRater/internal/domain/models"
	"FxRater/internal/domain/service"
)

func TestGateBandEdgesInclusive(t *testing.T) {
	band := DefaultGateBand
	tests := []struct {
		p    float64
		want bool
	}{
		{0.45, true},
		{0.70, true},
		{0.55, true},
		{0.449999, false},
		{0.700001, false},
	}
	for _, tt := range tests {
		if got := band.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestCoerceAssessmentClampsDeltas(t *testing.T) {
	raw := json.RawMessage(`{"ai_confidence_conditional":0.99,"delta_confidence":0.9,"delta_p_fill":-0.5,"direction_agree":true}`)
	a, err := CoerceAssessment(raw)
	if err != nil {
		t.Fatal(err)
	}
	if a.AIConfidenceConditional != 0.9 {
		t.Errorf("ai confidence clamped to %v, want 0.9", a.AIConfidenceConditional)
	}
	if a.DeltaConfidence != 0.15 {
		t.Errorf("delta_confidence clamped to %v, want 0.15", a.DeltaConfidence)
	}
	if a.DeltaPFill == nil || *a.DeltaPFill != -0.2 {
		t.Errorf("delta_p_fill clamped to %v, want -0.2", a.DeltaPFill)
	}
}

func TestCoerceAssessmentDefaults(t *testing.T) {
	a, err := CoerceAssessment(json.RawMessage(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	if a.AIConfidenceConditional != 0.5 {
		t.Errorf("missing ai confidence should default to 0.5, got %v", a.AIConfidenceConditional)
	}
	if a.DeltaConfidence != 0 || a.DeltaPFill == nil || *a.DeltaPFill != 0 {
		t.Errorf("missing deltas should default to 0: %+v", a)
	}
	if a.DirectionAgree {
		t.Error("missing direction_agree should default to false")
	}
}

func TestCoerceAssessmentStringWrapped(t *testing.T) {
	inner := `{"ai_confidence_conditional":0.6,"direction_agree":true}`
	wrapped, _ := json.Marshal(inner)
	a, err := CoerceAssessment(wrapped)
	if err != nil {
		t.Fatal(err)
	}
	if a.AIConfidenceConditional != 0.6 || !a.DirectionAgree {
		t.Errorf("string-wrapped response mishandled: %+v", a)
	}
}

func TestCoerceAssessmentGarbage(t *testing.T) {
	if _, err := CoerceAssessment(json.RawMessage(`i think it looks good`)); err == nil {
		t.Error("non-JSON response should fail")
	}
	if _, err := CoerceAssessment(json.RawMessage(``)); err == nil {
		t.Error("empty response should fail")
	}
}

func TestBlendAlpha(t *testing.T) {
	agree := models.AIAssessment{DirectionAgree: true}
	disagree := models.AIAssessment{DirectionAgree: false}

	in := buyInputs()
	if got := blendAlpha(in, agree); got != 0.25 {
		t.Errorf("baseline alpha = %v, want 0.25", got)
	}
	if got := blendAlpha(in, disagree); got != 0.10 {
		t.Errorf("disagreement alpha = %v, want 0.10", got)
	}

	in.ADRUsed = 0.95
	if got := blendAlpha(in, agree); got != 0.15 {
		t.Errorf("exhausted ADR should cap alpha at 0.15, got %v", got)
	}

	in = buyInputs()
	in.VolumeSource = models.VolumeSynthetic
	if got := blendAlpha(in, agree); got != 0.15 {
		t.Errorf("synthetic volume should cap alpha at 0.15, got %v", got)
	}
	// Disagreement already sits under the low-trust cap.
	if got := blendAlpha(in, disagree); got != 0.10 {
		t.Errorf("alpha = %v, want 0.10", got)
	}
}

func scoreFixture() (models.PriceSnapshot, models.IndicatorSet, models.TradeContext) {
	snap := models.PriceSnapshot{Symbol: "EURUSD", Price: 1.1000, VolumeSource: models.VolumeReal}
	ind := models.IndicatorSet{
		ATR: 0.0020, RSI: 55, MACDHist: 0.0001,
		BBLower: 1.0960, BBMiddle: 1.0990, BBUpper: 1.1020,
		Enhanced: &models.EnhancedIndicators{
			EMA20: 1.0990, EMA50: 1.0970, EMA100: 1.0940, HTFBias: 0.1,
		},
	}
	trade := models.TradeContext{Side: models.SideBuy, Entry: 1.0995, StopLoss: 1.0950, Session: "london"}
	return snap, ind, trade
}

func TestScoreSetupDeterministicOnly(t *testing.T) {
	snap, ind, trade := scoreFixture()
	res, err := ScoreSetup(context.Background(), snap, ind, trade, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Consulted || res.Assessment != nil {
		t.Error("nil options must not consult the rater")
	}
	if res.CombinedConfidence != res.Deterministic.ConfidenceConditional {
		t.Errorf("without AI, combined %v must equal deterministic %v",
			res.CombinedConfidence, res.Deterministic.ConfidenceConditional)
	}
}

func TestScoreSetupBlendsAssessment(t *testing.T) {
	snap, ind, trade := scoreFixture()

	base, err := ScoreSetup(context.Background(), snap, ind, trade, nil)
	if err != nil {
		t.Fatal(err)
	}
	det := base.Deterministic.ConfidenceConditional

	var gotPayload models.RaterPayload
	rater := service.RaterFunc(func(_ context.Context, _ string, p models.RaterPayload) (json.RawMessage, error) {
		gotPayload = p
		return json.RawMessage(`{"ai_confidence_conditional":0.8,"delta_confidence":0.05,"direction_agree":true,"reasons":["clean trend"]}`), nil
	})

	// A band around the deterministic score forces the gate open.
	opts := &Options{UseAI: true, Rater: rater, Band: GateBand{Low: det - 0.01, High: det + 0.01}}
	res, err := ScoreSetup(context.Background(), snap, ind, trade, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Consulted || res.Assessment == nil {
		t.Fatal("rater should have been consulted")
	}
	if gotPayload.RedNewsSoon {
		t.Error("payload must force red_news_soon to false")
	}
	if gotPayload.BaseConfidenceConditional != det {
		t.Errorf("payload baseline = %v, want %v", gotPayload.BaseConfidenceConditional, det)
	}

	want := clamp(det*(1-0.25)+0.8*0.25+0.05, 0.2, 0.9)
	if math.Abs(res.CombinedConfidence-want) > 1e-12 {
		t.Errorf("combined = %v, want %v", res.CombinedConfidence, want)
	}
}

func TestScoreSetupOutsideBandSkipsRater(t *testing.T) {
	snap, ind, trade := scoreFixture()
	called := false
	rater := service.RaterFunc(func(context.Context, string, models.RaterPayload) (json.RawMessage, error) {
		called = true
		return json.RawMessage(`{}`), nil
	})
	// Band nowhere near any reachable score.
	opts := &Options{UseAI: true, Rater: rater, Band: GateBand{Low: 0.01, High: 0.02}}
	res, err := ScoreSetup(context.Background(), snap, ind, trade, opts)
	if err != nil {
		t.Fatal(err)
	}
	if called || res.Consulted {
		t.Error("rater must not be consulted outside the gate band")
	}
}

func TestScoreSetupRaterErrorPropagates(t *testing.T) {
	snap, ind, trade := scoreFixture()
	boom := errors.New("model unavailable")
	rater := service.RaterFunc(func(context.Context, string, models.RaterPayload) (json.RawMessage, error) {
		return nil, boom
	})
	opts := &Options{UseAI: true, Rater: rater, Band: GateBand{Low: 0, High: 1}}
	_, err := ScoreSetup(context.Background(), snap, ind, trade, opts)
	if !errors.Is(err, boom) {
		t.Fatalf("rater failure must propagate, got %v", err)
	}
}

func TestScoreSetupRejectsInvalidInputs(t *testing.T) {
	snap, ind, trade := scoreFixture()
	snap.Price = math.NaN()
	if _, err := ScoreSetup(context.Background(), snap, ind, trade, nil); err == nil {
		t.Fatal("NaN price must be rejected before scoring")
	}
}
