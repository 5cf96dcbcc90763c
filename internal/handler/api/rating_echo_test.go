package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"FxRater/internal/domain/models"
	"FxRater/internal/usecase"
	xlogger "FxRater/pkg/logger"

	"github.com/labstack/echo/v4"
)

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

type nopMetrics struct{}

func (nopMetrics) RecordSetupScored(string, string) {}
func (nopMetrics) RecordGateDecision(string)        {}
func (nopMetrics) RecordRaterLatency(float64)       {}
func (nopMetrics) RecordError(string)               {}
func (nopMetrics) RecordReleaseIngested(string)     {}
func (nopMetrics) RecordReleaseDropped(string)      {}
func (nopMetrics) RecordBiasComputed(string)        {}

func testHandler(t *testing.T) *RatingEchoHandler {
	t.Helper()
	log := testLogger(t)
	score := usecase.NewSetupScoreUseCase(log, nopMetrics{}, nil)
	bias := usecase.NewFundamentalBiasUseCase(log, nopMetrics{}, nil, nil, time.Minute)
	return NewRatingEchoHandler(log, score, bias)
}

func doRequest(t *testing.T, h *RatingEchoHandler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	h.RegisterRoutes(e)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestScoreEndpoint(t *testing.T) {
	body := `{
		"snapshot": {"symbol":"EURUSD","price":1.1000,"volume_source":"real"},
		"indicators": {"atr":0.0020,"rsi":58,"macd_hist":0.0004,
			"sma10":1.0996,"sma20":1.0990,
			"bb_lower":1.0950,"bb_middle":1.0990,"bb_upper":1.1030},
		"trade": {"side":"BUY","entry":1.0995,"sl":1.0965}
	}`
	rec := doRequest(t, testHandler(t), "/api/score", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Status int                 `json:"status"`
		Data   models.CombinedScore `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Status != http.StatusOK {
		t.Errorf("envelope status = %d", envelope.Status)
	}
	conf := envelope.Data.CombinedConfidence
	if conf < 0.15 || conf > 0.90 {
		t.Errorf("combined confidence %v outside [0.15, 0.90]", conf)
	}
	if envelope.Data.Consulted {
		t.Error("no rater configured, must not report consultation")
	}
}

func TestScoreEndpointRejectsBadPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing snapshot", `{"indicators":{"rsi":50},"trade":{"side":"BUY","entry":1.1,"sl":1.09}}`},
		{"bad side", `{
			"snapshot": {"symbol":"EURUSD","price":1.1,"volume_source":"real"},
			"indicators": {"atr":0.002,"rsi":58,"bb_lower":1.095,"bb_middle":1.099,"bb_upper":1.103},
			"trade": {"side":"HOLD","entry":1.0995,"sl":1.0965}
		}`},
		{"not json", `hello`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, testHandler(t), "/api/score", tt.body)
			var envelope struct {
				Status int `json:"status"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("decode envelope: %v", err)
			}
			if envelope.Status != http.StatusBadRequest {
				t.Errorf("envelope status = %d, want 400, body: %s", envelope.Status, rec.Body.String())
			}
		})
	}
}

func TestBiasEndpoint(t *testing.T) {
	now := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
	body := `{
		"baseCcy": "EUR",
		"quoteCcy": "USD",
		"releases": [
			{"currency":"USD","event":"CPI y/y","time":"` + now + `","actual":3.0,"forecast":2.8}
		]
	}`
	rec := doRequest(t, testHandler(t), "/api/fundamentals/bias", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Status int                 `json:"status"`
		Data   models.BiasResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Data.Bias.Label != models.BiasBearish {
		t.Errorf("label = %s, want BEARISH", envelope.Data.Bias.Label)
	}
}

func TestHealthEndpoint(t *testing.T) {
	e := echo.New()
	testHandler(t).RegisterRoutes(e)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Data["status"] != "ok" {
		t.Errorf("data = %v, want status ok", envelope.Data)
	}
}

func TestBiasEndpointRejectsBadCurrency(t *testing.T) {
	rec := doRequest(t, testHandler(t), "/api/fundamentals/bias", `{"baseCcy":"EURO","quoteCcy":"USD"}`)
	var envelope struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Status != http.StatusBadRequest {
		t.Errorf("envelope status = %d, want 400", envelope.Status)
	}
}
