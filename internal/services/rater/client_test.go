package rater

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"FxRater/internal/domain/models"
	"FxRater/pkg/config"
)

func testConfig(url string) *config.Config {
	cfg := &config.Config{}
	cfg.Rater.BaseURL = url
	cfg.Rater.APIKey = "test-key"
	cfg.Rater.Model = "gpt-4o-mini"
	return cfg
}

func TestHTTPRaterRoundTrip(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"ai_confidence_conditional\":0.62}"}}]}`))
	}))
	defer srv.Close()

	r := NewHTTPRater(testConfig(srv.URL))
	raw, err := r.Rate(context.Background(), "rate this setup", models.RaterPayload{Symbol: "EURUSD", Side: models.SideBuy})
	if err != nil {
		t.Fatalf("Rate: %v", err)
	}

	var verdict struct {
		AIConfidence float64 `json:"ai_confidence_conditional"`
	}
	if err := json.Unmarshal(raw, &verdict); err != nil {
		t.Fatalf("verdict is not JSON: %v", err)
	}
	if verdict.AIConfidence != 0.62 {
		t.Errorf("ai confidence = %v, want 0.62", verdict.AIConfidence)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("authorization = %q", gotAuth)
	}
	if gotReq.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" {
		t.Fatalf("unexpected messages: %+v", gotReq.Messages)
	}
	if !strings.Contains(gotReq.Messages[1].Content, `"EURUSD"`) {
		t.Errorf("user message missing payload: %s", gotReq.Messages[1].Content)
	}
	if gotReq.ResponseFormat == nil || gotReq.ResponseFormat.Type != "json_object" {
		t.Errorf("response_format not requested: %+v", gotReq.ResponseFormat)
	}
}

func TestHTTPRaterErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream overloaded", http.StatusBadGateway)
		}},
		{"empty choices", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[]}`))
		}},
		{"empty content", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[{"message":{"content":""}}]}`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			r := NewHTTPRater(testConfig(srv.URL))
			if _, err := r.Rate(context.Background(), "prompt", models.RaterPayload{}); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestHTTPRaterUnconfigured(t *testing.T) {
	r := NewHTTPRater(&config.Config{})
	if _, err := r.Rate(context.Background(), "prompt", models.RaterPayload{}); err == nil {
		t.Error("expected error when base url is empty")
	}
}
