package rater

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"FxRater/internal/domain/models"
	"FxRater/pkg/config"
	xhttp "FxRater/pkg/http"
)

const defaultTimeout = 8 * time.Second

// HTTPRater asks an OpenAI-compatible chat-completions endpoint for a
// second opinion on a setup. The model is instructed to answer with a
// single JSON object; whatever comes back in the first choice is returned
// verbatim for the caller to coerce.
type HTTPRater struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	client      *xhttp.Client
}

// NewHTTPRater builds a rater client from config.
func NewHTTPRater(cfg *config.Config) *HTTPRater {
	timeout := cfg.Rater.Timeout.Std()
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPRater{
		baseURL:     cfg.Rater.BaseURL,
		apiKey:      cfg.Rater.APIKey,
		model:       cfg.Rater.Model,
		temperature: cfg.Rater.Temperature,
		client:      xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat *respFormat   `json:"response_format,omitempty"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Rate sends the sanitized setup payload and returns the model's raw JSON
// verdict. Transport failures, non-2xx responses and empty completions all
// surface as errors; the caller decides whether that is fatal.
func (r *HTTPRater) Rate(ctx context.Context, systemPrompt string, payload models.RaterPayload) (json.RawMessage, error) {
	if r.baseURL == "" {
		return nil, fmt.Errorf("rater base url not configured")
	}

	user, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal rater payload: %w", err)
	}

	req := chatRequest{
		Model: r.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: string(user)},
		},
		Temperature:    r.temperature,
		ResponseFormat: &respFormat{Type: "json_object"},
	}

	headers := map[string]string{"Content-Type": "application/json"}
	if r.apiKey != "" {
		headers["Authorization"] = "Bearer " + r.apiKey
	}

	var resp chatResponse
	err = r.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodPost,
		URL:     r.baseURL + "/chat/completions",
		Headers: headers,
		Body:    req,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("rater request: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("rater returned no completion")
	}
	return json.RawMessage(resp.Choices[0].Message.Content), nil
}
