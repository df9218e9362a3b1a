package ai

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Compile-time interface check.
var _ Provider = (*GeminiProvider)(nil)

const geminiAPIBase = "https://generativelanguage.googleapis.com/v1/models"

// GeminiProvider implements Provider using the Gemini generateContent API.
type GeminiProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGeminiProvider creates a GeminiProvider with a 60-second timeout HTTP
// client.
func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	return &GeminiProvider{
		apiKey:  apiKey,
		model:   model,
		baseURL: geminiAPIBase,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// geminiRequest is the request body for the generateContent API.
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

// geminiResponse is the response body from the generateContent API.
type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Name implements Provider.
func (p *GeminiProvider) Name() string { return "gemini" }

// Summarize generates a digest of the article using the Gemini API. Gemini
// has no separate system role on v1, so both prompts go in one part.
func (p *GeminiProvider) Summarize(ctx context.Context, content string) (Digest, error) {
	systemPrompt, userPrompt := SummarizePrompt(content)

	text, err := p.callAPI(ctx, systemPrompt+"\n\n"+userPrompt)
	if err != nil {
		return Digest{}, fmt.Errorf("gemini summarize: %w", err)
	}

	return parseDigest(text), nil
}

// callAPI makes an HTTP request to the generateContent API and returns the
// text of the first part of the first candidate.
func (p *GeminiProvider) callAPI(ctx context.Context, prompt string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	}
	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s", p.baseURL, url.PathEscape(p.model), url.QueryEscape(p.apiKey))

	slog.Debug("calling Gemini API", "model", p.model)

	var apiResp geminiResponse
	if err := postJSON(ctx, p.client, p.Name(), endpoint, nil, reqBody, &apiResp); err != nil {
		return "", err
	}
	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 || apiResp.Candidates[0].Content.Parts[0].Text == "" {
		return "", fmt.Errorf("%w: no candidates returned", ErrEmptyResponse)
	}
	return apiResp.Candidates[0].Content.Parts[0].Text, nil
}
