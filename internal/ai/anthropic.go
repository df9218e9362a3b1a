package ai

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Compile-time interface check.
var _ Provider = (*AnthropicProvider)(nil)

const anthropicAPIURL = "https://api.anthropic.com/v1/messages"

// AnthropicProvider implements Provider using the Anthropic Messages API.
type AnthropicProvider struct {
	apiKey string
	model  string
	url    string
	client *http.Client
}

// NewAnthropicProvider creates an AnthropicProvider with a 60-second timeout
// HTTP client.
func NewAnthropicProvider(apiKey, model string) *AnthropicProvider {
	return &AnthropicProvider{
		apiKey: apiKey,
		model:  model,
		url:    anthropicAPIURL,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// anthropicRequest is the request body for the Anthropic Messages API.
type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

// anthropicMessage is a single message in the Anthropic request.
type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// anthropicResponse is the response body from the Anthropic Messages API.
type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Name implements Provider.
func (p *AnthropicProvider) Name() string { return "anthropic" }

// Summarize generates a digest of the article using the Anthropic Messages
// API.
func (p *AnthropicProvider) Summarize(ctx context.Context, content string) (Digest, error) {
	systemPrompt, userPrompt := SummarizePrompt(content)

	text, err := p.callAPI(ctx, systemPrompt, userPrompt)
	if err != nil {
		return Digest{}, fmt.Errorf("anthropic summarize: %w", err)
	}

	return parseDigest(text), nil
}

// callAPI makes an HTTP request to the Anthropic Messages API and returns
// the text content from the first content block.
func (p *AnthropicProvider) callAPI(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqBody := anthropicRequest{
		Model:     p.model,
		MaxTokens: 1024,
		System:    systemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: userPrompt},
		},
	}
	header := http.Header{}
	header.Set("x-api-key", p.apiKey)
	header.Set("anthropic-version", "2023-06-01")

	slog.Debug("calling Anthropic API", "model", p.model)

	var apiResp anthropicResponse
	if err := postJSON(ctx, p.client, p.Name(), p.url, header, reqBody, &apiResp); err != nil {
		return "", err
	}
	if len(apiResp.Content) == 0 || apiResp.Content[0].Text == "" {
		return "", fmt.Errorf("%w: no content blocks returned", ErrEmptyResponse)
	}
	return apiResp.Content[0].Text, nil
}
