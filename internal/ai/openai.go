package ai

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Compile-time interface check.
var _ Provider = (*OpenAIProvider)(nil)

const openaiAPIURL = "https://api.openai.com/v1/chat/completions"

// OpenAIProvider implements Provider using the OpenAI Chat Completions API.
type OpenAIProvider struct {
	apiKey string
	model  string
	url    string
	client *http.Client
}

// NewOpenAIProvider creates an OpenAIProvider with a 60-second timeout
// HTTP client.
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	return &OpenAIProvider{
		apiKey: apiKey,
		model:  model,
		url:    openaiAPIURL,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// openaiRequest is the request body for the OpenAI Chat Completions API.
type openaiRequest struct {
	Model    string          `json:"model"`
	Messages []openaiMessage `json:"messages"`
}

// openaiMessage is a single message in the OpenAI request.
type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// openaiResponse is the response body from the OpenAI Chat Completions API.
type openaiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Name implements Provider.
func (p *OpenAIProvider) Name() string { return "openai" }

// Summarize generates a digest of the article using the OpenAI Chat
// Completions API.
func (p *OpenAIProvider) Summarize(ctx context.Context, content string) (Digest, error) {
	systemPrompt, userPrompt := SummarizePrompt(content)

	text, err := p.callAPI(ctx, systemPrompt, userPrompt)
	if err != nil {
		return Digest{}, fmt.Errorf("openai summarize: %w", err)
	}

	return parseDigest(text), nil
}

// callAPI makes an HTTP request to the OpenAI Chat Completions API and
// returns the text content from the first choice.
func (p *OpenAIProvider) callAPI(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqBody := openaiRequest{
		Model: p.model,
		Messages: []openaiMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+p.apiKey)

	slog.Debug("calling OpenAI API", "model", p.model)

	var apiResp openaiResponse
	if err := postJSON(ctx, p.client, p.Name(), p.url, header, reqBody, &apiResp); err != nil {
		return "", err
	}
	if len(apiResp.Choices) == 0 || apiResp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: no choices returned", ErrEmptyResponse)
	}
	return apiResp.Choices[0].Message.Content, nil
}
