package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Service names one remote collaborator.
type Service string

const (
	ServiceNews       Service = "news"
	ServiceFactCheck  Service = "factcheck"
	ServiceBias       Service = "bias"
	ServiceSummarizer Service = "summarizer"
)

// Services lists every collaborator in display order.
var Services = []Service{ServiceNews, ServiceFactCheck, ServiceBias, ServiceSummarizer}

const (
	shortTimeout  = 30 * time.Second
	mediumTimeout = 60 * time.Second
	longTimeout   = 120 * time.Second

	maxBodyBytes = 10 * 1024 * 1024
)

// Operation describes one logical remote call.
type Operation struct {
	Service Service
	Name    string
	Method  string
	Path    string
	Timeout time.Duration
}

// Known operations. Paths are relative to the service base URL.
var (
	OpNews             = Operation{ServiceNews, "news", http.MethodGet, "/news", shortTimeout}
	OpGeminiSummarize  = Operation{ServiceNews, "gemini-summarize", http.MethodPost, "/gemini/summarize", mediumTimeout}
	OpBiasCheck        = Operation{ServiceBias, "bias-check", http.MethodPost, "/api/bias/check", mediumTimeout}
	OpBiasCheckURL     = Operation{ServiceBias, "bias-check-url", http.MethodPost, "/api/bias/check-url", mediumTimeout}
	OpBiasModelStatus  = Operation{ServiceBias, "bias-model-status", http.MethodGet, "/api/model/status", shortTimeout}
	OpFactCheck        = Operation{ServiceFactCheck, "fact-check", http.MethodPost, "/api/fact-check", longTimeout}
	OpSummarizeText    = Operation{ServiceSummarizer, "summarize-text", http.MethodPost, "/api/summarize/text", mediumTimeout}
	OpSummarizeURL     = Operation{ServiceSummarizer, "summarize-url", http.MethodPost, "/api/summarize/url", mediumTimeout}
	OpAnalyzeSentiment = Operation{ServiceSummarizer, "analyze-sentiment", http.MethodPost, "/api/analyze/sentiment", shortTimeout}
)

// HealthOp returns the health probe operation for service.
func HealthOp(service Service) Operation {
	return Operation{service, "health", http.MethodGet, "/health", shortTimeout}
}

// Endpoints holds the base URL of every collaborator.
type Endpoints struct {
	News       string
	FactCheck  string
	Bias       string
	Summarizer string
}

func (e Endpoints) base(s Service) string {
	switch s {
	case ServiceNews:
		return e.News
	case ServiceFactCheck:
		return e.FactCheck
	case ServiceBias:
		return e.Bias
	case ServiceSummarizer:
		return e.Summarizer
	}
	return ""
}

// ErrNoEndpoint is wrapped in the transport failure returned when a service
// has no configured base URL.
var ErrNoEndpoint = errors.New("no base URL configured")

// Client issues calls to the remote collaborators. It applies the
// per-operation timeout and classifies every failure, but never retries and
// never switches between input modes on its own.
type Client struct {
	endpoints Endpoints
	http      *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient creates a Client for the given endpoints.
func NewClient(endpoints Endpoints, opts ...Option) *Client {
	c := &Client{
		endpoints: endpoints,
		http:      &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewsQuery holds the recognized headline request options.
type NewsQuery struct {
	Country  string
	Category string
	Page     int
	PageSize int
	Query    string
}

// Values encodes q as URL parameters. The "general" category is the
// provider's default and is left out, as is an empty search term.
func (q NewsQuery) Values() url.Values {
	v := url.Values{}
	if q.Country != "" {
		v.Set("country", q.Country)
	}
	if q.Category != "" && q.Category != "general" {
		v.Set("category", q.Category)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if term := strings.TrimSpace(q.Query); term != "" {
		v.Set("q", term)
	}
	return v
}

// News fetches one page of headlines through the proxy.
func (c *Client) News(ctx context.Context, q NewsQuery) ([]byte, error) {
	return c.Do(ctx, OpNews, q.Values(), nil)
}

// GeminiSummarize asks the proxy's generative model to summarize content.
func (c *Client) GeminiSummarize(ctx context.Context, content string) ([]byte, error) {
	return c.Do(ctx, OpGeminiSummarize, nil, map[string]string{"newsContent": content})
}

// GeminiSummarizeURL asks the proxy to extract the article at articleURL and
// summarize it with the generative model.
func (c *Client) GeminiSummarizeURL(ctx context.Context, articleURL string) ([]byte, error) {
	return c.Do(ctx, OpGeminiSummarize, nil, map[string]string{"url": articleURL})
}

// BiasText scores the political bias of text.
func (c *Client) BiasText(ctx context.Context, text string) ([]byte, error) {
	return c.Do(ctx, OpBiasCheck, nil, map[string]string{"text": text})
}

// BiasURL scores the political bias of the article at articleURL.
func (c *Client) BiasURL(ctx context.Context, articleURL string) ([]byte, error) {
	return c.Do(ctx, OpBiasCheckURL, nil, map[string]string{"url": articleURL})
}

// BiasModelStatus returns the bias service's model status document.
func (c *Client) BiasModelStatus(ctx context.Context) ([]byte, error) {
	return c.Do(ctx, OpBiasModelStatus, nil, nil)
}

// FactCheck verifies the claims in text.
func (c *Client) FactCheck(ctx context.Context, text string) ([]byte, error) {
	return c.Do(ctx, OpFactCheck, nil, map[string]string{"text": text})
}

type summarizeRequest struct {
	Text      string `json:"text,omitempty"`
	URL       string `json:"url,omitempty"`
	Sentences int    `json:"sentences"`
}

// SummarizeText summarizes text into the given number of sentences.
func (c *Client) SummarizeText(ctx context.Context, text string, sentences int) ([]byte, error) {
	return c.Do(ctx, OpSummarizeText, nil, summarizeRequest{Text: text, Sentences: sentences})
}

// SummarizeURL summarizes the article at articleURL.
func (c *Client) SummarizeURL(ctx context.Context, articleURL string, sentences int) ([]byte, error) {
	return c.Do(ctx, OpSummarizeURL, nil, summarizeRequest{URL: articleURL, Sentences: sentences})
}

// AnalyzeSentiment asks the summarizer service for the tone of text.
func (c *Client) AnalyzeSentiment(ctx context.Context, text string) ([]byte, error) {
	return c.Do(ctx, OpAnalyzeSentiment, nil, map[string]string{"text": text})
}

// Health probes the health endpoint of service.
func (c *Client) Health(ctx context.Context, service Service) ([]byte, error) {
	return c.Do(ctx, HealthOp(service), nil, nil)
}

// Do performs op and returns the raw body of a successful JSON object
// response. Any other outcome is returned as a *Failure.
func (c *Client) Do(ctx context.Context, op Operation, query url.Values, body any) ([]byte, error) {
	fail := func(class Class, status int, msg string, err error) *Failure {
		return &Failure{
			Class:      class,
			Service:    string(op.Service),
			Operation:  op.Name,
			StatusCode: status,
			Message:    msg,
			Err:        err,
		}
	}

	base := c.endpoints.base(op.Service)
	if base == "" {
		return nil, fail(ClassTransport, 0, "", ErrNoEndpoint)
	}

	target := strings.TrimRight(base, "/") + op.Path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling %s request: %w", op.Name, err)
		}
		reader = bytes.NewReader(data)
	}

	if op.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, op.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, op.Method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("creating %s request: %w", op.Name, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	slog.Debug("calling service", "service", op.Service, "operation", op.Name, "url", target)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fail(ClassTransport, 0, "", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if ctx.Err() != nil {
			return nil, fail(ClassTransport, 0, "", ctx.Err())
		}
		return nil, fail(ClassMalformed, resp.StatusCode, "", fmt.Errorf("reading response body: %w", err))
	}

	slog.Debug("service responded",
		"service", op.Service,
		"operation", op.Name,
		"status", resp.StatusCode,
		"duration", time.Since(start).String(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fail(ClassProtocol, resp.StatusCode, errorMessage(respBody), nil)
	}

	if !isJSONObject(respBody) {
		return nil, fail(ClassMalformed, resp.StatusCode, "response is not a JSON object", nil)
	}

	return respBody, nil
}

// errorMessage pulls a provider error message out of an error body. Bodies
// that are not JSON objects yield an empty message.
func errorMessage(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, field := range []string{"error", "message"} {
		if s, ok := payload[field].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func isJSONObject(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && trimmed[0] == '{' && json.Valid(trimmed)
}
