package headlines

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	newsAPITimeout = 30 * time.Second
	newsAPIBurst   = 3
)

// NewsAPI fetches headlines from a NewsAPI-compatible top-headlines endpoint.
// Outbound calls are rate limited so a busy proxy cannot exhaust the API
// key's quota.
type NewsAPI struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewNewsAPI creates a NewsAPI source allowing requestsPerMinute calls.
func NewNewsAPI(apiKey, baseURL string, requestsPerMinute int) *NewsAPI {
	if requestsPerMinute < 1 {
		requestsPerMinute = 1
	}
	return &NewsAPI{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: newsAPITimeout},
		limiter: rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60), newsAPIBurst),
	}
}

func (n *NewsAPI) Name() string { return "newsapi" }

// TopHeadlines calls the provider's top-headlines endpoint.
func (n *NewsAPI) TopHeadlines(ctx context.Context, req Request) (*Document, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for newsapi rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("country", req.Country)
	params.Set("category", req.Category)
	params.Set("page", strconv.Itoa(req.Page))
	params.Set("pageSize", strconv.Itoa(req.PageSize))
	if q := strings.TrimSpace(req.Query); q != "" {
		params.Set("q", q)
	}
	params.Set("apiKey", n.apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/top-headlines?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating newsapi request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := n.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling newsapi: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading newsapi response: %w", err)
	}

	slog.Debug("newsapi responded",
		"status", resp.StatusCode,
		"category", req.Category,
		"page", req.Page,
		"duration", time.Since(start).String(),
	)

	var envelope struct {
		Document
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("newsapi returned status %d with undecodable body: %w", resp.StatusCode, err)
	}

	if envelope.Status == "error" {
		return nil, &APIError{Code: envelope.Code, Message: envelope.Message}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi returned status %d", resp.StatusCode)
	}

	doc := envelope.Document
	if doc.Articles == nil {
		doc.Articles = []Article{}
	}
	return &doc, nil
}
