package headlines

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
)

const (
	extractTimeout  = 30 * time.Second
	maxExtractBytes = 5 * 1024 * 1024
	maxWords        = 5000
)

// ErrNoContent is returned when a page has no readable article text.
var ErrNoContent = errors.New("no readable content")

// browserHeaders sets browser-like request headers so sites that check Accept
// or User-Agent don't reject the request with 406.
func browserHeaders(r *http.Request) {
	r.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	r.Header.Set("Accept-Language", "en-US,en;q=0.9")
	r.Header.Set("User-Agent", "Mozilla/5.0 (compatible; NewsHub/1.0)")
}

// Extracted is the readable content of a web page.
type Extracted struct {
	Title    string
	SiteName string
	Excerpt  string
	Text     string
}

// Extractor fetches web pages and pulls out their main readable text.
type Extractor struct {
	client *http.Client
}

// NewExtractor creates an Extractor with a 30-second timeout.
func NewExtractor() *Extractor {
	return &Extractor{client: &http.Client{Timeout: extractTimeout}}
}

// Extract fetches pageURL and returns its readable content. The text is
// truncated to 5000 words.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (*Extracted, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("invalid article URL %q", pageURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %q: %w", pageURL, err)
	}
	browserHeaders(req)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %q: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %q: status %d", pageURL, resp.StatusCode)
	}

	article, err := readability.FromReader(io.LimitReader(resp.Body, maxExtractBytes), parsed)
	if err != nil {
		return nil, fmt.Errorf("readability extraction: %w", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return nil, ErrNoContent
	}

	return &Extracted{
		Title:    article.Title,
		SiteName: article.SiteName,
		Excerpt:  article.Excerpt,
		Text:     truncateWords(text, maxWords),
	}, nil
}

// truncateWords returns the first maxWords whitespace-delimited words from s.
// If s contains fewer than maxWords words, it is returned unchanged.
func truncateWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return s
	}
	return strings.Join(words[:maxWords], " ")
}
