package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hoanghai1803/newshub/internal/ai"
	"github.com/hoanghai1803/newshub/internal/headlines"
)

// ArticleExtractor pulls the readable text out of a web page.
type ArticleExtractor interface {
	Extract(ctx context.Context, pageURL string) (*headlines.Extracted, error)
}

type summarizeRequest struct {
	NewsContent string `json:"newsContent"`
	URL         string `json:"url"`
}

var providerTitles = map[string]string{
	"gemini":    "Gemini",
	"anthropic": "Anthropic",
	"openai":    "OpenAI",
}

// Summarize handles POST /api/gemini/summarize. The body carries either the
// article text in newsContent or an article url to extract first. The answer
// is {summary, keyPoints, entities}.
func Summarize(provider ai.Provider, extractor ArticleExtractor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if provider == nil {
			writeError(w, http.StatusServiceUnavailable, "AI provider is not configured")
			return
		}

		var req summarizeRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		content := strings.TrimSpace(req.NewsContent)
		articleURL := strings.TrimSpace(req.URL)
		if content == "" && articleURL == "" {
			writeError(w, http.StatusBadRequest, "News content is required")
			return
		}

		if content == "" {
			article, err := extractor.Extract(r.Context(), articleURL)
			if err != nil {
				slog.Warn("article extraction failed", "url", articleURL, "error", err)
				writeError(w, http.StatusBadGateway, "Failed to extract article content")
				return
			}
			content = article.Text
		}

		digest, err := provider.Summarize(r.Context(), content)
		if err != nil {
			var apiErr *ai.APIError
			switch {
			case errors.As(err, &apiErr):
				slog.Error("summary provider error", "provider", provider.Name(), "status", apiErr.StatusCode, "error", apiErr.Message)
				status := apiErr.StatusCode
				if status < 400 || status > 599 {
					status = http.StatusInternalServerError
				}
				writeError(w, status, "Failed to generate summary")
			case errors.Is(err, ai.ErrEmptyResponse):
				writeError(w, http.StatusInternalServerError, "No response from "+providerTitle(provider.Name())+" API")
			default:
				slog.Error("failed to generate summary", "provider", provider.Name(), "error", err)
				writeError(w, http.StatusInternalServerError, "Failed to generate summary")
			}
			return
		}

		writeJSON(w, http.StatusOK, digest)
	}
}

func providerTitle(name string) string {
	if t, ok := providerTitles[name]; ok {
		return t
	}
	return name
}
