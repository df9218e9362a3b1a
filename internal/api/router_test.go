package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hoanghai1803/newshub/internal/ai"
	"github.com/hoanghai1803/newshub/internal/headlines"
	"github.com/hoanghai1803/newshub/internal/provider"
)

type stubSource struct{}

func (stubSource) Name() string { return "stub" }

func (stubSource) TopHeadlines(ctx context.Context, req headlines.Request) (*headlines.Document, error) {
	return &headlines.Document{Status: "ok", TotalResults: 1, Articles: []headlines.Article{{Title: req.Category}}}, nil
}

type stubAI struct{}

func (stubAI) Name() string { return "gemini" }

func (stubAI) Summarize(ctx context.Context, content string) (ai.Digest, error) {
	return ai.Digest{Summary: "sum:" + content, KeyPoints: []string{}, Entities: []string{}}, nil
}

type stubExtractor struct{}

func (stubExtractor) Extract(ctx context.Context, pageURL string) (*headlines.Extracted, error) {
	return &headlines.Extracted{Text: "page"}, nil
}

type stubBias struct{}

func (stubBias) BiasText(ctx context.Context, text string) ([]byte, error) {
	return []byte(`{"bias_label":"Center"}`), nil
}

func (stubBias) BiasURL(ctx context.Context, articleURL string) ([]byte, error) {
	return []byte(`{"bias_label":"Left"}`), nil
}

func (stubBias) BiasModelStatus(ctx context.Context) ([]byte, error) {
	return []byte(`{"loaded":true}`), nil
}

func (stubBias) Health(ctx context.Context, svc provider.Service) ([]byte, error) {
	return []byte(`{"status":"OK"}`), nil
}

func newTestRouter() http.Handler {
	return NewRouter(Deps{
		Headlines: stubSource{},
		AI:        stubAI{},
		Extractor: stubExtractor{},
		Bias:      stubBias{},
		Prober:    stubBias{},
	})
}

func TestRouterRoutes(t *testing.T) {
	tests := []struct {
		method   string
		path     string
		body     string
		wantCode int
		wantIn   string
	}{
		{http.MethodGet, "/health", "", http.StatusOK, "Server is running"},
		{http.MethodGet, "/api/news?category=science", "", http.StatusOK, `"title":"science"`},
		{http.MethodPost, "/api/gemini/summarize", `{"newsContent":"abc"}`, http.StatusOK, "sum:abc"},
		{http.MethodPost, "/api/gemini/summarize", `{"url":"https://example.com"}`, http.StatusOK, "sum:page"},
		{http.MethodPost, "/api/bias/check", `{"text":"t"}`, http.StatusOK, "Center"},
		{http.MethodPost, "/api/bias/check-url", `{"url":"https://example.com"}`, http.StatusOK, "Left"},
		{http.MethodGet, "/api/bias/model/status", "", http.StatusOK, "loaded"},
		{http.MethodGet, "/api/health/services", "", http.StatusOK, "summarizer"},
		{http.MethodGet, "/api/missing", "", http.StatusNotFound, ""},
		{http.MethodGet, "/api/gemini/summarize", "", http.StatusMethodNotAllowed, ""},
	}

	router := newTestRouter()
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, r)

			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.wantCode, w.Body.String())
			}
			if tt.wantIn != "" && !strings.Contains(w.Body.String(), tt.wantIn) {
				t.Errorf("body = %s, want it to contain %q", w.Body.String(), tt.wantIn)
			}
			if w.Header().Get(RequestIDHeader) == "" {
				t.Errorf("missing %s header", RequestIDHeader)
			}
		})
	}
}

func TestRouterNoAIProvider(t *testing.T) {
	router := NewRouter(Deps{Headlines: stubSource{}, Extractor: stubExtractor{}, Bias: stubBias{}, Prober: stubBias{}})

	r := httptest.NewRequest(http.MethodPost, "/api/gemini/summarize", strings.NewReader(`{"newsContent":"x"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
	var body map[string]string
	json.NewDecoder(w.Body).Decode(&body)
	if body["error"] == "" {
		t.Error("missing error message")
	}
}
