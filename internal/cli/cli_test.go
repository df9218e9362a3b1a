package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

// backend serves every collaborator from one test server.
type backend struct {
	srv          *httptest.Server
	summarizeURL atomic.Int32
	lastBody     atomic.Value
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"OK","message":"running"}`)
	})
	mux.HandleFunc("GET /news", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("category") == "sports" {
			fmt.Fprint(w, `{"status":"error","message":"Category is not supported"}`)
			return
		}
		switch q.Get("page") {
		case "1":
			fmt.Fprint(w, `{"status":"ok","totalResults":3,"articles":[
				{"source":{"name":"Wire"},"title":"First story","description":"One","url":"https://example.com/1","publishedAt":"2024-01-02T10:00:00Z"},
				{"source":{"name":"Daily"},"title":"Second story","description":"Two","url":"https://example.com/2"}
			]}`)
		default:
			fmt.Fprint(w, `{"status":"ok","totalResults":3,"articles":[
				{"source":{"name":"Wire"},"title":"Third story","description":"Three","url":"https://example.com/3"}
			]}`)
		}
	})
	mux.HandleFunc("POST /api/analyze/sentiment", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		fmt.Fprint(w, `{"sentiment_analysis":{"sentiment":"Positive","confidence":0.8,"polarity":0.5}}`)
	})
	mux.HandleFunc("POST /api/fact-check", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		fmt.Fprint(w, `{"final_verdict":"Likely True","credibility_score":0.9,"confidence_level":"High","reasoning":"Matches records.","supporting_articles":[{"title":"Archive","link":"https://archive.example"}],"sources_verified":1}`)
	})
	mux.HandleFunc("POST /api/bias/check", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		fmt.Fprint(w, `{"political_bias":"Lean Left","confidence":0.62,"method":"model"}`)
	})
	mux.HandleFunc("POST /api/bias/check-url", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, `{"error":"Could not fetch article"}`)
	})
	mux.HandleFunc("GET /api/model/status", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"loaded":true}`)
	})
	mux.HandleFunc("POST /api/summarize/text", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		fmt.Fprint(w, `{"summary":"Short. Version.","keywords":["alpha"],"compression_ratio":40}`)
	})
	mux.HandleFunc("POST /api/summarize/url", func(w http.ResponseWriter, r *http.Request) {
		b.summarizeURL.Add(1)
		b.record(r)
		fmt.Fprint(w, `{"summary":"Short version.","keywords":["alpha","beta"]}`)
	})

	b.srv = httptest.NewServer(mux)
	t.Cleanup(b.srv.Close)
	return b
}

func (b *backend) record(r *http.Request) {
	var body map[string]any
	json.NewDecoder(r.Body).Decode(&body)
	b.lastBody.Store(body)
}

func (b *backend) body(t *testing.T) map[string]any {
	t.Helper()
	body, _ := b.lastBody.Load().(map[string]any)
	if body == nil {
		t.Fatal("backend received no request body")
	}
	return body
}

func writeConfig(t *testing.T, baseURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	content := fmt.Sprintf(`[log]
level = "error"

[client]
news_url = %[1]q
factcheck_url = %[1]q
bias_url = %[1]q
summarizer_url = %[1]q
page_size = 2
sentences = 4
`, baseURL)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, b *backend, input string, args ...string) (string, string) {
	t.Helper()
	var out bytes.Buffer
	args = append([]string{"--config", writeConfig(t, b.srv.URL)}, args...)
	msg := Execute(context.Background(), args, strings.NewReader(input), &out)
	return out.String(), msg
}

func TestHealthCommand(t *testing.T) {
	b := newBackend(t)
	out, msg := run(t, b, "", "health")
	if msg != "" {
		t.Fatalf("unexpected error: %s", msg)
	}
	for _, svc := range []string{"news", "factcheck", "bias", "summarizer"} {
		if !strings.Contains(out, svc) {
			t.Errorf("output missing %q:\n%s", svc, out)
		}
	}
	if !strings.Contains(out, "OK") {
		t.Errorf("output missing status:\n%s", out)
	}
}

func TestHealthCommandDown(t *testing.T) {
	b := newBackend(t)
	b.srv.Close()

	out, msg := run(t, b, "", "--json", "health")
	if msg != "" {
		t.Fatalf("unexpected error: %s", msg)
	}
	var reports []map[string]any
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(reports) != 4 {
		t.Fatalf("got %d reports, want 4", len(reports))
	}
	for _, r := range reports {
		if r["status"] != "down" {
			t.Errorf("%v: status = %v, want down", r["service"], r["status"])
		}
	}
}

func TestOneShotCommands(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantOut  []string
		wantBody map[string]any
	}{
		{
			name:     "sentiment",
			args:     []string{"sentiment", "what", "a", "day"},
			wantOut:  []string{"Positive", "80%"},
			wantBody: map[string]any{"text": "what a day"},
		},
		{
			name:     "factcheck",
			args:     []string{"factcheck", "The sky is blue"},
			wantOut:  []string{"The sky is blue", "Matches records.", "Archive"},
			wantBody: map[string]any{"text": "The sky is blue"},
		},
		{
			name:     "factcheck url is sent as text",
			args:     []string{"factcheck", "https://example.com/a"},
			wantOut:  []string{"https://example.com/a"},
			wantBody: map[string]any{"text": "https://example.com/a"},
		},
		{
			name:     "bias text",
			args:     []string{"bias", "some", "opinion"},
			wantOut:  []string{"Lean Left", "62%", "model"},
			wantBody: map[string]any{"text": "some opinion"},
		},
		{
			name:     "summarize text uses configured sentences",
			args:     []string{"summarize", "A long article body."},
			wantOut:  []string{"Short.", "alpha"},
			wantBody: map[string]any{"text": "A long article body.", "sentences": float64(4)},
		},
		{
			name:     "summarize url with explicit sentences",
			args:     []string{"summarize", "--url", "https://example.com/a", "--sentences", "2"},
			wantOut:  []string{"Short version."},
			wantBody: map[string]any{"url": "https://example.com/a", "sentences": float64(2)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBackend(t)
			out, msg := run(t, b, "", tt.args...)
			if msg != "" {
				t.Fatalf("unexpected error: %s", msg)
			}
			for _, want := range tt.wantOut {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			body := b.body(t)
			for k, v := range tt.wantBody {
				if body[k] != v {
					t.Errorf("request %s = %v, want %v", k, body[k], v)
				}
			}
		})
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"empty sentiment", []string{"sentiment", "  "}, "Please enter some text to analyze."},
		{"empty factcheck", []string{"factcheck"}, "Please enter some text or provide a URL to fact-check."},
		{"empty bias", []string{"bias"}, "Please enter some text or provide a URL to analyze."},
		{"sentences out of range", []string{"summarize", "--sentences", "11", "text"}, "Sentences must be between 1 and 10."},
		{"upstream error message", []string{"bias", "--url", "https://example.com/a"}, "Could not fetch article"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBackend(t)
			_, msg := run(t, b, "", tt.args...)
			if !strings.Contains(msg, tt.want) {
				t.Errorf("error = %q, want it to contain %q", msg, tt.want)
			}
		})
	}
}

func TestBiasStatusJSON(t *testing.T) {
	b := newBackend(t)
	out, msg := run(t, b, "", "bias", "status")
	if msg != "" {
		t.Fatalf("unexpected error: %s", msg)
	}
	if !strings.Contains(out, `"loaded": true`) {
		t.Errorf("output = %s", out)
	}
}

func TestFeedSession(t *testing.T) {
	b := newBackend(t)
	input := strings.Join([]string{
		"more",
		"more",
		"summarize 1",
		"summarize 1",
		"summarize 9",
		"search",
		"dance",
		"quit",
		"list",
	}, "\n")

	out, msg := run(t, b, input, "feed")
	if msg != "" {
		t.Fatalf("unexpected error: %s", msg)
	}

	wants := []string{
		"General headlines (2 of 3)",
		"Wire | 2024-01-0",
		"General headlines (3 of 3)",
		"No more articles.",
		"Summary: Short version.",
		"• alpha",
		"Summary hidden.",
		"Pick an article number between 1 and 3.",
		"Please enter a search term.",
		`Unknown command "dance"`,
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if got := b.summarizeURL.Load(); got != 1 {
		t.Errorf("summarize url calls = %d, want 1", got)
	}
	if strings.Count(out, "General headlines (3 of 3)") != 1 {
		t.Errorf("commands after quit were executed:\n%s", out)
	}
}

func TestFeedSessionFailureBanner(t *testing.T) {
	b := newBackend(t)
	out, msg := run(t, b, "category sports\n", "feed")
	if msg != "" {
		t.Fatalf("unexpected error: %s", msg)
	}
	if !strings.Contains(out, "Sports headlines (0 of 0)") {
		t.Errorf("output missing category header:\n%s", out)
	}
	if !strings.Contains(out, "! Category is not supported") {
		t.Errorf("output missing banner:\n%s", out)
	}
}

func TestFeedSessionStartCategory(t *testing.T) {
	b := newBackend(t)
	out, msg := run(t, b, "", "feed", "--category", "Technology")
	if msg != "" {
		t.Fatalf("unexpected error: %s", msg)
	}
	if !strings.Contains(out, "Technology headlines (2 of 3)") {
		t.Errorf("output = %s", out)
	}
}
