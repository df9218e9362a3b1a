package headlines

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const articlePage = `<!DOCTYPE html>
<html>
<head><title>Council approves river park</title><meta property="og:site_name" content="City Paper"></head>
<body>
<nav><a href="/">Home</a> <a href="/news">News</a></nav>
<article>
<h1>Council approves river park</h1>
<p>The city council voted on Tuesday to approve a new park along the river, ending a debate that lasted more than two years and drew hundreds of residents to public meetings.</p>
<p>Supporters said the park would give families in the eastern districts their first large green space, while critics worried about the cost of cleaning up the former industrial land along the bank.</p>
<p>Construction is expected to begin next spring, and the first section of the riverside trail should open to walkers and cyclists before the end of the following year, officials said.</p>
</article>
<footer>Copyright City Paper</footer>
</body>
</html>`

func TestExtractorExtract(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(articlePage))
	}))
	defer srv.Close()

	got, err := NewExtractor().Extract(context.Background(), srv.URL+"/park")
	if err != nil {
		t.Fatalf("Extract() unexpected error: %v", err)
	}

	if !strings.Contains(got.Text, "approve a new park along the river") {
		t.Errorf("Text = %q, want article body", got.Text)
	}
	if !strings.Contains(gotUA, "NewsHub") {
		t.Errorf("User-Agent = %q, want browser-like header", gotUA)
	}
}

func TestExtractorErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	tests := []struct {
		name string
		url  string
	}{
		{"not found", srv.URL + "/missing"},
		{"not a url", "::::"},
		{"unsupported scheme", "ftp://example.com/file"},
		{"relative", "/just/a/path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewExtractor().Extract(context.Background(), tt.url); err == nil {
				t.Fatalf("Extract(%q) expected error, got nil", tt.url)
			}
		})
	}
}

func TestTruncateWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWords int
		want     string
	}{
		{"under limit returns original", "hello world", 5, "hello world"},
		{"exactly at limit returns original", "one two three", 3, "one two three"},
		{"over limit is truncated", "one two three four five six", 3, "one two three"},
		{"empty string returns empty", "", 5, ""},
		{"multiple spaces between words", "one   two   three   four", 2, "one two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateWords(tt.input, tt.maxWords); got != tt.want {
				t.Errorf("truncateWords(%q, %d) = %q, want %q", tt.input, tt.maxWords, got, tt.want)
			}
		})
	}
}
