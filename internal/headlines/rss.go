package headlines

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"
)

const (
	rssTimeout       = 30 * time.Second
	rssMaxConcurrent = 10
)

var htmlTagPattern = regexp.MustCompile("<[^>]*>")

// RSS builds headline pages from the syndication feeds configured for each
// category. Country is ignored; the feeds decide the region.
type RSS struct {
	feeds  map[string][]string
	client *http.Client
}

// NewRSS creates an RSS source. feeds maps a category name to its feed URLs;
// categories without feeds fall back to "general".
func NewRSS(feeds map[string][]string) *RSS {
	return &RSS{
		feeds: feeds,
		client: &http.Client{
			Timeout:   rssTimeout,
			Transport: &userAgentTransport{base: http.DefaultTransport},
		},
	}
}

func (s *RSS) Name() string { return "rss" }

// userAgentTransport injects browser-like headers so feed hosts that filter
// bots still answer.
type userAgentTransport struct {
	base http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	browserHeaders(req)
	return t.base.RoundTrip(req)
}

type feedItem struct {
	article   Article
	published time.Time
}

// TopHeadlines fetches every feed of the requested category concurrently,
// merges their items newest first, filters them by the search term, and
// returns the requested page.
func (s *RSS) TopHeadlines(ctx context.Context, req Request) (*Document, error) {
	urls := s.feeds[req.Category]
	if len(urls) == 0 {
		urls = s.feeds["general"]
	}
	if len(urls) == 0 {
		return nil, &APIError{
			Code:    "categoryUnavailable",
			Message: fmt.Sprintf("no feeds configured for category %q", req.Category),
		}
	}

	var (
		items  []feedItem
		failed int
		mu     sync.Mutex
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rssMaxConcurrent)

	for _, feedURL := range urls {
		g.Go(func() error {
			fetched, err := s.fetchFeed(gctx, feedURL)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				slog.Warn("failed to fetch feed", "url", feedURL, "error", err)
				failed++
				return nil // skip failures, don't fail the batch
			}
			items = append(items, fetched...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetching feeds: %w", err)
	}

	if failed == len(urls) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, errors.New("every configured feed failed")
	}

	items = filterItems(items, req.Query)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].published.After(items[j].published)
	})

	return paginate(items, req.Page, req.PageSize), nil
}

func (s *RSS) fetchFeed(ctx context.Context, feedURL string) ([]feedItem, error) {
	fp := gofeed.NewParser()
	fp.Client = s.client

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing feed %q: %w", feedURL, err)
	}
	return feedItems(feed), nil
}

// feedItems converts gofeed items into articles. Items without a title or
// link are skipped.
func feedItems(feed *gofeed.Feed) []feedItem {
	items := make([]feedItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		if strings.TrimSpace(it.Title) == "" || it.Link == "" {
			continue
		}

		a := Article{
			Source:      ArticleSource{Name: strings.TrimSpace(feed.Title)},
			Title:       strings.TrimSpace(it.Title),
			Description: optional(stripHTML(it.Description)),
			URL:         it.Link,
			URLToImage:  itemImage(it),
			Content:     optional(stripHTML(it.Content)),
		}
		if it.Author != nil {
			a.Author = optional(it.Author.Name)
		}

		var published time.Time
		if it.PublishedParsed != nil {
			published = it.PublishedParsed.UTC()
			a.PublishedAt = published.Format(time.RFC3339)
		}

		items = append(items, feedItem{article: a, published: published})
	}
	return items
}

func itemImage(it *gofeed.Item) *string {
	if it.Image != nil && it.Image.URL != "" {
		return optional(it.Image.URL)
	}
	for _, enc := range it.Enclosures {
		if strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return optional(enc.URL)
		}
	}
	return nil
}

func filterItems(items []feedItem, query string) []feedItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	kept := items[:0]
	for _, it := range items {
		text := strings.ToLower(it.article.Title)
		if it.article.Description != nil {
			text += " " + strings.ToLower(*it.article.Description)
		}
		if strings.Contains(text, q) {
			kept = append(kept, it)
		}
	}
	return kept
}

// paginate slices items into the 1-based page. Pages past the end are empty.
func paginate(items []feedItem, page, pageSize int) *Document {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = len(items)
	}

	doc := &Document{Status: "ok", TotalResults: len(items), Articles: []Article{}}

	start := (page - 1) * pageSize
	if start >= len(items) {
		return doc
	}
	end := min(start+pageSize, len(items))
	for _, it := range items[start:end] {
		doc.Articles = append(doc.Articles, it.article)
	}
	return doc
}

// stripHTML removes HTML tags from s and unescapes HTML entities.
func stripHTML(s string) string {
	clean := htmlTagPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(html.UnescapeString(clean))
}
