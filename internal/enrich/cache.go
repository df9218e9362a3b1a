// Package enrich computes article summaries on demand and memoizes them for
// the lifetime of a view.
package enrich

import (
	"context"
	"log/slog"
	"sync"

	"github.com/hoanghai1803/newshub/internal/models"
)

// Outcome describes what a Request did.
type Outcome int

const (
	// Computed means a new record was computed and stored.
	Computed Outcome = iota
	// Toggled means an existing record had its visibility flipped.
	Toggled
	// InFlight means a computation for the key is already running and the
	// request was ignored.
	InFlight
	// Closed means the cache has been closed.
	Closed
)

func (o Outcome) String() string {
	switch o {
	case Computed:
		return "computed"
	case Toggled:
		return "toggled"
	case InFlight:
		return "in-flight"
	case Closed:
		return "closed"
	}
	return "unknown"
}

// Summarizer produces an enrichment for an article in one of two input
// modes.
type Summarizer interface {
	SummarizeURL(ctx context.Context, articleURL string) (models.Enrichment, error)
	SummarizeText(ctx context.Context, text string) (models.Enrichment, error)
}

// Cache holds at most one record and at most one running computation per
// article key. Records are never refreshed; a second request for a key only
// toggles whether its record is shown.
type Cache struct {
	src Summarizer

	mu       sync.Mutex
	records  map[string]models.Enrichment
	inflight map[string]context.CancelFunc
	closed   bool
}

// New creates an empty cache backed by src.
func New(src Summarizer) *Cache {
	return &Cache{
		src:      src,
		records:  make(map[string]models.Enrichment),
		inflight: make(map[string]context.CancelFunc),
	}
}

// Request shows, hides or computes the enrichment for item. When no record
// exists it blocks until one has been computed and stored. A failure is
// stored as a terminal record so the article is never retried.
func (c *Cache) Request(ctx context.Context, item models.Item) (models.Enrichment, Outcome) {
	key := item.Key
	if key == "" {
		key = models.ItemKey(item.URL, item.Title)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return models.Enrichment{}, Closed
	}
	if rec, ok := c.records[key]; ok {
		rec.Visible = !rec.Visible
		c.records[key] = rec
		c.mu.Unlock()
		return rec, Toggled
	}
	if _, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		return models.Enrichment{InFlight: true}, InFlight
	}
	ctx, cancel := context.WithCancel(ctx)
	c.inflight[key] = cancel
	c.mu.Unlock()

	rec := c.compute(ctx, item)
	cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return models.Enrichment{}, Closed
	}
	delete(c.inflight, key)
	c.records[key] = rec
	return rec, Computed
}

func (c *Cache) compute(ctx context.Context, item models.Item) models.Enrichment {
	var (
		rec models.Enrichment
		err error
	)
	if item.URL != "" {
		rec, err = c.src.SummarizeURL(ctx, item.URL)
		if err != nil && ctx.Err() == nil {
			slog.Warn("url summarization failed, falling back to text",
				"key", item.Key,
				"error", err,
			)
			rec, err = c.src.SummarizeText(ctx, item.SynthesizedText())
		}
	} else {
		rec, err = c.src.SummarizeText(ctx, item.SynthesizedText())
	}

	if err != nil {
		slog.Warn("summarization failed", "key", item.Key, "error", err)
		return models.FailedEnrichment()
	}
	rec.Visible = true
	return rec
}

// Get returns the stored record for key.
func (c *Cache) Get(key string) (models.Enrichment, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.records[key]
	return rec, ok
}

// InFlight reports whether a computation for key is running.
func (c *Cache) InFlight(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.inflight[key]
	return ok
}

// Len returns the number of stored records.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// Close cancels running computations and drops every record. Requests made
// afterwards return Closed.
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cancel := range c.inflight {
		cancel()
	}
	c.closed = true
	c.records = make(map[string]models.Enrichment)
	c.inflight = make(map[string]context.CancelFunc)
}
