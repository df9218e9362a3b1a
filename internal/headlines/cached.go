package headlines

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hoanghai1803/newshub/internal/cache"
	"golang.org/x/sync/singleflight"
)

// sharedFetchTimeout bounds an upstream call shared by collapsed requests.
// The call is detached from every caller, so a caller that goes away only
// stops waiting for it.
const sharedFetchTimeout = 30 * time.Second

// Cached wraps a Source with a response cache. Concurrent identical requests
// share one upstream call, and only successful documents are stored.
type Cached struct {
	source Source
	store  cache.Cache
	ttl    time.Duration
	group  singleflight.Group
}

// NewCached wraps source. A non-positive ttl disables storage but still
// collapses concurrent identical requests.
func NewCached(source Source, store cache.Cache, ttl time.Duration) *Cached {
	return &Cached{source: source, store: store, ttl: ttl}
}

func (c *Cached) Name() string { return c.source.Name() }

func (c *Cached) TopHeadlines(ctx context.Context, req Request) (*Document, error) {
	key := "headlines:" + c.source.Name() + ":" + req.Key()

	if c.ttl > 0 {
		var doc Document
		err := cache.GetJSON(ctx, c.store, key, &doc)
		if err == nil {
			slog.Debug("headline cache hit", "key", key)
			return &doc, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			slog.Warn("headline cache read failed", "key", key, "error", err)
		}
	}

	ch := c.group.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedFetchTimeout)
		defer cancel()

		doc, err := c.source.TopHeadlines(fetchCtx, req)
		if err != nil {
			return nil, err
		}
		if c.ttl > 0 {
			if err := cache.SetJSON(fetchCtx, c.store, key, doc, c.ttl); err != nil {
				slog.Warn("headline cache write failed", "key", key, "error", err)
			}
		}
		return doc, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			slog.Debug("headline request shared", "key", key)
		}
		return res.Val.(*Document), nil
	}
}
