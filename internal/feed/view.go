package feed

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/hoanghai1803/newshub/internal/models"
	"github.com/hoanghai1803/newshub/internal/normalize"
	"github.com/hoanghai1803/newshub/internal/provider"
)

var (
	// ErrSuperseded is returned by a fetch whose result was discarded because
	// a newer reset or append was issued while it was in flight.
	ErrSuperseded = errors.New("feed: fetch superseded")
	// ErrClosed is returned once the view has been closed.
	ErrClosed = errors.New("feed: view closed")
)

// DefaultCategory is the category a view starts with.
const DefaultCategory = "general"

// PageFetcher loads one page of headlines for a query.
type PageFetcher interface {
	FetchPage(ctx context.Context, q Query, page int) (models.Page, error)
}

// NewsClient is the part of the provider client a NewsSource needs.
type NewsClient interface {
	News(ctx context.Context, q provider.NewsQuery) ([]byte, error)
}

// NewsSource fetches headline pages through the news proxy and normalizes
// them.
type NewsSource struct {
	Client   NewsClient
	Country  string
	PageSize int
}

// FetchPage implements PageFetcher.
func (s NewsSource) FetchPage(ctx context.Context, q Query, page int) (models.Page, error) {
	raw, err := s.Client.News(ctx, provider.NewsQuery{
		Country:  s.Country,
		Category: q.Category,
		Page:     page,
		PageSize: s.PageSize,
		Query:    q.Term,
	})
	if err != nil {
		return models.Page{}, err
	}
	return normalize.NewsPage(raw, page)
}

// View drives one State against a PageFetcher. It is safe for concurrent
// use: a reset cancels whatever fetch it supersedes, and a load-more is
// refused while any fetch is outstanding.
type View struct {
	fetcher PageFetcher

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
	closed bool
}

// NewView creates an idle view on the default category.
func NewView(fetcher PageFetcher) *View {
	return &View{
		fetcher: fetcher,
		state:   State{Query: Query{Category: DefaultCategory}},
	}
}

// Snapshot returns a copy of the current state.
func (v *View) Snapshot() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := v.state
	s.Items = append([]models.Item(nil), v.state.Items...)
	return s
}

// Refresh reloads page 1 of the current query.
func (v *View) Refresh(ctx context.Context) error {
	v.mu.Lock()
	q := v.state.Query
	v.mu.Unlock()
	return v.reset(ctx, q)
}

// Search resets the view to the given search term within the current
// category. An empty term is rejected before any request is made.
func (v *View) Search(ctx context.Context, term string) error {
	term = strings.TrimSpace(term)
	if term == "" {
		return provider.Validation("q", "Please enter a search term.")
	}
	v.mu.Lock()
	q := v.state.Query
	v.mu.Unlock()
	q.Term = term
	return v.reset(ctx, q)
}

// ClearSearch resets the view to the current category without a term.
func (v *View) ClearSearch(ctx context.Context) error {
	v.mu.Lock()
	q := v.state.Query
	v.mu.Unlock()
	q.Term = ""
	return v.reset(ctx, q)
}

// SetCategory resets the view to category, keeping the search term.
func (v *View) SetCategory(ctx context.Context, category string) error {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		category = DefaultCategory
	}
	v.mu.Lock()
	q := v.state.Query
	v.mu.Unlock()
	q.Category = category
	return v.reset(ctx, q)
}

// LoadMore fetches the next page and appends it.
func (v *View) LoadMore(ctx context.Context) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrClosed
	}
	next, tok, err := v.state.Append()
	if err != nil {
		v.mu.Unlock()
		return err
	}
	ctx = v.begin(ctx, next)
	q := next.Query
	v.mu.Unlock()

	return v.fetch(ctx, q, tok)
}

// Close cancels any outstanding fetch and drops the collection. Results
// that arrive afterwards are discarded.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.closed = true
	v.state = State{seq: v.state.seq}
}

func (v *View) reset(ctx context.Context, q Query) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrClosed
	}
	next, tok := v.state.Reset(q)
	ctx = v.begin(ctx, next)
	v.mu.Unlock()

	return v.fetch(ctx, q, tok)
}

// begin installs next as the current state and cancels the fetch it
// supersedes. v.mu must be held.
func (v *View) begin(ctx context.Context, next State) context.Context {
	if v.cancel != nil {
		v.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.state = next
	return ctx
}

func (v *View) fetch(ctx context.Context, q Query, tok Token) error {
	page, err := v.fetcher.FetchPage(ctx, q, tok.Page)

	v.mu.Lock()
	defer v.mu.Unlock()

	if err != nil {
		next, ok := v.state.Fail(tok, err)
		if !ok {
			return ErrSuperseded
		}
		v.state = next
		v.release()
		slog.Warn("headline fetch failed",
			"category", q.Category,
			"term", q.Term,
			"page", tok.Page,
			"error", err,
		)
		return err
	}

	next, ok := v.state.Apply(tok, page)
	if !ok {
		return ErrSuperseded
	}
	v.state = next
	v.release()
	slog.Debug("headline page merged",
		"category", q.Category,
		"page", tok.Page,
		"items", len(page.Items),
		"total", next.TotalResults,
	)
	return nil
}

// release drops the cancel func of the fetch that just completed. v.mu must
// be held.
func (v *View) release() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}
