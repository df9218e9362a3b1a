package feed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hoanghai1803/newshub/internal/models"
	"github.com/hoanghai1803/newshub/internal/provider"
)

type fetchCall struct {
	query Query
	page  int
}

type fakeFetcher struct {
	mu    sync.Mutex
	calls []fetchCall
	fn    func(ctx context.Context, q Query, page int) (models.Page, error)
}

func (f *fakeFetcher) FetchPage(ctx context.Context, q Query, page int) (models.Page, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fetchCall{query: q, page: page})
	f.mu.Unlock()
	return f.fn(ctx, q, page)
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestViewLoadAndLoadMore(t *testing.T) {
	f := &fakeFetcher{fn: func(ctx context.Context, q Query, page int) (models.Page, error) {
		return makePage(q.Category, 20, 135, page), nil
	}}
	v := NewView(f)
	ctx := context.Background()

	if err := v.SetCategory(ctx, "Technology"); err != nil {
		t.Fatalf("SetCategory() unexpected error: %v", err)
	}
	s := v.Snapshot()
	if len(s.Items) != 20 || !s.MoreAvailable() || s.Query.Category != "technology" {
		t.Fatalf("after page 1: items=%d more=%v category=%q", len(s.Items), s.MoreAvailable(), s.Query.Category)
	}

	if err := v.LoadMore(ctx); err != nil {
		t.Fatalf("LoadMore() unexpected error: %v", err)
	}
	s = v.Snapshot()
	if len(s.Items) != 40 || s.TotalResults != 135 || !s.MoreAvailable() {
		t.Fatalf("after page 2: items=%d total=%d more=%v", len(s.Items), s.TotalResults, s.MoreAvailable())
	}
	if f.calls[1].page != 2 {
		t.Errorf("second call page = %d, want 2", f.calls[1].page)
	}
}

func TestViewSearchValidation(t *testing.T) {
	f := &fakeFetcher{fn: func(ctx context.Context, q Query, page int) (models.Page, error) {
		return makePage("x", 1, 1, page), nil
	}}
	v := NewView(f)

	err := v.Search(context.Background(), "   ")
	if !provider.IsValidation(err) {
		t.Fatalf("Search(blank) = %v, want validation error", err)
	}
	if f.callCount() != 0 {
		t.Errorf("fetcher called %d times, want 0", f.callCount())
	}

	if err := v.Search(context.Background(), " elections "); err != nil {
		t.Fatalf("Search() unexpected error: %v", err)
	}
	if got := f.calls[0].query; got.Term != "elections" || got.Category != DefaultCategory {
		t.Errorf("query = %+v", got)
	}

	if err := v.ClearSearch(context.Background()); err != nil {
		t.Fatalf("ClearSearch() unexpected error: %v", err)
	}
	if got := f.calls[1].query.Term; got != "" {
		t.Errorf("term after ClearSearch = %q", got)
	}
}

func TestViewLoadMoreWhileBusy(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	f := &fakeFetcher{fn: func(ctx context.Context, q Query, page int) (models.Page, error) {
		if page == 2 {
			started <- struct{}{}
			<-release
		}
		return makePage("p", 10, 100, page), nil
	}}
	v := NewView(f)
	ctx := context.Background()

	if err := v.Refresh(ctx); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() { done <- v.LoadMore(ctx) }()
	<-started

	if err := v.LoadMore(ctx); !errors.Is(err, ErrBusy) {
		t.Errorf("second LoadMore() = %v, want ErrBusy", err)
	}
	if !v.Snapshot().Busy() {
		t.Error("Busy() = false while fetch outstanding")
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("LoadMore() unexpected error: %v", err)
	}
	if got := len(v.Snapshot().Items); got != 20 {
		t.Errorf("len(Items) = %d, want 20", got)
	}
	if f.callCount() != 2 {
		t.Errorf("fetcher called %d times, want 2", f.callCount())
	}
}

func TestViewResetSupersedesInFlightAppend(t *testing.T) {
	started := make(chan struct{}, 1)
	f := &fakeFetcher{fn: func(ctx context.Context, q Query, page int) (models.Page, error) {
		switch {
		case page == 2:
			started <- struct{}{}
			<-ctx.Done()
			// A slow provider may still answer after cancellation.
			return makePage("stale", 10, 100, page), nil
		case q.Term == "":
			return makePage("first", 10, 100, page), nil
		default:
			return makePage("fresh", 5, 5, page), nil
		}
	}}
	v := NewView(f)
	ctx := context.Background()

	if err := v.Refresh(ctx); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() { done <- v.LoadMore(ctx) }()
	<-started

	if err := v.Search(ctx, "go"); err != nil {
		t.Fatalf("Search() unexpected error: %v", err)
	}

	select {
	case err := <-done:
		if !errors.Is(err, ErrSuperseded) {
			t.Errorf("superseded LoadMore() = %v, want ErrSuperseded", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("superseded fetch was not cancelled")
	}

	s := v.Snapshot()
	if len(s.Items) != 5 || s.Items[0].Title != "fresh 0" || s.Status != Loaded {
		t.Errorf("state after supersede: items=%d status=%s", len(s.Items), s.Status)
	}
}

func TestViewFailedResetShowsBanner(t *testing.T) {
	fail := true
	f := &fakeFetcher{fn: func(ctx context.Context, q Query, page int) (models.Page, error) {
		if fail {
			return models.Page{}, &provider.Failure{Class: provider.ClassProtocol, StatusCode: 400, Message: "Your API key is invalid."}
		}
		return makePage("ok", 3, 3, page), nil
	}}
	v := NewView(f)

	if err := v.Refresh(context.Background()); !provider.IsProtocol(err) {
		t.Fatalf("Refresh() = %v, want protocol failure", err)
	}
	s := v.Snapshot()
	if s.Status != Failed || len(s.Items) != 0 || s.Banner() != "Your API key is invalid." {
		t.Errorf("state = status %s items %d banner %q", s.Status, len(s.Items), s.Banner())
	}

	fail = false
	if err := v.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() unexpected error: %v", err)
	}
	if s := v.Snapshot(); s.Banner() != "" || len(s.Items) != 3 {
		t.Errorf("state after recovery = banner %q items %d", s.Banner(), len(s.Items))
	}
}

func TestViewClose(t *testing.T) {
	started := make(chan struct{})
	f := &fakeFetcher{fn: func(ctx context.Context, q Query, page int) (models.Page, error) {
		close(started)
		<-ctx.Done()
		return models.Page{}, ctx.Err()
	}}
	v := NewView(f)

	done := make(chan error, 1)
	go func() { done <- v.Refresh(context.Background()) }()
	<-started
	v.Close()

	select {
	case err := <-done:
		if !errors.Is(err, ErrSuperseded) {
			t.Errorf("Refresh() after Close = %v, want ErrSuperseded", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not cancel the in-flight fetch")
	}

	if err := v.Refresh(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("Refresh() on closed view = %v, want ErrClosed", err)
	}
	if s := v.Snapshot(); len(s.Items) != 0 || s.Status != Idle {
		t.Errorf("closed view state = %+v", s)
	}
}

type fakeNewsClient struct {
	got provider.NewsQuery
	raw string
	err error
}

func (c *fakeNewsClient) News(ctx context.Context, q provider.NewsQuery) ([]byte, error) {
	c.got = q
	return []byte(c.raw), c.err
}

func TestNewsSource(t *testing.T) {
	c := &fakeNewsClient{raw: `{"status":"ok","totalResults":2,"articles":[{"title":"A"},{"title":"B","url":"https://b"}]}`}
	src := NewsSource{Client: c, Country: "us", PageSize: 20}

	page, err := src.FetchPage(context.Background(), Query{Category: "science", Term: "mars"}, 3)
	if err != nil {
		t.Fatalf("FetchPage() unexpected error: %v", err)
	}
	want := provider.NewsQuery{Country: "us", Category: "science", Page: 3, PageSize: 20, Query: "mars"}
	if c.got != want {
		t.Errorf("query = %+v, want %+v", c.got, want)
	}
	if page.Index != 3 || len(page.Items) != 2 || page.Items[1].Key != "https://b" {
		t.Errorf("page = %+v", page)
	}

	c.err = &provider.Failure{Class: provider.ClassTransport}
	if _, err := src.FetchPage(context.Background(), Query{}, 1); !provider.IsTransport(err) {
		t.Errorf("FetchPage() = %v, want transport failure", err)
	}
}
