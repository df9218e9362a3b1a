package headlines

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hoanghai1803/newshub/internal/cache"
)

type fakeSource struct {
	calls atomic.Int32
	fn    func(ctx context.Context, req Request) (*Document, error)
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) TopHeadlines(ctx context.Context, req Request) (*Document, error) {
	f.calls.Add(1)
	return f.fn(ctx, req)
}

func okDoc(title string) *Document {
	return &Document{Status: "ok", TotalResults: 1, Articles: []Article{{Title: title, URL: "https://example.com/" + title}}}
}

func TestCachedStoresSuccess(t *testing.T) {
	src := &fakeSource{fn: func(ctx context.Context, req Request) (*Document, error) {
		return okDoc(req.Category), nil
	}}
	c := NewCached(src, cache.NewMemory(time.Minute, time.Minute), time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		doc, err := c.TopHeadlines(ctx, Request{Category: "science", Page: 1, PageSize: 8})
		if err != nil {
			t.Fatalf("call %d unexpected error: %v", i, err)
		}
		if doc.Articles[0].Title != "science" {
			t.Errorf("call %d title = %q", i, doc.Articles[0].Title)
		}
	}
	if got := src.calls.Load(); got != 1 {
		t.Errorf("upstream calls = %d, want 1", got)
	}

	c.TopHeadlines(ctx, Request{Category: "science", Page: 2, PageSize: 8})
	if got := src.calls.Load(); got != 2 {
		t.Errorf("upstream calls after new page = %d, want 2", got)
	}
	if c.Name() != "fake" {
		t.Errorf("Name() = %q", c.Name())
	}
}

func TestCachedSkipsFailures(t *testing.T) {
	fail := true
	src := &fakeSource{fn: func(ctx context.Context, req Request) (*Document, error) {
		if fail {
			return nil, &APIError{Code: "rateLimited", Message: "slow down"}
		}
		return okDoc("ok"), nil
	}}
	c := NewCached(src, cache.NewMemory(time.Minute, time.Minute), time.Minute)
	ctx := context.Background()

	_, err := c.TopHeadlines(ctx, Request{Category: "general"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError passed through", err)
	}

	fail = false
	if _, err := c.TopHeadlines(ctx, Request{Category: "general"}); err != nil {
		t.Fatalf("retry unexpected error: %v", err)
	}
	if got := src.calls.Load(); got != 2 {
		t.Errorf("upstream calls = %d, want 2", got)
	}
}

func TestCachedDisabledTTL(t *testing.T) {
	src := &fakeSource{fn: func(ctx context.Context, req Request) (*Document, error) {
		return okDoc("x"), nil
	}}
	store := cache.NewMemory(time.Minute, time.Minute)
	c := NewCached(src, store, 0)

	c.TopHeadlines(context.Background(), Request{})
	c.TopHeadlines(context.Background(), Request{})

	if got := src.calls.Load(); got != 2 {
		t.Errorf("upstream calls = %d, want 2", got)
	}
	if store.Len() != 0 {
		t.Errorf("cache entries = %d, want 0", store.Len())
	}
}

func TestCachedCollapsesConcurrentRequests(t *testing.T) {
	release := make(chan struct{})
	src := &fakeSource{fn: func(ctx context.Context, req Request) (*Document, error) {
		<-release
		return okDoc("shared"), nil
	}}
	c := NewCached(src, cache.NewMemory(time.Minute, time.Minute), 0)

	const callers = 5
	var wg sync.WaitGroup
	var started sync.WaitGroup
	errs := make(chan error, callers)
	started.Add(callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			started.Done()
			_, err := c.TopHeadlines(context.Background(), Request{Category: "general"})
			errs <- err
		}()
	}
	started.Wait()
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if got := src.calls.Load(); got >= callers {
		t.Errorf("upstream calls = %d, want fewer than %d", got, callers)
	}
}

func TestCachedCallerCancelDoesNotFailOthers(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	src := &fakeSource{fn: func(ctx context.Context, req Request) (*Document, error) {
		close(entered)
		select {
		case <-release:
			return okDoc("shared"), nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}}
	c := NewCached(src, cache.NewMemory(time.Minute, time.Minute), time.Minute)
	req := Request{Category: "general", Page: 1}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.TopHeadlines(firstCtx, req)
		firstErr <- err
	}()
	<-entered

	secondErr := make(chan error, 1)
	go func() {
		_, err := c.TopHeadlines(context.Background(), req)
		secondErr <- err
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled caller error = %v, want context.Canceled", err)
	}

	close(release)
	select {
	case err := <-secondErr:
		if err != nil {
			t.Fatalf("waiting caller got error %v after another caller cancelled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("waiting caller never returned")
	}

	if got := src.calls.Load(); got != 1 {
		t.Errorf("upstream calls = %d, want 1", got)
	}
	if _, err := c.TopHeadlines(context.Background(), req); err != nil {
		t.Fatalf("cached read unexpected error: %v", err)
	}
	if got := src.calls.Load(); got != 1 {
		t.Errorf("upstream calls after cache hit = %d, want 1", got)
	}
}
