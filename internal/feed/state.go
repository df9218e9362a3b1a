// Package feed accumulates paginated headline results for one view.
//
// State holds the aggregate collection and exposes pure transitions. Every
// transition that needs a fetch hands out a Token; only the most recently
// issued token may be applied, so a page that arrives after a newer reset or
// append is discarded instead of being merged.
package feed

import (
	"errors"
	"slices"

	"github.com/hoanghai1803/newshub/internal/models"
	"github.com/hoanghai1803/newshub/internal/provider"
)

var (
	// ErrBusy is returned when a load-more is requested while a fetch is
	// outstanding.
	ErrBusy = errors.New("feed: fetch already in flight")
	// ErrNotLoaded is returned when a load-more is requested before a
	// first page has been applied.
	ErrNotLoaded = errors.New("feed: no page loaded yet")
	// ErrNoMore is returned when every available result is already in the
	// collection.
	ErrNoMore = errors.New("feed: no more results")
)

// Status is the lifecycle state of a view's collection.
type Status int

const (
	Idle Status = iota
	Loading
	Loaded
	LoadingMore
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case LoadingMore:
		return "loading-more"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Query selects which headlines a view shows.
type Query struct {
	Category string
	Term     string
}

// Token identifies one issued fetch.
type Token struct {
	Seq   uint64
	Page  int
	Reset bool
}

// State is the aggregate collection of one view. The zero value is Idle.
type State struct {
	Query        Query
	Items        []models.Item
	TotalResults int
	// Page is the index of the last page merged into Items.
	Page   int
	Status Status
	// Err is the failure of the last fetch, shown as a banner.
	Err error

	seq uint64
}

// Reset discards the collection and total and issues a fetch for page 1 of q.
func (s State) Reset(q Query) (State, Token) {
	s.seq++
	s.Query = q
	s.Items = nil
	s.TotalResults = 0
	s.Page = 0
	s.Status = Loading
	s.Err = nil
	return s, Token{Seq: s.seq, Page: 1, Reset: true}
}

// Append issues a fetch for the page after the last merged one.
func (s State) Append() (State, Token, error) {
	if s.Busy() {
		return s, Token{}, ErrBusy
	}
	if s.Page == 0 {
		return s, Token{}, ErrNotLoaded
	}
	if !s.MoreAvailable() {
		return s, Token{}, ErrNoMore
	}
	s.seq++
	s.Status = LoadingMore
	s.Err = nil
	return s, Token{Seq: s.seq, Page: s.Page + 1}, nil
}

// Apply merges page fetched under tok. A reset page replaces the collection
// and an append page is concatenated in arrival order without
// de-duplication. The page's total replaces the previous one. It reports
// false, leaving s unchanged, when tok is stale.
func (s State) Apply(tok Token, page models.Page) (State, bool) {
	if tok.Seq != s.seq || !s.Busy() {
		return s, false
	}
	if tok.Reset {
		s.Items = slices.Clone(page.Items)
	} else {
		items := make([]models.Item, 0, len(s.Items)+len(page.Items))
		items = append(items, s.Items...)
		s.Items = append(items, page.Items...)
	}
	s.TotalResults = page.TotalResults
	s.Page = tok.Page
	s.Status = Loaded
	s.Err = nil
	return s, true
}

// Fail records err for the fetch issued under tok. A failed reset leaves
// the collection empty; a failed append keeps what was already loaded. It
// reports false, leaving s unchanged, when tok is stale.
func (s State) Fail(tok Token, err error) (State, bool) {
	if tok.Seq != s.seq || !s.Busy() {
		return s, false
	}
	if tok.Reset {
		s.Items = nil
		s.TotalResults = 0
		s.Page = 0
	}
	s.Status = Failed
	s.Err = err
	return s, true
}

// MoreAvailable reports whether the provider holds results beyond the
// collection, using the most recently reported total.
func (s State) MoreAvailable() bool {
	return len(s.Items) < s.TotalResults
}

// Busy reports whether a fetch is outstanding.
func (s State) Busy() bool {
	return s.Status == Loading || s.Status == LoadingMore
}

// Banner is the user-visible text for the last failure, or "".
func (s State) Banner() string {
	if s.Err == nil {
		return ""
	}
	if provider.ClassOf(s.Err) == "" {
		return "Failed to fetch news. Please try again later."
	}
	return provider.UserMessage(s.Err)
}
