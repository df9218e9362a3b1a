// Package headlines produces top-headline documents for the proxy. Every
// source answers with the same NewsAPI-shaped document so the client never
// needs to know where the headlines came from.
package headlines

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Request holds the recognized headline query options.
type Request struct {
	Country  string
	Category string
	Page     int
	PageSize int
	Query    string
}

// Key returns a stable cache key for r.
func (r Request) Key() string {
	return strings.Join([]string{
		r.Country,
		r.Category,
		strconv.Itoa(r.Page),
		strconv.Itoa(r.PageSize),
		strings.ToLower(strings.TrimSpace(r.Query)),
	}, "|")
}

// Document is a top-headlines response.
type Document struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
}

// Article is one headline as NewsAPI reports it. Nullable fields stay
// pointers so an absent value survives a round trip as null.
type Article struct {
	Source      ArticleSource `json:"source"`
	Author      *string       `json:"author"`
	Title       string        `json:"title"`
	Description *string       `json:"description"`
	URL         string        `json:"url"`
	URLToImage  *string       `json:"urlToImage"`
	PublishedAt string        `json:"publishedAt"`
	Content     *string       `json:"content"`
}

// ArticleSource names the publisher of an article.
type ArticleSource struct {
	ID   *string `json:"id"`
	Name string  `json:"name"`
}

// APIError is returned when the headline provider answers with an
// explicit error document.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("headline provider error: %s", e.Message)
	}
	return fmt.Sprintf("headline provider error (%s): %s", e.Code, e.Message)
}

// Source fetches one page of top headlines.
type Source interface {
	Name() string
	TopHeadlines(ctx context.Context, req Request) (*Document, error)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
