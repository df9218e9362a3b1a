package models

import "time"

// Fallback display values for article fields the headline provider omits.
const (
	DefaultTitle       = "No Title Available"
	DefaultDescription = "No Description Available"
	DefaultAuthor      = "Unknown"
	DefaultSourceName  = "Unknown Source"
)

// Item is one displayable news article.
type Item struct {
	Key         string     `json:"key"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	URL         string     `json:"url,omitempty"`
	ImageURL    *string    `json:"image_url"`
	PublishedAt *time.Time `json:"published_at"`
	Author      string     `json:"author"`
	Source      string     `json:"source"`
}

// ItemKey returns the identity key for an article: its URL, or its title when
// the URL is empty. Keys are not guaranteed unique.
func ItemKey(url, title string) string {
	if url != "" {
		return url
	}
	return title
}

// SynthesizedText builds the text-mode summarization input from the title and
// description. A description that was missing upstream contributes nothing.
func (it Item) SynthesizedText() string {
	desc := it.Description
	if desc == DefaultDescription {
		desc = ""
	}
	return it.Title + ". " + desc
}

// Page is the result of one headline fetch.
type Page struct {
	Items        []Item `json:"articles"`
	TotalResults int    `json:"total_results"`
	Index        int    `json:"page"`
}
