package normalize

import (
	"time"

	"github.com/hoanghai1803/newshub/internal/models"
	"github.com/hoanghai1803/newshub/internal/provider"
)

// NewsPage maps a headlines payload to page index. A payload whose status is
// "error" is the provider refusing the request and becomes a protocol
// failure carrying the provider message.
func NewsPage(raw []byte, index int) (models.Page, error) {
	o, err := decode(raw, "news")
	if err != nil {
		return models.Page{}, err
	}

	if status, _ := o.str("status"); status == "error" {
		return models.Page{}, &provider.Failure{
			Class:     provider.ClassProtocol,
			Service:   string(provider.ServiceNews),
			Operation: "news",
			Message:   o.strOr("message", "Failed to fetch news"),
		}
	}

	articles := o.list("articles")
	page := models.Page{
		Items:        make([]models.Item, 0, len(articles)),
		TotalResults: o.intOr("totalResults", 0),
		Index:        index,
	}
	for _, a := range articles {
		page.Items = append(page.Items, newsItem(a))
	}
	return page, nil
}

func newsItem(a object) models.Item {
	it := models.Item{
		Title:       a.strOr("title", models.DefaultTitle),
		Description: a.strOr("description", models.DefaultDescription),
		Author:      a.strOr("author", models.DefaultAuthor),
		Source:      models.DefaultSourceName,
	}
	it.URL, _ = a.str("url")
	it.Key = models.ItemKey(it.URL, it.Title)

	if img, ok := a.str("urlToImage"); ok {
		it.ImageURL = &img
	}
	if ts, ok := a.str("publishedAt"); ok {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			it.PublishedAt = &t
		}
	}
	if src, ok := a.obj("source"); ok {
		it.Source = src.strOr("name", models.DefaultSourceName)
	}
	return it
}
