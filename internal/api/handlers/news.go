package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hoanghai1803/newshub/internal/headlines"
)

const maxPageSize = 100

// GetNews handles GET /api/news. It returns one page of top headlines from
// the configured source. Defaults: country=us, category=general, page=1,
// pageSize=8.
func GetNews(source headlines.Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := headlines.Request{
			Country:  queryString(r, "country", "us"),
			Category: queryString(r, "category", "general"),
			Page:     queryInt(r, "page", 1),
			PageSize: min(queryInt(r, "pageSize", 8), maxPageSize),
			Query:    queryString(r, "q", ""),
		}

		doc, err := source.TopHeadlines(r.Context(), req)
		if err != nil {
			var apiErr *headlines.APIError
			if errors.As(err, &apiErr) {
				slog.Warn("headline provider rejected request", "source", source.Name(), "code", apiErr.Code, "error", apiErr.Message)
				writeError(w, http.StatusBadRequest, apiErr.Message)
				return
			}
			slog.Error("failed to fetch news", "source", source.Name(), "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to fetch news")
			return
		}

		writeJSON(w, http.StatusOK, doc)
	}
}
