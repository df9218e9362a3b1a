package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/hoanghai1803/newshub/internal/ai"
	"github.com/hoanghai1803/newshub/internal/api/handlers"
	"github.com/hoanghai1803/newshub/internal/headlines"
	"github.com/hoanghai1803/newshub/internal/health"
)

// Deps are the collaborators the proxy routes call into.
type Deps struct {
	Headlines headlines.Source
	AI        ai.Provider // nil when no API key is configured
	Extractor handlers.ArticleExtractor
	Bias      handlers.BiasService
	Prober    health.Prober
}

// NewRouter creates and configures the HTTP router with all proxy routes.
func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(RequestID)
	r.Use(RequestLogger)
	r.Use(Recovery)
	r.Use(CORS)

	r.Get("/health", handlers.Health())

	// API sub-router.
	r.Route("/api", func(api chi.Router) {
		api.Get("/news", handlers.GetNews(d.Headlines))

		api.Post("/gemini/summarize", handlers.Summarize(d.AI, d.Extractor))

		api.Post("/bias/check", handlers.CheckBias(d.Bias))
		api.Post("/bias/check-url", handlers.CheckBiasURL(d.Bias))
		api.Get("/bias/model/status", handlers.BiasModelStatus(d.Bias))

		api.Get("/health/services", handlers.ServicesHealth(d.Prober))
	})

	return r
}
