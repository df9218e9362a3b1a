package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hoanghai1803/newshub/internal/ai"
	"github.com/hoanghai1803/newshub/internal/api"
	"github.com/hoanghai1803/newshub/internal/cache"
	"github.com/hoanghai1803/newshub/internal/config"
	"github.com/hoanghai1803/newshub/internal/headlines"
	"github.com/hoanghai1803/newshub/internal/logging"
	"github.com/hoanghai1803/newshub/internal/provider"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	// Load configuration (auto-creates default if missing).
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openCache(ctx, cfg.Cache)
	if err != nil {
		slog.Error("failed to open cache", "type", cfg.Cache.Type, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// Pick the headline source and put the response cache in front of it.
	var source headlines.Source
	switch cfg.Headlines.Source {
	case "rss":
		source = headlines.NewRSS(cfg.Headlines.Feeds)
	default:
		source = headlines.NewNewsAPI(cfg.Headlines.APIKey, cfg.Headlines.BaseURL, cfg.Headlines.RequestsPerMinute)
	}
	ttl := time.Duration(cfg.Headlines.CacheTTLSeconds) * time.Second
	source = headlines.NewCached(source, store, ttl)
	slog.Info("headline source configured", "source", source.Name(), "cache", cfg.Cache.Type, "ttl", ttl.String())

	deps := api.Deps{
		Headlines: source,
		Extractor: headlines.NewExtractor(),
	}

	// The AI provider stays nil without an API key; the summarize route
	// answers 503 in that case.
	if cfg.AI.APIKey != "" {
		deps.AI, err = ai.NewProvider(ai.ProviderConfig{
			Provider: cfg.AI.Provider,
			APIKey:   cfg.AI.APIKey,
			Model:    cfg.AI.Model,
		})
		if err != nil {
			slog.Error("failed to create AI provider", "error", err)
			os.Exit(1)
		}
		slog.Info("AI provider configured", "provider", cfg.AI.Provider, "model", cfg.AI.Model)
	} else {
		slog.Warn("no AI provider API key configured, summarization will be disabled")
	}

	upstream := provider.NewClient(provider.Endpoints{
		FactCheck:  cfg.Upstream.FactCheckURL,
		Bias:       cfg.Upstream.BiasURL,
		Summarizer: cfg.Upstream.SummarizerURL,
	})
	deps.Bias = upstream
	deps.Prober = upstream

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "addr", "http://"+addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openCache builds the headline response cache named by cfg.Type.
func openCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	if cfg.Type == "redis" {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return cache.NewRedis(pingCtx, cfg.RedisAddress, cfg.RedisPassword, cfg.RedisDB, "newshub")
	}
	return cache.NewMemory(5*time.Minute, 10*time.Minute), nil
}
