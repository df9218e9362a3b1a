// Package health probes the collaborating services concurrently.
package health

import (
	"context"
	"log/slog"

	"github.com/hoanghai1803/newshub/internal/models"
	"github.com/hoanghai1803/newshub/internal/normalize"
	"github.com/hoanghai1803/newshub/internal/provider"
	"golang.org/x/sync/errgroup"
)

// Prober calls a service's health endpoint.
type Prober interface {
	Health(ctx context.Context, service provider.Service) ([]byte, error)
}

// Check probes every service in parallel and returns one report per service
// in the order given. A service that cannot be reached, or that answers with
// an error, is reported with status "down" and the user-facing reason.
func Check(ctx context.Context, p Prober, services []provider.Service) []models.Health {
	reports := make([]models.Health, len(services))

	g, gctx := errgroup.WithContext(ctx)
	for i, svc := range services {
		g.Go(func() error {
			reports[i] = probe(gctx, p, svc)
			return nil
		})
	}
	g.Wait() //nolint:errcheck // probes never fail the group

	return reports
}

func probe(ctx context.Context, p Prober, svc provider.Service) models.Health {
	raw, err := p.Health(ctx, svc)
	if err != nil {
		slog.Debug("health probe failed", "service", svc, "error", err)
		return models.Health{Service: string(svc), Status: "down", Error: provider.UserMessage(err)}
	}
	report, err := normalize.Health(raw, string(svc))
	if err != nil {
		report.Error = provider.UserMessage(err)
	}
	return report
}

// AllUp reports whether every report is healthy.
func AllUp(reports []models.Health) bool {
	for _, r := range reports {
		if !r.Up() {
			return false
		}
	}
	return true
}
