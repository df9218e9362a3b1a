package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hoanghai1803/newshub/internal/provider"
)

// BiasService is the subset of the provider client the bias endpoints
// forward to.
type BiasService interface {
	BiasText(ctx context.Context, text string) ([]byte, error)
	BiasURL(ctx context.Context, articleURL string) ([]byte, error)
	BiasModelStatus(ctx context.Context) ([]byte, error)
}

// CheckBias handles POST /api/bias/check with body {text}.
func CheckBias(svc BiasService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text string `json:"text"`
		}
		if err := decodeBody(r, &req); err != nil || strings.TrimSpace(req.Text) == "" {
			writeError(w, http.StatusBadRequest, "Text is required")
			return
		}

		body, err := svc.BiasText(r.Context(), req.Text)
		forward(w, body, err, "Failed to check bias")
	}
}

// CheckBiasURL handles POST /api/bias/check-url with body {url}.
func CheckBiasURL(svc BiasService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			URL string `json:"url"`
		}
		if err := decodeBody(r, &req); err != nil || strings.TrimSpace(req.URL) == "" {
			writeError(w, http.StatusBadRequest, "URL is required")
			return
		}

		body, err := svc.BiasURL(r.Context(), strings.TrimSpace(req.URL))
		forward(w, body, err, "Failed to check bias from URL")
	}
}

// BiasModelStatus handles GET /api/bias/model/status.
func BiasModelStatus(svc BiasService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := svc.BiasModelStatus(r.Context())
		forward(w, body, err, "Failed to get bias model status")
	}
}

// forward relays an upstream answer. Upstream error statuses are mirrored
// with the upstream message when it has one; anything else becomes a 500
// carrying the failure reason.
func forward(w http.ResponseWriter, body []byte, err error, fallback string) {
	if err == nil {
		writeRaw(w, http.StatusOK, body)
		return
	}

	var f *provider.Failure
	if errors.As(err, &f) && f.Class == provider.ClassProtocol && f.StatusCode >= 400 {
		msg := f.Message
		if msg == "" {
			msg = fallback
		}
		writeError(w, f.StatusCode, msg)
		return
	}

	slog.Error("bias service call failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   fallback,
		"message": err.Error(),
	})
}
