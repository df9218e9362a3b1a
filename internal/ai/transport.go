package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// maxResponseBytes caps how much of a provider answer is read.
const maxResponseBytes = 4 << 20

// errorEnvelope is the {"error": {"message": ...}} body all three APIs use
// for failures.
type errorEnvelope struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// postJSON sends payload as JSON to endpoint and decodes a 200 answer into
// out. An error envelope or any other status becomes an *APIError for
// provider.
func postJSON(ctx context.Context, client *http.Client, provider, endpoint string, header http.Header, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	slog.Debug("provider answered", "provider", provider, "status", resp.StatusCode, "bytes", len(respBody))

	var env errorEnvelope
	if json.Unmarshal(respBody, &env) == nil && env.Error != nil {
		return &APIError{Provider: provider, StatusCode: resp.StatusCode, Message: env.Error.Message}
	}
	if resp.StatusCode != http.StatusOK {
		return &APIError{Provider: provider, StatusCode: resp.StatusCode}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}
