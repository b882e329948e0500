package docsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPWriter posts operations to a remote partial-write endpoint as
// {collectionName, docId, data, isDelete} JSON bodies.
type HTTPWriter struct {
	URL    string
	Client *http.Client
}

// NewHTTPWriter returns a writer targeting the given endpoint URL.
func NewHTTPWriter(url string) *HTTPWriter {
	return &HTTPWriter{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Apply sends one operation. Any non-2xx response is an error.
func (w *HTTPWriter) Apply(ctx context.Context, op Op) error {
	body, err := json.Marshal(op)
	if err != nil {
		return fmt.Errorf("encode op: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	client := w.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("remote store returned status %d", resp.StatusCode)
	}
	return nil
}
