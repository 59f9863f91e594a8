// Package provider implements the search, registry, feed and directory
// adapters behind the discovery pipeline. Every adapter normalizes its
// source's response shape into discovery.SearchHit and converts its own
// failures into errors; the pipeline treats those as empty result sets.
package provider

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 12 * time.Second

// maxBodyBytes bounds provider response reads.
const maxBodyBytes = 4 << 20

func newClient(timeout time.Duration) *http.Client {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// doJSON executes the request and decodes a JSON body into out,
// treating any non-2xx status as an error.
func doJSON(client *http.Client, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
