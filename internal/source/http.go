package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultHTTPTimeout bounds a single report download.
const DefaultHTTPTimeout = 30 * time.Second

// HTTP fetches report files from a static web server.
type HTTP struct {
	base    *url.URL
	client  *http.Client
	headers map[string]string
}

// NewHTTP returns a Source that resolves names against baseURL.
// A nil client gets one with DefaultHTTPTimeout.
func NewHTTP(baseURL string, client *http.Client, headers map[string]string) (*HTTP, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing reports URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("reports URL %q must use http or https", baseURL)
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return &HTTP{base: u, client: client, headers: headers}, nil
}

// Fetch issues a GET for name below the base URL.
func (h *HTTP) Fetch(ctx context.Context, name string) ([]byte, error) {
	target := h.base.JoinPath(strings.Split(strings.TrimPrefix(name, "/"), "/")...)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}
	for k, v := range h.headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", target, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	slog.Debug("Fetched report file", "url", target.String(), "status", resp.StatusCode, "duration", time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("fetching %s: unexpected status %s", target, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", target, err)
	}
	return decompress(name, data)
}

func (h *HTTP) String() string {
	return h.base.String()
}

var _ Source = (*HTTP)(nil)
