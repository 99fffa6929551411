// Package health implements the bounded-time backend liveness check that
// gates every remote read and write.
package health

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/finsheet/finsheet/internal/model"
)

// DefaultTimeout bounds a single probe.
const DefaultTimeout = 3 * time.Second

// Probe checks a resource-scoped health endpoint.
type Probe struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
}

// Option adjusts probe construction.
type Option func(*Probe)

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(p *Probe) { p.httpClient = hc }
}

// WithTimeout overrides the probe timeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Probe) { p.timeout = d }
}

// NewProbe creates a probe for the given backend base URL.
func NewProbe(baseURL string, opts ...Option) *Probe {
	p := &Probe{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Available reports whether the backend answers for a kind within the
// probe window. Any transport error, timeout, or non-2xx status means
// unavailable; it never returns an error.
func (p *Probe) Available(ctx context.Context, kind model.Kind) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	url := p.baseURL + "/" + string(kind) + "/health"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		slog.Debug("health probe request build failed", "kind", kind, "error", err)
		return false
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		slog.Debug("health probe failed", "kind", kind, "error", err)
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
