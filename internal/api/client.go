// Package api implements the HTTP client for the backend REST store. The
// server is a black box: one resource per record kind, JSON arrays on the
// wire, nothing beyond the status code consulted on writes.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/finsheet/finsheet/internal/common"
	"github.com/finsheet/finsheet/internal/model"
)

// Default per-call timeouts.
const (
	DefaultFetchTimeout  = 10 * time.Second
	DefaultItemTimeout   = 15 * time.Second
	DefaultSubmitTimeout = 30 * time.Second
)

// Client talks to the backend REST store.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	fetchTimeout  time.Duration
	itemTimeout   time.Duration
	submitTimeout time.Duration
}

// Option adjusts client construction.
type Option func(*Client)

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeouts overrides the per-call timeouts.
func WithTimeouts(fetch, item, submit time.Duration) Option {
	return func(c *Client) {
		c.fetchTimeout = fetch
		c.itemTimeout = item
		c.submitTimeout = submit
	}
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: backend base URL", common.ErrMissingConfig)
	}
	c := &Client{
		httpClient:    &http.Client{},
		baseURL:       strings.TrimRight(baseURL, "/"),
		fetchTimeout:  DefaultFetchTimeout,
		itemTimeout:   DefaultItemTimeout,
		submitTimeout: DefaultSubmitTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchAll retrieves the full collection for a kind.
func (c *Client) FetchAll(ctx context.Context, kind model.Kind) ([]model.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resourceURL(kind), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build fetch request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", kind, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp.StatusCode) {
		return nil, &common.StatusError{Op: "fetch " + string(kind), Status: resp.StatusCode}
	}

	var records []model.Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("fetch %s: decoding response: %w", kind, err)
	}
	return records, nil
}

// CreateItem creates one record and returns the canonical id the backend
// assigned to it.
func (c *Client) CreateItem(ctx context.Context, kind model.Kind, rec model.Record) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.itemTimeout)
	defer cancel()

	body, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("create %s: encoding record: %w", kind, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resourceURL(kind)+"/item", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", kind, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp.StatusCode) {
		return "", &common.StatusError{Op: "create " + string(kind), Status: resp.StatusCode}
	}

	var created model.Record
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("create %s: decoding response: %w", kind, err)
	}
	if created.ID() == "" {
		return "", fmt.Errorf("create %s: backend response carries no id", kind)
	}
	return created.ID(), nil
}

// UpdateItem replaces one record by id with its full current state, so a
// de-synced backend self-heals on the next update.
func (c *Client) UpdateItem(ctx context.Context, kind model.Kind, id string, rec model.Record) error {
	ctx, cancel := context.WithTimeout(ctx, c.itemTimeout)
	defer cancel()

	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("update %s/%s: encoding record: %w", kind, id, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.itemURL(kind, id), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.doExpectSuccess(req, "update "+string(kind))
}

// DeleteItem removes one record by id. The backend may 404 for an id that
// is already gone; the caller treats any failure as non-fatal.
func (c *Client) DeleteItem(ctx context.Context, kind model.Kind, id string) error {
	ctx, cancel := context.WithTimeout(ctx, c.itemTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.itemURL(kind, id), nil)
	if err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}

	return c.doExpectSuccess(req, "delete "+string(kind))
}

// BulkReplace replaces the entire remote collection with records.
func (c *Client) BulkReplace(ctx context.Context, kind model.Kind, records []model.Record) error {
	ctx, cancel := context.WithTimeout(ctx, c.submitTimeout)
	defer cancel()

	if records == nil {
		records = []model.Record{}
	}
	body, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("submit %s: encoding collection: %w", kind, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resourceURL(kind), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build submit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.doExpectSuccess(req, "submit "+string(kind))
}

func (c *Client) doExpectSuccess(req *http.Request, op string) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if !success(resp.StatusCode) {
		return &common.StatusError{Op: op, Status: resp.StatusCode}
	}
	return nil
}

func (c *Client) resourceURL(kind model.Kind) string {
	return c.baseURL + "/" + string(kind)
}

func (c *Client) itemURL(kind model.Kind, id string) string {
	return c.resourceURL(kind) + "/" + id
}

func success(status int) bool {
	return status >= 200 && status < 300
}
