// Package upstream performs authenticated HTTP calls against backend services.
//
// Every call carries the backend's shared secret as a "secret" query parameter;
// that is the authentication convention the backends expect, header auth is not
// supported by them.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"homehub/internal/backend"
	"homehub/internal/metrics"
)

// ErrUnavailable marks a backend call that failed: network error, non-2xx
// status, or an unparseable response. Callers decide whether that downgrades
// to an error slot (aggregation) or surfaces as a 502 (proxy writes).
var ErrUnavailable = errors.New("upstream unavailable")

const defaultTimeout = 10 * time.Second

// Client performs authenticated calls against one backend.
type Client struct {
	backend backend.Descriptor
	http    *http.Client
}

// NewClient creates a client for the given backend descriptor.
func NewClient(d backend.Descriptor) *Client {
	return &Client{
		backend: d,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// Backend returns the descriptor this client talks to.
func (c *Client) Backend() backend.Descriptor {
	return c.backend
}

// Get issues an authenticated GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues an authenticated POST with a JSON body and decodes the JSON
// response into out.
func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := strings.TrimRight(c.backend.BaseURL, "/") + path

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	q := url.Values{}
	for key, values := range query {
		q[key] = values
	}
	q.Set("secret", c.backend.Secret)
	req.URL.RawQuery = q.Encode()

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(c.backend.Key).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(c.backend.Key, "error").Inc()
		return c.unavailable(method, path, err)
	}
	defer resp.Body.Close()

	metrics.UpstreamRequestsTotal.WithLabelValues(c.backend.Key, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.unavailable(method, path, fmt.Errorf("status %d", resp.StatusCode))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return c.unavailable(method, path, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func (c *Client) unavailable(method, path string, cause error) error {
	return fmt.Errorf("backend %s: %s %s: %w: %v", c.backend.Key, method, path, ErrUnavailable, cause)
}
