// Package auth validates bearer tokens against the external identity provider.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"homehub/internal/metrics"
)

// ErrInvalidToken marks a credential the identity provider rejected.
var ErrInvalidToken = errors.New("invalid token")

const verifyTimeout = 10 * time.Second

// Identity is the verified user behind a request. Created per request,
// attached to the request context, never persisted.
type Identity struct {
	Subject string
	Name    string
	Email   string
}

// Verifier validates a bearer token and returns the identity behind it.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// HTTPVerifier validates tokens remotely by calling the identity provider's
// verification endpoint and trusting its response.
type HTTPVerifier struct {
	baseURL string
	http    *http.Client
	group   singleflight.Group
}

// NewHTTPVerifier creates a verifier against the given identity provider base URL.
func NewHTTPVerifier(baseURL string) *HTTPVerifier {
	return &HTTPVerifier{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: verifyTimeout},
	}
}

// Verify checks the token against the identity provider. Concurrent
// verifications of the same token are collapsed into one upstream call.
func (v *HTTPVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	val, err, _ := v.group.Do(token, func() (any, error) {
		return v.verify(ctx, token)
	})
	if err != nil {
		return nil, err
	}
	return val.(*Identity), nil
}

func (v *HTTPVerifier) verify(ctx context.Context, token string) (*Identity, error) {
	target := v.baseURL + "/api/verify?token=" + url.QueryEscape(token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create verify request: %w", err)
	}

	resp, err := v.http.Do(req)
	if err != nil {
		metrics.AuthVerificationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		metrics.AuthVerificationsTotal.WithLabelValues("invalid").Inc()
		return nil, ErrInvalidToken
	case resp.StatusCode != http.StatusOK:
		metrics.AuthVerificationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	var verifyResp struct {
		Valid bool `json:"valid"`
		User  struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&verifyResp); err != nil {
		metrics.AuthVerificationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to decode verify response: %w", err)
	}

	if !verifyResp.Valid || verifyResp.User.ID == "" {
		metrics.AuthVerificationsTotal.WithLabelValues("invalid").Inc()
		return nil, ErrInvalidToken
	}

	metrics.AuthVerificationsTotal.WithLabelValues("ok").Inc()
	return &Identity{
		Subject: verifyResp.User.ID,
		Name:    verifyResp.User.Name,
		Email:   verifyResp.User.Email,
	}, nil
}

// Ping reports whether the identity provider is reachable. Any HTTP response
// counts; only transport errors fail the check.
func (v *HTTPVerifier) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("failed to create ping request: %w", err)
	}
	resp, err := v.http.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider unreachable: %w", err)
	}
	return resp.Body.Close()
}
