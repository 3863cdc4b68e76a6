package server

import (
	"context"
	"fmt"
	"net/url"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"

	"homehub/internal/auth"
	"homehub/internal/config"
	apperrors "homehub/internal/errors"
	"homehub/internal/overview"
)

// --- Mock implementations ---

type mockVerifier struct {
	verifyFn func(ctx context.Context, token string) (*auth.Identity, error)
}

func (m *mockVerifier) Verify(ctx context.Context, token string) (*auth.Identity, error) {
	if m.verifyFn != nil {
		return m.verifyFn(ctx, token)
	}
	return nil, auth.ErrInvalidToken
}

type mockAggregator struct {
	aggregateFn func(ctx context.Context) overview.Overview
}

func (m *mockAggregator) Aggregate(ctx context.Context) overview.Overview {
	if m.aggregateFn != nil {
		return m.aggregateFn(ctx)
	}
	return overview.Overview{Apps: map[string]any{}, Timestamp: 0}
}

type mockReminders struct {
	getFn  func(ctx context.Context, path string, query url.Values, out any) error
	postFn func(ctx context.Context, path string, body any, out any) error
}

func (m *mockReminders) Get(ctx context.Context, path string, query url.Values, out any) error {
	if m.getFn != nil {
		return m.getFn(ctx, path, query, out)
	}
	return fmt.Errorf("not implemented")
}

func (m *mockReminders) Post(ctx context.Context, path string, body any, out any) error {
	if m.postFn != nil {
		return m.postFn(ctx, path, body, out)
	}
	return fmt.Errorf("not implemented")
}

type mockAuthHealth struct {
	pingFn func(ctx context.Context) error
}

func (m *mockAuthHealth) Ping(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

// --- Test helpers ---

func newTestServer(t *testing.T, opts ...func(*Server)) *Server {
	t.Helper()

	e := echo.New()
	// Install error middleware for tests to match production behavior
	e.Use(apperrors.Middleware())

	store := sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!!"))
	store.Options = &sessions.Options{
		Path:   "/",
		MaxAge: 3600,
	}

	clock := clockwork.NewFakeClock()
	srv := &Server{
		echo:         e,
		config:       &config.Config{AuthBaseURL: "http://auth.local", Port: "8080"},
		aggregator:   &mockAggregator{},
		reminders:    &mockReminders{},
		verifier:     &mockVerifier{},
		sessionStore: store,
		clock:        clock,
		startTime:    clock.Now(),
	}

	for _, opt := range opts {
		opt(srv)
	}

	srv.registerRoutes()

	return srv
}

func withVerifier(v auth.Verifier) func(*Server) {
	return func(s *Server) {
		s.verifier = v
	}
}

func withAggregator(a overviewService) func(*Server) {
	return func(s *Server) {
		s.aggregator = a
	}
}

func withReminders(r remindersBackend) func(*Server) {
	return func(s *Server) {
		s.reminders = r
	}
}

func withAuthHealth(hc authHealthChecker) func(*Server) {
	return func(s *Server) {
		s.authHealth = hc
	}
}

// okVerifier accepts the given token and returns a fixed identity.
func okVerifier(token string) *mockVerifier {
	return &mockVerifier{
		verifyFn: func(_ context.Context, t string) (*auth.Identity, error) {
			if t != token {
				return nil, auth.ErrInvalidToken
			}
			return &auth.Identity{Subject: "user-1", Name: "Ada"}, nil
		},
	}
}

// callHandler wraps a handler with error middleware, matching production behavior
func callHandler(handler echo.HandlerFunc, c echo.Context) error {
	return apperrors.Middleware()(handler)(c)
}
