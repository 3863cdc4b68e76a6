package server

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/sessions"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"homehub/internal/auth"
	"homehub/internal/config"
	apperrors "homehub/internal/errors"
	"homehub/internal/overview"
	"homehub/internal/requestid"
)

const sessionMaxAgeDays = 7

// overviewService aggregates backend summaries for the dashboard.
type overviewService interface {
	Aggregate(ctx context.Context) overview.Overview
}

// remindersBackend is the subset of the upstream client the proxy endpoints use.
type remindersBackend interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body any, out any) error
}

// authHealthChecker reports whether the identity provider is reachable.
type authHealthChecker interface {
	Ping(ctx context.Context) error
}

type Server struct {
	echo         *echo.Echo
	config       *config.Config
	aggregator   overviewService
	reminders    remindersBackend
	verifier     auth.Verifier
	authHealth   authHealthChecker
	sessionStore *sessions.CookieStore
	clock        clockwork.Clock
	startTime    time.Time
}

func NewServer(cfg *config.Config, aggregator overviewService, reminders remindersBackend, verifier auth.Verifier, clock clockwork.Clock) (*Server, error) {
	if reminders == nil {
		return nil, fmt.Errorf("reminders backend client is required")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(requestIDMiddleware)
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(apperrors.Middleware())

	// Session store
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * sessionMaxAgeDays,
		HttpOnly: true,
		Secure:   cfg.AppEnv == "production",
		SameSite: http.SameSiteLaxMode,
	}

	srv := &Server{
		echo:         e,
		config:       cfg,
		aggregator:   aggregator,
		reminders:    reminders,
		verifier:     verifier,
		sessionStore: sessionStore,
		clock:        clock,
		startTime:    clock.Now(),
	}

	if hc, ok := verifier.(authHealthChecker); ok {
		srv.authHealth = hc
	}

	srv.registerRoutes()

	return srv, nil
}

// requestIDMiddleware assigns every request an ID, propagated via context and
// echoed back in the X-Request-Id header.
func requestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Request().Header.Get(echo.HeaderXRequestID)
		if id == "" {
			id = requestid.NewID()
		}
		ctx := requestid.WithID(c.Request().Context(), id)
		c.SetRequest(c.Request().WithContext(ctx))
		c.Response().Header().Set(echo.HeaderXRequestID, id)
		return next(c)
	}
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
