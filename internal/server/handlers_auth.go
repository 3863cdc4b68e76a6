package server

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"homehub/internal/auth"
	apperrors "homehub/internal/errors"
)

// Session keys
const (
	sessionName     = "homehub-session"
	sessionKeyToken = "token"
	authTimeout     = 10 * time.Second
)

var errNoCredential = errors.New("no credential presented")

// requireAPIAuth protects API routes: failures produce a structured 401 with
// the identity provider's login URL.
func (s *Server) requireAPIAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := s.authenticate(c); err != nil {
			return apperrors.UnauthenticatedError("Not authenticated", s.loginURL(""))
		}
		return next(c)
	}
}

// requirePageAuth protects page routes: failures redirect the browser to the
// identity provider's login page with a returnTo back to the requested URL.
func (s *Server) requirePageAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := s.authenticate(c); err != nil {
			return c.Redirect(302, s.loginURL(c.Request().RequestURI))
		}
		return next(c)
	}
}

// authenticate extracts a bearer token, verifies it against the identity
// provider, and attaches the identity to the request on success.
func (s *Server) authenticate(c echo.Context) error {
	token, fromQuery := s.extractToken(c)
	if token == "" {
		return errNoCredential
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), authTimeout)
	defer cancel()

	identity, err := s.verifier.Verify(ctx, token)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidToken) {
			slog.ErrorContext(c.Request().Context(), "Token verification failed", "error", err)
		}
		return err
	}

	c.Set("identity", identity)
	c.Set("subject", identity.Subject)

	// A token that arrived in the URL is persisted into the session cookie so
	// later page loads authenticate without it.
	if fromQuery {
		s.saveTokenToSession(c, token)
	}
	return nil
}

// extractToken checks the accepted credential channels in order:
// Authorization header, token query parameter, session cookie.
func (s *Server) extractToken(c echo.Context) (token string, fromQuery bool) {
	if header := c.Request().Header.Get(echo.HeaderAuthorization); header != "" {
		if t, ok := strings.CutPrefix(header, "Bearer "); ok && t != "" {
			return t, false
		}
	}

	if t := c.QueryParam("token"); t != "" {
		return t, true
	}

	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		return "", false
	}
	if t, ok := session.Values[sessionKeyToken].(string); ok {
		return t, false
	}
	return "", false
}

func (s *Server) saveTokenToSession(c echo.Context, token string) {
	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		slog.WarnContext(c.Request().Context(), "Failed to get session for token persist", "error", err)
	}
	session.Values[sessionKeyToken] = token
	if err := session.Save(c.Request(), c.Response().Writer); err != nil {
		slog.WarnContext(c.Request().Context(), "Failed to save session", "error", err)
	}
}

// loginURL builds the identity provider's login URL, optionally carrying the
// originally requested URL so the provider can send the user back.
func (s *Server) loginURL(returnTo string) string {
	base := strings.TrimRight(s.config.AuthBaseURL, "/") + "/login"
	if returnTo == "" {
		return base
	}
	return base + "?returnTo=" + url.QueryEscape(returnTo)
}

func (s *Server) handleLogout(c echo.Context) error {
	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		slog.WarnContext(c.Request().Context(), "Failed to get session during logout", "error", err)
		session, err = s.sessionStore.New(c.Request(), sessionName)
		if err != nil {
			slog.ErrorContext(c.Request().Context(), "Failed to create new session during logout", "error", err)
		}
	}
	session.Options.MaxAge = -1

	if err := session.Save(c.Request(), c.Response().Writer); err != nil {
		slog.ErrorContext(c.Request().Context(), "Failed to save logout session", "error", err)
		return apperrors.InternalError("Failed to logout", err)
	}

	return c.Redirect(302, s.loginURL(""))
}
