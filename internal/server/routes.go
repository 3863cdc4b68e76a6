package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no auth required)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// Dashboard page (authenticated, redirects to the identity provider)
	s.echo.GET("/", s.handleIndex, s.requirePageAuth)
	s.echo.POST("/auth/logout", s.handleLogout, s.requirePageAuth)

	// Static assets are public
	s.echo.Static("/static", "web/static")

	// API routes (authenticated, structured 401 on failure)
	api := s.echo.Group("/api", s.requireAPIAuth)
	api.GET("/overview", s.handleOverview)
	api.GET("/reminders", s.handleListReminders)
	api.POST("/reminders", s.handleCreateReminder)
	api.POST("/reminders/:id/complete", s.handleToggleReminder)
}
