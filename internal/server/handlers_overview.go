package server

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// handleOverview returns the aggregated dashboard payload. The aggregator
// never fails once auth has passed; failing backends appear as error slots.
func (s *Server) handleOverview(c echo.Context) error {
	ov := s.aggregator.Aggregate(c.Request().Context())
	if err := c.JSON(200, ov); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

// handleIndex serves the dashboard page shell.
func (s *Server) handleIndex(c echo.Context) error {
	return c.File("web/index.html")
}
