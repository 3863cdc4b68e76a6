package server

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "homehub/internal/errors"
)

// listFilters are the query parameters forwarded verbatim to the backend.
var listFilters = []string{"folder", "completed", "today", "tag", "search"}

// handleListReminders proxies the filtered reminder list from the backend.
func (s *Server) handleListReminders(c echo.Context) error {
	q := url.Values{}
	for _, name := range listFilters {
		if v := c.QueryParam(name); v != "" {
			q.Set(name, v)
		}
	}

	var out any
	if err := s.reminders.Get(c.Request().Context(), "/api/reminders", q, &out); err != nil {
		return apperrors.UpstreamError("Failed to load reminders", err)
	}

	if err := c.JSON(200, out); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

type createReminderRequest struct {
	Title    string `json:"title"`
	Notes    string `json:"notes"`
	Priority string `json:"priority"`
}

// handleCreateReminder forwards a creation call to the Reminders backend and
// returns its response verbatim.
func (s *Server) handleCreateReminder(c echo.Context) error {
	var req createReminderRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return apperrors.ValidationError("title is required")
	}

	priority := req.Priority
	if priority == "" {
		priority = "normal"
	}

	payload := map[string]string{
		"title":    title,
		"notes":    req.Notes,
		"priority": priority,
	}

	var out any
	if err := s.reminders.Post(c.Request().Context(), "/api/reminders", payload, &out); err != nil {
		return apperrors.UpstreamError("Failed to create reminder", err)
	}

	if err := c.JSON(200, out); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

// handleToggleReminder flips an item's completion state. The backend's only
// mutation primitive is a bulk action list, so the toggle is synthesized from
// a read plus one bulk write. Concurrent toggles on the same id can race;
// last write wins.
func (s *Server) handleToggleReminder(c echo.Context) error {
	id := c.Param("id")
	ctx := c.Request().Context()

	var items []map[string]any
	if err := s.reminders.Get(ctx, "/api/reminders", nil, &items); err != nil {
		return apperrors.UpstreamError("Failed to load reminders", err)
	}

	var item map[string]any
	for _, it := range items {
		if fmt.Sprint(it["id"]) == id {
			item = it
			break
		}
	}
	if item == nil {
		return apperrors.NotFoundError("Reminder not found").WithField("id", id)
	}

	completed, _ := item["completed"].(bool)
	action := "complete"
	if completed {
		action = "uncomplete"
	}

	bulk := map[string]any{
		"action": action,
		"ids":    []string{id},
	}
	if err := s.reminders.Post(ctx, "/api/reminders/bulk", bulk, nil); err != nil {
		return apperrors.UpstreamError("Failed to update reminder", err)
	}

	item["completed"] = !completed
	if err := c.JSON(200, item); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
