package overview

import (
	"context"
	"net/url"

	"homehub/internal/upstream"
)

// previewLimit caps the short item list included in every summary.
const previewLimit = 5

// Summarizers returns the standard summarizer table, keyed by backend key.
func Summarizers() map[string]Summarizer {
	return map[string]Summarizer{
		"reminders": summarizeReminders,
		"calendar":  summarizeCalendar,
		"notes":     summarizeNotes,
		"habits":    summarizeHabits,
	}
}

func summarizeReminders(ctx context.Context, client *upstream.Client) (map[string]any, error) {
	var today []map[string]any
	if err := client.Get(ctx, "/api/reminders", url.Values{"today": {"true"}}, &today); err != nil {
		return nil, err
	}

	var stats map[string]any
	if err := client.Get(ctx, "/api/stats", nil, &stats); err != nil {
		return nil, err
	}

	return map[string]any{
		"today":   len(today),
		"total":   stats["total"],
		"overdue": stats["overdue"],
		"preview": previewOf(today, "id", "title", "priority", "completed"),
	}, nil
}

func summarizeCalendar(ctx context.Context, client *upstream.Client) (map[string]any, error) {
	var upcoming []map[string]any
	if err := client.Get(ctx, "/api/events", url.Values{"upcoming": {"true"}}, &upcoming); err != nil {
		return nil, err
	}

	var stats map[string]any
	if err := client.Get(ctx, "/api/stats", nil, &stats); err != nil {
		return nil, err
	}

	return map[string]any{
		"upcoming": len(upcoming),
		"today":    stats["today"],
		"preview":  previewOf(upcoming, "id", "title", "start"),
	}, nil
}

func summarizeNotes(ctx context.Context, client *upstream.Client) (map[string]any, error) {
	var recent []map[string]any
	if err := client.Get(ctx, "/api/notes", url.Values{"recent": {"true"}}, &recent); err != nil {
		return nil, err
	}

	var stats map[string]any
	if err := client.Get(ctx, "/api/stats", nil, &stats); err != nil {
		return nil, err
	}

	return map[string]any{
		"recent":  len(recent),
		"total":   stats["total"],
		"preview": previewOf(recent, "id", "title"),
	}, nil
}

func summarizeHabits(ctx context.Context, client *upstream.Client) (map[string]any, error) {
	var today []map[string]any
	if err := client.Get(ctx, "/api/habits", url.Values{"today": {"true"}}, &today); err != nil {
		return nil, err
	}

	var stats map[string]any
	if err := client.Get(ctx, "/api/stats", nil, &stats); err != nil {
		return nil, err
	}

	completed := 0
	for _, h := range today {
		if done, ok := h["completed"].(bool); ok && done {
			completed++
		}
	}

	return map[string]any{
		"today":     len(today),
		"completed": completed,
		"streak":    stats["best_streak"],
		"preview":   previewOf(today, "id", "name", "completed"),
	}, nil
}

// previewOf projects the given fields from at most previewLimit items.
func previewOf(items []map[string]any, fields ...string) []map[string]any {
	limit := len(items)
	if limit > previewLimit {
		limit = previewLimit
	}

	preview := make([]map[string]any, 0, limit)
	for _, item := range items[:limit] {
		entry := make(map[string]any, len(fields))
		for _, f := range fields {
			if v, ok := item[f]; ok {
				entry[f] = v
			}
		}
		preview = append(preview, entry)
	}
	return preview
}
