package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homehub/internal/overview"
)

func TestHandleOverview(t *testing.T) {
	agg := &mockAggregator{
		aggregateFn: func(_ context.Context) overview.Overview {
			return overview.Overview{
				Apps: map[string]any{
					"reminders": map[string]any{"today": 3, "name": "Reminders"},
					"notes":     map[string]any{"error": "Failed to load"},
				},
				Timestamp: 1748779200000,
			}
		},
	}
	srv := newTestServer(t, withAggregator(agg), withVerifier(okVerifier("good-token")))

	req := httptest.NewRequest(http.MethodGet, "/api/overview", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)

	var resp struct {
		Apps      map[string]json.RawMessage `json:"apps"`
		Timestamp int64                      `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, int64(1748779200000), resp.Timestamp)
	assert.Len(t, resp.Apps, 2)
	assert.JSONEq(t, `{"error":"Failed to load"}`, string(resp.Apps["notes"]))
}
