package requestid

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDUnique(t *testing.T) {
	a := NewID()
	b := NewID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestWithIDRoundTrip(t *testing.T) {
	ctx := WithID(context.Background(), "req-123")
	id, ok := ID(ctx)
	require.True(t, ok)
	assert.Equal(t, "req-123", id)
}

func TestIDMissing(t *testing.T) {
	_, ok := ID(context.Background())
	assert.False(t, ok)
}

func TestHandlerInjectsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(slog.NewTextHandler(&buf, nil)))

	ctx := WithID(context.Background(), "req-abc")
	logger.InfoContext(ctx, "hello")

	assert.Contains(t, buf.String(), "request_id=req-abc")
}

func TestHandlerWithoutRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(slog.NewTextHandler(&buf, nil)))

	logger.Info("hello")

	assert.NotContains(t, buf.String(), "request_id")
}
