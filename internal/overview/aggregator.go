package overview

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jonboulle/clockwork"

	"homehub/internal/backend"
	"homehub/internal/metrics"
	"homehub/internal/upstream"
)

// Summarizer produces one backend's dashboard summary from its upstream client.
type Summarizer func(ctx context.Context, client *upstream.Client) (map[string]any, error)

// Overview is the aggregated dashboard payload.
type Overview struct {
	Apps      map[string]any `json:"apps"`
	Timestamp int64          `json:"timestamp"`
}

// Aggregator fans out one summary fetch per configured backend and merges
// the results.
type Aggregator struct {
	registry    *backend.Registry
	clients     map[string]*upstream.Client
	summarizers map[string]Summarizer
	clock       clockwork.Clock
}

// NewAggregator wires the registry, per-backend clients and summarizers.
func NewAggregator(registry *backend.Registry, clients map[string]*upstream.Client, summarizers map[string]Summarizer, clock clockwork.Clock) *Aggregator {
	return &Aggregator{
		registry:    registry,
		clients:     clients,
		summarizers: summarizers,
		clock:       clock,
	}
}

// errorSlot returns a fresh error marker so callers never share a map.
func errorSlot() map[string]any {
	return map[string]any{"error": "Failed to load"}
}

// Aggregate fetches every backend's summary concurrently. The result holds
// exactly one slot per configured backend and a server-observed timestamp in
// epoch milliseconds.
func (a *Aggregator) Aggregate(ctx context.Context) Overview {
	var mu sync.Mutex
	var wg sync.WaitGroup

	apps := make(map[string]any, a.registry.Len())
	for _, d := range a.registry.All() {
		wg.Add(1)
		go func(d backend.Descriptor) {
			defer wg.Done()
			slot := a.fetchSlot(ctx, d)
			mu.Lock()
			apps[d.Key] = slot
			mu.Unlock()
		}(d)
	}
	wg.Wait()

	return Overview{
		Apps:      apps,
		Timestamp: a.clock.Now().UnixMilli(),
	}
}

func (a *Aggregator) fetchSlot(ctx context.Context, d backend.Descriptor) map[string]any {
	summarize, ok := a.summarizers[d.Key]
	if !ok {
		slog.WarnContext(ctx, "No summarizer for backend", "backend", d.Key)
		metrics.OverviewSlotFailures.WithLabelValues(d.Key).Inc()
		return errorSlot()
	}

	summary, err := summarize(ctx, a.clients[d.Key])
	if err != nil {
		slog.WarnContext(ctx, "Backend summary failed", "backend", d.Key, "error", err)
		metrics.OverviewSlotFailures.WithLabelValues(d.Key).Inc()
		return errorSlot()
	}

	summary["name"] = d.Name
	summary["icon"] = d.Icon
	summary["color"] = d.Color
	return summary
}
