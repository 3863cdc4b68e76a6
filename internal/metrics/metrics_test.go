package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistration(t *testing.T) {
	// All instruments must be registered exactly once with distinct names;
	// promauto panics at init on conflicts, so reaching here proves it.
	collectors := []prometheus.Collector{
		UpstreamRequestsTotal,
		UpstreamRequestDuration,
		OverviewSlotFailures,
		AuthVerificationsTotal,
	}

	for _, c := range collectors {
		assert.NotNil(t, c)
	}
}

func TestUpstreamRequestsCounter(t *testing.T) {
	before := testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("reminders", "200"))

	UpstreamRequestsTotal.WithLabelValues("reminders", "200").Inc()

	after := testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("reminders", "200"))
	assert.Equal(t, before+1, after)
}

func TestOverviewSlotFailuresCounter(t *testing.T) {
	before := testutil.ToFloat64(OverviewSlotFailures.WithLabelValues("notes"))

	OverviewSlotFailures.WithLabelValues("notes").Inc()

	after := testutil.ToFloat64(OverviewSlotFailures.WithLabelValues("notes"))
	assert.Equal(t, before+1, after)
}
