package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTrackQueryObservesLatency(t *testing.T) {
	m := NewDatabaseMetrics()
	before := testutil.CollectAndCount(DatabaseQueryLatency)

	done := m.TrackQuery("select", "friend_requests_metrics_test")
	done()
	m.ObserveQuery("update", "friend_requests_metrics_test", time.Now())

	after := testutil.CollectAndCount(DatabaseQueryLatency)
	assert.Equal(t, before+2, after, "one series per operation/table pair")
}
