package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gatherly_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gatherly_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// FriendRequestsTotal counts friend request lifecycle transitions.
	FriendRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gatherly_friend_requests_total",
		Help: "Total friend request operations by outcome (created, accepted, declined)",
	}, []string{"outcome"})

	// MessagesSentTotal counts direct messages persisted.
	MessagesSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gatherly_messages_sent_total",
		Help: "Total direct messages persisted",
	})

	// NotificationsTotal counts notification writes by kind.
	NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gatherly_notifications_total",
		Help: "Total notifications created by kind",
	}, []string{"kind"})

	// NotificationPublishDrops counts post-commit publishes that could not
	// reach Redis. Persistence already succeeded when this fires.
	NotificationPublishDrops = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gatherly_notification_publish_drops_total",
		Help: "Total notification publishes dropped because Redis was unavailable",
	})
)

// DatabaseMetrics records query latency for the repository layer.
type DatabaseMetrics struct{}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics() *DatabaseMetrics {
	return &DatabaseMetrics{}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}
