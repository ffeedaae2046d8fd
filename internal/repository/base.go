package repository

import "gatherly/internal/observability"

// dbMetrics records query latency for every repository implementation.
var dbMetrics = observability.NewDatabaseMetrics()
