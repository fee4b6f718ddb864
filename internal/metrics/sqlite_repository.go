package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sqliteRepoRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pegaudit",
		Subsystem: "sqlite_repository",
		Name:      "operations_total",
		Help:      "Count of ledger store operations.",
	}, []string{"operation", "status"})
	sqliteRepoRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pegaudit",
		Subsystem: "sqlite_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of ledger store operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})
)

type SQLiteRepository struct{}

func NewSQLiteRepository() *SQLiteRepository {
	return &SQLiteRepository{}
}

func (SQLiteRepository) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	sqliteRepoRequestsTotal.WithLabelValues(operation, status).Inc()
	sqliteRepoRequestDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}
