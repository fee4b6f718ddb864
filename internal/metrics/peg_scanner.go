package metrics

import (
	"time"

	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scannerRunTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pegaudit",
		Subsystem: "peg_scanner",
		Name:      "runs_total",
		Help:      "Count of peg scanner runs.",
	}, []string{"network", "status"})

	scannerRunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pegaudit",
		Subsystem: "peg_scanner",
		Name:      "run_duration_seconds",
		Help:      "Duration of a peg scanner run.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 16),
	}, []string{"network", "status"})

	scannerHeightDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pegaudit",
		Subsystem: "peg_scanner",
		Name:      "process_height_duration_seconds",
		Help:      "Duration of scanning a single side-chain height.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	scannerLastHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "pegaudit",
		Subsystem: "peg_scanner",
		Name:      "last_height",
		Help:      "Last side-chain height committed by the peg scanner.",
	}, []string{"network"})

	scannerPegEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pegaudit",
		Subsystem: "peg_scanner",
		Name:      "peg_events_total",
		Help:      "Count of newly recorded peg events by kind.",
	}, []string{"network", "kind"})
)

// PegScanner tracks metrics for the side-chain peg scanner.
type PegScanner struct {
	network model.Network
}

func NewPegScanner(network model.Network) *PegScanner {
	if network == "" {
		network = "unknown"
	}
	return &PegScanner{network: network}
}

func (m PegScanner) ObserveRun(err error, started time.Time) {
	status := statusOf(err)
	scannerRunTotal.WithLabelValues(string(m.network), status).Inc()
	scannerRunDuration.WithLabelValues(string(m.network), status).Observe(time.Since(started).Seconds())
}

// ObserveHeight records the time spent on height; committed heights also move the last-height gauge.
func (m PegScanner) ObserveHeight(err error, height uint64, started time.Time) {
	status := statusOf(err)
	scannerHeightDuration.WithLabelValues(string(m.network), status).Observe(time.Since(started).Seconds())
	if err == nil {
		scannerLastHeight.WithLabelValues(string(m.network)).Set(float64(height))
	}
}

func (m PegScanner) ObservePegEvent(kind string) {
	scannerPegEventsTotal.WithLabelValues(string(m.network), kind).Inc()
}
