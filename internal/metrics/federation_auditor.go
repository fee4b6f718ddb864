package metrics

import (
	"time"

	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	auditorRunTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pegaudit",
		Subsystem: "federation_auditor",
		Name:      "runs_total",
		Help:      "Count of federation audit runs.",
	}, []string{"network", "status"})

	auditorRunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pegaudit",
		Subsystem: "federation_auditor",
		Name:      "run_duration_seconds",
		Help:      "Duration of a federation audit run.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 16),
	}, []string{"network", "status"})

	auditorHeightDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pegaudit",
		Subsystem: "federation_auditor",
		Name:      "process_height_duration_seconds",
		Help:      "Duration of auditing a single base-chain height.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	auditorLastHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "pegaudit",
		Subsystem: "federation_auditor",
		Name:      "last_height",
		Help:      "Last base-chain height committed by the federation auditor.",
	}, []string{"network"})

	auditorFastPathChecked = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pegaudit",
		Subsystem: "federation_auditor",
		Name:      "fast_path_checked_total",
		Help:      "Count of utxos checked with an existence query.",
	}, []string{"network"})

	auditorFastPathConfirmed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pegaudit",
		Subsystem: "federation_auditor",
		Name:      "fast_path_confirmed_total",
		Help:      "Count of utxos confirmed unspent by an existence query.",
	}, []string{"network"})

	auditorSlowPathUtxos = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pegaudit",
		Subsystem: "federation_auditor",
		Name:      "slow_path_utxos_total",
		Help:      "Count of utxos changed by block scans, by outcome.",
	}, []string{"network", "outcome"})
)

// FederationAuditor tracks metrics for the base-chain federation audit.
type FederationAuditor struct {
	network model.Network
}

func NewFederationAuditor(network model.Network) *FederationAuditor {
	if network == "" {
		network = "unknown"
	}
	return &FederationAuditor{network: network}
}

func (m FederationAuditor) ObserveRun(err error, started time.Time) {
	status := statusOf(err)
	auditorRunTotal.WithLabelValues(string(m.network), status).Inc()
	auditorRunDuration.WithLabelValues(string(m.network), status).Observe(time.Since(started).Seconds())
}

func (m FederationAuditor) ObserveHeight(err error, height uint64, started time.Time) {
	status := statusOf(err)
	auditorHeightDuration.WithLabelValues(string(m.network), status).Observe(time.Since(started).Seconds())
	if err == nil {
		auditorLastHeight.WithLabelValues(string(m.network)).Set(float64(height))
	}
}

func (m FederationAuditor) ObserveFastPath(checked, confirmed int) {
	auditorFastPathChecked.WithLabelValues(string(m.network)).Add(float64(checked))
	auditorFastPathConfirmed.WithLabelValues(string(m.network)).Add(float64(confirmed))
}

func (m FederationAuditor) ObserveSlowPath(spent, discovered, advanced int) {
	auditorSlowPathUtxos.WithLabelValues(string(m.network), "spent").Add(float64(spent))
	auditorSlowPathUtxos.WithLabelValues(string(m.network), "discovered").Add(float64(discovered))
	auditorSlowPathUtxos.WithLabelValues(string(m.network), "advanced").Add(float64(advanced))
}
