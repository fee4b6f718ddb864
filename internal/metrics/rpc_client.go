package metrics

import (
	"time"

	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rpcRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pegaudit",
		Subsystem: "rpc_client",
		Name:      "operations_total",
		Help:      "Count of node RPC operations.",
	}, []string{"operation", "chain", "network", "status"})
	rpcRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pegaudit",
		Subsystem: "rpc_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of node RPC operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "chain", "network", "status"})
)

// RPCClient tracks metrics for RPC calls to one chain's node.
type RPCClient struct {
	chain   model.Chain
	network model.Network
}

// NewRPCClient constructs a metrics collector for RPC calls.
func NewRPCClient(chain model.Chain, network model.Network) *RPCClient {
	if chain == "" {
		chain = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return &RPCClient{chain: chain, network: network}
}

// Observe records a single RPC call outcome and duration.
func (m RPCClient) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	rpcRequestsTotal.WithLabelValues(operation, string(m.chain), string(m.network), status).Inc()
	rpcRequestDuration.WithLabelValues(operation, string(m.chain), string(m.network), status).
		Observe(time.Since(started).Seconds())
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
