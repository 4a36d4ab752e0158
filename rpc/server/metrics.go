package server

import (
	"fmt"
	"github.com/ValentinKolb/pine/rpc/common"
	"github.com/VictoriaMetrics/metrics"
)

var (
	requestsOk     = metrics.NewCounter(`pine_server_requests_total{status="ok"}`)
	requestsFail   = metrics.NewCounter(`pine_server_requests_total{status="fail"}`)
	batchSize      = metrics.NewHistogram("pine_server_batch_commands")
	requestSeconds = metrics.NewSummary("pine_server_request_duration_seconds")
)

// commandCounter returns the counter of executed commands for op
func commandCounter(op common.Opcode) *metrics.Counter {
	return metrics.GetOrCreateCounter(fmt.Sprintf(`pine_server_commands_total{op=%q}`, op.String()))
}
