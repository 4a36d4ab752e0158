package client

import (
	"errors"
	"fmt"
	"github.com/ValentinKolb/pine/rpc/common"
	"github.com/VictoriaMetrics/metrics"
	"time"
)

var (
	roundTripDuration = metrics.NewHistogram("pine_client_round_trip_seconds")
	connectionErrors  = metrics.NewCounter(`pine_client_errors_total{kind="connection"}`)
	commandErrors     = metrics.NewCounter(`pine_client_errors_total{kind="command"}`)
	batchCommands     = metrics.NewCounter("pine_client_batch_commands_total")
)

// requestCounter returns the request counter for the given opcode
func requestCounter(op common.Opcode) *metrics.Counter {
	return metrics.GetOrCreateCounter(fmt.Sprintf(`pine_client_requests_total{op=%q}`, op.String()))
}

// observe records the outcome of one round trip
func observe(op common.Opcode, start time.Time, err error) {
	requestCounter(op).Inc()
	roundTripDuration.UpdateDuration(start)

	switch {
	case err == nil:
	case errors.Is(err, common.ErrCommandFailed):
		commandErrors.Inc()
	default:
		connectionErrors.Inc()
	}
}
