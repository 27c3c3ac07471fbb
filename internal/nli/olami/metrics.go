package olami

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/drewdunne/nlibot/internal/nli"
)

const (
	outcomeSuccess   = "success"
	outcomeTransport = "transport_error"
	outcomeStatus    = "status_error"
	outcomeMalformed = "malformed"
	outcomeOther     = "error"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nlibot_nli_requests_total",
		Help: "NLI requests by outcome",
	}, []string{"outcome"}) // outcome=success|transport_error|status_error|malformed|error

	requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "nlibot_nli_request_duration_seconds",
		Help:    "Latency of NLI requests including response decoding",
		Buckets: prometheus.DefBuckets,
	})
)

func observeRequest(err error, elapsed time.Duration) {
	requestDuration.Observe(elapsed.Seconds())
	requestsTotal.WithLabelValues(outcomeOf(err)).Inc()
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.Is(err, nli.ErrTransport):
		return outcomeTransport
	case errors.Is(err, nli.ErrStatus):
		return outcomeStatus
	case errors.Is(err, nli.ErrMalformedResponse):
		return outcomeMalformed
	default:
		return outcomeOther
	}
}
