// Package metrics holds the bot-level Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	webhooksReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nlibot_webhooks_received_total",
		Help: "Webhook deliveries accepted after signature verification",
	}, []string{"provider"})

	eventsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nlibot_events_processed_total",
		Help: "Normalized comment events by routing outcome",
	}, []string{"outcome"}) // outcome=handled|disabled|debounced|self|error

	repliesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nlibot_replies_total",
		Help: "Replies posted to merge request threads",
	}, []string{"provider", "outcome"}) // outcome=success|failure

	transcriptErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nlibot_transcript_write_errors_total",
		Help: "Failures writing interpretation transcripts",
	})
)

// WebhookReceived counts a verified webhook delivery.
func WebhookReceived(provider string) { webhooksReceived.WithLabelValues(provider).Inc() }

// EventProcessed counts a routed event by outcome.
func EventProcessed(outcome string) { eventsProcessed.WithLabelValues(outcome).Inc() }

// ReplyPosted counts a reply attempt.
func ReplyPosted(provider string, ok bool) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	repliesTotal.WithLabelValues(provider, outcome).Inc()
}

// TranscriptWriteFailed counts a transcript write failure.
func TranscriptWriteFailed() { transcriptErrors.Inc() }
