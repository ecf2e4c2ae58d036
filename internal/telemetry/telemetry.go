package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Telemetry holds the assistant's Prometheus collectors. The /metrics
// endpoint on the webhook server exposes them.
type Telemetry struct {
	Turns           *prometheus.CounterVec
	TurnFailures    prometheus.Counter
	TurnDuration    prometheus.Histogram
	ToolInvocations *prometheus.CounterVec
	ToolFailures    *prometheus.CounterVec
}

// New registers the collectors on reg; a nil reg uses the default registry.
func New(reg prometheus.Registerer) *Telemetry {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	t := &Telemetry{
		Turns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "propchat_turns_total",
			Help: "Conversation turns processed, by classified intent.",
		}, []string{"intent"}),
		TurnFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "propchat_turn_failures_total",
			Help: "Turns that ended with the generic apology.",
		}),
		TurnDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "propchat_turn_duration_seconds",
			Help:    "Wall time spent handling a turn.",
			Buckets: prometheus.DefBuckets,
		}),
		ToolInvocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "propchat_tool_invocations_total",
			Help: "Retrieval tool invocations, by tool.",
		}, []string{"tool"}),
		ToolFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "propchat_tool_failures_total",
			Help: "Tool invocations converted to an apology at the tool boundary.",
		}, []string{"tool"}),
	}
	reg.MustRegister(t.Turns, t.TurnFailures, t.TurnDuration, t.ToolInvocations, t.ToolFailures)
	return t
}
