// Package metrics exposes workflow activity as Prometheus metrics. It
// implements the workflow.MetricsCollector interface.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Collector struct {
	transitions *prometheus.CounterVec
	conflicts   *prometheus.CounterVec
	votes       *prometheus.CounterVec
	errors      *prometheus.CounterVec
}

// NewCollector registers the workflow metrics with reg and returns the
// collector. Pass prometheus.DefaultRegisterer in production.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "loan_workflow_transitions_total",
			Help: "Status transitions by role, source and target status.",
		}, []string{"role", "from", "to"}),
		conflicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "loan_workflow_conflicts_total",
			Help: "Transitions rejected because another reviewer acted first.",
		}, []string{"from", "to"}),
		votes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "loan_workflow_member_votes_total",
			Help: "Committee member votes by outcome.",
		}, []string{"outcome"}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "loan_workflow_errors_total",
			Help: "Workflow operations rejected before any write.",
		}, []string{"operation", "type"}),
	}
}

func (c *Collector) RecordTransition(role, from, to string) {
	c.transitions.WithLabelValues(role, from, to).Inc()
}

func (c *Collector) RecordConflict(from, to string) {
	c.conflicts.WithLabelValues(from, to).Inc()
}

func (c *Collector) RecordVote(outcome string) {
	c.votes.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordError(operation, errType string) {
	c.errors.WithLabelValues(operation, errType).Inc()
}
