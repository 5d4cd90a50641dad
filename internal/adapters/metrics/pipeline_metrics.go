package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetricsCollector handles all pipeline metrics
type PipelineMetricsCollector struct {
	messagesConsumed *prometheus.CounterVec
	orderTransitions *prometheus.CounterVec
	publishes        *prometheus.CounterVec
}

// NewPipelineMetricsCollector creates a new pipeline metrics collector
func NewPipelineMetricsCollector() *PipelineMetricsCollector {
	return &PipelineMetricsCollector{
		// Inbound messages by source queue, verb, and handler outcome
		messagesConsumed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "messages_consumed_total",
				Help:      "Total number of consumed messages by source, verb, and outcome",
			},
			[]string{"source", "verb", "outcome"},
		),

		// Order transitions by transition kind and resulting state
		orderTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_transitions_total",
				Help:      "Total number of order state transitions by kind and resulting state",
			},
			[]string{"kind", "result"},
		),

		// Outbound publishes by destination role and status
		publishes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "publishes_total",
				Help:      "Total number of outbound publishes by destination and status",
			},
			[]string{"destination", "status"},
		),
	}
}

// Register registers all pipeline metrics with the Prometheus registry
func (c *PipelineMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	collectors := []prometheus.Collector{
		c.messagesConsumed,
		c.orderTransitions,
		c.publishes,
	}

	for _, collector := range collectors {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}

	return nil
}

// RecordMessageConsumed records one handled inbound message
func (c *PipelineMetricsCollector) RecordMessageConsumed(source, verb, outcome string) {
	c.messagesConsumed.WithLabelValues(source, verb, outcome).Inc()
}

// RecordOrderTransition records one order state transition
func (c *PipelineMetricsCollector) RecordOrderTransition(kind, result string) {
	c.orderTransitions.WithLabelValues(kind, result).Inc()
}

// RecordPublish records one outbound publish attempt
func (c *PipelineMetricsCollector) RecordPublish(destination, status string) {
	c.publishes.WithLabelValues(destination, status).Inc()
}
