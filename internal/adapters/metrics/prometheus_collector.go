package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "warehouse"
	// Subsystem for controller metrics
	subsystem = "controller"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalPipeline is the singleton pipeline metrics collector
	// Set by SetGlobalPipelineCollector() when metrics are enabled
	globalPipeline PipelineRecorder
)

// PipelineRecorder defines the interface for recording pipeline events.
// Application code records through the package-level functions, which are
// no-ops while metrics are disabled.
type PipelineRecorder interface {
	RecordMessageConsumed(source, verb, outcome string)
	RecordOrderTransition(kind, result string)
	RecordPublish(destination, status string)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalPipelineCollector sets the global pipeline metrics collector
// This should be called after the collector is created and registered
func SetGlobalPipelineCollector(collector PipelineRecorder) {
	globalPipeline = collector
}

// RecordMessageConsumed records one handled inbound message globally
func RecordMessageConsumed(source, verb, outcome string) {
	if globalPipeline != nil {
		globalPipeline.RecordMessageConsumed(source, verb, outcome)
	}
}

// RecordOrderTransition records one order state transition globally
func RecordOrderTransition(kind, result string) {
	if globalPipeline != nil {
		globalPipeline.RecordOrderTransition(kind, result)
	}
}

// RecordPublish records one outbound publish attempt globally
func RecordPublish(destination, status string) {
	if globalPipeline != nil {
		globalPipeline.RecordPublish(destination, status)
	}
}
