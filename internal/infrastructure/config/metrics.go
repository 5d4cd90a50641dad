package config

// MetricsConfig holds the Prometheus exposition configuration
type MetricsConfig struct {
	// Enabled controls whether the metrics HTTP endpoint is served
	Enabled bool `mapstructure:"enabled"`

	// Port for the metrics HTTP server
	Port int `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`

	// Host to bind the metrics HTTP server (default: localhost for security)
	Host string `mapstructure:"host"`

	// Path for the metrics endpoint (default: /metrics)
	Path string `mapstructure:"path"`
}
