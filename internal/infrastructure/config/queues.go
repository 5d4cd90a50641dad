package config

// QueuesConfig holds the broker queue naming configuration
type QueuesConfig struct {
	// GroupID is prepended to every queue name so several deployments can
	// share one broker
	GroupID string `mapstructure:"group_id" validate:"required"`
}
