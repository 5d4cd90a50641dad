package config

import "time"

// RobotConfig holds the robot simulator behaviour configuration
type RobotConfig struct {
	// Probability that a requested product is found in storage
	FindProbability float64 `mapstructure:"find_probability" validate:"min=0,max=1"`

	// Bounds of the simulated search time, drawn uniformly per product
	MinDelay time.Duration `mapstructure:"min_delay"`
	MaxDelay time.Duration `mapstructure:"max_delay"`
}

// DeliveryConfig holds the delivery simulator behaviour configuration
type DeliveryConfig struct {
	// Probability that a delivery attempt reaches the client
	SuccessProbability float64 `mapstructure:"success_probability" validate:"min=0,max=1"`

	// Attempts before the delivery is reported as failed
	MaxAttempts int `mapstructure:"max_attempts" validate:"min=1"`

	// Bounds of the simulated trip time, drawn uniformly per attempt
	MinDelay time.Duration `mapstructure:"min_delay"`
	MaxDelay time.Duration `mapstructure:"max_delay"`
}
