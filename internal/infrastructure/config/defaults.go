package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Broker defaults
	if cfg.Broker.Host == "" {
		cfg.Broker.Host = "localhost"
	}
	if cfg.Broker.Port == 0 {
		cfg.Broker.Port = 5672
	}
	if cfg.Broker.User == "" {
		cfg.Broker.User = "guest"
	}
	if cfg.Broker.Password == "" {
		cfg.Broker.Password = "guest"
	}
	if cfg.Broker.VHost == "" {
		cfg.Broker.VHost = "/"
	}

	// Queue naming defaults
	if cfg.Queues.GroupID == "" {
		cfg.Queues.GroupID = "2312-09_"
	}

	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "saimazoom.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "warehouse"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "warehouse"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Daemon defaults
	if cfg.Daemon.PIDFile == "" {
		cfg.Daemon.PIDFile = "/tmp/warehouse-controller.pid"
	}
	if cfg.Daemon.ShutdownTimeout == 0 {
		cfg.Daemon.ShutdownTimeout = 30 * time.Second
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	// Metrics defaults
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Robot simulator defaults
	if cfg.Robot.FindProbability == 0 {
		cfg.Robot.FindProbability = 0.8
	}
	if cfg.Robot.MinDelay == 0 {
		cfg.Robot.MinDelay = 5 * time.Second
	}
	if cfg.Robot.MaxDelay == 0 {
		cfg.Robot.MaxDelay = 10 * time.Second
	}

	// Delivery simulator defaults
	if cfg.Delivery.SuccessProbability == 0 {
		cfg.Delivery.SuccessProbability = 0.6
	}
	if cfg.Delivery.MaxAttempts == 0 {
		cfg.Delivery.MaxAttempts = 3
	}
	if cfg.Delivery.MinDelay == 0 {
		cfg.Delivery.MinDelay = 10 * time.Second
	}
	if cfg.Delivery.MaxDelay == 0 {
		cfg.Delivery.MaxDelay = 20 * time.Second
	}
}
