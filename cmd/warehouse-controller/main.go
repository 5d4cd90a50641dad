package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/saimazoom/warehouse-go/internal/adapters/messaging"
	"github.com/saimazoom/warehouse-go/internal/adapters/metrics"
	"github.com/saimazoom/warehouse-go/internal/adapters/persistence"
	"github.com/saimazoom/warehouse-go/internal/application/controller"
	"github.com/saimazoom/warehouse-go/internal/infrastructure/config"
	"github.com/saimazoom/warehouse-go/internal/infrastructure/database"
	"github.com/saimazoom/warehouse-go/internal/infrastructure/logging"
	"github.com/saimazoom/warehouse-go/internal/infrastructure/pidfile"
	"github.com/saimazoom/warehouse-go/internal/wire"
)

func main() {
	configFlag := flag.String("config", "", "Path to config file (default: search standard paths)")
	pidFileFlag := flag.String("pid-file", "", "Override the PID file location")
	flag.Parse()

	cfg := config.MustLoadConfig(*configFlag)
	if *pidFileFlag != "" {
		cfg.Daemon.PIDFile = *pidFileFlag
	}

	logger := logging.MustLogger(&cfg.Logging)

	// Single-instance enforcement
	pf := pidfile.New(cfg.Daemon.PIDFile)
	if err := pf.Acquire(); err != nil {
		log.Fatalf("Failed to acquire PID file lock: %v", err)
	}
	defer func() {
		if err := pf.Release(); err != nil {
			logger.Warn("failed to release PID file", "error", err)
		}
	}()

	if err := run(cfg, logger); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	queues := wire.NewQueues(cfg.Queues.GroupID)

	// 1. Durable store
	logger.Info("connecting to database", "type", cfg.Database.Type)
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	store := persistence.NewGormStore(db)
	defer store.Close()

	// 2. Metrics
	var metricsServer *metrics.Server
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		collector := metrics.NewPipelineMetricsCollector()
		if err := collector.Register(); err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
		metrics.SetGlobalPipelineCollector(collector)

		metricsServer = metrics.NewServer(cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path, logger)
		metricsServer.Start()
	}

	// 3. Broker attachment and topology
	logger.Info("connecting to broker", "host", cfg.Broker.Host)
	broker, err := messaging.Connect(&cfg.Broker)
	if err != nil {
		return fmt.Errorf("failed to connect to broker: %w", err)
	}
	defer broker.Close()

	ch, err := broker.Channel()
	if err != nil {
		return err
	}
	if err := messaging.DeclareTopology(ch, queues); err != nil {
		return fmt.Errorf("failed to declare topology: %w", err)
	}
	_ = ch.Close()

	publisher, err := messaging.NewPublisher(broker)
	if err != nil {
		return fmt.Errorf("failed to open publisher: %w", err)
	}
	defer publisher.Close()

	// 4. Coordinator and the three intake consumers
	coordinator := controller.NewCoordinator(store, publisher, queues, logger)

	consumers := []*messaging.Consumer{
		messaging.NewConsumer(broker, queues.ClientToController(), "controller-client", coordinator.DispatchClient, logger),
		messaging.NewConsumer(broker, queues.RobotToController(), "controller-robot", coordinator.DispatchRobot, logger),
		messaging.NewConsumer(broker, queues.DeliveryToController(), "controller-delivery", coordinator.DispatchDelivery, logger),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	for _, consumer := range consumers {
		wg.Add(1)
		go func(c *messaging.Consumer) {
			defer wg.Done()
			if err := c.Run(ctx); err != nil {
				logger.Error("consumer failed", "error", err)
				stop()
			}
		}(consumer)
	}

	logger.Info("controller running", "group_id", cfg.Queues.GroupID)
	<-ctx.Done()

	// In-flight handlers finish and ack before the consumers return
	logger.Info("shutting down")
	wg.Wait()

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Stop(shutdownCtx)
	}

	return nil
}
