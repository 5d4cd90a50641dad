package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/saimazoom/warehouse-go/internal/adapters/messaging"
	"github.com/saimazoom/warehouse-go/internal/infrastructure/config"
	"github.com/saimazoom/warehouse-go/internal/infrastructure/logging"
	"github.com/saimazoom/warehouse-go/internal/simulation"
	"github.com/saimazoom/warehouse-go/internal/wire"
)

func main() {
	configFlag := flag.String("config", "", "Path to config file (default: search standard paths)")
	flag.Parse()

	cfg := config.MustLoadConfig(*configFlag)
	logger := logging.MustLogger(&cfg.Logging)
	queues := wire.NewQueues(cfg.Queues.GroupID)

	broker, err := messaging.Connect(&cfg.Broker)
	if err != nil {
		log.Fatalf("Failed to connect to broker: %v", err)
	}
	defer broker.Close()

	// Declare what the agent touches: its inbound queue and the report
	// queue. Per-client queues are the clients' own to declare.
	ch, err := broker.Channel()
	if err != nil {
		log.Fatalf("Failed to open channel: %v", err)
	}
	for _, name := range []string{queues.ControllerToDelivery(), queues.DeliveryToController()} {
		if err := messaging.DeclareQueue(ch, name); err != nil {
			log.Fatalf("Failed to declare queue: %v", err)
		}
	}
	_ = ch.Close()

	publisher, err := messaging.NewPublisher(broker)
	if err != nil {
		log.Fatalf("Failed to open publisher: %v", err)
	}
	defer publisher.Close()

	delivery := simulation.NewDelivery(cfg.Delivery, queues, publisher, logger)
	consumer := messaging.NewConsumer(broker, queues.ControllerToDelivery(), "warehouse-delivery", delivery.HandleDelivery, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("delivery agent running",
		"success_probability", cfg.Delivery.SuccessProbability,
		"max_attempts", cfg.Delivery.MaxAttempts,
		"min_delay", cfg.Delivery.MinDelay,
		"max_delay", cfg.Delivery.MaxDelay)
	if err := consumer.Run(ctx); err != nil {
		log.Fatalf("Consumer failed: %v", err)
	}
}
