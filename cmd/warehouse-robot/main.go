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

	// Declare what the robot touches: its inbound queue and the report queue
	ch, err := broker.Channel()
	if err != nil {
		log.Fatalf("Failed to open channel: %v", err)
	}
	for _, name := range []string{queues.ControllerToRobot(), queues.RobotToController()} {
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

	robot := simulation.NewRobot(cfg.Robot, queues, publisher, logger)
	consumer := messaging.NewConsumer(broker, queues.ControllerToRobot(), "warehouse-robot", robot.HandleMove, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("robot running",
		"find_probability", cfg.Robot.FindProbability,
		"min_delay", cfg.Robot.MinDelay,
		"max_delay", cfg.Robot.MaxDelay)
	if err := consumer.Run(ctx); err != nil {
		log.Fatalf("Consumer failed: %v", err)
	}
}
