// Package simulation hosts the picker robot and delivery agent loops. Both
// consume their queue serially, model their work as a random delay with a
// random outcome, and report back over the broker — they hold no state of
// their own.
package simulation

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/saimazoom/warehouse-go/internal/infrastructure/config"
	"github.com/saimazoom/warehouse-go/internal/wire"
)

// Publisher emits one message to one queue
type Publisher interface {
	Publish(ctx context.Context, queue, body string) error
}

// Robot simulates a picker robot. For each MOVE it searches storage for a
// random while and finds the product with the configured probability.
type Robot struct {
	cfg       config.RobotConfig
	queues    wire.Queues
	publisher Publisher
	logger    *slog.Logger
	rng       *rand.Rand
}

// NewRobot builds a robot with its own random source
func NewRobot(cfg config.RobotConfig, queues wire.Queues, publisher Publisher, logger *slog.Logger) *Robot {
	return &Robot{
		cfg:       cfg,
		queues:    queues,
		publisher: publisher,
		logger:    logger,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// HandleMove processes one MOVE <order_id> <product> message and reports
// MOVED or NOT_FOUND. Malformed messages are logged and dropped.
func (r *Robot) HandleMove(ctx context.Context, body string) {
	tokens := strings.Fields(body)
	if len(tokens) != 3 || tokens[0] != wire.VerbMove {
		r.logger.Warn("dropping malformed message", "body", body)
		return
	}
	orderID, product := tokens[1], tokens[2]

	if !sleep(ctx, r.rng, r.cfg.MinDelay, r.cfg.MaxDelay) {
		return
	}

	report := wire.NotFound(orderID, product)
	found := r.rng.Float64() < r.cfg.FindProbability
	if found {
		report = wire.Moved(orderID, product)
	}

	if err := r.publisher.Publish(ctx, r.queues.RobotToController(), report); err != nil {
		r.logger.Error("failed to report pick", "order", orderID, "product", product, "error", err)
		return
	}
	r.logger.Info("pick reported", "order", orderID, "product", product, "found", found)
}

// sleep waits a uniform random duration in [min, max]. It reports false
// when ctx is cancelled first.
func sleep(ctx context.Context, rng *rand.Rand, min, max time.Duration) bool {
	delay := min
	if max > min {
		delay += time.Duration(rng.Int63n(int64(max-min) + 1))
	}
	if delay <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
