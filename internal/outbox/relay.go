package outbox

import (
	"context"
	"log/slog"
	"time"

	"github.com/SlavaShagalov/rental-booking/internal/models"
)

type Store interface {
	ProcessBatch(ctx context.Context, limit int, handle BatchHandler) (int, error)
}

type Publisher interface {
	Publish(ctx context.Context, msg models.OutboxMessage) error
}

type RelayConfig struct {
	BatchSize    int
	PollInterval time.Duration
}

// Relay moves committed outbox rows to Kafka. Delivery is at least once: a
// crash between publish and commit resends the batch.
type Relay struct {
	store     Store
	publisher Publisher
	config    RelayConfig
	metrics   *Metrics
	logger    *slog.Logger
}

const (
	defaultBatchSize    = 100
	defaultPollInterval = time.Second
)

func NewRelay(store Store, publisher Publisher, config RelayConfig, metrics *Metrics, logger *slog.Logger) *Relay {
	if config.BatchSize <= 0 {
		config.BatchSize = defaultBatchSize
	}
	if config.PollInterval <= 0 {
		config.PollInterval = defaultPollInterval
	}
	return &Relay{
		store:     store,
		publisher: publisher,
		config:    config,
		metrics:   metrics,
		logger:    logger,
	}
}

// Run polls until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Drain the backlog without waiting for the next tick.
			for {
				n, err := r.ProcessOnce(ctx)
				if err != nil {
					r.logger.Error("process outbox batch", slog.String("error", err.Error()))
					break
				}
				if n < r.config.BatchSize || ctx.Err() != nil {
					break
				}
			}
		}
	}
}

// ProcessOnce publishes one batch and returns the number of delivered messages.
func (r *Relay) ProcessOnce(ctx context.Context) (int, error) {
	return r.store.ProcessBatch(ctx, r.config.BatchSize, r.publishBatch)
}

// publishBatch stops at the first failure so that later events of the same
// rental are not delivered ahead of earlier ones.
func (r *Relay) publishBatch(ctx context.Context, msgs []models.OutboxMessage) ([]string, error) {
	if r.metrics != nil {
		r.metrics.batchSize.Observe(float64(len(msgs)))
	}

	delivered := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		if err := r.publisher.Publish(ctx, msg); err != nil {
			if r.metrics != nil {
				r.metrics.failed.Inc()
			}
			r.logger.Warn("publish outbox message",
				slog.String("id", msg.ID),
				slog.String("event_type", msg.EventType),
				slog.String("error", err.Error()),
			)
			return delivered, err
		}
		delivered = append(delivered, msg.ID)
		if r.metrics != nil {
			r.metrics.published.Inc()
		}
	}

	r.logger.Debug("outbox batch published", slog.Int("count", len(delivered)))

	return delivered, nil
}
