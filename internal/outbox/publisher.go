package outbox

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"

	"github.com/SlavaShagalov/rental-booking/internal/models"
)

// MessageWriter is satisfied by *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type BreakerConfig struct {
	MaxFails uint32
	Timeout  time.Duration
}

// KafkaPublisher writes outbox messages to Kafka behind a circuit breaker.
// Messages of one rental share a key and therefore a partition.
type KafkaPublisher struct {
	writer  MessageWriter
	breaker *gobreaker.CircuitBreaker[struct{}]
	logger  *slog.Logger
}

func NewKafkaPublisher(writer MessageWriter, config BreakerConfig, metrics *Metrics, logger *slog.Logger) *KafkaPublisher {
	settings := gobreaker.Settings{
		Name:    "kafka",
		Timeout: config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.MaxFails
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				slog.String("name", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			if metrics != nil {
				metrics.breakerState.Set(float64(to))
			}
		},
	}

	return &KafkaPublisher{
		writer:  writer,
		breaker: gobreaker.NewCircuitBreaker[struct{}](settings),
		logger:  logger,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, msg models.OutboxMessage) error {
	_, err := p.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, p.writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(strconv.Itoa(msg.AggregateID)),
			Value: msg.Payload,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(msg.EventType)},
				{Key: "message_id", Value: []byte(msg.ID)},
			},
		})
	})
	return err
}
