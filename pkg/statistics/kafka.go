package statistics

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

type BacklogError string

func (e BacklogError) Error() string {
	return string(e)
}

const (
	ErrNoWriter BacklogError = "statistics has no writer"
	ErrNoReader BacklogError = "statistics has no reader"
)

const (
	saveAttempts = 3
	saveBackoff  = 200 * time.Millisecond
	batchTimeout = 10 * time.Millisecond
)

type Request struct {
	Method  string `json:"method"`
	URL     string `json:"url"`
	Body    string `json:"body"`
	Headers string `json:"headers"`
}

// RequestSaver persists consumed request records.
type RequestSaver interface {
	SaveRequest(ctx context.Context, req Request) error
}

type KafkaStatistics struct {
	reader *kafka.Reader
	writer *kafka.Writer
	logger *slog.Logger
	saver  RequestSaver
}

// NewKafkaStatistics builds a producer (writer set) or a consumer (reader and
// saver set). The reader must belong to a consumer group.
func NewKafkaStatistics(reader *kafka.Reader, writer *kafka.Writer, logger *slog.Logger, saver RequestSaver) *KafkaStatistics {
	return &KafkaStatistics{
		reader: reader,
		writer: writer,
		logger: logger,
		saver:  saver,
	}
}

// NewWriter returns an asynchronous producer for the statistics topic.
// WriteMessages only enqueues, so a slow or absent broker never delays the
// request being recorded; delivery errors are logged.
func NewWriter(addresses []string, topic string, logger *slog.Logger) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(addresses...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           batchTimeout,
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("deliver request statistics",
					slog.Int("messages", len(messages)),
					slog.String("error", err.Error()),
				)
			}
		},
	}
}

func (s *KafkaStatistics) Push(ctx context.Context, req Request) error {
	if s.writer == nil {
		return ErrNoWriter
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return errors.Wrap(err, "marshal request")
	}

	uid := uuid.New().String()
	msg := kafka.Message{
		Key:   []byte(uid),
		Value: payload,
	}
	s.logger.Debug("write message to kafka...",
		slog.String("topic", s.writer.Topic),
		slog.String("key", uid),
	)

	return s.writer.WriteMessages(ctx, msg)
}

// SaveRequest consumes one message and stores it, retrying the insert a few
// times. The offset is committed once the message is stored or found to be
// malformed.
func (s *KafkaStatistics) SaveRequest(ctx context.Context) error {
	if s.reader == nil {
		return ErrNoReader
	}

	msg, err := s.reader.FetchMessage(ctx)
	if err != nil {
		return err
	}

	s.logger.Debug("read message from kafka",
		slog.String("topic", msg.Topic),
		slog.Int("partition", msg.Partition),
		slog.Int64("offset", msg.Offset),
		slog.String("key", string(msg.Key)),
	)

	var req Request
	if err = json.Unmarshal(msg.Value, &req); err != nil {
		return multierror.Append(errors.Wrap(err, "unmarshal request"), s.reader.CommitMessages(ctx, msg))
	}

	var result *multierror.Error
	for attempt := 1; attempt <= saveAttempts; attempt++ {
		if err = s.saver.SaveRequest(ctx, req); err == nil {
			return s.reader.CommitMessages(ctx, msg)
		}
		result = multierror.Append(result, errors.Wrapf(err, "attempt %d", attempt))

		select {
		case <-ctx.Done():
			return multierror.Append(result, ctx.Err())
		case <-time.After(time.Duration(attempt) * saveBackoff):
		}
	}

	return result.ErrorOrNil()
}
