package outbox

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/SlavaShagalov/rental-booking/internal/models"
)

// BatchHandler publishes a claimed batch and returns the ids that were
// delivered; only those are marked processed.
type BatchHandler func(ctx context.Context, msgs []models.OutboxMessage) ([]string, error)

type PgxRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPgxRepository(pool *pgxpool.Pool, logger *slog.Logger) *PgxRepository {
	return &PgxRepository{
		pool:   pool,
		logger: logger,
	}
}

func (r *PgxRepository) HealthCheck(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// ProcessBatch claims up to limit unprocessed messages with FOR UPDATE SKIP
// LOCKED, so several relays never publish the same row concurrently.
func (r *PgxRepository) ProcessBatch(ctx context.Context, limit int, handle BatchHandler) (processed int, err error) {
	const claimCmd = `
	SELECT id, aggregate_id, event_type, payload, created_at
	FROM outbox_messages
	WHERE processed_at IS NULL
	ORDER BY created_at
	LIMIT $1
	FOR UPDATE SKIP LOCKED;`

	const markCmd = `
	UPDATE outbox_messages
	SET processed_at = now()
	WHERE id = ANY($1::uuid[]);`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "begin transaction")
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			err = multierr.Append(err, rbErr)
		}
	}()

	rows, err := tx.Query(ctx, claimCmd, limit)
	if err != nil {
		return 0, errors.Wrap(err, "claim outbox messages")
	}
	msgs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.OutboxMessage, error) {
		var msg models.OutboxMessage
		err := row.Scan(&msg.ID, &msg.AggregateID, &msg.EventType, &msg.Payload, &msg.CreatedAt)
		return msg, err
	})
	if err != nil {
		return 0, errors.Wrap(err, "scan outbox messages")
	}
	if len(msgs) == 0 {
		return 0, nil
	}

	delivered, handleErr := handle(ctx, msgs)

	if len(delivered) > 0 {
		if _, err = tx.Exec(ctx, markCmd, delivered); err != nil {
			return 0, multierr.Append(handleErr, errors.Wrap(err, "mark outbox messages"))
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, multierr.Append(handleErr, errors.Wrap(err, "commit transaction"))
	}

	return len(delivered), handleErr
}
