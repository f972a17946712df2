package repository

import (
	"context"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/SlavaShagalov/rental-booking/internal/models"
	"github.com/SlavaShagalov/rental-booking/pkg/sqlxutils"
	"github.com/SlavaShagalov/rental-booking/pkg/statistics"
)

type SqlxRepository struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewSqlxRepository(db *sqlx.DB, logger *slog.Logger) *SqlxRepository {
	return &SqlxRepository{
		db:     db,
		logger: logger,
	}
}

func (r *SqlxRepository) HealthCheck(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// GetRequests returns a page of the request log, newest first.
func (r *SqlxRepository) GetRequests(ctx context.Context, limit, offset int) ([]models.Request, error) {
	const getCmd = `
	SELECT id, method, url, body, headers, created_at
	FROM requests
	ORDER BY id DESC
	LIMIT $1 OFFSET $2;`

	reqs := make([]models.Request, 0)
	if err := sqlxutils.Select(ctx, r.db, &reqs, getCmd, limit, offset); err != nil {
		r.logger.Error(err.Error())
		return nil, errors.Wrap(err, "select requests")
	}

	return reqs, nil
}

func (r *SqlxRepository) SaveRequest(ctx context.Context, req statistics.Request) error {
	const createCmd = `
	INSERT INTO requests (method, url, body, headers)
	VALUES ($1, $2, $3, $4);`

	if _, err := r.db.ExecContext(ctx, createCmd, req.Method, req.URL, req.Body, req.Headers); err != nil {
		r.logger.Error(err.Error())
		return errors.Wrap(err, "save request")
	}

	return nil
}
