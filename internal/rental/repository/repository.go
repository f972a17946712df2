package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/SlavaShagalov/rental-booking/internal/models"
	pkgErrors "github.com/SlavaShagalov/rental-booking/internal/pkg/errors"
	"github.com/SlavaShagalov/rental-booking/internal/rental/usecase"
	"github.com/SlavaShagalov/rental-booking/pkg/sqlxutils"
)

const (
	codeExclusionViolation pq.ErrorCode = "23P01"
	noOverlapConstraint                 = "rentals_no_overlap"
)

// overlapQuery matches rentals of every status, cancelled ones included.
const overlapQuery = `
	SELECT EXISTS (
		SELECT 1
		FROM rentals
		WHERE car_id = $1 AND start_date < $2 AND end_date > $3
	);`

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

// InTx runs fn at the default READ COMMITTED level. Two bookings that race
// past the overlap check are stopped by the rentals_no_overlap constraint.
func (r *SqlxRepository) InTx(ctx context.Context, fn func(tx usecase.Tx) error) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error(err.Error())
		return errors.Wrap(err, "begin transaction")
	}

	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			r.logger.Error("rollback failed", slog.String("error", rbErr.Error()))
			err = multierr.Append(err, rbErr)
		}
	}()

	if err = fn(&sqlxTx{tx: tx, logger: r.logger}); err != nil {
		return mapTxError(err)
	}

	if err = tx.Commit(); err != nil {
		r.logger.Error(err.Error())
		return mapTxError(errors.Wrap(err, "commit transaction"))
	}

	return nil
}

func (r *SqlxRepository) Get(ctx context.Context, id int) (models.RentalWithPayment, error) {
	return getRental(ctx, r.db, r.logger, id)
}

func (r *SqlxRepository) ListByCustomer(ctx context.Context, customerID int) ([]models.RentalWithPayment, error) {
	query := `SELECT` + rentalColumns + paymentColumns + rentalFrom + paymentJoin + `
	WHERE r.customer_id = $1
	ORDER BY r.id;`

	rows := make([]rentalPaymentRow, 0)
	if err := sqlxutils.Select(ctx, r.db, &rows, query, customerID); err != nil {
		r.logger.Error(err.Error())
		return nil, errors.Wrap(err, "select customer rentals")
	}

	rentals := make([]models.RentalWithPayment, 0, len(rows))
	for _, row := range rows {
		rentals = append(rentals, row.toModel())
	}

	return rentals, nil
}

func (r *SqlxRepository) List(ctx context.Context) ([]models.Rental, error) {
	query := `SELECT` + rentalColumns + rentalFrom + `
	ORDER BY r.id;`

	rows := make([]rentalRow, 0)
	if err := sqlxutils.Select(ctx, r.db, &rows, query); err != nil {
		r.logger.Error(err.Error())
		return nil, errors.Wrap(err, "select rentals")
	}

	rentals := make([]models.Rental, 0, len(rows))
	for _, row := range rows {
		rentals = append(rentals, row.toModel())
	}

	return rentals, nil
}

type sqlxTx struct {
	tx     *sqlx.Tx
	logger *slog.Logger
}

func (t *sqlxTx) GetAvailableCar(ctx context.Context, carID int) (models.Car, error) {
	const getCmd = `
	SELECT id, brand, model, description, production_year, mileage, vin, daily_rate, availability
	FROM cars
	WHERE id = $1 AND availability;`

	var car models.Car
	if err := sqlxutils.Get(ctx, t.tx, &car, getCmd, carID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Car{}, pkgErrors.ErrCarNotAvailable
		}
		t.logger.Error(err.Error())
		return models.Car{}, errors.Wrap(err, "select car")
	}

	return car, nil
}

// HasOverlap reports whether any rental of the car intersects the half-open
// period [start, end).
func (t *sqlxTx) HasOverlap(ctx context.Context, carID int, start, end time.Time) (bool, error) {
	var exists bool
	if err := sqlxutils.Get(ctx, t.tx, &exists, overlapQuery, carID,
		end.Format(models.DateLayout),
		start.Format(models.DateLayout),
	); err != nil {
		t.logger.Error(err.Error())
		return false, errors.Wrap(err, "check rental overlap")
	}

	return exists, nil
}

func (t *sqlxTx) Create(ctx context.Context, params usecase.InsertParams) (models.RentalWithPayment, error) {
	const createRentalCmd = `
	INSERT INTO rentals (customer_id, car_id, start_date, end_date, total_cost, status)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id;`

	const createPaymentCmd = `
	INSERT INTO payments (rental_id, amount, status)
	VALUES ($1, $2, $3);`

	var rentalID int
	err := sqlxutils.Get(ctx, t.tx, &rentalID, createRentalCmd,
		params.CustomerID,
		params.CarID,
		params.StartDate.Format(models.DateLayout),
		params.EndDate.Format(models.DateLayout),
		params.TotalCost,
		models.RentalPending,
	)
	if err != nil {
		t.logger.Error(err.Error())
		return models.RentalWithPayment{}, errors.Wrap(err, "insert rental")
	}

	if _, err = t.tx.ExecContext(ctx, createPaymentCmd, rentalID, params.TotalCost, models.PaymentCompleted); err != nil {
		t.logger.Error(err.Error())
		return models.RentalWithPayment{}, errors.Wrap(err, "insert payment")
	}

	return getRental(ctx, t.tx, t.logger, rentalID)
}

func (t *sqlxTx) AddOutboxMessage(ctx context.Context, msg models.OutboxMessage) error {
	const createCmd = `
	INSERT INTO outbox_messages (id, aggregate_id, event_type, payload)
	VALUES ($1, $2, $3, $4);`

	if _, err := t.tx.ExecContext(ctx, createCmd, msg.ID, msg.AggregateID, msg.EventType, string(msg.Payload)); err != nil {
		t.logger.Error(err.Error())
		return errors.Wrap(err, "insert outbox message")
	}

	return nil
}

func getRental(ctx context.Context, q sqlxutils.Queryer, logger *slog.Logger, id int) (models.RentalWithPayment, error) {
	query := `SELECT` + rentalColumns + paymentColumns + rentalFrom + paymentJoin + `
	WHERE r.id = $1;`

	var row rentalPaymentRow
	if err := sqlxutils.Get(ctx, q, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RentalWithPayment{}, pkgErrors.ErrRentalNotFound
		}
		logger.Error(err.Error())
		return models.RentalWithPayment{}, errors.Wrap(err, "select rental")
	}

	return row.toModel(), nil
}

// mapTxError reports a lost race with a concurrent booking as a conflict.
func mapTxError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	if pqErr.Code == codeExclusionViolation && pqErr.Constraint == noOverlapConstraint {
		return pkgErrors.ErrCarAlreadyBooked
	}
	return err
}
