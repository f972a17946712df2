package repository

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SlavaShagalov/rental-booking/internal/car/usecase"
	pkgErrors "github.com/SlavaShagalov/rental-booking/internal/pkg/errors"
)

func newMockRepository(t *testing.T) (*SqlxRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewSqlxRepository(sqlx.NewDb(db, "postgres"), logger), mock
}

var octavia = usecase.CarParams{
	Brand:          "Skoda",
	Model:          "Octavia",
	ProductionYear: 2021,
	Mileage:        12000,
	VIN:            "TMBJJ7NE1L0123456",
	DailyRate:      decimal.RequireFromString("55.90"),
	Availability:   true,
}

func carRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "brand", "model", "description", "production_year", "mileage", "vin", "daily_rate", "availability",
	}).AddRow(int64(8), "Skoda", "Octavia", "", int64(2021), int64(12000), "TMBJJ7NE1L0123456", "55.90", true)
}

func TestCreateCar(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery("INSERT INTO cars").
		WithArgs("Skoda", "Octavia", "", 2021, 12000, "TMBJJ7NE1L0123456", sqlmock.AnyArg(), true).
		WillReturnRows(carRows())

	car, err := repo.Create(context.Background(), octavia)
	require.NoError(t, err)
	assert.Equal(t, 8, car.ID)
	assert.Equal(t, "55.90", car.DailyRate.StringFixed(2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCarDuplicateVin(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery("INSERT INTO cars").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "cars_vin_key"})

	_, err := repo.Create(context.Background(), octavia)
	assert.ErrorIs(t, err, pkgErrors.ErrVinTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCarMissing(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery("UPDATE cars").
		WithArgs("Skoda", "Octavia", "", 2021, 12000, "TMBJJ7NE1L0123456", sqlmock.AnyArg(), true, 42).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Update(context.Background(), 42, octavia)
	assert.ErrorIs(t, err, pkgErrors.ErrCarNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCar(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectExec("DELETE FROM cars").WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM cars").WithArgs(4).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), 3))
	assert.ErrorIs(t, repo.Delete(context.Background(), 4), pkgErrors.ErrCarNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
