package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SlavaShagalov/rental-booking/internal/models"
)

type CreateParams struct {
	CarID     int
	StartDate string
	EndDate   string
}

type InsertParams struct {
	CustomerID int
	CarID      int
	StartDate  time.Time
	EndDate    time.Time
	TotalCost  decimal.Decimal
}

// Tx is the part of the repository available inside a booking transaction.
type Tx interface {
	GetAvailableCar(ctx context.Context, carID int) (models.Car, error)
	HasOverlap(ctx context.Context, carID int, start, end time.Time) (bool, error)
	// Create stores the rental with status pending and its completed payment.
	Create(ctx context.Context, params InsertParams) (models.RentalWithPayment, error)
	AddOutboxMessage(ctx context.Context, msg models.OutboxMessage) error
}

type Repository interface {
	HealthCheck(ctx context.Context) error

	// InTx runs fn in one transaction. The transaction commits
	// only when fn returns nil.
	InTx(ctx context.Context, fn func(tx Tx) error) error
	Get(ctx context.Context, id int) (models.RentalWithPayment, error)
	ListByCustomer(ctx context.Context, customerID int) ([]models.RentalWithPayment, error)
	List(ctx context.Context) ([]models.Rental, error)
}
