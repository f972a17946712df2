package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/SlavaShagalov/rental-booking/internal/models"
	pkgErrors "github.com/SlavaShagalov/rental-booking/internal/pkg/errors"
)

type UseCase struct {
	repo   Repository
	logger *slog.Logger
}

func New(repo Repository, logger *slog.Logger) *UseCase {
	return &UseCase{
		repo:   repo,
		logger: logger,
	}
}

func (u *UseCase) HealthCheck(ctx context.Context) error {
	return u.repo.HealthCheck(ctx)
}

// CreateRental books a car for the calling customer. The availability check,
// the overlap check and the inserts share one transaction; two concurrent
// bookings of intersecting periods that both pass the check are stopped by the
// storage exclusion constraint.
func (u *UseCase) CreateRental(ctx context.Context, principal models.Principal, params CreateParams) (models.RentalWithPayment, error) {
	start, end, err := parseDates(params.StartDate, params.EndDate)
	if err != nil {
		return models.RentalWithPayment{}, err
	}

	customerID, ok := principal.CustomerID()
	if !ok {
		return models.RentalWithPayment{}, pkgErrors.ErrNotCustomer
	}

	var created models.RentalWithPayment
	err = u.repo.InTx(ctx, func(tx Tx) error {
		car, err := tx.GetAvailableCar(ctx, params.CarID)
		if err != nil {
			return err
		}

		if !end.After(start) {
			return pkgErrors.ErrEndBeforeStart
		}

		overlap, err := tx.HasOverlap(ctx, car.ID, start, end)
		if err != nil {
			return err
		}
		if overlap {
			u.logger.Debug("rental overlaps existing booking",
				slog.Int("car_id", car.ID),
				slog.String("start_date", params.StartDate),
				slog.String("end_date", params.EndDate),
			)
			return pkgErrors.ErrCarAlreadyBooked
		}

		created, err = tx.Create(ctx, InsertParams{
			CustomerID: customerID,
			CarID:      car.ID,
			StartDate:  start,
			EndDate:    end,
			TotalCost:  models.TotalCost(car.DailyRate, start, end),
		})
		if err != nil {
			return err
		}

		msg, err := newRentalCreatedMessage(created)
		if err != nil {
			return err
		}

		return tx.AddOutboxMessage(ctx, msg)
	})
	if err != nil {
		return models.RentalWithPayment{}, err
	}

	u.logger.Debug("rental created",
		slog.Int("rental_id", created.Rental.ID),
		slog.Int("customer_id", customerID),
		slog.String("total_cost", created.Rental.TotalCost.StringFixed(2)),
	)

	return created, nil
}

func (u *UseCase) GetRentalDetail(ctx context.Context, principal models.Principal, id int) (models.RentalWithPayment, error) {
	if !principal.IsOwner() {
		return models.RentalWithPayment{}, pkgErrors.ErrOwnerOnly
	}

	return u.repo.Get(ctx, id)
}

func (u *UseCase) ListMyRentals(ctx context.Context, principal models.Principal) ([]models.RentalWithPayment, error) {
	customerID, ok := principal.CustomerID()
	if !ok {
		return nil, pkgErrors.ErrCustomerNotFound
	}

	return u.repo.ListByCustomer(ctx, customerID)
}

func (u *UseCase) ListAllRentals(ctx context.Context, principal models.Principal) ([]models.Rental, error) {
	if !principal.IsOwner() {
		return nil, pkgErrors.ErrOwnerOnly
	}

	return u.repo.List(ctx)
}

func parseDates(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse(models.DateLayout, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, pkgErrors.ErrInvalidDateFormat
	}
	end, err := time.Parse(models.DateLayout, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, pkgErrors.ErrInvalidDateFormat
	}
	return start, end, nil
}

func newRentalCreatedMessage(created models.RentalWithPayment) (models.OutboxMessage, error) {
	rental := created.Rental
	event := models.RentalCreatedEvent{
		RentalID:   rental.ID,
		CustomerID: rental.Customer.ID,
		CarID:      rental.Car.ID,
		StartDate:  rental.StartDate.Format(models.DateLayout),
		EndDate:    rental.EndDate.Format(models.DateLayout),
		TotalCost:  rental.TotalCost.StringFixed(2),
		CreatedAt:  rental.CreatedAt,
	}
	if created.Payment != nil {
		event.PaymentID = created.Payment.ID
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return models.OutboxMessage{}, errors.Wrap(err, "marshal rental event")
	}

	return models.OutboxMessage{
		ID:          uuid.NewString(),
		AggregateID: rental.ID,
		EventType:   models.EventRentalCreated,
		Payload:     payload,
	}, nil
}
