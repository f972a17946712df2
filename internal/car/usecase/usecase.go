package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SlavaShagalov/rental-booking/internal/models"
	pkgErrors "github.com/SlavaShagalov/rental-booking/internal/pkg/errors"
)

var orderingFields = map[string]struct{}{
	"daily_rate":      {},
	"mileage":         {},
	"production_year": {},
}

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

func (u *UseCase) List(ctx context.Context, filter Filter) ([]models.Car, error) {
	if filter.Ordering == "" {
		filter.Ordering = DefaultOrdering
	}
	if _, ok := orderingFields[strings.TrimPrefix(filter.Ordering, "-")]; !ok {
		return nil, pkgErrors.ErrInvalidOrdering
	}

	if filter.DailyRateMin != nil && filter.DailyRateMax != nil && filter.DailyRateMin.GreaterThan(*filter.DailyRateMax) {
		u.logger.Debug("empty daily rate range",
			slog.String("min", filter.DailyRateMin.String()),
			slog.String("max", filter.DailyRateMax.String()),
		)
		return []models.Car{}, nil
	}

	return u.repo.List(ctx, filter)
}

func (u *UseCase) Get(ctx context.Context, id int) (models.Car, error) {
	return u.repo.Get(ctx, id)
}

func (u *UseCase) Create(ctx context.Context, params CarParams) (models.Car, error) {
	if params.DailyRate.IsNegative() {
		return models.Car{}, pkgErrors.ErrNegativeDailyRate
	}

	car, err := u.repo.Create(ctx, params)
	if err != nil {
		return models.Car{}, err
	}

	u.logger.Debug("car created", slog.Int("car_id", car.ID), slog.String("vin", car.VIN))
	return car, nil
}

func (u *UseCase) Update(ctx context.Context, id int, params CarParams) (models.Car, error) {
	if params.DailyRate.IsNegative() {
		return models.Car{}, pkgErrors.ErrNegativeDailyRate
	}

	return u.repo.Update(ctx, id, params)
}

// Delete removes the car together with its rentals.
func (u *UseCase) Delete(ctx context.Context, id int) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return err
	}

	u.logger.Debug("car deleted", slog.Int("car_id", id))
	return nil
}
