package delivery

import (
	"context"

	"github.com/SlavaShagalov/rental-booking/internal/car/usecase"
	"github.com/SlavaShagalov/rental-booking/internal/models"
	"github.com/SlavaShagalov/rental-booking/internal/pkg/app"
)

type UseCase interface {
	app.HealthChecker

	List(ctx context.Context, filter usecase.Filter) ([]models.Car, error)
	Get(ctx context.Context, id int) (models.Car, error)
	Create(ctx context.Context, params usecase.CarParams) (models.Car, error)
	Update(ctx context.Context, id int, params usecase.CarParams) (models.Car, error)
	Delete(ctx context.Context, id int) error
}
