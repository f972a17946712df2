package delivery

import (
	"context"

	"github.com/SlavaShagalov/rental-booking/internal/models"
	"github.com/SlavaShagalov/rental-booking/internal/pkg/app"
)

type UseCase interface {
	app.HealthChecker

	List(ctx context.Context, limit, offset int) ([]models.Request, error)
}
