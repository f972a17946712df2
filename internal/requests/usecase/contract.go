package usecase

import (
	"context"

	"github.com/SlavaShagalov/rental-booking/internal/models"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

type Repository interface {
	HealthCheck(ctx context.Context) error

	GetRequests(ctx context.Context, limit, offset int) ([]models.Request, error)
}
