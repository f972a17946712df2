package usecase

import (
	"context"
	"log/slog"

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

// List pages through the request log. A zero limit means DefaultLimit.
func (u *UseCase) List(ctx context.Context, limit, offset int) ([]models.Request, error) {
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 0 || limit > MaxLimit || offset < 0 {
		return nil, pkgErrors.ErrInvalidPage
	}

	return u.repo.GetRequests(ctx, limit, offset)
}
