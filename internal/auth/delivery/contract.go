package delivery

import (
	"context"

	"github.com/SlavaShagalov/rental-booking/internal/auth/usecase"
	"github.com/SlavaShagalov/rental-booking/internal/models"
	"github.com/SlavaShagalov/rental-booking/internal/pkg/app"
)

type UseCase interface {
	app.HealthChecker

	SignUp(ctx context.Context, params usecase.SignUpParams) (models.User, models.Customer, error)
	SignIn(ctx context.Context, params usecase.SignInParams) (models.TokenResponse, error)
	Me(ctx context.Context, principal models.Principal) (models.User, *models.Customer, error)
}
