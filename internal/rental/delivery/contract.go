package delivery

import (
	"context"

	"github.com/SlavaShagalov/rental-booking/internal/models"
	"github.com/SlavaShagalov/rental-booking/internal/pkg/app"
	"github.com/SlavaShagalov/rental-booking/internal/rental/usecase"
)

type UseCase interface {
	app.HealthChecker

	CreateRental(ctx context.Context, principal models.Principal, params usecase.CreateParams) (models.RentalWithPayment, error)
	GetRentalDetail(ctx context.Context, principal models.Principal, id int) (models.RentalWithPayment, error)
	ListMyRentals(ctx context.Context, principal models.Principal) ([]models.RentalWithPayment, error)
	ListAllRentals(ctx context.Context, principal models.Principal) ([]models.Rental, error)
}
