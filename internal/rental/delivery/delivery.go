package delivery

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/SlavaShagalov/rental-booking/internal/models"
	"github.com/SlavaShagalov/rental-booking/internal/pkg/app"
	pkgErrors "github.com/SlavaShagalov/rental-booking/internal/pkg/errors"
	"github.com/SlavaShagalov/rental-booking/internal/rental/usecase"
)

type Delivery struct {
	useCase UseCase
	logger  *slog.Logger
}

func New(useCase UseCase, logger *slog.Logger) *Delivery {
	return &Delivery{
		useCase: useCase,
		logger:  logger,
	}
}

func (d *Delivery) HealthCheck(ctx context.Context) error {
	return d.useCase.HealthCheck(ctx)
}

func (d *Delivery) AddHandlers(router fiber.Router, auth fiber.Handler) {
	router.Post("/create", auth, d.create)
	router.Get("/my-rentals", auth, d.listMy)
	router.Get("/:id<int>", auth, d.get)
	router.Get("/", auth, d.list)
}

func (d *Delivery) create(ctx *fiber.Ctx) error {
	var dto CreateRentalDTO
	if err := ctx.BodyParser(&dto); err != nil {
		d.logger.Debug("parse create rental body", slog.String("error", err.Error()))
		return pkgErrors.ErrInvalidRequest
	}

	principal, err := principalFrom(ctx)
	if err != nil {
		return err
	}

	params := usecase.CreateParams{
		CarID:     dto.Car,
		StartDate: dto.StartDate,
		EndDate:   dto.EndDate,
	}

	rental, err := d.useCase.CreateRental(ctx.UserContext(), principal, params)
	if err != nil {
		// An unknown or unavailable car is a bad booking request, not a missing resource.
		if pkgErrors.Is(err, pkgErrors.ErrCarNotAvailable) {
			return ctx.Status(fiber.StatusBadRequest).JSON(pkgErrors.ErrCarNotAvailable.Map())
		}
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(NewRentalWithPaymentResponse(rental))
}

func (d *Delivery) listMy(ctx *fiber.Ctx) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return err
	}

	rentals, err := d.useCase.ListMyRentals(ctx.UserContext(), principal)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusOK).JSON(NewRentalWithPaymentListResponse(rentals))
}

func (d *Delivery) get(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return pkgErrors.ErrInvalidRequest
	}

	principal, err := principalFrom(ctx)
	if err != nil {
		return err
	}

	rental, err := d.useCase.GetRentalDetail(ctx.UserContext(), principal, id)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusOK).JSON(NewRentalWithPaymentResponse(rental))
}

func (d *Delivery) list(ctx *fiber.Ctx) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return err
	}

	rentals, err := d.useCase.ListAllRentals(ctx.UserContext(), principal)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusOK).JSON(NewRentalListResponse(rentals))
}

func principalFrom(ctx *fiber.Ctx) (models.Principal, error) {
	principal, ok := app.PrincipalFromContext(ctx.UserContext())
	if !ok {
		return models.Principal{}, pkgErrors.ErrMissingToken
	}
	return principal, nil
}
