package delivery

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/SlavaShagalov/rental-booking/internal/auth/usecase"
	"github.com/SlavaShagalov/rental-booking/internal/models"
	"github.com/SlavaShagalov/rental-booking/internal/pkg/app"
	pkgErrors "github.com/SlavaShagalov/rental-booking/internal/pkg/errors"
)

type Delivery struct {
	useCase  UseCase
	validate *validator.Validate
	logger   *slog.Logger
}

func New(useCase UseCase, validate *validator.Validate, logger *slog.Logger) *Delivery {
	return &Delivery{
		useCase:  useCase,
		validate: validate,
		logger:   logger,
	}
}

func (d *Delivery) HealthCheck(ctx context.Context) error {
	return d.useCase.HealthCheck(ctx)
}

func (d *Delivery) AddHandlers(router fiber.Router, auth fiber.Handler) {
	router.Post("/signup", d.signup)
	router.Post("/signin", d.signin)
	router.Get("/me", auth, d.me)
}

func (d *Delivery) signup(ctx *fiber.Ctx) error {
	var dto SignUpDTO
	if err := d.parse(ctx, &dto); err != nil {
		return err
	}

	// Layouts were checked by the validator.
	dateOfBirth, _ := time.Parse(models.DateLayout, dto.DateOfBirth)
	licenceSince, _ := time.Parse(models.DateLayout, dto.LicenceSince)
	licenceExpiry, _ := time.Parse(models.DateLayout, dto.LicenceExpiryDate)

	params := usecase.SignUpParams{
		Email:             dto.Email,
		Password:          dto.Password,
		FirstName:         dto.FirstName,
		LastName:          dto.LastName,
		DateOfBirth:       dateOfBirth,
		LicenceSince:      licenceSince,
		LicenceExpiryDate: licenceExpiry,
		Address:           dto.Address,
		City:              dto.City,
		Country:           dto.Country,
		Citizenship:       dto.Citizenship,
		PhoneNumber:       dto.PhoneNumber,
	}

	user, customer, err := d.useCase.SignUp(ctx.UserContext(), params)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(NewProfileResponse(user.Role(), user, &customer))
}

func (d *Delivery) signin(ctx *fiber.Ctx) error {
	var dto SignInDTO
	if err := d.parse(ctx, &dto); err != nil {
		return err
	}

	token, err := d.useCase.SignIn(ctx.UserContext(), usecase.SignInParams{
		Email:    dto.Email,
		Password: dto.Password,
	})
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusOK).JSON(token)
}

func (d *Delivery) me(ctx *fiber.Ctx) error {
	principal, ok := app.PrincipalFromContext(ctx.UserContext())
	if !ok {
		return pkgErrors.ErrMissingToken
	}

	user, customer, err := d.useCase.Me(ctx.UserContext(), principal)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusOK).JSON(NewProfileResponse(principal.Role(), user, customer))
}

func (d *Delivery) parse(ctx *fiber.Ctx, dto any) error {
	if err := ctx.BodyParser(dto); err != nil {
		d.logger.Debug("parse body", slog.String("path", ctx.Path()), slog.String("error", err.Error()))
		return pkgErrors.ErrInvalidRequest
	}
	if err := d.validate.Struct(dto); err != nil {
		d.logger.Debug("validate body", slog.String("path", ctx.Path()), slog.String("error", err.Error()))
		return pkgErrors.ValidationError(err.Error())
	}
	return nil
}
