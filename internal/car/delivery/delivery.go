package delivery

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/SlavaShagalov/rental-booking/internal/car/usecase"
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

// AddHandlers registers the catalog. Reads are public, writes are for owners.
func (d *Delivery) AddHandlers(router fiber.Router, auth fiber.Handler) {
	router.Get("/", d.list)
	router.Get("/:id<int>", d.get)
	router.Post("/", auth, app.OwnerOnly(), d.create)
	router.Put("/:id<int>", auth, app.OwnerOnly(), d.update)
	router.Delete("/:id<int>", auth, app.OwnerOnly(), d.delete)
}

func (d *Delivery) list(ctx *fiber.Ctx) error {
	filter, err := parseFilter(ctx)
	if err != nil {
		d.logger.Debug("parse car filter", slog.String("error", err.Error()))
		return err
	}

	cars, err := d.useCase.List(ctx.UserContext(), filter)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusOK).JSON(NewCarListResponse(cars))
}

func (d *Delivery) get(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return pkgErrors.ErrInvalidRequest
	}

	car, err := d.useCase.Get(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusOK).JSON(NewCarResponse(car))
}

func (d *Delivery) create(ctx *fiber.Ctx) error {
	var dto CarDTO
	if err := d.parse(ctx, &dto); err != nil {
		return err
	}

	car, err := d.useCase.Create(ctx.UserContext(), dto.params())
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(NewCarResponse(car))
}

func (d *Delivery) update(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return pkgErrors.ErrInvalidRequest
	}

	var dto CarDTO
	if err = d.parse(ctx, &dto); err != nil {
		return err
	}

	car, err := d.useCase.Update(ctx.UserContext(), id, dto.params())
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusOK).JSON(NewCarResponse(car))
}

func (d *Delivery) delete(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return pkgErrors.ErrInvalidRequest
	}

	if err = d.useCase.Delete(ctx.UserContext(), id); err != nil {
		return err
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

func (d *Delivery) parse(ctx *fiber.Ctx, dto *CarDTO) error {
	if err := ctx.BodyParser(dto); err != nil {
		d.logger.Debug("parse car body", slog.String("error", err.Error()))
		return pkgErrors.ErrInvalidRequest
	}
	if err := d.validate.Struct(dto); err != nil {
		return pkgErrors.ValidationError(err.Error())
	}
	return nil
}

func parseFilter(ctx *fiber.Ctx) (usecase.Filter, error) {
	filter := usecase.Filter{
		Model:         ctx.Query("model"),
		ModelContains: ctx.Query("model_contains"),
		Search:        ctx.Query("search"),
		Ordering:      ctx.Query("ordering"),
	}

	for _, brand := range ctx.Context().QueryArgs().PeekMulti("brand") {
		if len(brand) > 0 {
			filter.Brands = append(filter.Brands, string(brand))
		}
	}

	var err error
	if filter.Availability, err = queryBool(ctx, "availability"); err != nil {
		return usecase.Filter{}, err
	}
	if filter.DailyRateMin, err = queryDecimal(ctx, "daily_rate_min"); err != nil {
		return usecase.Filter{}, err
	}
	if filter.DailyRateMax, err = queryDecimal(ctx, "daily_rate_max"); err != nil {
		return usecase.Filter{}, err
	}

	ints := []struct {
		key  string
		dest **int
	}{
		{"production_year_min", &filter.ProductionYearMin},
		{"production_year_max", &filter.ProductionYearMax},
		{"mileage_min", &filter.MileageMin},
		{"mileage_max", &filter.MileageMax},
	}
	for _, param := range ints {
		if *param.dest, err = queryInt(ctx, param.key); err != nil {
			return usecase.Filter{}, err
		}
	}

	return filter, nil
}

func queryBool(ctx *fiber.Ctx, key string) (*bool, error) {
	raw := ctx.Query(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, pkgErrors.ErrInvalidFilter
	}
	return &value, nil
}

func queryInt(ctx *fiber.Ctx, key string) (*int, error) {
	raw := ctx.Query(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, pkgErrors.ErrInvalidFilter
	}
	return &value, nil
}

func queryDecimal(ctx *fiber.Ctx, key string) (*decimal.Decimal, error) {
	raw := ctx.Query(key)
	if raw == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, pkgErrors.ErrInvalidFilter
	}
	return &value, nil
}
