package delivery

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/SlavaShagalov/rental-booking/internal/models"
	"github.com/SlavaShagalov/rental-booking/internal/pkg/app"
	pkgErrors "github.com/SlavaShagalov/rental-booking/internal/pkg/errors"
)

type RequestResponse struct {
	ID        int       `json:"id"`
	Method    string    `json:"method"`
	URL       string    `json:"url"`
	Body      string    `json:"body"`
	Headers   string    `json:"headers"`
	CreatedAt time.Time `json:"created_at"`
}

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
	router.Get("/requests", auth, app.OwnerOnly(), d.list)
}

func (d *Delivery) list(ctx *fiber.Ctx) error {
	limit, err := queryInt(ctx, "limit")
	if err != nil {
		return err
	}
	offset, err := queryInt(ctx, "offset")
	if err != nil {
		return err
	}

	reqs, err := d.useCase.List(ctx.UserContext(), limit, offset)
	if err != nil {
		return err
	}

	resp := make([]RequestResponse, 0, len(reqs))
	for _, req := range reqs {
		resp = append(resp, newRequestResponse(req))
	}

	return ctx.Status(fiber.StatusOK).JSON(resp)
}

func newRequestResponse(req models.Request) RequestResponse {
	return RequestResponse{
		ID:        req.ID,
		Method:    req.Method,
		URL:       req.URL,
		Body:      req.Body,
		Headers:   req.Headers,
		CreatedAt: req.CreatedAt,
	}
}

func queryInt(ctx *fiber.Ctx, key string) (int, error) {
	raw := ctx.Query(key)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgErrors.ErrInvalidPage
	}
	return value, nil
}
