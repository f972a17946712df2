package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	slogfiber "github.com/samber/slog-fiber"

	pkgErrors "github.com/SlavaShagalov/rental-booking/internal/pkg/errors"
)

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Delivery interface {
	HealthChecker

	// AddHandlers registers routes; auth resolves the caller for protected ones.
	AddHandlers(router fiber.Router, auth fiber.Handler)
}

type Route struct {
	Prefix   string
	Delivery Delivery
}

type FiberApp struct {
	app    *fiber.App
	config WebConfig
	logger *slog.Logger
}

func NewFiberApp(config WebConfig, routes []Route, auth fiber.Handler, logger *slog.Logger, middlewares ...fiber.Handler) *FiberApp {
	app := fiber.New(fiber.Config{
		ReadTimeout:           time.Duration(config.ReadTimeoutSec) * time.Second,
		WriteTimeout:          time.Duration(config.WriteTimeoutSec) * time.Second,
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(slogfiber.New(logger))
	for _, mw := range middlewares {
		app.Use(mw)
	}

	checkers := make([]HealthChecker, 0, len(routes))
	api := app.Group("/api/v1")
	for _, route := range routes {
		route.Delivery.AddHandlers(api.Group(route.Prefix), auth)
		checkers = append(checkers, route.Delivery)
	}

	app.Get("/manage/health", healthHandler(checkers, logger))

	return &FiberApp{
		app:    app,
		config: config,
		logger: logger,
	}
}

// App exposes the underlying fiber application, mainly for app.Test.
func (a *FiberApp) App() *fiber.App {
	return a.app
}

func (a *FiberApp) Start() error {
	return a.app.Listen(a.config.Host + ":" + a.config.Port)
}

func (a *FiberApp) Shutdown(ctx context.Context) error {
	return a.app.ShutdownWithContext(ctx)
}

// ErrorHandler renders handler errors as {"message": ...} with the status of
// their kind.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if pkgErrors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
		}

		status := pkgErrors.Status(err)
		if status == fiber.StatusInternalServerError {
			logger.Error("request failed",
				slog.String("method", ctx.Method()),
				slog.String("path", ctx.Path()),
				slog.String("error", err.Error()),
			)
		}

		return ctx.Status(status).JSON(fiber.Map{"message": pkgErrors.Message(err)})
	}
}

func healthHandler(checkers []HealthChecker, logger *slog.Logger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		for _, checker := range checkers {
			if err := checker.HealthCheck(ctx.UserContext()); err != nil {
				logger.Error("health check failed", slog.String("error", err.Error()))
				return ctx.SendStatus(fiber.StatusServiceUnavailable)
			}
		}
		return ctx.SendStatus(fiber.StatusOK)
	}
}
