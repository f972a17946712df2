package app

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/SlavaShagalov/rental-booking/pkg/statistics"
)

// Publisher accepts request records for the statistics pipeline.
type Publisher interface {
	Push(ctx context.Context, req statistics.Request) error
}

const (
	redacted    = "[redacted]"
	pushTimeout = 250 * time.Millisecond
)

// NewStatisticsMW create statistics middleware
func NewStatisticsMW(stat Publisher, logger *slog.Logger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if strings.HasPrefix(ctx.Path(), "/manage/") {
			return ctx.Next()
		}

		var headers strings.Builder
		for key, values := range ctx.GetReqHeaders() {
			value := strings.Join(values, ", ")
			if strings.EqualFold(key, fiber.HeaderAuthorization) {
				value = redacted
			}
			headers.WriteString(key + ": " + value + "\r\n")
		}

		body := string(ctx.Body())
		if strings.HasPrefix(ctx.Path(), "/api/v1/auth/") {
			body = redacted
		}

		// fiber strings alias the request buffer, which is reused after the handler returns.
		req := statistics.Request{
			Method:  utils.CopyString(ctx.Method()),
			URL:     utils.CopyString(ctx.OriginalURL()),
			Body:    body,
			Headers: headers.String(),
		}

		pushCtx, cancel := context.WithTimeout(ctx.UserContext(), pushTimeout)
		err := stat.Push(pushCtx, req)
		cancel()
		if err != nil {
			logger.Error("push request statistics", slog.String("error", err.Error()))
		}

		return ctx.Next()
	}
}
