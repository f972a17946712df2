package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/SlavaShagalov/rental-booking/internal/models"
	pkgErrors "github.com/SlavaShagalov/rental-booking/internal/pkg/errors"
)

type ctxKey string

const principalKey ctxKey = "principal"

// Authenticator turns a bearer token into the caller it was issued to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.Principal, error)
}

// NewAuth create auth middleware
func NewAuth(authenticator Authenticator, logger *slog.Logger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		header := ctx.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return pkgErrors.ErrMissingToken
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		principal, err := authenticator.Authenticate(ctx.UserContext(), token)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			return err
		}

		ctx.SetUserContext(WithPrincipal(ctx.UserContext(), principal))

		return ctx.Next()
	}
}

// OwnerOnly rejects callers without the owner role. It must run after NewAuth.
func OwnerOnly() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(ctx.UserContext())
		if !ok {
			return pkgErrors.ErrMissingToken
		}
		if !principal.IsOwner() {
			return pkgErrors.ErrOwnerOnly
		}
		return ctx.Next()
	}
}

func WithPrincipal(ctx context.Context, principal models.Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

func PrincipalFromContext(ctx context.Context) (models.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(models.Principal)
	return principal, ok
}
