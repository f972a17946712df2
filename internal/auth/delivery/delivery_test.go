package delivery_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/SlavaShagalov/rental-booking/internal/auth/delivery"
	"github.com/SlavaShagalov/rental-booking/internal/auth/mocks"
	"github.com/SlavaShagalov/rental-booking/internal/auth/usecase"
	"github.com/SlavaShagalov/rental-booking/internal/models"
	"github.com/SlavaShagalov/rental-booking/internal/pkg/app"
	pkgErrors "github.com/SlavaShagalov/rental-booking/internal/pkg/errors"
	"github.com/SlavaShagalov/rental-booking/internal/pkg/hasher"
	"github.com/SlavaShagalov/rental-booking/internal/service"
)

type testEnv struct {
	app    *fiber.App
	repo   *mocks.MockRepository
	tokens *service.TokenService
	hasher *hasher.BcryptHasher
}

func newEnv(t *testing.T) testEnv {
	repo := mocks.NewMockRepository(gomock.NewController(t))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens, err := service.NewTokenService("test-secret", "rental-booking", time.Hour)
	require.NoError(t, err)
	h := hasher.NewBcryptHasher(bcrypt.MinCost)

	uc := usecase.New(repo, tokens, h, logger)
	d := delivery.New(uc, validator.New(), logger)
	fiberApp := app.NewFiberApp(app.WebConfig{}, []app.Route{{Prefix: "/auth", Delivery: d}}, app.NewAuth(uc, logger), logger)

	return testEnv{app: fiberApp.App(), repo: repo, tokens: tokens, hasher: h}
}

func request(t *testing.T, fiberApp *fiber.App, method, target, token, body string) (*http.Response, map[string]any) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := fiberApp.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

const signUpBody = `{
	"email": "anna@example.com",
	"password": "password123",
	"first_name": "Anna",
	"date_of_birth": "1995-04-02",
	"licence_since": "2015-01-01",
	"licence_expiry_date": "2030-01-01",
	"address": "1 Main St",
	"city": "Riga",
	"country": "Latvia",
	"citizenship": "Latvian",
	"phone_number": "+37120000000"
}`

func TestSignUp(t *testing.T) {
	env := newEnv(t)

	env.repo.EXPECT().GetByEmail(gomock.Any(), "anna@example.com").Return(models.User{}, pkgErrors.ErrUserNotFound)
	env.repo.EXPECT().CreateCustomer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params usecase.CreateParams) (models.User, models.Customer, error) {
			return models.User{ID: 1, Email: params.Email, FirstName: params.FirstName},
				models.Customer{ID: 2, UserID: 1, DateOfBirth: params.DateOfBirth, PhoneNumber: params.PhoneNumber},
				nil
		})

	resp, body := request(t, env.app, http.MethodPost, "/api/v1/auth/signup", "", signUpBody)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	customer, ok := body["customer"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "1995-04-02", customer["date_of_birth"])
	assert.Equal(t, "+37120000000", customer["phone_number"])
}

func TestSignUpValidation(t *testing.T) {
	env := newEnv(t)

	bad := strings.Replace(signUpBody, `"1995-04-02"`, `"02.04.1995"`, 1)
	resp, body := request(t, env.app, http.MethodPost, "/api/v1/auth/signup", "", bad)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "DateOfBirth")
}

func TestSignUpDuplicatePhone(t *testing.T) {
	env := newEnv(t)

	env.repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(models.User{}, pkgErrors.ErrUserNotFound)
	env.repo.EXPECT().CreateCustomer(gomock.Any(), gomock.Any()).Return(models.User{}, models.Customer{}, pkgErrors.ErrPhoneTaken)

	resp, body := request(t, env.app, http.MethodPost, "/api/v1/auth/signup", "", signUpBody)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "phone number already registered", body["message"])
}

func TestSignInAndMe(t *testing.T) {
	env := newEnv(t)
	hashed, err := env.hasher.GetHashedPassword(context.Background(), "password123")
	require.NoError(t, err)
	user := models.User{ID: 7, Email: "anna@example.com", Password: hashed}

	env.repo.EXPECT().GetByEmail(gomock.Any(), "anna@example.com").Return(user, nil)

	resp, body := request(t, env.app, http.MethodPost, "/api/v1/auth/signin", "",
		`{"email": "anna@example.com", "password": "password123"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bearer", body["token_type"])

	token, ok := body["access_token"].(string)
	require.True(t, ok)

	env.repo.EXPECT().GetByID(gomock.Any(), 7).Return(user, nil).Times(2)
	env.repo.EXPECT().GetCustomerByUserID(gomock.Any(), 7).Return(models.Customer{ID: 70, UserID: 7}, nil).Times(2)

	resp, body = request(t, env.app, http.MethodGet, "/api/v1/auth/me", token, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	me, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "anna@example.com", me["email"])
	assert.NotContains(t, me, "password")
	assert.Contains(t, body, "customer")
	assert.Equal(t, "user", body["role"])
}

func TestMeOwnerRole(t *testing.T) {
	env := newEnv(t)
	owner := models.User{ID: 1, Email: "owner@example.com", IsOwner: true}
	token, err := env.tokens.Generate(owner)
	require.NoError(t, err)

	env.repo.EXPECT().GetByID(gomock.Any(), 1).Return(owner, nil).AnyTimes()

	resp, body := request(t, env.app, http.MethodGet, "/api/v1/auth/me", token.AccessToken, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "owner", body["role"])
	assert.NotContains(t, body, "customer")
}

func TestMeUnauthorized(t *testing.T) {
	env := newEnv(t)

	resp, body := request(t, env.app, http.MethodGet, "/api/v1/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "authorization header required", body["message"])

	resp, body = request(t, env.app, http.MethodGet, "/api/v1/auth/me", "forged", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid or expired token", body["message"])
}
