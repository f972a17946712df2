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

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SlavaShagalov/rental-booking/internal/car/delivery"
	"github.com/SlavaShagalov/rental-booking/internal/car/mocks"
	"github.com/SlavaShagalov/rental-booking/internal/car/usecase"
	"github.com/SlavaShagalov/rental-booking/internal/models"
	"github.com/SlavaShagalov/rental-booking/internal/pkg/app"
	pkgErrors "github.com/SlavaShagalov/rental-booking/internal/pkg/errors"
)

const principalHeader = "X-Test-Principal"

// fakeAuth picks the caller from a test header instead of a token.
func fakeAuth(ctx *fiber.Ctx) error {
	var principal models.Principal
	switch ctx.Get(principalHeader) {
	case "owner":
		principal = models.NewOwner(1)
	case "customer":
		principal = models.NewCustomer(2, 3)
	default:
		return pkgErrors.ErrMissingToken
	}
	ctx.SetUserContext(app.WithPrincipal(ctx.UserContext(), principal))
	return ctx.Next()
}

func newTestApp(t *testing.T) (*fiber.App, *mocks.MockRepository) {
	repo := mocks.NewMockRepository(gomock.NewController(t))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	d := delivery.New(usecase.New(repo, logger), validator.New(), logger)
	fiberApp := app.NewFiberApp(app.WebConfig{}, []app.Route{{Prefix: "/cars", Delivery: d}}, fakeAuth, logger)

	return fiberApp.App(), repo
}

func send(t *testing.T, fiberApp *fiber.App, method, target, principal, body string) *http.Response {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if principal != "" {
		req.Header.Set(principalHeader, principal)
	}

	resp, err := fiberApp.Test(req, -1)
	require.NoError(t, err)
	return resp
}

const carBody = `{"brand":"Skoda","model":"Octavia","production_year":2021,"mileage":12000,` +
	`"vin":"TMBJJ7NE1L0123456","daily_rate":"55.90"}`

func TestListParsesFilters(t *testing.T) {
	fiberApp, repo := newTestApp(t)

	var filter usecase.Filter
	repo.EXPECT().List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f usecase.Filter) ([]models.Car, error) {
			filter = f
			return []models.Car{{ID: 1, DailyRate: decimal.NewFromInt(70)}}, nil
		})

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/cars?brand=BMW&brand=Audi&availability=true&daily_rate_min=50&mileage_max=90000&ordering=-daily_rate", nil)
	resp, err := fiberApp.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var cars []delivery.CarResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cars))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, cars, 1)
	assert.Equal(t, "70.00", cars[0].DailyRate)

	assert.Equal(t, []string{"BMW", "Audi"}, filter.Brands)
	require.NotNil(t, filter.Availability)
	assert.True(t, *filter.Availability)
	require.NotNil(t, filter.DailyRateMin)
	assert.Equal(t, "50", filter.DailyRateMin.String())
	require.NotNil(t, filter.MileageMax)
	assert.Equal(t, 90000, *filter.MileageMax)
	assert.Nil(t, filter.ProductionYearMin)
	assert.Equal(t, "-daily_rate", filter.Ordering)
}

func TestListBadFilter(t *testing.T) {
	fiberApp, _ := newTestApp(t)

	for _, target := range []string{
		"/api/v1/cars?mileage_min=lots",
		"/api/v1/cars?availability=maybe",
		"/api/v1/cars?daily_rate_max=abc",
		"/api/v1/cars?ordering=vin",
	} {
		resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, target)
		resp.Body.Close()
	}
}

func TestGet(t *testing.T) {
	fiberApp, repo := newTestApp(t)
	repo.EXPECT().Get(gomock.Any(), 4).Return(models.Car{ID: 4, VIN: "WVWZZZ1JZXW000001"}, nil)
	repo.EXPECT().Get(gomock.Any(), 5).Return(models.Car{}, pkgErrors.ErrCarNotFound)

	resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, "/api/v1/cars/4", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = fiberApp.Test(httptest.NewRequest(http.MethodGet, "/api/v1/cars/5", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCreateCar(t *testing.T) {
	fiberApp, repo := newTestApp(t)

	var params usecase.CarParams
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p usecase.CarParams) (models.Car, error) {
			params = p
			return models.Car{ID: 8, Brand: p.Brand, VIN: p.VIN, DailyRate: p.DailyRate, Availability: p.Availability}, nil
		})

	resp := send(t, fiberApp, http.MethodPost, "/api/v1/cars", "owner", carBody)
	defer resp.Body.Close()

	var car delivery.CarResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&car))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 8, car.ID)
	assert.Equal(t, "55.90", car.DailyRate)

	assert.Equal(t, "Skoda", params.Brand)
	assert.Equal(t, 2021, params.ProductionYear)
	assert.True(t, params.Availability)
}

func TestCarWritesRequireOwner(t *testing.T) {
	fiberApp, _ := newTestApp(t)

	tests := []struct {
		method    string
		target    string
		principal string
		want      int
	}{
		{http.MethodPost, "/api/v1/cars", "customer", http.StatusForbidden},
		{http.MethodPost, "/api/v1/cars", "", http.StatusUnauthorized},
		{http.MethodPut, "/api/v1/cars/3", "customer", http.StatusForbidden},
		{http.MethodDelete, "/api/v1/cars/3", "customer", http.StatusForbidden},
		{http.MethodDelete, "/api/v1/cars/3", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		resp := send(t, fiberApp, tt.method, tt.target, tt.principal, carBody)
		assert.Equal(t, tt.want, resp.StatusCode, tt.method+" "+tt.target)
		resp.Body.Close()
	}
}

func TestCreateCarValidation(t *testing.T) {
	fiberApp, _ := newTestApp(t)

	for _, body := range []string{
		`{"brand":"Skoda"}`,
		`{"brand":"Skoda","model":"Octavia","production_year":2021,"vin":"SHORT","daily_rate":"10"}`,
		`{"brand":"Skoda","model":"Octavia","production_year":2021,"vin":"TMBJJ7NE1L0123456","daily_rate":"-1"}`,
		`not json`,
	} {
		resp := send(t, fiberApp, http.MethodPost, "/api/v1/cars", "owner", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
		resp.Body.Close()
	}
}

func TestCreateCarDuplicateVin(t *testing.T) {
	fiberApp, repo := newTestApp(t)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(models.Car{}, pkgErrors.ErrVinTaken)

	resp := send(t, fiberApp, http.MethodPost, "/api/v1/cars", "owner", carBody)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, pkgErrors.ErrVinTaken.Error(), body["message"])
}

func TestUpdateCar(t *testing.T) {
	fiberApp, repo := newTestApp(t)
	repo.EXPECT().Update(gomock.Any(), 3, gomock.Any()).
		DoAndReturn(func(_ context.Context, id int, p usecase.CarParams) (models.Car, error) {
			return models.Car{ID: id, Availability: p.Availability, DailyRate: p.DailyRate}, nil
		})
	repo.EXPECT().Update(gomock.Any(), 4, gomock.Any()).Return(models.Car{}, pkgErrors.ErrCarNotFound)

	body := strings.Replace(carBody, `"daily_rate"`, `"availability":false,"daily_rate"`, 1)
	resp := send(t, fiberApp, http.MethodPut, "/api/v1/cars/3", "owner", body)
	var car delivery.CarResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&car))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, car.Availability)

	resp = send(t, fiberApp, http.MethodPut, "/api/v1/cars/4", "owner", carBody)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestDeleteCar(t *testing.T) {
	fiberApp, repo := newTestApp(t)
	repo.EXPECT().Delete(gomock.Any(), 3).Return(nil)
	repo.EXPECT().Delete(gomock.Any(), 4).Return(pkgErrors.ErrCarNotFound)

	resp := send(t, fiberApp, http.MethodDelete, "/api/v1/cars/3", "owner", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = send(t, fiberApp, http.MethodDelete, "/api/v1/cars/4", "owner", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
