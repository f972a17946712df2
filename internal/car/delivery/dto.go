package delivery

import (
	"github.com/shopspring/decimal"

	"github.com/SlavaShagalov/rental-booking/internal/car/usecase"
	"github.com/SlavaShagalov/rental-booking/internal/models"
)

// CarDTO is the body of create and update. A missing availability means the
// car can be booked.
type CarDTO struct {
	Brand          string          `json:"brand" validate:"required,max=50"`
	Model          string          `json:"model" validate:"required,max=50"`
	Description    string          `json:"description"`
	ProductionYear int             `json:"production_year" validate:"required,gte=1886,lte=2100"`
	Mileage        int             `json:"mileage" validate:"gte=0"`
	VIN            string          `json:"vin" validate:"required,len=17,alphanum"`
	DailyRate      decimal.Decimal `json:"daily_rate"`
	Availability   *bool           `json:"availability"`
}

func (dto CarDTO) params() usecase.CarParams {
	availability := true
	if dto.Availability != nil {
		availability = *dto.Availability
	}
	return usecase.CarParams{
		Brand:          dto.Brand,
		Model:          dto.Model,
		Description:    dto.Description,
		ProductionYear: dto.ProductionYear,
		Mileage:        dto.Mileage,
		VIN:            dto.VIN,
		DailyRate:      dto.DailyRate,
		Availability:   availability,
	}
}

type CarResponse struct {
	ID             int    `json:"id"`
	Brand          string `json:"brand"`
	Model          string `json:"model"`
	ProductionYear int    `json:"production_year"`
	Mileage        int    `json:"mileage"`
	VIN            string `json:"vin"`
	DailyRate      string `json:"daily_rate"`
	Availability   bool   `json:"availability"`
	Description    string `json:"description"`
}

func NewCarResponse(car models.Car) CarResponse {
	return CarResponse{
		ID:             car.ID,
		Brand:          car.Brand,
		Model:          car.Model,
		ProductionYear: car.ProductionYear,
		Mileage:        car.Mileage,
		VIN:            car.VIN,
		DailyRate:      car.DailyRate.StringFixed(2),
		Availability:   car.Availability,
		Description:    car.Description,
	}
}

func NewCarListResponse(cars []models.Car) []CarResponse {
	resp := make([]CarResponse, 0, len(cars))
	for _, car := range cars {
		resp = append(resp, NewCarResponse(car))
	}
	return resp
}
