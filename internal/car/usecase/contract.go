package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/SlavaShagalov/rental-booking/internal/models"
)

const DefaultOrdering = "-production_year"

// Filter narrows a car listing. Nil pointers and empty strings leave the
// corresponding column unconstrained.
type Filter struct {
	Brands            []string
	Model             string
	ModelContains     string
	Availability      *bool
	DailyRateMin      *decimal.Decimal
	DailyRateMax      *decimal.Decimal
	ProductionYearMin *int
	ProductionYearMax *int
	MileageMin        *int
	MileageMax        *int
	Search            string
	Ordering          string
}

// CarParams holds every editable column of a car. Update replaces all of them.
type CarParams struct {
	Brand          string
	Model          string
	Description    string
	ProductionYear int
	Mileage        int
	VIN            string
	DailyRate      decimal.Decimal
	Availability   bool
}

type Repository interface {
	HealthCheck(ctx context.Context) error

	List(ctx context.Context, filter Filter) ([]models.Car, error)
	Get(ctx context.Context, id int) (models.Car, error)
	Create(ctx context.Context, params CarParams) (models.Car, error)
	Update(ctx context.Context, id int, params CarParams) (models.Car, error)
	Delete(ctx context.Context, id int) error
}
