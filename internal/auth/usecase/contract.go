package usecase

import (
	"context"
	"time"

	"github.com/SlavaShagalov/rental-booking/internal/models"
)

type SignInParams struct {
	Email    string
	Password string
}

type SignUpParams struct {
	Email             string
	Password          string
	FirstName         string
	LastName          string
	DateOfBirth       time.Time
	LicenceSince      time.Time
	LicenceExpiryDate time.Time
	Address           string
	City              string
	Country           string
	Citizenship       string
	PhoneNumber       string
}

type CreateParams struct {
	Email             string
	HashedPassword    string
	FirstName         string
	LastName          string
	DateOfBirth       time.Time
	LicenceSince      time.Time
	LicenceExpiryDate time.Time
	Address           string
	City              string
	Country           string
	Citizenship       string
	PhoneNumber       string
}

type Repository interface {
	HealthCheck(ctx context.Context) error

	// CreateCustomer stores the user and its customer profile atomically.
	CreateCustomer(ctx context.Context, params CreateParams) (models.User, models.Customer, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id int) (models.User, error)
	GetCustomerByUserID(ctx context.Context, userID int) (models.Customer, error)
}

type TokenManager interface {
	Generate(user models.User) (models.TokenResponse, error)
	Validate(token string) (int, error)
}
