package delivery

import (
	"time"

	"github.com/SlavaShagalov/rental-booking/internal/models"
)

type SignUpDTO struct {
	Email             string `json:"email" validate:"required,email,max=254"`
	Password          string `json:"password" validate:"required,min=8,max=72"`
	FirstName         string `json:"first_name" validate:"max=150"`
	LastName          string `json:"last_name" validate:"max=150"`
	DateOfBirth       string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	LicenceSince      string `json:"licence_since" validate:"required,datetime=2006-01-02"`
	LicenceExpiryDate string `json:"licence_expiry_date" validate:"required,datetime=2006-01-02"`
	Address           string `json:"address" validate:"required,max=255"`
	City              string `json:"city" validate:"required,max=100"`
	Country           string `json:"country" validate:"required,max=100"`
	Citizenship       string `json:"citizenship" validate:"required,max=100"`
	PhoneNumber       string `json:"phone_number" validate:"required,e164"`
}

type SignInDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsOwner   bool      `json:"is_owner"`
	CreatedAt time.Time `json:"created_at"`
}

type CustomerResponse struct {
	ID                int    `json:"id"`
	DateOfBirth       string `json:"date_of_birth"`
	LicenceSince      string `json:"licence_since"`
	LicenceExpiryDate string `json:"licence_expiry_date"`
	Address           string `json:"address"`
	City              string `json:"city"`
	Country           string `json:"country"`
	Citizenship       string `json:"citizenship"`
	PhoneNumber       string `json:"phone_number"`
}

type ProfileResponse struct {
	Role     models.Role       `json:"role"`
	User     UserResponse      `json:"user"`
	Customer *CustomerResponse `json:"customer,omitempty"`
}

func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsOwner:   user.IsOwner,
		CreatedAt: user.CreatedAt,
	}
}

func NewCustomerResponse(customer models.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:                customer.ID,
		DateOfBirth:       customer.DateOfBirth.Format(models.DateLayout),
		LicenceSince:      customer.LicenceSince.Format(models.DateLayout),
		LicenceExpiryDate: customer.LicenceExpiryDate.Format(models.DateLayout),
		Address:           customer.Address,
		City:              customer.City,
		Country:           customer.Country,
		Citizenship:       customer.Citizenship,
		PhoneNumber:       customer.PhoneNumber,
	}
}

func NewProfileResponse(role models.Role, user models.User, customer *models.Customer) ProfileResponse {
	resp := ProfileResponse{Role: role, User: NewUserResponse(user)}
	if customer != nil {
		resp.Customer = NewCustomerResponse(*customer)
	}
	return resp
}
