package delivery

import (
	"time"

	carDelivery "github.com/SlavaShagalov/rental-booking/internal/car/delivery"
	"github.com/SlavaShagalov/rental-booking/internal/models"
)

const paymentNotFound = "payment not found"

// CreateRentalDTO is not validated here: a missing car decodes to 0 and is
// reported as unavailable after the date and customer checks.
type CreateRentalDTO struct {
	Car       int    `json:"car"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type CustomerResponse struct {
	ID                int    `json:"id"`
	DateOfBirth       string `json:"date_of_birth"`
	LicenceExpiryDate string `json:"licence_expiry_date"`
	LicenceSince      string `json:"licence_since"`
	Address           string `json:"address"`
	City              string `json:"city"`
	Country           string `json:"country"`
	Citizenship       string `json:"citizenship"`
	PhoneNumber       string `json:"phone_number"`
}

type PaymentResponse struct {
	ID          int       `json:"id"`
	Amount      string    `json:"amount"`
	PaymentDate time.Time `json:"payment_date"`
	Status      string    `json:"status"`
}

type PaymentNotFoundResponse struct {
	Message string `json:"message"`
}

type RentalResponse struct {
	ID         int                     `json:"id"`
	Customer   CustomerResponse        `json:"customer"`
	Car        carDelivery.CarResponse `json:"car"`
	StartDate  string                  `json:"start_date"`
	EndDate    string                  `json:"end_date"`
	ReturnDate *string                 `json:"return_date,omitempty"`
	TotalCost  string                  `json:"total_cost"`
	Status     string                  `json:"status"`
	CreatedAt  time.Time               `json:"created_at"`
	// Payment is a PaymentResponse, a PaymentNotFoundResponse, or absent in
	// plain listings.
	Payment any `json:"payment,omitempty"`
}

func NewCustomerResponse(customer models.Customer) CustomerResponse {
	return CustomerResponse{
		ID:                customer.ID,
		DateOfBirth:       customer.DateOfBirth.Format(models.DateLayout),
		LicenceExpiryDate: customer.LicenceExpiryDate.Format(models.DateLayout),
		LicenceSince:      customer.LicenceSince.Format(models.DateLayout),
		Address:           customer.Address,
		City:              customer.City,
		Country:           customer.Country,
		Citizenship:       customer.Citizenship,
		PhoneNumber:       customer.PhoneNumber,
	}
}

func NewRentalResponse(rental models.Rental) RentalResponse {
	resp := RentalResponse{
		ID:        rental.ID,
		Customer:  NewCustomerResponse(rental.Customer),
		Car:       carDelivery.NewCarResponse(rental.Car),
		StartDate: rental.StartDate.Format(models.DateLayout),
		EndDate:   rental.EndDate.Format(models.DateLayout),
		TotalCost: rental.TotalCost.StringFixed(2),
		Status:    string(rental.Status),
		CreatedAt: rental.CreatedAt,
	}
	if rental.ReturnDate != nil {
		returnDate := rental.ReturnDate.Format(models.DateLayout)
		resp.ReturnDate = &returnDate
	}
	return resp
}

func NewRentalWithPaymentResponse(rental models.RentalWithPayment) RentalResponse {
	resp := NewRentalResponse(rental.Rental)
	if rental.Payment == nil {
		resp.Payment = PaymentNotFoundResponse{Message: paymentNotFound}
		return resp
	}

	resp.Payment = PaymentResponse{
		ID:          rental.Payment.ID,
		Amount:      rental.Payment.Amount.StringFixed(2),
		PaymentDate: rental.Payment.PaymentDate,
		Status:      string(rental.Payment.Status),
	}
	return resp
}

func NewRentalListResponse(rentals []models.Rental) []RentalResponse {
	resp := make([]RentalResponse, 0, len(rentals))
	for _, rental := range rentals {
		resp = append(resp, NewRentalResponse(rental))
	}
	return resp
}

func NewRentalWithPaymentListResponse(rentals []models.RentalWithPayment) []RentalResponse {
	resp := make([]RentalResponse, 0, len(rentals))
	for _, rental := range rentals {
		resp = append(resp, NewRentalWithPaymentResponse(rental))
	}
	return resp
}
