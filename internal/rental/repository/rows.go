package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SlavaShagalov/rental-booking/internal/models"
)

const rentalColumns = `
	r.id, r.start_date, r.end_date, r.return_date, r.total_cost, r.status, r.created_at,
	cu.id AS customer_id, cu.user_id AS customer_user_id, cu.date_of_birth AS customer_date_of_birth,
	cu.licence_since AS customer_licence_since, cu.licence_expiry_date AS customer_licence_expiry_date,
	cu.address AS customer_address, cu.city AS customer_city, cu.country AS customer_country,
	cu.citizenship AS customer_citizenship, cu.phone_number AS customer_phone_number,
	c.id AS car_id, c.brand AS car_brand, c.model AS car_model, c.description AS car_description,
	c.production_year AS car_production_year, c.mileage AS car_mileage, c.vin AS car_vin,
	c.daily_rate AS car_daily_rate, c.availability AS car_availability`

const paymentColumns = `,
	p.id AS payment_id, p.amount AS payment_amount, p.payment_date AS payment_date, p.status AS payment_status`

const rentalFrom = `
	FROM rentals r
	JOIN customers cu ON cu.id = r.customer_id
	JOIN cars c ON c.id = r.car_id`

const paymentJoin = `
	LEFT JOIN LATERAL (
		SELECT id, amount, payment_date, status
		FROM payments
		WHERE rental_id = r.id
		ORDER BY id
		LIMIT 1
	) p ON TRUE`

type rentalRow struct {
	ID         int             `db:"id"`
	StartDate  time.Time       `db:"start_date"`
	EndDate    time.Time       `db:"end_date"`
	ReturnDate *time.Time      `db:"return_date"`
	TotalCost  decimal.Decimal `db:"total_cost"`
	Status     string          `db:"status"`
	CreatedAt  time.Time       `db:"created_at"`

	CustomerID                int       `db:"customer_id"`
	CustomerUserID            int       `db:"customer_user_id"`
	CustomerDateOfBirth       time.Time `db:"customer_date_of_birth"`
	CustomerLicenceSince      time.Time `db:"customer_licence_since"`
	CustomerLicenceExpiryDate time.Time `db:"customer_licence_expiry_date"`
	CustomerAddress           string    `db:"customer_address"`
	CustomerCity              string    `db:"customer_city"`
	CustomerCountry           string    `db:"customer_country"`
	CustomerCitizenship       string    `db:"customer_citizenship"`
	CustomerPhoneNumber       string    `db:"customer_phone_number"`

	CarID             int             `db:"car_id"`
	CarBrand          string          `db:"car_brand"`
	CarModel          string          `db:"car_model"`
	CarDescription    string          `db:"car_description"`
	CarProductionYear int             `db:"car_production_year"`
	CarMileage        int             `db:"car_mileage"`
	CarVIN            string          `db:"car_vin"`
	CarDailyRate      decimal.Decimal `db:"car_daily_rate"`
	CarAvailability   bool            `db:"car_availability"`
}

type rentalPaymentRow struct {
	rentalRow

	PaymentID     *int                `db:"payment_id"`
	PaymentAmount decimal.NullDecimal `db:"payment_amount"`
	PaymentDate   *time.Time          `db:"payment_date"`
	PaymentStatus *string             `db:"payment_status"`
}

func (row rentalRow) toModel() models.Rental {
	return models.Rental{
		ID: row.ID,
		Customer: models.Customer{
			ID:                row.CustomerID,
			UserID:            row.CustomerUserID,
			DateOfBirth:       row.CustomerDateOfBirth,
			LicenceSince:      row.CustomerLicenceSince,
			LicenceExpiryDate: row.CustomerLicenceExpiryDate,
			Address:           row.CustomerAddress,
			City:              row.CustomerCity,
			Country:           row.CustomerCountry,
			Citizenship:       row.CustomerCitizenship,
			PhoneNumber:       row.CustomerPhoneNumber,
		},
		Car: models.Car{
			ID:             row.CarID,
			Brand:          row.CarBrand,
			Model:          row.CarModel,
			Description:    row.CarDescription,
			ProductionYear: row.CarProductionYear,
			Mileage:        row.CarMileage,
			VIN:            row.CarVIN,
			DailyRate:      row.CarDailyRate,
			Availability:   row.CarAvailability,
		},
		StartDate:  row.StartDate,
		EndDate:    row.EndDate,
		ReturnDate: row.ReturnDate,
		TotalCost:  row.TotalCost,
		Status:     models.RentalStatus(row.Status),
		CreatedAt:  row.CreatedAt,
	}
}

func (row rentalPaymentRow) toModel() models.RentalWithPayment {
	result := models.RentalWithPayment{Rental: row.rentalRow.toModel()}
	if row.PaymentID == nil {
		return result
	}

	payment := &models.Payment{
		ID:       *row.PaymentID,
		RentalID: row.ID,
		Amount:   row.PaymentAmount.Decimal,
	}
	if row.PaymentDate != nil {
		payment.PaymentDate = *row.PaymentDate
	}
	if row.PaymentStatus != nil {
		payment.Status = models.PaymentStatus(*row.PaymentStatus)
	}
	result.Payment = payment

	return result
}
