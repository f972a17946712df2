package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type RentalStatus string

const (
	RentalPending   RentalStatus = "pending"
	RentalConfirmed RentalStatus = "confirmed"
	RentalCancelled RentalStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// DateLayout is the wire and storage format of rental calendar dates.
const DateLayout = "2006-01-02"

type Rental struct {
	ID         int
	Customer   Customer
	Car        Car
	StartDate  time.Time
	EndDate    time.Time
	ReturnDate *time.Time
	TotalCost  decimal.Decimal
	Status     RentalStatus
	CreatedAt  time.Time
}

type Payment struct {
	ID          int
	RentalID    int
	Amount      decimal.Decimal
	PaymentDate time.Time
	Status      PaymentStatus
}

// RentalWithPayment pairs a rental with its payment record. Payment is nil
// when no payment row exists for the rental.
type RentalWithPayment struct {
	Rental  Rental
	Payment *Payment
}

// RentalDays counts billable days of a booking. Both ends are counted, so a
// booking from D to D+1 bills two days.
func RentalDays(start, end time.Time) int {
	return int(end.Sub(start)/(24*time.Hour)) + 1
}

// TotalCost is the linear price of a booking.
func TotalCost(dailyRate decimal.Decimal, start, end time.Time) decimal.Decimal {
	return dailyRate.Mul(decimal.NewFromInt(int64(RentalDays(start, end))))
}
