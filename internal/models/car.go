package models

import "github.com/shopspring/decimal"

type Car struct {
	ID             int             `db:"id"`
	Brand          string          `db:"brand"`
	Model          string          `db:"model"`
	Description    string          `db:"description"`
	ProductionYear int             `db:"production_year"`
	Mileage        int             `db:"mileage"`
	VIN            string          `db:"vin"`
	DailyRate      decimal.Decimal `db:"daily_rate"`
	Availability   bool            `db:"availability"`
}
