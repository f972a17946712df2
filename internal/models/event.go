package models

import "time"

const EventRentalCreated = "rental.created"

// RentalCreatedEvent is the payload written to the outbox when a booking commits.
type RentalCreatedEvent struct {
	RentalID   int       `json:"rental_id"`
	CustomerID int       `json:"customer_id"`
	CarID      int       `json:"car_id"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	TotalCost  string    `json:"total_cost"`
	PaymentID  int       `json:"payment_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type OutboxMessage struct {
	ID          string
	AggregateID int
	EventType   string
	Payload     []byte
	CreatedAt   time.Time
}
