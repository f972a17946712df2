package models

import "time"

// Request is one entry of the API request log.
type Request struct {
	ID        int       `db:"id"`
	Method    string    `db:"method"`
	URL       string    `db:"url"`
	Body      string    `db:"body"`
	Headers   string    `db:"headers"`
	CreatedAt time.Time `db:"created_at"`
}
