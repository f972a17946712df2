// Package errors holds the error kinds shared by every layer. Each kind is a
// string type, so a usecase can declare its messages as constants and the
// delivery layer can pick a status code with errors.As.
package errors

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type ValidationError string

func (e ValidationError) Error() string { return string(e) }

func (e ValidationError) Map() map[string]any { return messageMap(e) }

type NotFoundError string

func (e NotFoundError) Error() string { return string(e) }

func (e NotFoundError) Map() map[string]any { return messageMap(e) }

type ConflictError string

func (e ConflictError) Error() string { return string(e) }

func (e ConflictError) Map() map[string]any { return messageMap(e) }

type ForbiddenError string

func (e ForbiddenError) Error() string { return string(e) }

func (e ForbiddenError) Map() map[string]any { return messageMap(e) }

type UnauthorizedError string

func (e UnauthorizedError) Error() string { return string(e) }

func (e UnauthorizedError) Map() map[string]any { return messageMap(e) }

func messageMap(err error) map[string]any {
	return map[string]any{"message": err.Error()}
}

const (
	ErrUserNotFound         NotFoundError     = "user not found"
	ErrCustomerNotFound     NotFoundError     = "customer not found"
	ErrCarNotFound          NotFoundError     = "car not found"
	ErrRentalNotFound       NotFoundError     = "rental not found"
	ErrCarNotAvailable      NotFoundError     = "car not available"
	ErrEmailTaken           ConflictError     = "email already registered"
	ErrPhoneTaken           ConflictError     = "phone number already registered"
	ErrCarAlreadyBooked     ConflictError     = "car already booked for given dates"
	ErrVinTaken             ConflictError     = "car with this vin already exists"
	ErrInvalidDateFormat    ValidationError   = "start_date and end_date must be in YYYY-MM-DD format"
	ErrEndBeforeStart       ValidationError   = "end_date must be after start_date"
	ErrInvalidRequest       ValidationError   = "invalid request"
	ErrInvalidOrdering      ValidationError   = "ordering must be one of daily_rate, mileage, production_year with optional '-' prefix"
	ErrInvalidFilter        ValidationError   = "invalid filter value"
	ErrInvalidLicenceDates  ValidationError   = "licence_expiry_date must be after licence_since"
	ErrNegativeDailyRate    ValidationError   = "daily_rate must not be negative"
	ErrInvalidPage          ValidationError   = "limit must be between 1 and 1000 and offset must not be negative"
	ErrNotCustomer          ForbiddenError    = "caller is not a customer"
	ErrOwnerOnly            ForbiddenError    = "owner role required"
	ErrWrongLoginOrPassword UnauthorizedError = "wrong email or password"
	ErrInvalidToken         UnauthorizedError = "invalid or expired token"
	ErrMissingToken         UnauthorizedError = "authorization header required"
	ErrDb                   internalError     = "database error"
	ErrGetHashedPassword    internalError     = "failed to hash password"
)

type internalError string

func (e internalError) Error() string { return string(e) }

// Status maps an error to the HTTP status code it is reported with.
func Status(err error) int {
	var (
		validationErr   ValidationError
		notFoundErr     NotFoundError
		conflictErr     ConflictError
		forbiddenErr    ForbiddenError
		unauthorizedErr UnauthorizedError
	)

	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest
	case errors.As(err, &conflictErr):
		return fiber.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return fiber.StatusNotFound
	case errors.As(err, &forbiddenErr):
		return fiber.StatusForbidden
	case errors.As(err, &unauthorizedErr):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// Message returns the client-facing text of err. Errors outside the known
// kinds are reported as a bare internal error.
func Message(err error) string {
	if Status(err) == fiber.StatusInternalServerError {
		return "internal error"
	}
	var kinded interface{ Map() map[string]any }
	if errors.As(err, &kinded) {
		return kinded.Map()["message"].(string)
	}
	return err.Error()
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}
