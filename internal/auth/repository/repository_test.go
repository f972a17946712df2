package repository

import (
	"testing"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	pkgErrors "github.com/SlavaShagalov/rental-booking/internal/pkg/errors"
)

func TestMapUniqueViolation(t *testing.T) {
	assert.Equal(t, pkgErrors.ErrEmailTaken,
		mapUniqueViolation(&pq.Error{Code: "23505", Constraint: "users_email_key"}))
	assert.Equal(t, pkgErrors.ErrPhoneTaken,
		mapUniqueViolation(errors.Wrap(&pq.Error{Code: "23505", Constraint: "customers_phone_number_key"}, "insert")))
	assert.Nil(t, mapUniqueViolation(&pq.Error{Code: "23505", Constraint: "customers_user_id_key"}))
	assert.Nil(t, mapUniqueViolation(&pq.Error{Code: "23503"}))
	assert.Nil(t, mapUniqueViolation(errors.New("boom")))
}
