package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/SlavaShagalov/rental-booking/internal/auth/usecase"
	"github.com/SlavaShagalov/rental-booking/internal/models"
	pkgErrors "github.com/SlavaShagalov/rental-booking/internal/pkg/errors"
	"github.com/SlavaShagalov/rental-booking/pkg/sqlxutils"
)

const codeUniqueViolation pq.ErrorCode = "23505"

// uniqueConstraints maps unique constraint names to the error reported to clients.
var uniqueConstraints = map[string]error{
	"users_email_key":            pkgErrors.ErrEmailTaken,
	"customers_phone_number_key": pkgErrors.ErrPhoneTaken,
}

type userRow struct {
	ID             int       `db:"id"`
	Email          string    `db:"email"`
	HashedPassword string    `db:"hashed_password"`
	FirstName      string    `db:"first_name"`
	LastName       string    `db:"last_name"`
	IsOwner        bool      `db:"is_owner"`
	CreatedAt      time.Time `db:"created_at"`
}

func (row userRow) toModel() models.User {
	return models.User{
		ID:        row.ID,
		Email:     row.Email,
		Password:  row.HashedPassword,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		IsOwner:   row.IsOwner,
		CreatedAt: row.CreatedAt,
	}
}

type customerRow struct {
	ID                int       `db:"id"`
	UserID            int       `db:"user_id"`
	DateOfBirth       time.Time `db:"date_of_birth"`
	LicenceSince      time.Time `db:"licence_since"`
	LicenceExpiryDate time.Time `db:"licence_expiry_date"`
	Address           string    `db:"address"`
	City              string    `db:"city"`
	Country           string    `db:"country"`
	Citizenship       string    `db:"citizenship"`
	PhoneNumber       string    `db:"phone_number"`
}

func (row customerRow) toModel() models.Customer {
	return models.Customer{
		ID:                row.ID,
		UserID:            row.UserID,
		DateOfBirth:       row.DateOfBirth,
		LicenceSince:      row.LicenceSince,
		LicenceExpiryDate: row.LicenceExpiryDate,
		Address:           row.Address,
		City:              row.City,
		Country:           row.Country,
		Citizenship:       row.Citizenship,
		PhoneNumber:       row.PhoneNumber,
	}
}

const (
	userColumns     = `id, email, hashed_password, first_name, last_name, is_owner, created_at`
	customerColumns = `id, user_id, date_of_birth, licence_since, licence_expiry_date, address, city, country, citizenship, phone_number`
)

type SqlxRepository struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewSqlxRepository(db *sqlx.DB, logger *slog.Logger) *SqlxRepository {
	return &SqlxRepository{
		db:     db,
		logger: logger,
	}
}

func (r *SqlxRepository) HealthCheck(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SqlxRepository) CreateCustomer(ctx context.Context, params usecase.CreateParams) (user models.User, customer models.Customer, err error) {
	const createUserCmd = `
	INSERT INTO users (email, hashed_password, first_name, last_name)
	VALUES ($1, $2, $3, $4)
	RETURNING ` + userColumns + `;`

	const createCustomerCmd = `
	INSERT INTO customers (user_id, date_of_birth, licence_since, licence_expiry_date,
	                       address, city, country, citizenship, phone_number)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING ` + customerColumns + `;`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error(err.Error())
		return models.User{}, models.Customer{}, errors.Wrap(err, "begin transaction")
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = multierr.Append(err, rbErr)
			}
		}
	}()

	var uRow userRow
	err = sqlxutils.Get(ctx, tx, &uRow, createUserCmd, params.Email, params.HashedPassword, params.FirstName, params.LastName)
	if err != nil {
		return models.User{}, models.Customer{}, r.mapError(err, "insert user")
	}

	var cRow customerRow
	err = sqlxutils.Get(ctx, tx, &cRow, createCustomerCmd,
		uRow.ID,
		params.DateOfBirth.Format(models.DateLayout),
		params.LicenceSince.Format(models.DateLayout),
		params.LicenceExpiryDate.Format(models.DateLayout),
		params.Address,
		params.City,
		params.Country,
		params.Citizenship,
		params.PhoneNumber,
	)
	if err != nil {
		return models.User{}, models.Customer{}, r.mapError(err, "insert customer")
	}

	if err = tx.Commit(); err != nil {
		return models.User{}, models.Customer{}, r.mapError(err, "commit transaction")
	}

	return uRow.toModel(), cRow.toModel(), nil
}

func (r *SqlxRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	const getCmd = `
	SELECT ` + userColumns + `
	FROM users
	WHERE email = $1;`

	return r.getUser(ctx, getCmd, email)
}

func (r *SqlxRepository) GetByID(ctx context.Context, id int) (models.User, error) {
	const getCmd = `
	SELECT ` + userColumns + `
	FROM users
	WHERE id = $1;`

	return r.getUser(ctx, getCmd, id)
}

func (r *SqlxRepository) GetCustomerByUserID(ctx context.Context, userID int) (models.Customer, error) {
	const getCmd = `
	SELECT ` + customerColumns + `
	FROM customers
	WHERE user_id = $1;`

	var row customerRow
	if err := sqlxutils.Get(ctx, r.db, &row, getCmd, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Customer{}, pkgErrors.ErrCustomerNotFound
		}
		r.logger.Error(err.Error())
		return models.Customer{}, pkgErrors.ErrDb
	}

	return row.toModel(), nil
}

func (r *SqlxRepository) getUser(ctx context.Context, query string, arg any) (models.User, error) {
	var row userRow
	if err := sqlxutils.Get(ctx, r.db, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, pkgErrors.ErrUserNotFound
		}
		r.logger.Error(err.Error())
		return models.User{}, pkgErrors.ErrDb
	}

	return row.toModel(), nil
}

func (r *SqlxRepository) mapError(err error, msg string) error {
	if mapped := mapUniqueViolation(err); mapped != nil {
		return mapped
	}
	r.logger.Error(err.Error())
	return errors.Wrap(err, msg)
}

func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != codeUniqueViolation {
		return nil
	}
	return uniqueConstraints[pqErr.Constraint]
}
