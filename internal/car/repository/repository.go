package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/SlavaShagalov/rental-booking/internal/car/usecase"
	"github.com/SlavaShagalov/rental-booking/internal/models"
	pkgErrors "github.com/SlavaShagalov/rental-booking/internal/pkg/errors"
	"github.com/SlavaShagalov/rental-booking/pkg/sqlxutils"
)

const carColumns = `id, brand, model, description, production_year, mileage, vin, daily_rate, availability`

const (
	codeUniqueViolation pq.ErrorCode = "23505"
	vinConstraint                    = "cars_vin_key"
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

func (r *SqlxRepository) List(ctx context.Context, filter usecase.Filter) ([]models.Car, error) {
	query, args := buildListQuery(filter)

	cars := make([]models.Car, 0)
	if err := sqlxutils.Select(ctx, r.db, &cars, query, args...); err != nil {
		r.logger.Error(err.Error())
		return nil, errors.Wrap(err, "select cars")
	}

	return cars, nil
}

func (r *SqlxRepository) Get(ctx context.Context, id int) (models.Car, error) {
	const getCmd = `
	SELECT ` + carColumns + `
	FROM cars
	WHERE id = $1;`

	var car models.Car
	if err := sqlxutils.Get(ctx, r.db, &car, getCmd, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Car{}, pkgErrors.ErrCarNotFound
		}
		r.logger.Error(err.Error())
		return models.Car{}, errors.Wrap(err, "select car")
	}

	return car, nil
}

func (r *SqlxRepository) Create(ctx context.Context, params usecase.CarParams) (models.Car, error) {
	const createCmd = `
	INSERT INTO cars (brand, model, description, production_year, mileage, vin, daily_rate, availability)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING ` + carColumns + `;`

	var car models.Car
	if err := sqlxutils.Get(ctx, r.db, &car, createCmd, carArgs(params)...); err != nil {
		if mapped := mapVinViolation(err); mapped != nil {
			return models.Car{}, mapped
		}
		r.logger.Error(err.Error())
		return models.Car{}, errors.Wrap(err, "insert car")
	}

	return car, nil
}

func (r *SqlxRepository) Update(ctx context.Context, id int, params usecase.CarParams) (models.Car, error) {
	const updateCmd = `
	UPDATE cars
	SET brand = $1, model = $2, description = $3, production_year = $4, mileage = $5, vin = $6,
		daily_rate = $7, availability = $8
	WHERE id = $9
	RETURNING ` + carColumns + `;`

	var car models.Car
	if err := sqlxutils.Get(ctx, r.db, &car, updateCmd, append(carArgs(params), id)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Car{}, pkgErrors.ErrCarNotFound
		}
		if mapped := mapVinViolation(err); mapped != nil {
			return models.Car{}, mapped
		}
		r.logger.Error(err.Error())
		return models.Car{}, errors.Wrap(err, "update car")
	}

	return car, nil
}

func (r *SqlxRepository) Delete(ctx context.Context, id int) error {
	const deleteCmd = `
	DELETE FROM cars
	WHERE id = $1;`

	result, err := r.db.ExecContext(ctx, deleteCmd, id)
	if err != nil {
		r.logger.Error(err.Error())
		return errors.Wrap(err, "delete car")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "delete car")
	}
	if affected == 0 {
		return pkgErrors.ErrCarNotFound
	}

	return nil
}

func carArgs(params usecase.CarParams) []any {
	return []any{
		params.Brand,
		params.Model,
		params.Description,
		params.ProductionYear,
		params.Mileage,
		params.VIN,
		params.DailyRate,
		params.Availability,
	}
}

func mapVinViolation(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == codeUniqueViolation && pqErr.Constraint == vinConstraint {
		return pkgErrors.ErrVinTaken
	}
	return nil
}

type queryBuilder struct {
	conds []string
	args  []any
}

// add appends a condition; each "?" in cond is replaced with the next
// positional placeholder.
func (b *queryBuilder) add(cond string, args ...any) {
	for _, arg := range args {
		b.args = append(b.args, arg)
		cond = strings.Replace(cond, "?", "$"+strconv.Itoa(len(b.args)), 1)
	}
	b.conds = append(b.conds, cond)
}

func buildListQuery(filter usecase.Filter) (string, []any) {
	var b queryBuilder

	if len(filter.Brands) > 0 {
		b.add("brand = ANY(?)", pq.Array(filter.Brands))
	}
	if filter.Model != "" {
		b.add("model = ?", filter.Model)
	}
	if filter.ModelContains != "" {
		b.add("model ILIKE ?", "%"+escapeLike(filter.ModelContains)+"%")
	}
	if filter.Availability != nil {
		b.add("availability = ?", *filter.Availability)
	}
	if filter.DailyRateMin != nil {
		b.add("daily_rate >= ?", *filter.DailyRateMin)
	}
	if filter.DailyRateMax != nil {
		b.add("daily_rate <= ?", *filter.DailyRateMax)
	}
	if filter.ProductionYearMin != nil {
		b.add("production_year >= ?", *filter.ProductionYearMin)
	}
	if filter.ProductionYearMax != nil {
		b.add("production_year <= ?", *filter.ProductionYearMax)
	}
	if filter.MileageMin != nil {
		b.add("mileage >= ?", *filter.MileageMin)
	}
	if filter.MileageMax != nil {
		b.add("mileage <= ?", *filter.MileageMax)
	}
	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		b.add("(brand ILIKE ? OR model ILIKE ? OR description ILIKE ?)", pattern, pattern, pattern)
	}

	query := "SELECT " + carColumns + " FROM cars"
	if len(b.conds) > 0 {
		query += " WHERE " + strings.Join(b.conds, " AND ")
	}

	return query + " ORDER BY " + orderBy(filter.Ordering) + ";", b.args
}

// orderBy expects an ordering already checked by the usecase.
func orderBy(ordering string) string {
	if ordering == "" {
		ordering = usecase.DefaultOrdering
	}
	if strings.HasPrefix(ordering, "-") {
		return strings.TrimPrefix(ordering, "-") + " DESC, id"
	}
	return ordering + " ASC, id"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
