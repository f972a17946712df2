// Package sqlxutils wraps sqlx helpers so that repositories can run the same
// query against a *sqlx.DB or inside a *sqlx.Tx.
package sqlxutils

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Queryer is satisfied by both *sqlx.DB and *sqlx.Tx.
type Queryer interface {
	sqlx.QueryerContext
	sqlx.ExecerContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

func Select(ctx context.Context, q Queryer, dest interface{}, query string, args ...interface{}) error {
	return q.SelectContext(ctx, dest, query, args...)
}

func Get(ctx context.Context, q Queryer, dest interface{}, query string, args ...interface{}) error {
	return q.GetContext(ctx, dest, query, args...)
}
