package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medtrack/medtrack/internal/platform/apperr"
	"github.com/medtrack/medtrack/internal/platform/schema"
)

// RowChecker answers whether a parent row exists before a dependent row
// referencing it is written.
type RowChecker interface {
	Exists(ctx context.Context, table string, id int64) (bool, error)
}

type pgRowChecker struct {
	pool *pgxpool.Pool
	reg  *schema.Registry
}

// NewRowChecker returns a RowChecker that only accepts tables declared in reg.
func NewRowChecker(pool *pgxpool.Pool, reg *schema.Registry) RowChecker {
	return &pgRowChecker{pool: pool, reg: reg}
}

func (c *pgRowChecker) Exists(ctx context.Context, table string, id int64) (bool, error) {
	if !c.reg.Has(table) {
		return false, fmt.Errorf("exists: table %q is not declared in the schema registry", table)
	}
	var ok bool
	err := Conn(ctx, c.pool).QueryRow(ctx,
		fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, table), id).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("exists %s(%d): %w", table, id, err)
	}
	return ok, nil
}

// RequireExists returns a not-found error naming table when it has no row
// with the given id.
func RequireExists(ctx context.Context, rc RowChecker, table string, id int64) error {
	ok, err := rc.Exists(ctx, table, id)
	if err != nil {
		return apperr.Internal("Failed to verify "+table, err)
	}
	if !ok {
		return apperr.NotFound(capitalize(table) + " not found")
	}
	return nil
}
