package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/flightdb/internal/domain"
	"github.com/jackc/pgx/v5"
)

var ErrUnknownTable = errors.New("unknown table")

type Counter interface {
	Count(ctx context.Context, table domain.Table) (int64, error)
}

type PGCounter struct {
	db DB
}

func NewCounter(db DB) Counter {
	return &PGCounter{db: db}
}

func (c *PGCounter) Count(ctx context.Context, table domain.Table) (int64, error) {
	if !table.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	var n int64
	query := `SELECT count(*) FROM ` + pgx.Identifier{string(table)}.Sanitize()
	if err := c.db.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

var _ Counter = (*PGCounter)(nil)
