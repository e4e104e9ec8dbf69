package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the query surface repositories run against. *pgxpool.Pool, pgx.Tx
// and pgxmock pools all satisfy it, so the same repository can serve plain
// reads, transactional units of work, and tests.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxStarter is a DBTX that can open transactions (the pool, not a tx).
type TxStarter interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}
