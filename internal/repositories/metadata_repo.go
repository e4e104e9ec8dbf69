package repositories

import (
	"context"
)

type SystemMetadataRepository interface {
	// Increment bumps the named counter by one and returns the new value in
	// a single atomic statement. A missing counter starts at zero, so the
	// first call returns 1. Safe across concurrent processes.
	Increment(ctx context.Context, key string) (int64, error)

	// Get reads the current counter value without changing it. Returns
	// pgx.ErrNoRows if the counter was never used.
	Get(ctx context.Context, key string) (int64, error)
}

type systemMetadataRepo struct {
	db DBTX
}

func NewSystemMetadataRepository(db DBTX) SystemMetadataRepository {
	return &systemMetadataRepo{db: db}
}

func (r *systemMetadataRepo) Increment(ctx context.Context, key string) (int64, error) {
	var value int64
	query := `
		INSERT INTO system_metadata (key, value, updated_at)
		VALUES ($1, 1, NOW())
		ON CONFLICT (key)
		DO UPDATE SET value = system_metadata.value + 1, updated_at = NOW()
		RETURNING value
	`
	err := r.db.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		return 0, err
	}
	return value, nil
}

func (r *systemMetadataRepo) Get(ctx context.Context, key string) (int64, error) {
	var value int64
	query := `SELECT value FROM system_metadata WHERE key = $1`
	err := r.db.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		return 0, err
	}
	return value, nil
}
