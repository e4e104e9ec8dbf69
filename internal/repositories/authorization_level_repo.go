package repositories

import (
	"context"

	"staffsync/internal/models"

	"github.com/google/uuid"
)

type AuthorizationLevelRepository interface {
	Create(ctx context.Context, level *models.AuthorizationLevel) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.AuthorizationLevel, error)
	GetByCode(ctx context.Context, code int) (*models.AuthorizationLevel, error)
	List(ctx context.Context) ([]*models.AuthorizationLevel, error)
}

type authorizationLevelRepo struct {
	db DBTX
}

func NewAuthorizationLevelRepository(db DBTX) AuthorizationLevelRepository {
	return &authorizationLevelRepo{db: db}
}

func (r *authorizationLevelRepo) Create(ctx context.Context, level *models.AuthorizationLevel) error {
	query := `
		INSERT INTO authorization_levels (id, code, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (code) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, level.ID, level.Code, level.Name)
	return err
}

func (r *authorizationLevelRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.AuthorizationLevel, error) {
	level := &models.AuthorizationLevel{}
	query := `SELECT id, code, name FROM authorization_levels WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&level.ID, &level.Code, &level.Name)
	if err != nil {
		return nil, err
	}
	return level, nil
}

func (r *authorizationLevelRepo) GetByCode(ctx context.Context, code int) (*models.AuthorizationLevel, error) {
	level := &models.AuthorizationLevel{}
	query := `SELECT id, code, name FROM authorization_levels WHERE code = $1`
	err := r.db.QueryRow(ctx, query, code).Scan(&level.ID, &level.Code, &level.Name)
	if err != nil {
		return nil, err
	}
	return level, nil
}

func (r *authorizationLevelRepo) List(ctx context.Context) ([]*models.AuthorizationLevel, error) {
	query := `SELECT id, code, name FROM authorization_levels ORDER BY code`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []*models.AuthorizationLevel
	for rows.Next() {
		level := &models.AuthorizationLevel{}
		if err := rows.Scan(&level.ID, &level.Code, &level.Name); err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}
	return levels, rows.Err()
}
