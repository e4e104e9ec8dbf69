package repositories

import (
	"context"

	"staffsync/internal/models"

	"github.com/google/uuid"
)

type RolePermissionRepository interface {
	Upsert(ctx context.Context, rolePermission *models.RolePermission) error
	Delete(ctx context.Context, roleID, permissionID uuid.UUID) error

	// Get returns the template entry for one (role, permission) pair, or
	// pgx.ErrNoRows when none exists.
	Get(ctx context.Context, roleID, permissionID uuid.UUID) (*models.RolePermission, error)
	ListByRole(ctx context.Context, roleID uuid.UUID) ([]*models.RolePermission, error)
}

type rolePermissionRepo struct {
	db DBTX
}

func NewRolePermissionRepository(db DBTX) RolePermissionRepository {
	return &rolePermissionRepo{db: db}
}

func (r *rolePermissionRepo) Upsert(ctx context.Context, rolePermission *models.RolePermission) error {
	query := `
		INSERT INTO role_permissions (id, role_id, permission_id, authorization_level_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (role_id, permission_id)
		DO UPDATE SET authorization_level_id = EXCLUDED.authorization_level_id
	`
	_, err := r.db.Exec(ctx, query, rolePermission.ID, rolePermission.RoleID, rolePermission.PermissionID, rolePermission.AuthorizationLevelID)
	return err
}

func (r *rolePermissionRepo) Delete(ctx context.Context, roleID, permissionID uuid.UUID) error {
	query := `
		DELETE FROM role_permissions
		WHERE role_id = $1 AND permission_id = $2
	`
	_, err := r.db.Exec(ctx, query, roleID, permissionID)
	return err
}

func (r *rolePermissionRepo) Get(ctx context.Context, roleID, permissionID uuid.UUID) (*models.RolePermission, error) {
	rolePermission := &models.RolePermission{}
	query := `
		SELECT id, role_id, permission_id, authorization_level_id, created_at
		FROM role_permissions
		WHERE role_id = $1 AND permission_id = $2
	`
	err := r.db.QueryRow(ctx, query, roleID, permissionID).Scan(
		&rolePermission.ID, &rolePermission.RoleID, &rolePermission.PermissionID,
		&rolePermission.AuthorizationLevelID, &rolePermission.CreatedAt)
	if err != nil {
		return nil, err
	}
	return rolePermission, nil
}

func (r *rolePermissionRepo) ListByRole(ctx context.Context, roleID uuid.UUID) ([]*models.RolePermission, error) {
	query := `
		SELECT id, role_id, permission_id, authorization_level_id, created_at
		FROM role_permissions
		WHERE role_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rolePermissions []*models.RolePermission
	for rows.Next() {
		rolePermission := &models.RolePermission{}
		if err := rows.Scan(&rolePermission.ID, &rolePermission.RoleID, &rolePermission.PermissionID, &rolePermission.AuthorizationLevelID, &rolePermission.CreatedAt); err != nil {
			return nil, err
		}
		rolePermissions = append(rolePermissions, rolePermission)
	}
	return rolePermissions, rows.Err()
}
