package repositories

import (
	"context"

	"staffsync/internal/models"

	"github.com/google/uuid"
)

type EmployeePermissionRepository interface {
	// Upsert grants or replaces the authorization level for one
	// (employee, permission) pair.
	Upsert(ctx context.Context, grant *models.EmployeePermission) error
	Revoke(ctx context.Context, employeeID, permissionID uuid.UUID) error

	// Get returns the grant for one (employee, permission) pair, or
	// pgx.ErrNoRows when none exists.
	Get(ctx context.Context, employeeID, permissionID uuid.UUID) (*models.EmployeePermission, error)

	// GetLevelCode resolves the numeric authorization level the employee
	// holds for the named permission. Returns pgx.ErrNoRows when no grant
	// exists.
	GetLevelCode(ctx context.Context, employeeID uuid.UUID, permissionName string) (int, error)

	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*models.EmployeeGrant, error)

	// ApplyRoleTemplate copies the role's permission defaults into
	// employee_permissions for a newly created employee. Existing grants
	// are left untouched.
	ApplyRoleTemplate(ctx context.Context, employeeID, roleID uuid.UUID) error
}

type employeePermissionRepo struct {
	db DBTX
}

func NewEmployeePermissionRepository(db DBTX) EmployeePermissionRepository {
	return &employeePermissionRepo{db: db}
}

func (r *employeePermissionRepo) Upsert(ctx context.Context, grant *models.EmployeePermission) error {
	query := `
		INSERT INTO employee_permissions (id, employee_id, permission_id, authorization_level_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (employee_id, permission_id)
		DO UPDATE SET authorization_level_id = EXCLUDED.authorization_level_id
	`
	_, err := r.db.Exec(ctx, query, grant.ID, grant.EmployeeID, grant.PermissionID, grant.AuthorizationLevelID)
	return err
}

func (r *employeePermissionRepo) Revoke(ctx context.Context, employeeID, permissionID uuid.UUID) error {
	query := `
		DELETE FROM employee_permissions
		WHERE employee_id = $1 AND permission_id = $2
	`
	_, err := r.db.Exec(ctx, query, employeeID, permissionID)
	return err
}

func (r *employeePermissionRepo) Get(ctx context.Context, employeeID, permissionID uuid.UUID) (*models.EmployeePermission, error) {
	grant := &models.EmployeePermission{}
	query := `
		SELECT id, employee_id, permission_id, authorization_level_id, created_at
		FROM employee_permissions
		WHERE employee_id = $1 AND permission_id = $2
	`
	err := r.db.QueryRow(ctx, query, employeeID, permissionID).Scan(
		&grant.ID, &grant.EmployeeID, &grant.PermissionID, &grant.AuthorizationLevelID, &grant.CreatedAt)
	if err != nil {
		return nil, err
	}
	return grant, nil
}

func (r *employeePermissionRepo) GetLevelCode(ctx context.Context, employeeID uuid.UUID, permissionName string) (int, error) {
	var code int
	query := `
		SELECT al.code
		FROM employee_permissions ep
		JOIN permissions p ON ep.permission_id = p.id
		JOIN authorization_levels al ON ep.authorization_level_id = al.id
		WHERE ep.employee_id = $1 AND p.name = $2
	`
	err := r.db.QueryRow(ctx, query, employeeID, permissionName).Scan(&code)
	if err != nil {
		return 0, err
	}
	return code, nil
}

func (r *employeePermissionRepo) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*models.EmployeeGrant, error) {
	query := `
		SELECT ep.permission_id, p.name, al.code, al.name
		FROM employee_permissions ep
		JOIN permissions p ON ep.permission_id = p.id
		JOIN authorization_levels al ON ep.authorization_level_id = al.id
		WHERE ep.employee_id = $1
		ORDER BY p.name
	`
	rows, err := r.db.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants []*models.EmployeeGrant
	for rows.Next() {
		grant := &models.EmployeeGrant{}
		if err := rows.Scan(&grant.PermissionID, &grant.PermissionName, &grant.LevelCode, &grant.LevelName); err != nil {
			return nil, err
		}
		grants = append(grants, grant)
	}
	return grants, rows.Err()
}

func (r *employeePermissionRepo) ApplyRoleTemplate(ctx context.Context, employeeID, roleID uuid.UUID) error {
	query := `
		INSERT INTO employee_permissions (id, employee_id, permission_id, authorization_level_id, created_at)
		SELECT gen_random_uuid(), $1, rp.permission_id, rp.authorization_level_id, NOW()
		FROM role_permissions rp
		WHERE rp.role_id = $2
		ON CONFLICT (employee_id, permission_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, employeeID, roleID)
	return err
}
