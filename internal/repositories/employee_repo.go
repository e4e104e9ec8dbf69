package repositories

import (
	"context"
	"errors"
	"fmt"

	"staffsync/internal/models"

	"github.com/google/uuid"
)

// ErrEmailTaken is returned by Create when another employee already uses
// the email address.
var ErrEmailTaken = errors.New("email already in use")

type EmployeeRepository interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Employee, error)
	GetByEmail(ctx context.Context, email string) (*models.Employee, error)
	Update(ctx context.Context, employee *models.Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Employee, error)
	ListActive(ctx context.Context) ([]*models.Employee, error)
	CountByDepartment(ctx context.Context) (map[string]int, error)
}

type employeeRepo struct {
	db DBTX
}

func NewEmployeeRepository(db DBTX) EmployeeRepository {
	return &employeeRepo{db: db}
}

const employeeColumns = `id, code, email, password_hash, first_name, last_name, role_id, department, position, hire_date, active, photo_key, created_at, updated_at`

func scanEmployee(row interface{ Scan(dest ...any) error }) (*models.Employee, error) {
	e := &models.Employee{}
	err := row.Scan(&e.ID, &e.Code, &e.Email, &e.PasswordHash, &e.FirstName, &e.LastName,
		&e.RoleID, &e.Department, &e.Position, &e.HireDate, &e.Active, &e.PhotoKey,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *employeeRepo) Create(ctx context.Context, employee *models.Employee) error {
	// Email must be unique across the whole store.
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE email = $1`, employee.Email).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("employee with email '%s': %w", employee.Email, ErrEmailTaken)
	}

	query := `
		INSERT INTO employees (id, code, email, password_hash, first_name, last_name, role_id, department, position, hire_date, active, photo_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
	`
	_, err = r.db.Exec(ctx, query, employee.ID, employee.Code, employee.Email, employee.PasswordHash,
		employee.FirstName, employee.LastName, employee.RoleID, employee.Department,
		employee.Position, employee.HireDate, employee.Active, employee.PhotoKey)
	return err
}

func (r *employeeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	return scanEmployee(r.db.QueryRow(ctx, query, id))
}

func (r *employeeRepo) GetByEmail(ctx context.Context, email string) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email = $1`
	return scanEmployee(r.db.QueryRow(ctx, query, email))
}

func (r *employeeRepo) Update(ctx context.Context, employee *models.Employee) error {
	query := `
		UPDATE employees
		SET email = $1, first_name = $2, last_name = $3, role_id = $4, department = $5,
		    position = $6, hire_date = $7, active = $8, photo_key = $9, updated_at = NOW()
		WHERE id = $10
	`
	_, err := r.db.Exec(ctx, query, employee.Email, employee.FirstName, employee.LastName,
		employee.RoleID, employee.Department, employee.Position, employee.HireDate,
		employee.Active, employee.PhotoKey, employee.ID)
	return err
}

func (r *employeeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM employees WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *employeeRepo) List(ctx context.Context, limit, offset int) ([]*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []*models.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *employeeRepo) ListActive(ctx context.Context) ([]*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE active = true ORDER BY code`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []*models.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *employeeRepo) CountByDepartment(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT department, COUNT(*)
		FROM employees
		WHERE active = true
		GROUP BY department
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var department string
		var count int
		if err := rows.Scan(&department, &count); err != nil {
			return nil, err
		}
		counts[department] = count
	}
	return counts, rows.Err()
}
