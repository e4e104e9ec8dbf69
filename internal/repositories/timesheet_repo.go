package repositories

import (
	"context"
	"time"

	"staffsync/internal/models"

	"github.com/google/uuid"
)

type BreakTypeRepository interface {
	Create(ctx context.Context, breakType *models.BreakType) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.BreakType, error)
	List(ctx context.Context) ([]*models.BreakType, error)
}

type breakTypeRepo struct {
	db DBTX
}

func NewBreakTypeRepository(db DBTX) BreakTypeRepository {
	return &breakTypeRepo{db: db}
}

func (r *breakTypeRepo) Create(ctx context.Context, breakType *models.BreakType) error {
	query := `
		INSERT INTO break_types (id, name, paid, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (name) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, breakType.ID, breakType.Name, breakType.Paid)
	return err
}

func (r *breakTypeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.BreakType, error) {
	breakType := &models.BreakType{}
	query := `SELECT id, name, paid, created_at FROM break_types WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&breakType.ID, &breakType.Name, &breakType.Paid, &breakType.CreatedAt)
	if err != nil {
		return nil, err
	}
	return breakType, nil
}

func (r *breakTypeRepo) List(ctx context.Context) ([]*models.BreakType, error) {
	query := `SELECT id, name, paid, created_at FROM break_types ORDER BY name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var breakTypes []*models.BreakType
	for rows.Next() {
		breakType := &models.BreakType{}
		if err := rows.Scan(&breakType.ID, &breakType.Name, &breakType.Paid, &breakType.CreatedAt); err != nil {
			return nil, err
		}
		breakTypes = append(breakTypes, breakType)
	}
	return breakTypes, rows.Err()
}

type TimesheetRepository interface {
	Create(ctx context.Context, timesheet *models.Timesheet) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Timesheet, error)
	Update(ctx context.Context, timesheet *models.Timesheet) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByEmployee(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]*models.Timesheet, error)
	// EmployeesWithoutEntry returns active employee IDs that have no
	// timesheet row for the given date. Used by the reminder job.
	EmployeesWithoutEntry(ctx context.Context, date time.Time) ([]uuid.UUID, error)
}

type timesheetRepo struct {
	db DBTX
}

func NewTimesheetRepository(db DBTX) TimesheetRepository {
	return &timesheetRepo{db: db}
}

const timesheetColumns = `id, employee_id, date, start_time, end_time, break_type_id, break_minutes, notes, created_at, updated_at`

func scanTimesheet(row interface{ Scan(dest ...any) error }) (*models.Timesheet, error) {
	t := &models.Timesheet{}
	err := row.Scan(&t.ID, &t.EmployeeID, &t.Date, &t.StartTime, &t.EndTime,
		&t.BreakTypeID, &t.BreakMinutes, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *timesheetRepo) Create(ctx context.Context, timesheet *models.Timesheet) error {
	query := `
		INSERT INTO timesheets (id, employee_id, date, start_time, end_time, break_type_id, break_minutes, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, timesheet.ID, timesheet.EmployeeID, timesheet.Date,
		timesheet.StartTime, timesheet.EndTime, timesheet.BreakTypeID, timesheet.BreakMinutes, timesheet.Notes)
	return err
}

func (r *timesheetRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Timesheet, error) {
	query := `SELECT ` + timesheetColumns + ` FROM timesheets WHERE id = $1`
	return scanTimesheet(r.db.QueryRow(ctx, query, id))
}

func (r *timesheetRepo) Update(ctx context.Context, timesheet *models.Timesheet) error {
	query := `
		UPDATE timesheets
		SET date = $1, start_time = $2, end_time = $3, break_type_id = $4, break_minutes = $5, notes = $6, updated_at = NOW()
		WHERE id = $7
	`
	_, err := r.db.Exec(ctx, query, timesheet.Date, timesheet.StartTime, timesheet.EndTime,
		timesheet.BreakTypeID, timesheet.BreakMinutes, timesheet.Notes, timesheet.ID)
	return err
}

func (r *timesheetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM timesheets WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *timesheetRepo) ListByEmployee(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]*models.Timesheet, error) {
	query := `SELECT ` + timesheetColumns + ` FROM timesheets WHERE employee_id = $1 AND date >= $2 AND date <= $3 ORDER BY date`
	rows, err := r.db.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var timesheets []*models.Timesheet
	for rows.Next() {
		timesheet, err := scanTimesheet(rows)
		if err != nil {
			return nil, err
		}
		timesheets = append(timesheets, timesheet)
	}
	return timesheets, rows.Err()
}

func (r *timesheetRepo) EmployeesWithoutEntry(ctx context.Context, date time.Time) ([]uuid.UUID, error) {
	query := `
		SELECT e.id
		FROM employees e
		WHERE e.active = true
		AND NOT EXISTS (SELECT 1 FROM timesheets t WHERE t.employee_id = e.id AND t.date = $1)
	`
	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
