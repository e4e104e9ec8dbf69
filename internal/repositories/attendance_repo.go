package repositories

import (
	"context"
	"time"

	"staffsync/internal/models"

	"github.com/google/uuid"
)

type AttendanceRepository interface {
	Create(ctx context.Context, attendance *models.Attendance) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Attendance, error)
	GetOpenForDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*models.Attendance, error)
	SetClockOut(ctx context.Context, id uuid.UUID, clockOut time.Time) error
	ListByEmployee(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*models.Attendance, error)
	CountPresentOnDate(ctx context.Context, date time.Time) (int, error)
}

type attendanceRepo struct {
	db DBTX
}

func NewAttendanceRepository(db DBTX) AttendanceRepository {
	return &attendanceRepo{db: db}
}

const attendanceColumns = `id, employee_id, date, clock_in, clock_out, created_at`

func scanAttendance(row interface{ Scan(dest ...any) error }) (*models.Attendance, error) {
	a := &models.Attendance{}
	err := row.Scan(&a.ID, &a.EmployeeID, &a.Date, &a.ClockIn, &a.ClockOut, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *attendanceRepo) Create(ctx context.Context, attendance *models.Attendance) error {
	query := `
		INSERT INTO attendance (id, employee_id, date, clock_in, clock_out, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := r.db.Exec(ctx, query, attendance.ID, attendance.EmployeeID, attendance.Date,
		attendance.ClockIn, attendance.ClockOut)
	return err
}

func (r *attendanceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE id = $1`
	return scanAttendance(r.db.QueryRow(ctx, query, id))
}

// GetOpenForDate finds the day's record without a clock-out yet.
func (r *attendanceRepo) GetOpenForDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*models.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE employee_id = $1 AND date = $2 AND clock_out IS NULL`
	return scanAttendance(r.db.QueryRow(ctx, query, employeeID, date))
}

func (r *attendanceRepo) SetClockOut(ctx context.Context, id uuid.UUID, clockOut time.Time) error {
	query := `UPDATE attendance SET clock_out = $1 WHERE id = $2`
	_, err := r.db.Exec(ctx, query, clockOut, id)
	return err
}

func (r *attendanceRepo) ListByEmployee(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*models.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE employee_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, employeeID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (r *attendanceRepo) CountPresentOnDate(ctx context.Context, date time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(DISTINCT employee_id) FROM attendance WHERE date = $1`, date).Scan(&count)
	return count, err
}
