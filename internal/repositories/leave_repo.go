package repositories

import (
	"context"
	"fmt"
	"time"

	"staffsync/internal/models"

	"github.com/google/uuid"
)

type LeaveTypeRepository interface {
	Create(ctx context.Context, leaveType *models.LeaveType) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.LeaveType, error)
	List(ctx context.Context) ([]*models.LeaveType, error)
}

type leaveTypeRepo struct {
	db DBTX
}

func NewLeaveTypeRepository(db DBTX) LeaveTypeRepository {
	return &leaveTypeRepo{db: db}
}

func (r *leaveTypeRepo) Create(ctx context.Context, leaveType *models.LeaveType) error {
	query := `
		INSERT INTO leave_types (id, name, allowance_days, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (name) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, leaveType.ID, leaveType.Name, leaveType.AllowanceDays)
	return err
}

func (r *leaveTypeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.LeaveType, error) {
	leaveType := &models.LeaveType{}
	query := `SELECT id, name, allowance_days, created_at FROM leave_types WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&leaveType.ID, &leaveType.Name, &leaveType.AllowanceDays, &leaveType.CreatedAt)
	if err != nil {
		return nil, err
	}
	return leaveType, nil
}

func (r *leaveTypeRepo) List(ctx context.Context) ([]*models.LeaveType, error) {
	query := `SELECT id, name, allowance_days, created_at FROM leave_types ORDER BY name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leaveTypes []*models.LeaveType
	for rows.Next() {
		leaveType := &models.LeaveType{}
		if err := rows.Scan(&leaveType.ID, &leaveType.Name, &leaveType.AllowanceDays, &leaveType.CreatedAt); err != nil {
			return nil, err
		}
		leaveTypes = append(leaveTypes, leaveType)
	}
	return leaveTypes, rows.Err()
}

type LeaveRequestRepository interface {
	Create(ctx context.Context, request *models.LeaveRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.LeaveRequest, error)
	Update(ctx context.Context, request *models.LeaveRequest) error
	ListByEmployee(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*models.LeaveRequest, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*models.LeaveRequest, error)
	CountByStatus(ctx context.Context, status string) (int, error)
	CountApprovedDaysInRange(ctx context.Context, from, to time.Time) (int, error)
}

type leaveRequestRepo struct {
	db DBTX
}

func NewLeaveRequestRepository(db DBTX) LeaveRequestRepository {
	return &leaveRequestRepo{db: db}
}

const leaveRequestColumns = `id, employee_id, leave_type_id, start_date, end_date, status, reason, reviewed_by, created_at, updated_at`

func scanLeaveRequest(row interface{ Scan(dest ...any) error }) (*models.LeaveRequest, error) {
	l := &models.LeaveRequest{}
	err := row.Scan(&l.ID, &l.EmployeeID, &l.LeaveTypeID, &l.StartDate, &l.EndDate,
		&l.Status, &l.Reason, &l.ReviewedBy, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *leaveRequestRepo) Create(ctx context.Context, request *models.LeaveRequest) error {
	query := `
		INSERT INTO leave_requests (id, employee_id, leave_type_id, start_date, end_date, status, reason, reviewed_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, request.ID, request.EmployeeID, request.LeaveTypeID,
		request.StartDate, request.EndDate, request.Status, request.Reason, request.ReviewedBy)
	return err
}

func (r *leaveRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.LeaveRequest, error) {
	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE id = $1`
	return scanLeaveRequest(r.db.QueryRow(ctx, query, id))
}

func (r *leaveRequestRepo) Update(ctx context.Context, request *models.LeaveRequest) error {
	query := `
		UPDATE leave_requests
		SET leave_type_id = $1, start_date = $2, end_date = $3, status = $4, reason = $5, reviewed_by = $6, updated_at = NOW()
		WHERE id = $7
	`
	_, err := r.db.Exec(ctx, query, request.LeaveTypeID, request.StartDate, request.EndDate,
		request.Status, request.Reason, request.ReviewedBy, request.ID)
	return err
}

func (r *leaveRequestRepo) ListByEmployee(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*models.LeaveRequest, error) {
	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE employee_id = $1 ORDER BY start_date DESC LIMIT $2 OFFSET $3`
	return r.queryLeaveRequests(ctx, query, employeeID, limit, offset)
}

func (r *leaveRequestRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*models.LeaveRequest, error) {
	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.queryLeaveRequests(ctx, query, status, limit, offset)
}

func (r *leaveRequestRepo) queryLeaveRequests(ctx context.Context, query string, args ...any) ([]*models.LeaveRequest, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*models.LeaveRequest
	for rows.Next() {
		request, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

func (r *leaveRequestRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM leave_requests WHERE status = $1`, status).Scan(&count)
	return count, err
}

func (r *leaveRequestRepo) CountApprovedDaysInRange(ctx context.Context, from, to time.Time) (int, error) {
	var days int
	query := `
		SELECT COALESCE(SUM(end_date::date - start_date::date + 1), 0)
		FROM leave_requests
		WHERE status = 'approved' AND start_date >= $1 AND start_date <= $2
	`
	err := r.db.QueryRow(ctx, query, from, to).Scan(&days)
	return days, err
}

type LeaveBalanceRepository interface {
	GetBalance(ctx context.Context, employeeID, leaveTypeID uuid.UUID) (*models.LeaveBalance, error)
	// Adjust adds delta (which may be negative) to the stored balance,
	// creating the row on first use.
	Adjust(ctx context.Context, employeeID, leaveTypeID uuid.UUID, delta float64) error
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*models.LeaveBalance, error)
}

type leaveBalanceRepo struct {
	db DBTX
}

func NewLeaveBalanceRepository(db DBTX) LeaveBalanceRepository {
	return &leaveBalanceRepo{db: db}
}

func (r *leaveBalanceRepo) GetBalance(ctx context.Context, employeeID, leaveTypeID uuid.UUID) (*models.LeaveBalance, error) {
	balance := &models.LeaveBalance{}
	query := `
		SELECT id, employee_id, leave_type_id, remaining_days, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type_id = $2
	`
	err := r.db.QueryRow(ctx, query, employeeID, leaveTypeID).Scan(
		&balance.ID, &balance.EmployeeID, &balance.LeaveTypeID, &balance.RemainingDays, &balance.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return balance, nil
}

func (r *leaveBalanceRepo) Adjust(ctx context.Context, employeeID, leaveTypeID uuid.UUID, delta float64) error {
	query := `
		INSERT INTO leave_balances (id, employee_id, leave_type_id, remaining_days, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, NOW())
		ON CONFLICT (employee_id, leave_type_id)
		DO UPDATE SET remaining_days = leave_balances.remaining_days + $3, updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, employeeID, leaveTypeID, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust leave balance: %w", err)
	}
	return nil
}

func (r *leaveBalanceRepo) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*models.LeaveBalance, error) {
	query := `
		SELECT id, employee_id, leave_type_id, remaining_days, updated_at
		FROM leave_balances
		WHERE employee_id = $1
	`
	rows, err := r.db.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []*models.LeaveBalance
	for rows.Next() {
		balance := &models.LeaveBalance{}
		if err := rows.Scan(&balance.ID, &balance.EmployeeID, &balance.LeaveTypeID, &balance.RemainingDays, &balance.UpdatedAt); err != nil {
			return nil, err
		}
		balances = append(balances, balance)
	}
	return balances, rows.Err()
}
