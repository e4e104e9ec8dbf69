package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"staffsync/internal/models"
	"staffsync/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrLeaveNotPending     = errors.New("leave request is not pending")
	ErrInvalidLeaveDates   = errors.New("end date cannot be before start date")
	ErrInsufficientBalance = errors.New("insufficient leave balance")
)

type SubmitLeaveInput struct {
	EmployeeID  uuid.UUID
	LeaveTypeID uuid.UUID
	StartDate   time.Time
	EndDate     time.Time
	Reason      *string
}

type LeaveService interface {
	Submit(ctx context.Context, input SubmitLeaveInput, actor string) (*models.LeaveRequest, error)
	// Review approves or rejects a pending request. Approval debits the
	// employee's balance for the leave type in the same transaction.
	Review(ctx context.Context, requestID, reviewerID uuid.UUID, approve bool, actor string) (*models.LeaveRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.LeaveRequest, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*models.LeaveRequest, error)
	ListPending(ctx context.Context, limit, offset int) ([]*models.LeaveRequest, error)
	Balances(ctx context.Context, employeeID uuid.UUID) ([]*models.LeaveBalance, error)
	ListTypes(ctx context.Context) ([]*models.LeaveType, error)
}

type leaveService struct {
	db            repositories.TxStarter
	requestRepo   repositories.LeaveRequestRepository
	balanceRepo   repositories.LeaveBalanceRepository
	leaveTypeRepo repositories.LeaveTypeRepository
	audit         AuditRecorder
}

func NewLeaveService(db repositories.TxStarter, requestRepo repositories.LeaveRequestRepository,
	balanceRepo repositories.LeaveBalanceRepository, leaveTypeRepo repositories.LeaveTypeRepository,
	audit AuditRecorder) LeaveService {
	return &leaveService{
		db:            db,
		requestRepo:   requestRepo,
		balanceRepo:   balanceRepo,
		leaveTypeRepo: leaveTypeRepo,
		audit:         audit,
	}
}

// leaveDays counts calendar days, inclusive of both ends.
func leaveDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

func (s *leaveService) Submit(ctx context.Context, input SubmitLeaveInput, actor string) (*models.LeaveRequest, error) {
	if input.EndDate.Before(input.StartDate) {
		return nil, ErrInvalidLeaveDates
	}
	if _, err := s.leaveTypeRepo.GetByID(ctx, input.LeaveTypeID); err != nil {
		return nil, fmt.Errorf("unknown leave type: %w", err)
	}

	request := &models.LeaveRequest{
		ID:          uuid.New(),
		EmployeeID:  input.EmployeeID,
		LeaveTypeID: input.LeaveTypeID,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      models.LeaveStatusPending,
		Reason:      input.Reason,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := repositories.NewLeaveRequestRepository(tx).Create(ctx, request); err != nil {
		return nil, err
	}
	if err := s.audit.RecordCreate(ctx, tx, actor, request); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *leaveService) Review(ctx context.Context, requestID, reviewerID uuid.UUID, approve bool, actor string) (*models.LeaveRequest, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	txRequests := repositories.NewLeaveRequestRepository(tx)
	before, err := txRequests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if before.Status != models.LeaveStatusPending {
		return nil, ErrLeaveNotPending
	}

	after := *before
	after.ReviewedBy = &reviewerID
	if approve {
		after.Status = models.LeaveStatusApproved
	} else {
		after.Status = models.LeaveStatusRejected
	}

	if approve {
		days := float64(leaveDays(before.StartDate, before.EndDate))
		txBalances := repositories.NewLeaveBalanceRepository(tx)

		// An employee with no balance row yet has accrued nothing to spend.
		remaining := 0.0
		balance, err := txBalances.GetBalance(ctx, before.EmployeeID, before.LeaveTypeID)
		if err == nil {
			remaining = balance.RemainingDays
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		if remaining < days {
			return nil, ErrInsufficientBalance
		}
		if err := txBalances.Adjust(ctx, before.EmployeeID, before.LeaveTypeID, -days); err != nil {
			return nil, err
		}
	}

	if err := txRequests.Update(ctx, &after); err != nil {
		return nil, err
	}
	if err := s.audit.RecordUpdate(ctx, tx, actor, before, &after); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &after, nil
}

func (s *leaveService) GetByID(ctx context.Context, id uuid.UUID) (*models.LeaveRequest, error) {
	return s.requestRepo.GetByID(ctx, id)
}

func (s *leaveService) ListByEmployee(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*models.LeaveRequest, error) {
	return s.requestRepo.ListByEmployee(ctx, employeeID, limit, offset)
}

func (s *leaveService) ListPending(ctx context.Context, limit, offset int) ([]*models.LeaveRequest, error) {
	return s.requestRepo.ListByStatus(ctx, models.LeaveStatusPending, limit, offset)
}

func (s *leaveService) Balances(ctx context.Context, employeeID uuid.UUID) ([]*models.LeaveBalance, error) {
	return s.balanceRepo.ListByEmployee(ctx, employeeID)
}

func (s *leaveService) ListTypes(ctx context.Context) ([]*models.LeaveType, error) {
	return s.leaveTypeRepo.List(ctx)
}
