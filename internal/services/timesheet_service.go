package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"staffsync/internal/models"
	"staffsync/internal/repositories"

	"github.com/google/uuid"
)

var ErrInvalidTimesheetTimes = errors.New("end time must be after start time")

type TimesheetInput struct {
	EmployeeID   uuid.UUID
	Date         time.Time
	StartTime    time.Time
	EndTime      time.Time
	BreakTypeID  *uuid.UUID
	BreakMinutes int
	Notes        *string
}

type TimesheetService interface {
	Create(ctx context.Context, input TimesheetInput, actor string) (*models.Timesheet, error)
	Update(ctx context.Context, id uuid.UUID, input TimesheetInput, actor string) (*models.Timesheet, error)
	Delete(ctx context.Context, id uuid.UUID, actor string) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Timesheet, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]*models.Timesheet, error)
	ListBreakTypes(ctx context.Context) ([]*models.BreakType, error)
}

type timesheetService struct {
	db            repositories.TxStarter
	timesheetRepo repositories.TimesheetRepository
	breakTypeRepo repositories.BreakTypeRepository
	audit         AuditRecorder
}

func NewTimesheetService(db repositories.TxStarter, timesheetRepo repositories.TimesheetRepository,
	breakTypeRepo repositories.BreakTypeRepository, audit AuditRecorder) TimesheetService {
	return &timesheetService{
		db:            db,
		timesheetRepo: timesheetRepo,
		breakTypeRepo: breakTypeRepo,
		audit:         audit,
	}
}

func (s *timesheetService) validate(ctx context.Context, input TimesheetInput) error {
	if !input.EndTime.After(input.StartTime) {
		return ErrInvalidTimesheetTimes
	}
	if input.BreakMinutes < 0 {
		return errors.New("break minutes cannot be negative")
	}
	if input.BreakTypeID != nil {
		if _, err := s.breakTypeRepo.GetByID(ctx, *input.BreakTypeID); err != nil {
			return fmt.Errorf("unknown break type: %w", err)
		}
	}
	return nil
}

func (s *timesheetService) Create(ctx context.Context, input TimesheetInput, actor string) (*models.Timesheet, error) {
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	timesheet := &models.Timesheet{
		ID:           uuid.New(),
		EmployeeID:   input.EmployeeID,
		Date:         input.Date,
		StartTime:    input.StartTime,
		EndTime:      input.EndTime,
		BreakTypeID:  input.BreakTypeID,
		BreakMinutes: input.BreakMinutes,
		Notes:        input.Notes,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := repositories.NewTimesheetRepository(tx).Create(ctx, timesheet); err != nil {
		return nil, err
	}
	if err := s.audit.RecordCreate(ctx, tx, actor, timesheet); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return timesheet, nil
}

func (s *timesheetService) Update(ctx context.Context, id uuid.UUID, input TimesheetInput, actor string) (*models.Timesheet, error) {
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	txRepo := repositories.NewTimesheetRepository(tx)
	before, err := txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	after := *before
	after.Date = input.Date
	after.StartTime = input.StartTime
	after.EndTime = input.EndTime
	after.BreakTypeID = input.BreakTypeID
	after.BreakMinutes = input.BreakMinutes
	after.Notes = input.Notes

	if err := txRepo.Update(ctx, &after); err != nil {
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

func (s *timesheetService) Delete(ctx context.Context, id uuid.UUID, actor string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	txRepo := repositories.NewTimesheetRepository(tx)
	before, err := txRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := txRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.audit.RecordDelete(ctx, tx, actor, before); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *timesheetService) GetByID(ctx context.Context, id uuid.UUID) (*models.Timesheet, error) {
	return s.timesheetRepo.GetByID(ctx, id)
}

func (s *timesheetService) ListByEmployee(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]*models.Timesheet, error) {
	return s.timesheetRepo.ListByEmployee(ctx, employeeID, from, to)
}

func (s *timesheetService) ListBreakTypes(ctx context.Context) ([]*models.BreakType, error) {
	return s.breakTypeRepo.List(ctx)
}
