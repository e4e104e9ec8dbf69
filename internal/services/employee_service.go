package services

import (
	"context"
	"fmt"
	"time"

	"staffsync/internal/caching"
	"staffsync/internal/models"
	"staffsync/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// CreateEmployeeInput carries the validated fields for a new account.
type CreateEmployeeInput struct {
	Email      string
	Password   string
	FirstName  string
	LastName   string
	RoleID     uuid.UUID
	Department string
	Position   string
	HireDate   time.Time
}

// UpdateEmployeeInput carries the mutable employee fields.
type UpdateEmployeeInput struct {
	Email      string
	FirstName  string
	LastName   string
	RoleID     uuid.UUID
	Department string
	Position   string
	HireDate   time.Time
	Active     bool
}

// EmployeeService owns the employee lifecycle. Every write runs in one
// transaction together with its audit entry; creation additionally draws
// the next employee code and copies the role's permission template into the
// new account.
type EmployeeService interface {
	Create(ctx context.Context, input CreateEmployeeInput, actor string) (*models.Employee, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateEmployeeInput, actor string) (*models.Employee, error)
	Deactivate(ctx context.Context, id uuid.UUID, actor string) (*models.Employee, error)
	Delete(ctx context.Context, id uuid.UUID, actor string) error
	SetPhotoKey(ctx context.Context, id uuid.UUID, photoKey string, actor string) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Employee, error)
	List(ctx context.Context, limit, offset int) ([]*models.Employee, error)
}

type employeeService struct {
	db           repositories.TxStarter
	employeeRepo repositories.EmployeeRepository
	codeSvc      EmployeeCodeService
	audit        AuditRecorder
	cacheSvc     caching.CacheService
}

func NewEmployeeService(db repositories.TxStarter, employeeRepo repositories.EmployeeRepository,
	codeSvc EmployeeCodeService, audit AuditRecorder, cacheSvc caching.CacheService) EmployeeService {
	return &employeeService{
		db:           db,
		employeeRepo: employeeRepo,
		codeSvc:      codeSvc,
		audit:        audit,
		cacheSvc:     cacheSvc,
	}
}

func (s *employeeService) Create(ctx context.Context, input CreateEmployeeInput, actor string) (*models.Employee, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	code, err := s.codeSvc.Next(ctx, tx)
	if err != nil {
		return nil, err
	}

	employee := &models.Employee{
		ID:           uuid.New(),
		Code:         code,
		Email:        input.Email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		RoleID:       input.RoleID,
		Department:   input.Department,
		Position:     input.Position,
		HireDate:     input.HireDate,
		Active:       true,
	}

	if err := repositories.NewEmployeeRepository(tx).Create(ctx, employee); err != nil {
		return nil, err
	}

	// The role's permission defaults apply once, at account creation.
	if err := repositories.NewEmployeePermissionRepository(tx).ApplyRoleTemplate(ctx, employee.ID, input.RoleID); err != nil {
		return nil, fmt.Errorf("failed to apply role permission template: %w", err)
	}

	if err := s.audit.RecordCreate(ctx, tx, actor, employee); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.invalidate(ctx, employee.ID)
	return employee, nil
}

func (s *employeeService) Update(ctx context.Context, id uuid.UUID, input UpdateEmployeeInput, actor string) (*models.Employee, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	txRepo := repositories.NewEmployeeRepository(tx)

	// Snapshot loaded at the start of the unit of work; the audit diff is
	// computed against this, not a re-read at save time.
	before, err := txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	after := *before
	after.Email = input.Email
	after.FirstName = input.FirstName
	after.LastName = input.LastName
	after.RoleID = input.RoleID
	after.Department = input.Department
	after.Position = input.Position
	after.HireDate = input.HireDate
	after.Active = input.Active

	if err := txRepo.Update(ctx, &after); err != nil {
		return nil, err
	}
	if err := s.audit.RecordUpdate(ctx, tx, actor, before, &after); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return &after, nil
}

func (s *employeeService) Deactivate(ctx context.Context, id uuid.UUID, actor string) (*models.Employee, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	txRepo := repositories.NewEmployeeRepository(tx)
	before, err := txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	after := *before
	after.Active = false

	if err := txRepo.Update(ctx, &after); err != nil {
		return nil, err
	}
	if err := s.audit.RecordUpdate(ctx, tx, actor, before, &after); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return &after, nil
}

func (s *employeeService) Delete(ctx context.Context, id uuid.UUID, actor string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	txRepo := repositories.NewEmployeeRepository(tx)
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
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	return nil
}

func (s *employeeService) SetPhotoKey(ctx context.Context, id uuid.UUID, photoKey string, actor string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	txRepo := repositories.NewEmployeeRepository(tx)
	before, err := txRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	after := *before
	after.PhotoKey = &photoKey

	if err := txRepo.Update(ctx, &after); err != nil {
		return err
	}
	if err := s.audit.RecordUpdate(ctx, tx, actor, before, &after); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	return nil
}

func (s *employeeService) GetByID(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	if cached, err := s.cacheSvc.GetEmployee(ctx, id); err == nil && cached != nil {
		return cached, nil
	}
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Cache trouble never fails the read.
	_ = s.cacheSvc.SetEmployee(ctx, employee, 5*time.Minute)
	return employee, nil
}

func (s *employeeService) List(ctx context.Context, limit, offset int) ([]*models.Employee, error) {
	return s.employeeRepo.List(ctx, limit, offset)
}

func (s *employeeService) invalidate(ctx context.Context, id uuid.UUID) {
	_ = s.cacheSvc.DeleteEmployee(ctx, id)
	_ = s.cacheSvc.InvalidateDashboard(ctx)
}
