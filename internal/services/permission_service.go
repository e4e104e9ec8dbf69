package services

import (
	"context"
	"errors"
	"fmt"

	"staffsync/internal/models"
	"staffsync/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PermissionService owns the authorization mutations: employee grants,
// roles, and role permission templates. Every write runs in one transaction
// together with its audit entry, like any other audited change.
type PermissionService interface {
	Grant(ctx context.Context, employeeID, permissionID uuid.UUID, levelCode int, actor string) (*models.EmployeePermission, error)
	Revoke(ctx context.Context, employeeID, permissionID uuid.UUID, actor string) error
	CreateRole(ctx context.Context, name string, description *string, actor string) (*models.Role, error)
	SetRoleTemplateEntry(ctx context.Context, roleID, permissionID uuid.UUID, levelCode int, actor string) (*models.RolePermission, error)
	DeleteRoleTemplateEntry(ctx context.Context, roleID, permissionID uuid.UUID, actor string) error
}

type permissionService struct {
	db    repositories.TxStarter
	audit AuditRecorder
}

func NewPermissionService(db repositories.TxStarter, audit AuditRecorder) PermissionService {
	return &permissionService{db: db, audit: audit}
}

func (s *permissionService) Grant(ctx context.Context, employeeID, permissionID uuid.UUID, levelCode int, actor string) (*models.EmployeePermission, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	level, err := repositories.NewAuthorizationLevelRepository(tx).GetByCode(ctx, levelCode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve authorization level %d: %w", levelCode, err)
	}

	txGrants := repositories.NewEmployeePermissionRepository(tx)
	before, err := txGrants.Get(ctx, employeeID, permissionID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	grant := &models.EmployeePermission{
		ID:                   uuid.New(),
		EmployeeID:           employeeID,
		PermissionID:         permissionID,
		AuthorizationLevelID: level.ID,
	}
	if err := txGrants.Upsert(ctx, grant); err != nil {
		return nil, err
	}

	// Re-granting at the same level diffs to nothing and writes no entry.
	if before != nil {
		err = s.audit.RecordUpdate(ctx, tx, actor, before, grant)
	} else {
		err = s.audit.RecordCreate(ctx, tx, actor, grant)
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return grant, nil
}

func (s *permissionService) Revoke(ctx context.Context, employeeID, permissionID uuid.UUID, actor string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	txGrants := repositories.NewEmployeePermissionRepository(tx)
	before, err := txGrants.Get(ctx, employeeID, permissionID)
	if err != nil {
		return err
	}

	if err := txGrants.Revoke(ctx, employeeID, permissionID); err != nil {
		return err
	}
	if err := s.audit.RecordDelete(ctx, tx, actor, before); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *permissionService) CreateRole(ctx context.Context, name string, description *string, actor string) (*models.Role, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	role := &models.Role{ID: uuid.New(), Name: name, Description: description}
	if err := repositories.NewRoleRepository(tx).Create(ctx, role); err != nil {
		return nil, err
	}
	if err := s.audit.RecordCreate(ctx, tx, actor, role); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *permissionService) SetRoleTemplateEntry(ctx context.Context, roleID, permissionID uuid.UUID, levelCode int, actor string) (*models.RolePermission, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := repositories.NewRoleRepository(tx).GetByID(ctx, roleID); err != nil {
		return nil, err
	}
	level, err := repositories.NewAuthorizationLevelRepository(tx).GetByCode(ctx, levelCode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve authorization level %d: %w", levelCode, err)
	}

	txTemplate := repositories.NewRolePermissionRepository(tx)
	before, err := txTemplate.Get(ctx, roleID, permissionID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	entry := &models.RolePermission{
		ID:                   uuid.New(),
		RoleID:               roleID,
		PermissionID:         permissionID,
		AuthorizationLevelID: level.ID,
	}
	if err := txTemplate.Upsert(ctx, entry); err != nil {
		return nil, err
	}

	if before != nil {
		err = s.audit.RecordUpdate(ctx, tx, actor, before, entry)
	} else {
		err = s.audit.RecordCreate(ctx, tx, actor, entry)
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *permissionService) DeleteRoleTemplateEntry(ctx context.Context, roleID, permissionID uuid.UUID, actor string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	txTemplate := repositories.NewRolePermissionRepository(tx)
	before, err := txTemplate.Get(ctx, roleID, permissionID)
	if err != nil {
		return err
	}

	if err := txTemplate.Delete(ctx, roleID, permissionID); err != nil {
		return err
	}
	if err := s.audit.RecordDelete(ctx, tx, actor, before); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
