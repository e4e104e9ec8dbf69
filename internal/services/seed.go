package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"staffsync/internal/models"
	"staffsync/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Seeder creates the reference data the application assumes: authorization
// levels, permissions, default roles with their permission templates, leave
// and break types, and a bootstrap administrator account. Every insert is
// an upsert, so seeding is safe to run on every start.
type Seeder struct {
	permissionRepo     repositories.PermissionRepository
	levelRepo          repositories.AuthorizationLevelRepository
	roleRepo           repositories.RoleRepository
	rolePermissionRepo repositories.RolePermissionRepository
	leaveTypeRepo      repositories.LeaveTypeRepository
	breakTypeRepo      repositories.BreakTypeRepository
	employeeRepo       repositories.EmployeeRepository
	employeeSvc        EmployeeService
}

func NewSeeder(permissionRepo repositories.PermissionRepository, levelRepo repositories.AuthorizationLevelRepository,
	roleRepo repositories.RoleRepository, rolePermissionRepo repositories.RolePermissionRepository,
	leaveTypeRepo repositories.LeaveTypeRepository, breakTypeRepo repositories.BreakTypeRepository,
	employeeRepo repositories.EmployeeRepository, employeeSvc EmployeeService) *Seeder {
	return &Seeder{
		permissionRepo:     permissionRepo,
		levelRepo:          levelRepo,
		roleRepo:           roleRepo,
		rolePermissionRepo: rolePermissionRepo,
		leaveTypeRepo:      leaveTypeRepo,
		breakTypeRepo:      breakTypeRepo,
		employeeRepo:       employeeRepo,
		employeeSvc:        employeeSvc,
	}
}

// roleTemplates maps default role names to permission-name → level-code
// defaults copied to new accounts at creation time.
var roleTemplates = map[string]map[string]int{
	"Administrator": {
		models.PermEmployees:   models.LevelManager,
		models.PermLeave:       models.LevelManager,
		models.PermAttendance:  models.LevelManager,
		models.PermTimeSheet:   models.LevelManager,
		models.PermRecruitment: models.LevelManager,
		models.PermPermissions: models.LevelManager,
		models.PermAudit:       models.LevelManager,
		models.PermDashboard:   models.LevelManager,
	},
	"HR Manager": {
		models.PermEmployees:   models.LevelManager,
		models.PermLeave:       models.LevelManager,
		models.PermAttendance:  models.LevelManager,
		models.PermTimeSheet:   models.LevelManager,
		models.PermRecruitment: models.LevelManager,
		models.PermPermissions: models.LevelViewer,
		models.PermAudit:       models.LevelViewer,
		models.PermDashboard:   models.LevelViewer,
	},
	"Employee": {
		models.PermEmployees:  models.LevelViewer,
		models.PermLeave:      models.LevelEditor,
		models.PermAttendance: models.LevelEditor,
		models.PermTimeSheet:  models.LevelEditor,
		models.PermDashboard:  models.LevelViewer,
	},
}

func (s *Seeder) Seed(ctx context.Context, adminEmail, adminPassword string) error {
	for code, name := range models.LevelNames {
		level := &models.AuthorizationLevel{ID: uuid.New(), Code: code, Name: name}
		if err := s.levelRepo.Create(ctx, level); err != nil {
			return fmt.Errorf("failed to seed authorization level %q: %w", name, err)
		}
	}

	for _, name := range models.SeedPermissions {
		permission := &models.Permission{ID: uuid.New(), Name: name}
		if err := s.permissionRepo.Create(ctx, permission); err != nil {
			return fmt.Errorf("failed to seed permission %q: %w", name, err)
		}
	}

	for roleName, template := range roleTemplates {
		if err := s.seedRole(ctx, roleName, template); err != nil {
			return err
		}
	}

	leaveTypes := map[string]int{"Annual": 25, "Sick": 10, "Unpaid": 0}
	for name, allowance := range leaveTypes {
		leaveType := &models.LeaveType{ID: uuid.New(), Name: name, AllowanceDays: allowance}
		if err := s.leaveTypeRepo.Create(ctx, leaveType); err != nil {
			return fmt.Errorf("failed to seed leave type %q: %w", name, err)
		}
	}

	breakTypes := map[string]bool{"Lunch": false, "Rest": true}
	for name, paid := range breakTypes {
		breakType := &models.BreakType{ID: uuid.New(), Name: name, Paid: paid}
		if err := s.breakTypeRepo.Create(ctx, breakType); err != nil {
			return fmt.Errorf("failed to seed break type %q: %w", name, err)
		}
	}

	return s.seedAdmin(ctx, adminEmail, adminPassword)
}

func (s *Seeder) seedRole(ctx context.Context, roleName string, template map[string]int) error {
	if err := s.roleRepo.Create(ctx, &models.Role{ID: uuid.New(), Name: roleName}); err != nil {
		return fmt.Errorf("failed to seed role %q: %w", roleName, err)
	}
	role, err := s.roleRepo.GetByName(ctx, roleName)
	if err != nil {
		return err
	}

	for permissionName, levelCode := range template {
		permission, err := s.permissionRepo.GetByName(ctx, permissionName)
		if err != nil {
			return err
		}
		level, err := s.levelRepo.GetByCode(ctx, levelCode)
		if err != nil {
			return err
		}
		rolePermission := &models.RolePermission{
			ID:                   uuid.New(),
			RoleID:               role.ID,
			PermissionID:         permission.ID,
			AuthorizationLevelID: level.ID,
		}
		if err := s.rolePermissionRepo.Upsert(ctx, rolePermission); err != nil {
			return fmt.Errorf("failed to seed template for role %q: %w", roleName, err)
		}
	}
	return nil
}

func (s *Seeder) seedAdmin(ctx context.Context, adminEmail, adminPassword string) error {
	if adminEmail == "" || adminPassword == "" {
		return nil
	}

	_, err := s.employeeRepo.GetByEmail(ctx, adminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	role, err := s.roleRepo.GetByName(ctx, "Administrator")
	if err != nil {
		return err
	}

	_, err = s.employeeSvc.Create(ctx, CreateEmployeeInput{
		Email:      adminEmail,
		Password:   adminPassword,
		FirstName:  "System",
		LastName:   "Administrator",
		RoleID:     role.ID,
		Department: "IT",
		Position:   "Administrator",
		HireDate:   time.Now().UTC(),
	}, "System")
	if err != nil {
		return fmt.Errorf("failed to create bootstrap administrator: %w", err)
	}
	log.Printf("Seeded bootstrap administrator account %s", adminEmail)
	return nil
}
