package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"staffsync/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type PermissionServiceTestSuite struct {
	suite.Suite
	mock         pgxmock.PgxPoolIface
	svc          PermissionService
	employeeID   uuid.UUID
	permissionID uuid.UUID
	levelID      uuid.UUID
	ctx          context.Context
}

func (suite *PermissionServiceTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.svc = NewPermissionService(mock, NewAuditRecorder())
	suite.employeeID = uuid.New()
	suite.permissionID = uuid.New()
	suite.levelID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *PermissionServiceTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestPermissionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PermissionServiceTestSuite))
}

func (suite *PermissionServiceTestSuite) expectLevelLookup(code int) {
	suite.mock.ExpectQuery(`SELECT id, code, name FROM authorization_levels`).
		WithArgs(code).
		WillReturnRows(pgxmock.NewRows([]string{"id", "code", "name"}).
			AddRow(suite.levelID, code, models.LevelNames[code]))
}

func (suite *PermissionServiceTestSuite) TestGrantNewCommitsWithAudit() {
	suite.mock.ExpectBegin()
	suite.expectLevelLookup(models.LevelEditor)
	suite.mock.ExpectQuery(`SELECT id, employee_id, permission_id`).
		WithArgs(suite.employeeID, suite.permissionID).
		WillReturnError(pgx.ErrNoRows)
	suite.mock.ExpectExec(`INSERT INTO employee_permissions`).
		WithArgs(pgxmock.AnyArg(), suite.employeeID, suite.permissionID, suite.levelID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`INSERT INTO audit_entries`).
		WithArgs(pgxmock.AnyArg(), "EmployeePermission", models.ActionCreated, "admin",
			pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()

	grant, err := suite.svc.Grant(suite.ctx, suite.employeeID, suite.permissionID, models.LevelEditor, "admin")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.levelID, grant.AuthorizationLevelID)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *PermissionServiceTestSuite) TestGrantSameLevelWritesNoAudit() {
	suite.mock.ExpectBegin()
	suite.expectLevelLookup(models.LevelEditor)
	suite.mock.ExpectQuery(`SELECT id, employee_id, permission_id`).
		WithArgs(suite.employeeID, suite.permissionID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "employee_id", "permission_id", "authorization_level_id", "created_at",
		}).AddRow(uuid.New(), suite.employeeID, suite.permissionID, suite.levelID, time.Now()))
	suite.mock.ExpectExec(`INSERT INTO employee_permissions`).
		WithArgs(pgxmock.AnyArg(), suite.employeeID, suite.permissionID, suite.levelID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	// Re-granting the level already held changes nothing, so no audit row.
	suite.mock.ExpectCommit()

	_, err := suite.svc.Grant(suite.ctx, suite.employeeID, suite.permissionID, models.LevelEditor, "admin")
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *PermissionServiceTestSuite) TestGrantRollsBackWhenAuditFails() {
	suite.mock.ExpectBegin()
	suite.expectLevelLookup(models.LevelManager)
	suite.mock.ExpectQuery(`SELECT id, employee_id, permission_id`).
		WithArgs(suite.employeeID, suite.permissionID).
		WillReturnError(pgx.ErrNoRows)
	suite.mock.ExpectExec(`INSERT INTO employee_permissions`).
		WithArgs(pgxmock.AnyArg(), suite.employeeID, suite.permissionID, suite.levelID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`INSERT INTO audit_entries`).
		WithArgs(pgxmock.AnyArg(), "EmployeePermission", models.ActionCreated, "admin",
			pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("disk full"))
	suite.mock.ExpectRollback()

	_, err := suite.svc.Grant(suite.ctx, suite.employeeID, suite.permissionID, models.LevelManager, "admin")
	assert.Error(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *PermissionServiceTestSuite) TestRevokeRecordsDeletion() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT id, employee_id, permission_id`).
		WithArgs(suite.employeeID, suite.permissionID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "employee_id", "permission_id", "authorization_level_id", "created_at",
		}).AddRow(uuid.New(), suite.employeeID, suite.permissionID, suite.levelID, time.Now()))
	suite.mock.ExpectExec(`DELETE FROM employee_permissions`).
		WithArgs(suite.employeeID, suite.permissionID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	suite.mock.ExpectExec(`INSERT INTO audit_entries`).
		WithArgs(pgxmock.AnyArg(), "EmployeePermission", models.ActionDeleted, "admin",
			pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()

	err := suite.svc.Revoke(suite.ctx, suite.employeeID, suite.permissionID, "admin")
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *PermissionServiceTestSuite) TestRevokeUnknownGrant() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT id, employee_id, permission_id`).
		WithArgs(suite.employeeID, suite.permissionID).
		WillReturnError(pgx.ErrNoRows)
	suite.mock.ExpectRollback()

	err := suite.svc.Revoke(suite.ctx, suite.employeeID, suite.permissionID, "admin")
	assert.True(suite.T(), errors.Is(err, pgx.ErrNoRows))
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *PermissionServiceTestSuite) TestSetRoleTemplateEntryUnknownRole() {
	roleID := uuid.New()

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT .+ FROM roles`).
		WithArgs(roleID).
		WillReturnError(pgx.ErrNoRows)
	suite.mock.ExpectRollback()

	_, err := suite.svc.SetRoleTemplateEntry(suite.ctx, roleID, suite.permissionID, models.LevelViewer, "admin")
	assert.True(suite.T(), errors.Is(err, pgx.ErrNoRows))
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *PermissionServiceTestSuite) TestDeleteRoleTemplateEntryRecordsDeletion() {
	roleID := uuid.New()

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT id, role_id, permission_id`).
		WithArgs(roleID, suite.permissionID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "role_id", "permission_id", "authorization_level_id", "created_at",
		}).AddRow(uuid.New(), roleID, suite.permissionID, suite.levelID, time.Now()))
	suite.mock.ExpectExec(`DELETE FROM role_permissions`).
		WithArgs(roleID, suite.permissionID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	suite.mock.ExpectExec(`INSERT INTO audit_entries`).
		WithArgs(pgxmock.AnyArg(), "RolePermission", models.ActionDeleted, "admin",
			pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()

	err := suite.svc.DeleteRoleTemplateEntry(suite.ctx, roleID, suite.permissionID, "admin")
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}
