package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"staffsync/internal/models"
	"staffsync/internal/repositories"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// noopCache satisfies the cache interface without a Redis instance.
type noopCache struct{}

func (noopCache) GetEmployee(ctx context.Context, employeeID uuid.UUID) (*models.Employee, error) {
	return nil, errors.New("cache miss")
}
func (noopCache) SetEmployee(ctx context.Context, employee *models.Employee, ttl time.Duration) error {
	return nil
}
func (noopCache) DeleteEmployee(ctx context.Context, employeeID uuid.UUID) error { return nil }
func (noopCache) GetDashboard(ctx context.Context) (*models.DashboardMetrics, error) {
	return nil, errors.New("cache miss")
}
func (noopCache) SetDashboard(ctx context.Context, metrics *models.DashboardMetrics, ttl time.Duration) error {
	return nil
}
func (noopCache) InvalidateDashboard(ctx context.Context) error { return nil }
func (noopCache) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return nil
}
func (noopCache) GetString(ctx context.Context, key string) (string, error) {
	return "", errors.New("cache miss")
}
func (noopCache) Delete(ctx context.Context, key string) error { return nil }
func (noopCache) Ping(ctx context.Context) error               { return nil }

type EmployeeServiceTestSuite struct {
	suite.Suite
	mock   pgxmock.PgxPoolIface
	svc    EmployeeService
	roleID uuid.UUID
	ctx    context.Context
}

func (suite *EmployeeServiceTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	repo := repositories.NewEmployeeRepository(mock)
	suite.svc = NewEmployeeService(mock, repo, NewEmployeeCodeService("EMP"), NewAuditRecorder(), noopCache{})
	suite.roleID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *EmployeeServiceTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestEmployeeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EmployeeServiceTestSuite))
}

func (suite *EmployeeServiceTestSuite) createInput() CreateEmployeeInput {
	return CreateEmployeeInput{
		Email:      "grace@example.com",
		Password:   "correct-horse",
		FirstName:  "Grace",
		LastName:   "Hopper",
		RoleID:     suite.roleID,
		Department: "Engineering",
		Position:   "Rear Admiral",
		HireDate:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *EmployeeServiceTestSuite) expectCreateUpTo(counterValue int64) {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`INSERT INTO system_metadata`).
		WithArgs("employee_code_seq").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow(counterValue))
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM employees WHERE email`).
		WithArgs("grace@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	suite.mock.ExpectExec(`INSERT INTO employees`).
		WithArgs(pgxmock.AnyArg(), fmt.Sprintf("EMP-%05d", counterValue), "grace@example.com",
			pgxmock.AnyArg(), "Grace", "Hopper", suite.roleID, "Engineering", "Rear Admiral",
			time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), true, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`INSERT INTO employee_permissions`).
		WithArgs(pgxmock.AnyArg(), suite.roleID).
		WillReturnResult(pgxmock.NewResult("INSERT", 3))
}

func (suite *EmployeeServiceTestSuite) TestCreateCommitsEmployeeTemplateAndAudit() {
	suite.expectCreateUpTo(7)
	suite.mock.ExpectExec(`INSERT INTO audit_entries`).
		WithArgs(pgxmock.AnyArg(), "Employee", models.ActionCreated, "some-admin", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()

	employee, err := suite.svc.Create(suite.ctx, suite.createInput(), "some-admin")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "EMP-00007", employee.Code)
	assert.True(suite.T(), employee.Active)
	assert.NotEqual(suite.T(), "correct-horse", employee.PasswordHash)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *EmployeeServiceTestSuite) TestCreateRollsBackWhenAuditFails() {
	suite.expectCreateUpTo(8)
	suite.mock.ExpectExec(`INSERT INTO audit_entries`).
		WithArgs(pgxmock.AnyArg(), "Employee", models.ActionCreated, "some-admin", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("disk full"))
	suite.mock.ExpectRollback()

	_, err := suite.svc.Create(suite.ctx, suite.createInput(), "some-admin")
	assert.Error(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *EmployeeServiceTestSuite) TestCreateRollsBackWhenCounterFails() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`INSERT INTO system_metadata`).
		WithArgs("employee_code_seq").
		WillReturnError(errors.New("connection refused"))
	suite.mock.ExpectRollback()

	_, err := suite.svc.Create(suite.ctx, suite.createInput(), "some-admin")
	assert.Error(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *EmployeeServiceTestSuite) TestCreateRejectsDuplicateEmail() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`INSERT INTO system_metadata`).
		WithArgs("employee_code_seq").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow(int64(9)))
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM employees WHERE email`).
		WithArgs("grace@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	suite.mock.ExpectRollback()

	_, err := suite.svc.Create(suite.ctx, suite.createInput(), "some-admin")
	assert.ErrorIs(suite.T(), err, repositories.ErrEmailTaken)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *EmployeeServiceTestSuite) TestUpdateWithoutChangesWritesNoAudit() {
	id := uuid.New()
	hireDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT .+ FROM employees WHERE id`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "code", "email", "password_hash", "first_name", "last_name",
			"role_id", "department", "position", "hire_date", "active", "photo_key",
			"created_at", "updated_at",
		}).AddRow(id, "EMP-00009", "grace@example.com", "hash", "Grace", "Hopper",
			suite.roleID, "Engineering", "Rear Admiral", hireDate, true, (*string)(nil),
			time.Now(), time.Now()))
	suite.mock.ExpectExec(`UPDATE employees`).
		WithArgs("grace@example.com", "Grace", "Hopper", suite.roleID, "Engineering",
			"Rear Admiral", hireDate, true, pgxmock.AnyArg(), id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	// No audit insert expected: the diff is empty.
	suite.mock.ExpectCommit()

	employee, err := suite.svc.Update(suite.ctx, id, UpdateEmployeeInput{
		Email:      "grace@example.com",
		FirstName:  "Grace",
		LastName:   "Hopper",
		RoleID:     suite.roleID,
		Department: "Engineering",
		Position:   "Rear Admiral",
		HireDate:   hireDate,
		Active:     true,
	}, "some-admin")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "EMP-00009", employee.Code)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}
