package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"staffsync/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

func sampleEmployee() *models.Employee {
	return &models.Employee{
		ID:         uuid.New(),
		Code:       "EMP-00007",
		Email:      "ada@example.com",
		FirstName:  "Ada",
		LastName:   "Lovelace",
		RoleID:     uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Department: "Engineering",
		Position:   "Engineer",
		HireDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Active:     true,
	}
}

func TestDiffAuditablesUpdate(t *testing.T) {
	before := sampleEmployee()
	after := *before
	after.Position = "Senior Engineer"
	after.Active = false

	changes := DiffAuditables(before, &after)
	lines := strings.Split(changes, "\n")

	assert.Len(t, lines, 2)
	assert.Contains(t, lines, "Position: Engineer => Senior Engineer")
	assert.Contains(t, lines, "Active: true => false")
}

func TestDiffAuditablesNoChange(t *testing.T) {
	before := sampleEmployee()
	after := *before

	assert.Empty(t, DiffAuditables(before, &after))
}

func TestDiffAuditablesCreate(t *testing.T) {
	after := sampleEmployee()

	changes := DiffAuditables(nil, after)
	lines := strings.Split(changes, "\n")

	// Every listed field changes from absent to its value, except PhotoKey
	// which is nil on both sides.
	assert.Len(t, lines, len(after.AuditFields())-1)
	assert.Contains(t, lines, "Code: null => EMP-00007")
	assert.Contains(t, lines, "Email: null => ada@example.com")
	assert.Contains(t, lines, "HireDate: null => 2024-03-01")
	assert.Contains(t, lines, "Active: null => true")
	assert.NotContains(t, changes, "PhotoKey")
}

func TestDiffAuditablesDelete(t *testing.T) {
	before := sampleEmployee()

	changes := DiffAuditables(before, nil)

	assert.Contains(t, changes, "Code: EMP-00007 => null")
	assert.Contains(t, changes, "Active: true => null")
}

func TestDiffAuditablesPointerField(t *testing.T) {
	before := sampleEmployee()
	after := *before
	photoKey := "photos/ada.jpg"
	after.PhotoKey = &photoKey

	changes := DiffAuditables(before, &after)

	assert.Equal(t, "PhotoKey: null => photos/ada.jpg", changes)
}

type AuditRecorderTestSuite struct {
	suite.Suite
	mock     pgxmock.PgxPoolIface
	recorder AuditRecorder
	ctx      context.Context
}

func (suite *AuditRecorderTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock
	suite.recorder = NewAuditRecorder()
	suite.ctx = context.Background()
}

func (suite *AuditRecorderTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestAuditRecorderTestSuite(t *testing.T) {
	suite.Run(t, new(AuditRecorderTestSuite))
}

func (suite *AuditRecorderTestSuite) TestRecordCreateInsertsEntry() {
	employee := sampleEmployee()

	suite.mock.ExpectExec(`INSERT INTO audit_entries`).
		WithArgs(pgxmock.AnyArg(), "Employee", models.ActionCreated, "some-user", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.recorder.RecordCreate(suite.ctx, suite.mock, "some-user", employee)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *AuditRecorderTestSuite) TestRecordCreateFallsBackToAnonymous() {
	employee := sampleEmployee()

	suite.mock.ExpectExec(`INSERT INTO audit_entries`).
		WithArgs(pgxmock.AnyArg(), "Employee", models.ActionCreated, models.AnonymousUser, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.recorder.RecordCreate(suite.ctx, suite.mock, "", employee)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *AuditRecorderTestSuite) TestRecordUpdateWithoutChangesWritesNothing() {
	before := sampleEmployee()
	after := *before

	// No expectations registered: any statement would fail the test.
	err := suite.recorder.RecordUpdate(suite.ctx, suite.mock, "some-user", before, &after)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *AuditRecorderTestSuite) TestRecordDeleteInsertsEntry() {
	employee := sampleEmployee()

	suite.mock.ExpectExec(`INSERT INTO audit_entries`).
		WithArgs(pgxmock.AnyArg(), "Employee", models.ActionDeleted, "some-user", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.recorder.RecordDelete(suite.ctx, suite.mock, "some-user", employee)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}
