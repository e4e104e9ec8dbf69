package services

import (
	"context"
	"testing"
	"time"

	"staffsync/internal/models"
	"staffsync/internal/repositories"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type TimesheetServiceTestSuite struct {
	suite.Suite
	mock       pgxmock.PgxPoolIface
	svc        TimesheetService
	employeeID uuid.UUID
	ctx        context.Context
}

func (suite *TimesheetServiceTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.svc = NewTimesheetService(mock,
		repositories.NewTimesheetRepository(mock),
		repositories.NewBreakTypeRepository(mock),
		NewAuditRecorder())
	suite.employeeID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *TimesheetServiceTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestTimesheetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TimesheetServiceTestSuite))
}

func (suite *TimesheetServiceTestSuite) input() TimesheetInput {
	date := time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)
	return TimesheetInput{
		EmployeeID:   suite.employeeID,
		Date:         date,
		StartTime:    date.Add(9 * time.Hour),
		EndTime:      date.Add(17 * time.Hour),
		BreakMinutes: 30,
	}
}

func (suite *TimesheetServiceTestSuite) TestCreateRejectsInvertedTimes() {
	input := suite.input()
	input.EndTime = input.StartTime.Add(-time.Hour)

	_, err := suite.svc.Create(suite.ctx, input, "someone")
	assert.ErrorIs(suite.T(), err, ErrInvalidTimesheetTimes)
}

func (suite *TimesheetServiceTestSuite) TestCreateRejectsNegativeBreak() {
	input := suite.input()
	input.BreakMinutes = -5

	_, err := suite.svc.Create(suite.ctx, input, "someone")
	assert.Error(suite.T(), err)
}

func (suite *TimesheetServiceTestSuite) TestCreateCommitsEntryWithAudit() {
	input := suite.input()

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`INSERT INTO timesheets`).
		WithArgs(pgxmock.AnyArg(), suite.employeeID, input.Date, input.StartTime, input.EndTime,
			pgxmock.AnyArg(), 30, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`INSERT INTO audit_entries`).
		WithArgs(pgxmock.AnyArg(), "Timesheet", models.ActionCreated, "someone",
			pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()

	timesheet, err := suite.svc.Create(suite.ctx, input, "someone")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 450, timesheet.WorkedMinutes())
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}
