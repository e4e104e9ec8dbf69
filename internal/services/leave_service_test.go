package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"staffsync/internal/models"
	"staffsync/internal/repositories"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

func TestLeaveDaysInclusive(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 2, d, 0, 0, 0, 0, time.UTC) }

	assert.Equal(t, 1, leaveDays(day(3), day(3)))
	assert.Equal(t, 2, leaveDays(day(3), day(4)))
	assert.Equal(t, 7, leaveDays(day(3), day(9)))
}

type LeaveServiceTestSuite struct {
	suite.Suite
	mock       pgxmock.PgxPoolIface
	svc        LeaveService
	employeeID uuid.UUID
	typeID     uuid.UUID
	reviewerID uuid.UUID
	ctx        context.Context
}

func (suite *LeaveServiceTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.svc = NewLeaveService(mock,
		repositories.NewLeaveRequestRepository(mock),
		repositories.NewLeaveBalanceRepository(mock),
		repositories.NewLeaveTypeRepository(mock),
		NewAuditRecorder())
	suite.employeeID = uuid.New()
	suite.typeID = uuid.New()
	suite.reviewerID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *LeaveServiceTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestLeaveServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LeaveServiceTestSuite))
}

func (suite *LeaveServiceTestSuite) TestSubmitRejectsInvertedDates() {
	_, err := suite.svc.Submit(suite.ctx, SubmitLeaveInput{
		EmployeeID:  suite.employeeID,
		LeaveTypeID: suite.typeID,
		StartDate:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
	}, "someone")
	assert.ErrorIs(suite.T(), err, ErrInvalidLeaveDates)
}

func (suite *LeaveServiceTestSuite) expectRequestLookup(requestID uuid.UUID, status string, startDate, endDate time.Time) {
	suite.mock.ExpectQuery(`SELECT .+ FROM leave_requests WHERE id`).
		WithArgs(requestID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "employee_id", "leave_type_id", "start_date", "end_date",
			"status", "reason", "reviewed_by", "created_at", "updated_at",
		}).AddRow(requestID, suite.employeeID, suite.typeID, startDate, endDate,
			status, (*string)(nil), (*uuid.UUID)(nil), time.Now(), time.Now()))
}

func (suite *LeaveServiceTestSuite) TestReviewRejectsNonPendingRequest() {
	requestID := uuid.New()
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	suite.mock.ExpectBegin()
	suite.expectRequestLookup(requestID, models.LeaveStatusApproved, start, start)
	suite.mock.ExpectRollback()

	_, err := suite.svc.Review(suite.ctx, requestID, suite.reviewerID, true, "reviewer")
	assert.ErrorIs(suite.T(), err, ErrLeaveNotPending)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *LeaveServiceTestSuite) TestReviewApproveDebitsBalance() {
	requestID := uuid.New()
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC) // three days inclusive

	suite.mock.ExpectBegin()
	suite.expectRequestLookup(requestID, models.LeaveStatusPending, start, end)
	suite.mock.ExpectQuery(`SELECT .+ FROM leave_balances`).
		WithArgs(suite.employeeID, suite.typeID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "employee_id", "leave_type_id", "remaining_days", "updated_at",
		}).AddRow(uuid.New(), suite.employeeID, suite.typeID, 10.0, time.Now()))
	suite.mock.ExpectExec(`INSERT INTO leave_balances`).
		WithArgs(suite.employeeID, suite.typeID, -3.0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`UPDATE leave_requests`).
		WithArgs(suite.typeID, start, end, models.LeaveStatusApproved,
			pgxmock.AnyArg(), pgxmock.AnyArg(), requestID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectExec(`INSERT INTO audit_entries`).
		WithArgs(pgxmock.AnyArg(), "LeaveRequest", models.ActionModified, "reviewer",
			pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()

	request, err := suite.svc.Review(suite.ctx, requestID, suite.reviewerID, true, "reviewer")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.LeaveStatusApproved, request.Status)
	assert.Equal(suite.T(), suite.reviewerID, *request.ReviewedBy)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *LeaveServiceTestSuite) TestReviewApproveFailsOnInsufficientBalance() {
	requestID := uuid.New()
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC) // eleven days inclusive

	suite.mock.ExpectBegin()
	suite.expectRequestLookup(requestID, models.LeaveStatusPending, start, end)
	suite.mock.ExpectQuery(`SELECT .+ FROM leave_balances`).
		WithArgs(suite.employeeID, suite.typeID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "employee_id", "leave_type_id", "remaining_days", "updated_at",
		}).AddRow(uuid.New(), suite.employeeID, suite.typeID, 2.5, time.Now()))
	suite.mock.ExpectRollback()

	_, err := suite.svc.Review(suite.ctx, requestID, suite.reviewerID, true, "reviewer")
	assert.ErrorIs(suite.T(), err, ErrInsufficientBalance)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *LeaveServiceTestSuite) TestReviewApproveWithoutBalanceRowFails() {
	requestID := uuid.New()
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC) // five days inclusive

	suite.mock.ExpectBegin()
	suite.expectRequestLookup(requestID, models.LeaveStatusPending, start, end)
	// No accrual has run yet for this employee, so no balance row exists.
	suite.mock.ExpectQuery(`SELECT .+ FROM leave_balances`).
		WithArgs(suite.employeeID, suite.typeID).
		WillReturnError(pgx.ErrNoRows)
	suite.mock.ExpectRollback()

	_, err := suite.svc.Review(suite.ctx, requestID, suite.reviewerID, true, "reviewer")
	assert.ErrorIs(suite.T(), err, ErrInsufficientBalance)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *LeaveServiceTestSuite) TestReviewApproveBalanceLookupFailurePropagates() {
	requestID := uuid.New()
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	suite.mock.ExpectBegin()
	suite.expectRequestLookup(requestID, models.LeaveStatusPending, start, start)
	suite.mock.ExpectQuery(`SELECT .+ FROM leave_balances`).
		WithArgs(suite.employeeID, suite.typeID).
		WillReturnError(errors.New("connection refused"))
	suite.mock.ExpectRollback()

	_, err := suite.svc.Review(suite.ctx, requestID, suite.reviewerID, true, "reviewer")
	assert.Error(suite.T(), err)
	assert.NotErrorIs(suite.T(), err, ErrInsufficientBalance)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *LeaveServiceTestSuite) TestReviewRejectLeavesBalanceUntouched() {
	requestID := uuid.New()
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	suite.mock.ExpectBegin()
	suite.expectRequestLookup(requestID, models.LeaveStatusPending, start, start)
	suite.mock.ExpectExec(`UPDATE leave_requests`).
		WithArgs(suite.typeID, start, start, models.LeaveStatusRejected,
			pgxmock.AnyArg(), pgxmock.AnyArg(), requestID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectExec(`INSERT INTO audit_entries`).
		WithArgs(pgxmock.AnyArg(), "LeaveRequest", models.ActionModified, "reviewer",
			pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()

	request, err := suite.svc.Review(suite.ctx, requestID, suite.reviewerID, false, "reviewer")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.LeaveStatusRejected, request.Status)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}
