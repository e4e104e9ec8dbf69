package services

import (
	"context"
	"testing"
	"time"

	"staffsync/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type stubAttendanceRepo struct {
	open    *models.Attendance
	created *models.Attendance
	clocked *time.Time
}

func (s *stubAttendanceRepo) Create(ctx context.Context, attendance *models.Attendance) error {
	s.created = attendance
	return nil
}

func (s *stubAttendanceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Attendance, error) {
	return nil, pgx.ErrNoRows
}

func (s *stubAttendanceRepo) GetOpenForDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*models.Attendance, error) {
	if s.open == nil {
		return nil, pgx.ErrNoRows
	}
	return s.open, nil
}

func (s *stubAttendanceRepo) SetClockOut(ctx context.Context, id uuid.UUID, clockOut time.Time) error {
	s.clocked = &clockOut
	return nil
}

func (s *stubAttendanceRepo) ListByEmployee(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*models.Attendance, error) {
	return nil, nil
}

func (s *stubAttendanceRepo) CountPresentOnDate(ctx context.Context, date time.Time) (int, error) {
	return 0, nil
}

type AttendanceServiceTestSuite struct {
	suite.Suite
	repo       *stubAttendanceRepo
	svc        *attendanceService
	employeeID uuid.UUID
	now        time.Time
	ctx        context.Context
}

func (suite *AttendanceServiceTestSuite) SetupTest() {
	suite.repo = &stubAttendanceRepo{}
	suite.now = time.Date(2025, 4, 7, 9, 30, 0, 0, time.UTC)
	suite.svc = &attendanceService{
		attendanceRepo: suite.repo,
		now:            func() time.Time { return suite.now },
	}
	suite.employeeID = uuid.New()
	suite.ctx = context.Background()
}

func TestAttendanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AttendanceServiceTestSuite))
}

func (suite *AttendanceServiceTestSuite) TestClockInCreatesRecordForToday() {
	record, err := suite.svc.ClockIn(suite.ctx, suite.employeeID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC), record.Date)
	assert.Equal(suite.T(), suite.now, record.ClockIn)
	assert.Nil(suite.T(), record.ClockOut)
	assert.NotNil(suite.T(), suite.repo.created)
}

func (suite *AttendanceServiceTestSuite) TestClockInTwiceSameDayFails() {
	suite.repo.open = &models.Attendance{ID: uuid.New(), EmployeeID: suite.employeeID}

	_, err := suite.svc.ClockIn(suite.ctx, suite.employeeID)
	assert.ErrorIs(suite.T(), err, ErrAlreadyClockedIn)
	assert.Nil(suite.T(), suite.repo.created)
}

func (suite *AttendanceServiceTestSuite) TestClockOutClosesOpenRecord() {
	suite.repo.open = &models.Attendance{
		ID:         uuid.New(),
		EmployeeID: suite.employeeID,
		ClockIn:    suite.now.Add(-8 * time.Hour),
	}

	record, err := suite.svc.ClockOut(suite.ctx, suite.employeeID)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), record.ClockOut)
	assert.Equal(suite.T(), suite.now, *record.ClockOut)
	assert.NotNil(suite.T(), suite.repo.clocked)
}

func (suite *AttendanceServiceTestSuite) TestClockOutWithoutOpenRecordFails() {
	_, err := suite.svc.ClockOut(suite.ctx, suite.employeeID)
	assert.ErrorIs(suite.T(), err, ErrNotClockedIn)
}
