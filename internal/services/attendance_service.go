package services

import (
	"context"
	"errors"
	"time"

	"staffsync/internal/models"
	"staffsync/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrAlreadyClockedIn = errors.New("already clocked in today")
	ErrNotClockedIn     = errors.New("no open attendance record for today")
)

type AttendanceService interface {
	ClockIn(ctx context.Context, employeeID uuid.UUID) (*models.Attendance, error)
	ClockOut(ctx context.Context, employeeID uuid.UUID) (*models.Attendance, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*models.Attendance, error)
}

type attendanceService struct {
	attendanceRepo repositories.AttendanceRepository
	now            func() time.Time
}

func NewAttendanceService(attendanceRepo repositories.AttendanceRepository) AttendanceService {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		now:            time.Now,
	}
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *attendanceService) ClockIn(ctx context.Context, employeeID uuid.UUID) (*models.Attendance, error) {
	now := s.now().UTC()
	today := dateOf(now)

	_, err := s.attendanceRepo.GetOpenForDate(ctx, employeeID, today)
	if err == nil {
		return nil, ErrAlreadyClockedIn
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	record := &models.Attendance{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Date:       today,
		ClockIn:    now,
	}
	if err := s.attendanceRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *attendanceService) ClockOut(ctx context.Context, employeeID uuid.UUID) (*models.Attendance, error) {
	now := s.now().UTC()
	today := dateOf(now)

	record, err := s.attendanceRepo.GetOpenForDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotClockedIn
		}
		return nil, err
	}

	if err := s.attendanceRepo.SetClockOut(ctx, record.ID, now); err != nil {
		return nil, err
	}
	record.ClockOut = &now
	return record, nil
}

func (s *attendanceService) ListByEmployee(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*models.Attendance, error) {
	return s.attendanceRepo.ListByEmployee(ctx, employeeID, limit, offset)
}
