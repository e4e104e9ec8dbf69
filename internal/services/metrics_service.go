package services

import (
	"context"
	"time"

	"staffsync/internal/caching"
	"staffsync/internal/models"
	"staffsync/internal/repositories"
)

// MetricsService aggregates the HR dashboard numbers. Results are cached
// with a short TTL; a cold cache recomputes everything from the store.
type MetricsService interface {
	Dashboard(ctx context.Context) (*models.DashboardMetrics, error)
}

type metricsService struct {
	employeeRepo   repositories.EmployeeRepository
	leaveRepo      repositories.LeaveRequestRepository
	attendanceRepo repositories.AttendanceRepository
	candidateRepo  repositories.CandidateRepository
	cacheSvc       caching.CacheService
	cacheTTL       time.Duration
}

func NewMetricsService(employeeRepo repositories.EmployeeRepository, leaveRepo repositories.LeaveRequestRepository,
	attendanceRepo repositories.AttendanceRepository, candidateRepo repositories.CandidateRepository,
	cacheSvc caching.CacheService, cacheTTL time.Duration) MetricsService {
	return &metricsService{
		employeeRepo:   employeeRepo,
		leaveRepo:      leaveRepo,
		attendanceRepo: attendanceRepo,
		candidateRepo:  candidateRepo,
		cacheSvc:       cacheSvc,
		cacheTTL:       cacheTTL,
	}
}

func (s *metricsService) Dashboard(ctx context.Context) (*models.DashboardMetrics, error) {
	if cached, err := s.cacheSvc.GetDashboard(ctx); err == nil && cached != nil {
		return cached, nil
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	byDepartment, err := s.employeeRepo.CountByDepartment(ctx)
	if err != nil {
		return nil, err
	}
	headcount := 0
	for _, count := range byDepartment {
		headcount += count
	}

	pending, err := s.leaveRepo.CountByStatus(ctx, models.LeaveStatusPending)
	if err != nil {
		return nil, err
	}
	leaveDaysThisMonth, err := s.leaveRepo.CountApprovedDaysInRange(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	presentToday, err := s.attendanceRepo.CountPresentOnDate(ctx, today)
	if err != nil {
		return nil, err
	}
	pipeline, err := s.candidateRepo.CountByStage(ctx)
	if err != nil {
		return nil, err
	}

	attendanceRate := 0.0
	if headcount > 0 {
		attendanceRate = float64(presentToday) / float64(headcount)
	}

	metrics := &models.DashboardMetrics{
		Headcount:             headcount,
		HeadcountByDepartment: byDepartment,
		PendingLeaveRequests:  pending,
		LeaveDaysThisMonth:    leaveDaysThisMonth,
		PresentToday:          presentToday,
		AttendanceRate:        attendanceRate,
		RecruitmentPipeline:   pipeline,
		GeneratedAt:           now,
	}

	_ = s.cacheSvc.SetDashboard(ctx, metrics, s.cacheTTL)
	return metrics, nil
}
