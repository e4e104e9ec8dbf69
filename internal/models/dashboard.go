package models

import "time"

// DashboardMetrics is the aggregated HR overview served to the dashboard,
// recomputed on demand and cached with a short TTL.
type DashboardMetrics struct {
	Headcount             int            `json:"headcount"`
	HeadcountByDepartment map[string]int `json:"headcount_by_department"`
	PendingLeaveRequests  int            `json:"pending_leave_requests"`
	LeaveDaysThisMonth    int            `json:"leave_days_this_month"`
	PresentToday          int            `json:"present_today"`
	AttendanceRate        float64        `json:"attendance_rate"`
	RecruitmentPipeline   map[string]int `json:"recruitment_pipeline"`
	GeneratedAt           time.Time      `json:"generated_at"`
}
