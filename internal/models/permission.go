package models

import (
	"time"

	"github.com/google/uuid"
)

// Permission is reference data naming a protected resource ("Employees",
// "TimeSheet", ...). Seeded at startup, rarely mutated.
type Permission struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Permission names protected by the authorization middleware.
const (
	PermEmployees   = "Employees"
	PermLeave       = "Leave"
	PermAttendance  = "Attendance"
	PermTimeSheet   = "TimeSheet"
	PermRecruitment = "Recruitment"
	PermPermissions = "Permissions"
	PermAudit       = "Audit"
	PermDashboard   = "Dashboard"
)

// SeedPermissions is the full set created on first boot.
var SeedPermissions = []string{
	PermEmployees,
	PermLeave,
	PermAttendance,
	PermTimeSheet,
	PermRecruitment,
	PermPermissions,
	PermAudit,
	PermDashboard,
}
