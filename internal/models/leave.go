package models

import (
	"time"

	"github.com/google/uuid"
)

// LeaveType is reference data (Annual, Sick, Unpaid, ...). AllowanceDays is
// the yearly entitlement credited by the accrual job.
type LeaveType struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	AllowanceDays int       `json:"allowance_days" db:"allowance_days"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// Leave request statuses.
const (
	LeaveStatusPending  = "pending"
	LeaveStatusApproved = "approved"
	LeaveStatusRejected = "rejected"
)

type LeaveRequest struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	EmployeeID  uuid.UUID  `json:"employee_id" db:"employee_id"`
	LeaveTypeID uuid.UUID  `json:"leave_type_id" db:"leave_type_id"`
	StartDate   time.Time  `json:"start_date" db:"start_date"`
	EndDate     time.Time  `json:"end_date" db:"end_date"`
	Status      string     `json:"status" db:"status"`
	Reason      *string    `json:"reason,omitempty" db:"reason"`
	ReviewedBy  *uuid.UUID `json:"reviewed_by,omitempty" db:"reviewed_by"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

func (l *LeaveRequest) AuditTable() string { return "LeaveRequest" }

func (l *LeaveRequest) AuditFields() []AuditField {
	var reviewedBy any
	if l.ReviewedBy != nil {
		reviewedBy = l.ReviewedBy.String()
	}
	return []AuditField{
		{Name: "EmployeeID", Value: l.EmployeeID.String()},
		{Name: "LeaveTypeID", Value: l.LeaveTypeID.String()},
		{Name: "StartDate", Value: l.StartDate.Format("2006-01-02")},
		{Name: "EndDate", Value: l.EndDate.Format("2006-01-02")},
		{Name: "Status", Value: l.Status},
		{Name: "Reason", Value: optional(l.Reason)},
		{Name: "ReviewedBy", Value: reviewedBy},
	}
}

// LeaveBalance tracks remaining days per employee and type, credited by the
// monthly accrual job and debited on approval.
type LeaveBalance struct {
	ID            uuid.UUID `json:"id" db:"id"`
	EmployeeID    uuid.UUID `json:"employee_id" db:"employee_id"`
	LeaveTypeID   uuid.UUID `json:"leave_type_id" db:"leave_type_id"`
	RemainingDays float64   `json:"remaining_days" db:"remaining_days"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
