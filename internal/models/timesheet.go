package models

import (
	"time"

	"github.com/google/uuid"
)

// BreakType is reference data for timesheet breaks (Lunch, Rest, ...).
type BreakType struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Paid      bool      `json:"paid" db:"paid"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Timesheet is one worked day: start/end plus a typed break.
type Timesheet struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	EmployeeID   uuid.UUID  `json:"employee_id" db:"employee_id"`
	Date         time.Time  `json:"date" db:"date"`
	StartTime    time.Time  `json:"start_time" db:"start_time"`
	EndTime      time.Time  `json:"end_time" db:"end_time"`
	BreakTypeID  *uuid.UUID `json:"break_type_id,omitempty" db:"break_type_id"`
	BreakMinutes int        `json:"break_minutes" db:"break_minutes"`
	Notes        *string    `json:"notes,omitempty" db:"notes"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

func (t *Timesheet) AuditTable() string { return "Timesheet" }

func (t *Timesheet) AuditFields() []AuditField {
	var breakType any
	if t.BreakTypeID != nil {
		breakType = t.BreakTypeID.String()
	}
	return []AuditField{
		{Name: "EmployeeID", Value: t.EmployeeID.String()},
		{Name: "Date", Value: t.Date.Format("2006-01-02")},
		{Name: "StartTime", Value: t.StartTime.Format("15:04")},
		{Name: "EndTime", Value: t.EndTime.Format("15:04")},
		{Name: "BreakTypeID", Value: breakType},
		{Name: "BreakMinutes", Value: t.BreakMinutes},
		{Name: "Notes", Value: optional(t.Notes)},
	}
}

// WorkedMinutes is the day's net working time.
func (t *Timesheet) WorkedMinutes() int {
	worked := int(t.EndTime.Sub(t.StartTime).Minutes()) - t.BreakMinutes
	if worked < 0 {
		return 0
	}
	return worked
}
