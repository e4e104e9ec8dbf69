package models

import (
	"time"

	"github.com/google/uuid"
)

// Attendance is one employee-day of presence. ClockOut stays nil until the
// employee clocks out.
type Attendance struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	EmployeeID uuid.UUID  `json:"employee_id" db:"employee_id"`
	Date       time.Time  `json:"date" db:"date"`
	ClockIn    time.Time  `json:"clock_in" db:"clock_in"`
	ClockOut   *time.Time `json:"clock_out,omitempty" db:"clock_out"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}
