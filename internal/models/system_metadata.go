package models

import "time"

// SystemMetadata is a singleton-per-key integer counter store. The employee
// code sequence lives here under MetaKeyEmployeeCode.
type SystemMetadata struct {
	Key       string    `json:"key" db:"key"`
	Value     int64     `json:"value" db:"value"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

const MetaKeyEmployeeCode = "employee_code_seq"
