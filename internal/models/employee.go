package models

import (
	"time"

	"github.com/google/uuid"
)

// Employee is the central HR record. Code is the generated human-readable
// identifier (EMP-00042) and never changes after creation.
type Employee struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Code         string     `json:"code" db:"code"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"` // never serialized
	FirstName    string     `json:"first_name" db:"first_name"`
	LastName     string     `json:"last_name" db:"last_name"`
	RoleID       uuid.UUID  `json:"role_id" db:"role_id"`
	Department   string     `json:"department" db:"department"`
	Position     string     `json:"position" db:"position"`
	HireDate     time.Time  `json:"hire_date" db:"hire_date"`
	Active       bool       `json:"active" db:"active"`
	PhotoKey     *string    `json:"photo_key,omitempty" db:"photo_key"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

func (e *Employee) AuditTable() string { return "Employee" }

// AuditFields lists the comparable scalar fields. PasswordHash and the
// updated_at stamp are intentionally excluded from diffs.
func (e *Employee) AuditFields() []AuditField {
	return []AuditField{
		{Name: "Code", Value: e.Code},
		{Name: "Email", Value: e.Email},
		{Name: "FirstName", Value: e.FirstName},
		{Name: "LastName", Value: e.LastName},
		{Name: "RoleID", Value: e.RoleID.String()},
		{Name: "Department", Value: e.Department},
		{Name: "Position", Value: e.Position},
		{Name: "HireDate", Value: e.HireDate.Format("2006-01-02")},
		{Name: "Active", Value: e.Active},
		{Name: "PhotoKey", Value: optional(e.PhotoKey)},
	}
}
