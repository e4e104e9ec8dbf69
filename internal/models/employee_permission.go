package models

import (
	"time"

	"github.com/google/uuid"
)

// EmployeePermission is a grant: this employee holds this permission at
// this level. Request-time authorization consults only these rows.
type EmployeePermission struct {
	ID                   uuid.UUID `json:"id" db:"id"`
	EmployeeID           uuid.UUID `json:"employee_id" db:"employee_id"`
	PermissionID         uuid.UUID `json:"permission_id" db:"permission_id"`
	AuthorizationLevelID uuid.UUID `json:"authorization_level_id" db:"authorization_level_id"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
}

func (ep *EmployeePermission) AuditTable() string { return "EmployeePermission" }

// AuditFields excludes the row ID: an upsert that replaces a grant keeps
// the original row, so only the referenced entities are diffed.
func (ep *EmployeePermission) AuditFields() []AuditField {
	return []AuditField{
		{Name: "EmployeeID", Value: ep.EmployeeID.String()},
		{Name: "PermissionID", Value: ep.PermissionID.String()},
		{Name: "AuthorizationLevelID", Value: ep.AuthorizationLevelID.String()},
	}
}

// EmployeeGrant is the joined view of a grant used for listings.
type EmployeeGrant struct {
	PermissionID   uuid.UUID `json:"permission_id" db:"permission_id"`
	PermissionName string    `json:"permission_name" db:"permission_name"`
	LevelCode      int       `json:"level_code" db:"level_code"`
	LevelName      string    `json:"level_name" db:"level_name"`
}
