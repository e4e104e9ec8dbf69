package models

import (
	"time"

	"github.com/google/uuid"
)

// RolePermission is the default access template for a role. It is copied
// into employee_permissions when an account is created with that role and
// is never re-applied retroactively.
type RolePermission struct {
	ID                   uuid.UUID `json:"id" db:"id"`
	RoleID               uuid.UUID `json:"role_id" db:"role_id"`
	PermissionID         uuid.UUID `json:"permission_id" db:"permission_id"`
	AuthorizationLevelID uuid.UUID `json:"authorization_level_id" db:"authorization_level_id"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
}

func (rp *RolePermission) AuditTable() string { return "RolePermission" }

func (rp *RolePermission) AuditFields() []AuditField {
	return []AuditField{
		{Name: "RoleID", Value: rp.RoleID.String()},
		{Name: "PermissionID", Value: rp.PermissionID.String()},
		{Name: "AuthorizationLevelID", Value: rp.AuthorizationLevelID.String()},
	}
}
