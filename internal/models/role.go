package models

import (
	"time"

	"github.com/google/uuid"
)

type Role struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

func (r *Role) AuditTable() string { return "Role" }

func (r *Role) AuditFields() []AuditField {
	return []AuditField{
		{Name: "Name", Value: r.Name},
		{Name: "Description", Value: optional(r.Description)},
	}
}
