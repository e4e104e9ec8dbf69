package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditEntry is one append-only record of a create/update/delete. Changes is
// a newline-joined list of "Field: old => new" lines, one per changed field.
// Rows are never updated or deleted by the application.
type AuditEntry struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TableName string    `json:"table_name" db:"table_name"`
	Action    string    `json:"action" db:"action"`
	UserID    string    `json:"user_id" db:"user_id"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	Changes   string    `json:"changes" db:"changes"`
}

// Audit actions.
const (
	ActionCreated  = "Created"
	ActionModified = "Modified"
	ActionDeleted  = "Deleted"
)

// AnonymousUser is recorded when no authenticated identity is present.
const AnonymousUser = "Anonymous"

// AuditField is one comparable scalar field of an audited entity. A nil
// Value renders as "null". Fields that should not be diffed (password
// hashes, updated_at bookkeeping) are simply not listed.
type AuditField struct {
	Name  string
	Value any
}

// Auditable is implemented by every model the audit recorder can diff.
// AuditFields must return the same fields in the same order for every
// instance of the type.
type Auditable interface {
	AuditTable() string
	AuditFields() []AuditField
}

// AuditEntryFilters narrows audit entry listings.
type AuditEntryFilters struct {
	TableName *string    `json:"table_name"`
	Action    *string    `json:"action"`
	UserID    *string    `json:"user_id"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
}

// optional unwraps a pointer field for audit comparison; nil stays nil so it
// renders as "null".
func optional[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
