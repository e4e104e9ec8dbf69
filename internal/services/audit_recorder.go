package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"staffsync/internal/models"
	"staffsync/internal/repositories"

	"github.com/google/uuid"
)

// AuditRecorder writes field-level change records. Every method takes the
// DBTX of the caller's unit of work so the audit row commits atomically with
// the change it describes; a recording failure aborts the whole transaction.
type AuditRecorder interface {
	RecordCreate(ctx context.Context, db repositories.DBTX, userID string, after models.Auditable) error
	RecordUpdate(ctx context.Context, db repositories.DBTX, userID string, before, after models.Auditable) error
	RecordDelete(ctx context.Context, db repositories.DBTX, userID string, before models.Auditable) error
}

type auditRecorder struct{}

func NewAuditRecorder() AuditRecorder {
	return &auditRecorder{}
}

func (r *auditRecorder) RecordCreate(ctx context.Context, db repositories.DBTX, userID string, after models.Auditable) error {
	return r.record(ctx, db, userID, models.ActionCreated, after.AuditTable(), DiffAuditables(nil, after))
}

func (r *auditRecorder) RecordUpdate(ctx context.Context, db repositories.DBTX, userID string, before, after models.Auditable) error {
	return r.record(ctx, db, userID, models.ActionModified, after.AuditTable(), DiffAuditables(before, after))
}

func (r *auditRecorder) RecordDelete(ctx context.Context, db repositories.DBTX, userID string, before models.Auditable) error {
	return r.record(ctx, db, userID, models.ActionDeleted, before.AuditTable(), DiffAuditables(before, nil))
}

// record persists one entry, or nothing when no field changed.
func (r *auditRecorder) record(ctx context.Context, db repositories.DBTX, userID, action, tableName, changes string) error {
	if changes == "" {
		return nil
	}
	if userID == "" {
		userID = models.AnonymousUser
	}
	entry := &models.AuditEntry{
		ID:        uuid.New(),
		TableName: tableName,
		Action:    action,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Changes:   changes,
	}
	return repositories.NewAuditEntryRepository(db).Create(ctx, entry)
}

// DiffAuditables renders one "Field: old => new" line per changed field,
// newline-joined. A nil side stands for an absent entity (create/delete);
// absent values render as "null". Fields equal on both sides produce no
// line, so an update that changed nothing yields the empty string.
func DiffAuditables(before, after models.Auditable) string {
	var beforeFields, afterFields []models.AuditField
	if before != nil {
		beforeFields = before.AuditFields()
	}
	if after != nil {
		afterFields = after.AuditFields()
	}

	n := len(beforeFields)
	if len(afterFields) > n {
		n = len(afterFields)
	}

	var lines []string
	for i := 0; i < n; i++ {
		var name string
		var oldValue, newValue any
		if i < len(beforeFields) {
			name = beforeFields[i].Name
			oldValue = beforeFields[i].Value
		}
		if i < len(afterFields) {
			name = afterFields[i].Name
			newValue = afterFields[i].Value
		}
		if !fieldChanged(oldValue, newValue) {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s => %s", name, formatAuditValue(oldValue), formatAuditValue(newValue)))
	}
	return strings.Join(lines, "\n")
}

// fieldChanged follows the rule: values differ if exactly one side is
// absent, or both are present and unequal.
func fieldChanged(oldValue, newValue any) bool {
	if oldValue == nil && newValue == nil {
		return false
	}
	if oldValue == nil || newValue == nil {
		return true
	}
	return oldValue != newValue
}

func formatAuditValue(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprint(v)
}
