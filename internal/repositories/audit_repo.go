package repositories

import (
	"context"
	"fmt"

	"staffsync/internal/models"

	"github.com/google/uuid"
)

// AuditEntryRepository is append-and-read only. Entries are never updated
// or deleted by the application.
type AuditEntryRepository interface {
	Create(ctx context.Context, entry *models.AuditEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.AuditEntry, error)
	List(ctx context.Context, filters *models.AuditEntryFilters) ([]*models.AuditEntry, error)
	GetTableNames(ctx context.Context) ([]string, error)
}

type auditEntryRepo struct {
	db DBTX
}

func NewAuditEntryRepository(db DBTX) AuditEntryRepository {
	return &auditEntryRepo{db: db}
}

func (r *auditEntryRepo) Create(ctx context.Context, entry *models.AuditEntry) error {
	query := `
		INSERT INTO audit_entries (id, table_name, action, user_id, timestamp, changes)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, entry.ID, entry.TableName, entry.Action, entry.UserID, entry.Timestamp, entry.Changes)
	return err
}

func (r *auditEntryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.AuditEntry, error) {
	entry := &models.AuditEntry{}
	query := `
		SELECT id, table_name, action, user_id, timestamp, changes
		FROM audit_entries
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&entry.ID, &entry.TableName, &entry.Action, &entry.UserID, &entry.Timestamp, &entry.Changes)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *auditEntryRepo) List(ctx context.Context, filters *models.AuditEntryFilters) ([]*models.AuditEntry, error) {
	query := `
		SELECT id, table_name, action, user_id, timestamp, changes
		FROM audit_entries
		WHERE 1=1
	`
	args := []any{}
	argNum := 1

	if filters.TableName != nil {
		query += fmt.Sprintf(" AND table_name = $%d", argNum)
		args = append(args, *filters.TableName)
		argNum++
	}
	if filters.Action != nil {
		query += fmt.Sprintf(" AND action = $%d", argNum)
		args = append(args, *filters.Action)
		argNum++
	}
	if filters.UserID != nil {
		query += fmt.Sprintf(" AND user_id = $%d", argNum)
		args = append(args, *filters.UserID)
		argNum++
	}
	if filters.StartDate != nil {
		query += fmt.Sprintf(" AND timestamp >= $%d", argNum)
		args = append(args, *filters.StartDate)
		argNum++
	}
	if filters.EndDate != nil {
		query += fmt.Sprintf(" AND timestamp <= $%d", argNum)
		args = append(args, *filters.EndDate)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY timestamp DESC LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, filters.Limit, filters.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.AuditEntry
	for rows.Next() {
		entry := &models.AuditEntry{}
		if err := rows.Scan(&entry.ID, &entry.TableName, &entry.Action, &entry.UserID, &entry.Timestamp, &entry.Changes); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *auditEntryRepo) GetTableNames(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT table_name FROM audit_entries ORDER BY table_name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
