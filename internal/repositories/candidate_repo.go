package repositories

import (
	"context"

	"staffsync/internal/models"

	"github.com/google/uuid"
)

type CandidateRepository interface {
	Create(ctx context.Context, candidate *models.Candidate) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Candidate, error)
	Update(ctx context.Context, candidate *models.Candidate) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, stage *string, limit, offset int) ([]*models.Candidate, error)
	CountByStage(ctx context.Context) (map[string]int, error)
}

type candidateRepo struct {
	db DBTX
}

func NewCandidateRepository(db DBTX) CandidateRepository {
	return &candidateRepo{db: db}
}

const candidateColumns = `id, name, email, position, stage, resume_key, created_at, updated_at`

func scanCandidate(row interface{ Scan(dest ...any) error }) (*models.Candidate, error) {
	c := &models.Candidate{}
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Position, &c.Stage, &c.ResumeKey, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *candidateRepo) Create(ctx context.Context, candidate *models.Candidate) error {
	query := `
		INSERT INTO candidates (id, name, email, position, stage, resume_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, candidate.ID, candidate.Name, candidate.Email,
		candidate.Position, candidate.Stage, candidate.ResumeKey)
	return err
}

func (r *candidateRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`
	return scanCandidate(r.db.QueryRow(ctx, query, id))
}

func (r *candidateRepo) Update(ctx context.Context, candidate *models.Candidate) error {
	query := `
		UPDATE candidates
		SET name = $1, email = $2, position = $3, stage = $4, resume_key = $5, updated_at = NOW()
		WHERE id = $6
	`
	_, err := r.db.Exec(ctx, query, candidate.Name, candidate.Email, candidate.Position,
		candidate.Stage, candidate.ResumeKey, candidate.ID)
	return err
}

func (r *candidateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM candidates WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *candidateRepo) List(ctx context.Context, stage *string, limit, offset int) ([]*models.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	args := []any{limit, offset}
	if stage != nil {
		query = `SELECT ` + candidateColumns + ` FROM candidates WHERE stage = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = []any{*stage, limit, offset}
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []*models.Candidate
	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, candidate)
	}
	return candidates, rows.Err()
}

func (r *candidateRepo) CountByStage(ctx context.Context) (map[string]int, error) {
	query := `SELECT stage, COUNT(*) FROM candidates GROUP BY stage`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var stage string
		var count int
		if err := rows.Scan(&stage, &count); err != nil {
			return nil, err
		}
		counts[stage] = count
	}
	return counts, rows.Err()
}
