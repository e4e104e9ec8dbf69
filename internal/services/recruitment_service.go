package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"staffsync/internal/models"
	"staffsync/internal/repositories"

	"github.com/google/uuid"
)

var ErrUnknownStage = errors.New("unknown recruitment stage")

type CandidateInput struct {
	Name     string
	Email    string
	Position string
}

type RecruitmentService interface {
	Create(ctx context.Context, input CandidateInput, actor string) (*models.Candidate, error)
	Update(ctx context.Context, id uuid.UUID, input CandidateInput, actor string) (*models.Candidate, error)
	MoveStage(ctx context.Context, id uuid.UUID, stage string, actor string) (*models.Candidate, error)
	Delete(ctx context.Context, id uuid.UUID, actor string) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Candidate, error)
	List(ctx context.Context, stage *string, limit, offset int) ([]*models.Candidate, error)

	AttachResume(ctx context.Context, id uuid.UUID, reader io.Reader, size int64, contentType string, actor string) (*models.Candidate, error)
	ResumeURL(ctx context.Context, id uuid.UUID) (string, error)
}

type recruitmentService struct {
	db            repositories.TxStarter
	candidateRepo repositories.CandidateRepository
	storage       DocumentStorage
	audit         AuditRecorder
}

func NewRecruitmentService(db repositories.TxStarter, candidateRepo repositories.CandidateRepository,
	storage DocumentStorage, audit AuditRecorder) RecruitmentService {
	return &recruitmentService{
		db:            db,
		candidateRepo: candidateRepo,
		storage:       storage,
		audit:         audit,
	}
}

func (s *recruitmentService) Create(ctx context.Context, input CandidateInput, actor string) (*models.Candidate, error) {
	candidate := &models.Candidate{
		ID:       uuid.New(),
		Name:     input.Name,
		Email:    input.Email,
		Position: input.Position,
		Stage:    models.StageApplied,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := repositories.NewCandidateRepository(tx).Create(ctx, candidate); err != nil {
		return nil, err
	}
	if err := s.audit.RecordCreate(ctx, tx, actor, candidate); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return candidate, nil
}

func (s *recruitmentService) Update(ctx context.Context, id uuid.UUID, input CandidateInput, actor string) (*models.Candidate, error) {
	return s.mutate(ctx, id, actor, func(candidate *models.Candidate) error {
		candidate.Name = input.Name
		candidate.Email = input.Email
		candidate.Position = input.Position
		return nil
	})
}

func (s *recruitmentService) MoveStage(ctx context.Context, id uuid.UUID, stage string, actor string) (*models.Candidate, error) {
	if !models.ValidCandidateStage(stage) {
		return nil, ErrUnknownStage
	}
	return s.mutate(ctx, id, actor, func(candidate *models.Candidate) error {
		candidate.Stage = stage
		return nil
	})
}

func (s *recruitmentService) AttachResume(ctx context.Context, id uuid.UUID, reader io.Reader, size int64, contentType string, actor string) (*models.Candidate, error) {
	objectName := fmt.Sprintf("resumes/%s.pdf", id)
	if err := s.storage.Upload(ctx, objectName, reader, size, contentType); err != nil {
		return nil, fmt.Errorf("failed to store resume: %w", err)
	}
	return s.mutate(ctx, id, actor, func(candidate *models.Candidate) error {
		candidate.ResumeKey = &objectName
		return nil
	})
}

// mutate applies a change to a candidate inside a transaction with its
// audit record, diffing against the snapshot loaded at the start.
func (s *recruitmentService) mutate(ctx context.Context, id uuid.UUID, actor string, apply func(*models.Candidate) error) (*models.Candidate, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	txRepo := repositories.NewCandidateRepository(tx)
	before, err := txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	after := *before
	if err := apply(&after); err != nil {
		return nil, err
	}

	if err := txRepo.Update(ctx, &after); err != nil {
		return nil, err
	}
	if err := s.audit.RecordUpdate(ctx, tx, actor, before, &after); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &after, nil
}

func (s *recruitmentService) Delete(ctx context.Context, id uuid.UUID, actor string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	txRepo := repositories.NewCandidateRepository(tx)
	before, err := txRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := txRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.audit.RecordDelete(ctx, tx, actor, before); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	if before.ResumeKey != nil {
		// Best effort; the object becomes orphaned if this fails.
		_ = s.storage.Delete(ctx, *before.ResumeKey)
	}
	return nil
}

func (s *recruitmentService) GetByID(ctx context.Context, id uuid.UUID) (*models.Candidate, error) {
	return s.candidateRepo.GetByID(ctx, id)
}

func (s *recruitmentService) List(ctx context.Context, stage *string, limit, offset int) ([]*models.Candidate, error) {
	return s.candidateRepo.List(ctx, stage, limit, offset)
}

func (s *recruitmentService) ResumeURL(ctx context.Context, id uuid.UUID) (string, error) {
	candidate, err := s.candidateRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if candidate.ResumeKey == nil {
		return "", errors.New("candidate has no resume on file")
	}
	return s.storage.PresignedURL(ctx, *candidate.ResumeKey, 15*time.Minute)
}
