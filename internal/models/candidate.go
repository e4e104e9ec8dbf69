package models

import (
	"time"

	"github.com/google/uuid"
)

// Recruitment pipeline stages, in order.
const (
	StageApplied   = "applied"
	StageScreening = "screening"
	StageInterview = "interview"
	StageOffer     = "offer"
	StageHired     = "hired"
	StageRejected  = "rejected"
)

// CandidateStages lists every valid stage.
var CandidateStages = []string{
	StageApplied, StageScreening, StageInterview, StageOffer, StageHired, StageRejected,
}

// Candidate is one applicant tracked through the recruitment pipeline.
// ResumeKey points at the stored resume object, if one was uploaded.
type Candidate struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Position  string    `json:"position" db:"position"`
	Stage     string    `json:"stage" db:"stage"`
	ResumeKey *string   `json:"resume_key,omitempty" db:"resume_key"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (c *Candidate) AuditTable() string { return "Candidate" }

func (c *Candidate) AuditFields() []AuditField {
	return []AuditField{
		{Name: "Name", Value: c.Name},
		{Name: "Email", Value: c.Email},
		{Name: "Position", Value: c.Position},
		{Name: "Stage", Value: c.Stage},
		{Name: "ResumeKey", Value: optional(c.ResumeKey)},
	}
}

// ValidCandidateStage reports whether s is a known pipeline stage.
func ValidCandidateStage(s string) bool {
	for _, stage := range CandidateStages {
		if stage == s {
			return true
		}
	}
	return false
}
