package models

import (
	"time"

	"github.com/google/uuid"
)

// AuthorizationLevel ranks how much an employee may do with a permission.
// Codes are ordered: a higher code covers every verb of the lower ones.
type AuthorizationLevel struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Code      int       `json:"code" db:"code"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

const (
	LevelViewer  = 1
	LevelEditor  = 2
	LevelManager = 3
)

// LevelNames maps level codes to their display names.
var LevelNames = map[int]string{
	LevelViewer:  "Viewer",
	LevelEditor:  "Editor",
	LevelManager: "Manager",
}
