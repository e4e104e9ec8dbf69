package services

import (
	"context"
	"errors"
	"net/http"

	"staffsync/internal/models"
	"staffsync/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// verbsByLevel is the fixed policy table gating HTTP verbs per
// authorization level. Levels not present here deny every verb.
var verbsByLevel = map[int]map[string]bool{
	models.LevelViewer: {
		http.MethodGet: true,
	},
	models.LevelEditor: {
		http.MethodGet:  true,
		http.MethodPost: true,
		http.MethodPut:  true,
	},
	models.LevelManager: {
		http.MethodGet:    true,
		http.MethodPost:   true,
		http.MethodPut:    true,
		http.MethodDelete: true,
	},
}

// VerbAllowed reports whether the given authorization level code permits
// the HTTP method. Unknown codes allow nothing.
func VerbAllowed(levelCode int, method string) bool {
	verbs, ok := verbsByLevel[levelCode]
	if !ok {
		return false
	}
	return verbs[method]
}

// AuthzService decides allow/forbid for a caller, a permission name fixed at
// route registration, and the request's HTTP verb. The policy fails closed:
// a missing grant, a missing level and a store failure all deny.
type AuthzService interface {
	Authorize(ctx context.Context, employeeID uuid.UUID, permissionName, method string) (bool, error)
	GrantsFor(ctx context.Context, employeeID uuid.UUID) ([]*models.EmployeeGrant, error)
}

type authzService struct {
	grantRepo repositories.EmployeePermissionRepository
}

func NewAuthzService(grantRepo repositories.EmployeePermissionRepository) AuthzService {
	return &authzService{grantRepo: grantRepo}
}

func (s *authzService) Authorize(ctx context.Context, employeeID uuid.UUID, permissionName, method string) (bool, error) {
	code, err := s.grantRepo.GetLevelCode(ctx, employeeID, permissionName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No grant for this permission: forbidden, not an error.
			return false, nil
		}
		return false, err
	}
	return VerbAllowed(code, method), nil
}

func (s *authzService) GrantsFor(ctx context.Context, employeeID uuid.UUID) ([]*models.EmployeeGrant, error) {
	return s.grantRepo.ListByEmployee(ctx, employeeID)
}
