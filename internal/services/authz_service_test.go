package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"staffsync/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type stubGrantRepo struct {
	levelCode int
	err       error
	grants    []*models.EmployeeGrant
}

func (s *stubGrantRepo) Upsert(ctx context.Context, grant *models.EmployeePermission) error {
	return nil
}

func (s *stubGrantRepo) Revoke(ctx context.Context, employeeID, permissionID uuid.UUID) error {
	return nil
}

func (s *stubGrantRepo) Get(ctx context.Context, employeeID, permissionID uuid.UUID) (*models.EmployeePermission, error) {
	return nil, pgx.ErrNoRows
}

func (s *stubGrantRepo) GetLevelCode(ctx context.Context, employeeID uuid.UUID, permissionName string) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.levelCode, nil
}

func (s *stubGrantRepo) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*models.EmployeeGrant, error) {
	return s.grants, nil
}

func (s *stubGrantRepo) ApplyRoleTemplate(ctx context.Context, employeeID, roleID uuid.UUID) error {
	return nil
}

type AuthzServiceTestSuite struct {
	suite.Suite
	repo       *stubGrantRepo
	svc        AuthzService
	employeeID uuid.UUID
	ctx        context.Context
}

func (suite *AuthzServiceTestSuite) SetupTest() {
	suite.repo = &stubGrantRepo{}
	suite.svc = NewAuthzService(suite.repo)
	suite.employeeID = uuid.New()
	suite.ctx = context.Background()
}

func TestAuthzServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthzServiceTestSuite))
}

func (suite *AuthzServiceTestSuite) TestVerbGating() {
	cases := []struct {
		name    string
		level   int
		method  string
		allowed bool
	}{
		{"viewer can read", models.LevelViewer, http.MethodGet, true},
		{"viewer cannot create", models.LevelViewer, http.MethodPost, false},
		{"viewer cannot update", models.LevelViewer, http.MethodPut, false},
		{"viewer cannot delete", models.LevelViewer, http.MethodDelete, false},
		{"editor can read", models.LevelEditor, http.MethodGet, true},
		{"editor can create", models.LevelEditor, http.MethodPost, true},
		{"editor can update", models.LevelEditor, http.MethodPut, true},
		{"editor cannot delete", models.LevelEditor, http.MethodDelete, false},
		{"manager can read", models.LevelManager, http.MethodGet, true},
		{"manager can create", models.LevelManager, http.MethodPost, true},
		{"manager can update", models.LevelManager, http.MethodPut, true},
		{"manager can delete", models.LevelManager, http.MethodDelete, true},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			suite.repo.levelCode = tc.level
			suite.repo.err = nil
			allowed, err := suite.svc.Authorize(suite.ctx, suite.employeeID, models.PermEmployees, tc.method)
			assert.NoError(suite.T(), err)
			assert.Equal(suite.T(), tc.allowed, allowed)
		})
	}
}

func (suite *AuthzServiceTestSuite) TestUnknownLevelDeniesEverything() {
	for _, code := range []int{0, 4, 99, -1} {
		suite.repo.levelCode = code
		for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete} {
			allowed, err := suite.svc.Authorize(suite.ctx, suite.employeeID, models.PermLeave, method)
			assert.NoError(suite.T(), err)
			assert.False(suite.T(), allowed)
		}
	}
}

func (suite *AuthzServiceTestSuite) TestMissingGrantDeniesWithoutError() {
	suite.repo.err = pgx.ErrNoRows

	allowed, err := suite.svc.Authorize(suite.ctx, suite.employeeID, models.PermAudit, http.MethodGet)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), allowed)
}

func (suite *AuthzServiceTestSuite) TestStoreFailureDeniesWithError() {
	suite.repo.err = errors.New("connection refused")

	allowed, err := suite.svc.Authorize(suite.ctx, suite.employeeID, models.PermAudit, http.MethodGet)
	assert.Error(suite.T(), err)
	assert.False(suite.T(), allowed)
}

func (suite *AuthzServiceTestSuite) TestUnknownMethodDenied() {
	suite.repo.levelCode = models.LevelManager

	allowed, err := suite.svc.Authorize(suite.ctx, suite.employeeID, models.PermEmployees, http.MethodPatch)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), allowed)
}
