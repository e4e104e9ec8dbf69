package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"staffsync/internal/common"
	"staffsync/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type stubAuthzService struct {
	allowed bool
	err     error
}

func (s *stubAuthzService) Authorize(ctx context.Context, employeeID uuid.UUID, permissionName, method string) (bool, error) {
	return s.allowed, s.err
}

func (s *stubAuthzService) GrantsFor(ctx context.Context, employeeID uuid.UUID) ([]*models.EmployeeGrant, error) {
	return nil, nil
}

func invokeAuthz(t *testing.T, svc *stubAuthzService, authenticated bool) error {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/employees/123", nil)
	if authenticated {
		ctx := context.WithValue(req.Context(), common.EmployeeIDKey, uuid.New())
		req = req.WithContext(ctx)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := NewAuthzMiddleware(svc)
	handler := mw.RequirePermission(models.PermEmployees)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return handler(c)
}

func TestRequirePermissionAllows(t *testing.T) {
	err := invokeAuthz(t, &stubAuthzService{allowed: true}, true)
	assert.NoError(t, err)
}

func TestRequirePermissionForbids(t *testing.T) {
	err := invokeAuthz(t, &stubAuthzService{allowed: false}, true)

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
}

func TestRequirePermissionRejectsUnauthenticated(t *testing.T) {
	err := invokeAuthz(t, &stubAuthzService{allowed: true}, false)

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestRequirePermissionStoreFailureIsServerError(t *testing.T) {
	err := invokeAuthz(t, &stubAuthzService{err: errors.New("connection refused")}, true)

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
}
