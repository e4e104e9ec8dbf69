package middleware

import (
	"net/http"

	"staffsync/internal/common"
	"staffsync/internal/services"

	"github.com/labstack/echo/v4"
)

type AuthzMiddleware struct {
	authzService services.AuthzService
}

func NewAuthzMiddleware(authzService services.AuthzService) *AuthzMiddleware {
	return &AuthzMiddleware{
		authzService: authzService,
	}
}

// RequirePermission gates a route group on the named permission. The HTTP
// method decides the level required: GET needs Viewer, POST/PUT need
// Editor, DELETE needs Manager. Employees without a grant are denied.
func (m *AuthzMiddleware) RequirePermission(permission string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			employeeID, ok := common.GetEmployeeIDFromContext(ctx)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Employee not authenticated")
			}

			allowed, err := m.authzService.Authorize(ctx, employeeID, permission, c.Request().Method)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Error checking permission")
			}
			if !allowed {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
			}

			return next(c)
		}
	}
}
