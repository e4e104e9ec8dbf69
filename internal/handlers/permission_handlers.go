package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"staffsync/internal/common"
	"staffsync/internal/models"
	"staffsync/internal/repositories"
	"staffsync/internal/services"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// PermissionHandlers administers permissions, authorization levels,
// employee grants, and role permission templates. Reads go straight to the
// repositories; every mutation goes through the permission service so it is
// audited.
type PermissionHandlers struct {
	permissionService      services.PermissionService
	permissionRepo         repositories.PermissionRepository
	levelRepo              repositories.AuthorizationLevelRepository
	roleRepo               repositories.RoleRepository
	rolePermissionRepo     repositories.RolePermissionRepository
	employeePermissionRepo repositories.EmployeePermissionRepository
}

func NewPermissionHandlers(permissionService services.PermissionService,
	permissionRepo repositories.PermissionRepository,
	levelRepo repositories.AuthorizationLevelRepository, roleRepo repositories.RoleRepository,
	rolePermissionRepo repositories.RolePermissionRepository,
	employeePermissionRepo repositories.EmployeePermissionRepository) *PermissionHandlers {
	return &PermissionHandlers{
		permissionService:      permissionService,
		permissionRepo:         permissionRepo,
		levelRepo:              levelRepo,
		roleRepo:               roleRepo,
		rolePermissionRepo:     rolePermissionRepo,
		employeePermissionRepo: employeePermissionRepo,
	}
}

// ListPermissions handles GET /permissions
func (h *PermissionHandlers) ListPermissions(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, offset = common.ValidatePaginationParams(limit, offset)

	permissions, err := h.permissionRepo.List(c.Request().Context(), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list permissions")
	}
	return c.JSON(http.StatusOK, permissions)
}

// ListLevels handles GET /permissions/levels
func (h *PermissionHandlers) ListLevels(c echo.Context) error {
	levels, err := h.levelRepo.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list authorization levels")
	}
	return c.JSON(http.StatusOK, levels)
}

// ListEmployeeGrants handles GET /permissions/employees/:id
func (h *PermissionHandlers) ListEmployeeGrants(c echo.Context) error {
	employeeID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	grants, err := h.employeePermissionRepo.ListByEmployee(c.Request().Context(), employeeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list grants")
	}
	return c.JSON(http.StatusOK, grants)
}

// GrantPermission handles POST /permissions/employees/:id
func (h *PermissionHandlers) GrantPermission(c echo.Context) error {
	ctx := c.Request().Context()

	employeeID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req struct {
		PermissionID string `json:"permission_id"`
		LevelCode    int    `json:"level_code"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	permissionID, err := common.ValidateUUID(req.PermissionID, "permission_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if _, ok := models.LevelNames[req.LevelCode]; !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "level_code must be 1, 2 or 3")
	}

	grant, err := h.permissionService.Grant(ctx, employeeID, permissionID, req.LevelCode, common.ActorFromContext(ctx))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to grant permission")
	}

	return c.JSON(http.StatusCreated, grant)
}

// RevokePermission handles DELETE /permissions/employees/:id/:permissionID
func (h *PermissionHandlers) RevokePermission(c echo.Context) error {
	employeeID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	permissionID, err := common.ValidateUUID(c.Param("permissionID"), "permissionID")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	if err := h.permissionService.Revoke(ctx, employeeID, permissionID, common.ActorFromContext(ctx)); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.SendNotFoundError(c, "Grant")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to revoke permission")
	}
	return c.NoContent(http.StatusNoContent)
}

// ListRoles handles GET /roles
func (h *PermissionHandlers) ListRoles(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, offset = common.ValidatePaginationParams(limit, offset)

	roles, err := h.roleRepo.List(c.Request().Context(), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list roles")
	}
	return c.JSON(http.StatusOK, roles)
}

// CreateRole handles POST /roles
func (h *PermissionHandlers) CreateRole(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Name        string  `json:"name"`
		Description *string `json:"description,omitempty"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := h.permissionService.CreateRole(ctx, req.Name, req.Description, common.ActorFromContext(ctx))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create role")
	}
	return c.JSON(http.StatusCreated, role)
}

// ListRoleTemplate handles GET /roles/:id/permissions
func (h *PermissionHandlers) ListRoleTemplate(c echo.Context) error {
	roleID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	template, err := h.rolePermissionRepo.ListByRole(c.Request().Context(), roleID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list role template")
	}
	return c.JSON(http.StatusOK, template)
}

// SetRoleTemplateEntry handles POST /roles/:id/permissions. Templates only
// affect accounts created afterwards; existing grants stay untouched.
func (h *PermissionHandlers) SetRoleTemplateEntry(c echo.Context) error {
	ctx := c.Request().Context()

	roleID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req struct {
		PermissionID string `json:"permission_id"`
		LevelCode    int    `json:"level_code"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	permissionID, err := common.ValidateUUID(req.PermissionID, "permission_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if _, ok := models.LevelNames[req.LevelCode]; !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "level_code must be 1, 2 or 3")
	}

	entry, err := h.permissionService.SetRoleTemplateEntry(ctx, roleID, permissionID, req.LevelCode, common.ActorFromContext(ctx))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.SendNotFoundError(c, "Role")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update role template")
	}
	return c.JSON(http.StatusCreated, entry)
}

// DeleteRoleTemplateEntry handles DELETE /roles/:id/permissions/:permissionID
func (h *PermissionHandlers) DeleteRoleTemplateEntry(c echo.Context) error {
	roleID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	permissionID, err := common.ValidateUUID(c.Param("permissionID"), "permissionID")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	if err := h.permissionService.DeleteRoleTemplateEntry(ctx, roleID, permissionID, common.ActorFromContext(ctx)); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.SendNotFoundError(c, "Role template entry")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete role template entry")
	}
	return c.NoContent(http.StatusNoContent)
}
