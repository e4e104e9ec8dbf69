package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"staffsync/internal/common"
	"staffsync/internal/repositories"
	"staffsync/internal/services"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

const maxPhotoSize = 5 << 20 // 5 MiB

// EmployeeHandlers handles HTTP requests for employee records.
type EmployeeHandlers struct {
	employeeService services.EmployeeService
	authzService    services.AuthzService
	storage         services.DocumentStorage
}

func NewEmployeeHandlers(employeeService services.EmployeeService, authzService services.AuthzService, storage services.DocumentStorage) *EmployeeHandlers {
	return &EmployeeHandlers{
		employeeService: employeeService,
		authzService:    authzService,
		storage:         storage,
	}
}

type employeeRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password,omitempty"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	RoleID     string `json:"role_id"`
	Department string `json:"department"`
	Position   string `json:"position"`
	HireDate   string `json:"hire_date"`
	Active     *bool  `json:"active,omitempty"`
}

func (h *EmployeeHandlers) validateEmployee(req *employeeRequest) error {
	if err := common.ValidateRequiredString(req.Email, "email"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := common.ValidateRequiredString(req.FirstName, "first_name"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := common.ValidateRequiredString(req.LastName, "last_name"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// CreateEmployee handles POST /employees
func (h *EmployeeHandlers) CreateEmployee(c echo.Context) error {
	ctx := c.Request().Context()

	var req employeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := h.validateEmployee(&req); err != nil {
		return err
	}
	if req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "password is required")
	}

	roleID, err := common.ValidateUUID(req.RoleID, "role_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	hireDate, err := common.ParseDate(req.HireDate, "hire_date")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	employee, err := h.employeeService.Create(ctx, services.CreateEmployeeInput{
		Email:      req.Email,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		RoleID:     roleID,
		Department: req.Department,
		Position:   req.Position,
		HireDate:   hireDate,
	}, common.ActorFromContext(ctx))
	if err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			return echo.NewHTTPError(http.StatusConflict, "Email already in use")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create employee")
	}

	return c.JSON(http.StatusCreated, employee)
}

// GetEmployee handles GET /employees/:id
func (h *EmployeeHandlers) GetEmployee(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	employee, err := h.employeeService.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.SendNotFoundError(c, "Employee")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get employee")
	}

	return c.JSON(http.StatusOK, employee)
}

// ListEmployees handles GET /employees
func (h *EmployeeHandlers) ListEmployees(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, offset = common.ValidatePaginationParams(limit, offset)

	employees, err := h.employeeService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list employees")
	}

	return c.JSON(http.StatusOK, employees)
}

// UpdateEmployee handles PUT /employees/:id
func (h *EmployeeHandlers) UpdateEmployee(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req employeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := h.validateEmployee(&req); err != nil {
		return err
	}

	roleID, err := common.ValidateUUID(req.RoleID, "role_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	hireDate, err := common.ParseDate(req.HireDate, "hire_date")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	employee, err := h.employeeService.Update(ctx, id, services.UpdateEmployeeInput{
		Email:      req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		RoleID:     roleID,
		Department: req.Department,
		Position:   req.Position,
		HireDate:   hireDate,
		Active:     active,
	}, common.ActorFromContext(ctx))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.SendNotFoundError(c, "Employee")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update employee")
	}

	return c.JSON(http.StatusOK, employee)
}

// DeactivateEmployee handles PUT /employees/:id/deactivate
func (h *EmployeeHandlers) DeactivateEmployee(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	employee, err := h.employeeService.Deactivate(ctx, id, common.ActorFromContext(ctx))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.SendNotFoundError(c, "Employee")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to deactivate employee")
	}

	return c.JSON(http.StatusOK, employee)
}

// DeleteEmployee handles DELETE /employees/:id
func (h *EmployeeHandlers) DeleteEmployee(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.employeeService.Delete(ctx, id, common.ActorFromContext(ctx)); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.SendNotFoundError(c, "Employee")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete employee")
	}

	return c.NoContent(http.StatusNoContent)
}

// UploadPhoto handles POST /employees/:id/photo
func (h *EmployeeHandlers) UploadPhoto(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "photo file is required")
	}
	if fileHeader.Size > maxPhotoSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "photo exceeds the 5 MiB limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read photo file")
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	photoKey := fmt.Sprintf("photos/%s", id)
	if err := h.storage.Upload(ctx, photoKey, file, fileHeader.Size, contentType); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store photo")
	}

	if err := h.employeeService.SetPhotoKey(ctx, id, photoKey, common.ActorFromContext(ctx)); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.SendNotFoundError(c, "Employee")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update employee photo")
	}
	return c.JSON(http.StatusOK, map[string]string{"photo_key": photoKey})
}

// GetPhotoURL handles GET /employees/:id/photo
func (h *EmployeeHandlers) GetPhotoURL(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	employee, err := h.employeeService.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.SendNotFoundError(c, "Employee")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get employee")
	}
	if employee.PhotoKey == nil {
		return echo.NewHTTPError(http.StatusNotFound, "No photo on file")
	}

	url, err := h.storage.PresignedURL(ctx, *employee.PhotoKey, 15*time.Minute)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate photo link")
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

// GetMyGrants handles GET /me/permissions
func (h *EmployeeHandlers) GetMyGrants(c echo.Context) error {
	ctx := c.Request().Context()

	employeeID, ok := common.GetEmployeeIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Employee not authenticated")
	}

	grants, err := h.authzService.GrantsFor(ctx, employeeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list permissions")
	}

	return c.JSON(http.StatusOK, grants)
}
