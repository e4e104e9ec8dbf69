package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"staffsync/internal/common"
	"staffsync/internal/services"

	"github.com/labstack/echo/v4"
)

type AttendanceHandlers struct {
	attendanceService services.AttendanceService
}

func NewAttendanceHandlers(attendanceService services.AttendanceService) *AttendanceHandlers {
	return &AttendanceHandlers{
		attendanceService: attendanceService,
	}
}

// ClockIn handles POST /attendance/clock-in
func (h *AttendanceHandlers) ClockIn(c echo.Context) error {
	ctx := c.Request().Context()

	employeeID, ok := common.GetEmployeeIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Employee not authenticated")
	}

	record, err := h.attendanceService.ClockIn(ctx, employeeID)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyClockedIn) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to clock in")
	}

	return c.JSON(http.StatusCreated, record)
}

// ClockOut handles POST /attendance/clock-out
func (h *AttendanceHandlers) ClockOut(c echo.Context) error {
	ctx := c.Request().Context()

	employeeID, ok := common.GetEmployeeIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Employee not authenticated")
	}

	record, err := h.attendanceService.ClockOut(ctx, employeeID)
	if err != nil {
		if errors.Is(err, services.ErrNotClockedIn) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to clock out")
	}

	return c.JSON(http.StatusOK, record)
}

// ListEmployeeAttendance handles GET /attendance/employees/:id
func (h *AttendanceHandlers) ListEmployeeAttendance(c echo.Context) error {
	employeeID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, offset = common.ValidatePaginationParams(limit, offset)

	records, err := h.attendanceService.ListByEmployee(c.Request().Context(), employeeID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list attendance")
	}
	return c.JSON(http.StatusOK, records)
}
