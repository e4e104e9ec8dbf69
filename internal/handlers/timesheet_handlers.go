package handlers

import (
	"errors"
	"net/http"
	"time"

	"staffsync/internal/common"
	"staffsync/internal/services"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

type TimesheetHandlers struct {
	timesheetService services.TimesheetService
}

func NewTimesheetHandlers(timesheetService services.TimesheetService) *TimesheetHandlers {
	return &TimesheetHandlers{
		timesheetService: timesheetService,
	}
}

type timesheetRequest struct {
	EmployeeID   string  `json:"employee_id"`
	Date         string  `json:"date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	BreakTypeID  *string `json:"break_type_id"`
	BreakMinutes int     `json:"break_minutes"`
	Notes        *string `json:"notes"`
}

func (h *TimesheetHandlers) parseTimesheet(req *timesheetRequest) (services.TimesheetInput, error) {
	var input services.TimesheetInput

	employeeID, err := common.ValidateUUID(req.EmployeeID, "employee_id")
	if err != nil {
		return input, err
	}
	date, err := common.ParseDate(req.Date, "date")
	if err != nil {
		return input, err
	}
	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return input, errors.New("start_time must be an RFC 3339 timestamp")
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return input, errors.New("end_time must be an RFC 3339 timestamp")
	}

	var breakTypeID *uuid.UUID
	if req.BreakTypeID != nil && *req.BreakTypeID != "" {
		id, err := common.ValidateUUID(*req.BreakTypeID, "break_type_id")
		if err != nil {
			return input, err
		}
		breakTypeID = &id
	}

	return services.TimesheetInput{
		EmployeeID:   employeeID,
		Date:         date,
		StartTime:    startTime,
		EndTime:      endTime,
		BreakTypeID:  breakTypeID,
		BreakMinutes: req.BreakMinutes,
		Notes:        req.Notes,
	}, nil
}

// CreateTimesheet handles POST /timesheets
func (h *TimesheetHandlers) CreateTimesheet(c echo.Context) error {
	ctx := c.Request().Context()

	var req timesheetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	input, err := h.parseTimesheet(&req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	timesheet, err := h.timesheetService.Create(ctx, input, common.ActorFromContext(ctx))
	if err != nil {
		if errors.Is(err, services.ErrInvalidTimesheetTimes) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create timesheet entry")
	}
	return c.JSON(http.StatusCreated, timesheet)
}

// UpdateTimesheet handles PUT /timesheets/:id
func (h *TimesheetHandlers) UpdateTimesheet(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req timesheetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	input, err := h.parseTimesheet(&req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	timesheet, err := h.timesheetService.Update(ctx, id, input, common.ActorFromContext(ctx))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return common.SendNotFoundError(c, "Timesheet entry")
		case errors.Is(err, services.ErrInvalidTimesheetTimes):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update timesheet entry")
		}
	}
	return c.JSON(http.StatusOK, timesheet)
}

// DeleteTimesheet handles DELETE /timesheets/:id
func (h *TimesheetHandlers) DeleteTimesheet(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.timesheetService.Delete(ctx, id, common.ActorFromContext(ctx)); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.SendNotFoundError(c, "Timesheet entry")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete timesheet entry")
	}
	return c.NoContent(http.StatusNoContent)
}

// GetTimesheet handles GET /timesheets/:id
func (h *TimesheetHandlers) GetTimesheet(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	timesheet, err := h.timesheetService.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.SendNotFoundError(c, "Timesheet entry")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get timesheet entry")
	}
	return c.JSON(http.StatusOK, timesheet)
}

// ListEmployeeTimesheets handles GET /timesheets/employees/:id
func (h *TimesheetHandlers) ListEmployeeTimesheets(c echo.Context) error {
	employeeID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Default window: the current month.
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	if fromStr := c.QueryParam("from"); fromStr != "" {
		if from, err = common.ParseDate(fromStr, "from"); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	if toStr := c.QueryParam("to"); toStr != "" {
		if to, err = common.ParseDate(toStr, "to"); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	timesheets, err := h.timesheetService.ListByEmployee(c.Request().Context(), employeeID, from, to)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list timesheet entries")
	}
	return c.JSON(http.StatusOK, timesheets)
}

// ListBreakTypes handles GET /timesheets/break-types
func (h *TimesheetHandlers) ListBreakTypes(c echo.Context) error {
	types, err := h.timesheetService.ListBreakTypes(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list break types")
	}
	return c.JSON(http.StatusOK, types)
}
