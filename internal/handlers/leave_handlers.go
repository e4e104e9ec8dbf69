package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"staffsync/internal/common"
	"staffsync/internal/services"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

type LeaveHandlers struct {
	leaveService services.LeaveService
}

func NewLeaveHandlers(leaveService services.LeaveService) *LeaveHandlers {
	return &LeaveHandlers{
		leaveService: leaveService,
	}
}

// SubmitLeave handles POST /leave
func (h *LeaveHandlers) SubmitLeave(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		EmployeeID  string  `json:"employee_id"`
		LeaveTypeID string  `json:"leave_type_id"`
		StartDate   string  `json:"start_date"`
		EndDate     string  `json:"end_date"`
		Reason      *string `json:"reason"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	employeeID, err := common.ValidateUUID(req.EmployeeID, "employee_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	leaveTypeID, err := common.ValidateUUID(req.LeaveTypeID, "leave_type_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	startDate, err := common.ParseDate(req.StartDate, "start_date")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	endDate, err := common.ParseDate(req.EndDate, "end_date")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	request, err := h.leaveService.Submit(ctx, services.SubmitLeaveInput{
		EmployeeID:  employeeID,
		LeaveTypeID: leaveTypeID,
		StartDate:   startDate,
		EndDate:     endDate,
		Reason:      req.Reason,
	}, common.ActorFromContext(ctx))
	if err != nil {
		if errors.Is(err, services.ErrInvalidLeaveDates) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to submit leave request")
	}

	return c.JSON(http.StatusCreated, request)
}

// ReviewLeave handles PUT /leave/:id/review
func (h *LeaveHandlers) ReviewLeave(c echo.Context) error {
	ctx := c.Request().Context()

	requestID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reviewerID, ok := common.GetEmployeeIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Employee not authenticated")
	}

	var req struct {
		Approve bool `json:"approve"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	request, err := h.leaveService.Review(ctx, requestID, reviewerID, req.Approve, common.ActorFromContext(ctx))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return common.SendNotFoundError(c, "Leave request")
		case errors.Is(err, services.ErrLeaveNotPending):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, services.ErrInsufficientBalance):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to review leave request")
		}
	}

	return c.JSON(http.StatusOK, request)
}

// GetLeave handles GET /leave/:id
func (h *LeaveHandlers) GetLeave(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	request, err := h.leaveService.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.SendNotFoundError(c, "Leave request")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get leave request")
	}
	return c.JSON(http.StatusOK, request)
}

// ListEmployeeLeave handles GET /leave/employees/:id
func (h *LeaveHandlers) ListEmployeeLeave(c echo.Context) error {
	employeeID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, offset = common.ValidatePaginationParams(limit, offset)

	requests, err := h.leaveService.ListByEmployee(c.Request().Context(), employeeID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list leave requests")
	}
	return c.JSON(http.StatusOK, requests)
}

// ListPendingLeave handles GET /leave/pending
func (h *LeaveHandlers) ListPendingLeave(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, offset = common.ValidatePaginationParams(limit, offset)

	requests, err := h.leaveService.ListPending(c.Request().Context(), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list pending leave requests")
	}
	return c.JSON(http.StatusOK, requests)
}

// GetBalances handles GET /leave/employees/:id/balances
func (h *LeaveHandlers) GetBalances(c echo.Context) error {
	employeeID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	balances, err := h.leaveService.Balances(c.Request().Context(), employeeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list leave balances")
	}
	return c.JSON(http.StatusOK, balances)
}

// ListLeaveTypes handles GET /leave/types
func (h *LeaveHandlers) ListLeaveTypes(c echo.Context) error {
	types, err := h.leaveService.ListTypes(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list leave types")
	}
	return c.JSON(http.StatusOK, types)
}
