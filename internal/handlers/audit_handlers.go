package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"staffsync/internal/common"
	"staffsync/internal/models"
	"staffsync/internal/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

type AuditHandlers struct {
	auditRepo repositories.AuditEntryRepository
}

func NewAuditHandlers(auditRepo repositories.AuditEntryRepository) *AuditHandlers {
	return &AuditHandlers{
		auditRepo: auditRepo,
	}
}

// ListAuditEntries handles GET /audit
func (h *AuditHandlers) ListAuditEntries(c echo.Context) error {
	filters := &models.AuditEntryFilters{}

	if tableName := c.QueryParam("table"); tableName != "" {
		filters.TableName = &tableName
	}
	if action := c.QueryParam("action"); action != "" {
		filters.Action = &action
	}
	if userID := c.QueryParam("user"); userID != "" {
		filters.UserID = &userID
	}
	if startStr := c.QueryParam("start_date"); startStr != "" {
		start, err := common.ParseDate(startStr, "start_date")
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		filters.StartDate = &start
	}
	if endStr := c.QueryParam("end_date"); endStr != "" {
		end, err := common.ParseDate(endStr, "end_date")
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		filters.EndDate = &end
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	filters.Limit, filters.Offset = common.ValidatePaginationParams(limit, offset)

	entries, err := h.auditRepo.List(c.Request().Context(), filters)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list audit entries")
	}
	return c.JSON(http.StatusOK, entries)
}

// GetAuditEntry handles GET /audit/:id
func (h *AuditHandlers) GetAuditEntry(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.auditRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.SendNotFoundError(c, "Audit entry")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get audit entry")
	}
	return c.JSON(http.StatusOK, entry)
}

// ListAuditTables handles GET /audit/tables
func (h *AuditHandlers) ListAuditTables(c echo.Context) error {
	tables, err := h.auditRepo.GetTableNames(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list audited tables")
	}
	return c.JSON(http.StatusOK, tables)
}
