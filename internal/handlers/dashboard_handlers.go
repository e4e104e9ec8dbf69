package handlers

import (
	"net/http"

	"staffsync/internal/services"

	"github.com/labstack/echo/v4"
)

type DashboardHandlers struct {
	metricsService services.MetricsService
}

func NewDashboardHandlers(metricsService services.MetricsService) *DashboardHandlers {
	return &DashboardHandlers{
		metricsService: metricsService,
	}
}

// GetDashboard handles GET /dashboard
func (h *DashboardHandlers) GetDashboard(c echo.Context) error {
	metrics, err := h.metricsService.Dashboard(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute dashboard metrics")
	}
	return c.JSON(http.StatusOK, metrics)
}
