package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LocalServicesHQ/marketplace-api/internal/httperr"
	"github.com/LocalServicesHQ/marketplace-api/internal/middleware"
	"github.com/LocalServicesHQ/marketplace-api/internal/models"
	ucStats "github.com/LocalServicesHQ/marketplace-api/internal/usecase/stats"
)

type StatsHandler struct {
	stats *ucStats.DashboardStats
}

func NewStatsHandler(stats *ucStats.DashboardStats) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// GetMine returns the dashboard summary for the acting role.
func (h *StatsHandler) GetMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)
	role, _ := c.Get(middleware.ContextUserRole)

	if role == models.UserTypeProvider {
		view, err := h.stats.ExecuteForProvider(c.Request.Context(), userID)
		if err != nil {
			httperr.Internal(c, "failed_to_get_stats", "Could not load stats.")
			return
		}
		c.JSON(http.StatusOK, view)
		return
	}

	view, err := h.stats.ExecuteForCustomer(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_get_stats", "Could not load stats.")
		return
	}
	c.JSON(http.StatusOK, view)
}
