package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LocalServicesHQ/marketplace-api/internal/httperr"
	"github.com/LocalServicesHQ/marketplace-api/internal/httpresp"
	"github.com/LocalServicesHQ/marketplace-api/internal/models"
	ucCatalog "github.com/LocalServicesHQ/marketplace-api/internal/usecase/catalog"
)

// Public discovery surface: active services with category/city/price filters,
// plus the provider profile page.

type DiscoverHandler struct {
	db   *gorm.DB
	list *ucCatalog.ListServices
}

func NewDiscoverHandler(db *gorm.DB, list *ucCatalog.ListServices) *DiscoverHandler {
	return &DiscoverHandler{db: db, list: list}
}

func (h *DiscoverHandler) ListServices(c *gin.Context) {
	filters := ucCatalog.DiscoveryFilters{
		Category: c.Query("category"),
		City:     c.Query("city"),
	}

	if raw := c.Query("price_min"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_price_min", "Invalid minimum price.")
			return
		}
		filters.PriceMin = &v
	}

	if raw := c.Query("price_max"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_price_max", "Invalid maximum price.")
			return
		}
		filters.PriceMax = &v
	}

	services, err := h.list.ExecuteActive(c.Request.Context(), filters)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, services)
}

func (h *DiscoverHandler) GetProvider(c *gin.Context) {
	providerID := c.Param("id")

	var profile models.Profile
	if err := h.db.
		Where("id = ? AND user_type = ?", providerID, models.UserTypeProvider).
		First(&profile).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "provider_not_found", "Provider not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_provider", "Could not load provider.")
		return
	}

	services, err := h.list.ExecuteByProvider(c.Request.Context(), providerID, true)
	if err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not load services.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"provider": profile,
		"services": services,
	})
}
