package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LocalServicesHQ/marketplace-api/internal/httperr"
	"github.com/LocalServicesHQ/marketplace-api/internal/middleware"
	ucCatalog "github.com/LocalServicesHQ/marketplace-api/internal/usecase/catalog"
)

// ======================================================
// HANDLER
// ======================================================

type ServiceHandler struct {
	create     *ucCatalog.CreateService
	deactivate *ucCatalog.DeactivateService
	list       *ucCatalog.ListServices
}

func NewServiceHandler(
	create *ucCatalog.CreateService,
	deactivate *ucCatalog.DeactivateService,
	list *ucCatalog.ListServices,
) *ServiceHandler {
	return &ServiceHandler{
		create:     create,
		deactivate: deactivate,
		list:       list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateServiceRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price"`
	Category    string  `json:"category" binding:"required"`
	City        string  `json:"city" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *ServiceHandler) Create(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextUserID).(string)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid service data.")
		return
	}

	svc, err := h.create.Execute(c.Request.Context(), ucCatalog.CreateServiceInput{
		ProviderID:  providerID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		City:        req.City,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, svc)
}

// ======================================================
// LIST MINE
// ======================================================

func (h *ServiceHandler) ListMine(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextUserID).(string)

	activeOnly := c.Query("active") == "true"

	services, err := h.list.ExecuteByProvider(c.Request.Context(), providerID, activeOnly)
	if err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	c.JSON(http.StatusOK, services)
}

// ======================================================
// DEACTIVATE
// ======================================================

func (h *ServiceHandler) Deactivate(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextUserID).(string)
	serviceID := c.Param("id")

	svc, err := h.deactivate.Execute(c.Request.Context(), serviceID, providerID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, svc)
}
