package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LocalServicesHQ/marketplace-api/internal/httperr"
	"github.com/LocalServicesHQ/marketplace-api/internal/httpresp"
	"github.com/LocalServicesHQ/marketplace-api/internal/middleware"
	"github.com/LocalServicesHQ/marketplace-api/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List returns the actor's own audit trail, newest first, with optional
// action/entity/time filters.
func (h *AuditLogsHandler) List(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(string)

	action := c.Query("action")
	entity := c.Query("entity")
	fromStr := c.Query("from")
	toStr := c.Query("to")

	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "50")

	page, _ := strconv.Atoi(pageStr)
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	q := h.db.
		Model(&models.AuditLog{}).
		Where("actor_id = ?", actorID)

	if action != "" {
		q = q.Where("action = ?", action)
	}
	if entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if fromStr != "" {
		if from, err := time.Parse(time.RFC3339, fromStr); err == nil {
			q = q.Where("created_at >= ?", from)
		} else {
			httperr.BadRequest(c, "invalid_from", "Invalid from timestamp.")
			return
		}
	}
	if toStr != "" {
		if to, err := time.Parse(time.RFC3339, toStr); err == nil {
			q = q.Where("created_at <= ?", to)
		} else {
			httperr.BadRequest(c, "invalid_to", "Invalid to timestamp.")
			return
		}
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "failed_to_list_audit_logs", "Could not list audit logs.")
		return
	}

	httpresp.List(c, logs)
}
