package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LocalServicesHQ/marketplace-api/internal/httperr"
	"github.com/LocalServicesHQ/marketplace-api/internal/httpresp"
	"github.com/LocalServicesHQ/marketplace-api/internal/middleware"
	ucFeedback "github.com/LocalServicesHQ/marketplace-api/internal/usecase/feedback"
)

type FeedbackHandler struct {
	submit *ucFeedback.SubmitFeedback
	list   *ucFeedback.ListFeedback
}

func NewFeedbackHandler(
	submit *ucFeedback.SubmitFeedback,
	list *ucFeedback.ListFeedback,
) *FeedbackHandler {
	return &FeedbackHandler{
		submit: submit,
		list:   list,
	}
}

// --------- Requests ---------

type SubmitFeedbackRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment" binding:"required"`
}

// --------- Handlers ---------

func (h *FeedbackHandler) Submit(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(string)
	bookingID := c.Param("id")

	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid feedback data.")
		return
	}

	f, err := h.submit.Execute(c.Request.Context(), ucFeedback.SubmitFeedbackInput{
		BookingID:  bookingID,
		CustomerID: customerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, f)
}

// ListMine shows a provider the feedback left on their completed bookings.
func (h *FeedbackHandler) ListMine(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextUserID).(string)

	views, err := h.list.ExecuteForProvider(c.Request.Context(), providerID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_feedback", "Could not list feedback.")
		return
	}

	httpresp.List(c, views)
}

// ListForProvider is the public view used on a provider's profile page.
func (h *FeedbackHandler) ListForProvider(c *gin.Context) {
	providerID := c.Param("id")

	views, err := h.list.ExecuteForProvider(c.Request.Context(), providerID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_feedback", "Could not list feedback.")
		return
	}

	httpresp.List(c, views)
}
