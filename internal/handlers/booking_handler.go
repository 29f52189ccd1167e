package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/LocalServicesHQ/marketplace-api/internal/domain/booking"
	"github.com/LocalServicesHQ/marketplace-api/internal/httperr"
	"github.com/LocalServicesHQ/marketplace-api/internal/httpresp"
	"github.com/LocalServicesHQ/marketplace-api/internal/middleware"
	"github.com/LocalServicesHQ/marketplace-api/internal/models"
	ucBooking "github.com/LocalServicesHQ/marketplace-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create       *ucBooking.CreateBooking
	updateStatus *ucBooking.UpdateStatus
	list         *ucBooking.ListBookings
}

func NewBookingHandler(
	create *ucBooking.CreateBooking,
	updateStatus *ucBooking.UpdateStatus,
	list *ucBooking.ListBookings,
) *BookingHandler {
	return &BookingHandler{
		create:       create,
		updateStatus: updateStatus,
		list:         list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ServiceID   string    `json:"service_id" binding:"required"`
	BookingDate time.Time `json:"booking_date" binding:"required"`
	TimeSlot    string    `json:"time_slot"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(string)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking data.")
		return
	}

	b, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		ServiceID:   req.ServiceID,
		CustomerID:  customerID,
		BookingDate: req.BookingDate,
		TimeSlot:    req.TimeSlot,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

// ======================================================
// UPDATE STATUS
// ======================================================

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(string)
	bookingID := c.Param("id")

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid status data.")
		return
	}

	b, err := h.updateStatus.Execute(
		c.Request.Context(),
		bookingID,
		actorID,
		domain.Status(req.Status),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

// ======================================================
// LIST (role-scoped)
// ======================================================

func (h *BookingHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)
	role, _ := c.Get(middleware.ContextUserRole)

	if role == models.UserTypeProvider {
		views, err := h.list.ExecuteForProvider(c.Request.Context(), userID)
		if err != nil {
			httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
			return
		}
		httpresp.List(c, views)
		return
	}

	views, err := h.list.ExecuteForCustomer(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}
	httpresp.List(c, views)
}
