package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LocalServicesHQ/marketplace-api/internal/httperr"
	"github.com/LocalServicesHQ/marketplace-api/internal/middleware"
	ucProfile "github.com/LocalServicesHQ/marketplace-api/internal/usecase/profile"
)

type MeHandler struct {
	resolve *ucProfile.ResolveIdentity
	update  *ucProfile.UpdateProfile
}

func NewMeHandler(
	resolve *ucProfile.ResolveIdentity,
	update *ucProfile.UpdateProfile,
) *MeHandler {
	return &MeHandler{
		resolve: resolve,
		update:  update,
	}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)
	role, _ := c.Get(middleware.ContextUserRole)
	fullName, _ := c.Get(middleware.ContextFullName)

	roleStr, _ := role.(string)
	fullNameStr, _ := fullName.(string)

	profile, err := h.resolve.Execute(c.Request.Context(), ucProfile.Identity{
		ID:       userID,
		FullName: fullNameStr,
		UserType: roleStr,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// --------- Requests ---------

type UpdateMeRequest struct {
	FullName      *string `json:"full_name,omitempty"`
	ContactNumber *string `json:"contact_number,omitempty"`
	Address       *string `json:"address,omitempty"`
	City          *string `json:"city,omitempty"`
	Bio           *string `json:"bio,omitempty"`
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid profile data.")
		return
	}

	profile, err := h.update.Execute(
		c.Request.Context(),
		userID,
		userID,
		ucProfile.UpdateProfilePatch{
			FullName:      req.FullName,
			ContactNumber: req.ContactNumber,
			Address:       req.Address,
			City:          req.City,
			Bio:           req.Bio,
		},
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
