package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmarchuk/estatedesk/internal/logging"
	"github.com/dmarchuk/estatedesk/internal/server/services"
)

// ProfileHandler serves the authenticated user's own profile.
type ProfileHandler struct {
	profiles *services.ProfileService
	logger   logging.Logger
}

func NewProfileHandler(profiles *services.ProfileService, logger logging.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: logger}
}

type saveProfileRequest struct {
	Name    string `json:"name"`
	DOB     string `json:"dob"`
	Address string `json:"address"`
	Gender  string `json:"gender"`
}

func (h *ProfileHandler) Get(c *gin.Context) {
	p, err := h.profiles.Get(c.Request.Context(), identityFrom(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":    p.Name,
		"dob":     p.DOB,
		"address": p.Address,
		"gender":  p.Gender,
	})
}

func (h *ProfileHandler) Save(c *gin.Context) {
	var req saveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.profiles.Save(c.Request.Context(), identityFrom(c), req.Name, req.DOB, req.Address, req.Gender); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
