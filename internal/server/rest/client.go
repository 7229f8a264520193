package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dmarchuk/estatedesk/internal/common"
	"github.com/dmarchuk/estatedesk/internal/logging"
	"github.com/dmarchuk/estatedesk/internal/server/services"
)

// ClientHandler serves the registry's admin views: listing and delete.
type ClientHandler struct {
	clients *services.ClientService
	logger  logging.Logger
}

func NewClientHandler(clients *services.ClientService, logger logging.Logger) *ClientHandler {
	return &ClientHandler{clients: clients, logger: logger}
}

func (h *ClientHandler) List(c *gin.Context) {
	list, err := h.clients.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	out := make([]gin.H, 0, len(list))
	for _, cl := range list {
		out = append(out, gin.H{
			"id":        cl.ID,
			"name":      cl.Name,
			"email":     cl.Email,
			"phone":     cl.Phone,
			"inquiries": cl.Inquiries,
		})
	}
	c.JSON(http.StatusOK, gin.H{"clients": out})
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, h.logger, fmt.Errorf("%w: invalid client id", common.ErrValidation))
		return
	}

	if err := h.clients.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
