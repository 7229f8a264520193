package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmarchuk/estatedesk/internal/logging"
	"github.com/dmarchuk/estatedesk/internal/server/services"
)

// TrendHandler serves the public per-property sale/rental counts.
type TrendHandler struct {
	trends *services.TrendService
	logger logging.Logger
}

func NewTrendHandler(trends *services.TrendService, logger logging.Logger) *TrendHandler {
	return &TrendHandler{trends: trends, logger: logger}
}

func (h *TrendHandler) List(c *gin.Context) {
	list, err := h.trends.Compute(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	out := make([]gin.H, 0, len(list))
	for _, t := range list {
		out = append(out, gin.H{
			"property_name": t.PropertyName,
			"location":      t.Location,
			"times_sold":    t.TimesSold,
			"times_rented":  t.TimesRented,
		})
	}
	c.JSON(http.StatusOK, gin.H{"trends": out})
}
