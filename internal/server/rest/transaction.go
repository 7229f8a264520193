package rest

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/dmarchuk/estatedesk/internal/common"
	"github.com/dmarchuk/estatedesk/internal/logging"
	"github.com/dmarchuk/estatedesk/internal/server/services"
)

const dateLayout = "2006-01-02"

// TransactionHandler serves the ledger: recording, rental-gated mutation,
// the detailed list, and the per-client order history.
type TransactionHandler struct {
	transactions *services.TransactionService
	logger       logging.Logger
}

func NewTransactionHandler(transactions *services.TransactionService, logger logging.Logger) *TransactionHandler {
	return &TransactionHandler{transactions: transactions, logger: logger}
}

type recordTransactionRequest struct {
	PropertyID int64  `json:"property_id"`
	Type       string `json:"type"`
	Amount     string `json:"amount"`
	Date       string `json:"date"`
}

type updateTransactionRequest struct {
	Amount string `json:"amount"`
	Date   string `json:"date"`
}

// parseAmount turns the submitted amount string into a decimal, mapping
// malformed input to ErrValidation.
func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: amount must be a number", common.ErrValidation)
	}
	return amount, nil
}

// parseDate accepts an empty date (meaning "unset") or YYYY-MM-DD.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", common.ErrValidation)
	}
	return d, nil
}

func (h *TransactionHandler) Record(c *gin.Context) {
	var req recordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	id, err := h.transactions.Record(c.Request.Context(), req.PropertyID, req.Type, amount, date, identityFrom(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *TransactionHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, h.logger, fmt.Errorf("%w: invalid transaction id", common.ErrValidation))
		return
	}

	var req updateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	if err := h.transactions.Update(c.Request.Context(), id, amount, date); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, h.logger, fmt.Errorf("%w: invalid transaction id", common.ErrValidation))
		return
	}

	if err := h.transactions.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TransactionHandler) List(c *gin.Context) {
	list, err := h.transactions.ListDetailed(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	out := make([]gin.H, 0, len(list))
	for _, t := range list {
		out = append(out, gin.H{
			"id":            t.ID,
			"property_id":   t.PropertyID,
			"property_name": t.PropertyName,
			"client_id":     t.ClientID,
			"client_name":   t.ClientName,
			"type":          t.Type,
			"amount":        t.Amount.String(),
			"date":          t.Date.Format(dateLayout),
		})
	}
	c.JSON(http.StatusOK, gin.H{"transactions": out})
}

// Orders returns the acting identity's transaction history, keyed by
// client name, together with the exact total spent.
func (h *TransactionHandler) Orders(c *gin.Context) {
	identity := identityFrom(c)

	list, err := h.transactions.ListForClientByName(c.Request.Context(), identity.Name)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	out := make([]gin.H, 0, len(list))
	for _, t := range list {
		out = append(out, gin.H{
			"id":            t.ID,
			"property_name": t.PropertyName,
			"type":          t.Type,
			"amount":        t.Amount.String(),
			"date":          t.Date.Format(dateLayout),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": out,
		"total":  services.TotalFor(list).String(),
	})
}
