package handlers

import (
	"github.com/gin-gonic/gin"

	"stockbook/internal/domain/reports"
)

// ReportsHandler handles HTTP requests for reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{BaseHandler: base, service: service}
}

// Summary handles GET /reports/summary
func (h *ReportsHandler) Summary(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), actor)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, summary)
}

// StockBalance handles GET /reports/stock-balance
func (h *ReportsHandler) StockBalance(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	report, err := h.service.GetStockBalance(c.Request.Context(), actor)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}
