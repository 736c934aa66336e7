package handlers

import (
	"github.com/gin-gonic/gin"

	"stockbook/internal/domain/audit"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// DefaultAuditLimit is how many entries GET /audit returns without ?last.
const DefaultAuditLimit = 50

// AuditHandler serves the audit trail.
type AuditHandler struct {
	*BaseHandler
	service *audit.Service
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(base *BaseHandler, service *audit.Service) *AuditHandler {
	return &AuditHandler{BaseHandler: base, service: service}
}

// Last handles GET /audit?last=N. last=0 returns the whole trail.
func (h *AuditHandler) Last(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	entries, err := h.service.Last(c.Request.Context(), actor, h.ParseIntQuery(c, "last", DefaultAuditLimit))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(entries))
}
