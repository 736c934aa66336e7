package handlers

import (
	"github.com/gin-gonic/gin"

	"stockbook/internal/domain/registers/stock"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// InventoryHandler handles ledger endpoints: balances, adjustment and movements.
type InventoryHandler struct {
	*BaseHandler
	service *stock.Service
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(base *BaseHandler, service *stock.Service) *InventoryHandler {
	return &InventoryHandler{BaseHandler: base, service: service}
}

// Balances handles GET /inventory
func (h *InventoryHandler) Balances(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	balances, err := h.service.Balances(c.Request.Context(), actor)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(balances))
}

// Balance handles GET /inventory/:productId
func (h *InventoryHandler) Balance(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	balance, err := h.service.Balance(c.Request.Context(), actor, c.Param("productId"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, balance)
}

// Adjust handles POST /inventory/adjust
func (h *InventoryHandler) Adjust(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	var req dto.AdjustRequest
	if !h.BindJSON(c, &req) {
		return
	}

	movement, err := h.service.Adjust(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, movement)
}

// Movements handles GET /movements
func (h *InventoryHandler) Movements(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	var req dto.MovementListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	movements, err := h.service.Movements(c.Request.Context(), actor, req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(movements))
}
