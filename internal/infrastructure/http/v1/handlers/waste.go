package handlers

import (
	"github.com/gin-gonic/gin"

	"stockbook/internal/domain/documents/waste"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// WasteHandler handles waste write-off endpoints.
type WasteHandler struct {
	*BaseHandler
	service *waste.Service
}

// NewWasteHandler creates a new waste handler.
func NewWasteHandler(base *BaseHandler, service *waste.Service) *WasteHandler {
	return &WasteHandler{BaseHandler: base, service: service}
}

// Log handles POST /waste. A shortfall answers 409 until the request is
// repeated with confirm=true.
func (h *WasteHandler) Log(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	var req dto.LogWasteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry, err := h.service.Log(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, entry)
}

// List handles GET /waste
func (h *WasteHandler) List(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	entries, err := h.service.List(c.Request.Context(), actor, c.Query("productId"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(entries))
}
