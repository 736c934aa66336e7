package handlers

import (
	"stockbook/internal/core/entity"
	"stockbook/internal/domain/documents/order"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// OrderHandler handles customer order endpoints.
type OrderHandler struct {
	*BaseDocumentHandler[entity.Order, order.CreateInput, order.ListFilter,
		dto.CreateOrderRequest, dto.DocumentListRequest, dto.OrderResponse]
	service *order.Service
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(base *BaseHandler, service *order.Service) *OrderHandler {
	return &OrderHandler{
		BaseDocumentHandler: NewBaseDocumentHandler(base, BaseDocumentHandlerConfig[
			entity.Order, order.CreateInput, order.ListFilter,
			dto.CreateOrderRequest, dto.DocumentListRequest, dto.OrderResponse,
		]{
			Service:      service,
			MapCreateDTO: (*dto.CreateOrderRequest).ToInput,
			MapListDTO:   (*dto.DocumentListRequest).ToOrderFilter,
			MapToDTO:     dto.FromOrder,
		}),
		service: service,
	}
}

// Ship returns the operation behind POST /orders/:id/ship.
func (h *OrderHandler) Ship() TransitionFunc[entity.Order] {
	return h.service.Ship
}
