package handlers

import (
	"stockbook/internal/core/entity"
	"stockbook/internal/domain/documents/purchase_order"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// PurchaseOrderHandler handles purchase order endpoints.
type PurchaseOrderHandler struct {
	*BaseDocumentHandler[entity.PurchaseOrder, purchase_order.CreateInput, purchase_order.ListFilter,
		dto.CreatePurchaseOrderRequest, dto.DocumentListRequest, dto.PurchaseOrderResponse]
	service *purchase_order.Service
}

// NewPurchaseOrderHandler creates a new purchase order handler.
func NewPurchaseOrderHandler(base *BaseHandler, service *purchase_order.Service) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{
		BaseDocumentHandler: NewBaseDocumentHandler(base, BaseDocumentHandlerConfig[
			entity.PurchaseOrder, purchase_order.CreateInput, purchase_order.ListFilter,
			dto.CreatePurchaseOrderRequest, dto.DocumentListRequest, dto.PurchaseOrderResponse,
		]{
			Service:      service,
			MapCreateDTO: (*dto.CreatePurchaseOrderRequest).ToInput,
			MapListDTO:   (*dto.DocumentListRequest).ToPurchaseOrderFilter,
			MapToDTO:     dto.FromPurchaseOrder,
		}),
		service: service,
	}
}

// Receive returns the operation behind POST /purchase-orders/:id/receive.
func (h *PurchaseOrderHandler) Receive() TransitionFunc[entity.PurchaseOrder] {
	return h.service.Receive
}
