package dto

import (
	"time"

	"stockbook/internal/core/entity"
	"stockbook/internal/core/types"
	"stockbook/internal/domain/documents"
	"stockbook/internal/domain/documents/order"
	"stockbook/internal/domain/documents/purchase_order"
)

// --- Request DTOs ---

// LineRequest is the product, quantity and pricing part of a create request.
type LineRequest struct {
	Ref            string        `json:"ref,omitempty"`
	ProductID      string        `json:"productId" binding:"required"`
	Boxes          int64         `json:"boxes" binding:"gte=0"`
	Pieces         int64         `json:"pieces" binding:"gte=0"`
	DiscountPct    types.Percent `json:"discountPct"`
	OverridePrice  *types.Money  `json:"overridePrice,omitempty"`
	OverrideReason string        `json:"overrideReason,omitempty"`
}

func (r LineRequest) toInput() documents.LineInput {
	return documents.LineInput{
		Ref:            r.Ref,
		ProductID:      r.ProductID,
		Boxes:          r.Boxes,
		Pieces:         r.Pieces,
		DiscountPct:    r.DiscountPct,
		OverridePrice:  r.OverridePrice,
		OverrideReason: r.OverrideReason,
	}
}

// CreateOrderRequest creates a DRAFT customer order.
type CreateOrderRequest struct {
	Customer string `json:"customer" binding:"required"`
	LineRequest
}

// ToInput converts to domain input.
func (r *CreateOrderRequest) ToInput() order.CreateInput {
	return order.CreateInput{Customer: r.Customer, LineInput: r.LineRequest.toInput()}
}

// CreatePurchaseOrderRequest creates a DRAFT purchase order.
type CreatePurchaseOrderRequest struct {
	Supplier string `json:"supplier" binding:"required"`
	LineRequest
}

// ToInput converts to domain input.
func (r *CreatePurchaseOrderRequest) ToInput() purchase_order.CreateInput {
	return purchase_order.CreateInput{Supplier: r.Supplier, LineInput: r.LineRequest.toInput()}
}

// DocumentListRequest holds list query parameters shared by orders and purchase orders.
type DocumentListRequest struct {
	Status    string `form:"status"`
	ProductID string `form:"productId"`
}

// ToOrderFilter converts to the order filter.
func (r *DocumentListRequest) ToOrderFilter() order.ListFilter {
	return order.ListFilter{Status: entity.OrderStatus(r.Status), ProductID: r.ProductID}
}

// ToPurchaseOrderFilter converts to the purchase order filter.
func (r *DocumentListRequest) ToPurchaseOrderFilter() purchase_order.ListFilter {
	return purchase_order.ListFilter{Status: entity.PurchaseOrderStatus(r.Status), ProductID: r.ProductID}
}

// --- Response DTOs ---

// DocumentResponse holds the fields orders and purchase orders share.
type DocumentResponse struct {
	ID             string         `json:"id"`
	Number         string         `json:"number"`
	Ref            string         `json:"ref,omitempty"`
	Status         string         `json:"status"`
	ProductID      string         `json:"productId"`
	Boxes          int64          `json:"boxes"`
	Pieces         int64          `json:"pieces"`
	Quantity       int64          `json:"quantity"`
	Pricing        entity.Pricing `json:"pricing"`
	UnitPriceFinal types.Money    `json:"unitPriceFinal"`
	TotalAmount    types.Money    `json:"totalAmount"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	CreatedBy      string         `json:"createdBy"`
}

func fromDocument(d entity.Document, status string) DocumentResponse {
	return DocumentResponse{
		ID:             d.ID,
		Number:         d.Number,
		Ref:            d.Ref,
		Status:         status,
		ProductID:      d.ProductID,
		Boxes:          d.Boxes,
		Pieces:         d.Pieces,
		Quantity:       d.Quantity,
		Pricing:        d.Pricing,
		UnitPriceFinal: d.UnitPriceFinal,
		TotalAmount:    d.TotalAmount,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
		CreatedBy:      d.CreatedBy,
	}
}

// OrderResponse is a customer order.
type OrderResponse struct {
	DocumentResponse
	Customer  string     `json:"customer"`
	ShippedAt *time.Time `json:"shippedAt,omitempty"`
}

// FromOrder converts a domain order.
func FromOrder(o entity.Order) OrderResponse {
	return OrderResponse{
		DocumentResponse: fromDocument(o.Document, string(o.Status)),
		Customer:         o.Customer,
		ShippedAt:        o.ShippedAt,
	}
}

// PurchaseOrderResponse is a purchase order.
type PurchaseOrderResponse struct {
	DocumentResponse
	Supplier   string     `json:"supplier"`
	ReceivedAt *time.Time `json:"receivedAt,omitempty"`
}

// FromPurchaseOrder converts a domain purchase order.
func FromPurchaseOrder(p entity.PurchaseOrder) PurchaseOrderResponse {
	return PurchaseOrderResponse{
		DocumentResponse: fromDocument(p.Document, string(p.Status)),
		Supplier:         p.Supplier,
		ReceivedAt:       p.ReceivedAt,
	}
}
