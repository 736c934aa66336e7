package entity

import (
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/types"
)

// Pricing is the money snapshot frozen when an order or purchase order is created.
type Pricing struct {
	BasePrice       types.Money   `json:"basePrice"`
	DiscountPct     types.Percent `json:"discountPct"`
	DiscountedPrice types.Money   `json:"discountedPrice"`

	// OverridePrice replaces DiscountedPrice when set; OverrideReason is then required
	OverridePrice  *types.Money `json:"overridePrice"`
	OverrideReason string       `json:"overrideReason,omitempty"`
}

// Document holds the fields shared by orders and purchase orders.
type Document struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	Ref    string `json:"ref,omitempty"`

	ProductID string `json:"productId"`
	Boxes     int64  `json:"boxes"`
	Pieces    int64  `json:"pieces"`

	// Quantity is the total in pieces: Boxes*PiecesPerBox + Pieces
	Quantity int64 `json:"quantity"`

	Pricing        Pricing     `json:"pricing"`
	UnitPriceFinal types.Money `json:"unitPriceFinal"`
	TotalAmount    types.Money `json:"totalAmount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	CreatedBy string    `json:"createdBy"`
}

// Operation names a state transition.
type Operation string

const (
	OpSubmit  Operation = "submit"
	OpShip    Operation = "ship"
	OpReceive Operation = "receive"
	OpVoid    Operation = "void"
)

// Transition lists the statuses an operation may start from and the status it produces.
type Transition[S ~string] struct {
	From []S
	To   S
}

// Allows reports whether the transition may start from s.
func (t Transition[S]) Allows(s S) bool {
	for _, from := range t.From {
		if from == s {
			return true
		}
	}
	return false
}

// --- Orders ---

// OrderStatus is the lifecycle state of a customer order.
type OrderStatus string

const (
	OrderDraft     OrderStatus = "DRAFT"
	OrderSubmitted OrderStatus = "SUBMITTED"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderVoid      OrderStatus = "VOID"
)

// OrderStatuses lists order statuses in lifecycle order.
var OrderStatuses = []OrderStatus{OrderDraft, OrderSubmitted, OrderShipped, OrderVoid}

// SHIPPED and VOID are terminal: no transition starts from them.
var orderTransitions = map[Operation]Transition[OrderStatus]{
	OpSubmit: {From: []OrderStatus{OrderDraft}, To: OrderSubmitted},
	OpShip:   {From: []OrderStatus{OrderSubmitted}, To: OrderShipped},
	OpVoid:   {From: []OrderStatus{OrderDraft, OrderSubmitted}, To: OrderVoid},
}

// Order is an outbound customer order.
type Order struct {
	Document
	Status    OrderStatus `json:"status"`
	Customer  string      `json:"customer"`
	ShippedAt *time.Time  `json:"shippedAt,omitempty"`
}

// CanApply checks that op may run against the order's current status.
func (o *Order) CanApply(op Operation) error {
	t, ok := orderTransitions[op]
	if !ok || !t.Allows(o.Status) {
		return apperror.NewInvalidTransition("order", o.ID, string(o.Status), string(op))
	}
	return nil
}

// Apply moves the order through op, stamping timestamps.
func (o *Order) Apply(op Operation, at time.Time) error {
	if err := o.CanApply(op); err != nil {
		return err
	}
	o.Status = orderTransitions[op].To
	o.UpdatedAt = at
	if op == OpShip {
		shipped := at
		o.ShippedAt = &shipped
	}
	return nil
}

// IsTerminal reports whether no further transition is possible.
func (o *Order) IsTerminal() bool {
	return o.Status == OrderShipped || o.Status == OrderVoid
}

// --- Purchase orders ---

// PurchaseOrderStatus is the lifecycle state of a purchase order.
type PurchaseOrderStatus string

const (
	PurchaseOrderDraft     PurchaseOrderStatus = "DRAFT"
	PurchaseOrderSubmitted PurchaseOrderStatus = "SUBMITTED"
	PurchaseOrderReceived  PurchaseOrderStatus = "RECEIVED"
	PurchaseOrderVoid      PurchaseOrderStatus = "VOID"
)

// PurchaseOrderStatuses lists purchase order statuses in lifecycle order.
var PurchaseOrderStatuses = []PurchaseOrderStatus{
	PurchaseOrderDraft, PurchaseOrderSubmitted, PurchaseOrderReceived, PurchaseOrderVoid,
}

var purchaseOrderTransitions = map[Operation]Transition[PurchaseOrderStatus]{
	OpSubmit:  {From: []PurchaseOrderStatus{PurchaseOrderDraft}, To: PurchaseOrderSubmitted},
	OpReceive: {From: []PurchaseOrderStatus{PurchaseOrderSubmitted}, To: PurchaseOrderReceived},
	OpVoid:    {From: []PurchaseOrderStatus{PurchaseOrderDraft, PurchaseOrderSubmitted}, To: PurchaseOrderVoid},
}

// PurchaseOrder is an inbound order placed with a supplier.
type PurchaseOrder struct {
	Document
	Status     PurchaseOrderStatus `json:"status"`
	Supplier   string              `json:"supplier"`
	ReceivedAt *time.Time          `json:"receivedAt,omitempty"`
}

// CanApply checks that op may run against the purchase order's current status.
func (p *PurchaseOrder) CanApply(op Operation) error {
	t, ok := purchaseOrderTransitions[op]
	if !ok || !t.Allows(p.Status) {
		return apperror.NewInvalidTransition("purchase order", p.ID, string(p.Status), string(op))
	}
	return nil
}

// Apply moves the purchase order through op, stamping timestamps.
func (p *PurchaseOrder) Apply(op Operation, at time.Time) error {
	if err := p.CanApply(op); err != nil {
		return err
	}
	p.Status = purchaseOrderTransitions[op].To
	p.UpdatedAt = at
	if op == OpReceive {
		received := at
		p.ReceivedAt = &received
	}
	return nil
}

// IsTerminal reports whether no further transition is possible.
func (p *PurchaseOrder) IsTerminal() bool {
	return p.Status == PurchaseOrderReceived || p.Status == PurchaseOrderVoid
}
