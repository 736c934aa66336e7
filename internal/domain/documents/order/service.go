// Package order runs the customer order workflow:
// DRAFT -> SUBMITTED -> SHIPPED, with VOID reachable from DRAFT and SUBMITTED.
package order

import (
	"context"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/core/security"
	"stockbook/internal/core/tx"
	"stockbook/internal/domain/audit"
	"stockbook/internal/domain/documents"
	"stockbook/internal/domain/registers/stock"
	"stockbook/internal/domain/store"
	"stockbook/pkg/logger"
)

// CreateInput is a new order request.
type CreateInput struct {
	Customer string
	documents.LineInput
}

// ListFilter narrows an order listing. Zero values match everything.
type ListFilter struct {
	Status    entity.OrderStatus
	ProductID string
}

// Service provides business operations for customer orders.
type Service struct {
	txm   tx.Manager[*store.Document]
	ids   id.Source
	audit *audit.Service
}

// NewService creates a new order service.
func NewService(txm tx.Manager[*store.Document], ids id.Source, auditSvc *audit.Service) *Service {
	return &Service{
		txm:   txm,
		ids:   ids,
		audit: auditSvc,
	}
}

// Create validates and prices a new order and stores it as DRAFT.
func (s *Service) Create(ctx context.Context, actor security.Actor, in CreateInput) (entity.Order, error) {
	if err := documents.Authorize(ctx, actor, "order.create", security.CreateOrder); err != nil {
		return entity.Order{}, err
	}

	customer, err := documents.RequireParty("customer", in.Customer)
	if err != nil {
		return entity.Order{}, err
	}
	if err := in.LineInput.Validate(); err != nil {
		return entity.Order{}, err
	}

	var created entity.Order
	err = s.txm.RunInTransaction(ctx, func(ctx context.Context, doc *store.Document) error {
		header, err := documents.Build(doc, s.ids, actor, documents.PrefixOrder, in.LineInput)
		if err != nil {
			return err
		}

		created = entity.Order{
			Document: header,
			Status:   entity.OrderDraft,
			Customer: customer,
		}
		doc.Orders = append(doc.Orders, created)

		s.audit.Record(doc, actor, audit.Eventf("order.create", "order", created.ID,
			"%s created order %s for %s: %d x %s at %s = %s",
			actor.Name, created.Number, customer, created.Quantity, created.ProductID,
			created.UnitPriceFinal.String(), created.TotalAmount.String()))
		return nil
	})
	if err != nil {
		return entity.Order{}, err
	}

	logger.Info(ctx, "order created",
		"id", created.ID,
		"number", created.Number,
		"total", created.TotalAmount.String(),
	)
	return created, nil
}

// Submit moves a DRAFT order to SUBMITTED.
func (s *Service) Submit(ctx context.Context, actor security.Actor, orderID string) (entity.Order, error) {
	if err := documents.Authorize(ctx, actor, "order.submit", security.CreateOrder); err != nil {
		return entity.Order{}, err
	}
	return s.transition(ctx, actor, orderID, entity.OpSubmit, nil)
}

// Ship removes the order quantity from stock and marks the order SHIPPED.
// Shipping more than is on hand is refused.
func (s *Service) Ship(ctx context.Context, actor security.Actor, orderID string) (entity.Order, error) {
	if err := documents.Authorize(ctx, actor, "order.ship", security.ShipOrder); err != nil {
		return entity.Order{}, err
	}

	return s.transition(ctx, actor, orderID, entity.OpShip, func(doc *store.Document, o *entity.Order) error {
		available := stock.OnHand(doc, o.ProductID)
		if available < o.Quantity {
			logger.Warn(ctx, "ship blocked by insufficient stock",
				"order_id", o.ID,
				"requested", o.Quantity,
				"available", available,
			)
			return apperror.NewInsufficientStock(o.ProductID, o.Quantity, available)
		}

		_, err := stock.ApplyDelta(doc, o.ProductID, -o.Quantity, stock.NewMovement(s.ids, actor, stock.MovementSpec{
			Type:      entity.MovementOut,
			ProductID: o.ProductID,
			Quantity:  o.Quantity,
			RefType:   entity.RefOrder,
			RefID:     o.ID,
			Note:      "Shipped " + o.Number + " to " + o.Customer,
		}))
		return err
	})
}

// Void cancels a DRAFT or SUBMITTED order. It never touches stock.
func (s *Service) Void(ctx context.Context, actor security.Actor, orderID string) (entity.Order, error) {
	if err := documents.Authorize(ctx, actor, "order.void", security.CreateOrder, security.ShipOrder); err != nil {
		return entity.Order{}, err
	}
	return s.transition(ctx, actor, orderID, entity.OpVoid, nil)
}

// transition applies op to one order inside a transaction. effect runs
// after the state check and before the status changes.
func (s *Service) transition(
	ctx context.Context,
	actor security.Actor,
	orderID string,
	op entity.Operation,
	effect func(doc *store.Document, o *entity.Order) error,
) (entity.Order, error) {
	var updated entity.Order
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context, doc *store.Document) error {
		o, ok := doc.Order(orderID)
		if !ok {
			return apperror.NewNotFound("order", orderID)
		}
		if err := o.CanApply(op); err != nil {
			return err
		}

		if effect != nil {
			if err := effect(doc, o); err != nil {
				return err
			}
		}

		from := o.Status
		if err := o.Apply(op, s.ids.Now()); err != nil {
			return err
		}
		updated = *o

		s.audit.Record(doc, actor, audit.Eventf("order."+string(op), "order", o.ID,
			"%s moved order %s from %s to %s", actor.Name, o.Number, from, o.Status))
		return nil
	})
	if err != nil {
		return entity.Order{}, err
	}

	logger.Info(ctx, "order "+string(op),
		"id", updated.ID,
		"number", updated.Number,
		"status", updated.Status,
	)
	return updated, nil
}

// Get returns one order.
func (s *Service) Get(ctx context.Context, actor security.Actor, orderID string) (entity.Order, error) {
	if err := security.Require(actor, security.ViewAll); err != nil {
		return entity.Order{}, err
	}

	var out entity.Order
	err := s.txm.ReadOnly(ctx, func(ctx context.Context, doc *store.Document) error {
		o, ok := doc.Order(orderID)
		if !ok {
			return apperror.NewNotFound("order", orderID)
		}
		out = *o
		return nil
	})
	return out, err
}

// List returns matching orders newest first.
func (s *Service) List(ctx context.Context, actor security.Actor, f ListFilter) ([]entity.Order, error) {
	if err := security.Require(actor, security.ViewAll); err != nil {
		return nil, err
	}

	out := []entity.Order{}
	err := s.txm.ReadOnly(ctx, func(ctx context.Context, doc *store.Document) error {
		for i := len(doc.Orders) - 1; i >= 0; i-- {
			o := doc.Orders[i]
			if f.Status != "" && o.Status != f.Status {
				continue
			}
			if f.ProductID != "" && o.ProductID != f.ProductID {
				continue
			}
			out = append(out, o)
		}
		return nil
	})
	return out, err
}
