// Package purchase_order runs the supplier order workflow:
// DRAFT -> SUBMITTED -> RECEIVED, with VOID reachable from DRAFT and SUBMITTED.
package purchase_order

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

// CreateInput is a new purchase order request.
type CreateInput struct {
	Supplier string
	documents.LineInput
}

// ListFilter narrows a purchase order listing. Zero values match everything.
type ListFilter struct {
	Status    entity.PurchaseOrderStatus
	ProductID string
}

// Service provides business operations for purchase orders.
type Service struct {
	txm   tx.Manager[*store.Document]
	ids   id.Source
	audit *audit.Service
}

// NewService creates a new purchase order service.
func NewService(txm tx.Manager[*store.Document], ids id.Source, auditSvc *audit.Service) *Service {
	return &Service{
		txm:   txm,
		ids:   ids,
		audit: auditSvc,
	}
}

// Create validates and prices a new purchase order and stores it as DRAFT.
func (s *Service) Create(ctx context.Context, actor security.Actor, in CreateInput) (entity.PurchaseOrder, error) {
	if err := documents.Authorize(ctx, actor, "purchase_order.create", security.CreatePO); err != nil {
		return entity.PurchaseOrder{}, err
	}

	supplier, err := documents.RequireParty("supplier", in.Supplier)
	if err != nil {
		return entity.PurchaseOrder{}, err
	}
	if err := in.LineInput.Validate(); err != nil {
		return entity.PurchaseOrder{}, err
	}

	var created entity.PurchaseOrder
	err = s.txm.RunInTransaction(ctx, func(ctx context.Context, doc *store.Document) error {
		header, err := documents.Build(doc, s.ids, actor, documents.PrefixPurchaseOrder, in.LineInput)
		if err != nil {
			return err
		}

		created = entity.PurchaseOrder{
			Document: header,
			Status:   entity.PurchaseOrderDraft,
			Supplier: supplier,
		}
		doc.PurchaseOrders = append(doc.PurchaseOrders, created)

		s.audit.Record(doc, actor, audit.Eventf("purchase_order.create", "purchase_order", created.ID,
			"%s created purchase order %s with %s: %d x %s at %s = %s",
			actor.Name, created.Number, supplier, created.Quantity, created.ProductID,
			created.UnitPriceFinal.String(), created.TotalAmount.String()))
		return nil
	})
	if err != nil {
		return entity.PurchaseOrder{}, err
	}

	logger.Info(ctx, "purchase order created",
		"id", created.ID,
		"number", created.Number,
		"total", created.TotalAmount.String(),
	)
	return created, nil
}

// Submit moves a DRAFT purchase order to SUBMITTED.
func (s *Service) Submit(ctx context.Context, actor security.Actor, poID string) (entity.PurchaseOrder, error) {
	if err := documents.Authorize(ctx, actor, "purchase_order.submit", security.CreatePO); err != nil {
		return entity.PurchaseOrder{}, err
	}
	return s.transition(ctx, actor, poID, entity.OpSubmit, nil)
}

// Receive adds the purchase order quantity to stock and marks it RECEIVED.
// Receiving always succeeds for a SUBMITTED purchase order.
func (s *Service) Receive(ctx context.Context, actor security.Actor, poID string) (entity.PurchaseOrder, error) {
	if err := documents.Authorize(ctx, actor, "purchase_order.receive", security.ReceivePO); err != nil {
		return entity.PurchaseOrder{}, err
	}

	return s.transition(ctx, actor, poID, entity.OpReceive, func(doc *store.Document, p *entity.PurchaseOrder) error {
		_, err := stock.ApplyDelta(doc, p.ProductID, p.Quantity, stock.NewMovement(s.ids, actor, stock.MovementSpec{
			Type:      entity.MovementIn,
			ProductID: p.ProductID,
			Quantity:  p.Quantity,
			RefType:   entity.RefPurchaseOrder,
			RefID:     p.ID,
			Note:      "Received " + p.Number + " from " + p.Supplier,
		}))
		return err
	})
}

// Void cancels a DRAFT or SUBMITTED purchase order. It never touches stock.
func (s *Service) Void(ctx context.Context, actor security.Actor, poID string) (entity.PurchaseOrder, error) {
	if err := documents.Authorize(ctx, actor, "purchase_order.void", security.CreatePO, security.ReceivePO); err != nil {
		return entity.PurchaseOrder{}, err
	}
	return s.transition(ctx, actor, poID, entity.OpVoid, nil)
}

func (s *Service) transition(
	ctx context.Context,
	actor security.Actor,
	poID string,
	op entity.Operation,
	effect func(doc *store.Document, p *entity.PurchaseOrder) error,
) (entity.PurchaseOrder, error) {
	var updated entity.PurchaseOrder
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context, doc *store.Document) error {
		p, ok := doc.PurchaseOrder(poID)
		if !ok {
			return apperror.NewNotFound("purchase order", poID)
		}
		if err := p.CanApply(op); err != nil {
			return err
		}

		if effect != nil {
			if err := effect(doc, p); err != nil {
				return err
			}
		}

		from := p.Status
		if err := p.Apply(op, s.ids.Now()); err != nil {
			return err
		}
		updated = *p

		s.audit.Record(doc, actor, audit.Eventf("purchase_order."+string(op), "purchase_order", p.ID,
			"%s moved purchase order %s from %s to %s", actor.Name, p.Number, from, p.Status))
		return nil
	})
	if err != nil {
		return entity.PurchaseOrder{}, err
	}

	logger.Info(ctx, "purchase order "+string(op),
		"id", updated.ID,
		"number", updated.Number,
		"status", updated.Status,
	)
	return updated, nil
}

// Get returns one purchase order.
func (s *Service) Get(ctx context.Context, actor security.Actor, poID string) (entity.PurchaseOrder, error) {
	if err := security.Require(actor, security.ViewAll); err != nil {
		return entity.PurchaseOrder{}, err
	}

	var out entity.PurchaseOrder
	err := s.txm.ReadOnly(ctx, func(ctx context.Context, doc *store.Document) error {
		p, ok := doc.PurchaseOrder(poID)
		if !ok {
			return apperror.NewNotFound("purchase order", poID)
		}
		out = *p
		return nil
	})
	return out, err
}

// List returns matching purchase orders newest first.
func (s *Service) List(ctx context.Context, actor security.Actor, f ListFilter) ([]entity.PurchaseOrder, error) {
	if err := security.Require(actor, security.ViewAll); err != nil {
		return nil, err
	}

	out := []entity.PurchaseOrder{}
	err := s.txm.ReadOnly(ctx, func(ctx context.Context, doc *store.Document) error {
		for i := len(doc.PurchaseOrders) - 1; i >= 0; i-- {
			p := doc.PurchaseOrders[i]
			if f.Status != "" && p.Status != f.Status {
				continue
			}
			if f.ProductID != "" && p.ProductID != f.ProductID {
				continue
			}
			out = append(out, p)
		}
		return nil
	})
	return out, err
}
