// Package waste writes stock off as waste. Entries are created once and
// never change; there is no state machine.
package waste

import (
	"context"
	"strings"

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

// Input is a waste write-off request.
type Input struct {
	ProductID string
	Quantity  int64
	Reason    string
	Note      string

	// Confirm proceeds even when Quantity exceeds stock on hand
	Confirm bool
}

// Service provides the waste write-off operation.
type Service struct {
	txm   tx.Manager[*store.Document]
	ids   id.Source
	audit *audit.Service
}

// NewService creates a new waste service.
func NewService(txm tx.Manager[*store.Document], ids id.Source, auditSvc *audit.Service) *Service {
	return &Service{
		txm:   txm,
		ids:   ids,
		audit: auditSvc,
	}
}

// Log records a waste entry and removes its quantity from stock.
//
// When stock on hand is below the requested quantity the call fails with
// an InsufficientStockWarning unless in.Confirm is set; a confirmed
// write-off floors stock at zero while the WASTE movement keeps the full
// requested quantity.
func (s *Service) Log(ctx context.Context, actor security.Actor, in Input) (entity.WasteEntry, error) {
	if err := documents.Authorize(ctx, actor, "waste.log", security.LogWaste); err != nil {
		return entity.WasteEntry{}, err
	}

	reason := strings.TrimSpace(in.Reason)
	switch {
	case in.Quantity < 1:
		return entity.WasteEntry{}, apperror.NewFieldValidation("quantity", "quantity must be at least 1")
	case reason == "":
		return entity.WasteEntry{}, apperror.NewFieldValidation("reason", "reason is required")
	}

	var (
		created   entity.WasteEntry
		available int64
	)
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context, doc *store.Document) error {
		if _, ok := doc.Product(in.ProductID); !ok {
			return apperror.NewFieldValidation("productId", "product does not exist").
				WithDetail("product_id", in.ProductID)
		}

		available = stock.OnHand(doc, in.ProductID)
		short := available < in.Quantity
		if short && !in.Confirm {
			return apperror.NewInsufficientStockWarning(in.ProductID, in.Quantity, available)
		}

		created = entity.WasteEntry{
			ID:        s.ids.NewID(),
			At:        s.ids.Now(),
			ActorID:   actor.ID,
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			Reason:    reason,
			Note:      strings.TrimSpace(in.Note),
			Confirmed: short,
		}
		doc.Waste = append(doc.Waste, created)

		if _, err := stock.ApplyDelta(doc, in.ProductID, -in.Quantity, stock.NewMovement(s.ids, actor, stock.MovementSpec{
			Type:      entity.MovementWaste,
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			RefType:   entity.RefWaste,
			RefID:     created.ID,
			Note:      reason,
		})); err != nil {
			return err
		}

		s.audit.Record(doc, actor, audit.Eventf("waste.log", "waste", created.ID,
			"%s wrote off %d x %s as waste (%s)", actor.Name, in.Quantity, in.ProductID, reason))
		return nil
	})
	if err != nil {
		if apperror.IsCode(err, apperror.CodeInsufficientStockWarning) {
			logger.Warn(ctx, "waste exceeds stock on hand, confirmation required",
				"product_id", in.ProductID,
				"requested", in.Quantity,
				"available", available,
			)
		}
		return entity.WasteEntry{}, err
	}

	logger.Info(ctx, "waste logged",
		"id", created.ID,
		"product_id", created.ProductID,
		"quantity", created.Quantity,
		"confirmed", created.Confirmed,
	)
	return created, nil
}

// List returns waste entries for productID (all when empty), newest first.
func (s *Service) List(ctx context.Context, actor security.Actor, productID string) ([]entity.WasteEntry, error) {
	if err := security.Require(actor, security.ViewAll); err != nil {
		return nil, err
	}

	out := []entity.WasteEntry{}
	err := s.txm.ReadOnly(ctx, func(ctx context.Context, doc *store.Document) error {
		for i := len(doc.Waste) - 1; i >= 0; i-- {
			if productID == "" || doc.Waste[i].ProductID == productID {
				out = append(out, doc.Waste[i])
			}
		}
		return nil
	})
	return out, err
}
