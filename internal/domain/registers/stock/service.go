package stock

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/core/security"
	"stockbook/internal/core/tx"
	"stockbook/internal/domain/audit"
	"stockbook/internal/domain/store"
	"stockbook/pkg/logger"
)

// Service provides direct ledger operations: balances, the movement log
// and absolute adjustment.
type Service struct {
	txm   tx.Manager[*store.Document]
	ids   id.Source
	audit *audit.Service
}

// NewService creates a new stock service.
func NewService(txm tx.Manager[*store.Document], ids id.Source, auditSvc *audit.Service) *Service {
	return &Service{
		txm:   txm,
		ids:   ids,
		audit: auditSvc,
	}
}

// AdjustInput sets a product's on-hand quantity to an absolute value.
type AdjustInput struct {
	ProductID   string
	NewQuantity int64
	Reason      string
}

// Adjust sets the ledger entry to max(0, NewQuantity) and records an ADJUST
// movement whose magnitude is the absolute change.
func (s *Service) Adjust(ctx context.Context, actor security.Actor, in AdjustInput) (entity.Movement, error) {
	if err := security.Require(actor, security.AdjustInventory); err != nil {
		logger.Warn(ctx, "adjust denied", "actor_id", actor.ID, "role", actor.Role)
		return entity.Movement{}, err
	}

	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return entity.Movement{}, apperror.NewFieldValidation("reason", "reason is required")
	}

	var movement entity.Movement
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context, doc *store.Document) error {
		if _, ok := doc.Product(in.ProductID); !ok {
			return apperror.NewFieldValidation("productId", "product does not exist").
				WithDetail("product_id", in.ProductID)
		}

		target := max(0, in.NewQuantity)
		current := OnHand(doc, in.ProductID)
		delta := target - current

		m := NewMovement(s.ids, actor, MovementSpec{
			Type:      entity.MovementAdjust,
			ProductID: in.ProductID,
			Quantity:  abs(delta),
			RefType:   entity.RefAdjustment,
			RefID:     in.ProductID,
			Note:      fmt.Sprintf("%+d: %s", delta, reason),
		})
		if _, err := ApplyDelta(doc, in.ProductID, delta, m); err != nil {
			return err
		}
		movement = *m

		s.audit.Record(doc, actor, audit.Eventf("inventory.adjust", "product", in.ProductID,
			"%s adjusted %s from %d to %d (%s)", actor.Name, in.ProductID, current, target, reason))
		return nil
	})
	if err != nil {
		return entity.Movement{}, err
	}

	logger.Info(ctx, "inventory adjusted",
		"product_id", in.ProductID,
		"quantity", max(0, in.NewQuantity),
		"movement_id", movement.ID,
	)
	return movement, nil
}

// Balance returns the on-hand quantity of one product.
func (s *Service) Balance(ctx context.Context, actor security.Actor, productID string) (entity.StockBalance, error) {
	if err := security.Require(actor, security.ViewAll); err != nil {
		return entity.StockBalance{}, err
	}

	var out entity.StockBalance
	err := s.txm.ReadOnly(ctx, func(ctx context.Context, doc *store.Document) error {
		if _, ok := doc.Product(productID); !ok {
			return apperror.NewNotFound("product", productID)
		}
		out = entity.StockBalance{ProductID: productID, Quantity: OnHand(doc, productID)}
		return nil
	})
	return out, err
}

// Balances returns the on-hand quantity of every catalog product, sorted by SKU.
func (s *Service) Balances(ctx context.Context, actor security.Actor) ([]entity.StockBalance, error) {
	if err := security.Require(actor, security.ViewAll); err != nil {
		return nil, err
	}

	var out []entity.StockBalance
	err := s.txm.ReadOnly(ctx, func(ctx context.Context, doc *store.Document) error {
		out = Balances(doc)
		return nil
	})
	return out, err
}

// Balances lists every catalog product with its on-hand quantity, sorted by SKU.
func Balances(doc *store.Document) []entity.StockBalance {
	out := make([]entity.StockBalance, 0, len(doc.Products))
	for _, p := range doc.Products {
		out = append(out, entity.StockBalance{ProductID: p.ID, Quantity: OnHand(doc, p.ID)})
	}
	slices.SortFunc(out, func(a, b entity.StockBalance) int {
		return cmp.Compare(a.ProductID, b.ProductID)
	})
	return out
}

// MovementFilter narrows a movement listing. Zero values match everything.
type MovementFilter struct {
	ProductID string
	Type      entity.MovementType
	RefID     string
	Limit     int
}

func (f MovementFilter) match(m entity.Movement) bool {
	if f.ProductID != "" && m.ProductID != f.ProductID {
		return false
	}
	if f.Type != "" && m.Type != f.Type {
		return false
	}
	if f.RefID != "" && m.RefID != f.RefID {
		return false
	}
	return true
}

// Movements returns matching movements, newest first.
func (s *Service) Movements(ctx context.Context, actor security.Actor, f MovementFilter) ([]entity.Movement, error) {
	if err := security.Require(actor, security.ControlMovements); err != nil {
		return nil, err
	}

	var out []entity.Movement
	err := s.txm.ReadOnly(ctx, func(ctx context.Context, doc *store.Document) error {
		for i := len(doc.Movements) - 1; i >= 0; i-- {
			m := doc.Movements[i]
			if !f.match(m) {
				continue
			}
			out = append(out, m)
			if f.Limit > 0 && len(out) == f.Limit {
				break
			}
		}
		return nil
	})
	return out, err
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
