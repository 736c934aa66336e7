// Package product manages the product catalog.
package product

import (
	"context"
	"slices"
	"strings"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/security"
	"stockbook/internal/core/tx"
	"stockbook/internal/domain"
	"stockbook/internal/domain/audit"
	"stockbook/internal/domain/store"
	"stockbook/pkg/logger"
)

// ListFilter narrows a product listing. Zero values match everything.
type ListFilter struct {
	Category string

	// Search matches a case-insensitive substring of the SKU or name
	Search string
}

// Service provides catalog operations.
type Service struct {
	txm   tx.Manager[*store.Document]
	audit *audit.Service
	hooks *domain.HookRegistry[*entity.Product]
}

// NewService creates a new product service.
func NewService(txm tx.Manager[*store.Document], auditSvc *audit.Service) *Service {
	svc := &Service{
		txm:   txm,
		audit: auditSvc,
		hooks: domain.NewHookRegistry[*entity.Product](),
	}

	svc.hooks.OnBeforeCreate(normalize)
	svc.hooks.OnBeforeCreate(checkUnique)
	svc.hooks.OnBeforeUpdate(normalize)

	return svc
}

// Hooks returns the hook registry for external registration.
func (s *Service) Hooks() *domain.HookRegistry[*entity.Product] {
	return s.hooks
}

func normalize(ctx context.Context, doc *store.Document, p *entity.Product) error {
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	return p.Validate(ctx)
}

func checkUnique(ctx context.Context, doc *store.Document, p *entity.Product) error {
	if _, exists := doc.Product(p.ID); exists {
		return apperror.NewDuplicate("product", "id", p.ID)
	}
	return nil
}

// Create adds a product to the catalog. The SKU must be unused.
func (s *Service) Create(ctx context.Context, actor security.Actor, p entity.Product) (entity.Product, error) {
	if err := security.Require(actor, security.ManageCatalog); err != nil {
		return entity.Product{}, err
	}

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context, doc *store.Document) error {
		if err := s.hooks.Run(ctx, domain.BeforeCreate, doc, &p); err != nil {
			return err
		}
		doc.Products = append(doc.Products, p)

		s.audit.Record(doc, actor, audit.Eventf("product.create", "product", p.ID,
			"%s added product %s (%s) at %s per piece", actor.Name, p.ID, p.Name, p.BasePrice.String()))
		return nil
	})
	if err != nil {
		return entity.Product{}, err
	}

	logger.Info(ctx, "product created", "id", p.ID)
	return p, nil
}

// Update replaces the editable fields of an existing product. The SKU
// cannot change.
func (s *Service) Update(ctx context.Context, actor security.Actor, p entity.Product) (entity.Product, error) {
	if err := security.Require(actor, security.ManageCatalog); err != nil {
		return entity.Product{}, err
	}

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context, doc *store.Document) error {
		if err := s.hooks.Run(ctx, domain.BeforeUpdate, doc, &p); err != nil {
			return err
		}
		existing, ok := doc.Product(p.ID)
		if !ok {
			return apperror.NewNotFound("product", p.ID)
		}
		*existing = p

		s.audit.Record(doc, actor, audit.Eventf("product.update", "product", p.ID,
			"%s updated product %s", actor.Name, p.ID))
		return nil
	})
	if err != nil {
		return entity.Product{}, err
	}

	logger.Info(ctx, "product updated", "id", p.ID)
	return p, nil
}

// Delete removes a product and its ledger entry. Orders, movements and
// waste entries that reference it are kept as history.
func (s *Service) Delete(ctx context.Context, actor security.Actor, productID string) error {
	if err := security.Require(actor, security.ManageCatalog); err != nil {
		return err
	}

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context, doc *store.Document) error {
		p, ok := doc.Product(productID)
		if !ok {
			return apperror.NewNotFound("product", productID)
		}
		deleted := *p
		if err := s.hooks.Run(ctx, domain.BeforeDelete, doc, &deleted); err != nil {
			return err
		}
		onHand := doc.Inventory[productID]
		doc.RemoveProduct(productID)

		s.audit.Record(doc, actor, audit.Eventf("product.delete", "product", productID,
			"%s deleted product %s (%s), clearing %d on hand", actor.Name, productID, deleted.Name, onHand))
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "product deleted", "id", productID)
	return nil
}

// Get returns one product.
func (s *Service) Get(ctx context.Context, actor security.Actor, productID string) (entity.Product, error) {
	if err := security.Require(actor, security.ViewAll); err != nil {
		return entity.Product{}, err
	}

	var out entity.Product
	err := s.txm.ReadOnly(ctx, func(ctx context.Context, doc *store.Document) error {
		p, ok := doc.Product(productID)
		if !ok {
			return apperror.NewNotFound("product", productID)
		}
		out = *p
		return nil
	})
	return out, err
}

// List returns matching products sorted by SKU.
func (s *Service) List(ctx context.Context, actor security.Actor, f ListFilter) ([]entity.Product, error) {
	if err := security.Require(actor, security.ViewAll); err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := []entity.Product{}
	err := s.txm.ReadOnly(ctx, func(ctx context.Context, doc *store.Document) error {
		for _, p := range doc.Products {
			if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
				continue
			}
			if search != "" &&
				!strings.Contains(strings.ToLower(p.ID), search) &&
				!strings.Contains(strings.ToLower(p.Name), search) {
				continue
			}
			out = append(out, p)
		}
		return nil
	})
	slices.SortFunc(out, func(a, b entity.Product) int { return strings.Compare(a.ID, b.ID) })
	return out, err
}
