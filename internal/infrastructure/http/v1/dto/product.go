package dto

import (
	"stockbook/internal/core/entity"
	"stockbook/internal/core/types"
	"stockbook/internal/domain/catalogs/product"
)

// CreateProductRequest adds a catalog product. ID is the SKU.
type CreateProductRequest struct {
	ID           string      `json:"id" binding:"required"`
	Name         string      `json:"name" binding:"required"`
	Category     string      `json:"category,omitempty"`
	PiecesPerBox int64       `json:"piecesPerBox" binding:"required,gte=1"`
	BasePrice    types.Money `json:"basePrice"`
}

// ToEntity converts to domain entity.
func (r *CreateProductRequest) ToEntity() entity.Product {
	return entity.Product{
		ID:           r.ID,
		Name:         r.Name,
		Category:     r.Category,
		PiecesPerBox: r.PiecesPerBox,
		BasePrice:    r.BasePrice,
	}
}

// UpdateProductRequest changes product fields; omitted fields keep their value.
type UpdateProductRequest struct {
	Name         *string      `json:"name,omitempty"`
	Category     *string      `json:"category,omitempty"`
	PiecesPerBox *int64       `json:"piecesPerBox,omitempty"`
	BasePrice    *types.Money `json:"basePrice,omitempty"`
}

// ApplyTo updates existing in place.
func (r *UpdateProductRequest) ApplyTo(existing *entity.Product) {
	if r.Name != nil {
		existing.Name = *r.Name
	}
	if r.Category != nil {
		existing.Category = *r.Category
	}
	if r.PiecesPerBox != nil {
		existing.PiecesPerBox = *r.PiecesPerBox
	}
	if r.BasePrice != nil {
		existing.BasePrice = *r.BasePrice
	}
}

// ProductListRequest holds product list query parameters.
type ProductListRequest struct {
	Category string `form:"category"`
	Search   string `form:"search"`
}

// ToFilter converts to domain filter.
func (r *ProductListRequest) ToFilter() product.ListFilter {
	return product.ListFilter{Category: r.Category, Search: r.Search}
}
