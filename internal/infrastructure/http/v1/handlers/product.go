package handlers

import (
	"github.com/gin-gonic/gin"

	"stockbook/internal/core/entity"
	"stockbook/internal/domain/catalogs/product"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// ProductHandler handles catalog endpoints.
type ProductHandler struct {
	*BaseHandler
	service *product.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(base *BaseHandler, service *product.Service) *ProductHandler {
	return &ProductHandler{BaseHandler: base, service: service}
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	var req dto.ProductListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	items, err := h.service.List(c.Request.Context(), actor, req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(items))
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.Create(c.Request.Context(), actor, req.ToEntity())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, p)
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	p, err := h.service.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, p)
}

// Update handles PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	existing, err := h.service.Get(ctx, actor, c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	req.ApplyTo(&existing)

	var updated entity.Product
	if updated, err = h.service.Update(ctx, actor, existing); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, updated)
}

// Delete handles DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
