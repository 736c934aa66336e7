package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"stockbook/internal/core/security"
)

// DocumentService is what orders and purchase orders expose to HTTP.
type DocumentService[T, In, F any] interface {
	Create(ctx context.Context, actor security.Actor, in In) (T, error)
	Get(ctx context.Context, actor security.Actor, id string) (T, error)
	List(ctx context.Context, actor security.Actor, f F) ([]T, error)
	Submit(ctx context.Context, actor security.Actor, id string) (T, error)
	Void(ctx context.Context, actor security.Actor, id string) (T, error)
}

// TransitionFunc moves a document by id.
type TransitionFunc[T any] func(ctx context.Context, actor security.Actor, id string) (T, error)

// BaseDocumentHandler provides generic HTTP handlers for workflow documents.
type BaseDocumentHandler[T, In, F, CreateDTO, ListDTO, Resp any] struct {
	*BaseHandler
	service DocumentService[T, In, F]

	mapCreateDTO func(dto *CreateDTO) In
	mapListDTO   func(dto *ListDTO) F
	mapToDTO     func(entity T) Resp
}

// BaseDocumentHandlerConfig configures the document handler.
type BaseDocumentHandlerConfig[T, In, F, CreateDTO, ListDTO, Resp any] struct {
	Service      DocumentService[T, In, F]
	MapCreateDTO func(dto *CreateDTO) In
	MapListDTO   func(dto *ListDTO) F
	MapToDTO     func(entity T) Resp
}

// NewBaseDocumentHandler creates a new base document handler.
func NewBaseDocumentHandler[T, In, F, CreateDTO, ListDTO, Resp any](
	base *BaseHandler,
	cfg BaseDocumentHandlerConfig[T, In, F, CreateDTO, ListDTO, Resp],
) *BaseDocumentHandler[T, In, F, CreateDTO, ListDTO, Resp] {
	return &BaseDocumentHandler[T, In, F, CreateDTO, ListDTO, Resp]{
		BaseHandler:  base,
		service:      cfg.Service,
		mapCreateDTO: cfg.MapCreateDTO,
		mapListDTO:   cfg.MapListDTO,
		mapToDTO:     cfg.MapToDTO,
	}
}

// List handles GET /{documents}
func (h *BaseDocumentHandler[T, In, F, CreateDTO, ListDTO, Resp]) List(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	var req ListDTO
	if !h.BindQuery(c, &req) {
		return
	}

	items, err := h.service.List(c.Request.Context(), actor, h.mapListDTO(&req))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dtoList(items, h.mapToDTO))
}

// Create handles POST /{documents}
func (h *BaseDocumentHandler[T, In, F, CreateDTO, ListDTO, Resp]) Create(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	var req CreateDTO
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.Create(c.Request.Context(), actor, h.mapCreateDTO(&req))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, h.mapToDTO(doc))
}

// Get handles GET /{documents}/:id
func (h *BaseDocumentHandler[T, In, F, CreateDTO, ListDTO, Resp]) Get(c *gin.Context) {
	h.Transition(h.service.Get)(c)
}

// Submit handles POST /{documents}/:id/submit
func (h *BaseDocumentHandler[T, In, F, CreateDTO, ListDTO, Resp]) Submit(c *gin.Context) {
	h.Transition(h.service.Submit)(c)
}

// Void handles POST /{documents}/:id/void
func (h *BaseDocumentHandler[T, In, F, CreateDTO, ListDTO, Resp]) Void(c *gin.Context) {
	h.Transition(h.service.Void)(c)
}

// Transition adapts a by-id operation, such as ship or receive, to a handler.
func (h *BaseDocumentHandler[T, In, F, CreateDTO, ListDTO, Resp]) Transition(fn TransitionFunc[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := h.Actor(c)
		if !ok {
			return
		}

		doc, err := fn(c.Request.Context(), actor, c.Param("id"))
		if err != nil {
			h.Error(c, err)
			return
		}
		h.OK(c, h.mapToDTO(doc))
	}
}
