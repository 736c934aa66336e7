package v1

import (
	"github.com/gin-gonic/gin"
)

// DocumentRouteHandler defines the routes every workflow document has.
type DocumentRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Submit(c *gin.Context)
	Void(c *gin.Context)
}

// RegisterDocumentRoutes registers list/create/get plus the submit and void
// transitions for a document, then any extra transitions by name.
//
// Usage:
//
//	handler := handlers.NewOrderHandler(baseHandler, orderService)
//	RegisterDocumentRoutes(protected.Group("/orders"), handler,
//		map[string]gin.HandlerFunc{"ship": handler.Transition(handler.Ship())})
func RegisterDocumentRoutes(group *gin.RouterGroup, handler DocumentRouteHandler, transitions map[string]gin.HandlerFunc) {
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.GET("/:id", handler.Get)
	group.POST("/:id/submit", handler.Submit)
	group.POST("/:id/void", handler.Void)

	for name, h := range transitions {
		group.POST("/:id/"+name, h)
	}
}
