// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"stockbook/internal/core/id"
	"stockbook/internal/domain/audit"
	"stockbook/internal/domain/auth"
	"stockbook/internal/domain/catalogs/product"
	"stockbook/internal/domain/documents/order"
	"stockbook/internal/domain/documents/purchase_order"
	"stockbook/internal/domain/documents/waste"
	"stockbook/internal/domain/registers/stock"
	"stockbook/internal/domain/reports"
	"stockbook/internal/domain/store"
	"stockbook/internal/infrastructure/http/v1/handlers"
	"stockbook/internal/infrastructure/http/v1/middleware"
	"stockbook/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Session owns the ledger document; every service commits through it
	Session *store.Session

	// IDs stamps new entities
	IDs id.Source

	// JWT signs and validates bearer tokens
	JWT *auth.JWTService

	// Logger for request logging
	Logger *logger.Logger

	// Pinger checks the storage backend for readiness; nil skips the check
	Pinger handlers.Pinger

	// StorageDriver and Version are reported by /health/info
	StorageDriver string
	Version       string

	// Debug runs gin in debug mode
	Debug bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())
	router.NoRoute(middleware.NotFound())

	healthHandler := handlers.NewHealthHandler(cfg.Session, cfg.Pinger, cfg.StorageDriver, cfg.Version)
	router.GET("/health", healthHandler.Ready)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	services := newServices(cfg)
	authMiddleware := middleware.Auth(services.auth)

	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, services, authMiddleware)

		protected := v1.Group("")
		protected.Use(authMiddleware)

		registerCatalogRoutes(protected, services)
		registerInventoryRoutes(protected, services)
		registerDocumentRoutes(protected, services)
		registerReportRoutes(protected, services)
	}

	return router
}

type services struct {
	auth           *auth.Service
	audit          *audit.Service
	products       *product.Service
	stock          *stock.Service
	orders         *order.Service
	purchaseOrders *purchase_order.Service
	waste          *waste.Service
	reports        *reports.Service
}

func newServices(cfg RouterConfig) services {
	auditSvc := audit.NewService(cfg.Session, cfg.IDs)
	return services{
		auth:           auth.NewService(cfg.Session, cfg.JWT),
		audit:          auditSvc,
		products:       product.NewService(cfg.Session, auditSvc),
		stock:          stock.NewService(cfg.Session, cfg.IDs, auditSvc),
		orders:         order.NewService(cfg.Session, cfg.IDs, auditSvc),
		purchaseOrders: purchase_order.NewService(cfg.Session, cfg.IDs, auditSvc),
		waste:          waste.NewService(cfg.Session, cfg.IDs, auditSvc),
		reports:        reports.NewService(cfg.Session, cfg.IDs),
	}
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, svc services, authMiddleware gin.HandlerFunc) {
	authHandler := handlers.NewAuthHandler(handlers.NewBaseHandler(), svc.auth)

	public := rg.Group("/auth")
	protected := rg.Group("/auth")
	protected.Use(authMiddleware)

	authHandler.RegisterRoutes(public, protected)
}

// registerCatalogRoutes registers product catalog endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, svc services) {
	handler := handlers.NewProductHandler(handlers.NewBaseHandler(), svc.products)

	products := rg.Group("/products")
	products.GET("", handler.List)
	products.POST("", handler.Create)
	products.GET("/:id", handler.Get)
	products.PUT("/:id", handler.Update)
	products.DELETE("/:id", handler.Delete)
}

// registerInventoryRoutes registers ledger, waste and audit endpoints.
func registerInventoryRoutes(rg *gin.RouterGroup, svc services) {
	base := handlers.NewBaseHandler()

	inventory := handlers.NewInventoryHandler(base, svc.stock)
	rg.GET("/inventory", inventory.Balances)
	rg.GET("/inventory/:productId", inventory.Balance)
	rg.POST("/inventory/adjust", inventory.Adjust)
	rg.GET("/movements", inventory.Movements)

	wasteHandler := handlers.NewWasteHandler(base, svc.waste)
	rg.GET("/waste", wasteHandler.List)
	rg.POST("/waste", wasteHandler.Log)

	auditHandler := handlers.NewAuditHandler(base, svc.audit)
	rg.GET("/audit", auditHandler.Last)
}

// registerDocumentRoutes registers order and purchase order endpoints.
func registerDocumentRoutes(rg *gin.RouterGroup, svc services) {
	base := handlers.NewBaseHandler()

	orders := handlers.NewOrderHandler(base, svc.orders)
	RegisterDocumentRoutes(rg.Group("/orders"), orders, map[string]gin.HandlerFunc{
		"ship": orders.Transition(orders.Ship()),
	})

	purchaseOrders := handlers.NewPurchaseOrderHandler(base, svc.purchaseOrders)
	RegisterDocumentRoutes(rg.Group("/purchase-orders"), purchaseOrders, map[string]gin.HandlerFunc{
		"receive": purchaseOrders.Transition(purchaseOrders.Receive()),
	})
}

// registerReportRoutes registers report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, svc services) {
	handler := handlers.NewReportsHandler(handlers.NewBaseHandler(), svc.reports)

	reportsGroup := rg.Group("/reports")
	reportsGroup.GET("/summary", handler.Summary)
	reportsGroup.GET("/stock-balance", handler.StockBalance)
}
