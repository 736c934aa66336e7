package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"stockbook/internal/core/tx"
	"stockbook/internal/domain/store"
)

// Pinger checks an external dependency, such as the database pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	txm     tx.Manager[*store.Document]
	pinger  Pinger
	driver  string
	version string
}

// NewHealthHandler creates a new health handler. pinger may be nil.
func NewHealthHandler(txm tx.Manager[*store.Document], pinger Pinger, driver, version string) *HealthHandler {
	return &HealthHandler{txm: txm, pinger: pinger, driver: driver, version: version}
}

// Live handles liveness probe (is the process alive?).
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready handles readiness probe: the document is loaded and storage answers.
// GET /health and GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx := c.Request.Context()
	checks := map[string]string{}
	healthy := true

	var version int
	err := h.txm.ReadOnly(ctx, func(ctx context.Context, doc *store.Document) error {
		version = doc.Version
		return nil
	})
	if err != nil || version != store.SchemaVersion {
		checks["document"] = "unhealthy"
		healthy = false
	} else {
		checks["document"] = "healthy"
	}

	if h.pinger != nil {
		if err := h.pinger.Ping(ctx); err != nil {
			checks["storage"] = "unhealthy: " + err.Error()
			healthy = false
		} else {
			checks["storage"] = "healthy"
		}
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "checks": checks})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": checks})
}

// Info returns application information.
// GET /health/info
func (h *HealthHandler) Info(c *gin.Context) {
	var counts gin.H
	_ = h.txm.ReadOnly(c.Request.Context(), func(ctx context.Context, doc *store.Document) error {
		counts = gin.H{
			"products":        len(doc.Products),
			"orders":          len(doc.Orders),
			"purchase_orders": len(doc.PurchaseOrders),
			"movements":       len(doc.Movements),
			"audit":           len(doc.Audit),
		}
		return nil
	})

	c.JSON(http.StatusOK, gin.H{
		"app":            "stockbook",
		"version":        h.version,
		"storage_driver": h.driver,
		"schema_version": store.SchemaVersion,
		"document":       counts,
	})
}
