// Package reports provides KPI and stock reports over the ledger.
package reports

import (
	"time"

	"stockbook/internal/core/types"
)

// StockBalanceReportItem represents a single row in the stock balance report.
type StockBalanceReportItem struct {
	ProductID   string      `json:"productId"`
	ProductName string      `json:"productName"`
	Category    string      `json:"category,omitempty"`
	Quantity    int64       `json:"quantity"`
	Boxes       int64       `json:"boxes"`
	LoosePieces int64       `json:"loosePieces"`
	Value       types.Money `json:"value"`

	// LowStock is set when less than one full box is on hand
	LowStock bool `json:"lowStock"`
}

// StockBalanceReport lists every catalog product with its stock value at base price.
type StockBalanceReport struct {
	AsOfDate time.Time                `json:"asOfDate"`
	Items    []StockBalanceReportItem `json:"items"`

	TotalQuantity int64       `json:"totalQuantity"`
	TotalValue    types.Money `json:"totalValue"`
}

// Summary is the KPI overview.
type Summary struct {
	AsOfDate time.Time `json:"asOfDate"`

	Products      int         `json:"products"`
	TotalOnHand   int64       `json:"totalOnHand"`
	StockValue    types.Money `json:"stockValue"`
	LowStockSKUs  []string    `json:"lowStockSkus"`
	WastedPieces  int64       `json:"wastedPieces"`
	WasteEntries  int         `json:"wasteEntries"`
	AuditEntries  int         `json:"auditEntries"`
	MovementCount int         `json:"movementCount"`

	OrdersByStatus         map[string]int `json:"ordersByStatus"`
	PurchaseOrdersByStatus map[string]int `json:"purchaseOrdersByStatus"`

	// ShippedRevenue sums TotalAmount over SHIPPED orders
	ShippedRevenue types.Money `json:"shippedRevenue"`

	// OpenOrderValue sums TotalAmount over DRAFT and SUBMITTED orders
	OpenOrderValue types.Money `json:"openOrderValue"`

	// ReceivedSpend sums TotalAmount over RECEIVED purchase orders
	ReceivedSpend types.Money `json:"receivedSpend"`
}
