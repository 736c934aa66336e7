package reports

import (
	"context"

	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/core/security"
	"stockbook/internal/core/tx"
	"stockbook/internal/core/types"
	"stockbook/internal/domain/registers/stock"
	"stockbook/internal/domain/store"
)

// Service provides report generation operations.
type Service struct {
	txm tx.Manager[*store.Document]
	ids id.Source
}

// NewService creates a new reports service.
func NewService(txm tx.Manager[*store.Document], ids id.Source) *Service {
	return &Service{txm: txm, ids: ids}
}

// GetStockBalance builds the stock balance report.
func (s *Service) GetStockBalance(ctx context.Context, actor security.Actor) (*StockBalanceReport, error) {
	if err := security.Require(actor, security.ViewAll); err != nil {
		return nil, err
	}

	var report *StockBalanceReport
	err := s.txm.ReadOnly(ctx, func(ctx context.Context, doc *store.Document) error {
		report = stockBalance(doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	report.AsOfDate = s.ids.Now()
	return report, nil
}

func stockBalance(doc *store.Document) *StockBalanceReport {
	report := &StockBalanceReport{TotalValue: types.Zero()}

	for _, b := range stock.Balances(doc) {
		p, _ := doc.Product(b.ProductID)
		value := types.MulPieces(p.BasePrice, b.Quantity)
		report.Items = append(report.Items, StockBalanceReportItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Category:    p.Category,
			Quantity:    b.Quantity,
			Boxes:       b.Quantity / p.PiecesPerBox,
			LoosePieces: b.Quantity % p.PiecesPerBox,
			Value:       value,
			LowStock:    b.Quantity < p.PiecesPerBox,
		})
		report.TotalQuantity += b.Quantity
		report.TotalValue = report.TotalValue.Add(value)
	}
	return report
}

// Summary computes the KPI overview.
func (s *Service) Summary(ctx context.Context, actor security.Actor) (*Summary, error) {
	if err := security.Require(actor, security.ViewKPI); err != nil {
		return nil, err
	}

	var sum *Summary
	err := s.txm.ReadOnly(ctx, func(ctx context.Context, doc *store.Document) error {
		sum = summarize(doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sum.AsOfDate = s.ids.Now()
	return sum, nil
}

func summarize(doc *store.Document) *Summary {
	balance := stockBalance(doc)

	sum := &Summary{
		Products:               len(doc.Products),
		TotalOnHand:            balance.TotalQuantity,
		StockValue:             balance.TotalValue,
		LowStockSKUs:           []string{},
		WasteEntries:           len(doc.Waste),
		AuditEntries:           len(doc.Audit),
		MovementCount:          len(doc.Movements),
		OrdersByStatus:         map[string]int{},
		PurchaseOrdersByStatus: map[string]int{},
		ShippedRevenue:         types.Zero(),
		OpenOrderValue:         types.Zero(),
		ReceivedSpend:          types.Zero(),
	}

	for _, item := range balance.Items {
		if item.LowStock {
			sum.LowStockSKUs = append(sum.LowStockSKUs, item.ProductID)
		}
	}
	for _, w := range doc.Waste {
		sum.WastedPieces += w.Quantity
	}

	for _, st := range entity.OrderStatuses {
		sum.OrdersByStatus[string(st)] = 0
	}
	for _, o := range doc.Orders {
		sum.OrdersByStatus[string(o.Status)]++
		switch o.Status {
		case entity.OrderShipped:
			sum.ShippedRevenue = sum.ShippedRevenue.Add(o.TotalAmount)
		case entity.OrderDraft, entity.OrderSubmitted:
			sum.OpenOrderValue = sum.OpenOrderValue.Add(o.TotalAmount)
		}
	}

	for _, st := range entity.PurchaseOrderStatuses {
		sum.PurchaseOrdersByStatus[string(st)] = 0
	}
	for _, p := range doc.PurchaseOrders {
		sum.PurchaseOrdersByStatus[string(p.Status)]++
		if p.Status == entity.PurchaseOrderReceived {
			sum.ReceivedSpend = sum.ReceivedSpend.Add(p.TotalAmount)
		}
	}

	return sum
}
