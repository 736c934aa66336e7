package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/types"
	"stockbook/internal/domain/audit"
	"stockbook/internal/domain/documents"
	"stockbook/internal/testutil"
)

func newService(t *testing.T, inventory map[string]int64) (*Service, *testutil.Ledger) {
	t.Helper()
	l := testutil.NewLedger(t, inventory)
	return NewService(l.Session, l.IDs, audit.NewService(l.Session, l.IDs)), l
}

func pieces(n int64) CreateInput {
	return CreateInput{
		Customer:  "ACME",
		LineInput: documents.LineInput{ProductID: testutil.SKUWidget, Pieces: n},
	}
}

func submitted(t *testing.T, svc *Service, in CreateInput) entity.Order {
	t.Helper()
	ctx := context.Background()
	o, err := svc.Create(ctx, testutil.Seller, in)
	require.NoError(t, err)
	o, err = svc.Submit(ctx, testutil.Seller, o.ID)
	require.NoError(t, err)
	return o
}

func TestCreate_DraftWithPricing(t *testing.T) {
	svc, l := newService(t, nil)
	override := types.MustMoney("1.50")

	o, err := svc.Create(context.Background(), testutil.Seller, CreateInput{
		Customer: " ACME ",
		LineInput: documents.LineInput{
			ProductID:      testutil.SKUWidget,
			Boxes:          1,
			Pieces:         2,
			DiscountPct:    types.MustMoney("10"),
			OverridePrice:  &override,
			OverrideReason: "price match",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderDraft, o.Status)
	assert.Equal(t, "ACME", o.Customer)
	assert.Equal(t, "SO-2026-00001", o.Number)
	assert.Equal(t, int64(12), o.Quantity)
	assert.True(t, o.Pricing.DiscountedPrice.Equal(types.MustMoney("1.8")))
	assert.True(t, o.UnitPriceFinal.Equal(types.MustMoney("1.5")))
	assert.True(t, o.TotalAmount.Equal(types.MustMoney("18")))

	doc := l.Snapshot(t)
	assert.Len(t, doc.Orders, 1)
	assert.Empty(t, doc.Movements, "no ledger effect on create")
	assert.Len(t, doc.Audit, 1)
}

func TestCreate_ValidationLeavesNoTrace(t *testing.T) {
	override := types.MustMoney("1.50")

	tests := []struct {
		name  string
		in    CreateInput
		field string
	}{
		{"empty customer", CreateInput{LineInput: documents.LineInput{ProductID: testutil.SKUWidget, Pieces: 1}}, "customer"},
		{"unknown product", CreateInput{Customer: "c", LineInput: documents.LineInput{ProductID: "NOPE", Pieces: 1}}, "productId"},
		{"zero quantity", CreateInput{Customer: "c", LineInput: documents.LineInput{ProductID: testutil.SKUWidget}}, "quantity"},
		{"override without reason", CreateInput{Customer: "c", LineInput: documents.LineInput{
			ProductID: testutil.SKUWidget, Pieces: 1, OverridePrice: &override,
		}}, "overrideReason"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, l := newService(t, nil)

			_, err := svc.Create(context.Background(), testutil.Seller, tt.in)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
			assert.Equal(t, tt.field, appErr.Field())

			doc := l.Snapshot(t)
			assert.Empty(t, doc.Orders)
			assert.Empty(t, doc.Audit)
			assert.Empty(t, doc.Sequences, "no number consumed")
		})
	}
}

func TestShip_DecrementsExactlyOnce(t *testing.T) {
	ctx := context.Background()
	svc, l := newService(t, map[string]int64{testutil.SKUWidget: 30})
	o := submitted(t, svc, pieces(12))

	shipped, err := svc.Ship(ctx, testutil.Warehouse, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderShipped, shipped.Status)
	require.NotNil(t, shipped.ShippedAt)

	_, err = svc.Ship(ctx, testutil.Warehouse, o.ID)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidTransition))

	doc := l.Snapshot(t)
	assert.Equal(t, int64(18), doc.Inventory[testutil.SKUWidget])
	require.Len(t, doc.Movements, 1)
	m := doc.Movements[0]
	assert.Equal(t, entity.MovementOut, m.Type)
	assert.Equal(t, int64(12), m.Quantity)
	assert.Equal(t, entity.RefOrder, m.RefType)
	assert.Equal(t, o.ID, m.RefID)
}

func TestShip_BlockedOnInsufficientStock(t *testing.T) {
	ctx := context.Background()
	svc, l := newService(t, map[string]int64{testutil.SKUWidget: 5})
	o := submitted(t, svc, pieces(10))
	auditBefore := len(l.Snapshot(t).Audit)

	_, err := svc.Ship(ctx, testutil.Warehouse, o.ID)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
	assert.Equal(t, int64(5), appErr.Details["available"])

	doc := l.Snapshot(t)
	assert.Equal(t, int64(5), doc.Inventory[testutil.SKUWidget])
	assert.Empty(t, doc.Movements)
	assert.Len(t, doc.Audit, auditBefore)

	got, err := svc.Get(ctx, testutil.Seller, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderSubmitted, got.Status)
}

func TestShip_RequiresSubmitted(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, map[string]int64{testutil.SKUWidget: 50})

	o, err := svc.Create(ctx, testutil.Seller, pieces(1))
	require.NoError(t, err)

	_, err = svc.Ship(ctx, testutil.Warehouse, o.ID)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidTransition))
}

func TestVoid_TerminalSafety(t *testing.T) {
	ctx := context.Background()
	svc, l := newService(t, map[string]int64{testutil.SKUWidget: 50})

	draft, err := svc.Create(ctx, testutil.Seller, pieces(1))
	require.NoError(t, err)
	voided, err := svc.Void(ctx, testutil.Seller, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderVoid, voided.Status)

	sub := submitted(t, svc, pieces(2))
	_, err = svc.Void(ctx, testutil.Warehouse, sub.ID)
	require.NoError(t, err)
	assert.Empty(t, l.Snapshot(t).Movements, "void never touches stock")

	_, err = svc.Void(ctx, testutil.Seller, draft.ID)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidTransition))

	shipped := submitted(t, svc, pieces(3))
	_, err = svc.Ship(ctx, testutil.Warehouse, shipped.ID)
	require.NoError(t, err)
	_, err = svc.Void(ctx, testutil.Admin, shipped.ID)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidTransition))
}

func TestPermissions(t *testing.T) {
	ctx := context.Background()
	svc, l := newService(t, map[string]int64{testutil.SKUWidget: 50})

	_, err := svc.Create(ctx, testutil.Warehouse, pieces(1))
	assert.True(t, apperror.IsCode(err, apperror.CodePermissionDenied))

	o := submitted(t, svc, pieces(1))
	_, err = svc.Ship(ctx, testutil.Seller, o.ID)
	assert.True(t, apperror.IsCode(err, apperror.CodePermissionDenied))

	_, err = svc.Ship(ctx, testutil.Seller, "missing")
	assert.True(t, apperror.IsCode(err, apperror.CodePermissionDenied), "permission is checked before lookup")

	assert.Equal(t, int64(50), l.Snapshot(t).Inventory[testutil.SKUWidget])
}

func TestNotFound(t *testing.T) {
	svc, _ := newService(t, nil)

	_, err := svc.Submit(context.Background(), testutil.Seller, "missing")
	assert.True(t, apperror.IsNotFound(err))
}

func TestAuditCompleteness(t *testing.T) {
	ctx := context.Background()
	svc, l := newService(t, map[string]int64{testutil.SKUWidget: 50})

	o, err := svc.Create(ctx, testutil.Seller, pieces(4))
	require.NoError(t, err)
	_, err = svc.Submit(ctx, testutil.Seller, o.ID)
	require.NoError(t, err)
	_, err = svc.Ship(ctx, testutil.Warehouse, o.ID)
	require.NoError(t, err)

	doc := l.Snapshot(t)
	require.Len(t, doc.Audit, 3)
	assert.Equal(t, []string{"order.create", "order.submit", "order.ship"},
		[]string{doc.Audit[0].Action, doc.Audit[1].Action, doc.Audit[2].Action})
	for _, e := range doc.Audit {
		assert.Equal(t, o.ID, e.EntityID)
	}
}

func TestList(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, nil)

	a, err := svc.Create(ctx, testutil.Seller, pieces(1))
	require.NoError(t, err)
	_, err = svc.Create(ctx, testutil.Seller, CreateInput{
		Customer: "Other", LineInput: documents.LineInput{ProductID: testutil.SKUGadget, Pieces: 1},
	})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, testutil.Seller, a.ID)
	require.NoError(t, err)

	all, err := svc.List(ctx, testutil.Warehouse, ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "SO-2026-00002", all[0].Number, "newest first")
	assert.Equal(t, a.ID, all[1].ID)

	sub, err := svc.List(ctx, testutil.Warehouse, ListFilter{Status: entity.OrderSubmitted})
	require.NoError(t, err)
	require.Len(t, sub, 1)
	assert.Equal(t, a.ID, sub[0].ID)

	gadget, err := svc.List(ctx, testutil.Warehouse, ListFilter{ProductID: testutil.SKUGadget})
	require.NoError(t, err)
	assert.Len(t, gadget, 1)
	assert.Equal(t, "SO-2026-00002", gadget[0].Number)
}
