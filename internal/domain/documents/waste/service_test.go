package waste

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/domain/audit"
	"stockbook/internal/testutil"
)

func newService(t *testing.T, inventory map[string]int64) (*Service, *testutil.Ledger) {
	t.Helper()
	l := testutil.NewLedger(t, inventory)
	return NewService(l.Session, l.IDs, audit.NewService(l.Session, l.IDs)), l
}

func TestLog_WithinStock(t *testing.T) {
	svc, l := newService(t, map[string]int64{testutil.SKUWidget: 10})

	w, err := svc.Log(context.Background(), testutil.Warehouse, Input{
		ProductID: testutil.SKUWidget, Quantity: 4, Reason: " broken ", Note: "dropped pallet",
	})
	require.NoError(t, err)
	assert.Equal(t, "broken", w.Reason)
	assert.False(t, w.Confirmed)

	doc := l.Snapshot(t)
	assert.Equal(t, int64(6), doc.Inventory[testutil.SKUWidget])
	require.Len(t, doc.Movements, 1)
	assert.Equal(t, entity.MovementWaste, doc.Movements[0].Type)
	assert.Equal(t, w.ID, doc.Movements[0].RefID)
	assert.Len(t, doc.Waste, 1)
	assert.Len(t, doc.Audit, 1)
}

func TestLog_UnconfirmedShortfallWarns(t *testing.T) {
	svc, l := newService(t, map[string]int64{testutil.SKUWidget: 3})

	_, err := svc.Log(context.Background(), testutil.Warehouse, Input{
		ProductID: testutil.SKUWidget, Quantity: 10, Reason: "expired",
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStockWarning, appErr.Code)
	assert.Equal(t, int64(3), appErr.Details["available"])

	doc := l.Snapshot(t)
	assert.Equal(t, int64(3), doc.Inventory[testutil.SKUWidget])
	assert.Empty(t, doc.Waste)
	assert.Empty(t, doc.Movements)
	assert.Empty(t, doc.Audit)
}

func TestLog_ConfirmedClampsAtZero(t *testing.T) {
	svc, l := newService(t, map[string]int64{testutil.SKUWidget: 3})

	w, err := svc.Log(context.Background(), testutil.Warehouse, Input{
		ProductID: testutil.SKUWidget, Quantity: 10, Reason: "expired", Confirm: true,
	})
	require.NoError(t, err)
	assert.True(t, w.Confirmed)

	doc := l.Snapshot(t)
	assert.Equal(t, int64(0), doc.Inventory[testutil.SKUWidget])
	require.Len(t, doc.Movements, 1)
	assert.Equal(t, int64(10), doc.Movements[0].Quantity, "movement keeps the requested magnitude")
}

func TestLog_Validation(t *testing.T) {
	tests := []struct {
		name  string
		in    Input
		field string
	}{
		{"zero quantity", Input{ProductID: testutil.SKUWidget, Reason: "x"}, "quantity"},
		{"missing reason", Input{ProductID: testutil.SKUWidget, Quantity: 1}, "reason"},
		{"unknown product", Input{ProductID: "NOPE", Quantity: 1, Reason: "x"}, "productId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, l := newService(t, map[string]int64{testutil.SKUWidget: 5})

			_, err := svc.Log(context.Background(), testutil.Admin, tt.in)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tt.field, appErr.Field())
			assert.Empty(t, l.Snapshot(t).Waste)
		})
	}
}

func TestLog_SellerDenied(t *testing.T) {
	svc, _ := newService(t, map[string]int64{testutil.SKUWidget: 5})

	_, err := svc.Log(context.Background(), testutil.Seller, Input{ProductID: testutil.SKUWidget, Quantity: 1, Reason: "x"})
	assert.True(t, apperror.IsCode(err, apperror.CodePermissionDenied))
}

func TestList_NewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, map[string]int64{testutil.SKUWidget: 5, testutil.SKUGadget: 5})

	first, err := svc.Log(ctx, testutil.Admin, Input{ProductID: testutil.SKUWidget, Quantity: 1, Reason: "a"})
	require.NoError(t, err)
	second, err := svc.Log(ctx, testutil.Admin, Input{ProductID: testutil.SKUGadget, Quantity: 1, Reason: "b"})
	require.NoError(t, err)

	all, err := svc.List(ctx, testutil.Seller, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)

	widget, err := svc.List(ctx, testutil.Seller, testutil.SKUWidget)
	require.NoError(t, err)
	require.Len(t, widget, 1)
	assert.Equal(t, first.ID, widget[0].ID)
}
