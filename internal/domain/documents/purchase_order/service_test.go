package purchase_order

import (
	"context"
	"math"
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

func boxes(n int64) CreateInput {
	return CreateInput{
		Supplier:  "Parts Inc",
		LineInput: documents.LineInput{ProductID: testutil.SKUGadget, Boxes: n},
	}
}

func TestReceive_IncrementsExactlyOnce(t *testing.T) {
	ctx := context.Background()
	svc, l := newService(t, map[string]int64{testutil.SKUGadget: 4})

	po, err := svc.Create(ctx, testutil.Warehouse, boxes(3))
	require.NoError(t, err)
	assert.Equal(t, "PO-2026-00001", po.Number)
	assert.Equal(t, int64(18), po.Quantity)
	assert.True(t, po.TotalAmount.Equal(types.MustMoney("99")))

	_, err = svc.Submit(ctx, testutil.Warehouse, po.ID)
	require.NoError(t, err)

	received, err := svc.Receive(ctx, testutil.Warehouse, po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderReceived, received.Status)
	require.NotNil(t, received.ReceivedAt)

	_, err = svc.Receive(ctx, testutil.Warehouse, po.ID)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidTransition))

	doc := l.Snapshot(t)
	assert.Equal(t, int64(22), doc.Inventory[testutil.SKUGadget])
	require.Len(t, doc.Movements, 1)
	assert.Equal(t, entity.MovementIn, doc.Movements[0].Type)
	assert.Equal(t, int64(18), doc.Movements[0].Quantity)
	assert.Equal(t, po.ID, doc.Movements[0].RefID)
	assert.Len(t, doc.Audit, 3)
}

func TestReceive_OverflowLeavesLedgerUntouched(t *testing.T) {
	ctx := context.Background()
	svc, l := newService(t, map[string]int64{testutil.SKUGadget: 100})

	po, err := svc.Create(ctx, testutil.Warehouse, CreateInput{
		Supplier:  "Parts Inc",
		LineInput: documents.LineInput{ProductID: testutil.SKUGadget, Pieces: math.MaxInt64},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), po.Quantity)
	_, err = svc.Submit(ctx, testutil.Warehouse, po.ID)
	require.NoError(t, err)

	_, err = svc.Receive(ctx, testutil.Warehouse, po.ID)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Equal(t, "quantity", appErr.Field())

	doc := l.Snapshot(t)
	assert.Equal(t, int64(100), doc.Inventory[testutil.SKUGadget])
	assert.Empty(t, doc.Movements)
	got, err := svc.Get(ctx, testutil.Warehouse, po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderSubmitted, got.Status)
}

func TestCreate_BoxCountOverflowIsRejected(t *testing.T) {
	ctx := context.Background()
	svc, l := newService(t, nil)

	_, err := svc.Create(ctx, testutil.Warehouse, boxes(math.MaxInt64/6+1))
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "quantity", appErr.Field())
	assert.Equal(t, "quantity is too large", appErr.Message)
	assert.Empty(t, l.Snapshot(t).PurchaseOrders)
}

func TestReceive_SellerDeniedRegardlessOfState(t *testing.T) {
	ctx := context.Background()
	svc, l := newService(t, nil)

	draft, err := svc.Create(ctx, testutil.Admin, boxes(1))
	require.NoError(t, err)

	for _, id := range []string{draft.ID, "missing"} {
		_, err := svc.Receive(ctx, testutil.Seller, id)
		assert.True(t, apperror.IsCode(err, apperror.CodePermissionDenied))
	}
	assert.Empty(t, l.Snapshot(t).Movements)
}

func TestReceive_RequiresSubmitted(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, nil)

	po, err := svc.Create(ctx, testutil.Warehouse, boxes(1))
	require.NoError(t, err)

	_, err = svc.Receive(ctx, testutil.Warehouse, po.ID)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidTransition))
}

func TestCreate_Validation(t *testing.T) {
	ctx := context.Background()
	svc, l := newService(t, nil)
	override := types.MustMoney("4")

	_, err := svc.Create(ctx, testutil.Warehouse, CreateInput{LineInput: documents.LineInput{ProductID: testutil.SKUGadget, Pieces: 1}})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "supplier", appErr.Field())

	_, err = svc.Create(ctx, testutil.Warehouse, CreateInput{
		Supplier:  "s",
		LineInput: documents.LineInput{ProductID: testutil.SKUGadget, Pieces: 1, OverridePrice: &override},
	})
	appErr, ok = apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "overrideReason", appErr.Field())

	_, err = svc.Create(ctx, testutil.Seller, boxes(1))
	assert.True(t, apperror.IsCode(err, apperror.CodePermissionDenied))

	assert.Empty(t, l.Snapshot(t).PurchaseOrders)
}

func TestVoid(t *testing.T) {
	ctx := context.Background()
	svc, l := newService(t, nil)

	po, err := svc.Create(ctx, testutil.Warehouse, boxes(1))
	require.NoError(t, err)
	_, err = svc.Submit(ctx, testutil.Warehouse, po.ID)
	require.NoError(t, err)

	voided, err := svc.Void(ctx, testutil.Warehouse, po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderVoid, voided.Status)

	_, err = svc.Submit(ctx, testutil.Warehouse, po.ID)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidTransition))

	received, err := svc.Create(ctx, testutil.Warehouse, boxes(1))
	require.NoError(t, err)
	_, err = svc.Submit(ctx, testutil.Warehouse, received.ID)
	require.NoError(t, err)
	_, err = svc.Receive(ctx, testutil.Warehouse, received.ID)
	require.NoError(t, err)
	_, err = svc.Void(ctx, testutil.Admin, received.ID)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidTransition))

	assert.Len(t, l.Snapshot(t).Movements, 1)
}

func TestGetAndList(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, nil)

	po, err := svc.Create(ctx, testutil.Warehouse, boxes(2))
	require.NoError(t, err)

	got, err := svc.Get(ctx, testutil.Seller, po.ID)
	require.NoError(t, err)
	assert.Equal(t, "Parts Inc", got.Supplier)

	_, err = svc.Get(ctx, testutil.Seller, "missing")
	assert.True(t, apperror.IsNotFound(err))

	drafts, err := svc.List(ctx, testutil.Seller, ListFilter{Status: entity.PurchaseOrderDraft})
	require.NoError(t, err)
	assert.Len(t, drafts, 1)

	later, err := svc.Create(ctx, testutil.Warehouse, boxes(1))
	require.NoError(t, err)
	all, err := svc.List(ctx, testutil.Seller, ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, later.ID, all[0].ID, "newest first")
	assert.Equal(t, po.ID, all[1].ID)

	none, err := svc.List(ctx, testutil.Seller, ListFilter{ProductID: testutil.SKUWidget})
	require.NoError(t, err)
	assert.Empty(t, none)
}
