package product

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/types"
	"stockbook/internal/domain/audit"
	"stockbook/internal/domain/store"
	"stockbook/internal/testutil"
)

func newService(t *testing.T, inventory map[string]int64) (*Service, *testutil.Ledger) {
	t.Helper()
	l := testutil.NewLedger(t, inventory)
	return NewService(l.Session, audit.NewService(l.Session, l.IDs)), l
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	svc, l := newService(t, nil)

	p, err := svc.Create(ctx, testutil.Admin, entity.Product{
		ID: " SKU-C ", Name: " Gizmo ", PiecesPerBox: 4, BasePrice: types.MustMoney("3.25"),
	})
	require.NoError(t, err)
	assert.Equal(t, "SKU-C", p.ID)
	assert.Equal(t, "Gizmo", p.Name)

	_, err = svc.Create(ctx, testutil.Admin, entity.Product{ID: "SKU-C", Name: "Again", PiecesPerBox: 1})
	assert.True(t, apperror.IsCode(err, apperror.CodeDuplicate))

	doc := l.Snapshot(t)
	assert.Len(t, doc.Products, 3)
	assert.Len(t, doc.Audit, 1)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name  string
		p     entity.Product
		field string
	}{
		{"missing sku", entity.Product{Name: "x", PiecesPerBox: 1}, "id"},
		{"missing name", entity.Product{ID: "X", PiecesPerBox: 1}, "name"},
		{"zero box", entity.Product{ID: "X", Name: "x"}, "piecesPerBox"},
		{"negative price", entity.Product{ID: "X", Name: "x", PiecesPerBox: 1, BasePrice: types.MustMoney("-1")}, "basePrice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(t, nil)
			_, err := svc.Create(context.Background(), testutil.Admin, tt.p)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tt.field, appErr.Field())
		})
	}
}

func TestWritesRequireManageCatalog(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, nil)

	_, err := svc.Create(ctx, testutil.Warehouse, entity.Product{ID: "X", Name: "x", PiecesPerBox: 1})
	assert.True(t, apperror.IsCode(err, apperror.CodePermissionDenied))
	assert.True(t, apperror.IsCode(svc.Delete(ctx, testutil.Seller, testutil.SKUWidget), apperror.CodePermissionDenied))
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, nil)

	_, err := svc.Update(ctx, testutil.Admin, entity.Product{
		ID: testutil.SKUWidget, Name: "Widget XL", PiecesPerBox: 20, BasePrice: types.MustMoney("2.40"),
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, testutil.Seller, testutil.SKUWidget)
	require.NoError(t, err)
	assert.Equal(t, "Widget XL", got.Name)
	assert.Equal(t, int64(20), got.PiecesPerBox)

	_, err = svc.Update(ctx, testutil.Admin, entity.Product{ID: "NOPE", Name: "x", PiecesPerBox: 1})
	assert.True(t, apperror.IsNotFound(err))
}

func TestDelete_ClearsLedgerEntry(t *testing.T) {
	ctx := context.Background()
	svc, l := newService(t, map[string]int64{testutil.SKUWidget: 9})

	require.NoError(t, svc.Delete(ctx, testutil.Admin, testutil.SKUWidget))

	doc := l.Snapshot(t)
	_, ok := doc.Product(testutil.SKUWidget)
	assert.False(t, ok)
	_, ok = doc.Inventory[testutil.SKUWidget]
	assert.False(t, ok)

	assert.True(t, apperror.IsNotFound(svc.Delete(ctx, testutil.Admin, testutil.SKUWidget)))
}

func TestDelete_HookCanVeto(t *testing.T) {
	ctx := context.Background()
	svc, l := newService(t, map[string]int64{testutil.SKUWidget: 9})
	locked := errors.New("locked")
	svc.Hooks().OnBeforeDelete(func(ctx context.Context, doc *store.Document, p *entity.Product) error {
		return locked
	})

	assert.ErrorIs(t, svc.Delete(ctx, testutil.Admin, testutil.SKUWidget), locked)
	assert.Equal(t, int64(9), l.Snapshot(t).Inventory[testutil.SKUWidget])
}

func TestList(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, nil)

	all, err := svc.List(ctx, testutil.Seller, ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, testutil.SKUWidget, all[0].ID)

	found, err := svc.List(ctx, testutil.Seller, ListFilter{Search: "gadg"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, testutil.SKUGadget, found[0].ID)

	none, err := svc.List(ctx, testutil.Seller, ListFilter{Category: "Food"})
	require.NoError(t, err)
	assert.Empty(t, none)
}
