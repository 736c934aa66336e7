package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"stockbook/internal/core/entity"
	"stockbook/internal/core/security"
	"stockbook/internal/core/types"
	"stockbook/internal/domain/store"
	"stockbook/internal/infrastructure/storage/memory"
	"stockbook/internal/infrastructure/storage/snapshot"
)

// Actors used across service tests, one per role.
var (
	Admin     = security.Actor{ID: "u-admin", Name: "Ada", Role: security.RoleAdmin}
	Warehouse = security.Actor{ID: "u-warehouse", Name: "Walt", Role: security.RoleWarehouse}
	Seller    = security.Actor{ID: "u-seller", Name: "Sam", Role: security.RoleSeller}
)

// Fixture products.
const (
	SKUWidget = "SKU-A"
	SKUGadget = "SKU-B"
)

// Ledger bundles a session over an in-memory repository with the
// deterministic source that stamps its entities.
type Ledger struct {
	Session *store.Session
	Repo    *memory.Repository
	IDs     *DeterministicSource
}

// NewLedger opens a session holding the fixture catalog and the given
// opening inventory. No movements or audit entries are pre-recorded.
func NewLedger(t *testing.T, inventory map[string]int64) *Ledger {
	t.Helper()

	codec, err := snapshot.NewCodec(0)
	require.NoError(t, err)
	repo := memory.New(codec)

	seed := func(ctx context.Context) (*store.Document, error) {
		doc := store.New()
		doc.Users = []entity.User{
			{ID: Admin.ID, Name: Admin.Name, Role: Admin.Role},
			{ID: Warehouse.ID, Name: Warehouse.Name, Role: Warehouse.Role},
			{ID: Seller.ID, Name: Seller.Name, Role: Seller.Role},
		}
		doc.Products = []entity.Product{
			{ID: SKUWidget, Name: "Widget", Category: "Parts", PiecesPerBox: 10, BasePrice: types.MustMoney("2.00")},
			{ID: SKUGadget, Name: "Gadget", Category: "Parts", PiecesPerBox: 6, BasePrice: types.MustMoney("5.50")},
		}
		for pid, q := range inventory {
			doc.Inventory[pid] = q
		}
		return doc, nil
	}

	session, err := store.Open(context.Background(), repo, seed)
	require.NoError(t, err)

	return &Ledger{Session: session, Repo: repo, IDs: NewDeterministicSource()}
}

// Snapshot returns a copy of the live document for assertions.
func (l *Ledger) Snapshot(t *testing.T) *store.Document {
	t.Helper()
	var out *store.Document
	require.NoError(t, l.Session.ReadOnly(context.Background(), func(ctx context.Context, doc *store.Document) error {
		out = doc.Clone()
		return nil
	}))
	return out
}
