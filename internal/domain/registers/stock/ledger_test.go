package stock

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/domain/store"
	"stockbook/internal/testutil"
)

func TestApplyDelta_DefaultsToZero(t *testing.T) {
	doc := store.New()

	assert.Equal(t, int64(0), OnHand(doc, "NEW"))
	got, err := ApplyDelta(doc, "NEW", 4, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got)
	assert.Empty(t, doc.Movements)
}

func TestApplyDelta_FloorsAtZeroAndKeepsRequestedMagnitude(t *testing.T) {
	doc := store.New()
	doc.Inventory["P"] = 3
	ids := testutil.NewDeterministicSource()

	m := NewMovement(ids, testutil.Warehouse, MovementSpec{
		Type: entity.MovementWaste, ProductID: "P", Quantity: 10, RefType: entity.RefWaste, RefID: "w1",
	})
	got, err := ApplyDelta(doc, "P", -10, m)
	require.NoError(t, err)

	assert.Equal(t, int64(0), got)
	assert.Equal(t, int64(0), doc.Inventory["P"])
	require.Len(t, doc.Movements, 1)
	assert.Equal(t, int64(10), doc.Movements[0].Quantity)
	assert.Equal(t, "u-warehouse", doc.Movements[0].ActorID)
}

func TestApplyDelta_NeverNegative(t *testing.T) {
	doc := store.New()
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		_, err := ApplyDelta(doc, "P", int64(r.Intn(41)-25), nil)
		require.NoError(t, err)
		require.GreaterOrEqual(t, doc.Inventory["P"], int64(0))
	}
}

func TestApplyDelta_RejectsOverflowUntouched(t *testing.T) {
	doc := store.New()
	doc.Inventory["P"] = 100
	m := NewMovement(testutil.NewDeterministicSource(), testutil.Warehouse, MovementSpec{
		Type: entity.MovementIn, ProductID: "P", Quantity: math.MaxInt64,
	})

	got, err := ApplyDelta(doc, "P", math.MaxInt64, m)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	assert.Equal(t, int64(100), got)
	assert.Equal(t, int64(100), doc.Inventory["P"])
	assert.Empty(t, doc.Movements)

	got, err = ApplyDelta(doc, "P", math.MaxInt64-100, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), got)
}

func TestNewMovement_ClampsNegativeMagnitude(t *testing.T) {
	m := NewMovement(testutil.NewDeterministicSource(), testutil.Admin, MovementSpec{Quantity: -3})
	assert.Equal(t, int64(0), m.Quantity)
	assert.Equal(t, "id-0001", m.ID)
	assert.Equal(t, testutil.Epoch, m.At)
}

func TestBalances_SortedAndComplete(t *testing.T) {
	doc := store.New()
	doc.Products = []entity.Product{{ID: "B"}, {ID: "A"}}
	doc.Inventory["B"] = 2

	assert.Equal(t, []entity.StockBalance{
		{ProductID: "A", Quantity: 0},
		{ProductID: "B", Quantity: 2},
	}, Balances(doc))
}
