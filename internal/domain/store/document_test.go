package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/entity"
)

func TestClone_CollectionsAreIndependent(t *testing.T) {
	doc := New()
	doc.Inventory["A"] = 5
	doc.Orders = append(doc.Orders, entity.Order{Document: entity.Document{ID: "o1"}, Status: entity.OrderDraft})

	c := doc.Clone()
	c.Inventory["A"] = 0
	o, ok := c.Order("o1")
	require.True(t, ok)
	o.Status = entity.OrderVoid
	c.Audit = append(c.Audit, entity.AuditEntry{ID: "x"})

	assert.Equal(t, int64(5), doc.Inventory["A"])
	assert.Equal(t, entity.OrderDraft, doc.Orders[0].Status)
	assert.Empty(t, doc.Audit)
}

func TestNextNumber(t *testing.T) {
	doc := &Document{}
	at := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "SO-2026-00001", doc.NextNumber("SO", at))
	assert.Equal(t, "SO-2026-00002", doc.NextNumber("SO", at))
	assert.Equal(t, "PO-2026-00001", doc.NextNumber("PO", at))
}

func TestRemoveProduct_ClearsLedgerEntry(t *testing.T) {
	doc := New()
	doc.Products = append(doc.Products, entity.Product{ID: "A"}, entity.Product{ID: "B"})
	doc.Inventory["A"] = 3

	assert.True(t, doc.RemoveProduct("A"))
	assert.False(t, doc.RemoveProduct("A"))

	_, ok := doc.Product("A")
	assert.False(t, ok)
	_, ok = doc.Inventory["A"]
	assert.False(t, ok)
	assert.Len(t, doc.Products, 1)
}
