// Package store holds the aggregate ledger document and the session that
// commits it. Every collection the ledger tracks lives in one Document,
// loaded once and saved whole after each successful mutation.
package store

import (
	"maps"
	"slices"
	"time"

	"stockbook/internal/core/entity"
	"stockbook/pkg/numerator"
)

// SchemaVersion is the document layout this build understands. A stored
// document with any other version is discarded and reseeded.
const SchemaVersion = 1

// Document is the whole ledger state.
type Document struct {
	Version   int                `json:"version"`
	Sequences numerator.Counters `json:"sequences"`

	Users    []entity.User    `json:"users"`
	Products []entity.Product `json:"products"`

	// Inventory maps productId to pieces on hand; values are never negative
	Inventory map[string]int64 `json:"inventory"`

	Movements      []entity.Movement      `json:"movements"`
	Orders         []entity.Order         `json:"orders"`
	PurchaseOrders []entity.PurchaseOrder `json:"purchaseOrders"`
	Waste          []entity.WasteEntry    `json:"waste"`
	Audit          []entity.AuditEntry    `json:"audit"`
}

// New returns an empty document at the current schema version.
func New() *Document {
	return &Document{
		Version:   SchemaVersion,
		Sequences: numerator.Counters{},
		Inventory: map[string]int64{},
	}
}

// Clone returns a copy whose collections can be modified without touching d.
// Values reachable through pointers inside entities (override prices,
// timestamps) are shared; they are replaced, never mutated in place.
func (d *Document) Clone() *Document {
	c := &Document{
		Version:        d.Version,
		Sequences:      maps.Clone(d.Sequences),
		Users:          slices.Clone(d.Users),
		Products:       slices.Clone(d.Products),
		Inventory:      maps.Clone(d.Inventory),
		Movements:      slices.Clone(d.Movements),
		Orders:         slices.Clone(d.Orders),
		PurchaseOrders: slices.Clone(d.PurchaseOrders),
		Waste:          slices.Clone(d.Waste),
		Audit:          slices.Clone(d.Audit),
	}
	c.normalize()
	return c
}

// normalize replaces nil maps so writers never have to check.
func (d *Document) normalize() {
	if d.Sequences == nil {
		d.Sequences = numerator.Counters{}
	}
	if d.Inventory == nil {
		d.Inventory = map[string]int64{}
	}
}

// NextNumber draws the next human-readable number for prefix in the year of at.
func (d *Document) NextNumber(prefix string, at time.Time) string {
	d.normalize()
	return numerator.Next(d.Sequences, numerator.DefaultConfig(prefix), at)
}

// --- Lookups ---
//
// Returned pointers address the document's own slices. They stay valid
// until the next append to the same collection.

// Product finds a product by SKU.
func (d *Document) Product(id string) (*entity.Product, bool) {
	i := slices.IndexFunc(d.Products, func(p entity.Product) bool { return p.ID == id })
	if i < 0 {
		return nil, false
	}
	return &d.Products[i], true
}

// RemoveProduct deletes a product and its ledger entry.
func (d *Document) RemoveProduct(id string) bool {
	i := slices.IndexFunc(d.Products, func(p entity.Product) bool { return p.ID == id })
	if i < 0 {
		return false
	}
	d.Products = slices.Delete(d.Products, i, i+1)
	delete(d.Inventory, id)
	return true
}

// User finds a user by id.
func (d *Document) User(id string) (*entity.User, bool) {
	i := slices.IndexFunc(d.Users, func(u entity.User) bool { return u.ID == id })
	if i < 0 {
		return nil, false
	}
	return &d.Users[i], true
}

// Order finds an order by id.
func (d *Document) Order(id string) (*entity.Order, bool) {
	i := slices.IndexFunc(d.Orders, func(o entity.Order) bool { return o.ID == id })
	if i < 0 {
		return nil, false
	}
	return &d.Orders[i], true
}

// PurchaseOrder finds a purchase order by id.
func (d *Document) PurchaseOrder(id string) (*entity.PurchaseOrder, bool) {
	i := slices.IndexFunc(d.PurchaseOrders, func(p entity.PurchaseOrder) bool { return p.ID == id })
	if i < 0 {
		return nil, false
	}
	return &d.PurchaseOrders[i], true
}
