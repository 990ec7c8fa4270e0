package domain

import "time"

// InventoryEntry is the quantity of one product held by one owner. There is
// exactly one entry per (owner type, owner, product) key and the quantity is
// never negative.
type InventoryEntry struct {
	OwnerID   string
	OwnerType UserType
	ProductID string
	Quantity  int
	UpdatedAt time.Time

	// Joined fields, populated by list queries only.
	ProductName string
	UnitPrice   float64
}
