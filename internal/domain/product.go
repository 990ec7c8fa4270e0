package domain

import "time"

// Product is a catalog item. Products are immutable after creation.
type Product struct {
	ID          string
	Name        string
	Description string
	UnitPrice   float64
	CreatedAt   time.Time
}
