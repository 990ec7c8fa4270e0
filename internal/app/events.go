package app

import "github.com/nverma/medstock/internal/domain"

// EventSink receives notifications after state changes commit. Publishing is
// best effort; implementations must not block or return errors into the
// request path.
type EventSink interface {
	OrderDelivered(order domain.Order)
	InventoryUpdated(entry domain.InventoryEntry)
}
