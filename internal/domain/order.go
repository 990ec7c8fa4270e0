package domain

import "time"

type OrderStatus string

const (
	OrderStatusPlaced     OrderStatus = "placed"
	OrderStatusAccepted   OrderStatus = "accepted"
	OrderStatusDispatched OrderStatus = "dispatched"
	OrderStatusDelivered  OrderStatus = "delivered"
)

// Order is a quantity of one product moving from a distributor to an
// orderer. Quantity is fixed at creation; there is no partial delivery.
type Order struct {
	ID            string
	DistributorID string
	OrdererID     string
	ProductID     string
	Quantity      int
	Status        OrderStatus
	CreatedAt     time.Time
	AcceptedAt    *time.Time
	DispatchedAt  *time.Time
	DeliveredAt   *time.Time

	// Joined fields, populated by list queries only.
	DistributorName string
	OrdererName     string
	OrdererType     UserType
	ProductName     string
}

// OrderFilter narrows order listings; empty fields match everything.
type OrderFilter struct {
	DistributorID string
	OrdererID     string
	Status        OrderStatus
}

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPlaced, OrderStatusAccepted, OrderStatusDispatched, OrderStatusDelivered:
		return true
	}
	return false
}

// NextStatus returns the single legal successor of s. The second return is
// false for the terminal status.
func NextStatus(s OrderStatus) (OrderStatus, bool) {
	switch s {
	case OrderStatusPlaced:
		return OrderStatusAccepted, true
	case OrderStatusAccepted:
		return OrderStatusDispatched, true
	case OrderStatusDispatched:
		return OrderStatusDelivered, true
	}
	return "", false
}
