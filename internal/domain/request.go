package domain

import "time"

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusResponded RequestStatus = "responded"
	// RequestStatusRejected exists in the schema but no operation sets it;
	// requests either stay pending or become responded.
	RequestStatusRejected RequestStatus = "rejected"
)

// StockRequest is an unstructured ask for stock from a requester to a
// distributor. Responding converts it into exactly one Order; the request
// carries no lifecycle relevance after that.
type StockRequest struct {
	ID            string
	DistributorID string
	RequesterID   string
	ContactName   string
	Pincode       string
	Mobile        string
	Status        RequestStatus
	CreatedAt     time.Time
	RespondedAt   *time.Time

	// Joined fields, populated by list queries only.
	RequesterName string
	RequesterType UserType
}
