package app

import (
	"context"
	"testing"
	"time"

	"github.com/nverma/medstock/internal/clock"
	"github.com/nverma/medstock/internal/domain"
)

// Walks the whole flow: a pharmacist asks a distributor for stock, the
// distributor answers with an order and advances it to delivery, and the
// ordered quantity moves from one ledger to the other.
func TestRequestToDeliveryFlow(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	ctx := context.Background()

	store := newFakeStore()
	dir := newFakeDirectory()
	dir.addUser("dist-1", domain.UserTypeDistributor)
	dir.addUser("ph-1", domain.UserTypePharmacist)
	dir.addProduct("prod-1")
	store.setEntry(domain.UserTypeDistributor, "dist-1", "prod-1", 10)

	requestSvc := NewRequestService(store, dir, clock.NewFixed(now))
	orderSvc := NewOrderService(store, dir, clock.NewFixed(now))

	req, err := requestSvc.Create(ctx, CreateRequestInput{
		DistributorID: "dist-1",
		RequesterID:   "ph-1",
		ContactName:   "Asha",
		Pincode:       "560001",
		Mobile:        "9999999999",
	})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}

	order, err := requestSvc.Respond(ctx, RespondInput{
		RequestID: req.ID,
		ProductID: "prod-1",
		Quantity:  4,
	})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if order.Status != domain.OrderStatusPlaced {
		t.Fatalf("expected placed, got %s", order.Status)
	}

	for _, status := range []domain.OrderStatus{
		domain.OrderStatusAccepted,
		domain.OrderStatusDispatched,
		domain.OrderStatusDelivered,
	} {
		order, err = orderSvc.Advance(ctx, AdvanceOrderInput{
			OrderID:       order.ID,
			Status:        status,
			DistributorID: "dist-1",
		})
		if err != nil {
			t.Fatalf("advance to %s: %v", status, err)
		}
		if order.Status != status {
			t.Fatalf("expected %s, got %s", status, order.Status)
		}
	}

	if order.AcceptedAt == nil || order.DispatchedAt == nil || order.DeliveredAt == nil {
		t.Fatalf("expected all transition timestamps set, got %v/%v/%v",
			order.AcceptedAt, order.DispatchedAt, order.DeliveredAt)
	}

	distQty := store.quantity(domain.UserTypeDistributor, "dist-1", "prod-1")
	phQty := store.quantity(domain.UserTypePharmacist, "ph-1", "prod-1")
	if distQty != 6 {
		t.Fatalf("expected distributor stock 6, got %d", distQty)
	}
	if phQty != 4 {
		t.Fatalf("expected pharmacist stock 4, got %d", phQty)
	}
	if distQty+phQty != 10 {
		t.Fatalf("expected total stock conserved at 10, got %d", distQty+phQty)
	}

	// The terminal order cannot move again.
	if _, err := orderSvc.Advance(ctx, AdvanceOrderInput{
		OrderID:       order.ID,
		Status:        domain.OrderStatusDelivered,
		DistributorID: "dist-1",
	}); err != domain.ErrIllegalTransition {
		t.Fatalf("expected ErrIllegalTransition, got %v", err)
	}
}
