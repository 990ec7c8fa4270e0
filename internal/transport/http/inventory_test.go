package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nverma/medstock/internal/app"
	"github.com/nverma/medstock/internal/domain"
)

type stubInventoryService struct {
	setFn  func(ctx context.Context, in app.SetQuantityInput) (domain.InventoryEntry, error)
	listFn func(ctx context.Context, ownerType domain.UserType, ownerID string) ([]domain.InventoryEntry, error)
}

func (s *stubInventoryService) SetQuantity(ctx context.Context, in app.SetQuantityInput) (domain.InventoryEntry, error) {
	return s.setFn(ctx, in)
}

func (s *stubInventoryService) ListInventory(ctx context.Context, ownerType domain.UserType, ownerID string) ([]domain.InventoryEntry, error) {
	return s.listFn(ctx, ownerType, ownerID)
}

func TestHandleSetInventory(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)

	t.Run("sets quantity", func(t *testing.T) {
		var got app.SetQuantityInput
		svc := &stubInventoryService{
			setFn: func(_ context.Context, in app.SetQuantityInput) (domain.InventoryEntry, error) {
				got = in
				return domain.InventoryEntry{
					OwnerID:   in.OwnerID,
					OwnerType: in.OwnerType,
					ProductID: in.ProductID,
					Quantity:  in.Quantity,
					UpdatedAt: now,
				}, nil
			},
		}

		body := `{"owner_id":"dist-1","owner_type":"distributor","product_id":"prod-1","quantity":10}`
		req := httptest.NewRequest(http.MethodPost, "/inventory", strings.NewReader(body))
		rec := httptest.NewRecorder()
		HandleSetInventory(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Quantity != 10 || got.OwnerType != domain.UserTypeDistributor {
			t.Fatalf("unexpected input: %+v", got)
		}
	})

	t.Run("quantity zero is a valid set", func(t *testing.T) {
		svc := &stubInventoryService{
			setFn: func(_ context.Context, in app.SetQuantityInput) (domain.InventoryEntry, error) {
				if in.Quantity != 0 {
					t.Fatalf("expected quantity 0, got %d", in.Quantity)
				}
				return domain.InventoryEntry{Quantity: 0}, nil
			},
		}

		body := `{"owner_id":"dist-1","owner_type":"distributor","product_id":"prod-1","quantity":0}`
		req := httptest.NewRequest(http.MethodPost, "/inventory", strings.NewReader(body))
		rec := httptest.NewRecorder()
		HandleSetInventory(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
	})

	t.Run("missing quantity returns 400", func(t *testing.T) {
		svc := &stubInventoryService{}
		body := `{"owner_id":"dist-1","owner_type":"distributor","product_id":"prod-1"}`
		req := httptest.NewRequest(http.MethodPost, "/inventory", strings.NewReader(body))
		rec := httptest.NewRecorder()
		HandleSetInventory(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
		var resp errorResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Code != codeMissingRequiredField {
			t.Fatalf("expected code %s, got %s", codeMissingRequiredField, resp.Code)
		}
	})

	t.Run("negative quantity maps to 400", func(t *testing.T) {
		svc := &stubInventoryService{
			setFn: func(_ context.Context, _ app.SetQuantityInput) (domain.InventoryEntry, error) {
				return domain.InventoryEntry{}, domain.ErrInvalidQuantity
			},
		}

		body := `{"owner_id":"dist-1","owner_type":"distributor","product_id":"prod-1","quantity":-1}`
		req := httptest.NewRequest(http.MethodPost, "/inventory", strings.NewReader(body))
		rec := httptest.NewRecorder()
		HandleSetInventory(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})
}

func TestHandleGetInventory(t *testing.T) {
	t.Parallel()

	t.Run("lists entries for owner", func(t *testing.T) {
		svc := &stubInventoryService{
			listFn: func(_ context.Context, ownerType domain.UserType, ownerID string) ([]domain.InventoryEntry, error) {
				if ownerType != domain.UserTypeDistributor || ownerID != "dist-1" {
					t.Fatalf("unexpected owner %s/%s", ownerType, ownerID)
				}
				return []domain.InventoryEntry{
					{OwnerID: ownerID, OwnerType: ownerType, ProductID: "prod-1", Quantity: 10, ProductName: "Gauze", UnitPrice: 3},
				}, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/inventory/distributor/dist-1", nil)
		rec := httptest.NewRecorder()
		HandleGetInventory(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		var resp []inventoryResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(resp) != 1 || resp[0].ProductName != "Gauze" {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})

	t.Run("owner type mismatch maps to 400", func(t *testing.T) {
		svc := &stubInventoryService{
			listFn: func(_ context.Context, _ domain.UserType, _ string) ([]domain.InventoryEntry, error) {
				return nil, domain.ErrInvalidRole
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/inventory/shg/dist-1", nil)
		rec := httptest.NewRecorder()
		HandleGetInventory(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("malformed path returns 404", func(t *testing.T) {
		svc := &stubInventoryService{}
		req := httptest.NewRequest(http.MethodGet, "/inventory/distributor", nil)
		rec := httptest.NewRecorder()
		HandleGetInventory(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
	})
}
