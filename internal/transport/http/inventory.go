package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/nverma/medstock/internal/app"
	"github.com/nverma/medstock/internal/domain"
)

// InventoryService is the minimal interface needed for inventory endpoints.
type InventoryService interface {
	SetQuantity(ctx context.Context, in app.SetQuantityInput) (domain.InventoryEntry, error)
	ListInventory(ctx context.Context, ownerType domain.UserType, ownerID string) ([]domain.InventoryEntry, error)
}

// HandleSetInventory returns an HTTP handler for setting ledger quantities.
func HandleSetInventory(svc InventoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req setInventoryRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.Quantity == nil {
			writeError(w, http.StatusBadRequest, codeMissingRequiredField, "quantity is required")
			return
		}

		entry, err := svc.SetQuantity(r.Context(), app.SetQuantityInput{
			OwnerID:   req.OwnerID,
			OwnerType: domain.UserType(req.OwnerType),
			ProductID: req.ProductID,
			Quantity:  *req.Quantity,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(newInventoryResponse(entry))
	}
}

// HandleGetInventory returns an HTTP handler for listing an owner's ledger,
// mounted at /inventory/{ownerType}/{ownerID}.
func HandleGetInventory(svc InventoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		ownerType, ownerID, ok := parseInventoryPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		entries, err := svc.ListInventory(r.Context(), ownerType, ownerID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := make([]inventoryResponse, 0, len(entries))
		for _, e := range entries {
			resp = append(resp, newInventoryResponse(e))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func parseInventoryPath(path string) (domain.UserType, string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 || parts[0] != "inventory" || parts[1] == "" || parts[2] == "" {
		return "", "", false
	}
	return domain.UserType(parts[1]), parts[2], true
}

type setInventoryRequest struct {
	OwnerID   string `json:"owner_id"`
	OwnerType string `json:"owner_type"`
	ProductID string `json:"product_id"`
	Quantity  *int   `json:"quantity"`
}

type inventoryResponse struct {
	OwnerID     string    `json:"owner_id"`
	OwnerType   string    `json:"owner_type"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	UnitPrice   float64   `json:"unit_price,omitempty"`
	Quantity    int       `json:"quantity"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newInventoryResponse(e domain.InventoryEntry) inventoryResponse {
	return inventoryResponse{
		OwnerID:     e.OwnerID,
		OwnerType:   string(e.OwnerType),
		ProductID:   e.ProductID,
		ProductName: e.ProductName,
		UnitPrice:   e.UnitPrice,
		Quantity:    e.Quantity,
		UpdatedAt:   e.UpdatedAt,
	}
}
