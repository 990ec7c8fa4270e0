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

// OrderService is the minimal interface needed for order endpoints.
type OrderService interface {
	Place(ctx context.Context, in app.PlaceOrderInput) (domain.Order, error)
	Advance(ctx context.Context, in app.AdvanceOrderInput) (domain.Order, error)
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
}

// HandleOrders returns an HTTP handler for placing and listing orders.
func HandleOrders(svc OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			q := r.URL.Query()
			status := domain.OrderStatus(q.Get("status"))
			if status != "" && !status.Valid() {
				writeError(w, http.StatusBadRequest, codeInvalidStatus, "invalid status")
				return
			}
			orders, err := svc.List(r.Context(), domain.OrderFilter{
				DistributorID: q.Get("distributor_id"),
				OrdererID:     q.Get("orderer_id"),
				Status:        status,
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}
			resp := make([]orderResponse, 0, len(orders))
			for _, o := range orders {
				resp = append(resp, newOrderResponse(o))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
		case http.MethodPost:
			var req placeOrderRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}

			order, err := svc.Place(r.Context(), app.PlaceOrderInput{
				DistributorID: req.DistributorID,
				OrdererID:     req.OrdererID,
				ProductID:     req.ProductID,
				Quantity:      req.Quantity,
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(newOrderResponse(order))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleOrderStatus returns an HTTP handler for advancing an order, mounted
// at /orders/{id}/status. Only the order's distributor may advance it.
func HandleOrderStatus(svc OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		orderID, ok := parseOrderStatusPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		var req advanceOrderRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		status := domain.OrderStatus(req.Status)
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, codeInvalidStatus, "invalid status")
			return
		}

		order, err := svc.Advance(r.Context(), app.AdvanceOrderInput{
			OrderID:       orderID,
			Status:        status,
			DistributorID: req.DistributorID,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(newOrderResponse(order))
	}
}

func parseOrderStatusPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 || parts[0] != "orders" || parts[1] == "" || parts[2] != "status" {
		return "", false
	}
	return parts[1], true
}

type placeOrderRequest struct {
	DistributorID string `json:"distributor_id"`
	OrdererID     string `json:"orderer_id"`
	ProductID     string `json:"product_id"`
	Quantity      int    `json:"quantity"`
}

type advanceOrderRequest struct {
	Status        string `json:"status"`
	DistributorID string `json:"distributor_id"`
}

type orderResponse struct {
	ID              string     `json:"id"`
	DistributorID   string     `json:"distributor_id"`
	DistributorName string     `json:"distributor_name,omitempty"`
	OrdererID       string     `json:"orderer_id"`
	OrdererName     string     `json:"orderer_name,omitempty"`
	OrdererType     string     `json:"orderer_type,omitempty"`
	ProductID       string     `json:"product_id"`
	ProductName     string     `json:"product_name,omitempty"`
	Quantity        int        `json:"quantity"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	AcceptedAt      *time.Time `json:"accepted_at,omitempty"`
	DispatchedAt    *time.Time `json:"dispatched_at,omitempty"`
	DeliveredAt     *time.Time `json:"delivered_at,omitempty"`
}

func newOrderResponse(o domain.Order) orderResponse {
	return orderResponse{
		ID:              o.ID,
		DistributorID:   o.DistributorID,
		DistributorName: o.DistributorName,
		OrdererID:       o.OrdererID,
		OrdererName:     o.OrdererName,
		OrdererType:     string(o.OrdererType),
		ProductID:       o.ProductID,
		ProductName:     o.ProductName,
		Quantity:        o.Quantity,
		Status:          string(o.Status),
		CreatedAt:       o.CreatedAt,
		AcceptedAt:      o.AcceptedAt,
		DispatchedAt:    o.DispatchedAt,
		DeliveredAt:     o.DeliveredAt,
	}
}
