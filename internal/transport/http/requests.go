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

// RequestService is the minimal interface needed for stock request endpoints.
type RequestService interface {
	Create(ctx context.Context, in app.CreateRequestInput) (domain.StockRequest, error)
	Respond(ctx context.Context, in app.RespondInput) (domain.Order, error)
	ListForDistributor(ctx context.Context, distributorID string) ([]domain.StockRequest, error)
}

// HandleRequests returns an HTTP handler for creating and listing stock
// requests. Listing requires a distributor_id query parameter.
func HandleRequests(svc RequestService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			distributorID := r.URL.Query().Get("distributor_id")
			if distributorID == "" {
				writeError(w, http.StatusBadRequest, codeMissingRequiredField, "distributor_id is required")
				return
			}
			requests, err := svc.ListForDistributor(r.Context(), distributorID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			resp := make([]requestResponse, 0, len(requests))
			for _, req := range requests {
				resp = append(resp, newRequestResponse(req))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
		case http.MethodPost:
			var req createRequestRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}

			created, err := svc.Create(r.Context(), app.CreateRequestInput{
				DistributorID: req.DistributorID,
				RequesterID:   req.RequesterID,
				ContactName:   req.ContactName,
				Pincode:       req.Pincode,
				Mobile:        req.Mobile,
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(newRequestResponse(created))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleRespondRequest returns an HTTP handler for responding to a pending
// request, mounted at /requests/{id}/respond. The response is a new order in
// the "placed" state.
func HandleRespondRequest(svc RequestService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		requestID, ok := parseRespondPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		var req respondRequestRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		order, err := svc.Respond(r.Context(), app.RespondInput{
			RequestID: requestID,
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(newOrderResponse(order))
	}
}

func parseRespondPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 || parts[0] != "requests" || parts[1] == "" || parts[2] != "respond" {
		return "", false
	}
	return parts[1], true
}

type createRequestRequest struct {
	DistributorID string `json:"distributor_id"`
	RequesterID   string `json:"requester_id"`
	ContactName   string `json:"contact_name"`
	Pincode       string `json:"pincode"`
	Mobile        string `json:"mobile"`
}

type respondRequestRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type requestResponse struct {
	ID            string     `json:"id"`
	DistributorID string     `json:"distributor_id"`
	RequesterID   string     `json:"requester_id"`
	RequesterName string     `json:"requester_name,omitempty"`
	RequesterType string     `json:"requester_type,omitempty"`
	ContactName   string     `json:"contact_name"`
	Pincode       string     `json:"pincode"`
	Mobile        string     `json:"mobile"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	RespondedAt   *time.Time `json:"responded_at,omitempty"`
}

func newRequestResponse(req domain.StockRequest) requestResponse {
	return requestResponse{
		ID:            req.ID,
		DistributorID: req.DistributorID,
		RequesterID:   req.RequesterID,
		RequesterName: req.RequesterName,
		RequesterType: string(req.RequesterType),
		ContactName:   req.ContactName,
		Pincode:       req.Pincode,
		Mobile:        req.Mobile,
		Status:        string(req.Status),
		CreatedAt:     req.CreatedAt,
		RespondedAt:   req.RespondedAt,
	}
}
