package http

import (
	"encoding/json"
	"net/http"

	"github.com/nverma/medstock/internal/domain"
)

const (
	codeMethodNotAllowed     = "method_not_allowed"
	codeNotFound             = "not_found"
	codeInvalidRequestBody   = "invalid_request_body"
	codeMissingRequiredField = "missing_required_field"
	codeInvalidID            = "invalid_id"
	codeUserNotFound         = "user_not_found"
	codeProductNotFound      = "product_not_found"
	codeOrderNotFound        = "order_not_found"
	codeRequestNotFound      = "request_not_found"
	codeInvalidRole          = "invalid_role"
	codeInvalidQuantity      = "invalid_quantity"
	codeInvalidStatus        = "invalid_status"
	codeInsufficientStock    = "insufficient_stock"
	codeAlreadyResponded     = "already_responded"
	codeIllegalTransition    = "illegal_transition"
	codeUnauthorized         = "unauthorized"
	codeUsernameTaken        = "username_taken"
	codeUsernameRequired     = "username_required"
	codePasswordRequired     = "password_required"
	codeNameRequired         = "name_required"
	codeInvalidUnitPrice     = "invalid_unit_price"
	codeForbidden            = "forbidden"
	codeInternalError        = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps a service error onto an HTTP status and a
// machine-readable code.
func writeDomainError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrUserNotFound:
		writeError(w, http.StatusNotFound, codeUserNotFound, err.Error())
	case domain.ErrProductNotFound:
		writeError(w, http.StatusNotFound, codeProductNotFound, err.Error())
	case domain.ErrOrderNotFound:
		writeError(w, http.StatusNotFound, codeOrderNotFound, err.Error())
	case domain.ErrRequestNotFound:
		writeError(w, http.StatusNotFound, codeRequestNotFound, err.Error())
	case domain.ErrInvalidID:
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case domain.ErrInvalidRole:
		writeError(w, http.StatusBadRequest, codeInvalidRole, err.Error())
	case domain.ErrInvalidQuantity:
		writeError(w, http.StatusBadRequest, codeInvalidQuantity, err.Error())
	case domain.ErrUsernameRequired:
		writeError(w, http.StatusBadRequest, codeUsernameRequired, err.Error())
	case domain.ErrPasswordRequired:
		writeError(w, http.StatusBadRequest, codePasswordRequired, err.Error())
	case domain.ErrNameRequired:
		writeError(w, http.StatusBadRequest, codeNameRequired, err.Error())
	case domain.ErrInvalidUnitPrice:
		writeError(w, http.StatusBadRequest, codeInvalidUnitPrice, err.Error())
	case domain.ErrInsufficientStock:
		writeError(w, http.StatusConflict, codeInsufficientStock, err.Error())
	case domain.ErrAlreadyResponded:
		writeError(w, http.StatusConflict, codeAlreadyResponded, err.Error())
	case domain.ErrIllegalTransition:
		writeError(w, http.StatusConflict, codeIllegalTransition, err.Error())
	case domain.ErrUsernameTaken:
		writeError(w, http.StatusConflict, codeUsernameTaken, err.Error())
	case domain.ErrUnauthorized:
		writeError(w, http.StatusForbidden, codeUnauthorized, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
