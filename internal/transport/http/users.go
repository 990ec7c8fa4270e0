package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/nverma/medstock/internal/app"
	"github.com/nverma/medstock/internal/domain"
)

// UserService is the minimal interface needed for user endpoints.
type UserService interface {
	Register(ctx context.Context, in app.RegisterUserInput) (domain.User, error)
	List(ctx context.Context, userType domain.UserType) ([]domain.User, error)
}

// HandleUsers returns an HTTP handler for user registration and listing.
func HandleUsers(svc UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			userType := domain.UserType(r.URL.Query().Get("type"))
			users, err := svc.List(r.Context(), userType)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			resp := make([]userResponse, 0, len(users))
			for _, u := range users {
				resp = append(resp, newUserResponse(u))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
		case http.MethodPost:
			var req registerUserRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}

			user, err := svc.Register(r.Context(), app.RegisterUserInput{
				Username: req.Username,
				Password: req.Password,
				Type:     domain.UserType(req.UserType),
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(newUserResponse(user))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

type registerUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	UserType string `json:"user_type"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	UserType  string    `json:"user_type"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		UserType:  string(u.Type),
		CreatedAt: u.CreatedAt,
	}
}
