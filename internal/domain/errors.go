package domain

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrRequestNotFound   = errors.New("stock request not found")
	ErrInvalidRole       = errors.New("user type not allowed for this operation")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrAlreadyResponded  = errors.New("request already responded")
	ErrIllegalTransition = errors.New("illegal order status transition")
	ErrUnauthorized      = errors.New("caller is not the order's distributor")
	ErrInvalidID         = errors.New("invalid id")
	ErrUsernameTaken     = errors.New("username already exists")
	ErrUsernameRequired  = errors.New("username required")
	ErrPasswordRequired  = errors.New("password required")
	ErrNameRequired      = errors.New("name required")
	ErrInvalidUnitPrice  = errors.New("invalid unit price")
)
