package app

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/nverma/medstock/internal/clock"
	"github.com/nverma/medstock/internal/domain"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user domain.User) error
	ListUsers(ctx context.Context, userType domain.UserType) ([]domain.User, error)
}

type UserService struct {
	repo  UserRepository
	clock clock.Clock
}

func NewUserService(repo UserRepository, clk clock.Clock) *UserService {
	return &UserService{
		repo:  repo,
		clock: clk,
	}
}

type RegisterUserInput struct {
	Username string
	Password string
	Type     domain.UserType
}

// Register creates a user with a bcrypt password hash.
func (s *UserService) Register(ctx context.Context, in RegisterUserInput) (domain.User, error) {
	if in.Username == "" {
		return domain.User{}, domain.ErrUsernameRequired
	}
	if in.Password == "" {
		return domain.User{}, domain.ErrPasswordRequired
	}
	if !in.Type.Valid() {
		return domain.User{}, domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           newID(),
		Username:     in.Username,
		PasswordHash: string(hash),
		Type:         in.Type,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// List returns users, optionally restricted to one type. An empty type
// matches all users.
func (s *UserService) List(ctx context.Context, userType domain.UserType) ([]domain.User, error) {
	if userType != "" && !userType.Valid() {
		return nil, domain.ErrInvalidRole
	}
	return s.repo.ListUsers(ctx, userType)
}
