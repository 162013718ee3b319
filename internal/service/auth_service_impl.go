package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/raselworshop/pet-adoption-server/internal/model"
	"github.com/raselworshop/pet-adoption-server/internal/repository"
	"github.com/raselworshop/pet-adoption-server/pkg/auth"
)

type authService struct {
	users repository.UserRepository
}

// NewAuthService creates an AuthService.
func NewAuthService(users repository.UserRepository) AuthService {
	return &authService{users: users}
}

// Register is idempotent: a concurrent or repeated registration for the same
// identity returns the existing account with Created=false. The unique
// constraints arbitrate races, not a find-then-insert check.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		// Guest or provider-only signup gets a synthetic address.
		email = fmt.Sprintf("guest_%s@anonymous.com", uuid.NewString())
	}

	user := &model.User{
		Email:      email,
		ProviderID: strings.TrimSpace(in.ProviderID),
		Name:       strings.TrimSpace(in.Name),
		Role:       model.RoleMember,
	}
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	created, err := s.users.CreateIfAbsent(ctx, user)
	if err != nil {
		return nil, err
	}
	if created {
		return &RegisterResult{User: user, Created: true}, nil
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) && user.ProviderID != "" {
		// The conflict was on provider_id, not email.
		existing, err = s.users.FindByProviderID(ctx, user.ProviderID)
	}
	if err != nil {
		return nil, err
	}
	return &RegisterResult{User: existing, Created: false}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if user.PasswordHash == "" {
		return nil, ErrBadCredentials
	}
	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrWrongPassword) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if user.Banned {
		return nil, ErrBanned
	}
	return user, nil
}

func (s *authService) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *authService) UpdateProviderEmail(ctx context.Context, providerID, email string) error {
	providerID = strings.TrimSpace(providerID)
	email = strings.TrimSpace(strings.ToLower(email))
	if providerID == "" || email == "" {
		return ErrInvalidInput
	}
	return s.users.UpdateEmailByProviderID(ctx, providerID, email)
}
