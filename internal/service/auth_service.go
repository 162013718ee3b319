package service

import (
	"context"

	"github.com/raselworshop/pet-adoption-server/internal/model"
)

// RegisterInput is the payload for idempotent registration. Email may be
// empty for guest or provider-only signups; a guest address is synthesized.
type RegisterInput struct {
	Email      string
	Name       string
	Password   string
	ProviderID string
}

// RegisterResult reports whether a new account was created or an existing
// identity matched.
type RegisterResult struct {
	User    *model.User
	Created bool
}

// AuthService provides registration and login.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*RegisterResult, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	// UpdateProviderEmail attaches a real email to a provider-only account.
	UpdateProviderEmail(ctx context.Context, providerID, email string) error
}
