package repository

import (
	"context"

	"github.com/raselworshop/pet-adoption-server/internal/model"
)

// DB exposes connection liveness for health checks.
type DB interface {
	Ping(ctx context.Context) error
}

// UserRepository persists user accounts.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByProviderID(ctx context.Context, providerID string) (*model.User, error)
	// CreateIfAbsent inserts the user unless the email (or provider id) is
	// already taken. Returns false when an existing row won the race; the
	// caller re-reads in that case.
	CreateIfAbsent(ctx context.Context, user *model.User) (bool, error)
	// UpdateEmailByProviderID attaches an email address to a provider-only
	// account. ErrNotFound when no row carries the provider id, ErrDuplicate
	// when the email already belongs to another account.
	UpdateEmailByProviderID(ctx context.Context, providerID, email string) error
	List(ctx context.Context, limit, offset int) ([]*model.User, error)
	SetBanned(ctx context.Context, id string, banned bool) error
	SetRole(ctx context.Context, id string, role string) error
}
