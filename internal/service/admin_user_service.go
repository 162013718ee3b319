package service

import (
	"context"

	"github.com/raselworshop/pet-adoption-server/internal/model"
	"github.com/raselworshop/pet-adoption-server/internal/repository"
)

// AdminUserService provides the admin user-management surface.
type AdminUserService interface {
	List(ctx context.Context, limit, offset int) ([]*model.User, error)
	SetBanned(ctx context.Context, id string, banned bool) error
	SetRole(ctx context.Context, id, role string) error
}

type adminUserService struct {
	users repository.UserRepository
}

// NewAdminUserService creates an AdminUserService.
func NewAdminUserService(users repository.UserRepository) AdminUserService {
	return &adminUserService{users: users}
}

func (s *adminUserService) List(ctx context.Context, limit, offset int) ([]*model.User, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.users.List(ctx, limit, offset)
}

func (s *adminUserService) SetBanned(ctx context.Context, id string, banned bool) error {
	return s.users.SetBanned(ctx, id, banned)
}

func (s *adminUserService) SetRole(ctx context.Context, id, role string) error {
	if role != model.RoleMember && role != model.RoleAdmin {
		return ErrInvalidInput
	}
	return s.users.SetRole(ctx, id, role)
}
