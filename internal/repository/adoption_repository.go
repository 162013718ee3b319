package repository

import (
	"context"

	"github.com/raselworshop/pet-adoption-server/internal/model"
)

// AdoptionRepository persists adoption requests and owns the compound
// accept-request/flip-pet transition.
type AdoptionRepository interface {
	// Create inserts a pending request. ErrNotFound when the pet is absent
	// or already adopted at insert time; ErrDuplicate when a pending request
	// for the same (pet, adopter) already exists.
	Create(ctx context.Context, req *model.AdoptionRequest) error
	FindByID(ctx context.Context, id string) (*model.AdoptionRequest, error)
	ListByAdopter(ctx context.Context, adopterEmail string, limit, offset int) ([]*model.AdoptionRequest, error)
	ListByPetOwner(ctx context.Context, ownerEmail string, limit, offset int) ([]*model.AdoptionRequest, error)
	// Resolve moves a pending request to accepted or rejected in a single
	// transaction. Accepting also marks the pet adopted and rejects every
	// other pending request for the same pet; if any step fails the whole
	// transition rolls back. ErrNotFound when the request is absent or no
	// longer pending.
	Resolve(ctx context.Context, id string, status string) error
	// Cancel moves a pending request to cancelled. ErrNotFound when the
	// request is absent or already terminal.
	Cancel(ctx context.Context, id string) error
}
