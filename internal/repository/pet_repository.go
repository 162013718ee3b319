package repository

import (
	"context"

	"github.com/raselworshop/pet-adoption-server/internal/model"
)

// PetRepository persists adoptable pet listings.
type PetRepository interface {
	Create(ctx context.Context, pet *model.Pet) error
	FindByID(ctx context.Context, id string) (*model.Pet, error)
	List(ctx context.Context, filter model.PetFilter) ([]*model.Pet, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]*model.Pet, error)
	Patch(ctx context.Context, id string, patch model.PetPatch) error
	Delete(ctx context.Context, id string) error
	// SetAdopted flips the adopted flag. Returns changed=false when the pet
	// exists but already carried the requested value; ErrNotFound only when
	// the pet row is absent.
	SetAdopted(ctx context.Context, id string, adopted bool) (changed bool, err error)
	CountByCategory(ctx context.Context) ([]*model.PetCategoryCount, error)
}
