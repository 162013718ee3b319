package service

import (
	"context"
	"strings"

	"github.com/raselworshop/pet-adoption-server/internal/model"
	"github.com/raselworshop/pet-adoption-server/internal/repository"
)

const defaultPageSize = 20

// CreatePetInput is the payload for posting a new listing.
type CreatePetInput struct {
	Name        string
	Category    string
	Description string
	ImageURL    string
}

// PetService provides business logic for pet listings.
type PetService interface {
	Create(ctx context.Context, ownerEmail string, in CreatePetInput) (*model.Pet, error)
	Get(ctx context.Context, id string) (*model.Pet, error)
	List(ctx context.Context, filter model.PetFilter) ([]*model.Pet, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]*model.Pet, error)
	Update(ctx context.Context, id, callerEmail string, isAdmin bool, patch model.PetPatch) error
	Delete(ctx context.Context, id, callerEmail string, isAdmin bool) error
	// SetAdopted is the administrative override, independent of the request
	// lifecycle. changed=false means the pet already carried the value.
	SetAdopted(ctx context.Context, id string, adopted bool) (changed bool, err error)
}

type petService struct {
	repo repository.PetRepository
}

// NewPetService creates a PetService.
func NewPetService(repo repository.PetRepository) PetService {
	return &petService{repo: repo}
}

func (s *petService) Create(ctx context.Context, ownerEmail string, in CreatePetInput) (*model.Pet, error) {
	if strings.TrimSpace(ownerEmail) == "" {
		return nil, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Category) == "" {
		return nil, ErrInvalidInput
	}

	pet := &model.Pet{
		Name:        strings.TrimSpace(in.Name),
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		OwnerEmail:  ownerEmail,
	}
	if err := s.repo.Create(ctx, pet); err != nil {
		return nil, err
	}
	return pet, nil
}

func (s *petService) Get(ctx context.Context, id string) (*model.Pet, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *petService) List(ctx context.Context, filter model.PetFilter) ([]*model.Pet, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

func (s *petService) ListByOwner(ctx context.Context, ownerEmail string) ([]*model.Pet, error) {
	return s.repo.ListByOwner(ctx, ownerEmail)
}

func (s *petService) Update(ctx context.Context, id, callerEmail string, isAdmin bool, patch model.PetPatch) error {
	pet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && pet.OwnerEmail != callerEmail {
		return ErrForbidden
	}
	return s.repo.Patch(ctx, id, patch)
}

func (s *petService) Delete(ctx context.Context, id, callerEmail string, isAdmin bool) error {
	pet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && pet.OwnerEmail != callerEmail {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

func (s *petService) SetAdopted(ctx context.Context, id string, adopted bool) (bool, error) {
	return s.repo.SetAdopted(ctx, id, adopted)
}
