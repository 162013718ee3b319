package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/raselworshop/pet-adoption-server/internal/model"
	"github.com/raselworshop/pet-adoption-server/internal/repository"
)

// SubmitRequestInput is the payload for claiming a pet.
type SubmitRequestInput struct {
	PetID          string
	AdopterName    string
	AdopterEmail   string
	AdopterPhone   string
	AdopterAddress string
}

// AdoptionService governs the adoption-request lifecycle and its coupling to
// pet availability.
type AdoptionService interface {
	// Submit creates a pending request. ErrNotFound when the pet is missing
	// or already adopted; repository.ErrDuplicate when the adopter already
	// has a pending request for the pet.
	Submit(ctx context.Context, in SubmitRequestInput) (*model.AdoptionRequest, error)
	// Resolve moves a pending request to accepted or rejected. Only the
	// pet's owner or an admin may resolve.
	Resolve(ctx context.Context, id, decision, callerEmail string, isAdmin bool) error
	// Cancel is adopter-initiated.
	Cancel(ctx context.Context, id, callerEmail string, isAdmin bool) error
	ListByAdopter(ctx context.Context, adopterEmail string, limit, offset int) ([]*model.AdoptionRequest, error)
	ListByPetOwner(ctx context.Context, ownerEmail string, limit, offset int) ([]*model.AdoptionRequest, error)
}

type adoptionService struct {
	requests repository.AdoptionRepository
	pets     repository.PetRepository
}

// NewAdoptionService creates an AdoptionService.
func NewAdoptionService(requests repository.AdoptionRepository, pets repository.PetRepository) AdoptionService {
	return &adoptionService{requests: requests, pets: pets}
}

func (s *adoptionService) Submit(ctx context.Context, in SubmitRequestInput) (*model.AdoptionRequest, error) {
	if strings.TrimSpace(in.PetID) == "" || strings.TrimSpace(in.AdopterEmail) == "" {
		return nil, ErrInvalidInput
	}

	pet, err := s.pets.FindByID(ctx, in.PetID)
	if err != nil {
		return nil, err
	}
	if pet.Adopted {
		return nil, fmt.Errorf("pet %s already adopted: %w", pet.ID, repository.ErrNotFound)
	}

	req := &model.AdoptionRequest{
		PetID:          pet.ID,
		PetName:        pet.Name,
		PetImage:       pet.ImageURL,
		AdopterName:    strings.TrimSpace(in.AdopterName),
		AdopterEmail:   strings.TrimSpace(strings.ToLower(in.AdopterEmail)),
		AdopterPhone:   strings.TrimSpace(in.AdopterPhone),
		AdopterAddress: strings.TrimSpace(in.AdopterAddress),
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *adoptionService) Resolve(ctx context.Context, id, decision, callerEmail string, isAdmin bool) error {
	if decision != model.RequestAccepted && decision != model.RequestRejected {
		return ErrInvalidInput
	}

	req, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin {
		pet, err := s.pets.FindByID(ctx, req.PetID)
		if err != nil {
			// The listing is gone; only an admin can clean up its requests.
			if errors.Is(err, repository.ErrNotFound) {
				return ErrForbidden
			}
			return err
		}
		if pet.OwnerEmail != callerEmail {
			return ErrForbidden
		}
	}

	return s.requests.Resolve(ctx, id, decision)
}

func (s *adoptionService) Cancel(ctx context.Context, id, callerEmail string, isAdmin bool) error {
	req, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && req.AdopterEmail != callerEmail {
		return ErrForbidden
	}
	return s.requests.Cancel(ctx, id)
}

func (s *adoptionService) ListByAdopter(ctx context.Context, adopterEmail string, limit, offset int) ([]*model.AdoptionRequest, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	return s.requests.ListByAdopter(ctx, adopterEmail, limit, offset)
}

func (s *adoptionService) ListByPetOwner(ctx context.Context, ownerEmail string, limit, offset int) ([]*model.AdoptionRequest, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	return s.requests.ListByPetOwner(ctx, ownerEmail, limit, offset)
}
