package service

import (
	"context"
	"errors"
	"strings"

	"github.com/raselworshop/pet-adoption-server/internal/model"
	"github.com/raselworshop/pet-adoption-server/internal/repository"
)

// CreateCampaignInput is the payload for starting a campaign.
type CreateCampaignInput struct {
	Name         string
	Category     string
	Description  string
	ImageURL     string
	TargetAmount int
}

// RecordDonationInput is the payload for appending a donor entry. The
// transaction id doubles as the idempotency key for payment callbacks.
type RecordDonationInput struct {
	CampaignID    string
	DonorName     string
	DonorEmail    string
	UserEmail     string
	Amount        int
	TransactionID string
}

// DonationResult reports a recorded donation. AlreadyRecorded means the
// transaction id had been seen before and nothing was written.
type DonationResult struct {
	Donor           *model.Donor
	AlreadyRecorded bool
}

// RefundInput identifies the donor entries to remove. TransactionID is
// optional; when empty every entry matching the email is refunded together.
type RefundInput struct {
	CampaignID    string
	DonorEmail    string
	TransactionID string
}

// CampaignService provides business logic for donation campaigns and their
// donor ledgers.
type CampaignService interface {
	Create(ctx context.Context, ownerEmail string, in CreateCampaignInput) (*model.Campaign, error)
	Get(ctx context.Context, id string) (*model.Campaign, error)
	List(ctx context.Context, limit, offset int) (*model.CampaignListResult, error)
	Random(ctx context.Context, limit int) ([]*model.Campaign, error)
	Update(ctx context.Context, id, callerEmail string, isAdmin bool, patch model.CampaignPatch) error
	Delete(ctx context.Context, id, callerEmail string, isAdmin bool) error
	SetPaused(ctx context.Context, id, callerEmail string, isAdmin bool, paused bool) error
	RecordDonation(ctx context.Context, in RecordDonationInput) (*DonationResult, error)
	Refund(ctx context.Context, in RefundInput) (*repository.RefundResult, error)
}

type campaignService struct {
	repo repository.CampaignRepository
}

// NewCampaignService creates a CampaignService.
func NewCampaignService(repo repository.CampaignRepository) CampaignService {
	return &campaignService{repo: repo}
}

func (s *campaignService) Create(ctx context.Context, ownerEmail string, in CreateCampaignInput) (*model.Campaign, error) {
	if strings.TrimSpace(ownerEmail) == "" || strings.TrimSpace(in.Name) == "" {
		return nil, ErrInvalidInput
	}
	if in.TargetAmount < 0 {
		return nil, ErrInvalidInput
	}

	c := &model.Campaign{
		Name:         strings.TrimSpace(in.Name),
		Category:     strings.TrimSpace(in.Category),
		Description:  strings.TrimSpace(in.Description),
		ImageURL:     strings.TrimSpace(in.ImageURL),
		TargetAmount: in.TargetAmount,
		OwnerEmail:   ownerEmail,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *campaignService) Get(ctx context.Context, id string) (*model.Campaign, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *campaignService) List(ctx context.Context, limit, offset int) (*model.CampaignListResult, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *campaignService) Random(ctx context.Context, limit int) ([]*model.Campaign, error) {
	if limit <= 0 {
		limit = 3
	}
	return s.repo.Random(ctx, limit)
}

func (s *campaignService) Update(ctx context.Context, id, callerEmail string, isAdmin bool, patch model.CampaignPatch) error {
	if err := s.authorize(ctx, id, callerEmail, isAdmin); err != nil {
		return err
	}
	return s.repo.Patch(ctx, id, patch)
}

func (s *campaignService) Delete(ctx context.Context, id, callerEmail string, isAdmin bool) error {
	if err := s.authorize(ctx, id, callerEmail, isAdmin); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *campaignService) SetPaused(ctx context.Context, id, callerEmail string, isAdmin bool, paused bool) error {
	if err := s.authorize(ctx, id, callerEmail, isAdmin); err != nil {
		return err
	}
	return s.repo.SetPaused(ctx, id, paused)
}

func (s *campaignService) authorize(ctx context.Context, id, callerEmail string, isAdmin bool) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && c.OwnerEmail != callerEmail {
		return ErrForbidden
	}
	return nil
}

func (s *campaignService) RecordDonation(ctx context.Context, in RecordDonationInput) (*DonationResult, error) {
	if strings.TrimSpace(in.CampaignID) == "" ||
		strings.TrimSpace(in.DonorEmail) == "" ||
		strings.TrimSpace(in.TransactionID) == "" {
		return nil, ErrInvalidInput
	}
	if in.Amount <= 0 {
		return nil, ErrInvalidInput
	}

	donor := &model.Donor{
		Name:          strings.TrimSpace(in.DonorName),
		Email:         strings.TrimSpace(strings.ToLower(in.DonorEmail)),
		UserEmail:     strings.TrimSpace(strings.ToLower(in.UserEmail)),
		Amount:        in.Amount,
		TransactionID: strings.TrimSpace(in.TransactionID),
	}
	err := s.repo.RecordDonation(ctx, in.CampaignID, donor)
	if errors.Is(err, repository.ErrDuplicate) {
		// A replayed payment callback; the entry is already in the ledger.
		return &DonationResult{AlreadyRecorded: true}, nil
	}
	if err != nil {
		return nil, err
	}
	return &DonationResult{Donor: donor}, nil
}

func (s *campaignService) Refund(ctx context.Context, in RefundInput) (*repository.RefundResult, error) {
	if strings.TrimSpace(in.CampaignID) == "" || strings.TrimSpace(in.DonorEmail) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.Refund(ctx, in.CampaignID,
		strings.TrimSpace(strings.ToLower(in.DonorEmail)),
		strings.TrimSpace(in.TransactionID))
}
