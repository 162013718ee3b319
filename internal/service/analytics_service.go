package service

import (
	"context"

	"github.com/raselworshop/pet-adoption-server/internal/model"
	"github.com/raselworshop/pet-adoption-server/internal/repository"
)

// AnalyticsReport aggregates platform-wide figures for the admin dashboard.
type AnalyticsReport struct {
	PetsByCategory      []*model.PetCategoryCount `json:"petsByCategory"`
	DonationsByCategory []*model.CategoryTotal    `json:"donationsByCategory"`
	TopDonors           []*model.DonorTotal       `json:"topDonors"`
}

type AnalyticsService interface {
	Report(ctx context.Context) (*AnalyticsReport, error)
}

type analyticsService struct {
	pets      repository.PetRepository
	campaigns repository.CampaignRepository
}

func NewAnalyticsService(pets repository.PetRepository, campaigns repository.CampaignRepository) AnalyticsService {
	return &analyticsService{pets: pets, campaigns: campaigns}
}

func (s *analyticsService) Report(ctx context.Context) (*AnalyticsReport, error) {
	petCounts, err := s.pets.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	totals, err := s.campaigns.TotalsByCategory(ctx)
	if err != nil {
		return nil, err
	}
	donors, err := s.campaigns.TopDonors(ctx, 10)
	if err != nil {
		return nil, err
	}
	return &AnalyticsReport{
		PetsByCategory:      petCounts,
		DonationsByCategory: totals,
		TopDonors:           donors,
	}, nil
}
