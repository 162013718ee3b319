package repository

import (
	"context"

	"github.com/raselworshop/pet-adoption-server/internal/model"
)

// RefundResult reports what a refund removed from a campaign ledger.
type RefundResult struct {
	Entries int
	Amount  int
}

// CampaignRepository persists donation campaigns and their donor ledgers.
// Ledger mutations keep donated_amount equal to the sum of donor entries by
// running both writes in one transaction.
type CampaignRepository interface {
	Create(ctx context.Context, c *model.Campaign) error
	// FindByID returns the campaign with its donor entries loaded.
	FindByID(ctx context.Context, id string) (*model.Campaign, error)
	List(ctx context.Context, limit, offset int) (*model.CampaignListResult, error)
	Random(ctx context.Context, limit int) ([]*model.Campaign, error)
	Patch(ctx context.Context, id string, patch model.CampaignPatch) error
	Delete(ctx context.Context, id string) error
	SetPaused(ctx context.Context, id string, paused bool) error
	// RecordDonation appends a donor entry and increments the running total.
	// ErrNotFound when the campaign is absent, ErrCampaignPaused when it is
	// paused, ErrDuplicate when the transaction id was already recorded.
	RecordDonation(ctx context.Context, campaignID string, donor *model.Donor) error
	// Refund removes the donor entries matching the email (narrowed to one
	// entry when transactionID is non-empty) and decrements the total by
	// their combined amount. ErrNotFound when the campaign or a matching
	// entry is absent.
	Refund(ctx context.Context, campaignID, donorEmail, transactionID string) (*RefundResult, error)
	TotalsByCategory(ctx context.Context) ([]*model.CategoryTotal, error)
	TopDonors(ctx context.Context, limit int) ([]*model.DonorTotal, error)
}
