package model

import "time"

// Campaign is a donation-fundraising record. DonatedAmount always equals the
// sum of its donor entries; both sides are mutated in one transaction.
type Campaign struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category,omitempty"`
	Description   string    `json:"description,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	TargetAmount  int       `json:"target_amount"`
	DonatedAmount int       `json:"donated_amount"`
	Paused        bool      `json:"paused"`
	OwnerEmail    string    `json:"owner_email"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Populated on detail lookups only.
	Donors []*Donor `json:"donors,omitempty"`
}

// Donor is one recorded contribution within a campaign's ledger.
type Donor struct {
	ID            string    `json:"id"`
	CampaignID    string    `json:"campaign_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	UserEmail     string    `json:"user_email,omitempty"`
	Amount        int       `json:"amount"`
	TransactionID string    `json:"transaction_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// CampaignListResult is a paginated campaign page.
type CampaignListResult struct {
	Campaigns []*Campaign `json:"campaigns"`
	HasMore   bool        `json:"has_more"`
}

// CampaignPatch holds fields that can be updated on a campaign.
type CampaignPatch struct {
	Name         *string
	Category     *string
	Description  *string
	ImageURL     *string
	TargetAmount *int
}

// CategoryTotal is an aggregation row: donated total per campaign category.
type CategoryTotal struct {
	Category string `json:"category"`
	Total    int    `json:"total"`
}

// DonorTotal is an aggregation row: combined amount per donor email.
type DonorTotal struct {
	Email string `json:"email"`
	Total int    `json:"total"`
	Count int    `json:"count"`
}

// PetCategoryCount is an aggregation row: listings per pet category.
type PetCategoryCount struct {
	Category string `json:"category"`
	Total    int    `json:"total"`
	Adopted  int    `json:"adopted"`
}
