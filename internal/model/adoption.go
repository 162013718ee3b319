package model

import "time"

// Adoption request statuses. Pending is the only non-terminal state.
const (
	RequestPending   = "pending"
	RequestAccepted  = "accepted"
	RequestRejected  = "rejected"
	RequestCancelled = "cancelled"
)

// AdoptionRequest records a member's application to take a listed pet home.
// Pet name and image are denormalized at submission time so the request
// stays displayable even if the listing changes or disappears.
type AdoptionRequest struct {
	ID             string    `json:"id"`
	PetID          string    `json:"pet_id"`
	PetName        string    `json:"pet_name"`
	PetImage       string    `json:"pet_image,omitempty"`
	AdopterName    string    `json:"adopter_name"`
	AdopterEmail   string    `json:"adopter_email"`
	AdopterPhone   string    `json:"adopter_phone,omitempty"`
	AdopterAddress string    `json:"adopter_address,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsTerminal returns true once the request has been resolved or cancelled.
func (r *AdoptionRequest) IsTerminal() bool {
	return r.Status != RequestPending
}
