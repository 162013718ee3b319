package model

import "time"

// Pet is an adoptable listing posted by an owner.
type Pet struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	OwnerEmail  string    `json:"owner_email"`
	Adopted     bool      `json:"adopted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PetFilter narrows pet listing queries.
type PetFilter struct {
	Search   string // case-insensitive match on name
	Category string
	Adopted  *bool // nil means no filter
	Limit    int
	Offset   int
}

// PetPatch holds fields that can be updated on a pet listing.
type PetPatch struct {
	Name        *string
	Category    *string
	Description *string
	ImageURL    *string
}
