package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist in the database,
// or when a conditional update matched no row (e.g. resolving an already
// resolved adoption request).
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a uniqueness constraint
// (pending request per pet/adopter, donation transaction id, user identifier).
var ErrDuplicate = errors.New("duplicate")

// ErrCampaignPaused is returned when a donation is recorded against a paused campaign.
var ErrCampaignPaused = errors.New("campaign paused")
