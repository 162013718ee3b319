package service

import "errors"

// ErrForbidden is returned when a user acts on a resource they do not own
// and is not an admin.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidInput is returned when a required field is missing or malformed.
var ErrInvalidInput = errors.New("invalid input")

// ErrBanned is returned when a banned account attempts to authenticate.
var ErrBanned = errors.New("account banned")

// ErrBadCredentials is returned on login with an unknown email or wrong password.
var ErrBadCredentials = errors.New("bad credentials")
