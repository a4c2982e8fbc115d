package domain

import "errors"

// ErrIdentityNotFound is returned by identity-bearing lookups when no record
// matches. It deliberately carries the same message for "absent" and "not
// yours" so unauthenticated callers cannot probe for existing accounts, and
// maps to 401 rather than 404.
var ErrIdentityNotFound = errors.New("user not found")

// ErrUserNotFound is the plain not-found kind used by admin-facing
// operations, where hiding existence buys nothing.
var ErrUserNotFound = errors.New("no user with this id")

var ErrEmailTaken = errors.New("user with this email already exists")
var ErrInvalidCredentials = errors.New("email or password is incorrect")
var ErrInterviewNotFound = errors.New("interview not found")
