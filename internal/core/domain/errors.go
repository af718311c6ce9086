package domain

import "errors"

// Errors returned to callers. Everything that goes wrong during a login is
// reported as ErrInvalidCredentials.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidOldPassword = errors.New("invalid old password")
	ErrInternal           = errors.New("internal error")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidRIB         = errors.New("invalid rib")
	ErrPasswordTooLong    = errors.New("password exceeds 72 bytes")
)

// Causes recorded in logs and audit events only.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")
	ErrAccountDisabled  = errors.New("account disabled")
	ErrPasswordMismatch = errors.New("password mismatch")
	ErrRoleNotFound     = errors.New("role not found")
)
