package admin

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrPasswordRequired   = errors.New("password is required")
	ErrNotFound           = errors.New("admin not found")
)
