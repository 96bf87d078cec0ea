package domain

import "errors"

var (
	ErrAuthentication  = errors.New("invalid username or password")
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrInvalidToken    = errors.New("invalid token")
)
