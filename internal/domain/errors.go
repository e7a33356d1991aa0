package domain

import "errors"

var (
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrIncompleteSession = errors.New("session requires both token and user info")
	ErrInvalidPhone      = errors.New("phone must be 11 digits")
	ErrInvalidPayMethod  = errors.New("invalid payment method")
	ErrInvalidAmount     = errors.New("amount must be positive")
)
