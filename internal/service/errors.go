package service

import "errors"

// Business errors returned by the economy services. Handlers map these
// to HTTP responses; anything else is an unexpected persistence error
// and surfaces as a generic failure.
var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientEnergy = errors.New("insufficient energy")
	ErrDailyQuotaExceeded = errors.New("daily ad limit reached")
	ErrInvalidToken       = errors.New("invalid ad token")
	ErrInvalidProvider    = errors.New("invalid ad provider")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
