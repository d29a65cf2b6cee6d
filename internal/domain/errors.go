package domain

import "errors"

// Sentinel errors shared across services and repositories. Handlers map each
// to a transport status; InvalidToken and UnknownSubject stay distinct because
// clients observe different statuses for them.
var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnauthenticated  = errors.New("no credential supplied")
	ErrInvalidToken     = errors.New("invalid authentication token")
	ErrUnknownSubject   = errors.New("token subject has no matching user")
	ErrInactiveUser     = errors.New("user is inactive")
	ErrAlreadyInactive  = errors.New("user is already inactive")
	ErrNoTransferTarget = errors.New("no active user available to transfer items")
	ErrUnauthorized     = errors.New("unauthorized")
)
