// Package common defines shared constants and sentinel errors used across
// client and server layers of gophfav. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrDuplicateUser = errors.New("user name already taken")

	// Service-level errors.
	ErrorInternal         = errors.New("internal error")
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid user name or password")
	ErrUnauthenticated    = errors.New("unauthenticated")

	// Favourites-specific errors.
	ErrFavouritesLimit = errors.New("favourites limit reached")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Kind is the machine-readable name of an error class as reported to callers.
type Kind string

const (
	KindValidation         Kind = "ValidationError"
	KindDuplicateUser      Kind = "DuplicateUser"
	KindInvalidCredentials Kind = "InvalidCredentials"
	KindUnauthenticated    Kind = "Unauthenticated"
	KindNotFound           Kind = "NotFound"
	KindStorage            Kind = "StorageError"
)

// KindOf classifies err. Token errors are reported as Unauthenticated and
// anything unrecognised as StorageError.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrFavouritesLimit):
		return KindValidation
	case errors.Is(err, ErrDuplicateUser):
		return KindDuplicateUser
	case errors.Is(err, ErrInvalidCredentials):
		return KindInvalidCredentials
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrInvalidToken), errors.Is(err, ErrTokenExpired):
		return KindUnauthenticated
	case errors.Is(err, ErrorNotFound):
		return KindNotFound
	default:
		return KindStorage
	}
}
