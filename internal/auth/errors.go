package auth

import "errors"

var (
	// ErrUnauthenticated means no usable bearer credential was presented.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrInvalidToken covers bad signatures, expiry and missing subjects alike.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUserNotFound covers both unknown and inactive users.
	ErrUserNotFound = errors.New("user not found")

	ErrExpiredToken     = errors.New("token expired")
	ErrInvalidSignature = errors.New("token signature invalid")
)

// IsAuthFailure reports whether err is any of the resolver outcomes that map to 401.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrUnauthenticated) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrUserNotFound)
}
