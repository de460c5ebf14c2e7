package auth

import "errors"

var (
	// ErrMissingToken is returned when a request carries no bearer token.
	ErrMissingToken = errors.New("missing bearer token")

	// ErrTokenExpired is returned when a token's expiry timestamp has passed.
	ErrTokenExpired = errors.New("token expired")

	// ErrInvalidSignature is returned when the token signature does not match
	// the received header and payload. Any mutation of either part ends here.
	ErrInvalidSignature = errors.New("invalid token signature")

	// ErrTokenMalformed is returned when a token cannot be parsed into its
	// three parts or its claims are missing required fields.
	ErrTokenMalformed = errors.New("malformed token")

	// ErrInvalidOldPassword is returned when the provided old password does not match the user's current password.
	ErrInvalidOldPassword = errors.New("invalid old password")

	// ErrUserAccountDisabled is returned when attempting to authenticate a disabled user account.
	ErrUserAccountDisabled = errors.New("user account is disabled")

	// ErrInvalidPassword is returned when the provided password is incorrect during authentication.
	ErrInvalidPassword = errors.New("invalid password")
)
