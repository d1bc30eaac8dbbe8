package identity

import "errors"

var (
	// ErrInvalidCredential is returned when a token is malformed, expired or
	// fails verification, or when a provider response cannot be parsed.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrUpstreamUnavailable is returned when the identity provider cannot
	// be reached or answers with a non-2xx status.
	ErrUpstreamUnavailable = errors.New("identity provider unavailable")

	// ErrMissingProjectID is returned when the Firebase project id is not configured.
	ErrMissingProjectID = errors.New("firebase project id is not configured")
)
