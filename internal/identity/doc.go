// Package identity implements the external identity provider clients.
//
// Two independent verification strategies are supported:
//
//   - FirebaseVerifier validates a Firebase ID token against the Google
//     secure-token issuer for the configured project, using OIDC discovery
//     and the issuer's published signing keys.
//   - KakaoClient exchanges an opaque Kakao access token for the account
//     profile by calling the Kakao user endpoint.
//
// Both clients are stateless per call and cache nothing. Verification
// failures are reported as ErrInvalidCredential, provider outages as
// ErrUpstreamUnavailable; callers are expected to collapse both into a
// generic 401 and keep the distinction in logs only.
package identity
