// Package auth provides the bearer token authentication middleware.
//
// Authentication is a two stage chain composed per route:
//
//  1. A provider specific stage (Firebase or Kakao, selected by the route)
//     extracts the bearer token, verifies it with the matching identity
//     provider client, reconciles the external identity to a local user and
//     attaches that user to the request context. All failures collapse into
//     a generic 401 so the response never reveals which stage failed.
//  2. RequireUser, a provider agnostic gate that rejects any request
//     without an attached user.
//
// The Authenticator holds the provider clients and the user service as
// injected dependencies, so tests can swap in fakes.
package auth
