package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/rs/zerolog/log"
)

const (
	firebaseIssuerPrefix = "https://securetoken.google.com/"

	verifyTimeout = 5 * time.Second
)

// FirebaseVerifier validates Firebase ID tokens for a single project.
// Construct it once at startup and inject it; OIDC discovery and the signing
// key set are fetched lazily and refreshed by the underlying verifier.
type FirebaseVerifier struct {
	projectID string
	verifier  *oidc.IDTokenVerifier
}

// NewFirebaseVerifier creates a verifier for the given Firebase project.
func NewFirebaseVerifier(ctx context.Context, projectID string) (*FirebaseVerifier, error) {
	if projectID == "" {
		return nil, ErrMissingProjectID
	}

	provider, err := oidc.NewProvider(ctx, firebaseIssuerPrefix+projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to discover firebase token issuer: %w", err)
	}

	return &FirebaseVerifier{
		projectID: projectID,
		verifier:  provider.Verifier(&oidc.Config{ClientID: projectID}),
	}, nil
}

// Verify checks the signature, issuer, audience and expiry of a raw ID token
// and returns the normalized identity carried in its claims.
func (v *FirebaseVerifier) Verify(ctx context.Context, rawToken string) (Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()

	idToken, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		log.Debug().Err(err).Msg("firebase id token verification failed")
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	var claims struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}

	if err := idToken.Claims(&claims); err != nil {
		return Identity{}, fmt.Errorf("%w: failed to parse claims: %v", ErrInvalidCredential, err)
	}

	return Identity{
		Provider: ProviderFirebase,
		UID:      idToken.Subject,
		Email:    claims.Email,
		Name:     claims.Name,
		Picture:  claims.Picture,
	}, nil
}
