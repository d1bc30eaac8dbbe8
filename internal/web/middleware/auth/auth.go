package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/caraban-app/caraban-api/internal/db/models"
	"github.com/caraban-app/caraban-api/internal/identity"
)

// LocalUserKey is the fiber.Locals key the reconciled user is stored under.
const LocalUserKey = "currentUser"

const (
	msgMissingToken = "Missing auth token"
	msgInvalidToken = "Invalid or expired auth token"
	msgUnauthorized = "Unauthorized"
)

// TokenVerifier verifies a signed ID token and returns the identity it carries.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (identity.Identity, error)
}

// ProfileFetcher exchanges an opaque access token for the account profile.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, accessToken string) (identity.Identity, error)
}

// Reconciler maps an external identity to exactly one local user.
type Reconciler interface {
	Reconcile(ctx context.Context, externalUID, email, name string) (*models.User, error)
}

// Authenticator builds the provider specific authentication middleware.
type Authenticator struct {
	firebase TokenVerifier
	kakao    ProfileFetcher
	users    Reconciler
}

// NewAuthenticator creates an Authenticator. A nil verifier or fetcher
// disables that provider; its routes then answer with a generic 401.
func NewAuthenticator(firebase TokenVerifier, kakao ProfileFetcher, users Reconciler) *Authenticator {
	return &Authenticator{firebase: firebase, kakao: kakao, users: users}
}

// Firebase authenticates the request with a Firebase ID token.
func (a *Authenticator) Firebase() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return unauthorized(c, msgMissingToken)
		}

		if a.firebase == nil {
			log.Error().Msg("firebase verifier is not configured")
			return unauthorized(c, msgInvalidToken)
		}

		id, err := a.firebase.Verify(c.UserContext(), token)
		if err != nil {
			// upstream-vs-credential stays a log level detail only
			log.Warn().Err(err).Msg("firebase auth failed")
			return unauthorized(c, msgInvalidToken)
		}

		return a.attach(c, id)
	}
}

// Kakao authenticates the request with a Kakao access token.
func (a *Authenticator) Kakao() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return unauthorized(c, msgMissingToken)
		}

		if a.kakao == nil {
			log.Error().Msg("kakao client is not configured")
			return unauthorized(c, msgInvalidToken)
		}

		id, err := a.kakao.FetchProfile(c.UserContext(), token)
		if err != nil {
			log.Warn().Err(err).Msg("kakao auth failed")
			return unauthorized(c, msgInvalidToken)
		}

		return a.attach(c, id)
	}
}

// attach reconciles the verified identity and stores the user in the
// request context.
func (a *Authenticator) attach(c *fiber.Ctx, id identity.Identity) error {
	u, err := a.users.Reconcile(c.UserContext(), id.ExternalUID(), id.Email, id.Name)
	if err != nil {
		log.Error().Err(err).Str("provider", id.Provider).Msg("identity reconciliation failed")
		return unauthorized(c, msgInvalidToken)
	}

	c.Locals(LocalUserKey, u)

	return c.Next()
}

// RequireUser rejects requests without an attached user. It is composed
// after a provider specific stage on routes that need authentication.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if UserFromCtx(c) == nil {
			return unauthorized(c, msgUnauthorized)
		}

		return c.Next()
	}
}

// UserFromCtx returns the user attached by an authentication stage, or nil.
func UserFromCtx(c *fiber.Ctx) *models.User {
	u, _ := c.Locals(LocalUserKey).(*models.User)
	return u
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}

	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		return "", false
	}

	return token, true
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": msg})
}
