// Package login provides the provider login endpoints. Each endpoint runs
// the matching authentication stage and returns the reconciled local user.
package login

import (
	"github.com/gofiber/fiber/v2"

	"github.com/caraban-app/caraban-api/internal/web/handler"
	"github.com/caraban-app/caraban-api/internal/web/middleware/auth"
	"github.com/caraban-app/caraban-api/internal/web/response"
)

const (
	// FirebasePath is the path of the Firebase login endpoint.
	FirebasePath = handler.RootPath + "auth/firebase"

	// KakaoPath is the path of the Kakao login endpoint.
	KakaoPath = handler.RootPath + "auth/kakao"
)

// Service is the login handler service.
type Service struct{}

// Handler is the login handler.
var Handler = Service{}

// Init registers the login routes.
func (s *Service) Init(api fiber.Router, authn *auth.Authenticator) {
	api.Post(FirebasePath, authn.Firebase(), s.Login)
	api.Post(KakaoPath, authn.Kakao(), s.Login)
}

// Login returns the user attached by the authentication stage. Each call is
// also the reconciliation point: first logins create the local user row.
func (s *Service) Login(c *fiber.Ctx) error {
	u := auth.UserFromCtx(c)
	if u == nil {
		return response.Message(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	// the login envelope predates the data wrapper and is kept as is for
	// client compatibility
	return c.JSON(fiber.Map{"user": u})
}
