package login_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/caraban-app/caraban-api/internal/db/models"
	"github.com/caraban-app/caraban-api/internal/identity"
	"github.com/caraban-app/caraban-api/internal/user"
	"github.com/caraban-app/caraban-api/internal/web/handler/login"
	"github.com/caraban-app/caraban-api/internal/web/middleware/auth"
	"github.com/caraban-app/caraban-api/internal/web/response"
)

type staticVerifier struct {
	id  identity.Identity
	err error
}

func (v *staticVerifier) Verify(_ context.Context, _ string) (identity.Identity, error) {
	return v.id, v.err
}

type staticFetcher struct {
	id  identity.Identity
	err error
}

func (f *staticFetcher) FetchProfile(_ context.Context, _ string) (identity.Identity, error) {
	return f.id, f.err
}

func setupTest(t *testing.T, verifier *staticVerifier, fetcher *staticFetcher) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to create test database")

	// every pooled connection to :memory: would get its own database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}))

	authn := auth.NewAuthenticator(verifier, fetcher, user.NewService(db))

	app := fiber.New(fiber.Config{ErrorHandler: response.ErrorHandler})

	svc := login.Service{}
	svc.Init(app.Group("/api"), authn)

	return app, db
}

func doLogin(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodPost, path, nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer some-token")

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func decodeUser(t *testing.T, resp *http.Response) models.User {
	t.Helper()

	var envelope struct {
		User models.User `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))

	return envelope.User
}

func TestKakaoLoginCreatesAndKeepsProfile(t *testing.T) {
	fetcher := &staticFetcher{
		id: identity.Identity{Provider: identity.ProviderKakao, UID: "123", Email: "a@b.com", Name: "Al"},
	}
	app, db := setupTest(t, &staticVerifier{}, fetcher)

	resp := doLogin(t, app, "/api/auth/kakao")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	u := decodeUser(t, resp)
	assert.Equal(t, "kakao:123", u.ExternalUID)
	assert.Equal(t, "Al", u.Name)
	require.NotNil(t, u.Email)
	assert.Equal(t, "a@b.com", *u.Email)
	assert.Equal(t, models.RoleUser, u.Role)

	// the profile changing upstream must not rewrite the stored account
	fetcher.id.Email = "new@b.com"
	fetcher.id.Name = "Alfred"

	resp = doLogin(t, app, "/api/auth/kakao")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	again := decodeUser(t, resp)
	assert.Equal(t, u.ID, again.ID)
	assert.Equal(t, "Al", again.Name)
	require.NotNil(t, again.Email)
	assert.Equal(t, "a@b.com", *again.Email)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestFirebaseLogin(t *testing.T) {
	testCases := []struct {
		name       string
		verifier   *staticVerifier
		wantStatus int
	}{
		{
			name: "valid token",
			verifier: &staticVerifier{
				id: identity.Identity{Provider: identity.ProviderFirebase, UID: "fb-1", Email: "fb@example.com"},
			},
			wantStatus: fiber.StatusOK,
		},
		{
			name:       "rejected token",
			verifier:   &staticVerifier{err: identity.ErrInvalidCredential},
			wantStatus: fiber.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app, _ := setupTest(t, tc.verifier, &staticFetcher{})

			resp := doLogin(t, app, "/api/auth/firebase")
			assert.Equal(t, tc.wantStatus, resp.StatusCode)

			if tc.wantStatus == fiber.StatusOK {
				u := decodeUser(t, resp)
				assert.Equal(t, "fb-1", u.ExternalUID)
				assert.Equal(t, "fb", u.Name)
			}
		})
	}
}
