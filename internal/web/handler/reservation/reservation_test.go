package reservation_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
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
	"github.com/caraban-app/caraban-api/internal/web/handler/reservation"
	"github.com/caraban-app/caraban-api/internal/web/middleware/auth"
	"github.com/caraban-app/caraban-api/internal/web/response"
)

type tokenVerifier struct{}

func (tokenVerifier) Verify(_ context.Context, raw string) (identity.Identity, error) {
	return identity.Identity{Provider: identity.ProviderFirebase, UID: raw}, nil
}

func setupTest(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to create test database")

	// every pooled connection to :memory: would get its own database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&models.User{}, &models.Campsite{}, &models.Reservation{})
	require.NoError(t, err, "failed to migrate test database")

	users := user.NewService(db)
	authn := auth.NewAuthenticator(tokenVerifier{}, nil, users)

	app := fiber.New(fiber.Config{ErrorHandler: response.ErrorHandler})

	svc := reservation.Service{}
	svc.Init(app.Group("/api"), db, authn)

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, target, token string, payload any) *http.Response {
	t.Helper()

	var body io.Reader

	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func decodeReservation(t *testing.T, resp *http.Response) models.Reservation {
	t.Helper()

	var envelope struct {
		Data models.Reservation `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))

	return envelope.Data
}

func seedCampsite(t *testing.T, db *gorm.DB) models.Campsite {
	t.Helper()

	site := models.Campsite{Name: "Solbaram Camp", PricePerNight: 65000}
	require.NoError(t, db.Create(&site).Error)

	return site
}

func bookPayload(campsiteID uint64) fiber.Map {
	return fiber.Map{
		"campsiteId": campsiteID,
		"startDate":  "2026-10-01",
		"endDate":    "2026-10-03",
	}
}

func TestCreateRejectsUnauthenticatedBeforeParsing(t *testing.T) {
	app, _ := setupTest(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/reservations", "", fiber.Map{"campsiteId": "not even valid"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCreate(t *testing.T) {
	app, db := setupTest(t)
	site := seedCampsite(t, db)

	t.Run("unknown campsite", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/reservations", "guest-1", bookPayload(999))
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("missing dates", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/reservations", "guest-1",
			fiber.Map{"campsiteId": site.ID})
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var envelope struct {
			Errors []response.FieldError `json:"errors"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
		assert.Len(t, envelope.Errors, 2)
	})

	t.Run("booking starts out confirmed", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/reservations", "guest-1", bookPayload(site.ID))
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		res := decodeReservation(t, resp)
		assert.Equal(t, models.ReservationConfirmed, res.Status)
		assert.Equal(t, site.ID, res.CampsiteID)
		assert.Equal(t, "2026-10-01", res.StartDate.String())
	})
}

func TestMineIsScopedToUser(t *testing.T) {
	app, db := setupTest(t)
	site := seedCampsite(t, db)

	require.Equal(t, fiber.StatusCreated,
		doJSON(t, app, fiber.MethodPost, "/api/reservations", "guest-1", bookPayload(site.ID)).StatusCode)
	require.Equal(t, fiber.StatusCreated,
		doJSON(t, app, fiber.MethodPost, "/api/reservations", "guest-2", bookPayload(site.ID)).StatusCode)

	resp := doJSON(t, app, fiber.MethodGet, "/api/reservations/me", "guest-1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data []models.Reservation `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Len(t, envelope.Data, 1)
	require.NotNil(t, envelope.Data[0].Campsite)
}

func TestGetVisibility(t *testing.T) {
	app, db := setupTest(t)
	site := seedCampsite(t, db)

	require.Equal(t, fiber.StatusCreated,
		doJSON(t, app, fiber.MethodPost, "/api/reservations", "guest-1", bookPayload(site.ID)).StatusCode)

	t.Run("other users are rejected", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodGet, "/api/reservations/1", "guest-2", nil)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("owner reads it", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodGet, "/api/reservations/1", "guest-1", nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("unknown id", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodGet, "/api/reservations/99", "guest-1", nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestCancel(t *testing.T) {
	app, db := setupTest(t)
	site := seedCampsite(t, db)

	require.Equal(t, fiber.StatusCreated,
		doJSON(t, app, fiber.MethodPost, "/api/reservations", "guest-1", bookPayload(site.ID)).StatusCode)

	t.Run("other users may not cancel", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/reservations/1/cancel", "guest-2", nil)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("owner cancels", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/reservations/1/cancel", "guest-1", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, models.ReservationCancelled, decodeReservation(t, resp).Status)

		var stored models.Reservation
		require.NoError(t, db.First(&stored, 1).Error)
		assert.Equal(t, models.ReservationCancelled, stored.Status)
	})
}
