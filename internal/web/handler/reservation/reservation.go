// Package reservation implements the booking endpoints. Every route here
// requires an authenticated user; reservations are only visible to the
// booking user or an admin.
package reservation

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/caraban-app/caraban-api/internal/db/models"
	"github.com/caraban-app/caraban-api/internal/web/handler"
	"github.com/caraban-app/caraban-api/internal/web/middleware/auth"
	"github.com/caraban-app/caraban-api/internal/web/response"
	"github.com/caraban-app/caraban-api/internal/web/validate"
)

// Path is the base path of the reservation routes.
const Path = handler.RootPath + "reservations"

const (
	msgNotFound         = "Reservation not found"
	msgCampsiteNotFound = "Campsite not found"
	msgForbidden        = "Forbidden"
	msgCreateFailed     = "Failed to create reservation"
	msgCancelFailed     = "Failed to cancel reservation"
)

// Service is the reservation handler service.
type Service struct {
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the reservation handler.
var Handler = Service{}

// Init registers the reservation routes.
func (s *Service) Init(api fiber.Router, db *gorm.DB, authn *auth.Authenticator) {
	if api == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilRCDFatalLogMsg)
		return
	}

	s.db = db
	s.validator = validate.New()

	grp := api.Group(Path, authn.Firebase(), auth.RequireUser())

	grp.Get("/me", s.Mine)
	grp.Get("/:id", s.Get)
	grp.Post("/", s.Create)
	grp.Post("/:id/cancel", s.Cancel)
}

// Mine returns the current user's reservations with their campsites,
// upcoming stays first.
func (s *Service) Mine(c *fiber.Ctx) error {
	u := auth.UserFromCtx(c)

	reservations := make([]models.Reservation, 0)

	err := s.db.WithContext(c.UserContext()).
		Preload("Campsite").
		Where("user_id = ?", u.ID).
		Order("start_date DESC").
		Find(&reservations).Error
	if err != nil {
		log.Error().Err(err).Uint64("user_id", u.ID).Msg("reservation list failed")
		return response.Message(c, fiber.StatusInternalServerError, handler.MsgInternalError)
	}

	return response.Data(c, reservations)
}

// Get returns a single reservation visible to the current user.
func (s *Service) Get(c *fiber.Ctx) error {
	res, err := s.find(c)
	if err != nil {
		return err
	}

	if u := auth.UserFromCtx(c); !u.IsAdmin() && res.UserID != u.ID {
		return response.Message(c, fiber.StatusForbidden, msgForbidden)
	}

	return response.Data(c, res)
}

// Create books a campsite for the current user. Reservations start out
// confirmed; there is no approval step.
func (s *Service) Create(c *fiber.Ctx) error {
	u := auth.UserFromCtx(c)

	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Message(c, fiber.StatusBadRequest, msgCreateFailed)
	}

	if err := s.validator.Struct(&req); err != nil {
		return response.ValidationErrors(c, validate.Format(err))
	}

	var site models.Campsite

	err := s.db.WithContext(c.UserContext()).First(&site, req.CampsiteID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.Message(c, fiber.StatusNotFound, msgCampsiteNotFound)
		}

		log.Error().Err(err).Uint64("campsite_id", req.CampsiteID).Msg("campsite lookup failed")

		return response.Message(c, fiber.StatusInternalServerError, handler.MsgInternalError)
	}

	res := models.Reservation{
		UserID:     u.ID,
		CampsiteID: site.ID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Status:     models.ReservationConfirmed,
	}

	if err := s.db.WithContext(c.UserContext()).Create(&res).Error; err != nil {
		log.Error().Err(err).Msg("reservation create failed")
		return response.Message(c, fiber.StatusBadRequest, msgCreateFailed)
	}

	return response.Created(c, res)
}

// Cancel marks a reservation cancelled. Cancelling twice is a no-op.
func (s *Service) Cancel(c *fiber.Ctx) error {
	res, err := s.find(c)
	if err != nil {
		return err
	}

	if u := auth.UserFromCtx(c); !u.IsAdmin() && res.UserID != u.ID {
		return response.Message(c, fiber.StatusForbidden, msgForbidden)
	}

	res.Status = models.ReservationCancelled

	if err := s.db.WithContext(c.UserContext()).Save(res).Error; err != nil {
		log.Error().Err(err).Uint64("reservation_id", res.ID).Msg("reservation cancel failed")
		return response.Message(c, fiber.StatusBadRequest, msgCancelFailed)
	}

	return response.Data(c, res)
}

// find loads the reservation addressed by the :id route parameter.
func (s *Service) find(c *fiber.Ctx) (*models.Reservation, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, msgNotFound)
	}

	var res models.Reservation
	if err := s.db.WithContext(c.UserContext()).Preload("Campsite").First(&res, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, msgNotFound)
		}

		log.Error().Err(err).Uint64("reservation_id", id).Msg("reservation lookup failed")

		return nil, fiber.NewError(fiber.StatusInternalServerError, handler.MsgInternalError)
	}

	return &res, nil
}
