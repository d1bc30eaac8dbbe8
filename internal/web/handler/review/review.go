// Package review implements the campsite review endpoints. Reading reviews
// is public; writing requires an authenticated user and edits are restricted
// to the author or an admin.
package review

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

// Path is the base path of the review routes.
const Path = handler.RootPath + "reviews"

const (
	msgNotFound         = "Review not found"
	msgCampsiteNotFound = "Campsite not found"
	msgForbidden        = "Forbidden"
	msgCreateFailed     = "Failed to create review"
	msgUpdateFailed     = "Failed to update review"
)

// Service is the review handler service.
type Service struct {
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the review handler.
var Handler = Service{}

// Init registers the review routes.
func (s *Service) Init(api fiber.Router, db *gorm.DB, authn *auth.Authenticator) {
	if api == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilRCDFatalLogMsg)
		return
	}

	s.db = db
	s.validator = validate.New()

	grp := api.Group(Path)

	grp.Get("/campsite/:id", s.ListByCampsite)
	grp.Post("/", authn.Firebase(), auth.RequireUser(), s.Create)
	grp.Put("/:id", authn.Firebase(), auth.RequireUser(), s.Update)
	grp.Delete("/:id", authn.Firebase(), auth.RequireUser(), s.Delete)
}

// ListByCampsite returns the reviews of one campsite, newest first.
func (s *Service) ListByCampsite(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return response.Message(c, fiber.StatusNotFound, msgCampsiteNotFound)
	}

	reviews := make([]models.Review, 0)

	err = s.db.WithContext(c.UserContext()).
		Where("campsite_id = ?", id).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		log.Error().Err(err).Uint64("campsite_id", id).Msg("review list failed")
		return response.Message(c, fiber.StatusInternalServerError, handler.MsgInternalError)
	}

	return response.Data(c, reviews)
}

// Create posts a review on an existing campsite. A user may review the same
// campsite more than once.
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

	rev := models.Review{
		UserID:     u.ID,
		CampsiteID: site.ID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	if err := s.db.WithContext(c.UserContext()).Create(&rev).Error; err != nil {
		log.Error().Err(err).Msg("review create failed")
		return response.Message(c, fiber.StatusBadRequest, msgCreateFailed)
	}

	return response.Created(c, rev)
}

// Update applies a partial update to a review owned by the current user.
func (s *Service) Update(c *fiber.Ctx) error {
	rev, err := s.find(c)
	if err != nil {
		return err
	}

	if u := auth.UserFromCtx(c); !u.IsAdmin() && rev.UserID != u.ID {
		return response.Message(c, fiber.StatusForbidden, msgForbidden)
	}

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Message(c, fiber.StatusBadRequest, msgUpdateFailed)
	}

	if err := s.validator.Struct(&req); err != nil {
		return response.ValidationErrors(c, validate.Format(err))
	}

	if req.Rating != nil {
		rev.Rating = *req.Rating
	}

	if req.Comment != nil {
		rev.Comment = *req.Comment
	}

	if err := s.db.WithContext(c.UserContext()).Save(rev).Error; err != nil {
		log.Error().Err(err).Uint64("review_id", rev.ID).Msg("review update failed")
		return response.Message(c, fiber.StatusBadRequest, msgUpdateFailed)
	}

	return response.Data(c, rev)
}

// Delete removes a review owned by the current user.
func (s *Service) Delete(c *fiber.Ctx) error {
	rev, err := s.find(c)
	if err != nil {
		return err
	}

	if u := auth.UserFromCtx(c); !u.IsAdmin() && rev.UserID != u.ID {
		return response.Message(c, fiber.StatusForbidden, msgForbidden)
	}

	if err := s.db.WithContext(c.UserContext()).Delete(rev).Error; err != nil {
		log.Error().Err(err).Uint64("review_id", rev.ID).Msg("review delete failed")
		return response.Message(c, fiber.StatusInternalServerError, handler.MsgInternalError)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// find loads the review addressed by the :id route parameter.
func (s *Service) find(c *fiber.Ctx) (*models.Review, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, msgNotFound)
	}

	var rev models.Review
	if err := s.db.WithContext(c.UserContext()).First(&rev, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, msgNotFound)
		}

		log.Error().Err(err).Uint64("review_id", id).Msg("review lookup failed")

		return nil, fiber.NewError(fiber.StatusInternalServerError, handler.MsgInternalError)
	}

	return &rev, nil
}
