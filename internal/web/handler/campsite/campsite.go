// Package campsite implements the campsite listing endpoints. Reads are
// public; every mutation requires an authenticated user and, for existing
// listings, ownership or the admin role.
package campsite

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/caraban-app/caraban-api/internal/db/models"
	"github.com/caraban-app/caraban-api/internal/user"
	"github.com/caraban-app/caraban-api/internal/web/handler"
	"github.com/caraban-app/caraban-api/internal/web/middleware/auth"
	"github.com/caraban-app/caraban-api/internal/web/response"
	"github.com/caraban-app/caraban-api/internal/web/validate"
)

// Path is the base path of the campsite routes.
const Path = handler.RootPath + "campsites"

const (
	msgNotFound     = "Campsite not found"
	msgForbidden    = "Forbidden"
	msgCreateFailed = "Failed to create campsite"
	msgUpdateFailed = "Failed to update campsite"
)

// Service is the campsite handler service.
type Service struct {
	db        *gorm.DB
	users     *user.Service
	validator *validator.Validate
}

// Handler is the campsite handler.
var Handler = Service{}

// Init registers the campsite routes.
func (s *Service) Init(api fiber.Router, db *gorm.DB, users *user.Service, authn *auth.Authenticator) {
	if api == nil || db == nil || users == nil {
		log.Fatal().Msg(handler.ErrNilRCDFatalLogMsg)
		return
	}

	s.db = db
	s.users = users
	s.validator = validate.New()

	grp := api.Group(Path)

	grp.Get("/", s.List)
	// "/mine" has to outrank the ":id" wildcard
	grp.Get("/mine", authn.Firebase(), auth.RequireUser(), s.Mine)
	grp.Get("/:id", s.Get)
	grp.Post("/", authn.Firebase(), auth.RequireUser(), s.Create)
	grp.Put("/:id", authn.Firebase(), auth.RequireUser(), s.Update)
	grp.Delete("/:id", authn.Firebase(), auth.RequireUser(), s.Delete)
}

// List returns all campsites, newest first. The optional q parameter
// filters by substring on name, description and location.
func (s *Service) List(c *fiber.Ctx) error {
	tx := s.db.WithContext(c.UserContext()).Order("id DESC")

	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		tx = tx.Where("name LIKE ? OR description LIKE ? OR location LIKE ?", like, like, like)
	}

	sites := make([]models.Campsite, 0)
	if err := tx.Find(&sites).Error; err != nil {
		log.Error().Err(err).Msg("campsite list failed")
		return response.Message(c, fiber.StatusInternalServerError, handler.MsgInternalError)
	}

	return response.Data(c, sites)
}

// Mine returns the campsites owned by the current user, newest first.
func (s *Service) Mine(c *fiber.Ctx) error {
	u := auth.UserFromCtx(c)

	sites := make([]models.Campsite, 0)

	err := s.db.WithContext(c.UserContext()).
		Where("host_id = ?", u.ID).
		Order("id DESC").
		Find(&sites).Error
	if err != nil {
		log.Error().Err(err).Uint64("user_id", u.ID).Msg("own campsite list failed")
		return response.Message(c, fiber.StatusInternalServerError, handler.MsgInternalError)
	}

	return response.Data(c, sites)
}

// Get returns a single campsite by ID.
func (s *Service) Get(c *fiber.Ctx) error {
	site, err := s.find(c)
	if err != nil {
		return err
	}

	return response.Data(c, site)
}

// Create stores a new campsite owned by the current user. A first listing
// promotes the creator from user to host.
func (s *Service) Create(c *fiber.Ctx) error {
	u := auth.UserFromCtx(c)

	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Message(c, fiber.StatusBadRequest, msgCreateFailed)
	}

	if err := s.validator.Struct(&req); err != nil {
		return response.ValidationErrors(c, validate.Format(err))
	}

	site := models.Campsite{
		Name:          req.Name,
		Description:   req.Description,
		Location:      req.Location,
		PricePerNight: req.PricePerNight,
		HostID:        &u.ID,
	}

	if err := s.db.WithContext(c.UserContext()).Create(&site).Error; err != nil {
		log.Error().Err(err).Msg("campsite create failed")
		return response.Message(c, fiber.StatusBadRequest, msgCreateFailed)
	}

	if err := s.users.PromoteFirstListing(c.UserContext(), u); err != nil {
		log.Error().Err(err).Uint64("user_id", u.ID).Msg("host promotion failed")
		return response.Message(c, fiber.StatusBadRequest, msgCreateFailed)
	}

	return response.Created(c, site)
}

// Update applies a partial update to a campsite the current user may mutate.
func (s *Service) Update(c *fiber.Ctx) error {
	site, err := s.find(c)
	if err != nil {
		return err
	}

	u := auth.UserFromCtx(c)
	if !canMutate(u, site) {
		return response.Message(c, fiber.StatusForbidden, msgForbidden)
	}

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Message(c, fiber.StatusBadRequest, msgUpdateFailed)
	}

	if err := s.validator.Struct(&req); err != nil {
		return response.ValidationErrors(c, validate.Format(err))
	}

	if req.Name != nil {
		site.Name = *req.Name
	}

	if req.Description != nil {
		site.Description = *req.Description
	}

	if req.Location != nil {
		site.Location = *req.Location
	}

	if req.PricePerNight != nil {
		site.PricePerNight = *req.PricePerNight
	}

	if err := s.db.WithContext(c.UserContext()).Save(site).Error; err != nil {
		log.Error().Err(err).Uint64("campsite_id", site.ID).Msg("campsite update failed")
		return response.Message(c, fiber.StatusBadRequest, msgUpdateFailed)
	}

	return response.Data(c, site)
}

// Delete removes a campsite the current user may mutate.
func (s *Service) Delete(c *fiber.Ctx) error {
	site, err := s.find(c)
	if err != nil {
		return err
	}

	u := auth.UserFromCtx(c)
	if !canMutate(u, site) {
		return response.Message(c, fiber.StatusForbidden, msgForbidden)
	}

	if err := s.db.WithContext(c.UserContext()).Delete(site).Error; err != nil {
		log.Error().Err(err).Uint64("campsite_id", site.ID).Msg("campsite delete failed")
		return response.Message(c, fiber.StatusInternalServerError, handler.MsgInternalError)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// find loads the campsite addressed by the :id route parameter. Failures
// come back as *fiber.Error for the app error handler to render.
func (s *Service) find(c *fiber.Ctx) (*models.Campsite, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, msgNotFound)
	}

	var site models.Campsite
	if err := s.db.WithContext(c.UserContext()).First(&site, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, msgNotFound)
		}

		log.Error().Err(err).Uint64("campsite_id", id).Msg("campsite lookup failed")

		return nil, fiber.NewError(fiber.StatusInternalServerError, handler.MsgInternalError)
	}

	return &site, nil
}

// canMutate reports whether u may change the given campsite. Listings
// without a host are open to any authenticated user.
func canMutate(u *models.User, site *models.Campsite) bool {
	if u.IsAdmin() || site.HostID == nil {
		return true
	}

	return *site.HostID == u.ID
}
