// Package settings exposes per-organization settings over HTTP.
package settings

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/evination/backoffice/internal/authz"
	"github.com/evination/backoffice/internal/config"
	controller "github.com/evination/backoffice/internal/db/controller/setting"
	"github.com/evination/backoffice/internal/web/handler"
)

const (
	// Path is the base path of the settings endpoints, nested under an
	// organization.
	Path = "/organizations/:orgId/settings"
)

// Service is the settings handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	db       *gorm.DB
	validate *validator.Validate
}

// Handler is the settings handler.
var Handler = Service{}

// Init initializes the settings handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *authz.Service) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New("app, cfg or db is nil")
	}

	s.db = db
	s.cfg = cfg
	s.validate = validator.New()

	app.Get(Path, authz.RequirePermission(authService, authz.PermSettingsView), s.GetAll)
	app.Get(Path+"/:key", authz.RequirePermission(authService, authz.PermSettingsView), s.Get)
	app.Put(Path+"/:key", authz.RequirePermission(authService, authz.PermSettingsUpdate), s.Put)

	return nil
}

// putRequest is the body of a setting upsert.
type putRequest struct {
	Value string `json:"value"`
}

// GetAll lists an organization's settings, optionally filtered by the
// "category" query parameter.
func (s *Service) GetAll(c *fiber.Ctx) error {
	orgID, err := c.ParamsInt("orgId")
	if err != nil || orgID <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid organization id")
	}

	var settings interface{}

	if category := c.Query("category"); category != "" {
		settings, err = controller.GetByCategory(s.db, uint(orgID), category)
	} else {
		settings, err = controller.GetAll(s.db, uint(orgID))
	}

	if err != nil {
		log.Error().Err(err).Int("organization_id", orgID).Msg("failed to list settings")
		return handler.Fail(c, fiber.StatusInternalServerError, "failed to list settings")
	}

	return c.JSON(settings)
}

// Get retrieves one setting by key.
func (s *Service) Get(c *fiber.Ctx) error {
	orgID, err := c.ParamsInt("orgId")
	if err != nil || orgID <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid organization id")
	}

	setting, err := controller.Get(s.db, uint(orgID), c.Params("key"))
	if err != nil {
		if errors.Is(err, controller.ErrSettingNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "setting not found")
		}

		log.Error().Err(err).Int("organization_id", orgID).Str("key", c.Params("key")).
			Msg("failed to load setting")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to load setting")
	}

	return c.JSON(setting)
}

// Put creates or updates a setting by key.
func (s *Service) Put(c *fiber.Ctx) error {
	orgID, err := c.ParamsInt("orgId")
	if err != nil || orgID <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid organization id")
	}

	req := new(putRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	setting, err := controller.Set(s.db, handler.Actor(c), uint(orgID), c.Params("key"), req.Value)
	if err != nil {
		if errors.Is(err, controller.ErrSettingKeyEmpty) {
			return handler.Fail(c, fiber.StatusBadRequest, "setting key cannot be empty")
		}

		log.Error().Err(err).Int("organization_id", orgID).Str("key", c.Params("key")).
			Msg("failed to save setting")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to save setting")
	}

	return c.JSON(setting)
}
