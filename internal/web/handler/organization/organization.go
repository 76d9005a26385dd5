// Package organization exposes CRUD endpoints for tenant organizations.
package organization

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/evination/backoffice/internal/authz"
	"github.com/evination/backoffice/internal/config"
	controller "github.com/evination/backoffice/internal/db/controller/organization"
	"github.com/evination/backoffice/internal/db/models"
	"github.com/evination/backoffice/internal/web/handler"
)

const (
	// Path is the base path of the organization endpoints.
	Path = "/organizations"
)

// Service is the organization handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	db       *gorm.DB
	validate *validator.Validate
}

// Handler is the organization handler.
var Handler = Service{}

// Init initializes the organization handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *authz.Service) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New("app, cfg or db is nil")
	}

	s.db = db
	s.cfg = cfg
	s.validate = validator.New()

	app.Get(Path, authz.RequirePermission(authService, authz.PermOrganizationView), s.GetAll)
	app.Get(Path+"/:id", authz.RequirePermission(authService, authz.PermOrganizationView), s.Get)
	app.Post(Path, authz.RequirePermission(authService, authz.PermOrganizationCreate), s.Post)
	app.Put(Path+"/:id", authz.RequirePermission(authService, authz.PermOrganizationUpdate), s.Put)
	app.Delete(Path+"/:id", authz.RequirePermission(authService, authz.PermOrganizationDelete), s.Delete)

	return nil
}

// body is the create/update request body.
type body struct {
	Name      string `json:"name" validate:"required"`
	Code      string `json:"code" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Country   string `json:"country"`
	Pincode   string `json:"pincode"`
	LogoURL   string `json:"logo_url"`
	Website   string `json:"website"`
	GSTNumber string `json:"gst_number"`
}

func (b *body) apply(org *models.Organization) {
	org.Name = b.Name
	org.Code = b.Code
	org.Email = b.Email
	org.Phone = b.Phone
	org.Address = b.Address
	org.City = b.City
	org.State = b.State
	org.Country = b.Country
	org.Pincode = b.Pincode
	org.LogoURL = b.LogoURL
	org.Website = b.Website
	org.GSTNumber = b.GSTNumber
}

// GetAll lists all active organizations.
func (s *Service) GetAll(c *fiber.Ctx) error {
	orgs, err := controller.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list organizations")
		return handler.Fail(c, fiber.StatusInternalServerError, "failed to list organizations")
	}

	return c.JSON(orgs)
}

// Get retrieves one organization.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid organization id")
	}

	org, err := controller.Get(s.db, uint(id))
	if err != nil {
		if errors.Is(err, controller.ErrOrganizationNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "organization not found")
		}

		log.Error().Err(err).Int("id", id).Msg("failed to load organization")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to load organization")
	}

	return c.JSON(org)
}

// Post creates an organization.
func (s *Service) Post(c *fiber.Ctx) error {
	req := new(body)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validate.Struct(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "name and code are required")
	}

	org := new(models.Organization)
	req.apply(org)

	created, err := controller.Create(s.db, handler.Actor(c), org)
	if err != nil {
		if errors.Is(err, controller.ErrOrganizationExists) {
			return handler.Fail(c, fiber.StatusConflict, "organization already exists")
		}

		log.Error().Err(err).Str("name", req.Name).Msg("failed to create organization")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to create organization")
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// Put updates an organization.
func (s *Service) Put(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid organization id")
	}

	req := new(body)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validate.Struct(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "name and code are required")
	}

	org := &models.Organization{ID: uint(id)}
	req.apply(org)

	updated, err := controller.Update(s.db, handler.Actor(c), org)
	if err != nil {
		if errors.Is(err, controller.ErrOrganizationNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "organization not found")
		}

		log.Error().Err(err).Int("id", id).Msg("failed to update organization")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to update organization")
	}

	return c.JSON(updated)
}

// Delete deactivates an organization.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid organization id")
	}

	if err := controller.Delete(s.db, handler.Actor(c), uint(id)); err != nil {
		if errors.Is(err, controller.ErrOrganizationNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "organization not found")
		}

		log.Error().Err(err).Int("id", id).Msg("failed to delete organization")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to delete organization")
	}

	return c.JSON(fiber.Map{"success": true})
}
