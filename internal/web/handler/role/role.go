// Package role exposes CRUD endpoints for RBAC roles.
package role

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/evination/backoffice/internal/authz"
	"github.com/evination/backoffice/internal/config"
	controller "github.com/evination/backoffice/internal/db/controller/role"
	"github.com/evination/backoffice/internal/db/models"
	"github.com/evination/backoffice/internal/web/handler"
)

const (
	// Path is the base path of the role endpoints.
	Path = "/roles"
)

// Service is the role handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	db       *gorm.DB
	validate *validator.Validate
}

// Handler is the role handler.
var Handler = Service{}

// Init initializes the role handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *authz.Service) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New("app, cfg or db is nil")
	}

	s.db = db
	s.cfg = cfg
	s.validate = validator.New()

	app.Get(Path, authz.RequirePermission(authService, authz.PermRoleView), s.GetAll)
	app.Get(Path+"/:id", authz.RequirePermission(authService, authz.PermRoleView), s.Get)
	app.Post(Path, authz.RequirePermission(authService, authz.PermRoleCreate), s.Post)
	app.Put(Path+"/:id", authz.RequirePermission(authService, authz.PermRoleUpdate), s.Put)
	app.Delete(Path+"/:id", authz.RequirePermission(authService, authz.PermRoleDelete), s.Delete)

	return nil
}

// body is the create/update request body.
type body struct {
	Name        string `json:"name" validate:"required"`
	Code        string `json:"code" validate:"required"`
	Description string `json:"description"`
}

// GetAll lists all active roles.
func (s *Service) GetAll(c *fiber.Ctx) error {
	roles, err := controller.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list roles")
		return handler.Fail(c, fiber.StatusInternalServerError, "failed to list roles")
	}

	return c.JSON(roles)
}

// Get retrieves one role.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid role id")
	}

	role, err := controller.Get(s.db, uint(id))
	if err != nil {
		if errors.Is(err, controller.ErrRoleNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "role not found")
		}

		log.Error().Err(err).Int("id", id).Msg("failed to load role")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to load role")
	}

	return c.JSON(role)
}

// Post creates a role.
func (s *Service) Post(c *fiber.Ctx) error {
	req := new(body)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validate.Struct(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "name and code are required")
	}

	role := &models.Role{Name: req.Name, Code: req.Code, Description: req.Description}

	created, err := controller.Create(s.db, handler.Actor(c), role)
	if err != nil {
		if errors.Is(err, controller.ErrRoleExists) {
			return handler.Fail(c, fiber.StatusConflict, "role already exists")
		}

		log.Error().Err(err).Str("name", req.Name).Msg("failed to create role")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to create role")
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// Put updates a role.
func (s *Service) Put(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid role id")
	}

	req := new(body)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validate.Struct(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "name and code are required")
	}

	role := &models.Role{ID: uint(id), Name: req.Name, Code: req.Code, Description: req.Description}

	updated, err := controller.Update(s.db, handler.Actor(c), role)
	if err != nil {
		if errors.Is(err, controller.ErrRoleNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "role not found")
		}

		log.Error().Err(err).Int("id", id).Msg("failed to update role")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to update role")
	}

	return c.JSON(updated)
}

// Delete deactivates a role.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid role id")
	}

	if err := controller.Delete(s.db, handler.Actor(c), uint(id)); err != nil {
		switch {
		case errors.Is(err, controller.ErrRoleNotFound):
			return handler.Fail(c, fiber.StatusNotFound, "role not found")
		case errors.Is(err, controller.ErrRoleInUse):
			return handler.Fail(c, fiber.StatusConflict, "role is assigned to users")
		}

		log.Error().Err(err).Int("id", id).Msg("failed to delete role")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to delete role")
	}

	return c.JSON(fiber.Map{"success": true})
}
