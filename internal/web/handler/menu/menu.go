// Package menu exposes the menu catalog over HTTP. Listing also reports the
// permissions each menu governs, which the rights UI needs to render the
// grid.
package menu

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/evination/backoffice/internal/authz"
	"github.com/evination/backoffice/internal/config"
	controller "github.com/evination/backoffice/internal/db/controller/menu"
	"github.com/evination/backoffice/internal/db/models"
	"github.com/evination/backoffice/internal/web/handler"
)

const (
	// Path is the base path of the menu endpoints.
	Path = "/menus"
)

// Service is the menu handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	db       *gorm.DB
	validate *validator.Validate
}

// Handler is the menu handler.
var Handler = Service{}

// Init initializes the menu handler. Menu maintenance is part of role
// management, so mutations require role.manage.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *authz.Service) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New("app, cfg or db is nil")
	}

	s.db = db
	s.cfg = cfg
	s.validate = validator.New()

	app.Get(Path, authz.RequirePermission(authService, authz.PermDashboardView), s.GetAll)
	app.Get(Path+"/:id/permissions", authz.RequirePermission(authService, authz.PermRoleManage), s.GetPermissions)
	app.Post(Path, authz.RequirePermission(authService, authz.PermRoleManage), s.Post)
	app.Put(Path+"/:id", authz.RequirePermission(authService, authz.PermRoleManage), s.Put)
	app.Delete(Path+"/:id", authz.RequirePermission(authService, authz.PermRoleManage), s.Delete)

	return nil
}

// body is the create/update request body.
type body struct {
	ParentID    *uint  `json:"parent_id"`
	Name        string `json:"name" validate:"required"`
	Code        string `json:"code" validate:"required"`
	Icon        string `json:"icon"`
	Route       string `json:"route"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
	MenuType    string `json:"menu_type" validate:"omitempty,oneof=main sub inner"`
}

func (b *body) apply(menu *models.Menu) {
	menu.ParentID = b.ParentID
	menu.Name = b.Name
	menu.Code = b.Code
	menu.Icon = b.Icon
	menu.Route = b.Route
	menu.Description = b.Description
	menu.SortOrder = b.SortOrder

	menu.MenuType = b.MenuType
	if menu.MenuType == "" {
		menu.MenuType = models.MenuTypeMain
	}
}

// GetAll lists all active menus in navigation order.
func (s *Service) GetAll(c *fiber.Ctx) error {
	menus, err := controller.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list menus")
		return handler.Fail(c, fiber.StatusInternalServerError, "failed to list menus")
	}

	return c.JSON(menus)
}

// GetPermissions lists the permissions a menu governs, per action type.
func (s *Service) GetPermissions(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid menu id")
	}

	if _, err := controller.Get(s.db, uint(id)); err != nil {
		if errors.Is(err, controller.ErrMenuNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "menu not found")
		}

		log.Error().Err(err).Int("id", id).Msg("failed to load menu")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to load menu")
	}

	menuPerms, err := authz.MenuPermissions(s.db, uint(id))
	if err != nil {
		log.Error().Err(err).Int("menu_id", id).Msg("failed to list menu permissions")
		return handler.Fail(c, fiber.StatusInternalServerError, "failed to list menu permissions")
	}

	return c.JSON(menuPerms)
}

// Post creates a menu.
func (s *Service) Post(c *fiber.Ctx) error {
	req := new(body)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validate.Struct(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "name and code are required")
	}

	menu := new(models.Menu)
	req.apply(menu)

	created, err := controller.Create(s.db, handler.Actor(c), menu)
	if err != nil {
		if errors.Is(err, controller.ErrMenuExists) {
			return handler.Fail(c, fiber.StatusConflict, "menu already exists")
		}

		log.Error().Err(err).Str("code", req.Code).Msg("failed to create menu")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to create menu")
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// Put updates a menu.
func (s *Service) Put(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid menu id")
	}

	req := new(body)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validate.Struct(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "name and code are required")
	}

	menu := &models.Menu{ID: uint(id)}
	req.apply(menu)

	updated, err := controller.Update(s.db, handler.Actor(c), menu)
	if err != nil {
		if errors.Is(err, controller.ErrMenuNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "menu not found")
		}

		log.Error().Err(err).Int("id", id).Msg("failed to update menu")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to update menu")
	}

	return c.JSON(updated)
}

// Delete deactivates a menu.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid menu id")
	}

	if err := controller.Delete(s.db, handler.Actor(c), uint(id)); err != nil {
		if errors.Is(err, controller.ErrMenuNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "menu not found")
		}

		log.Error().Err(err).Int("id", id).Msg("failed to delete menu")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to delete menu")
	}

	return c.JSON(fiber.Map{"success": true})
}
