// Package roleright exposes the role right grid over HTTP. Mutations run
// the permission sync inside the controller's transaction, so a successful
// response means both stores already agree.
package roleright

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/evination/backoffice/internal/authz"
	"github.com/evination/backoffice/internal/config"
	controller "github.com/evination/backoffice/internal/db/controller/roleright"
	"github.com/evination/backoffice/internal/web/handler"
)

const (
	// Path is the base path of the role rights endpoints.
	Path = "/role-rights"
)

// Service is the role rights handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	db       *gorm.DB
	validate *validator.Validate
	strategy authz.Strategy
}

// Handler is the role rights handler.
var Handler = Service{}

// Init initializes the role rights handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *authz.Service) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New("app, cfg or db is nil")
	}

	s.db = db
	s.cfg = cfg
	s.validate = validator.New()
	s.strategy = authz.ParseStrategy(cfg.Sync.Strategy)

	// register routes with permission checks
	app.Post(Path, authz.RequirePermission(authService, authz.PermRoleManage), s.Post)
	app.Put(Path+"/:id", authz.RequirePermission(authService, authz.PermRoleManage), s.Put)
	app.Get(Path+"/:roleId", authz.RequirePermission(authService, authz.PermRoleManage), s.GetByRole)

	return nil
}

// createRequest is the body of a role right creation.
type createRequest struct {
	RoleID    uint `json:"role_id" validate:"required"`
	MenuID    uint `json:"menu_id" validate:"required"`
	CanView   bool `json:"can_view"`
	CanCreate bool `json:"can_create"`
	CanEdit   bool `json:"can_edit"`
	CanDelete bool `json:"can_delete"`
}

// updateRequest is the body of a role right update.
type updateRequest struct {
	CanView   bool `json:"can_view"`
	CanCreate bool `json:"can_create"`
	CanEdit   bool `json:"can_edit"`
	CanDelete bool `json:"can_delete"`
}

// Post handles role right creation.
func (s *Service) Post(c *fiber.Ctx) error {
	req := new(createRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validate.Struct(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "role_id and menu_id are required")
	}

	flags := controller.Flags{
		CanView:   req.CanView,
		CanCreate: req.CanCreate,
		CanEdit:   req.CanEdit,
		CanDelete: req.CanDelete,
	}

	right, err := controller.Create(s.db, handler.Actor(c), req.RoleID, req.MenuID, flags, s.strategy)
	if err != nil {
		if errors.Is(err, controller.ErrRoleRightExists) {
			return handler.Fail(c, fiber.StatusConflict, "role right already exists for this role and menu")
		}

		log.Error().Err(err).Uint("role_id", req.RoleID).Uint("menu_id", req.MenuID).
			Msg("failed to create role right")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to create role right")
	}

	return c.Status(fiber.StatusCreated).JSON(right)
}

// Put handles role right updates.
func (s *Service) Put(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid role right id")
	}

	req := new(updateRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	flags := controller.Flags{
		CanView:   req.CanView,
		CanCreate: req.CanCreate,
		CanEdit:   req.CanEdit,
		CanDelete: req.CanDelete,
	}

	right, err := controller.Update(s.db, handler.Actor(c), uint(id), flags, s.strategy)
	if err != nil {
		if errors.Is(err, controller.ErrRoleRightNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "role right not found")
		}

		log.Error().Err(err).Int("id", id).Msg("failed to update role right")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to update role right")
	}

	return c.JSON(right)
}

// GetByRole lists the active role rights of a role.
func (s *Service) GetByRole(c *fiber.Ctx) error {
	roleID, err := c.ParamsInt("roleId")
	if err != nil || roleID <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid role id")
	}

	rights, err := controller.ListByRole(s.db, uint(roleID))
	if err != nil {
		log.Error().Err(err).Int("role_id", roleID).Msg("failed to list role rights")
		return handler.Fail(c, fiber.StatusInternalServerError, "failed to list role rights")
	}

	return c.JSON(rights)
}
