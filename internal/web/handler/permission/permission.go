// Package permission exposes the read side of the authorization subsystem:
// which permission codes a role holds. Answers come from the derived role
// permission store only.
package permission

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/evination/backoffice/internal/authz"
	"github.com/evination/backoffice/internal/config"
	"github.com/evination/backoffice/internal/web/handler"
)

const (
	// Path is the base path of the permission endpoints.
	Path = "/permissions"
)

// Service is the permission query handler service.
type Service struct {
	handler.Service
	cfg     *config.Config
	db      *gorm.DB
	authSvc *authz.Service
}

// Handler is the permission query handler.
var Handler = Service{}

// Init initializes the permission query handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *authz.Service) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New("app, cfg or db is nil")
	}

	s.db = db
	s.cfg = cfg
	s.authSvc = authService

	app.Get(Path+"/:roleId", authz.RequirePermission(authService, authz.PermRoleView), s.GetByRole)
	app.Get(Path+"/:roleId/check", authz.RequirePermission(authService, authz.PermRoleView), s.Check)

	return nil
}

// GetByRole lists the active permission codes of a role.
func (s *Service) GetByRole(c *fiber.Ctx) error {
	roleID, err := c.ParamsInt("roleId")
	if err != nil || roleID <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid role id")
	}

	codes, err := s.authSvc.ListPermissionCodes(uint(roleID))
	if err != nil {
		log.Error().Err(err).Int("role_id", roleID).Msg("failed to list permission codes")
		return handler.Fail(c, fiber.StatusInternalServerError, "failed to list permissions")
	}

	if codes == nil {
		codes = []string{}
	}

	return c.JSON(fiber.Map{"role_id": roleID, "permissions": codes})
}

// Check answers whether a role holds the permission code given in the
// "code" query parameter. An unknown code is a plain false, not an error.
func (s *Service) Check(c *fiber.Ctx) error {
	roleID, err := c.ParamsInt("roleId")
	if err != nil || roleID <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid role id")
	}

	code := c.Query("code")
	if code == "" {
		return handler.Fail(c, fiber.StatusBadRequest, "code query parameter is required")
	}

	has, err := s.authSvc.CheckPermission(uint(roleID), code)
	if err != nil {
		log.Error().Err(err).Int("role_id", roleID).Str("code", code).Msg("failed to check permission")
		return handler.Fail(c, fiber.StatusInternalServerError, "failed to check permission")
	}

	return c.JSON(fiber.Map{"role_id": roleID, "code": code, "granted": has})
}
