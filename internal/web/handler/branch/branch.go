// Package branch exposes CRUD endpoints for organization branches.
package branch

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/evination/backoffice/internal/authz"
	"github.com/evination/backoffice/internal/config"
	controller "github.com/evination/backoffice/internal/db/controller/branch"
	"github.com/evination/backoffice/internal/db/models"
	"github.com/evination/backoffice/internal/web/handler"
)

const (
	// Path is the base path of the branch endpoints.
	Path = "/branches"
)

// Service is the branch handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	db       *gorm.DB
	validate *validator.Validate
}

// Handler is the branch handler.
var Handler = Service{}

// Init initializes the branch handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *authz.Service) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New("app, cfg or db is nil")
	}

	s.db = db
	s.cfg = cfg
	s.validate = validator.New()

	app.Get("/organizations/:orgId/branches", authz.RequirePermission(authService, authz.PermBranchView), s.GetByOrganization)
	app.Get(Path+"/:id", authz.RequirePermission(authService, authz.PermBranchView), s.Get)
	app.Post(Path, authz.RequirePermission(authService, authz.PermBranchCreate), s.Post)
	app.Put(Path+"/:id", authz.RequirePermission(authService, authz.PermBranchUpdate), s.Put)
	app.Delete(Path+"/:id", authz.RequirePermission(authService, authz.PermBranchDelete), s.Delete)

	return nil
}

// body is the create/update request body.
type body struct {
	OrganizationID uint   `json:"organization_id" validate:"required"`
	Name           string `json:"name" validate:"required"`
	Code           string `json:"code" validate:"required"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	City           string `json:"city"`
	State          string `json:"state"`
	Country        string `json:"country"`
	Pincode        string `json:"pincode"`
	IsHeadOffice   bool   `json:"is_head_office"`
}

func (b *body) apply(branch *models.Branch) {
	branch.OrganizationID = b.OrganizationID
	branch.Name = b.Name
	branch.Code = b.Code
	branch.Email = b.Email
	branch.Phone = b.Phone
	branch.Address = b.Address
	branch.City = b.City
	branch.State = b.State
	branch.Country = b.Country
	branch.Pincode = b.Pincode
	branch.IsHeadOffice = b.IsHeadOffice
}

// GetByOrganization lists the active branches of an organization.
func (s *Service) GetByOrganization(c *fiber.Ctx) error {
	orgID, err := c.ParamsInt("orgId")
	if err != nil || orgID <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid organization id")
	}

	branches, err := controller.GetByOrganization(s.db, uint(orgID))
	if err != nil {
		log.Error().Err(err).Int("organization_id", orgID).Msg("failed to list branches")
		return handler.Fail(c, fiber.StatusInternalServerError, "failed to list branches")
	}

	return c.JSON(branches)
}

// Get retrieves one branch.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid branch id")
	}

	branch, err := controller.Get(s.db, uint(id))
	if err != nil {
		if errors.Is(err, controller.ErrBranchNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "branch not found")
		}

		log.Error().Err(err).Int("id", id).Msg("failed to load branch")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to load branch")
	}

	return c.JSON(branch)
}

// Post creates a branch.
func (s *Service) Post(c *fiber.Ctx) error {
	req := new(body)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validate.Struct(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "organization_id, name and code are required")
	}

	branch := new(models.Branch)
	req.apply(branch)

	created, err := controller.Create(s.db, handler.Actor(c), branch)
	if err != nil {
		if errors.Is(err, controller.ErrBranchExists) {
			return handler.Fail(c, fiber.StatusConflict, "branch already exists")
		}

		log.Error().Err(err).Str("code", req.Code).Msg("failed to create branch")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to create branch")
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// Put updates a branch.
func (s *Service) Put(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid branch id")
	}

	req := new(body)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validate.Struct(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "organization_id, name and code are required")
	}

	branch := &models.Branch{ID: uint(id)}
	req.apply(branch)

	updated, err := controller.Update(s.db, handler.Actor(c), branch)
	if err != nil {
		if errors.Is(err, controller.ErrBranchNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "branch not found")
		}

		log.Error().Err(err).Int("id", id).Msg("failed to update branch")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to update branch")
	}

	return c.JSON(updated)
}

// Delete deactivates a branch.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid branch id")
	}

	if err := controller.Delete(s.db, handler.Actor(c), uint(id)); err != nil {
		if errors.Is(err, controller.ErrBranchNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "branch not found")
		}

		log.Error().Err(err).Int("id", id).Msg("failed to delete branch")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to delete branch")
	}

	return c.JSON(fiber.Map{"success": true})
}
