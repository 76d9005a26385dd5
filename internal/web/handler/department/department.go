// Package department exposes CRUD endpoints for branch departments.
package department

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/evination/backoffice/internal/authz"
	"github.com/evination/backoffice/internal/config"
	controller "github.com/evination/backoffice/internal/db/controller/department"
	"github.com/evination/backoffice/internal/db/models"
	"github.com/evination/backoffice/internal/web/handler"
)

const (
	// Path is the base path of the department endpoints.
	Path = "/departments"
)

// Service is the department handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	db       *gorm.DB
	validate *validator.Validate
}

// Handler is the department handler.
var Handler = Service{}

// Init initializes the department handler. Departments are managed under
// the branch permissions; they have no permission module of their own.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *authz.Service) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New("app, cfg or db is nil")
	}

	s.db = db
	s.cfg = cfg
	s.validate = validator.New()

	app.Get("/branches/:branchId/departments", authz.RequirePermission(authService, authz.PermBranchView), s.GetByBranch)
	app.Get(Path+"/:id", authz.RequirePermission(authService, authz.PermBranchView), s.Get)
	app.Post(Path, authz.RequirePermission(authService, authz.PermBranchUpdate), s.Post)
	app.Put(Path+"/:id", authz.RequirePermission(authService, authz.PermBranchUpdate), s.Put)
	app.Delete(Path+"/:id", authz.RequirePermission(authService, authz.PermBranchUpdate), s.Delete)

	return nil
}

// body is the create/update request body.
type body struct {
	BranchID    uint   `json:"branch_id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Code        string `json:"code" validate:"required"`
	Description string `json:"description"`
}

func (b *body) apply(dept *models.Department) {
	dept.BranchID = b.BranchID
	dept.Name = b.Name
	dept.Code = b.Code
	dept.Description = b.Description
}

// GetByBranch lists the active departments of a branch.
func (s *Service) GetByBranch(c *fiber.Ctx) error {
	branchID, err := c.ParamsInt("branchId")
	if err != nil || branchID <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid branch id")
	}

	depts, err := controller.GetByBranch(s.db, uint(branchID))
	if err != nil {
		log.Error().Err(err).Int("branch_id", branchID).Msg("failed to list departments")
		return handler.Fail(c, fiber.StatusInternalServerError, "failed to list departments")
	}

	return c.JSON(depts)
}

// Get retrieves one department.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid department id")
	}

	dept, err := controller.Get(s.db, uint(id))
	if err != nil {
		if errors.Is(err, controller.ErrDepartmentNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "department not found")
		}

		log.Error().Err(err).Int("id", id).Msg("failed to load department")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to load department")
	}

	return c.JSON(dept)
}

// Post creates a department.
func (s *Service) Post(c *fiber.Ctx) error {
	req := new(body)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validate.Struct(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "branch_id, name and code are required")
	}

	dept := new(models.Department)
	req.apply(dept)

	created, err := controller.Create(s.db, handler.Actor(c), dept)
	if err != nil {
		if errors.Is(err, controller.ErrDepartmentExists) {
			return handler.Fail(c, fiber.StatusConflict, "department already exists")
		}

		log.Error().Err(err).Str("code", req.Code).Msg("failed to create department")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to create department")
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// Put updates a department.
func (s *Service) Put(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid department id")
	}

	req := new(body)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validate.Struct(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "branch_id, name and code are required")
	}

	dept := &models.Department{ID: uint(id)}
	req.apply(dept)

	updated, err := controller.Update(s.db, handler.Actor(c), dept)
	if err != nil {
		if errors.Is(err, controller.ErrDepartmentNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "department not found")
		}

		log.Error().Err(err).Int("id", id).Msg("failed to update department")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to update department")
	}

	return c.JSON(updated)
}

// Delete deactivates a department.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid department id")
	}

	if err := controller.Delete(s.db, handler.Actor(c), uint(id)); err != nil {
		if errors.Is(err, controller.ErrDepartmentNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "department not found")
		}

		log.Error().Err(err).Int("id", id).Msg("failed to delete department")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to delete department")
	}

	return c.JSON(fiber.Map{"success": true})
}
