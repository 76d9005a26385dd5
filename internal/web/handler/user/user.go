// Package user exposes CRUD endpoints for user accounts.
package user

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/evination/backoffice/internal/authz"
	"github.com/evination/backoffice/internal/config"
	controller "github.com/evination/backoffice/internal/db/controller/user"
	"github.com/evination/backoffice/internal/db/models"
	"github.com/evination/backoffice/internal/web/handler"
)

const (
	// Path is the base path of the user endpoints.
	Path = "/users"
)

// Service is the user handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	db       *gorm.DB
	validate *validator.Validate
}

// Handler is the user handler.
var Handler = Service{}

// Init initializes the user handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *authz.Service) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New("app, cfg or db is nil")
	}

	s.db = db
	s.cfg = cfg
	s.validate = validator.New()

	app.Get("/organizations/:orgId/users", authz.RequirePermission(authService, authz.PermUserView), s.GetByOrganization)
	app.Get(Path+"/:id", authz.RequirePermission(authService, authz.PermUserView), s.Get)
	app.Post(Path, authz.RequirePermission(authService, authz.PermUserCreate), s.Post)
	app.Put(Path+"/:id", authz.RequirePermission(authService, authz.PermUserUpdate), s.Put)
	app.Delete(Path+"/:id", authz.RequirePermission(authService, authz.PermUserDelete), s.Delete)

	return nil
}

// view strips sensitive fields from a user for JSON responses.
type view struct {
	ID             uint64 `json:"id"`
	OrganizationID uint   `json:"organization_id"`
	BranchID       uint   `json:"branch_id"`
	DepartmentID   *uint  `json:"department_id,omitempty"`
	RoleID         uint   `json:"role_id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Phone          string `json:"phone"`
}

func toView(u *models.User) view {
	return view{
		ID:             u.ID,
		OrganizationID: u.OrganizationID,
		BranchID:       u.BranchID,
		DepartmentID:   u.DepartmentID,
		RoleID:         u.RoleID,
		Username:       u.Username,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Phone:          u.Phone,
	}
}

// createRequest is the body of a user creation.
type createRequest struct {
	OrganizationID uint   `json:"organization_id" validate:"required"`
	BranchID       uint   `json:"branch_id" validate:"required"`
	DepartmentID   *uint  `json:"department_id"`
	RoleID         uint   `json:"role_id" validate:"required"`
	Username       string `json:"username" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Phone          string `json:"phone"`
}

// updateRequest is the body of a user update. Username and password are
// immutable through this endpoint.
type updateRequest struct {
	OrganizationID uint   `json:"organization_id" validate:"required"`
	BranchID       uint   `json:"branch_id" validate:"required"`
	DepartmentID   *uint  `json:"department_id"`
	RoleID         uint   `json:"role_id" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Phone          string `json:"phone"`
}

// GetByOrganization lists the active users of an organization.
func (s *Service) GetByOrganization(c *fiber.Ctx) error {
	orgID, err := c.ParamsInt("orgId")
	if err != nil || orgID <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid organization id")
	}

	users, err := controller.GetByOrganization(s.db, uint(orgID))
	if err != nil {
		log.Error().Err(err).Int("organization_id", orgID).Msg("failed to list users")
		return handler.Fail(c, fiber.StatusInternalServerError, "failed to list users")
	}

	views := make([]view, 0, len(users))
	for i := range users {
		views = append(views, toView(&users[i]))
	}

	return c.JSON(views)
}

// Get retrieves one user.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid user id")
	}

	u, err := controller.Get(s.db, uint64(id))
	if err != nil {
		if errors.Is(err, controller.ErrUserNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "user not found")
		}

		log.Error().Err(err).Int("id", id).Msg("failed to load user")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to load user")
	}

	return c.JSON(toView(u))
}

// Post creates a user.
func (s *Service) Post(c *fiber.Ctx) error {
	req := new(createRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validate.Struct(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "missing or invalid user fields")
	}

	u := &models.User{
		OrganizationID: req.OrganizationID,
		BranchID:       req.BranchID,
		DepartmentID:   req.DepartmentID,
		RoleID:         req.RoleID,
		Username:       req.Username,
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
	}

	created, err := controller.Create(s.db, handler.Actor(c), u, req.Password)
	if err != nil {
		if errors.Is(err, controller.ErrUserExists) {
			return handler.Fail(c, fiber.StatusConflict, "username already taken")
		}

		log.Error().Err(err).Str("username", req.Username).Msg("failed to create user")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to create user")
	}

	return c.Status(fiber.StatusCreated).JSON(toView(created))
}

// Put updates a user.
func (s *Service) Put(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid user id")
	}

	req := new(updateRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validate.Struct(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "missing or invalid user fields")
	}

	existing, err := controller.Get(s.db, uint64(id))
	if err != nil {
		if errors.Is(err, controller.ErrUserNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "user not found")
		}

		log.Error().Err(err).Int("id", id).Msg("failed to load user")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to update user")
	}

	existing.OrganizationID = req.OrganizationID
	existing.BranchID = req.BranchID
	existing.DepartmentID = req.DepartmentID
	existing.RoleID = req.RoleID
	existing.Email = req.Email
	existing.FirstName = req.FirstName
	existing.LastName = req.LastName
	existing.Phone = req.Phone

	updated, err := controller.Update(s.db, handler.Actor(c), existing)
	if err != nil {
		log.Error().Err(err).Int("id", id).Msg("failed to update user")
		return handler.Fail(c, fiber.StatusInternalServerError, "failed to update user")
	}

	return c.JSON(toView(updated))
}

// Delete deactivates a user account.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid user id")
	}

	if err := controller.Delete(s.db, handler.Actor(c), uint64(id)); err != nil {
		if errors.Is(err, controller.ErrUserNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "user not found")
		}

		log.Error().Err(err).Int("id", id).Msg("failed to delete user")

		return handler.Fail(c, fiber.StatusInternalServerError, "failed to delete user")
	}

	return c.JSON(fiber.Map{"success": true})
}
