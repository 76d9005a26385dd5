// Package login provides the local credential login and logout endpoints.
package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/evination/backoffice/internal/authz"
	"github.com/evination/backoffice/internal/config"
	userctl "github.com/evination/backoffice/internal/db/controller/user"
	"github.com/evination/backoffice/internal/web/handler"
	"github.com/evination/backoffice/internal/web/session"
)

const (
	// Path is the path of the login endpoint.
	Path = "/auth/login"

	// LogoutPath is the path of the logout endpoint.
	LogoutPath = "/auth/logout"
)

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg     *config.Config
	db      *gorm.DB
	authSvc *authz.Service
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *authz.Service) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New("app, cfg or db is nil")
	}

	s.db = db
	s.cfg = cfg
	s.authSvc = authService

	app.Post(Path, s.Post)
	app.Post(LogoutPath, s.Logout)

	return nil
}

// request is the login request body.
type request struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// response is the successful login response body.
type response struct {
	Success     bool     `json:"success"`
	UserID      uint64   `json:"user_id"`
	Username    string   `json:"username"`
	RoleID      uint     `json:"role_id"`
	Permissions []string `json:"permissions"`
}

// Post handles the login request. Unknown users, wrong passwords and
// deactivated accounts all yield the same 401 to avoid leaking which
// usernames exist.
func (s *Service) Post(c *fiber.Ctx) error {
	req := new(request)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	dbUser, err := userctl.GetByUsername(s.db, req.Username)
	if err != nil {
		if errors.Is(err, userctl.ErrUserNotFound) {
			return handler.Fail(c, fiber.StatusUnauthorized, "invalid username or password")
		}

		log.Error().Err(err).Msg("failed to look up user")

		return handler.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}

	if !dbUser.VerifyPassword(req.Password) {
		return handler.Fail(c, fiber.StatusUnauthorized, "invalid username or password")
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")
		return handler.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}

	userSession := &session.Data{
		User: *dbUser,
	}

	if err = userSession.Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("failed to write session")
		return handler.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}

	cookieSettings := &fiber.Cookie{
		Name:     handler.SessionCookie,
		Value:    sessionID,
		MaxAge:   int(s.cfg.Webserver.Session.ExpiryTime.Seconds()),
		Secure:   true,
		HTTPOnly: true,
		SameSite: "Lax",
	}

	if s.cfg.DevMode {
		cookieSettings.Secure = false
	}

	c.Cookie(cookieSettings)

	permissions, err := s.authSvc.UserPermissionCodes(dbUser.ID)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", dbUser.ID).Msg("failed to list user permissions")

		permissions = []string{}
	}

	log.Info().Str("username", dbUser.Username).Msg("user logged in")

	return c.JSON(response{
		Success:     true,
		UserID:      dbUser.ID,
		Username:    dbUser.Username,
		RoleID:      dbUser.RoleID,
		Permissions: permissions,
	})
}

// Logout handles user logout by clearing the session.
func (s *Service) Logout(c *fiber.Ctx) error {
	sessionID := c.Cookies(handler.SessionCookie)
	if sessionID != "" {
		if err := session.Destroy(sessionID); err != nil {
			log.Error().Err(err).Msg("failed to delete session")
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     handler.SessionCookie,
		Value:    "",
		MaxAge:   -1,
		Secure:   true,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{"success": true})
}
