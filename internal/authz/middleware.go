package authz

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/evination/backoffice/internal/web/session"
)

// RequirePermission creates Fiber middleware that requires a specific
// permission. It rejects the request before any handler state is touched:
// 401 without a valid session, 403 when the session user's role lacks the
// permission.
func RequirePermission(svc *Service, permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get session cookie
		sessionID := c.Cookies("session")
		if sessionID == "" {
			log.Error().Msg("No session cookie found")
			return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
		}

		// Read session data
		sessionData := new(session.Data)
		if err := sessionData.Read(sessionID); err != nil {
			log.Error().Err(err).Msg("Failed to read session")
			return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
		}

		// Check if the session is valid
		if sessionData.User.ID == 0 {
			log.Error().Msg("Invalid session data")
			return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
		}

		// Check if the user has permission
		hasPermission, err := svc.UserHasPermission(sessionData.User.ID, permission)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", sessionData.User.ID).Str("permission", permission).
				Msg("Failed to check permission")

			return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
		}

		if !hasPermission {
			log.Warn().Uint64("user_id", sessionData.User.ID).Str("permission", permission).
				Msg("User lacks required permission")

			return c.Status(fiber.StatusForbidden).SendString("Forbidden: You don't have permission to access this resource")
		}

		// User has permission, proceed
		return c.Next()
	}
}

// SessionUser loads the session user for the current request. Returns nil
// when no valid session is present. Handlers use it to record the acting
// user in audit fields.
func SessionUser(c *fiber.Ctx) *session.Data {
	sessionID := c.Cookies("session")
	if sessionID == "" {
		return nil
	}

	sessionData := new(session.Data)
	if err := sessionData.Read(sessionID); err != nil {
		return nil
	}

	if sessionData.User.ID == 0 {
		return nil
	}

	return sessionData
}
