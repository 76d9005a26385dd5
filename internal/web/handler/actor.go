package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/evination/backoffice/internal/authz"
	"github.com/evination/backoffice/internal/db/models"
)

// Actor resolves the acting user for audit fields. The permission middleware
// already rejected unauthenticated requests, so a missing session only
// happens in tests; those writes record the system actor.
func Actor(c *fiber.Ctx) string {
	if data := authz.SessionUser(c); data != nil {
		return data.User.Username
	}

	return models.SystemActor
}
