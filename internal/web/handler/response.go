package handler

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Fail sends a JSON error response with the given status code.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ErrorResponse{Success: false, Message: message})
}
