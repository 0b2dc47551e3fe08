package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/acme/login-api/internal/auth"
)

// RegisterAuthRoutes wires the login endpoint.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler) {
	r.Post("/login", h.Login)
}
