package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

const malformedBody = "request body must be a JSON object with email and password"

// Handler exposes the login endpoint.
type Handler struct {
	svc    *Service
	logger *slog.Logger
}

func NewHandler(svc *Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Login validates the body, authenticates it and returns the user's name and email.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req Credentials
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, malformedBody)
	}

	creds, err := ValidateCredentials(req)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return fiber.NewError(http.StatusBadRequest, verr.Error())
		}
		return fiber.NewError(http.StatusBadRequest, malformedBody)
	}

	user, err := h.svc.Authenticate(c.UserContext(), creds.Email, creds.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return fiber.NewError(http.StatusUnauthorized, ErrInvalidCredentials.Error())
		}
		h.logger.Error("login failed", "error", err)
		return fiber.NewError(http.StatusInternalServerError, "internal server error")
	}

	return c.Status(http.StatusOK).JSON(user)
}
