package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sustainaByte/orghub/internal/models"
	"github.com/sustainaByte/orghub/internal/services/auth"
	"github.com/sustainaByte/orghub/internal/services/users"
)

// AuthHandler serves registration, login, token refresh and password flows.
type AuthHandler struct {
	users *users.Service
}

func NewAuthHandler(userService *users.Service) *AuthHandler {
	return &AuthHandler{users: userService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterOrganizationRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	tokens, err := h.users.RegisterOrganization(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tokens)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	tokens, err := h.users.Login(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tokens)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req struct {
		RefreshToken string `json:"refreshToken" validate:"required"`
	}
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	tokens, err := h.users.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tokens)
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req models.ForgotPasswordRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.users.ForgotPassword(c.Context(), &req); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req models.ResetPasswordRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	// The principal is present when the route was reached with a bearer
	// token; the reset-token path works unauthenticated.
	principal := auth.GetPrincipal(c)
	if err := h.users.ResetPassword(c.Context(), principal, &req); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
