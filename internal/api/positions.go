package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sustainaByte/orghub/internal/models"
	"github.com/sustainaByte/orghub/internal/services/auth"
	"github.com/sustainaByte/orghub/internal/services/positions"
)

type PositionsHandler struct {
	positions *positions.Service
}

func NewPositionsHandler(positionService *positions.Service) *PositionsHandler {
	return &PositionsHandler{positions: positionService}
}

func (h *PositionsHandler) Create(c *fiber.Ctx) error {
	var req models.CreatePositionRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	position, err := h.positions.Create(c.Context(), auth.GetPrincipal(c), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(position)
}

func (h *PositionsHandler) List(c *fiber.Ctx) error {
	list, err := h.positions.List(c.Context(), auth.GetPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

func (h *PositionsHandler) Update(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req models.UpdatePositionRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	position, err := h.positions.Update(c.Context(), auth.GetPrincipal(c), id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(position)
}

func (h *PositionsHandler) Delete(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	position, err := h.positions.Delete(c.Context(), auth.GetPrincipal(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(position)
}
