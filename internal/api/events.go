package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sustainaByte/orghub/internal/models"
	"github.com/sustainaByte/orghub/internal/services/auth"
	"github.com/sustainaByte/orghub/internal/services/events"
)

type EventsHandler struct {
	events *events.Service
}

func NewEventsHandler(eventService *events.Service) *EventsHandler {
	return &EventsHandler{events: eventService}
}

func (h *EventsHandler) Create(c *fiber.Ctx) error {
	var req models.CreateEventRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	event, err := h.events.Create(c.Context(), auth.GetPrincipal(c), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

func (h *EventsHandler) List(c *fiber.Ctx) error {
	list, err := h.events.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

func (h *EventsHandler) ListPersonal(c *fiber.Ctx) error {
	list, err := h.events.ListPersonal(c.Context(), auth.GetPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

func (h *EventsHandler) Get(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	event, err := h.events.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(event)
}

func (h *EventsHandler) ToggleKudos(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	event, err := h.events.ToggleKudos(c.Context(), auth.GetPrincipal(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(event)
}

func (h *EventsHandler) Update(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req models.UpdateEventRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	event, err := h.events.Update(c.Context(), auth.GetPrincipal(c), id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(event)
}
