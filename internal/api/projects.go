package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sustainaByte/orghub/internal/models"
	"github.com/sustainaByte/orghub/internal/services/auth"
	"github.com/sustainaByte/orghub/internal/services/projects"
)

type ProjectsHandler struct {
	projects *projects.Service
}

func NewProjectsHandler(projectService *projects.Service) *ProjectsHandler {
	return &ProjectsHandler{projects: projectService}
}

func (h *ProjectsHandler) Create(c *fiber.Ctx) error {
	var req models.CreateProjectRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	project, err := h.projects.Create(c.Context(), auth.GetPrincipal(c), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

func (h *ProjectsHandler) List(c *fiber.Ctx) error {
	list, err := h.projects.List(c.Context(), auth.GetPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

func (h *ProjectsHandler) Get(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	details, err := h.projects.Get(c.Context(), auth.GetPrincipal(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(details)
}
