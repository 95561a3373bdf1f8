package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sustainaByte/orghub/internal/models"
	"github.com/sustainaByte/orghub/internal/services/auth"
	"github.com/sustainaByte/orghub/internal/services/departments"
)

type DepartmentsHandler struct {
	departments *departments.Service
}

func NewDepartmentsHandler(departmentService *departments.Service) *DepartmentsHandler {
	return &DepartmentsHandler{departments: departmentService}
}

func (h *DepartmentsHandler) Create(c *fiber.Ctx) error {
	var req models.CreateDepartmentRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	department, err := h.departments.Create(c.Context(), auth.GetPrincipal(c), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(department)
}

func (h *DepartmentsHandler) List(c *fiber.Ctx) error {
	list, err := h.departments.List(c.Context(), auth.GetPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

func (h *DepartmentsHandler) Get(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	department, err := h.departments.Get(c.Context(), auth.GetPrincipal(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(department)
}

func (h *DepartmentsHandler) Update(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req models.UpdateDepartmentRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	department, err := h.departments.Update(c.Context(), auth.GetPrincipal(c), id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(department)
}

func (h *DepartmentsHandler) Delete(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	department, err := h.departments.Delete(c.Context(), auth.GetPrincipal(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(department)
}
