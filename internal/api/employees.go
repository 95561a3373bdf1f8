package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sustainaByte/orghub/internal/models"
	"github.com/sustainaByte/orghub/internal/services/auth"
	"github.com/sustainaByte/orghub/internal/services/users"
)

// EmployeesHandler serves employee management and timesheets.
type EmployeesHandler struct {
	users *users.Service
}

func NewEmployeesHandler(userService *users.Service) *EmployeesHandler {
	return &EmployeesHandler{users: userService}
}

func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	var req models.CreateEmployeeRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	employee, err := h.users.CreateEmployee(c.Context(), auth.GetPrincipal(c), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(employee)
}

func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	employee, err := h.users.GetEmployee(c.Context(), auth.GetPrincipal(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(employee)
}

func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req models.UpdateEmployeeRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	employee, err := h.users.UpdateEmployee(c.Context(), auth.GetPrincipal(c), id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(employee)
}

// List filters employees by project or department, given as query params.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	principal := auth.GetPrincipal(c)

	if projectID := c.Query("projectId"); projectID != "" {
		rows, err := h.users.ListEmployeesByProject(c.Context(), principal, projectID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(rows)
	}
	if departmentID := c.Query("departmentId"); departmentID != "" {
		rows, err := h.users.ListEmployeesByDepartment(c.Context(), principal, departmentID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(rows)
	}
	return respondError(c, models.NewBadRequestError("projectId or departmentId is required", nil))
}

func (h *EmployeesHandler) CreateTimesheet(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req models.CreateTimesheetRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	entry, err := h.users.CreateTimesheet(c.Context(), auth.GetPrincipal(c), id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (h *EmployeesHandler) GetTimesheets(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	startMs, err := queryInt64(c, "startTime")
	if err != nil {
		return respondError(c, err)
	}
	endMs, err := queryInt64(c, "endTime")
	if err != nil {
		return respondError(c, err)
	}

	grouped, err := h.users.GetTimesheets(c.Context(), auth.GetPrincipal(c), id, startMs, endMs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(grouped)
}

func queryInt64(c *fiber.Ctx, name string) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, models.NewBadRequestError(name+" is required", nil)
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, models.NewBadRequestError(name+" must be epoch milliseconds", err)
	}
	return value, nil
}
