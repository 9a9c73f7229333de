package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/empsync/empsync-service/internal/api/dto"
	"github.com/empsync/empsync-service/internal/service"
)

// DepartmentsHandler exposes the department catalogue.
type DepartmentsHandler struct {
	service *service.DepartmentService
}

// NewDepartmentsHandler constructs handler.
func NewDepartmentsHandler(departmentService *service.DepartmentService) *DepartmentsHandler {
	return &DepartmentsHandler{service: departmentService}
}

// List GET /api/departments.
func (h *DepartmentsHandler) List(c *fiber.Ctx) error {
	departments, err := h.service.List(c.UserContext(), !parseBoolQuery(c, "include_inactive", false))
	if err != nil {
		return err
	}
	items := make([]dto.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		items = append(items, dto.NewDepartmentResponse(d))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create POST /api/departments.
func (h *DepartmentsHandler) Create(c *fiber.Ctx) error {
	var req dto.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	dept, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewDepartmentResponse(*dept)})
}

// Update PUT /api/departments/:id.
func (h *DepartmentsHandler) Update(c *fiber.Ctx) error {
	var req dto.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	dept, err := h.service.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDepartmentResponse(*dept)})
}

// Stats GET /api/departments/stats.
func (h *DepartmentsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}
