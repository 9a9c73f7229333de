package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/empsync/empsync-service/internal/api/dto"
	"github.com/empsync/empsync-service/internal/codec"
	"github.com/empsync/empsync-service/internal/domain"
	"github.com/empsync/empsync-service/internal/service"
	apperrors "github.com/empsync/empsync-service/pkg/util/errorutil"
)

// EmployeesHandler exposes employee CRUD plus export and import.
type EmployeesHandler struct {
	employees *service.EmployeeService
	dashboard *service.DashboardService
	exporter  *service.ExportService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employees *service.EmployeeService, dashboard *service.DashboardService, exporter *service.ExportService) *EmployeesHandler {
	return &EmployeesHandler{employees: employees, dashboard: dashboard, exporter: exporter}
}

// List GET /api/employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	page, pageSize, limit, offset := parsePage(c)
	filters := service.EmployeeListFilters{
		Department: optionalQuery(c, "department"),
		Gender:     optionalQuery(c, "gender"),
		Search:     c.Query("search"),
		Limit:      limit,
		Offset:     offset,
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.EmployeeStatus(raw)
		if !status.Valid() {
			return apperrors.NewFieldErrors(map[string]string{"status": "must be one of: Active Inactive"})
		}
		filters.Status = &status
	}

	employees, err := h.employees.List(c.UserContext(), filters)
	if err != nil {
		return err
	}
	return c.JSON(dto.EmployeeListResponse{
		Success:   true,
		Employees: dto.EmployeeRecords(employees),
		Page:      page,
		PageSize:  pageSize,
	})
}

// Create POST /api/employees.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	var req dto.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	employee, err := h.employees.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": codec.FromDomain(*employee)})
}

// Get GET /api/employees/:id.
func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	employee, err := h.employees.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": codec.FromDomain(*employee)})
}

// Update PUT /api/employees/:id.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	var req dto.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	employee, err := h.employees.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": codec.FromDomain(*employee)})
}

// Delete DELETE /api/employees/:id.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	if err := h.employees.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Export GET /api/employees/export. It exports whatever the dashboard
// currently shows, so it also works on fallback data.
func (h *EmployeesHandler) Export(c *fiber.Ctx) error {
	format, err := service.ParseExportFormat(c.Query("format"))
	if err != nil {
		return err
	}
	employees, err := h.dashboard.Employees(c.UserContext())
	if err != nil {
		return err
	}
	file, err := h.exporter.Export(format, employees)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Attachment(file.Filename)
	return c.Send(file.Body)
}

// Import POST /api/employees/import (multipart field "file").
func (h *EmployeesHandler) Import(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewFieldErrors(map[string]string{"file": "is required"})
	}
	file, err := header.Open()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	defer file.Close()

	report, err := h.exporter.ImportXLSX(c.UserContext(), file)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": report})
}
