package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/empsync/empsync-service/internal/api/dto"
	"github.com/empsync/empsync-service/internal/domain"
	"github.com/empsync/empsync-service/internal/service"
	apperrors "github.com/empsync/empsync-service/pkg/util/errorutil"
)

// AttendanceHandler exposes attendance tracking.
type AttendanceHandler struct {
	service *service.AttendanceService
}

// NewAttendanceHandler constructs handler.
func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: attendanceService}
}

// List GET /api/attendance.
func (h *AttendanceHandler) List(c *fiber.Ctx) error {
	date, err := parseDateQuery(c, "date")
	if err != nil {
		return err
	}
	_, _, limit, offset := parsePage(c)
	filters := service.AttendanceListFilters{
		Date:       date,
		EmployeeID: optionalQuery(c, "employee_id"),
		Limit:      limit,
		Offset:     offset,
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.AttendanceStatus(raw)
		if !status.Valid() {
			return apperrors.NewFieldErrors(map[string]string{"status": "unknown attendance status"})
		}
		filters.Status = &status
	}

	records, err := h.service.List(c.UserContext(), filters)
	if err != nil {
		return err
	}
	items := make([]dto.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		items = append(items, dto.NewAttendanceResponse(rec))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Mark POST /api/attendance.
func (h *AttendanceHandler) Mark(c *fiber.Ctx) error {
	var req dto.AttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	rec, err := h.service.Mark(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAttendanceResponse(*rec)})
}

// Update PUT /api/attendance/:id.
func (h *AttendanceHandler) Update(c *fiber.Ctx) error {
	var req dto.AttendanceUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	rec, err := h.service.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAttendanceResponse(*rec)})
}

// Delete DELETE /api/attendance/:id.
func (h *AttendanceHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Summary GET /api/attendance/summary.
func (h *AttendanceHandler) Summary(c *fiber.Ctx) error {
	date, err := parseDateQuery(c, "date")
	if err != nil {
		return err
	}
	summary, err := h.service.Summary(c.UserContext(), date)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}
