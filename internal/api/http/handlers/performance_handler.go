package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/empsync/empsync-service/internal/api/dto"
	"github.com/empsync/empsync-service/internal/domain"
	"github.com/empsync/empsync-service/internal/service"
	apperrors "github.com/empsync/empsync-service/pkg/util/errorutil"
)

// PerformanceHandler exposes performance reviews.
type PerformanceHandler struct {
	service *service.PerformanceService
}

// NewPerformanceHandler constructs handler.
func NewPerformanceHandler(performanceService *service.PerformanceService) *PerformanceHandler {
	return &PerformanceHandler{service: performanceService}
}

func parsePerformanceFilters(c *fiber.Ctx) (service.PerformanceListFilters, error) {
	_, _, limit, offset := parsePage(c)
	filters := service.PerformanceListFilters{
		EmployeeID: optionalQuery(c, "employee_id"),
		Limit:      limit,
		Offset:     offset,
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.ReviewStatus(raw)
		if !status.Valid() {
			return filters, apperrors.NewFieldErrors(map[string]string{"status": "must be one of: Draft Submitted Completed"})
		}
		filters.Status = &status
	}
	return filters, nil
}

// List GET /api/performance.
func (h *PerformanceHandler) List(c *fiber.Ctx) error {
	filters, err := parsePerformanceFilters(c)
	if err != nil {
		return err
	}
	reviews, err := h.service.List(c.UserContext(), filters)
	if err != nil {
		return err
	}
	items := make([]dto.PerformanceReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		items = append(items, dto.NewPerformanceReviewResponse(r))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create POST /api/performance.
func (h *PerformanceHandler) Create(c *fiber.Ctx) error {
	var req dto.PerformanceReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	review, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewPerformanceReviewResponse(*review)})
}

// Update PUT /api/performance/:id.
func (h *PerformanceHandler) Update(c *fiber.Ctx) error {
	var req dto.PerformanceReviewUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	review, err := h.service.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPerformanceReviewResponse(*review)})
}

// Delete DELETE /api/performance/:id.
func (h *PerformanceHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Summary GET /api/performance/summary.
func (h *PerformanceHandler) Summary(c *fiber.Ctx) error {
	filters, err := parsePerformanceFilters(c)
	if err != nil {
		return err
	}
	summary, err := h.service.Summary(c.UserContext(), filters)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}
