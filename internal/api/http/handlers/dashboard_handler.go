package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/empsync/empsync-service/internal/analytics"
	"github.com/empsync/empsync-service/internal/api/dto"
	"github.com/empsync/empsync-service/internal/codec"
	"github.com/empsync/empsync-service/internal/domain"
	"github.com/empsync/empsync-service/internal/service"
)

// DashboardHandler serves the dashboard and analytics views.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: dashboardService}
}

type dashboardResponse struct {
	Source       string                 `json:"source"`
	State        string                 `json:"state"`
	Reason       string                 `json:"reason,omitempty"`
	FromDefaults bool                   `json:"fromDefaults"`
	LoadedAt     time.Time              `json:"loadedAt"`
	Analytics    domain.Analytics       `json:"analytics"`
	RecentHires  []codec.EmployeeRecord `json:"recentHires"`
}

func newDashboardResponse(view service.DashboardView) dashboardResponse {
	return dashboardResponse{
		Source:       string(view.Source),
		State:        string(view.State),
		Reason:       string(view.Reason),
		FromDefaults: view.FromDefaults,
		LoadedAt:     view.LoadedAt,
		Analytics:    view.Analytics,
		RecentHires:  dto.EmployeeRecords(view.RecentHires),
	}
}

// Get GET /api/dashboard.
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	view, err := h.service.Load(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": newDashboardResponse(view)})
}

// Refresh POST /api/dashboard/refresh.
func (h *DashboardHandler) Refresh(c *fiber.Ctx) error {
	view, err := h.service.Refresh(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": newDashboardResponse(view)})
}

// Analytics GET /api/analytics.
func (h *DashboardHandler) Analytics(c *fiber.Ctx) error {
	filter := analytics.EmployeeFilter{
		Department: c.Query("department"),
		Status:     domain.EmployeeStatus(c.Query("status")),
		Gender:     c.Query("gender"),
		Search:     c.Query("search"),
	}
	result, err := h.service.Analytics(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": result})
}
