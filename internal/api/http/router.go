package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/empsync/empsync-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Employees   *handlers.EmployeesHandler
	Departments *handlers.DepartmentsHandler
	Attendance  *handlers.AttendanceHandler
	Performance *handlers.PerformanceHandler
	Dashboard   *handlers.DashboardHandler
	Metrics     http.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics))
	}

	api := app.Group("/api")

	employees := api.Group("/employees")
	employees.Get("/", cfg.Employees.List)
	employees.Post("/", cfg.Employees.Create)
	employees.Get("/export", cfg.Employees.Export)
	employees.Post("/import", cfg.Employees.Import)
	employees.Get("/:id", cfg.Employees.Get)
	employees.Put("/:id", cfg.Employees.Update)
	employees.Delete("/:id", cfg.Employees.Delete)

	departments := api.Group("/departments")
	departments.Get("/", cfg.Departments.List)
	departments.Post("/", cfg.Departments.Create)
	departments.Get("/stats", cfg.Departments.Stats)
	departments.Put("/:id", cfg.Departments.Update)

	attendance := api.Group("/attendance")
	attendance.Get("/", cfg.Attendance.List)
	attendance.Post("/", cfg.Attendance.Mark)
	attendance.Get("/summary", cfg.Attendance.Summary)
	attendance.Put("/:id", cfg.Attendance.Update)
	attendance.Delete("/:id", cfg.Attendance.Delete)

	performance := api.Group("/performance")
	performance.Get("/", cfg.Performance.List)
	performance.Post("/", cfg.Performance.Create)
	performance.Get("/summary", cfg.Performance.Summary)
	performance.Put("/:id", cfg.Performance.Update)
	performance.Delete("/:id", cfg.Performance.Delete)

	api.Get("/dashboard", cfg.Dashboard.Get)
	api.Post("/dashboard/refresh", cfg.Dashboard.Refresh)
	api.Get("/analytics", cfg.Dashboard.Analytics)
}
