package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// RequestLogger logs each request and records its latency.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		elapsed := time.Since(start)

		status := c.Response().StatusCode()
		metrics.RecordRequest(RouteLabel(c), utils.CopyString(c.Method()), status, elapsed)

		logger.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", elapsed),
		)
		return err
	}
}

// RouteLabel returns the matched route pattern, or the request path when no
// route matched. Fiber reuses request buffers, so the result is copied before
// it is kept as a metric label.
func RouteLabel(c *fiber.Ctx) string {
	route := c.Route().Path
	if route == "" || route == "/" && c.Path() != "/" {
		route = c.Path()
	}
	return utils.CopyString(route)
}
