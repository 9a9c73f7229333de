package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/empsync/empsync-service/pkg/util/errorutil"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

func parseBoolQuery(c *fiber.Ctx, key string, defaultVal bool) bool {
	if val := c.Query(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func parseIntQuery(c *fiber.Ctx, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultVal
}

// parsePage returns page, page size, limit and offset.
func parsePage(c *fiber.Ctx) (int, int, int, int) {
	page := parseIntQuery(c, "page", 1)
	pageSize := parseIntQuery(c, "page_size", defaultPageSize)
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize, pageSize, (page - 1) * pageSize
}

func optionalQuery(c *fiber.Ctx, key string) *string {
	if val := c.Query(key); val != "" {
		return &val
	}
	return nil
}

func parseDateQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	val := c.Query(key)
	if val == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", val)
	if err != nil {
		return nil, apperrors.NewFieldErrors(map[string]string{key: "must match the layout 2006-01-02"})
	}
	return &t, nil
}

func invalidPayload() error {
	return apperrors.NewValidationError("invalid payload", nil)
}
