// Package backend talks to the legacy employee REST API.
package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/empsync/empsync-service/internal/codec"
	"github.com/empsync/empsync-service/internal/domain"
)

const defaultTimeout = 5 * time.Second

// Client fetches employees from a remote backend.
type Client struct {
	baseURL string
	logger  *zap.Logger
}

// NewClient builds a client rooted at baseURL, e.g. http://localhost:5000/api.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), logger: logger}
}

// FetchEmployees issues GET {base}/employees and normalizes the response.
// The context deadline, when present, bounds the request.
func (c *Client) FetchEmployees(ctx context.Context) ([]domain.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	timeout := defaultTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	url := c.baseURL + "/employees"
	agent := fiber.Get(url).
		Timeout(timeout).
		Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("GET %s: %w", url, errors.Join(errs...))
	}
	if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
		return nil, fmt.Errorf("GET %s: unexpected status %d", url, status)
	}

	employees, err := codec.DecodeEmployees(body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	c.logger.Debug("fetched employees from backend", zap.String("url", url), zap.Int("count", len(employees)))
	return employees, nil
}
