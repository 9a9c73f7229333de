package http

import (
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
)

const uploadLimit = 10 << 20

// NewApp builds the fiber application with the service's JSON codec.
func NewApp(name string) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               name,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		BodyLimit:             uploadLimit,
		DisableStartupMessage: true,
	})
}
