package logger

import (
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// WithRequest trả về entry có sẵn các field request (request_id, method, path, ip).
// Dùng trong middleware/error handler để trace theo request.
func WithRequest(c fiber.Ctx) *logrus.Entry {
	return GetAppLogger().WithFields(logrus.Fields{
		"request_id": c.Get("X-Request-ID"),
		"method":     c.Method(),
		"path":       c.Path(),
		"ip":         c.IP(),
	})
}
