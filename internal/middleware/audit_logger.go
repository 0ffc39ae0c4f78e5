package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/interview-coach/internal/logz"
)

const RequestIDHeader = "X-Request-Id"

// AuditLogger writes one line per request and one per response.
func AuditLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		logger := logz.WithTrace(c.UserContext(), logz.NewLogger(), c.Get(RequestIDHeader))

		logger.Info("http_request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("req_body_bytes", len(c.Body())),
		)

		err := c.Next()
		renderError(c, err)

		status := c.Response().StatusCode()
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		}
		if userID := UserID(c); userID != "" {
			fields = append(fields, zap.String("user_id", userID))
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		logger.Info("http_response", fields...)

		return nil
	}
}

// renderError runs the app's error handler so the response status is final
// before it is logged. The error is consumed and must not be returned again.
func renderError(c *fiber.Ctx, err error) {
	if err == nil {
		return
	}
	if herr := c.App().ErrorHandler(c, err); herr != nil {
		_ = c.SendStatus(fiber.StatusInternalServerError)
	}
}
