package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/interview-coach/internal/logz"
	"alfredoptarigan/interview-coach/internal/services"
)

var statusByCode = map[services.ErrorCode]int{
	services.CodeInvalidInput: fiber.StatusBadRequest,
	services.CodeNotFound:     fiber.StatusNotFound,
	services.CodeConflict:     fiber.StatusConflict,
	services.CodeUnauthorized: fiber.StatusUnauthorized,
	services.CodeUpstream:     fiber.StatusBadGateway,
	services.CodeInternal:     fiber.StatusInternalServerError,
}

// ErrorHandler renders every error as {"error": msg, "code": status}.
// Internal causes are logged, never returned to the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var fe *fiber.Error
	var se *services.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
		message = fe.Message
	case errors.As(err, &se):
		if status, ok := statusByCode[se.Code]; ok {
			code = status
		}
		message = se.Reason
	}

	if code >= fiber.StatusInternalServerError {
		logz.WithTrace(c.UserContext(), logz.NewLogger(), c.Get(fiber.HeaderXRequestID)).
			Error("request failed", zap.String("path", c.Path()), zap.Int("status", code), zap.Error(err))
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
		"code":  code,
	})
}
