package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"alfredoptarigan/interview-coach/internal/handlers"
	"alfredoptarigan/interview-coach/internal/middleware"
	"alfredoptarigan/interview-coach/internal/services"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(restore)
	return logs
}

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return sr
}

func loggedStatus(t *testing.T, logs *observer.ObservedLogs) int64 {
	t.Helper()
	entries := logs.FilterMessage("http_response").TakeAll()
	require.Len(t, entries, 1)
	status, ok := entries[0].ContextMap()["status"].(int64)
	require.True(t, ok)
	return status
}

func spanStatus(t *testing.T, sr *tracetest.SpanRecorder) (int64, codes.Code) {
	t.Helper()
	spans := sr.Ended()
	require.NotEmpty(t, spans)
	span := spans[len(spans)-1]
	for _, kv := range span.Attributes() {
		if kv.Key == "http.status_code" {
			return kv.Value.AsInt64(), span.Status().Code
		}
	}
	t.Fatal("span has no http.status_code")
	return 0, codes.Unset
}

func newStatusApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Use(middleware.OTelFiberMiddleware("test"), middleware.AuditLogger())
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/missing", func(c *fiber.Ctx) error { return services.NotFound("Interview not found") })
	app.Get("/taken", func(c *fiber.Ctx) error { return services.Conflict("Question already answered") })
	app.Get("/invalid", func(c *fiber.Ctx) error { return services.InvalidInput("Only PDF files are allowed") })
	app.Get("/upstream", func(c *fiber.Ctx) error {
		return services.Upstream("Could not generate questions", errors.New("empty"))
	})
	app.Get("/me", middleware.Identity(), func(c *fiber.Ctx) error { return c.SendString("me") })
	return app
}

func TestMiddleware_RecordsRenderedStatus(t *testing.T) {
	cases := []struct {
		path     string
		want     int
		spanCode codes.Code
	}{
		{"/ok", http.StatusOK, codes.Ok},
		{"/missing", http.StatusNotFound, codes.Ok},
		{"/taken", http.StatusConflict, codes.Ok},
		{"/invalid", http.StatusBadRequest, codes.Ok},
		{"/me", http.StatusUnauthorized, codes.Ok},
		{"/upstream", http.StatusBadGateway, codes.Error},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			logs := observeLogs(t)
			sr := recordSpans(t)
			app := newStatusApp()

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)

			assert.Equal(t, int64(tc.want), loggedStatus(t, logs))

			code, spanCode := spanStatus(t, sr)
			assert.Equal(t, int64(tc.want), code)
			assert.Equal(t, tc.spanCode, spanCode)
		})
	}
}

func TestAuditLogger_ServiceErrorWithoutTracing(t *testing.T) {
	logs := observeLogs(t)

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Use(middleware.AuditLogger())
	app.Get("/resume", func(c *fiber.Ctx) error { return services.NotFound("Resume not found") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/resume", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, int64(http.StatusNotFound), loggedStatus(t, logs))
}
