package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type headerCarrier struct{ h *fasthttp.RequestHeader }

func (c headerCarrier) Get(key string) string { return string(c.h.Peek(key)) }

func (c headerCarrier) Set(key, val string) { c.h.Set(key, val) }

func (c headerCarrier) Keys() []string { return nil }

// OTelFiberMiddleware opens a server span per request and continues any
// trace propagated by the caller.
func OTelFiberMiddleware(serviceName string) fiber.Handler {
	tr := otel.Tracer(serviceName)

	return func(c *fiber.Ctx) error {
		ctx := otel.GetTextMapPropagator().Extract(c.UserContext(), headerCarrier{h: &c.Context().Request.Header})

		ctx, span := tr.Start(ctx, spanName(c), trace.WithSpanKind(trace.SpanKindServer))
		start := time.Now()
		defer span.End()

		c.SetUserContext(ctx)

		span.SetAttributes(
			attribute.String("http.method", c.Method()),
			attribute.String("http.target", c.OriginalURL()),
			attribute.String("net.peer.ip", c.IP()),
			attribute.String("user_agent", c.Get(fiber.HeaderUserAgent)),
		)

		err := c.Next()
		renderError(c, err)

		status := c.Response().StatusCode()
		span.SetAttributes(
			attribute.Int("http.status_code", status),
			attribute.Int64("http.duration_ms", time.Since(start).Milliseconds()),
		)
		if userID := UserID(c); userID != "" {
			span.SetAttributes(attribute.String("enduser.id", userID))
		}

		if err != nil {
			span.RecordError(err)
		}
		if status >= fiber.StatusInternalServerError {
			span.SetStatus(codes.Error, "server_error")
		} else {
			span.SetStatus(codes.Ok, "")
		}

		return nil
	}
}

func spanName(c *fiber.Ctx) string {
	path := c.Route().Path
	if path == "" {
		path = c.Path()
	}
	return strings.ToUpper(c.Method()) + " " + path
}
