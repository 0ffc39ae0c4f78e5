package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const (
	DefaultBackoff        = 1200 * time.Millisecond
	DefaultAttemptTimeout = 30 * time.Second

	tracerName = "interview-coach/llm"
)

// Gateway asks an ordered list of candidate models for a completion and returns
// the first answer it gets. It never fails: an empty string means no candidate
// produced a completion.
type Gateway struct {
	completer      Completer
	candidates     []string
	backoff        time.Duration
	attemptTimeout time.Duration
	logger         *zap.Logger
}

type Option func(*Gateway)

func WithCandidates(models ...string) Option {
	return func(g *Gateway) {
		g.candidates = nil
		for _, m := range models {
			if m = strings.TrimSpace(m); m != "" {
				g.candidates = append(g.candidates, m)
			}
		}
	}
}

// WithBackoff sets the fixed wait between a failed candidate and the next one.
func WithBackoff(d time.Duration) Option {
	return func(g *Gateway) {
		if d >= 0 {
			g.backoff = d
		}
	}
}

// WithAttemptTimeout bounds each candidate request. Zero disables the bound.
func WithAttemptTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		if d >= 0 {
			g.attemptTimeout = d
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.logger = l
		}
	}
}

func NewGateway(completer Completer, opts ...Option) (*Gateway, error) {
	if completer == nil {
		return nil, errors.New("llm: completer must not be nil")
	}
	g := &Gateway{
		completer:      completer,
		backoff:        DefaultBackoff,
		attemptTimeout: DefaultAttemptTimeout,
		logger:         zap.L(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if len(g.candidates) == 0 {
		return nil, errors.New("llm: at least one candidate model is required")
	}
	return g, nil
}

// Candidates returns a copy of the priority list.
func (g *Gateway) Candidates() []string {
	return append([]string(nil), g.candidates...)
}

// Complete tries each candidate in order, one request at a time. The first
// success wins and its text is returned trimmed. Cancelling ctx stops the
// loop, including while waiting out the backoff.
func (g *Gateway) Complete(ctx context.Context, messages []ChatMessage, temperature float32) string {
	tracer := otel.Tracer(tracerName)

	for i, model := range g.candidates {
		if err := ctx.Err(); err != nil {
			g.logger.Warn("llm call abandoned", zap.Int("attempted", i), zap.Error(err))
			return ""
		}

		attemptCtx, span := tracer.Start(ctx, "llm.complete")
		span.SetAttributes(
			attribute.String("llm.model", model),
			attribute.Int("llm.attempt", i+1),
			attribute.Float64("llm.temperature", float64(temperature)),
		)

		text, err := g.attempt(attemptCtx, model, messages, temperature)
		if err == nil {
			span.SetStatus(codes.Ok, "")
			span.End()
			return strings.TrimSpace(text)
		}

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.End()

		g.logger.Warn("llm candidate failed",
			zap.String("model", model),
			zap.Int("attempt", i+1),
			zap.Int("candidates", len(g.candidates)),
			zap.Error(err),
		)

		if i == len(g.candidates)-1 {
			break
		}
		if !sleep(ctx, g.backoff) {
			g.logger.Warn("llm call abandoned during backoff", zap.Error(ctx.Err()))
			return ""
		}
	}

	return ""
}

func (g *Gateway) attempt(ctx context.Context, model string, messages []ChatMessage, temperature float32) (string, error) {
	if g.attemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.attemptTimeout)
		defer cancel()
	}
	return g.completer.Complete(ctx, model, messages, temperature)
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
