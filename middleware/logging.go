// Package middleware provides interceptors for expressgen projects.
package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/broady/expressgen"
)

// LoggingInterceptor creates an interceptor that logs renders using slog.
// It logs the start and end of each render, including duration, output size
// and error status.
func LoggingInterceptor(logger *slog.Logger) expressgen.Interceptor {
	if logger == nil {
		logger = slog.Default()
	}

	return func(ctx context.Context, job *expressgen.Job, next expressgen.RenderFunc) ([]byte, error) {
		start := time.Now()

		logger.DebugContext(ctx, "render started",
			slog.String("template", job.TemplateID),
			slog.String("path", job.Path),
		)

		out, err := next(ctx, job)
		duration := time.Since(start)

		if err != nil {
			logger.ErrorContext(ctx, "render failed",
				slog.String("template", job.TemplateID),
				slog.String("path", job.Path),
				slog.Duration("duration", duration),
				slog.Any("error", err),
			)
		} else {
			logger.InfoContext(ctx, "render completed",
				slog.String("template", job.TemplateID),
				slog.String("path", job.Path),
				slog.Duration("duration", duration),
				slog.Int("bytes", len(out)),
			)
		}

		return out, err
	}
}
