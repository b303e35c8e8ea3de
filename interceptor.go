package expressgen

import (
	"context"

	"github.com/broady/expressgen/gen/options"
)

// Job describes one render. Interceptors may inspect it; changing it
// affects only the render it was passed to.
type Job struct {
	TemplateID string
	Path       string
	Options    options.Options
}

// RenderFunc produces the content of one file.
type RenderFunc func(ctx context.Context, job *Job) ([]byte, error)

// Interceptor wraps a render. It may inspect or replace the job, transform
// the output, or return an error without calling next.
//
//	func timing(ctx context.Context, job *expressgen.Job, next expressgen.RenderFunc) ([]byte, error) {
//	    start := time.Now()
//	    out, err := next(ctx, job)
//	    log.Printf("%s took %v", job.TemplateID, time.Since(start))
//	    return out, err
//	}
type Interceptor func(ctx context.Context, job *Job, next RenderFunc) ([]byte, error)

// chainInterceptors combines interceptors into one. The first interceptor
// is the outermost.
func chainInterceptors(interceptors []Interceptor) Interceptor {
	switch len(interceptors) {
	case 0:
		return nil
	case 1:
		return interceptors[0]
	}
	return func(ctx context.Context, job *Job, final RenderFunc) ([]byte, error) {
		next := final
		for i := len(interceptors) - 1; i >= 0; i-- {
			current, inner := interceptors[i], next
			next = func(ctx context.Context, job *Job) ([]byte, error) {
				return current(ctx, job, inner)
			}
		}
		return next(ctx, job)
	}
}
