// Package expressgen renders Express TypeScript projects from a small set of
// options. Each output file comes from a registered template generator; the
// generator builds IR, the builders lower it to a syntax tree and the printer
// serializes it.
//
//	err := expressgen.New(opts).
//	    WithSink(sink.NewFilesystemSink("./api", false)).
//	    WithInterceptor(middleware.LoggingInterceptor(nil)).
//	    Write(ctx, expressgen.Files("server", "index", "routes"))
package expressgen

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/broady/expressgen/gen/options"
	"github.com/broady/expressgen/gen/printer"
	"github.com/broady/expressgen/gen/sink"
	"github.com/broady/expressgen/gen/templates"
	"github.com/broady/expressgen/gen/verify"
)

// DefaultConcurrency bounds concurrent renders when WithConcurrency is not
// called.
const DefaultConcurrency = 4

// FileWrite asks for one template to be rendered. An empty Path uses the
// template's default destination.
type FileWrite struct {
	TemplateID string
	Path       string
}

// Files returns FileWrites for ids at their default paths.
func Files(ids ...string) []FileWrite {
	out := make([]FileWrite, 0, len(ids))
	for _, id := range ids {
		out = append(out, FileWrite{TemplateID: id})
	}
	return out
}

// Project renders templates for one set of options. Configure it with the
// With methods before calling Render or Write; a configured Project is safe
// for concurrent use.
type Project struct {
	opts         options.Options
	registry     *templates.Registry
	catalog      *templates.Catalog
	printer      printer.Config
	sink         sink.Sink
	interceptors []Interceptor
	concurrency  int
	verify       bool
}

// New returns a Project for opts using the built-in templates, the default
// catalog and the default printer configuration.
func New(opts options.Options) *Project {
	return &Project{
		opts:        opts,
		registry:    templates.NewRegistry(),
		catalog:     templates.DefaultCatalog(),
		printer:     printer.DefaultConfig(),
		concurrency: DefaultConcurrency,
	}
}

// WithSink sets where Write stores files.
func (p *Project) WithSink(s sink.Sink) *Project {
	p.sink = s
	return p
}

// WithPrinterConfig sets the output formatting.
func (p *Project) WithPrinterConfig(cfg printer.Config) *Project {
	p.printer = cfg
	return p
}

// WithCatalog replaces the generator data tables.
func (p *Project) WithCatalog(c *templates.Catalog) *Project {
	p.catalog = c
	return p
}

// WithRegistry replaces the template registry.
func (p *Project) WithRegistry(r *templates.Registry) *Project {
	p.registry = r
	return p
}

// WithInterceptor appends interceptors. The first one added runs outermost.
func (p *Project) WithInterceptor(i ...Interceptor) *Project {
	p.interceptors = append(p.interceptors, i...)
	return p
}

// WithConcurrency bounds the number of files rendered at once. n < 1 means 1.
func (p *Project) WithConcurrency(n int) *Project {
	if n < 1 {
		n = 1
	}
	p.concurrency = n
	return p
}

// WithVerification parses every printed file with tree-sitter and fails the
// render when the source does not round-trip.
func (p *Project) WithVerification() *Project {
	p.verify = true
	return p
}

// Options returns the options the project renders.
func (p *Project) Options() options.Options {
	return p.opts
}

// Render prints a single template.
func (p *Project) Render(ctx context.Context, id string) (string, error) {
	job, err := p.job(FileWrite{TemplateID: id})
	if err != nil {
		return "", err
	}
	out, err := p.chain()(ctx, job)
	if err != nil {
		return "", wrapJob(job, err)
	}
	return string(out), nil
}

// Write validates the options, then renders files concurrently and stores
// them in the configured sink. The first failure cancels the remaining
// renders and is returned as a *GenerateError.
func (p *Project) Write(ctx context.Context, files []FileWrite) error {
	if p.sink == nil {
		return fmt.Errorf("expressgen: no sink configured")
	}
	if err := options.Validate(p.opts); err != nil {
		return err
	}

	jobs := make([]*Job, 0, len(files))
	seen := make(map[string]string, len(files))
	for _, fw := range files {
		job, err := p.job(fw)
		if err != nil {
			return err
		}
		if prev, ok := seen[job.Path]; ok {
			return &GenerateError{TemplateID: job.TemplateID, Path: job.Path,
				Err: fmt.Errorf("path already written by template %s", prev)}
		}
		seen[job.Path] = job.TemplateID
		jobs = append(jobs, job)
	}

	render := p.chain()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for _, job := range jobs {
		g.Go(func() error {
			out, err := render(ctx, job)
			if err != nil {
				return wrapJob(job, err)
			}
			if err := p.sink.WriteFile(ctx, job.Path, out); err != nil {
				return wrapJob(job, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (p *Project) job(fw FileWrite) (*Job, error) {
	tmpl, ok := p.registry.Lookup(fw.TemplateID)
	if !ok {
		return nil, &GenerateError{TemplateID: fw.TemplateID, Path: fw.Path,
			Err: fmt.Errorf("unknown template")}
	}
	path := fw.Path
	if path == "" {
		path = tmpl.Path
	}
	if err := sink.ValidatePath(path); err != nil {
		return nil, &GenerateError{TemplateID: fw.TemplateID, Path: path, Err: err}
	}
	return &Job{TemplateID: tmpl.ID, Path: path, Options: p.opts}, nil
}

// render is the innermost RenderFunc: build, print and optionally verify.
func (p *Project) render(ctx context.Context, job *Job) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tctx := templates.NewContext(job.Options, p.catalog)
	f, err := p.registry.Build(tctx, job.TemplateID)
	if err != nil {
		return nil, err
	}
	out, err := printer.New(p.printer).Print(f)
	if err != nil {
		return nil, err
	}
	if p.verify {
		if err := verify.RoundTrip(ctx, f, out); err != nil {
			return nil, fmt.Errorf("verify: %w", err)
		}
	}
	return []byte(out), nil
}

func (p *Project) chain() RenderFunc {
	ic := chainInterceptors(p.interceptors)
	if ic == nil {
		return p.render
	}
	return func(ctx context.Context, job *Job) ([]byte, error) {
		return ic(ctx, job, p.render)
	}
}
