// Package templates holds the generators that turn normalized options into
// the files of an Express TypeScript server. Every generator is a pure
// function of its Context; output depends on nothing else.
package templates

import (
	"fmt"
	"sort"

	"github.com/broady/expressgen/gen/ast"
	"github.com/broady/expressgen/gen/build"
	"github.com/broady/expressgen/gen/ir"
	"github.com/broady/expressgen/gen/options"
)

// Context is the read-only input of a generator.
type Context struct {
	Options options.Options
	Catalog *Catalog
}

// NewContext returns a Context for opts. A nil catalog uses DefaultCatalog.
func NewContext(opts options.Options, catalog *Catalog) *Context {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Context{Options: opts, Catalog: catalog}
}

// GenerateFunc builds the IR of one file.
type GenerateFunc func(*Context) (*ir.Module, error)

// Template is a registered generator.
type Template struct {
	ID          string
	Path        string
	Description string
	Generate    GenerateFunc
}

// Registry maps template IDs to generators.
type Registry struct {
	byID map[string]*Template
}

// NewRegistry returns a registry holding every built-in template.
func NewRegistry() *Registry {
	r := &Registry{byID: make(map[string]*Template)}
	for _, t := range builtins() {
		if err := r.Register(t); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds t. IDs must be unique.
func (r *Registry) Register(t *Template) error {
	if t.ID == "" {
		return fmt.Errorf("template without ID")
	}
	if t.Generate == nil {
		return fmt.Errorf("template %s: nil Generate", t.ID)
	}
	if _, ok := r.byID[t.ID]; ok {
		return fmt.Errorf("template %s already registered", t.ID)
	}
	r.byID[t.ID] = t
	return nil
}

// Lookup returns the template registered under id.
func (r *Registry) Lookup(id string) (*Template, bool) {
	t, ok := r.byID[id]
	return t, ok
}

// All returns the templates sorted by ID.
func (r *Registry) All() []*Template {
	out := make([]*Template, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Build runs the generator for id and lowers its IR to a syntax tree.
func (r *Registry) Build(ctx *Context, id string) (*ast.File, error) {
	t, ok := r.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("unknown template %q", id)
	}
	m, err := t.Generate(ctx)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", id, err)
	}
	if m.Header == "" {
		m.Header = ctx.Catalog.Header
	}
	f, err := build.Module(m)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", id, err)
	}
	return f, nil
}

func builtins() []*Template {
	return []*Template{
		{ID: "server", Path: "src/server.ts", Description: "Express application class", Generate: Server},
		{ID: "index", Path: "src/index.ts", Description: "entry point that starts the server", Generate: Index},
		{ID: "routes", Path: "src/routes/index.ts", Description: "route aggregator", Generate: Routes},
		{ID: "user.routes", Path: "src/routes/user.routes.ts", Description: "user CRUD routes", Generate: UserRoutes},
		{ID: "user.controller", Path: "src/controllers/user.controller.ts", Description: "user CRUD handlers", Generate: UserController},
		{ID: "user.model", Path: "src/models/user.model.ts", Description: "user model for the selected ORM", Generate: UserModel},
		{ID: "database", Path: "src/config/database.ts", Description: "database connection", Generate: Database},
		{ID: "error.middleware", Path: "src/middleware/error.middleware.ts", Description: "error and not-found handlers", Generate: ErrorMiddleware},
		{ID: "auth.middleware", Path: "src/middleware/auth.middleware.ts", Description: "authentication guard", Generate: AuthMiddleware},
		{ID: "auth.config", Path: "src/config/auth.ts", Description: "authentication settings", Generate: AuthConfig},
		{ID: "auth.routes", Path: "src/routes/auth.routes.ts", Description: "login, register and logout routes", Generate: AuthRoutes},
		{ID: "auth.controller", Path: "src/controllers/auth.controller.ts", Description: "login, register and logout handlers", Generate: AuthController},
		{ID: "websocket", Path: "src/websocket/index.ts", Description: "realtime connection handlers", Generate: Websocket},
		{ID: "home.controller", Path: "src/controllers/home.controller.ts", Description: "renders the index view", Generate: HomeController},
	}
}
