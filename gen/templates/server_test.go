package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/expressgen/gen/ast"
	"github.com/broady/expressgen/gen/options"
	"github.com/broady/expressgen/gen/printer"
)

// constructorCalls returns the this.method() calls in the constructor of
// the first class in f, in order.
func constructorCalls(t *testing.T, f *ast.File) []string {
	t.Helper()
	for _, s := range f.Body {
		c, ok := s.(*ast.ClassDecl)
		if !ok {
			continue
		}
		for _, m := range c.Members {
			method, ok := m.(*ast.ClassMethod)
			if !ok || method.Kind != ast.MethodConstructor {
				continue
			}
			var calls []string
			for _, stmt := range method.Body {
				es, ok := stmt.(*ast.ExprStmt)
				if !ok {
					continue
				}
				call, ok := es.X.(*ast.Call)
				if !ok {
					continue
				}
				member, ok := call.Callee.(*ast.Member)
				if !ok {
					continue
				}
				if _, ok := member.Object.(*ast.This); ok {
					calls = append(calls, member.Property)
				}
			}
			return calls
		}
	}
	t.Fatal("no constructor found")
	return nil
}

func TestServerConstructorOrder(t *testing.T) {
	tests := []struct {
		name string
		opts func(*options.Options)
		want []string
	}{
		{
			name: "plain",
			opts: func(*options.Options) {},
			want: []string{"initializeMiddlewares", "initializeRoutes", "initializeErrorHandling"},
		},
		{
			name: "database and socket.io",
			opts: func(o *options.Options) {
				o.Database, o.DatabaseOrm, o.Dialect = true, options.ORMSequelize, options.DialectPostgres
				o.WebSockets, o.WebsocketLib = true, options.WebsocketSocketIO
			},
			want: []string{"initializeMiddlewares", "connectToDatabase", "initializeWebSockets", "initializeRoutes", "initializeErrorHandling"},
		},
		{
			name: "database only",
			opts: func(o *options.Options) {
				o.Database, o.DatabaseOrm, o.Dialect = true, options.ORMMongoose, options.DialectMongoDB
			},
			want: []string{"initializeMiddlewares", "connectToDatabase", "initializeRoutes", "initializeErrorHandling"},
		},
		{
			name: "ws only",
			opts: func(o *options.Options) {
				o.WebSockets, o.WebsocketLib = true, options.WebsocketWS
			},
			want: []string{"initializeMiddlewares", "initializeWebSockets", "initializeRoutes", "initializeErrorHandling"},
		},
		{
			name: "unsupported websocket library",
			opts: func(o *options.Options) {
				o.WebSockets, o.WebsocketLib = true, options.WebsocketLib("sockjs")
			},
			want: []string{"initializeMiddlewares", "initializeRoutes", "initializeErrorHandling"},
		},
	}

	r := NewRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options.Defaults("api")
			tt.opts(&opts)
			assert.Equal(t, tt.want, ServerSteps(opts))

			f, err := r.Build(NewContext(opts, nil), "server")
			require.NoError(t, err)
			assert.Equal(t, tt.want, constructorCalls(t, f))
		})
	}
}

func TestServerDeterministic(t *testing.T) {
	raw := options.Raw{
		ProjectName:  "api",
		DatabaseOrm:  "sequelize",
		WebsocketLib: "socketio",
		AuthLib:      "passport",
		ViewEngine:   "handlebars",
	}
	opts, warns := options.Normalize(raw)
	require.Empty(t, warns)

	r := NewRegistry()
	render := func() string {
		f, err := r.Build(NewContext(opts, nil), "server")
		require.NoError(t, err)
		out, err := printer.Print(f)
		require.NoError(t, err)
		return out
	}
	first := render()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, render())
	}
}

func TestServerFeatures(t *testing.T) {
	opts := options.Defaults("api")
	opts.Database, opts.DatabaseOrm, opts.Dialect = true, options.ORMPrisma, options.DialectPostgres
	opts.WebSockets, opts.WebsocketLib = true, options.WebsocketWS
	opts.Authentication, opts.AuthLib = true, options.AuthSession
	opts.View, opts.ViewEngine = true, options.ViewPug

	out := renderTemplate(t, opts, "server")
	for _, want := range []string{
		`import { createServer, Server as HttpServer } from "http";`,
		`import { WebSocketServer } from "ws";`,
		`import session from "express-session";`,
		`public app: ReturnType<typeof express>;`,
		`this.app = express();`,
		`this.httpServer = createServer(this.app);`,
		`this.wss = new WebSocketServer({ server: this.httpServer });`,
		`this.app.use(session(sessionConfig));`,
		`this.app.set("view engine", "pug");`,
		`this.app.get("/", (req, res) => home.index(req, res));`,
		`this.app.use("/api", createRoutes());`,
		`registerSocketHandlers(this.wss);`,
		`this.httpServer.listen(this.port, () => {`,
		"export default App;",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "socket.io")
}
