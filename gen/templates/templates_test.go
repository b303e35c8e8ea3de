package templates

import (
	"bytes"
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/broady/expressgen/gen/options"
	"github.com/broady/expressgen/gen/printer"
	"github.com/broady/expressgen/gen/verify"
)

func renderTemplate(t *testing.T, opts options.Options, id string) string {
	t.Helper()
	f, err := NewRegistry().Build(NewContext(opts, nil), id)
	require.NoError(t, err)
	out, err := printer.Print(f)
	require.NoError(t, err)
	return out
}

func normalized(t *testing.T, raw options.Raw) options.Options {
	t.Helper()
	opts, _ := options.Normalize(raw)
	return opts
}

var optionSets = []struct {
	name string
	raw  options.Raw
}{
	{"plain", options.Raw{ProjectName: "api"}},
	{"sequelize postgres jwt socketio ejs", options.Raw{
		ProjectName: "api", DatabaseOrm: "sequelize", Dialect: "postgres",
		AuthLib: "jwt", WebsocketLib: "socketio", ViewEngine: "ejs",
	}},
	{"sequelize sqlite", options.Raw{ProjectName: "api", DatabaseOrm: "sequelize", Dialect: "sqlite"}},
	{"typeorm mysql passport ws pug", options.Raw{
		ProjectName: "api", DatabaseOrm: "typeorm", Dialect: "mysql",
		AuthLib: "passport", WebsocketLib: "ws", ViewEngine: "pug",
	}},
	{"prisma session handlebars", options.Raw{
		ProjectName: "api", DatabaseOrm: "prisma", AuthLib: "express-session", ViewEngine: "handlebars",
	}},
	{"mongoose", options.Raw{ProjectName: "api", DatabaseOrm: "mongoose"}},
	{"unsupported everything", options.Raw{
		ProjectName: "api", DatabaseOrm: "drizzle", Dialect: "oracle",
		AuthLib: "oauth", WebsocketLib: "sockjs", ViewEngine: "nunjucks",
	}},
}

// TestTemplatesRoundTrip prints every template for several option sets and
// parses the result with tree-sitter.
func TestTemplatesRoundTrip(t *testing.T) {
	r := NewRegistry()
	for _, set := range optionSets {
		opts := normalized(t, set.raw)
		for _, tmpl := range r.All() {
			t.Run(set.name+"/"+tmpl.ID, func(t *testing.T) {
				f, err := r.Build(NewContext(opts, nil), tmpl.ID)
				require.NoError(t, err)
				out, err := printer.Print(f)
				require.NoError(t, err)
				require.NoError(t, verify.RoundTrip(context.Background(), f, out), out)
			})
		}
	}
}

func TestTemplatesIndependentFeatures(t *testing.T) {
	realtime := normalized(t, options.Raw{ProjectName: "api", WebsocketLib: "socketio"})
	withDatabase := normalized(t, options.Raw{ProjectName: "api", WebsocketLib: "socketio", DatabaseOrm: "mongoose"})
	withAuth := normalized(t, options.Raw{ProjectName: "api", WebsocketLib: "socketio", AuthLib: "jwt"})

	want := renderTemplate(t, realtime, "websocket")
	assert.Equal(t, want, renderTemplate(t, withDatabase, "websocket"))
	assert.Equal(t, want, renderTemplate(t, withAuth, "websocket"))

	sequelize := normalized(t, options.Raw{ProjectName: "api", DatabaseOrm: "sequelize"})
	sequelizeWS := normalized(t, options.Raw{ProjectName: "api", DatabaseOrm: "sequelize", WebsocketLib: "ws"})
	assert.Equal(t, renderTemplate(t, sequelize, "database"), renderTemplate(t, sequelizeWS, "database"))
	assert.Equal(t, renderTemplate(t, sequelize, "user.model"), renderTemplate(t, sequelizeWS, "user.model"))
}

func TestUserRoutesAuthentication(t *testing.T) {
	open := renderTemplate(t, normalized(t, options.Raw{ProjectName: "api"}), "user.routes")
	assert.Contains(t, open, `router.post("/", (req, res) => controller.create(req, res));`)
	assert.NotContains(t, open, "authenticate")

	guarded := renderTemplate(t, normalized(t, options.Raw{ProjectName: "api", AuthLib: "jwt"}), "user.routes")
	assert.Contains(t, guarded, `import { authenticate } from "../middleware/auth.middleware";`)
	assert.Contains(t, guarded, `router.post("/", authenticate, (req, res) => controller.create(req, res));`)
	assert.Contains(t, guarded, `router.get("/", (req, res) => controller.getAll(req, res));`)
}

func TestUserControllerSocket(t *testing.T) {
	out := renderTemplate(t, normalized(t, options.Raw{ProjectName: "api", WebsocketLib: "socketio"}), "user.controller")
	assert.Contains(t, out, `import { Server } from "socket.io";`)
	assert.Contains(t, out, "constructor(private io?: Server) {}")
	assert.Contains(t, out, `this.io.emit("user:created", user);`)

	plain := renderTemplate(t, normalized(t, options.Raw{ProjectName: "api", WebsocketLib: "ws"}), "user.controller")
	assert.NotContains(t, plain, "constructor")
	assert.NotContains(t, plain, "emit")
}

func TestUserControllerStores(t *testing.T) {
	tests := []struct {
		orm  string
		want []string
	}{
		{"none", []string{"const store: User[] = [];", "const users = store;", "store.find((u) => u.id === req.params.id)"}},
		{"sequelize", []string{"await User.findAll()", "await User.findByPk(req.params.id)"}},
		{"typeorm", []string{"private repository = AppDataSource.getRepository(UserEntity);", "await this.repository.find()"}},
		{"prisma", []string{"await prisma.user.findMany()", "data: req.body"}},
		{"mongoose", []string{"await User.find()", "await User.findByIdAndDelete(req.params.id)"}},
	}
	for _, tt := range tests {
		t.Run(tt.orm, func(t *testing.T) {
			out := renderTemplate(t, normalized(t, options.Raw{ProjectName: "api", DatabaseOrm: tt.orm}), "user.controller")
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
			assert.Contains(t, out, `res.status(500).json({ message: "Failed to fetch users", error });`)
		})
	}
}

var (
	// constDecl matches a single-line const declaration and captures its
	// name and initializer.
	constDecl  = regexp.MustCompile(`\bconst (\w+)(?::[^=]*)? = (.*);$`)
	stringLits = regexp.MustCompile("\"(?:[^\"\\\\]|\\\\.)*\"|`[^`]*`")
)

// TestNoSelfReferencingConst guards against a const whose initializer reads
// the binding being declared, which TypeScript rejects (TS2448) and which
// throws at runtime.
func TestNoSelfReferencingConst(t *testing.T) {
	for _, set := range optionSets {
		opts := normalized(t, set.raw)
		for _, tmpl := range NewRegistry().All() {
			out := renderTemplate(t, opts, tmpl.ID)
			for _, line := range strings.Split(out, "\n") {
				m := constDecl.FindStringSubmatch(strings.TrimSpace(line))
				if m == nil {
					continue
				}
				rhs := stringLits.ReplaceAllString(m[2], `""`)
				if regexp.MustCompile(`(?:^|[^.\w$])` + m[1] + `\b`).MatchString(rhs) {
					t.Errorf("%s/%s: %q reads itself", set.name, tmpl.ID, strings.TrimSpace(line))
				}
			}
		}
	}
}

func TestInMemoryGetAll(t *testing.T) {
	for _, raw := range []options.Raw{
		{ProjectName: "api"},
		{ProjectName: "api", DatabaseOrm: "drizzle"},
	} {
		out := renderTemplate(t, normalized(t, raw), "user.controller")
		assert.NotContains(t, out, "const users = users;")
		assert.Contains(t, out, "const users = store;\n")
		assert.Contains(t, out, "res.json(users);")
	}
}

// TestZeroOptionsMatchDefaults renders every template from an options record
// with empty library fields and from Defaults. Both describe a plain project.
func TestZeroOptionsMatchDefaults(t *testing.T) {
	for _, tmpl := range NewRegistry().All() {
		t.Run(tmpl.ID, func(t *testing.T) {
			zero := renderTemplate(t, options.Options{ProjectName: "api"}, tmpl.ID)
			assert.Equal(t, renderTemplate(t, options.Defaults("api"), tmpl.ID), zero)
			assert.NotContains(t, zero, "expressgen: unsupported")
		})
	}
}

func TestPlaceholders(t *testing.T) {
	opts := normalized(t, options.Raw{
		ProjectName: "api", DatabaseOrm: "drizzle", AuthLib: "oauth",
		WebsocketLib: "sockjs", ViewEngine: "nunjucks",
	})
	tests := []struct {
		id   string
		want string
	}{
		{"database", `// expressgen: unsupported databaseOrm "drizzle"`},
		{"user.model", `// expressgen: unsupported databaseOrm "drizzle"`},
		{"user.controller", `// expressgen: unsupported databaseOrm "drizzle"`},
		{"auth.middleware", `// expressgen: unsupported authLib "oauth"`},
		{"auth.config", `// expressgen: unsupported authLib "oauth"`},
		{"websocket", `// expressgen: unsupported websocketLib "sockjs"`},
		{"home.controller", `// expressgen: unsupported viewEngine "nunjucks"`},
		{"server", `// expressgen: unsupported viewEngine "nunjucks"`},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Contains(t, renderTemplate(t, opts, tt.id), tt.want)
		})
	}

	server := renderTemplate(t, opts, "server")
	assert.NotContains(t, server, "initializeWebSockets")
	assert.NotContains(t, server, `"view engine"`)
	assert.Contains(t, server, "connectToDatabase")
}

func TestCatalogOverrides(t *testing.T) {
	cat := DefaultCatalog()
	cat.Header = "Custom header."
	cat.DefaultPort = 8080
	cat.APIPrefix = "/v1"
	cat.Middlewares = cat.Middlewares[:1]

	f, err := NewRegistry().Build(NewContext(options.Defaults("api"), cat), "server")
	require.NoError(t, err)
	out, err := printer.Print(f)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "// Custom header.\n"))
	assert.Contains(t, out, "process.env.PORT || 8080")
	assert.Contains(t, out, `this.app.use("/v1", createRoutes());`)
	assert.Contains(t, out, "this.app.use(cors());")
	assert.NotContains(t, out, "helmet")
}

// TestGolden compares printed templates with the archives in testdata. Each
// archive holds an options.yaml manifest followed by expected files keyed by
// their default path.
func TestGolden(t *testing.T) {
	archives, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, archives)

	r := NewRegistry()
	byPath := make(map[string]*Template)
	for _, tmpl := range r.All() {
		byPath[tmpl.Path] = tmpl
	}

	for _, name := range archives {
		t.Run(filepath.Base(name), func(t *testing.T) {
			ar, err := txtar.ParseFile(name)
			require.NoError(t, err)
			require.NotEmpty(t, ar.Files)
			require.Equal(t, "options.yaml", ar.Files[0].Name)

			m, err := options.LoadManifest(bytes.NewReader(ar.Files[0].Data))
			require.NoError(t, err)
			opts, warns := options.Normalize(m.Options)
			require.Empty(t, warns)
			require.NoError(t, options.Validate(opts))

			for _, file := range ar.Files[1:] {
				tmpl, ok := byPath[file.Name]
				require.True(t, ok, "no template for %s", file.Name)
				f, err := r.Build(NewContext(opts, nil), tmpl.ID)
				require.NoError(t, err)
				got, err := printer.Print(f)
				require.NoError(t, err)
				assert.Equal(t, string(file.Data), got, file.Name)
			}
		})
	}
}
