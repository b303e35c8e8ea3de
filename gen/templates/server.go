package templates

import (
	"github.com/broady/expressgen/gen/ir"
	"github.com/broady/expressgen/gen/options"
)

// Constructor call order of the generated App class. Disabled features drop
// out without reordering the rest.
const (
	stepMiddlewares   = "initializeMiddlewares"
	stepDatabase      = "connectToDatabase"
	stepWebSockets    = "initializeWebSockets"
	stepRoutes        = "initializeRoutes"
	stepErrorHandling = "initializeErrorHandling"
)

// Server generates src/server.ts, the App class that wires middleware,
// database, realtime transport, routes and error handling.
func Server(ctx *Context) (*ir.Module, error) {
	o := ctx.Options
	cat := ctx.Catalog
	m := &ir.Module{}

	m.Import(ir.DefaultImport("express", "express"))
	for _, mw := range cat.Middlewares {
		m.Import(ir.DefaultImport(mw.Module, mw.Name))
	}

	realtime := o.WebsocketLib.Enabled() && o.WebsocketLib.Known()
	if realtime {
		m.Import(ir.ImportConfig{Module: "http", Named: []ir.NamedImport{
			{Name: "createServer"},
			{Name: "Server", Alias: "HttpServer"},
		}})
	}
	switch o.WebsocketLib {
	case options.WebsocketSocketIO:
		m.Import(ir.Import("socket.io", "Server"))
	case options.WebsocketWS:
		m.Import(ir.Import("ws", "WebSocketServer"))
	}

	switch o.ViewEngine {
	case options.ViewEJS, options.ViewPug:
		m.Import(ir.DefaultImport("path", "path"))
	case options.ViewHandlebars:
		m.Import(ir.DefaultImport("path", "path"), ir.Import("express-handlebars", "engine"))
	}

	switch o.AuthLib {
	case options.AuthPassport:
		m.Import(ir.DefaultImport("passport", "passport"), ir.ImportConfig{Module: "./config/auth", SideEffect: true})
	case options.AuthSession:
		m.Import(ir.DefaultImport("express-session", "session"), ir.Import("./config/auth", "sessionConfig"))
	}

	m.Import(ir.Import("./routes", "createRoutes"))
	if o.ViewEngine.Enabled() {
		m.Import(ir.Import("./controllers/home.controller", "HomeController"))
	}
	m.Import(ir.Import("./middleware/error.middleware", "errorHandler", "notFoundHandler"))
	database := o.DatabaseOrm.Enabled()
	if database {
		m.Import(ir.Import("./config/database", "connectDatabase"))
	}
	if realtime {
		m.Import(ir.Import("./websocket", "registerSocketHandlers"))
	}

	for _, c := range serverPlaceholders(o) {
		m.Add(c)
	}

	class := &ir.ClassDefinition{
		Name: "App",
		Properties: []ir.Property{
			{Name: "app", Type: ir.ReturnTypeOf("express"), Access: ir.AccessPublic},
			{Name: "port", Type: ir.Type("number | string"), Access: ir.AccessPublic},
		},
	}

	ctor := &ir.ConstructorDefinition{
		Features: []ir.ConstructorFeature{
			{Feature: "express", Property: "app", Caller: "express"},
		},
	}
	if realtime {
		class.Properties = append(class.Properties, ir.Property{Name: "httpServer", Type: ir.Type("HttpServer"), Access: ir.AccessPrivate})
		ctor.Features = append(ctor.Features, ir.ConstructorFeature{
			Feature: "http", Property: "httpServer", Caller: "createServer", Argument: "this.app",
		})
	}
	switch o.WebsocketLib {
	case options.WebsocketSocketIO:
		class.Properties = append(class.Properties, ir.Property{Name: "io", Type: ir.Type("Server"), Access: ir.AccessPublic})
		ctor.Features = append(ctor.Features, ir.ConstructorFeature{
			Feature: "socket.io", Property: "io", Caller: "Server", CalleeKind: ir.CalleeConstructor, Argument: "this.httpServer",
		})
	case options.WebsocketWS:
		class.Properties = append(class.Properties, ir.Property{Name: "wss", Type: ir.Type("WebSocketServer"), Access: ir.AccessPublic})
	}

	ctor.Body = append(ctor.Body, ir.Assign("this", "port", env("PORT", cat.DefaultPort)))
	if o.WebsocketLib == options.WebsocketWS {
		ctor.Body = append(ctor.Body, ir.Assign("this", "wss",
			ir.New("WebSocketServer", ir.Obj(ir.F("server", this("httpServer"))))))
	}
	for _, step := range ServerSteps(o) {
		ctor.Body = append(ctor.Body, callThis(step))
	}
	class.Constructor = ctor

	class.Methods = append(class.Methods, ir.MethodDefinition{
		Name:       stepMiddlewares,
		Access:     ir.AccessPrivate,
		ReturnType: "void",
		Body:       middlewareBody(ctx),
	})
	if database {
		class.Methods = append(class.Methods, ir.MethodDefinition{
			Name:       stepDatabase,
			Access:     ir.AccessPrivate,
			Async:      true,
			ReturnType: "Promise<void>",
			Body: ir.Block(ir.Try(
				ir.Block(
					ir.AwaitStmt(ir.Call("connectDatabase")),
					consoleLog(ir.Lit("Database connected")),
				),
				"error",
				ir.Block(
					consoleError(ir.Lit("Database connection failed:"), ir.Ident("error")),
					ir.Invoke("process", "exit", "", ir.Lit(1)),
				),
			)),
		})
	}
	if realtime {
		transport := "io"
		if o.WebsocketLib == options.WebsocketWS {
			transport = "wss"
		}
		class.Methods = append(class.Methods, ir.MethodDefinition{
			Name:       stepWebSockets,
			Access:     ir.AccessPrivate,
			ReturnType: "void",
			Body:       ir.Block(ir.CallStmt("registerSocketHandlers", this(transport))),
		})
	}
	class.Methods = append(class.Methods,
		ir.MethodDefinition{
			Name:       stepRoutes,
			Access:     ir.AccessPrivate,
			ReturnType: "void",
			Body:       routesBody(ctx),
		},
		ir.MethodDefinition{
			Name:       stepErrorHandling,
			Access:     ir.AccessPrivate,
			ReturnType: "void",
			Body: ir.Block(
				ir.Invoke("this.app", "use", "", ir.Ident("notFoundHandler")),
				ir.Invoke("this.app", "use", "", ir.Ident("errorHandler")),
			),
		},
	)

	listener := "this.app"
	if realtime {
		listener = "this.httpServer"
	}
	class.Methods = append(class.Methods, ir.MethodDefinition{
		Name:       "start",
		Access:     ir.AccessPublic,
		ReturnType: "void",
		Body: ir.Block(ir.Invoke(listener, "listen", "", this("port"),
			ir.Arrow(nil, consoleLog(ir.Template([]string{"Server running on port ", ""}, this("port")))),
		)),
	})

	m.Add(class)
	m.Export(ir.ExportDefault("App"))
	return m, nil
}

// ServerSteps returns the initialization methods the App constructor calls,
// in call order.
func ServerSteps(o options.Options) []string {
	steps := []string{stepMiddlewares}
	if o.DatabaseOrm.Enabled() {
		steps = append(steps, stepDatabase)
	}
	if o.WebsocketLib.Enabled() && o.WebsocketLib.Known() {
		steps = append(steps, stepWebSockets)
	}
	return append(steps, stepRoutes, stepErrorHandling)
}

func serverPlaceholders(o options.Options) []*ir.Comment {
	var out []*ir.Comment
	if !o.DatabaseOrm.Known() {
		out = append(out, placeholder("databaseOrm", string(o.DatabaseOrm)))
	}
	if !o.AuthLib.Known() {
		out = append(out, placeholder("authLib", string(o.AuthLib)))
	}
	if !o.WebsocketLib.Known() {
		out = append(out, placeholder("websocketLib", string(o.WebsocketLib)))
	}
	if !o.ViewEngine.Known() {
		out = append(out, placeholder("viewEngine", string(o.ViewEngine)))
	}
	return out
}

func middlewareBody(ctx *Context) []ir.Expression {
	o := ctx.Options
	var body []ir.Expression
	use := func(arg ir.Argument) {
		body = append(body, ir.Invoke("this.app", "use", "", arg))
	}
	for _, mw := range ctx.Catalog.Middlewares {
		args := make([]ir.Argument, 0, len(mw.Args))
		for _, a := range mw.Args {
			args = append(args, ir.Lit(a))
		}
		use(ir.Call(mw.Name, args...))
	}
	use(ir.MethodCall("express", "json"))
	use(ir.MethodCall("express", "urlencoded", ir.Obj(ir.F("extended", ir.Lit(true)))))

	switch o.AuthLib {
	case options.AuthPassport:
		use(ir.MethodCall("passport", "initialize"))
	case options.AuthSession:
		use(ir.Call("session", ir.Ident("sessionConfig")))
	}

	switch o.ViewEngine {
	case options.ViewHandlebars:
		body = append(body, ir.Invoke("this.app", "engine", "", ir.Lit("handlebars"), ir.Call("engine")))
	case options.ViewEJS, options.ViewPug:
	default:
		return body
	}
	return append(body,
		ir.Invoke("this.app", "set", "", ir.Lit("view engine"), ir.Lit(string(o.ViewEngine))),
		ir.Invoke("this.app", "set", "", ir.Lit("views"),
			ir.MethodCall("path", "join", ir.Ident("__dirname"), ir.Lit("views"))),
	)
}

func routesBody(ctx *Context) []ir.Expression {
	o := ctx.Options
	var routerArgs []ir.Argument
	if o.WebsocketLib == options.WebsocketSocketIO {
		routerArgs = append(routerArgs, this("io"))
	}
	var body []ir.Expression
	if o.ViewEngine.Enabled() {
		body = append(body,
			ir.ConstDecl("home", ir.New("HomeController")),
			ir.Invoke("this.app", "get", "", ir.Lit("/"), delegate("home", "index")),
		)
	}
	return append(body, ir.Invoke("this.app", "use", "",
		ir.Lit(ctx.Catalog.APIPrefix), ir.Call("createRoutes", routerArgs...)))
}
