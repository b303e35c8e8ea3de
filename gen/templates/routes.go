package templates

import (
	"github.com/broady/expressgen/gen/ir"
	"github.com/broady/expressgen/gen/options"
)

// socketParam returns the optional io parameter threaded from the server to
// controllers that broadcast, or nil when socket.io is not selected.
func socketParam(o options.Options) []ir.Parameter {
	if o.WebsocketLib != options.WebsocketSocketIO {
		return nil
	}
	return ir.Params(ir.Parameter{Name: "io", Type: "Server", Optional: true})
}

func socketArgs(o options.Options) []ir.Argument {
	if o.WebsocketLib != options.WebsocketSocketIO {
		return nil
	}
	return []ir.Argument{ir.Ident("io")}
}

// Routes generates src/routes/index.ts, which mounts every feature router.
func Routes(ctx *Context) (*ir.Module, error) {
	o := ctx.Options
	m := &ir.Module{}
	m.Import(ir.Import("express", "Router"))
	if o.WebsocketLib == options.WebsocketSocketIO {
		m.Import(ir.Import("socket.io", "Server"))
	}
	m.Import(ir.Import("./user.routes", "createUserRoutes"))
	auth := o.AuthLib.Enabled() && o.AuthLib.Known()
	if auth {
		m.Import(ir.Import("./auth.routes", "createAuthRoutes"))
	}

	body := ir.Block(
		ir.ConstDecl("router", ir.Call("Router")),
		route("use", "/users", ir.Call("createUserRoutes", socketArgs(o)...)),
	)
	if auth {
		body = append(body, route("use", "/auth", ir.Call("createAuthRoutes")))
	}
	body = append(body, ir.Ret(ir.Ident("router")))

	m.Add(&ir.FunctionDeclaration{
		Name:       "createRoutes",
		Params:     socketParam(o),
		ReturnType: "Router",
		Exported:   true,
		Body:       body,
	})
	return m, nil
}

// UserRoutes generates src/routes/user.routes.ts. When authentication is
// enabled the create route is guarded by the authenticate middleware.
func UserRoutes(ctx *Context) (*ir.Module, error) {
	o := ctx.Options
	m := &ir.Module{}
	m.Import(ir.Import("express", "Router"))
	if o.WebsocketLib == options.WebsocketSocketIO {
		m.Import(ir.Import("socket.io", "Server"))
	}
	m.Import(ir.Import("../controllers/user.controller", "UserController"))
	auth := o.AuthLib.Enabled()
	if auth {
		m.Import(ir.Import("../middleware/auth.middleware", "authenticate"))
	}

	create := []ir.Argument{delegate("controller", "create")}
	if auth {
		create = append([]ir.Argument{ir.Ident("authenticate")}, create...)
	}
	m.Add(&ir.FunctionDeclaration{
		Name:       "createUserRoutes",
		Params:     socketParam(o),
		ReturnType: "Router",
		Exported:   true,
		Body: ir.Block(
			ir.ConstDecl("router", ir.Call("Router")),
			ir.ConstDecl("controller", ir.New("UserController", socketArgs(o)...)),
			route("get", "/", delegate("controller", "getAll")),
			route("get", "/:id", delegate("controller", "getById")),
			route("post", "/", create...),
			route("put", "/:id", delegate("controller", "update")),
			route("delete", "/:id", delegate("controller", "remove")),
			ir.Ret(ir.Ident("router")),
		),
	})
	return m, nil
}
