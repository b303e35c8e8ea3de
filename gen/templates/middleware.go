package templates

import (
	"github.com/broady/expressgen/gen/ir"
	"github.com/broady/expressgen/gen/options"
)

func nextParams() []ir.Parameter {
	return append(reqRes(), ir.Param("next", "NextFunction"))
}

// ErrorMiddleware generates src/middleware/error.middleware.ts: an HttpError
// class plus the not-found and error handlers installed last by the server.
func ErrorMiddleware(ctx *Context) (*ir.Module, error) {
	m := &ir.Module{}
	m.Import(ir.Import("express", "NextFunction", "Request", "Response"))
	m.Add(
		&ir.ClassDefinition{
			Name:     "HttpError",
			Extends:  "Error",
			Exported: true,
			Properties: []ir.Property{
				{Name: "status", Type: ir.Type("number"), Access: ir.AccessPublic},
			},
			Constructor: &ir.ConstructorDefinition{
				Params: ir.Params(ir.Param("status", "number"), ir.Param("message", "string")),
				Body: ir.Block(
					ir.CallStmt("super", ir.Ident("message")),
					ir.Assign("this", "status", ir.Ident("status")),
				),
			},
		},
		&ir.FunctionDeclaration{
			Name:       "notFoundHandler",
			Params:     reqRes(),
			ReturnType: "void",
			Exported:   true,
			Body: ir.Block(respond(404, ir.Obj(ir.F("message",
				ir.Template([]string{"Route ", " not found"}, ir.Prop("req", "originalUrl")))))),
		},
		&ir.FunctionDeclaration{
			Name:       "errorHandler",
			Params:     append(ir.Params(ir.Param("err", "HttpError")), nextParams()...),
			ReturnType: "void",
			Exported:   true,
			Body: ir.Block(
				ir.ConstDecl("status", ir.Or(ir.Prop("err", "status"), ir.Lit(500))),
				consoleError(ir.Ident("err")),
				ir.Do(ir.Chain(ir.MethodCall("res", "status", ir.Ident("status")), "json",
					ir.Obj(ir.F("message", ir.Or(ir.Prop("err", "message"), ir.Lit("Internal Server Error")))))),
			),
		},
	)
	return m, nil
}

// AuthMiddleware generates src/middleware/auth.middleware.ts, exporting the
// authenticate guard for the selected library.
func AuthMiddleware(ctx *Context) (*ir.Module, error) {
	o := ctx.Options
	m := &ir.Module{}
	guardFn := &ir.FunctionDeclaration{
		Name:       "authenticate",
		Params:     nextParams(),
		ReturnType: "void",
		Exported:   true,
	}

	switch o.AuthLib {
	case options.AuthJWT:
		m.Import(
			ir.Import("express", "NextFunction", "Request", "Response"),
			ir.DefaultImport("jsonwebtoken", "jwt"),
			ir.Import("../config/auth", "jwtConfig"),
		)
		guardFn.Body = ir.Block(
			ir.ConstDecl("header", ir.Prop("req.headers", "authorization")),
			guard(ir.Not(ir.Ident("header")), 401, "Missing authorization header"),
			ir.ConstDecl("token", ir.MethodCall("header", "replace", ir.Lit("Bearer "), ir.Lit(""))),
			ir.Try(
				ir.Block(
					ir.Assign("res.locals", "user", ir.MethodCall("jwt", "verify", ir.Ident("token"), ir.Prop("jwtConfig", "secret"))),
					ir.CallStmt("next"),
				),
				"error",
				ir.Block(respondMessage(401, "Invalid token")),
			),
		)
		m.Add(guardFn)

	case options.AuthPassport:
		m.Import(ir.DefaultImport("passport", "passport"))
		m.Add(ir.Stmt(exportConst("authenticate",
			ir.MethodCall("passport", "authenticate", ir.Lit("jwt"), ir.Obj(ir.F("session", ir.Lit(false)))))))

	case options.AuthSession:
		m.Import(ir.Import("express", "NextFunction", "Request", "Response"))
		guardFn.Body = ir.Block(
			guard(ir.Not(ir.Prop("req.session", "userId")), 401, "Not logged in"),
			ir.CallStmt("next"),
		)
		m.Add(guardFn)

	default:
		m.Import(ir.Import("express", "NextFunction", "Request", "Response"))
		if !o.AuthLib.Known() {
			m.Add(placeholder("authLib", string(o.AuthLib)))
		}
		guardFn.Body = ir.Block(ir.CallStmt("next"))
		m.Add(guardFn)
	}
	return m, nil
}
