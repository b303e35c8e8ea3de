package templates

import (
	"github.com/broady/expressgen/gen/ir"
	"github.com/broady/expressgen/gen/options"
)

func usesTokens(a options.AuthLib) bool {
	return a == options.AuthJWT || a == options.AuthPassport
}

func jwtConfig(cat *Catalog) ir.Declaration {
	return ir.Stmt(exportConst("jwtConfig", ir.Obj(
		ir.F("secret", env("JWT_SECRET", "change-me")),
		ir.F("expiresIn", env("JWT_EXPIRES_IN", cat.JWTExpiresIn)),
	)))
}

// AuthConfig generates src/config/auth.ts: token settings for jwt and
// passport, the strategy registration for passport and the session options
// for express-session.
func AuthConfig(ctx *Context) (*ir.Module, error) {
	o := ctx.Options
	cat := ctx.Catalog
	m := &ir.Module{}
	switch o.AuthLib {
	case options.AuthJWT:
		m.Add(jwtConfig(cat))

	case options.AuthPassport:
		m.Import(
			ir.DefaultImport("passport", "passport"),
			ir.Import("passport-jwt", "ExtractJwt", "Strategy"),
		)
		m.Add(
			jwtConfig(cat),
			ir.Stmt(ir.Invoke("passport", "use", "", ir.New("Strategy",
				ir.Obj(
					ir.F("jwtFromRequest", ir.MethodCall("ExtractJwt", "fromAuthHeaderAsBearerToken")),
					ir.F("secretOrKey", ir.Prop("jwtConfig", "secret")),
				),
				ir.ArrowResult(
					ir.Params(ir.Param("payload", "object"), ir.Param("done", "(error: unknown, user?: object) => void")),
					ir.Call("done", ir.Null(), ir.Ident("payload")),
				),
			))),
		)

	case options.AuthSession:
		m.Add(ir.Stmt(exportConst("sessionConfig", ir.Obj(
			ir.F("secret", env("SESSION_SECRET", "change-me")),
			ir.F("resave", ir.Lit(false)),
			ir.F("saveUninitialized", ir.Lit(false)),
			ir.F("cookie", ir.Obj(
				ir.F("httpOnly", ir.Lit(true)),
				ir.F("secure", ir.Binary("===", ir.Prop("process.env", "NODE_ENV"), ir.Lit("production"))),
				ir.F("maxAge", ir.Lit(cat.SessionMaxAge)),
			)),
		))))

	case options.AuthNone, "":
		m.Add(&ir.Comment{Text: "Authentication is disabled."})

	default:
		m.Add(placeholder("authLib", string(o.AuthLib)))
	}
	return m, nil
}

// AuthRoutes generates src/routes/auth.routes.ts.
func AuthRoutes(ctx *Context) (*ir.Module, error) {
	m := &ir.Module{}
	m.Import(
		ir.Import("express", "Router"),
		ir.Import("../controllers/auth.controller", "AuthController"),
		ir.Import("../middleware/auth.middleware", "authenticate"),
	)
	m.Add(&ir.FunctionDeclaration{
		Name:       "createAuthRoutes",
		ReturnType: "Router",
		Exported:   true,
		Body: ir.Block(
			ir.ConstDecl("router", ir.Call("Router")),
			ir.ConstDecl("controller", ir.New("AuthController")),
			route("post", "/register", delegate("controller", "register")),
			route("post", "/login", delegate("controller", "login")),
			route("post", "/logout", ir.Ident("authenticate"), delegate("controller", "logout")),
			route("get", "/me", ir.Ident("authenticate"), delegate("controller", "me")),
			ir.Ret(ir.Ident("router")),
		),
	})
	return m, nil
}

// AuthController generates src/controllers/auth.controller.ts. Accounts are
// kept in memory with bcrypt hashes; login issues a token or a session
// depending on the library.
func AuthController(ctx *Context) (*ir.Module, error) {
	o := ctx.Options
	cat := ctx.Catalog
	m := &ir.Module{}
	m.Import(expressHandlerImport(), ir.DefaultImport("bcryptjs", "bcrypt"))
	if usesTokens(o.AuthLib) {
		m.Import(
			ir.DefaultImport("jsonwebtoken", "jwt"),
			ir.Import("../config/auth", "jwtConfig"),
		)
	}
	if !o.AuthLib.Known() {
		m.Add(placeholder("authLib", string(o.AuthLib)))
	}
	m.Add(ir.Stmt(typedConst("accounts", "Map<string, string>", ir.New("Map"))))

	credentials := ir.Destructure(ir.Prop("req", "body"), "email", "password")
	email := ir.Obj(ir.F("email", ir.Ident("email")))

	var issue, logout []ir.Expression
	var current ir.Argument
	switch {
	case usesTokens(o.AuthLib):
		issue = ir.Block(
			ir.ConstDecl("token", ir.MethodCall("jwt", "sign", email, ir.Prop("jwtConfig", "secret"),
				ir.Obj(ir.F("expiresIn", ir.Prop("jwtConfig", "expiresIn"))))),
			ir.Invoke("res", "json", "", ir.Obj(ir.F("token", ir.Ident("token")))),
		)
		logout = ir.Block(noContent())
		current = ir.Prop("res.locals", "user")
		if o.AuthLib == options.AuthPassport {
			current = ir.Prop("req", "user")
		}
	case o.AuthLib == options.AuthSession:
		issue = ir.Block(
			ir.Assign("req.session", "userId", ir.Ident("email")),
			ir.Invoke("res", "json", "", email),
		)
		logout = ir.Block(ir.Invoke("req.session", "destroy", "", ir.Arrow(nil, noContent())))
		current = ir.Prop("req.session", "userId")
	default:
		issue = ir.Block(ir.Invoke("res", "json", "", email))
		logout = ir.Block(noContent())
		current = ir.Null()
	}

	login := ir.Block(
		credentials,
		ir.ConstDecl("hash", ir.MethodCall("accounts", "get", ir.Ident("email"))),
		guard(ir.Not(ir.Ident("hash")), 401, "Invalid credentials"),
		ir.ConstDecl("valid", ir.AwaitArg(ir.MethodCall("bcrypt", "compare", ir.Ident("password"), ir.Ident("hash")))),
		guard(ir.Not(ir.Ident("valid")), 401, "Invalid credentials"),
	)
	login = append(login, issue...)

	m.Add(&ir.ClassDefinition{
		Name:     "AuthController",
		Exported: true,
		Methods: []ir.MethodDefinition{
			asyncHandler("register",
				credentials,
				guard(ir.Or(ir.Not(ir.Ident("email")), ir.Not(ir.Ident("password"))), 400, "Email and password are required"),
				guard(ir.MethodCall("accounts", "has", ir.Ident("email")), 409, "Account already exists"),
				ir.ConstDecl("hash", ir.AwaitArg(ir.MethodCall("bcrypt", "hash", ir.Ident("password"), ir.Lit(cat.BcryptRounds)))),
				ir.Invoke("accounts", "set", "", ir.Ident("email"), ir.Ident("hash")),
				respond(201, email),
			),
			asyncHandler("login", login...),
			{
				Name:       "logout",
				Params:     reqRes(),
				ReturnType: "void",
				Access:     ir.AccessPublic,
				Body:       logout,
			},
			{
				Name:       "me",
				Params:     reqRes(),
				ReturnType: "void",
				Access:     ir.AccessPublic,
				Body:       ir.Block(ir.Invoke("res", "json", "", ir.Obj(ir.F("user", current)))),
			},
		},
	})
	return m, nil
}
