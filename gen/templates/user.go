package templates

import (
	"github.com/broady/expressgen/gen/ir"
	"github.com/broady/expressgen/gen/options"
)

// userStore is how the user controller reaches storage for one ORM.
// create and update declare a const named user; update and remove answer
// 404 themselves when the record is missing.
type userStore struct {
	imports    []ir.ImportConfig
	properties []ir.Property
	header     []ir.Declaration
	findAll    ir.Argument
	findByID   ir.Argument
	create     []ir.Expression
	update     []ir.Expression
	remove     []ir.Expression
}

var (
	reqID   = ir.Prop("req.params", "id")
	reqBody = ir.Prop("req", "body")
)

// memoryStore names the module-level array backing the in-memory store. It
// must differ from the handler bindings (users, user, index).
const memoryStore = "store"

func numericID() ir.Argument {
	return ir.Call("Number", reqID)
}

func whereID() ir.Argument {
	return ir.Obj(ir.F("where", ir.Obj(ir.F("id", numericID()))))
}

func notFound(binding string) ir.Expression {
	return guard(ir.Not(ir.Ident(binding)), 404, "User not found")
}

func storeFor(o options.Options) userStore {
	switch o.DatabaseOrm {
	case options.ORMSequelize:
		return userStore{
			imports:  []ir.ImportConfig{ir.Import("../models/user.model", "User")},
			findAll:  ir.AwaitArg(ir.MethodCall("User", "findAll")),
			findByID: ir.AwaitArg(ir.MethodCall("User", "findByPk", reqID)),
			create: ir.Block(
				ir.ConstDecl("user", ir.AwaitArg(ir.MethodCall("User", "create", reqBody))),
			),
			update: ir.Block(
				ir.ConstDecl("user", ir.AwaitArg(ir.MethodCall("User", "findByPk", reqID))),
				notFound("user"),
				ir.AwaitStmt(ir.MethodCall("user", "update", reqBody)),
			),
			remove: ir.Block(
				ir.ConstDecl("deleted", ir.AwaitArg(ir.MethodCall("User", "destroy",
					ir.Obj(ir.F("where", ir.Obj(ir.F("id", reqID))))))),
				notFound("deleted"),
			),
		}

	case options.ORMTypeORM:
		repo := func(method string, args ...ir.Argument) ir.Argument {
			return ir.MethodCall("this.repository", method, args...)
		}
		byID := ir.Obj(ir.F("id", numericID()))
		return userStore{
			imports: []ir.ImportConfig{
				ir.Import("../config/database", "AppDataSource"),
				ir.Import("../models/user.model", "UserEntity"),
			},
			properties: []ir.Property{{
				Name:   "repository",
				Access: ir.AccessPrivate,
				Value:  ir.MethodCall("AppDataSource", "getRepository", ir.Ident("UserEntity")),
			}},
			findAll:  ir.AwaitArg(repo("find")),
			findByID: ir.AwaitArg(repo("findOneBy", byID)),
			create: ir.Block(
				ir.ConstDecl("user", ir.AwaitArg(repo("save", repo("create", reqBody)))),
			),
			update: ir.Block(
				ir.ConstDecl("found", ir.AwaitArg(repo("findOneBy", byID))),
				notFound("found"),
				ir.ConstDecl("user", ir.AwaitArg(repo("save", repo("merge", ir.Ident("found"), reqBody)))),
			),
			remove: ir.Block(
				ir.ConstDecl("result", ir.AwaitArg(repo("delete", numericID()))),
				guard(ir.Not(ir.Prop("result", "affected")), 404, "User not found"),
			),
		}

	case options.ORMPrisma:
		users := func(method string, args ...ir.Argument) ir.Argument {
			return ir.MethodCall("prisma.user", method, args...)
		}
		return userStore{
			imports:  []ir.ImportConfig{ir.Import("../config/database", "prisma")},
			findAll:  ir.AwaitArg(users("findMany")),
			findByID: ir.AwaitArg(users("findUnique", whereID())),
			create: ir.Block(
				ir.ConstDecl("user", ir.AwaitArg(users("create", ir.Obj(ir.F("data", reqBody))))),
			),
			update: ir.Block(
				ir.ConstDecl("found", ir.AwaitArg(users("findUnique", whereID()))),
				notFound("found"),
				ir.ConstDecl("user", ir.AwaitArg(users("update", ir.Obj(
					ir.F("where", ir.Obj(ir.F("id", numericID()))),
					ir.F("data", reqBody),
				)))),
			),
			remove: ir.Block(
				ir.ConstDecl("found", ir.AwaitArg(users("findUnique", whereID()))),
				notFound("found"),
				ir.AwaitStmt(users("delete", whereID())),
			),
		}

	case options.ORMMongoose:
		return userStore{
			imports:  []ir.ImportConfig{ir.Import("../models/user.model", "User")},
			findAll:  ir.AwaitArg(ir.MethodCall("User", "find")),
			findByID: ir.AwaitArg(ir.MethodCall("User", "findById", reqID)),
			create: ir.Block(
				ir.ConstDecl("user", ir.AwaitArg(ir.MethodCall("User", "create", reqBody))),
			),
			update: ir.Block(
				ir.ConstDecl("user", ir.AwaitArg(ir.MethodCall("User", "findByIdAndUpdate",
					reqID, reqBody, ir.Obj(ir.F("new", ir.Lit(true)))))),
				notFound("user"),
			),
			remove: ir.Block(
				ir.ConstDecl("deleted", ir.AwaitArg(ir.MethodCall("User", "findByIdAndDelete", reqID))),
				notFound("deleted"),
			),
		}
	}

	// In-memory store, used without a database and for unsupported ORMs.
	matchID := ir.ArrowResult(ir.Params(ir.Param("u", "")),
		ir.Binary("===", ir.Prop("u", "id"), reqID))
	st := userStore{
		imports: []ir.ImportConfig{ir.Import("../models/user.model", "User")},
		header: []ir.Declaration{
			ir.Stmt(typedConst(memoryStore, "User[]", ir.Arr())),
		},
		findAll:  ir.Ident(memoryStore),
		findByID: ir.MethodCall(memoryStore, "find", matchID),
		create: ir.Block(
			ir.ConstDecl("user", ir.MethodCall("Object", "assign",
				ir.Obj(ir.F("id", ir.Call("String",
					ir.Binary("+", ir.Prop(memoryStore, "length"), ir.Lit(1))))),
				reqBody,
			)),
			ir.Invoke(memoryStore, "push", "", ir.Ident("user")),
		),
		update: ir.Block(
			ir.ConstDecl("user", ir.MethodCall(memoryStore, "find", matchID)),
			notFound("user"),
			ir.Invoke("Object", "assign", "", ir.Ident("user"), reqBody),
		),
		remove: ir.Block(
			ir.ConstDecl("index", ir.MethodCall(memoryStore, "findIndex", matchID)),
			guard(ir.Binary("===", ir.Ident("index"), ir.Lit(-1)), 404, "User not found"),
			ir.Invoke(memoryStore, "splice", "", ir.Ident("index"), ir.Lit(1)),
		),
	}
	if !o.DatabaseOrm.Known() {
		st.header = append([]ir.Declaration{placeholder("databaseOrm", string(o.DatabaseOrm))}, st.header...)
	}
	return st
}

// UserController generates src/controllers/user.controller.ts: CRUD
// handlers over the selected ORM. With socket.io the controller receives
// the server and broadcasts created users.
func UserController(ctx *Context) (*ir.Module, error) {
	o := ctx.Options
	store := storeFor(o)
	m := &ir.Module{}
	m.Import(expressHandlerImport())
	broadcast := o.WebsocketLib == options.WebsocketSocketIO
	if broadcast {
		m.Import(ir.Import("socket.io", "Server"))
	}
	m.Import(store.imports...)
	m.Add(store.header...)

	create := append(ir.Block(), store.create...)
	if broadcast {
		create = append(create, ir.If(this("io"),
			ir.Invoke("this.io", "emit", "", ir.Lit("user:created"), ir.Ident("user"))))
	}
	create = append(create, respond(201, ir.Ident("user")))

	class := &ir.ClassDefinition{
		Name:       "UserController",
		Exported:   true,
		Properties: store.properties,
		Methods: []ir.MethodDefinition{
			asyncHandler("getAll", catchAndFail("Failed to fetch users",
				ir.ConstDecl("users", store.findAll),
				ir.Invoke("res", "json", "", ir.Ident("users")),
			)),
			asyncHandler("getById", catchAndFail("Failed to fetch user",
				ir.ConstDecl("user", store.findByID),
				notFound("user"),
				ir.Invoke("res", "json", "", ir.Ident("user")),
			)),
			asyncHandler("create", catchAndFail("Failed to create user", create...)),
			asyncHandler("update", catchAndFail("Failed to update user",
				append(append(ir.Block(), store.update...), ir.Invoke("res", "json", "", ir.Ident("user")))...,
			)),
			asyncHandler("remove", catchAndFail("Failed to delete user",
				append(append(ir.Block(), store.remove...), noContent())...,
			)),
		},
	}
	if broadcast {
		class.Constructor = &ir.ConstructorDefinition{
			Params: ir.Params(ir.Parameter{Name: "io", Type: "Server", Optional: true, Access: ir.AccessPrivate}),
		}
	}
	m.Add(class)
	return m, nil
}

// UserModel generates src/models/user.model.ts for the selected ORM.
func UserModel(ctx *Context) (*ir.Module, error) {
	o := ctx.Options
	m := &ir.Module{}
	switch o.DatabaseOrm {
	case options.ORMSequelize:
		m.Import(
			ir.Import("sequelize", "DataTypes", "Model"),
			ir.Import("../config/database", "sequelize"),
		)
		m.Add(
			&ir.ClassDefinition{
				Name:     "User",
				Extends:  "Model",
				Exported: true,
				Properties: []ir.Property{
					{Name: "id", Type: ir.Type("number"), Access: ir.AccessPublic, Definite: true},
					{Name: "name", Type: ir.Type("string"), Access: ir.AccessPublic, Definite: true},
					{Name: "email", Type: ir.Type("string"), Access: ir.AccessPublic, Definite: true},
				},
			},
			ir.Stmt(ir.Invoke("User", "init", "",
				ir.Obj(
					ir.F("id", ir.Obj(
						ir.F("type", ir.Prop("DataTypes", "INTEGER")),
						ir.F("autoIncrement", ir.Lit(true)),
						ir.F("primaryKey", ir.Lit(true)),
					)),
					ir.F("name", ir.Obj(
						ir.F("type", ir.Prop("DataTypes", "STRING")),
						ir.F("allowNull", ir.Lit(false)),
					)),
					ir.F("email", ir.Obj(
						ir.F("type", ir.Prop("DataTypes", "STRING")),
						ir.F("allowNull", ir.Lit(false)),
						ir.F("unique", ir.Lit(true)),
					)),
				),
				ir.Obj(ir.F("sequelize", ir.Ident("sequelize")), ir.F("tableName", ir.Lit("users"))),
			)),
		)

	case options.ORMTypeORM:
		m.Import(ir.Import("typeorm", "EntitySchema"))
		m.Add(
			userInterface("number"),
			ir.Stmt(exportConst("UserEntity", ir.New("EntitySchema", ir.Obj(
				ir.F("name", ir.Lit("User")),
				ir.F("tableName", ir.Lit("users")),
				ir.F("columns", ir.Obj(
					ir.F("id", ir.Obj(
						ir.F("type", ir.Ident("Number")),
						ir.F("primary", ir.Lit(true)),
						ir.F("generated", ir.Lit(true)),
					)),
					ir.F("name", ir.Obj(ir.F("type", ir.Ident("String")))),
					ir.F("email", ir.Obj(ir.F("type", ir.Ident("String")), ir.F("unique", ir.Lit(true)))),
				)),
			)))),
		)

	case options.ORMPrisma:
		m.Add(userInterface("number"))

	case options.ORMMongoose:
		m.Import(ir.Import("mongoose", "Document", "Schema", "model"))
		m.Add(
			&ir.InterfaceDeclaration{
				Name:     "IUser",
				Extends:  []string{"Document"},
				Exported: true,
				Members: []ir.InterfaceMember{
					{Name: "name", Type: "string"},
					{Name: "email", Type: "string"},
				},
			},
			ir.Stmt(ir.ConstDecl("userSchema", ir.New("Schema",
				ir.Obj(
					ir.F("name", ir.Obj(ir.F("type", ir.Ident("String")), ir.F("required", ir.Lit(true)))),
					ir.F("email", ir.Obj(
						ir.F("type", ir.Ident("String")),
						ir.F("required", ir.Lit(true)),
						ir.F("unique", ir.Lit(true)),
					)),
				),
				ir.Obj(ir.F("timestamps", ir.Lit(true))),
			))),
			ir.Stmt(exportConst("User", ir.Call("model", ir.Lit("User"), ir.Ident("userSchema")))),
		)

	default:
		if !o.DatabaseOrm.Known() {
			m.Add(placeholder("databaseOrm", string(o.DatabaseOrm)))
		}
		m.Add(userInterface("string"))
	}
	return m, nil
}

func userInterface(idType string) *ir.InterfaceDeclaration {
	return &ir.InterfaceDeclaration{
		Name:     "User",
		Exported: true,
		Members: []ir.InterfaceMember{
			{Name: "id", Type: idType},
			{Name: "name", Type: "string"},
			{Name: "email", Type: "string"},
		},
	}
}
