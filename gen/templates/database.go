package templates

import (
	"github.com/broady/expressgen/gen/ir"
	"github.com/broady/expressgen/gen/options"
)

// Database generates src/config/database.ts. Every variant exports
// connectDatabase so the server does not depend on the ORM.
func Database(ctx *Context) (*ir.Module, error) {
	o := ctx.Options
	cat := ctx.Catalog
	m := &ir.Module{}
	connect := &ir.FunctionDeclaration{
		Name:       "connectDatabase",
		ReturnType: "Promise<void>",
		Async:      true,
		Exported:   true,
	}

	if o.DatabaseOrm.SQL() && !o.Dialect.Known() {
		m.Add(placeholder("dialect", string(o.Dialect)))
	}

	switch o.DatabaseOrm {
	case options.ORMSequelize:
		m.Import(ir.Import("sequelize", "Sequelize"))
		var init *ir.ConstructorCall
		if o.Dialect == options.DialectSQLite {
			init = ir.New("Sequelize", ir.Obj(
				ir.F("dialect", ir.Lit("sqlite")),
				ir.F("storage", env("DB_STORAGE", o.DatabaseName+".sqlite")),
				ir.F("logging", ir.Lit(false)),
			))
		} else {
			init = ir.New("Sequelize",
				env("DB_NAME", o.DatabaseName),
				env("DB_USER", "root"),
				env("DB_PASSWORD", ""),
				ir.Obj(append(serverFields(o, cat),
					ir.F("dialect", ir.Lit(string(o.Dialect))),
					ir.F("logging", ir.Lit(false)),
				)...),
			)
		}
		m.Add(ir.Stmt(exportConst("sequelize", init)))
		connect.Body = ir.Block(
			ir.AwaitStmt(ir.MethodCall("sequelize", "authenticate")),
			ir.AwaitStmt(ir.MethodCall("sequelize", "sync")),
		)

	case options.ORMTypeORM:
		m.Import(
			ir.ImportConfig{Module: "reflect-metadata", SideEffect: true},
			ir.Import("typeorm", "DataSource"),
			ir.Import("../models/user.model", "UserEntity"),
		)
		fields := []ir.Field{ir.F("type", ir.Lit(string(o.Dialect)))}
		if o.Dialect == options.DialectSQLite {
			fields = append(fields, ir.F("database", env("DB_STORAGE", o.DatabaseName+".sqlite")))
		} else {
			fields = append(fields, serverFields(o, cat)...)
			fields = append(fields,
				ir.F("username", env("DB_USER", "root")),
				ir.F("password", env("DB_PASSWORD", "")),
				ir.F("database", env("DB_NAME", o.DatabaseName)),
			)
		}
		fields = append(fields,
			ir.F("entities", ir.Arr(ir.Ident("UserEntity"))),
			ir.F("synchronize", ir.Lit(true)),
		)
		m.Add(ir.Stmt(exportConst("AppDataSource", ir.New("DataSource", ir.Obj(fields...)))))
		connect.Body = ir.Block(ir.AwaitStmt(ir.MethodCall("AppDataSource", "initialize")))

	case options.ORMPrisma:
		m.Import(ir.Import("@prisma/client", "PrismaClient"))
		m.Add(ir.Stmt(exportConst("prisma", ir.New("PrismaClient"))))
		connect.Body = ir.Block(ir.AwaitStmt(ir.MethodCall("prisma", "$connect")))

	case options.ORMMongoose:
		m.Import(ir.DefaultImport("mongoose", "mongoose"))
		connect.Body = ir.Block(
			ir.ConstDecl("uri", env("MONGODB_URI", cat.MongoURI+o.DatabaseName)),
			ir.AwaitStmt(ir.MethodCall("mongoose", "connect", ir.Ident("uri"))),
		)

	case options.ORMNone, "":
		connect.Doc = "Database support is disabled."

	default:
		m.Add(placeholder("databaseOrm", string(o.DatabaseOrm)))
	}

	m.Add(connect)
	return m, nil
}

// serverFields are host and port settings for networked SQL dialects.
func serverFields(o options.Options, cat *Catalog) []ir.Field {
	fields := []ir.Field{ir.F("host", env("DB_HOST", "localhost"))}
	if port, ok := cat.DialectPorts[o.Dialect]; ok {
		fields = append(fields, ir.F("port", ir.Call("Number", env("DB_PORT", port))))
	}
	return fields
}
